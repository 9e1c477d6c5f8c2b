package cli

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/voxcribe/voxcribe/internal/config"
	"github.com/voxcribe/voxcribe/internal/logging"
	"github.com/voxcribe/voxcribe/internal/media"
	"github.com/voxcribe/voxcribe/internal/transcribe"
)

// NewRootCommand wires the single voxcribe command. Flags preempt the
// interactive prompts; with no flags the session asks, the way the
// tool is meant to be used.
func NewRootCommand(fs afero.Fs, cfg *config.Config, logger *logging.Logger) *cobra.Command {
	var (
		inPath  string
		outPath string
		backend string
		model   string
		locale  string
	)

	cmd := &cobra.Command{
		Use:   "voxcribe [file]",
		Short: "Transcribe a WAV or MP3 file into a text report.",
		Long: `Voxcribe reads a local WAV or MP3 file, normalizes MP3 input to WAV,
computes the audio duration, sends the audio to a speech recognition
service, and prints a plain-text transcription report that can be saved
to a file.`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if backend != "" {
				cfg.Backend = backend
			}
			if locale != "" {
				cfg.Locale = locale
			}
			be, err := pickBackend(fs, cfg, model)
			if err != nil {
				return err
			}

			if inPath == "" && len(args) == 1 {
				inPath = args[0]
			}
			var prompter Prompter = HuhPrompter{}
			if !cfg.Interactive() {
				prompter = declinePrompter{}
				if inPath == "" {
					return errors.New("missing input path: pass --input when NON_INTERACTIVE=1")
				}
			}

			sess := &Session{
				FS:        fs,
				Logger:    logger,
				Stdout:    cmd.OutOrStdout(),
				Convert:   media.Pick(fs, cfg.FFmpegPath, logger),
				Client:    transcribe.NewClient(be, logger),
				Prompter:  prompter,
				Clock:     time.Now,
				InputPath: inPath,
				SavePath:  outPath,
			}
			return sess.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVarP(&inPath, "input", "i", "", "input WAV or MP3 file (skips the path prompt)")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "save the report to this file without prompting")
	cmd.Flags().StringVar(&backend, "backend", "", "recognition backend: google|openai|cloudflare")
	cmd.Flags().StringVar(&model, "model", "", "model name override (backend-specific)")
	cmd.Flags().StringVar(&locale, "locale", "", "recognition locale (default en-US)")

	return cmd
}

func pickBackend(fs afero.Fs, cfg *config.Config, model string) (transcribe.Backend, error) {
	switch strings.ToLower(cfg.Backend) {
	case "", "google":
		return transcribe.NewGoogleBackend(fs, cfg.GoogleKey, cfg.Locale), nil
	case "openai":
		if cfg.OpenAIAPIKey == "" {
			return nil, errors.New("openai backend selected but OPENAI_API_KEY is missing")
		}
		m := cfg.OpenAIModel
		if model != "" {
			m = model
		}
		return transcribe.NewOpenAIBackend(fs, cfg.OpenAIAPIKey, m), nil
	case "cloudflare":
		if cfg.CFAccountID == "" || cfg.CFAPIToken == "" {
			return nil, errors.New("cloudflare backend requires CF_ACCOUNT_ID and CF_API_TOKEN")
		}
		m := cfg.CFModel
		if model != "" {
			m = model
		}
		return transcribe.NewCloudflareBackend(fs, cfg.CFAccountID, cfg.CFAPIToken, m), nil
	default:
		return nil, fmt.Errorf("unknown backend: %s", cfg.Backend)
	}
}
