package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/afero"

	"github.com/voxcribe/voxcribe/internal/input"
	"github.com/voxcribe/voxcribe/internal/logging"
	"github.com/voxcribe/voxcribe/internal/media"
	"github.com/voxcribe/voxcribe/internal/report"
	"github.com/voxcribe/voxcribe/internal/transcribe"
	"github.com/voxcribe/voxcribe/internal/wave"
)

// Session is one run of the pipeline:
// resolve input -> maybe convert -> estimate duration -> transcribe ->
// format report -> print -> maybe save.
// Only the first two stages can abort the run; everything after them
// degrades to sentinel values and still produces a report.
type Session struct {
	FS       afero.Fs
	Logger   *logging.Logger
	Stdout   io.Writer
	Convert  media.Converter
	Client   *transcribe.Client
	Prompter Prompter
	Clock    func() time.Time

	// InputPath preempts the path prompt when set.
	InputPath string
	// SavePath preempts the save prompts when set.
	SavePath string
}

// Run drives the pipeline. Designed failures are printed, not
// returned; the error return covers prompt plumbing only.
func (s *Session) Run(ctx context.Context) error {
	path := strings.TrimSpace(s.InputPath)
	if path == "" {
		var err error
		path, err = s.Prompter.AskPath()
		if err != nil {
			return err
		}
	}

	ref, err := input.Resolve(s.FS, path, s.Logger)
	if errors.Is(err, input.ErrNotFound) {
		fmt.Fprintln(s.Stdout, "Error: File not found.")
		return nil
	}
	if err != nil {
		return err
	}

	if ref.Format == input.FormatMP3 {
		fmt.Fprintln(s.Stdout, "Converting MP3 to WAV...")
		wavPath, err := s.Convert.Convert(ctx, ref.Path)
		if err != nil {
			fmt.Fprintf(s.Stdout, "Error during conversion: %v\n", err)
			return nil
		}
		ref.Path = wavPath
		fmt.Fprintf(s.Stdout, "Conversion complete: %s\n", ref.Path)
	}

	dur := wave.Estimate(s.FS, ref.Path, s.Logger)
	fmt.Fprintf(s.Stdout, "Audio Duration: %s seconds\n", report.FormatSeconds(dur.Seconds))

	res := s.Client.Run(ctx, ref.Path)

	rendered := report.New(ref.Path, dur.Seconds, s.Clock(), res.Text).Render()
	fmt.Fprintln(s.Stdout, rendered)

	return s.maybeSave(rendered)
}

func (s *Session) maybeSave(rendered string) error {
	savePath := strings.TrimSpace(s.SavePath)
	if savePath == "" {
		save, err := s.Prompter.ConfirmSave()
		if err != nil {
			return err
		}
		if !save {
			return nil
		}
		savePath, err = s.Prompter.AskSavePath()
		if err != nil {
			return err
		}
		savePath = strings.TrimSpace(savePath)
		if savePath == "" {
			return nil
		}
	}

	if err := report.Save(s.FS, savePath, rendered); err != nil {
		fmt.Fprintf(s.Stdout, "Error saving file: %v\n", err)
		return nil
	}
	fmt.Fprintf(s.Stdout, "Transcription saved to '%s'\n", savePath)
	return nil
}
