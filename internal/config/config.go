package config

import (
	"os"
	"strings"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"
)

// Config is the process configuration, populated from the environment.
// An optional .env file (or the file named by VOXCRIBE_ENV) is loaded
// first, so keys can live next to the binary instead of the shell.
type Config struct {
	Backend string `env:"VOXCRIBE_BACKEND,default=google"`
	Locale  string `env:"VOXCRIBE_LOCALE,default=en-US"`

	GoogleKey string `env:"GOOGLE_SPEECH_KEY"`

	OpenAIAPIKey string `env:"OPENAI_API_KEY"`
	OpenAIModel  string `env:"OPENAI_MODEL,default=gpt-4o-mini-transcribe"`

	CFAccountID string `env:"CF_ACCOUNT_ID"`
	CFAPIToken  string `env:"CF_API_TOKEN"`
	CFModel     string `env:"CF_MODEL,default=@cf/openai/whisper"`

	FFmpegPath     string `env:"VOXCRIBE_FFMPEG,default=ffmpeg"`
	NonInteractive string `env:"NON_INTERACTIVE,default=0"`

	Extras env.EnvSet
}

// Load reads the env file(s) and unmarshals the environment.
func Load() (*Config, error) {
	LoadEnvFiles()

	var cfg Config
	es, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, err
	}
	cfg.Extras = es
	return &cfg, nil
}

// LoadEnvFiles loads VOXCRIBE_ENV (when set) and ./.env into the process
// environment. Missing files are not an error; existing variables win.
func LoadEnvFiles() {
	if p := strings.TrimSpace(os.Getenv("VOXCRIBE_ENV")); p != "" {
		_ = godotenv.Load(p)
	}
	_ = godotenv.Load()
}

// Interactive reports whether prompts may be shown.
func (c *Config) Interactive() bool {
	return c.NonInteractive != "1"
}
