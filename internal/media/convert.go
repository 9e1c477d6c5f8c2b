package media

import (
	"context"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/voxcribe/voxcribe/internal/logging"
)

// Converter normalizes a compressed audio container into a linear-PCM
// WAV file and returns the path of the result. A failure is fatal to
// the run; no cleanup of partial output is guaranteed.
type Converter interface {
	Convert(ctx context.Context, srcPath string) (string, error)
}

// OutputPath places the normalized file beside the source, swapping the
// extension for .wav.
func OutputPath(srcPath string) string {
	return strings.TrimSuffix(srcPath, filepath.Ext(srcPath)) + ".wav"
}

// Pick selects the ffmpeg converter when the binary resolves on PATH
// and falls back to the pure-Go decoder otherwise.
func Pick(fs afero.Fs, ffmpegPath string, logger *logging.Logger) Converter {
	if _, err := exec.LookPath(ffmpegPath); err == nil {
		logger.Debug("using ffmpeg converter", "binary", ffmpegPath)
		return NewFFmpeg(ffmpegPath)
	}
	logger.Debug("ffmpeg not found, using built-in mp3 decoder", "binary", ffmpegPath)
	return NewNative(fs)
}
