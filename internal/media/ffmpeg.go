package media

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// FFmpeg shells out to ffmpeg for the MP3 to WAV conversion, the same
// route pydub-style frontends take. It only works against the OS
// filesystem.
type FFmpeg struct {
	binary string
}

func NewFFmpeg(binary string) *FFmpeg {
	return &FFmpeg{binary: binary}
}

// Args builds the ffmpeg invocation for a source/destination pair.
func (c *FFmpeg) Args(srcPath, dstPath string) []string {
	// ffmpeg -y -i input -f wav output
	return []string{"-y", "-i", srcPath, "-f", "wav", dstPath}
}

func (c *FFmpeg) Convert(ctx context.Context, srcPath string) (string, error) {
	dst := OutputPath(srcPath)
	cmd := exec.CommandContext(ctx, c.binary, c.Args(srcPath, dst)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		detail := strings.TrimSpace(stderr.String())
		if detail != "" {
			return "", fmt.Errorf("ffmpeg: %w: %s", err, lastLine(detail))
		}
		return "", fmt.Errorf("ffmpeg: %w", err)
	}
	return dst, nil
}

// lastLine keeps the diagnostic short; ffmpeg puts the actual failure
// on its final stderr line.
func lastLine(s string) string {
	lines := strings.Split(s, "\n")
	return strings.TrimSpace(lines[len(lines)-1])
}
