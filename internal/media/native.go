package media

import (
	"context"
	"fmt"
	"io"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
	mp3 "github.com/hajimehoshi/go-mp3"
	"github.com/spf13/afero"
)

// Native converts MP3 to WAV without external binaries: go-mp3 decodes
// to 16-bit little-endian stereo PCM, go-audio writes the container.
type Native struct {
	fs afero.Fs
}

func NewNative(fs afero.Fs) *Native {
	return &Native{fs: fs}
}

func (c *Native) Convert(ctx context.Context, srcPath string) (string, error) {
	src, err := c.fs.Open(srcPath)
	if err != nil {
		return "", err
	}
	defer src.Close()

	dec, err := mp3.NewDecoder(src)
	if err != nil {
		return "", fmt.Errorf("decode mp3 %s: %w", srcPath, err)
	}

	raw, err := readAllChecked(ctx, dec)
	if err != nil {
		return "", fmt.Errorf("decode mp3 %s: %w", srcPath, err)
	}

	dstPath := OutputPath(srcPath)
	dst, err := c.fs.Create(dstPath)
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// go-mp3 always emits 2 channels of 16-bit samples.
	enc := wav.NewEncoder(dst, dec.SampleRate(), 16, 2, 1)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 2, SampleRate: dec.SampleRate()},
		Data:           samplesFromLE(raw),
		SourceBitDepth: 16,
	}
	if err := enc.Write(buf); err != nil {
		return "", fmt.Errorf("encode wav %s: %w", dstPath, err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("encode wav %s: %w", dstPath, err)
	}
	return dstPath, nil
}

// readAllChecked drains r, honoring context cancellation between chunks.
func readAllChecked(ctx context.Context, r io.Reader) ([]byte, error) {
	var out []byte
	chunk := make([]byte, 64*1024)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := r.Read(chunk)
		out = append(out, chunk[:n]...)
		if err == io.EOF {
			return out, nil
		}
		if err != nil {
			return nil, err
		}
	}
}

func samplesFromLE(raw []byte) []int {
	n := len(raw) / 2
	data := make([]int, n)
	for i := 0; i < n; i++ {
		data[i] = int(int16(uint16(raw[2*i]) | uint16(raw[2*i+1])<<8))
	}
	return data
}
