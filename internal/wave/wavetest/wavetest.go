// Package wavetest builds small valid WAV files for tests.
package wavetest

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/spf13/afero"
)

// Bytes returns a canonical 16-bit PCM WAV file with the given header
// values and a low-amplitude ramp as payload.
func Bytes(sampleRate, channels, frames int) []byte {
	dataSize := frames * channels * 2

	var b bytes.Buffer
	b.WriteString("RIFF")
	u32(&b, uint32(36+dataSize))
	b.WriteString("WAVE")
	b.WriteString("fmt ")
	u32(&b, 16)
	u16(&b, 1) // PCM
	u16(&b, uint16(channels))
	u32(&b, uint32(sampleRate))
	u32(&b, uint32(sampleRate*channels*2))
	u16(&b, uint16(channels*2))
	u16(&b, 16)
	b.WriteString("data")
	u32(&b, uint32(dataSize))
	for i := 0; i < frames*channels; i++ {
		u16(&b, uint16(int16(i%2000-1000)))
	}
	return b.Bytes()
}

// Write drops a generated WAV file at path on fs.
func Write(tb testing.TB, fs afero.Fs, path string, sampleRate, channels, frames int) {
	tb.Helper()
	if err := afero.WriteFile(fs, path, Bytes(sampleRate, channels, frames), 0o644); err != nil {
		tb.Fatalf("write test wav %s: %v", path, err)
	}
}

func u16(b *bytes.Buffer, v uint16) {
	_ = binary.Write(b, binary.LittleEndian, v)
}

func u32(b *bytes.Buffer, v uint32) {
	_ = binary.Write(b, binary.LittleEndian, v)
}
