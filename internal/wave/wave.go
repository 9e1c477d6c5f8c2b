package wave

import (
	"fmt"
	"math"

	"github.com/go-audio/wav"
	"github.com/spf13/afero"

	"github.com/voxcribe/voxcribe/internal/logging"
)

// Info is the header metadata needed for duration math.
type Info struct {
	Frames     int
	SampleRate int
	Channels   int
	BitDepth   int
}

// DurationResult is the computed audio length. A failed read yields the
// zero value: exactly 0 seconds, Valid false. Seconds is never negative.
type DurationResult struct {
	Seconds float64
	Valid   bool
}

// Clip is fully loaded audio, ready for submission to a recognition
// service: 16-bit little-endian PCM plus the header it came with.
type Clip struct {
	Info
	PCM []byte
}

// ReadInfo opens the file and reads frame count, sample rate, channel
// count and bit depth from the header. The handle is closed on every
// path.
func ReadInfo(fs afero.Fs, path string) (Info, error) {
	f, err := fs.Open(path)
	if err != nil {
		return Info{}, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	d.ReadInfo()
	if err := d.Err(); err != nil {
		return Info{}, err
	}
	if d.SampleRate == 0 || d.NumChans == 0 || d.BitDepth == 0 {
		return Info{}, fmt.Errorf("malformed wav header in %s", path)
	}
	if err := d.FwdToPCM(); err != nil {
		return Info{}, err
	}
	bytesPerFrame := int(d.NumChans) * int(d.BitDepth) / 8
	if bytesPerFrame == 0 {
		// Sub-byte depths (ADPCM-style headers) parse cleanly but
		// have no whole-byte frame size.
		return Info{}, fmt.Errorf("unsupported bit depth %d in %s", d.BitDepth, path)
	}
	return Info{
		Frames:     int(d.PCMSize) / bytesPerFrame,
		SampleRate: int(d.SampleRate),
		Channels:   int(d.NumChans),
		BitDepth:   int(d.BitDepth),
	}, nil
}

// Seconds computes the duration contract: frames over rate, rounded to
// two decimals.
func Seconds(info Info) float64 {
	return math.Round(float64(info.Frames)/float64(info.SampleRate)*100) / 100
}

// Estimate reads the duration of a WAV file. Failures are logged and
// substitute the zero sentinel; they never abort the pipeline.
func Estimate(fs afero.Fs, path string, logger *logging.Logger) DurationResult {
	info, err := ReadInfo(fs, path)
	if err != nil {
		logger.Warn("could not calculate duration", "path", path, "error", err)
		return DurationResult{}
	}
	return DurationResult{Seconds: Seconds(info), Valid: true}
}

// ReadClip loads the entire file into a 16-bit little-endian PCM clip.
func ReadClip(fs afero.Fs, path string) (Clip, error) {
	info, err := ReadInfo(fs, path)
	if err != nil {
		return Clip{}, err
	}

	f, err := fs.Open(path)
	if err != nil {
		return Clip{}, err
	}
	defer f.Close()

	d := wav.NewDecoder(f)
	buf, err := d.FullPCMBuffer()
	if err != nil {
		return Clip{}, fmt.Errorf("read pcm from %s: %w", path, err)
	}

	pcm := make([]byte, 0, len(buf.Data)*2)
	for _, s := range buf.Data {
		v := to16(s, info.BitDepth)
		pcm = append(pcm, byte(v), byte(v>>8))
	}
	return Clip{Info: info, PCM: pcm}, nil
}

// to16 rescales a sample at the source bit depth to signed 16-bit.
// 8-bit WAV samples are unsigned per the format.
func to16(s, depth int) uint16 {
	switch {
	case depth == 8:
		return uint16(int16((s - 128) << 8))
	case depth > 16:
		return uint16(int16(s >> (depth - 16)))
	default:
		return uint16(int16(s))
	}
}
