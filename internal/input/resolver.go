package input

import (
	"errors"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/spf13/afero"

	"github.com/voxcribe/voxcribe/internal/logging"
)

// ErrNotFound means the user-supplied path does not exist.
var ErrNotFound = errors.New("file not found")

// Format tags the container implied by the file extension. No magic-byte
// validation happens here; a misnamed file surfaces as a failure in a
// later stage.
type Format int

const (
	// FormatWAV is a linear-PCM container.
	FormatWAV Format = iota
	// FormatMP3 is a compressed container needing normalization.
	FormatMP3
	// FormatOther is anything else, treated as linear PCM uncritically.
	FormatOther
)

// AudioRef is a resolved audio file: the working path plus its format tag.
// The path is rebound by the normalizer when conversion happens.
type AudioRef struct {
	Path   string
	Ext    string
	Format Format
}

// Resolve checks the path exists and derives the extension tag. For
// unrecognized extensions the detected content type is logged and the
// file is passed along as if it were linear PCM.
func Resolve(fs afero.Fs, path string, logger *logging.Logger) (AudioRef, error) {
	exists, err := afero.Exists(fs, path)
	if err != nil {
		return AudioRef{}, err
	}
	if !exists {
		return AudioRef{}, ErrNotFound
	}

	ref := AudioRef{Path: path, Ext: extensionOf(path)}
	switch ref.Ext {
	case "wav":
		ref.Format = FormatWAV
	case "mp3":
		ref.Format = FormatMP3
	default:
		ref.Format = FormatOther
		logger.Warn("unrecognized extension, treating file as linear PCM",
			"path", path, "ext", ref.Ext, "detected", sniff(fs, path))
	}
	return ref, nil
}

// extensionOf returns the lowercased substring after the last dot. A
// name with no dot yields the whole name, matching the split-on-dot
// convention the report consumer expects.
func extensionOf(path string) string {
	if i := strings.LastIndex(path, "."); i >= 0 {
		return strings.ToLower(path[i+1:])
	}
	return strings.ToLower(path)
}

func sniff(fs afero.Fs, path string) string {
	f, err := fs.Open(path)
	if err != nil {
		return "unknown"
	}
	defer f.Close()
	mt, err := mimetype.DetectReader(f)
	if err != nil {
		return "unknown"
	}
	return mt.String()
}
