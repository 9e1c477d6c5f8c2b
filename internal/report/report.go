package report

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const (
	bannerWidth = 70
	timeLayout  = "2006-01-02 15:04:05.000000"
)

// Report is the human-readable run summary. It is built once from the
// pipeline outputs; rendering has no branches on whether transcription
// succeeded, the text field carries whatever the client produced.
type Report struct {
	FileName  string
	Seconds   float64
	Processed time.Time
	Text      string
}

func New(fileName string, seconds float64, processed time.Time, text string) Report {
	return Report{FileName: fileName, Seconds: seconds, Processed: processed, Text: text}
}

// Render produces the fixed-layout block. Deterministic for fixed
// inputs; the timestamp is the only clock-dependent field and is
// injected by the caller.
func (r Report) Render() string {
	banner := strings.Repeat("=", bannerWidth)

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(banner + "\n")
	b.WriteString("TRANSCRIPTION REPORT\n")
	b.WriteString(banner + "\n")
	fmt.Fprintf(&b, "File Name     : %s\n", r.FileName)
	fmt.Fprintf(&b, "Duration      : %s seconds\n", FormatSeconds(r.Seconds))
	fmt.Fprintf(&b, "Time Processed: %s\n", r.Processed.Format(timeLayout))
	b.WriteString("\nTranscribed Text:\n\n")
	b.WriteString(r.Text + "\n")
	b.WriteString(banner)
	return b.String()
}

// FormatSeconds renders a duration value with minimal digits but never
// as a bare integer: 5 -> "5.0", 2.55 -> "2.55", the sentinel -> "0.0".
func FormatSeconds(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// Save writes the rendered report verbatim to path, overwriting any
// existing file.
func Save(fs afero.Fs, path string, rendered string) error {
	return afero.WriteFile(fs, path, []byte(rendered), 0o644)
}
