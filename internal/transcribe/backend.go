package transcribe

import (
	"context"
	"errors"
	"fmt"
)

// Kind is the closed set of recognition outcomes.
type Kind int

const (
	// KindSuccess carries the recognized text verbatim.
	KindSuccess Kind = iota
	// KindUnintelligible means audio was present but not confidently
	// recognizable.
	KindUnintelligible
	// KindUnreachable means the service could not be reached or the
	// request failed outright.
	KindUnreachable
)

// Result is the outcome of a recognition call. Text is always set:
// on failure a human-readable message substitutes for the transcript,
// so downstream formatting never branches.
type Result struct {
	Kind Kind
	Text string
}

// ErrUnintelligible is returned by backends when the service processed
// the audio but produced no confident transcript.
var ErrUnintelligible = errors.New("audio was not clear enough to recognize")

// RequestError wraps transport and request-level failures.
type RequestError struct {
	Cause error
}

func (e *RequestError) Error() string { return fmt.Sprintf("recognition request failed: %v", e.Cause) }
func (e *RequestError) Unwrap() error { return e.Cause }

// Backend is a pluggable recognition backend.
type Backend interface {
	// Name is the display name used in user-facing error text,
	// e.g. "Google API".
	Name() string
	Transcribe(ctx context.Context, audioPath string) (string, error)
}
