package transcribe

import (
	"context"
	"errors"
	"fmt"

	"github.com/voxcribe/voxcribe/internal/logging"
)

// MsgUnintelligible substitutes for the transcript when recognition
// yields nothing confident.
const MsgUnintelligible = "Warning: Audio was not clear enough to recognize."

// Client is the boundary the pipeline talks to. Every backend outcome,
// including failure, is converted to a Result; no error crosses this
// boundary and no retry is attempted.
type Client struct {
	backend Backend
	logger  *logging.Logger
}

func NewClient(backend Backend, logger *logging.Logger) *Client {
	return &Client{backend: backend, logger: logger}
}

// Run submits the audio at path and maps the outcome onto the closed
// result kinds.
func (c *Client) Run(ctx context.Context, audioPath string) Result {
	c.logger.Info("transcribing audio", "backend", c.backend.Name(), "path", audioPath)
	text, err := c.backend.Transcribe(ctx, audioPath)
	switch {
	case err == nil:
		return Result{Kind: KindSuccess, Text: text}
	case errors.Is(err, ErrUnintelligible):
		c.logger.Warn("audio not recognizable", "backend", c.backend.Name())
		return Result{Kind: KindUnintelligible, Text: MsgUnintelligible}
	default:
		cause := err
		var re *RequestError
		if errors.As(err, &re) {
			cause = re.Cause
		}
		c.logger.Error("recognition request failed", "backend", c.backend.Name(), "error", cause)
		return Result{
			Kind: KindUnreachable,
			Text: fmt.Sprintf("Error: Could not reach %s: %v", c.backend.Name(), cause),
		}
	}
}
