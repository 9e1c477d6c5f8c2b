package transcribe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/afero"
)

const defaultOpenAIEndpoint = "https://api.openai.com/v1/audio/transcriptions"

// openAIBackend uploads the whole file to the audio.transcriptions
// endpoint and reads back plain text.
type openAIBackend struct {
	fs       afero.Fs
	apiKey   string
	model    string
	endpoint string
	hc       *http.Client
}

type OpenAIOption func(*openAIBackend)

func WithOpenAIEndpoint(endpoint string) OpenAIOption {
	return func(o *openAIBackend) { o.endpoint = endpoint }
}

func NewOpenAIBackend(fs afero.Fs, apiKey, model string, opts ...OpenAIOption) Backend {
	o := &openAIBackend{
		fs:       fs,
		apiKey:   apiKey,
		model:    model,
		endpoint: defaultOpenAIEndpoint,
		hc:       &http.Client{Timeout: 10 * time.Minute},
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

func (o *openAIBackend) Name() string { return "OpenAI API" }

type openAIResponse struct {
	Text string `json:"text"`
}

func (o *openAIBackend) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f, err := o.fs.Open(audioPath)
	if err != nil {
		return "", &RequestError{Cause: err}
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	if err := mw.WriteField("model", o.model); err != nil {
		return "", &RequestError{Cause: err}
	}
	fw, err := mw.CreateFormFile("file", filepath.Base(audioPath))
	if err != nil {
		return "", &RequestError{Cause: err}
	}
	if _, err := io.Copy(fw, f); err != nil {
		return "", &RequestError{Cause: err}
	}
	if err := mw.Close(); err != nil {
		return "", &RequestError{Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, o.endpoint, &body)
	if err != nil {
		return "", &RequestError{Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+o.apiKey)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := o.hc.Do(req)
	if err != nil {
		return "", &RequestError{Cause: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", &RequestError{Cause: fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))}
	}

	var or openAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&or); err != nil {
		return "", &RequestError{Cause: err}
	}
	text := strings.TrimSpace(or.Text)
	if text == "" {
		return "", ErrUnintelligible
	}
	return text, nil
}
