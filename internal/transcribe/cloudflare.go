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

// cloudflareBackend targets Workers AI:
// POST https://api.cloudflare.com/client/v4/accounts/{account_id}/ai/run/{model}
type cloudflareBackend struct {
	fs        afero.Fs
	accountID string
	apiToken  string
	model     string
	baseURL   string
	hc        *http.Client
}

type CloudflareOption func(*cloudflareBackend)

func WithCloudflareBaseURL(baseURL string) CloudflareOption {
	return func(c *cloudflareBackend) { c.baseURL = baseURL }
}

func NewCloudflareBackend(fs afero.Fs, accountID, apiToken, model string, opts ...CloudflareOption) Backend {
	c := &cloudflareBackend{
		fs:        fs,
		accountID: accountID,
		apiToken:  apiToken,
		model:     model,
		baseURL:   "https://api.cloudflare.com/client/v4",
		hc:        &http.Client{Timeout: 10 * time.Minute},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *cloudflareBackend) Name() string { return "Cloudflare API" }

type cloudflareResponse struct {
	Success bool            `json:"success"`
	Errors  []any           `json:"errors"`
	Result  json.RawMessage `json:"result"`
}

type cloudflareWhisperResult struct {
	Text string `json:"text"`
}

func (c *cloudflareBackend) Transcribe(ctx context.Context, audioPath string) (string, error) {
	f, err := c.fs.Open(audioPath)
	if err != nil {
		return "", &RequestError{Cause: err}
	}
	defer f.Close()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
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

	url := fmt.Sprintf("%s/accounts/%s/ai/run/%s", c.baseURL, c.accountID, c.model)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return "", &RequestError{Cause: err}
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", mw.FormDataContentType())

	resp, err := c.hc.Do(req)
	if err != nil {
		return "", &RequestError{Cause: err}
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(resp.Body)
		return "", &RequestError{Cause: fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))}
	}

	var cr cloudflareResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return "", &RequestError{Cause: err}
	}
	if !cr.Success {
		return "", &RequestError{Cause: fmt.Errorf("response not successful: %s", string(cr.Result))}
	}
	var wr cloudflareWhisperResult
	if err := json.Unmarshal(cr.Result, &wr); err != nil {
		return "", &RequestError{Cause: fmt.Errorf("unexpected result: %w", err)}
	}
	text := strings.TrimSpace(wr.Text)
	if text == "" {
		return "", ErrUnintelligible
	}
	return text, nil
}
