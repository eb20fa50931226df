package corrector

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

	"github.com/rs/zerolog/log"
)

// DefaultTimeout bounds every request when the config does not override it.
// Correction of a long document on a GPU-backed model is slow, so this is
// deliberately generous.
const DefaultTimeout = 120 * time.Second

// Client talks to the correction API. All methods are safe for use from a
// single goroutine at a time; the TUI and the CLI each own one Client.
type Client struct {
	baseURL string
	httpc   *http.Client
}

// NewClient creates a Client for the API at baseURL. A zero timeout falls
// back to DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured API origin.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Health issues the health check. The returned error covers both transport
// failures and a response whose status is not "ok".
func (c *Client) Health(ctx context.Context) (Health, error) {
	var health Health

	body, err := c.get(ctx, "/api/health")
	if err != nil {
		return health, err
	}

	if err := json.Unmarshal(body, &health); err != nil {
		return health, fmt.Errorf("decode health response: %w", err)
	}

	if !health.OK() {
		return health, fmt.Errorf("api unhealthy: status %q", health.Status)
	}

	return health, nil
}

// CorrectParagraphs submits text for paragraph-level correction. Empty or
// whitespace-only text is rejected with ErrEmptyText before any request.
func (c *Client) CorrectParagraphs(ctx context.Context, text, model string) (*CorrectResponse, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}
	if model == "" {
		model = DefaultModel
	}

	payload := struct {
		Text  string `json:"text"`
		Model string `json:"model"`
	}{Text: text, Model: model}

	body, err := c.postJSON(ctx, "/api/correct-paragraphs", payload)
	if err != nil {
		return nil, err
	}

	var resp CorrectResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode correction response: %w", err)
	}

	if !resp.Success {
		return nil, &APIError{Message: resp.Error}
	}

	if err := resp.Validate(); err != nil {
		return nil, fmt.Errorf("invalid correction response: %w", err)
	}

	log.Debug().
		Str("model", resp.ModelUsed).
		Int("paragraphs", resp.TotalParagraphs).
		Int("changed", len(resp.Changed())).
		Msg("correction complete")

	return &resp, nil
}

// UploadDocx sends the named document as a multipart upload and returns the
// extracted text. Only filenames ending in .docx are accepted; anything else
// is rejected with ErrNotDocx before any request.
func (c *Client) UploadDocx(ctx context.Context, filename string, content io.Reader) (*UploadResult, error) {
	if !strings.HasSuffix(strings.ToLower(filename), ".docx") {
		return nil, ErrNotDocx
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("finalize multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/upload-docx", &buf)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())

	body, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var result UploadResult
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if !result.Success {
		return nil, &APIError{Message: result.Error}
	}

	log.Debug().
		Str("filename", result.Filename).
		Int("paragraphs", result.ParagraphCount).
		Msg("document uploaded")

	return &result, nil
}

// DownloadDocx asks the API to render text into a DOCX document and returns
// the binary stream. Empty text is rejected with ErrEmptyText before any
// request.
func (c *Client) DownloadDocx(ctx context.Context, text, filename string) ([]byte, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyText
	}

	payload := struct {
		Text     string `json:"text"`
		Filename string `json:"filename"`
	}{Text: text, Filename: filename}

	body, err := c.postJSON(ctx, "/api/download-docx", payload)
	if err != nil {
		return nil, err
	}

	log.Debug().
		Str("filename", filename).
		Int("bytes", len(body)).
		Msg("document generated")

	return body, nil
}

// get issues a GET and returns the raw body of a 2xx response.
func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	return c.do(req)
}

// postJSON issues a POST with a JSON body and returns the raw body of a 2xx
// response.
func (c *Client) postJSON(ctx context.Context, path string, payload any) ([]byte, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encode request body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	return c.do(req)
}

// do executes the request and reads the full body. Non-2xx statuses become
// an *APIError, carrying the server's error string when the body is a JSON
// object with an "error" field.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request %s: %w", req.URL.Path, err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Str("path", req.URL.Path).Msg("close response body")
		}
	}()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var errBody struct {
			Error string `json:"error"`
		}
		if err := json.Unmarshal(body, &errBody); err == nil {
			apiErr.Message = errBody.Error
		}
		return nil, apiErr
	}

	return body, nil
}
