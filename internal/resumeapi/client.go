package resumeapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	defaultBaseURL = "https://api.resumeoptimizer.io/v1"
	parsePath      = "/parse"
	createPath     = "/create"
)

// Client talks to the third-party resume-processing service.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

// NewClient constructs a new resume service client. An empty baseURL selects
// the production endpoint.
func NewClient(apiKey, baseURL string) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, fmt.Errorf("RESUME_API_KEY is required")
	}
	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	timeout := 120 * time.Second
	if raw := strings.TrimSpace(os.Getenv("RESUME_API_TIMEOUT_SECONDS")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			timeout = time.Duration(parsed) * time.Second
		}
	}
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// APIError carries the remote service's HTTP status and message for non-2xx
// responses.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("resume api error (status %d): %s", e.Status, e.Message)
}

// Style is the render style applied to a created resume.
type Style struct {
	Template string `json:"template"`
	Color    string `json:"color"`
	Font     string `json:"font"`
}

// CreateResult is the outcome of a create call: a time-limited download URL
// plus opaque usage metering, all passed through verbatim.
type CreateResult struct {
	FileURL          string
	FileURLExpiresAt string
	CreditsUsed      *int
	CreditsRemaining *int
}

type parseRequest struct {
	File         string `json:"file"`
	OutputFormat string `json:"output_format"`
}

type parseResponse struct {
	Success *bool          `json:"success,omitempty"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

type createRequest struct {
	Data  map[string]any `json:"data"`
	Style Style          `json:"style"`
}

type createResponse struct {
	Success *bool        `json:"success,omitempty"`
	Data    *createData  `json:"data,omitempty"`
	Meta    *createMeter `json:"metadata,omitempty"`
	Error   string       `json:"error,omitempty"`
}

type createData struct {
	FileURL          string `json:"file_url"`
	FileURLExpiresAt string `json:"file_url_expires_at"`
}

type createMeter struct {
	CreditsUsed      *int `json:"credits_used,omitempty"`
	CreditsRemaining *int `json:"credits_remaining,omitempty"`
}

// Parse converts a base64-encoded PDF into structured resume fields. A nil
// map with a nil error means the service accepted the request but produced
// no usable data.
func (c *Client) Parse(ctx context.Context, fileBase64, outputFormat string) (map[string]any, error) {
	body, err := c.post(ctx, parsePath, parseRequest{
		File:         fileBase64,
		OutputFormat: outputFormat,
	})
	if err != nil {
		return nil, err
	}

	var parsed parseResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("parse response decode: %w", err)
	}
	if parsed.Error != "" || (parsed.Success != nil && !*parsed.Success) {
		return nil, nil
	}
	return parsed.Data, nil
}

// Create renders structured resume fields into a stylized PDF. A result with
// an empty FileURL and a nil error means the service reported failure without
// an HTTP-level error.
func (c *Client) Create(ctx context.Context, content map[string]any, style Style) (*CreateResult, error) {
	body, err := c.post(ctx, createPath, createRequest{
		Data:  content,
		Style: style,
	})
	if err != nil {
		return nil, err
	}

	var created createResponse
	if err := json.Unmarshal(body, &created); err != nil {
		return nil, fmt.Errorf("create response decode: %w", err)
	}

	out := &CreateResult{}
	if created.Error != "" || (created.Success != nil && !*created.Success) {
		return out, nil
	}
	if created.Data != nil {
		out.FileURL = created.Data.FileURL
		out.FileURLExpiresAt = created.Data.FileURLExpiresAt
	}
	if created.Meta != nil {
		out.CreditsUsed = created.Meta.CreditsUsed
		out.CreditsRemaining = created.Meta.CreditsRemaining
	}
	return out, nil
}

func (c *Client) post(ctx context.Context, path string, payload any) ([]byte, error) {
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(encoded))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &APIError{
			Status:  resp.StatusCode,
			Message: extractMessage(body, resp.StatusCode),
		}
	}
	return body, nil
}

// extractMessage pulls a human-readable message out of an error body. The
// service has used both {"error": {"message": ...}} and flat shapes.
func extractMessage(body []byte, status int) string {
	var nested struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(body, &nested); err == nil && nested.Error.Message != "" {
		return nested.Error.Message
	}

	var flat struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &flat); err == nil {
		if flat.Error != "" {
			return flat.Error
		}
		if flat.Message != "" {
			return flat.Message
		}
	}
	return http.StatusText(status)
}
