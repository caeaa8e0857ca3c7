// Package assistant talks to the college assistant backend and turns its
// answers, or the offline demo data, into chat replies.
package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	DefaultBaseURL = "http://localhost:4000/api"
	DefaultTimeout = 15 * time.Second
)

// StatusError is returned when the backend answers with a non-2xx code.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("assistant: query: server error: status %d", e.Code)
	}
	return fmt.Sprintf("assistant: query: server error: status %d: %s", e.Code, e.Body)
}

// Client posts queries to the backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// New returns a client for baseURL with the given request timeout.
func New(baseURL string, timeout time.Duration) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}
}

// BaseURL returns the configured endpoint root.
func (c *Client) BaseURL() string { return c.baseURL }

// Query sends text with the student's context.
func (c *Client) Query(ctx context.Context, text string, uc UserContext) (*Response, error) {
	body, err := json.Marshal(QueryRequest{Text: text, Context: uc})
	if err != nil {
		return nil, fmt.Errorf("assistant: query: encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/query", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("assistant: query: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("assistant: query: request failed (backend may not be running): %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &StatusError{Code: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("assistant: query: decode response: %w", err)
	}
	return &out, nil
}
