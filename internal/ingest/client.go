package ingest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// TokenHeader carries the opaque scanner credential when configured.
const TokenHeader = "X-Scanner-Token"

// Client submits content records to the massflixd ingestion endpoint.
type Client struct {
	baseURL string // e.g. http://localhost:3001/api
	token   string // opaque; attached verbatim, never interpreted
	http    *http.Client
}

// NewClient creates an ingestion client. timeout bounds each submission so an
// unreachable server cannot stall the batch.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		token:   token,
		http:    &http.Client{Timeout: timeout},
	}
}

// Submit posts one record to the ingestion endpoint. The endpoint upserts by
// the record's identity key, so resubmitting the same record is safe.
func (c *Client) Submit(ctx context.Context, rec *ContentRecord) (*SubmitResponse, error) {
	body, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encode record: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/scan-media", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.token != "" {
		req.Header.Set(TokenHeader, c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit %q: %w", rec.Title, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("submit %q: status %d: %s", rec.Title, resp.StatusCode, strings.TrimSpace(string(msg)))
	}

	var sr SubmitResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("decode response for %q: %w", rec.Title, err)
	}
	return &sr, nil
}
