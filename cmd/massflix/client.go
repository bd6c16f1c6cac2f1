package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Client wraps HTTP calls to the massflix server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new massflix API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

// API response types (mirror server types)

type StatusResponse struct {
	Status        string `json:"status"`
	Movies        int    `json:"movies"`
	Series        int    `json:"series"`
	UptimeSeconds int    `json:"uptime_seconds"`
}

type ContentResponse struct {
	ID              int64    `json:"id"`
	Title           string   `json:"title"`
	ContentType     string   `json:"content_type"`
	FilePath        string   `json:"file_path,omitempty"`
	VideoURL        string   `json:"video_url"`
	ReleaseYear     int      `json:"release_year"`
	SeasonNumber    *int     `json:"season_number,omitempty"`
	EpisodeNumber   *int     `json:"episode_number,omitempty"`
	DurationMinutes int      `json:"duration_minutes"`
	Genres          []string `json:"genres"`
}

type ListContentResponse struct {
	Items  []ContentResponse `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

// Status fetches the server status.
func (c *Client) Status() (*StatusResponse, error) {
	var status StatusResponse
	if err := c.get("/api/status", &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// ListContent fetches catalog entries, optionally filtered by type.
func (c *Client) ListContent(contentType string, limit int) (*ListContentResponse, error) {
	path := fmt.Sprintf("/api/content?limit=%d", limit)
	if contentType != "" {
		path += "&type=" + contentType
	}
	var list ListContentResponse
	if err := c.get(path, &list); err != nil {
		return nil, err
	}
	return &list, nil
}
