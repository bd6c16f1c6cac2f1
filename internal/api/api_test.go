package api

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"github.com/vmunix/massflix/internal/catalog"
	"github.com/vmunix/massflix/internal/ingest"
	"github.com/vmunix/massflix/internal/migrations"
)

func newTestServer(t *testing.T, token string) (*httptest.Server, *catalog.Store) {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(migrations.InitialSQL)
	require.NoError(t, err)

	store := catalog.NewStore(db)
	srv := New(store, Config{ScannerToken: token}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	ts := httptest.NewServer(mux)
	t.Cleanup(ts.Close)
	return ts, store
}

func postScanMedia(t *testing.T, ts *httptest.Server, token string, body string) *http.Response {
	t.Helper()
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/api/scan-media", bytes.NewBufferString(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(ingest.TokenHeader, token)
	}
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	return resp
}

func decodeJSON[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

const movieBody = `{
	"title": "The Movie Title 1080p",
	"description": "Movie added automatically",
	"content_type": "movie",
	"file_path": "movies/The.Movie.Title.(2021).1080p.mkv",
	"video_url": "/media/movies/The.Movie.Title.(2021).1080p.mkv",
	"poster_url": "/media/movies/cover.jpg",
	"release_year": 2021,
	"duration_minutes": 120,
	"genres": [],
	"cast_members": []
}`

func TestScanMedia_CreatesContent(t *testing.T) {
	ts, _ := newTestServer(t, "")

	resp := postScanMedia(t, ts, "", movieBody)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	result := decodeJSON[scanMediaResponse](t, resp)
	assert.True(t, result.Success)
	assert.Greater(t, result.ID, int64(0))

	get, err := ts.Client().Get(fmt.Sprintf("%s/api/content/%d", ts.URL, result.ID))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, get.StatusCode)

	c := decodeJSON[contentResponse](t, get)
	assert.Equal(t, "The Movie Title 1080p", c.Title)
	assert.Equal(t, "movie", c.ContentType)
	assert.Equal(t, "published", c.Status)
	assert.Equal(t, "movies/The.Movie.Title.(2021).1080p.mkv", c.FilePath)
	assert.Equal(t, "/media/movies/The.Movie.Title.(2021).1080p.mkv", c.VideoURL)
	assert.Equal(t, 2021, c.ReleaseYear)
	assert.Equal(t, 120, c.DurationMinutes)
}

func TestScanMedia_RescanConvergesOnOneRow(t *testing.T) {
	ts, _ := newTestServer(t, "")

	first := decodeJSON[scanMediaResponse](t, postScanMedia(t, ts, "", movieBody))

	// Second pass for the same file carries probed metadata.
	updated := `{
		"title": "The Movie Title 1080p",
		"description": "Movie added automatically",
		"content_type": "movie",
		"file_path": "movies/The.Movie.Title.(2021).1080p.mkv",
		"video_url": "/media/movies/The.Movie.Title.(2021).1080p.mkv",
		"release_year": 2021,
		"duration_minutes": 142,
		"resolution": "1920x1080",
		"codec": "h264",
		"genres": [],
		"cast_members": []
	}`
	second := decodeJSON[scanMediaResponse](t, postScanMedia(t, ts, "", updated))
	assert.Equal(t, first.ID, second.ID)

	list, err := ts.Client().Get(ts.URL + "/api/content")
	require.NoError(t, err)
	resp := decodeJSON[listContentResponse](t, list)
	require.Equal(t, 1, resp.Total)
	assert.Equal(t, 142, resp.Items[0].DurationMinutes)
	assert.Equal(t, "1920x1080", resp.Items[0].Resolution)
}

func TestScanMedia_Validation(t *testing.T) {
	ts, _ := newTestServer(t, "")

	tests := []struct {
		name string
		body string
		code string
	}{
		{"missing title", `{"content_type": "movie"}`, "MISSING_TITLE"},
		{"bad type", `{"title": "x", "content_type": "podcast"}`, "INVALID_TYPE"},
		{"malformed json", `{"title": `, "INVALID_JSON"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := postScanMedia(t, ts, "", tt.body)
			require.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.code, decodeJSON[errorResponse](t, resp).Code)
		})
	}
}

func TestScanMedia_CommaSeparatedLists(t *testing.T) {
	ts, _ := newTestServer(t, "")

	body := `{
		"title": "Heat",
		"content_type": "movie",
		"file_path": "movies/Heat.mkv",
		"video_url": "/media/movies/Heat.mkv",
		"genres": "Action, Crime",
		"cast_members": ["Al Pacino", "Robert De Niro"]
	}`
	result := decodeJSON[scanMediaResponse](t, postScanMedia(t, ts, "", body))

	get, err := ts.Client().Get(fmt.Sprintf("%s/api/content/%d", ts.URL, result.ID))
	require.NoError(t, err)
	c := decodeJSON[contentResponse](t, get)
	assert.Equal(t, []string{"Action", "Crime"}, c.Genres)
	assert.Equal(t, []string{"Al Pacino", "Robert De Niro"}, c.CastMembers)
}

func TestScanMedia_TokenAuth(t *testing.T) {
	ts, _ := newTestServer(t, "s3cret")

	resp := postScanMedia(t, ts, "", movieBody)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "UNAUTHORIZED", decodeJSON[errorResponse](t, resp).Code)

	resp = postScanMedia(t, ts, "wrong", movieBody)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	_ = resp.Body.Close()

	resp = postScanMedia(t, ts, "s3cret", movieBody)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	_ = resp.Body.Close()

	// Reads stay open without a token.
	list, err := ts.Client().Get(ts.URL + "/api/content")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, list.StatusCode)
	_ = list.Body.Close()
}

func TestGetContent_NotFound(t *testing.T) {
	ts, _ := newTestServer(t, "")

	resp, err := ts.Client().Get(ts.URL + "/api/content/9999")
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeJSON[errorResponse](t, resp).Code)
}

func TestListContent_TypeFilter(t *testing.T) {
	ts, store := newTestServer(t, "")

	require.NoError(t, store.AddContent(&catalog.Content{Title: "Movie A", Type: catalog.ContentTypeMovie}))
	require.NoError(t, store.AddContent(&catalog.Content{Title: "Show B", Type: catalog.ContentTypeSeries}))
	require.NoError(t, store.AddContent(&catalog.Content{Title: "Show C", Type: catalog.ContentTypeSeries}))

	resp, err := ts.Client().Get(ts.URL + "/api/content?type=series")
	require.NoError(t, err)
	list := decodeJSON[listContentResponse](t, resp)
	assert.Equal(t, 2, list.Total)
	for _, item := range list.Items {
		assert.Equal(t, "series", item.ContentType)
	}

	resp, err = ts.Client().Get(ts.URL + "/api/content?type=podcast")
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestDeleteContent(t *testing.T) {
	ts, store := newTestServer(t, "")

	c := &catalog.Content{Title: "Doomed", Type: catalog.ContentTypeMovie}
	require.NoError(t, store.AddContent(c))

	req, err := http.NewRequest(http.MethodDelete, fmt.Sprintf("%s/api/content/%d", ts.URL, c.ID), nil)
	require.NoError(t, err)
	resp, err := ts.Client().Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	_ = resp.Body.Close()

	resp, err = ts.Client().Do(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	_ = resp.Body.Close()
}

func TestStatus(t *testing.T) {
	ts, store := newTestServer(t, "")

	require.NoError(t, store.AddContent(&catalog.Content{Title: "Movie A", Type: catalog.ContentTypeMovie}))
	require.NoError(t, store.AddContent(&catalog.Content{Title: "Show B", Type: catalog.ContentTypeSeries}))

	resp, err := ts.Client().Get(ts.URL + "/api/status")
	require.NoError(t, err)
	status := decodeJSON[statusResponse](t, resp)
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, 1, status.Movies)
	assert.Equal(t, 1, status.Series)
}
