package ingest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Submit(t *testing.T) {
	var gotPath, gotToken string
	var gotRecord ContentRecord

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotToken = r.Header.Get(TokenHeader)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotRecord))
		_ = json.NewEncoder(w).Encode(SubmitResponse{Success: true, ID: 42})
	}))
	defer srv.Close()

	client := NewClient(srv.URL+"/api", "sekret", time.Second)
	rec := &ContentRecord{
		Title:           "The Movie Title",
		Description:     MovieDescription,
		ContentType:     "movie",
		FilePath:        "movies/The.Movie.Title.(2021).1080p.mkv",
		VideoURL:        "/media/movies/The.Movie.Title.(2021).1080p.mkv",
		ReleaseYear:     2021,
		DurationMinutes: DefaultMovieMinutes,
		Genres:          []string{},
		CastMembers:     []string{},
	}

	resp, err := client.Submit(context.Background(), rec)
	require.NoError(t, err)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(42), resp.ID)
	assert.Equal(t, "/api/scan-media", gotPath)
	assert.Equal(t, "sekret", gotToken)
	assert.Equal(t, "The Movie Title", gotRecord.Title)
	assert.Equal(t, "/media/movies/The.Movie.Title.(2021).1080p.mkv", gotRecord.VideoURL)
}

func TestClient_Submit_NoTokenHeaderWhenUnset(t *testing.T) {
	var sawHeader bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, sawHeader = r.Header[TokenHeader]
		_ = json.NewEncoder(w).Encode(SubmitResponse{Success: true, ID: 1})
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	_, err := client.Submit(context.Background(), &ContentRecord{Title: "X", ContentType: "movie"})
	require.NoError(t, err)
	assert.False(t, sawHeader, "token header attached without a configured token")
}

func TestClient_Submit_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "", time.Second)
	_, err := client.Submit(context.Background(), &ContentRecord{Title: "X", ContentType: "movie"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 500")
}

func TestClient_Submit_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // closed on purpose

	client := NewClient(srv.URL, "", time.Second)
	_, err := client.Submit(context.Background(), &ContentRecord{Title: "X", ContentType: "movie"})
	require.Error(t, err)
}
