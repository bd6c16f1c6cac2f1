// Package api implements the catalog REST API, including the scan-media
// ingestion endpoint the scanner submits to.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/vmunix/massflix/internal/catalog"
)

// Config holds API server configuration.
type Config struct {
	// ScannerToken, when set, is required in the X-Scanner-Token header on
	// mutating requests. Empty disables authentication.
	ScannerToken string
}

// Server is the catalog API server.
type Server struct {
	store   *catalog.Store
	cfg     Config
	log     *slog.Logger
	started time.Time
}

// New creates a new API server over the given store.
func New(store *catalog.Store, cfg Config, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{store: store, cfg: cfg, log: log, started: time.Now()}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Ingestion
	mux.HandleFunc("POST /api/scan-media", s.requireScannerToken(s.scanMedia))

	// Content
	mux.HandleFunc("GET /api/content", s.listContent)
	mux.HandleFunc("GET /api/content/{id}", s.getContent)
	mux.HandleFunc("DELETE /api/content/{id}", s.requireScannerToken(s.deleteContent))

	// System
	mux.HandleFunc("GET /api/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// pathID extracts an integer ID from the URL path.
func pathID(r *http.Request, name string) (int64, error) {
	idStr := r.PathValue(name)
	if idStr == "" {
		return 0, fmt.Errorf("missing path parameter: %s", name)
	}
	return strconv.ParseInt(idStr, 10, 64)
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

// queryString extracts an optional string from query string.
func queryString(r *http.Request, name string) *string {
	val := r.URL.Query().Get(name)
	if val == "" {
		return nil
	}
	return &val
}

// scanMedia upserts one scanned item into the catalog. Re-submitting the
// same file path updates the existing row instead of creating a duplicate.
func (s *Server) scanMedia(w http.ResponseWriter, r *http.Request) {
	var req scanMediaRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}

	if req.Title == "" {
		writeError(w, http.StatusBadRequest, "MISSING_TITLE", "title is required")
		return
	}
	contentType := catalog.ContentType(req.ContentType)
	if !contentType.Valid() {
		writeError(w, http.StatusBadRequest, "INVALID_TYPE", "content_type must be 'movie' or 'series'")
		return
	}

	c := &catalog.Content{
		Title:           req.Title,
		Description:     req.Description,
		Type:            contentType,
		FilePath:        req.FilePath,
		VideoURL:        req.VideoURL,
		PosterURL:       req.PosterURL,
		BannerURL:       req.BannerURL,
		DurationMinutes: req.DurationMinutes,
		ReleaseYear:     req.ReleaseYear,
		SeasonNumber:    req.SeasonNumber,
		EpisodeNumber:   req.EpisodeNumber,
		Genres:          req.Genres,
		CastMembers:     req.CastMembers,
		Director:        req.Director,
		Resolution:      req.Resolution,
		Codec:           req.Codec,
	}

	if err := s.store.Upsert(c); err != nil {
		s.log.Error("upsert failed", "title", c.Title, "path", c.FilePath, "error", err)
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	s.log.Info("content upserted", "id", c.ID, "title", c.Title, "type", c.Type)
	writeJSON(w, http.StatusOK, scanMediaResponse{Success: true, ID: c.ID})
}

func (s *Server) listContent(w http.ResponseWriter, r *http.Request) {
	filter := catalog.ContentFilter{
		Limit:  queryInt(r, "limit", 50),
		Offset: queryInt(r, "offset", 0),
	}

	if typeStr := queryString(r, "type"); typeStr != nil {
		t := catalog.ContentType(*typeStr)
		if !t.Valid() {
			writeError(w, http.StatusBadRequest, "INVALID_TYPE", "type must be 'movie' or 'series'")
			return
		}
		filter.Type = &t
	}
	filter.Title = queryString(r, "title")
	if year := queryString(r, "year"); year != nil {
		y, err := strconv.Atoi(*year)
		if err != nil {
			writeError(w, http.StatusBadRequest, "INVALID_YEAR", "year must be an integer")
			return
		}
		filter.Year = &y
	}

	items, total, err := s.store.ListContent(filter)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	resp := listContentResponse{
		Items:  make([]contentResponse, len(items)),
		Total:  total,
		Limit:  filter.Limit,
		Offset: filter.Offset,
	}
	for i, c := range items {
		resp.Items[i] = contentToResponse(c)
	}

	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getContent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	c, err := s.store.GetContent(id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Content not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, contentToResponse(c))
}

func (s *Server) deleteContent(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	if err := s.store.DeleteContent(id); err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Content not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	counts, err := s.store.CountByType()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "DB_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, statusResponse{
		Status:        "ok",
		Movies:        counts[catalog.ContentTypeMovie],
		Series:        counts[catalog.ContentTypeSeries],
		UptimeSeconds: int(time.Since(s.started).Seconds()),
	})
}
