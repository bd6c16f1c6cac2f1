package api

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/vmunix/massflix/internal/catalog"
)

// stringList accepts either a JSON array of strings or a single
// comma-separated string. Scanner clients have sent both shapes.
type stringList []string

func (l *stringList) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '[' {
		var items []string
		if err := json.Unmarshal(data, &items); err != nil {
			return err
		}
		*l = items
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	var items []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			items = append(items, part)
		}
	}
	*l = items
	return nil
}

type scanMediaRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	ContentType     string     `json:"content_type"`
	FilePath        string     `json:"file_path"`
	VideoURL        string     `json:"video_url"`
	PosterURL       string     `json:"poster_url"`
	BannerURL       string     `json:"banner_url"`
	ReleaseYear     int        `json:"release_year"`
	SeasonNumber    *int       `json:"season_number"`
	EpisodeNumber   *int       `json:"episode_number"`
	DurationMinutes int        `json:"duration_minutes"`
	Genres          stringList `json:"genres"`
	CastMembers     stringList `json:"cast_members"`
	Director        string     `json:"director"`
	Resolution      string     `json:"resolution"`
	Codec           string     `json:"codec"`
}

type scanMediaResponse struct {
	Success bool  `json:"success"`
	ID      int64 `json:"id"`
}

type contentResponse struct {
	ID              int64     `json:"id"`
	Title           string    `json:"title"`
	Description     string    `json:"description"`
	ContentType     string    `json:"content_type"`
	Status          string    `json:"status"`
	FilePath        string    `json:"file_path,omitempty"`
	VideoURL        string    `json:"video_url"`
	PosterURL       string    `json:"poster_url,omitempty"`
	BannerURL       string    `json:"banner_url,omitempty"`
	ReleaseYear     int       `json:"release_year"`
	SeasonNumber    *int      `json:"season_number,omitempty"`
	EpisodeNumber   *int      `json:"episode_number,omitempty"`
	DurationMinutes int       `json:"duration_minutes"`
	Genres          []string  `json:"genres"`
	CastMembers     []string  `json:"cast_members"`
	Director        string    `json:"director,omitempty"`
	Resolution      string    `json:"resolution,omitempty"`
	Codec           string    `json:"codec,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func contentToResponse(c *catalog.Content) contentResponse {
	genres := c.Genres
	if genres == nil {
		genres = []string{}
	}
	cast := c.CastMembers
	if cast == nil {
		cast = []string{}
	}
	return contentResponse{
		ID:              c.ID,
		Title:           c.Title,
		Description:     c.Description,
		ContentType:     string(c.Type),
		Status:          string(c.Status),
		FilePath:        c.FilePath,
		VideoURL:        c.VideoURL,
		PosterURL:       c.PosterURL,
		BannerURL:       c.BannerURL,
		ReleaseYear:     c.ReleaseYear,
		SeasonNumber:    c.SeasonNumber,
		EpisodeNumber:   c.EpisodeNumber,
		DurationMinutes: c.DurationMinutes,
		Genres:          genres,
		CastMembers:     cast,
		Director:        c.Director,
		Resolution:      c.Resolution,
		Codec:           c.Codec,
		CreatedAt:       c.CreatedAt,
		UpdatedAt:       c.UpdatedAt,
	}
}

type listContentResponse struct {
	Items  []contentResponse `json:"items"`
	Total  int               `json:"total"`
	Limit  int               `json:"limit"`
	Offset int               `json:"offset"`
}

type statusResponse struct {
	Status        string `json:"status"`
	Movies        int    `json:"movies"`
	Series        int    `json:"series"`
	UptimeSeconds int    `json:"uptime_seconds"`
}
