package catalog

import (
	"fmt"
	"strings"
	"time"

	"github.com/vmunix/massflix/pkg/title"
)

// selectColumns is the column list shared by all content reads. file_path is
// stored as NULL when unknown and surfaced as "".
const selectColumns = `id, title, description, content_type, status,
	COALESCE(file_path, ''), video_url, poster_url, banner_url,
	duration_minutes, release_year, season_number, episode_number,
	genres, cast_members, director, resolution, codec, created_at, updated_at`

// scanner matches both *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanContent(row scanner) (*Content, error) {
	c := &Content{}
	var genres, cast string
	err := row.Scan(
		&c.ID, &c.Title, &c.Description, &c.Type, &c.Status,
		&c.FilePath, &c.VideoURL, &c.PosterURL, &c.BannerURL,
		&c.DurationMinutes, &c.ReleaseYear, &c.SeasonNumber, &c.EpisodeNumber,
		&genres, &cast, &c.Director, &c.Resolution, &c.Codec,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	c.Genres = splitList(genres)
	c.CastMembers = splitList(cast)
	return c, nil
}

func addContent(q querier, c *Content) error {
	if c.Status == "" {
		c.Status = StatusPublished
	}
	now := time.Now()
	result, err := q.Exec(`
		INSERT INTO content (title, description, content_type, status, file_path,
			video_url, poster_url, banner_url, duration_minutes, release_year,
			season_number, episode_number, genres, cast_members, director,
			resolution, codec, created_at, updated_at)
		VALUES (?, ?, ?, ?, NULLIF(?, ''), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.Title, c.Description, c.Type, c.Status, c.FilePath,
		c.VideoURL, c.PosterURL, c.BannerURL, c.DurationMinutes, c.ReleaseYear,
		c.SeasonNumber, c.EpisodeNumber, joinList(c.Genres), joinList(c.CastMembers), c.Director,
		c.Resolution, c.Codec, now, now,
	)
	if err != nil {
		return fmt.Errorf("insert content: %w", mapSQLiteError(err))
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("get last insert id: %w", err)
	}
	c.ID = id
	c.CreatedAt = now
	c.UpdatedAt = now
	return nil
}

// AddContent inserts a new catalog entry.
// Sets ID, CreatedAt, and UpdatedAt on the struct.
func (s *Store) AddContent(c *Content) error { return addContent(s.db, c) }

// AddContent inserts a new catalog entry within a transaction.
func (t *Tx) AddContent(c *Content) error { return addContent(t.tx, c) }

func getContent(q querier, id int64) (*Content, error) {
	c, err := scanContent(q.QueryRow(
		`SELECT `+selectColumns+` FROM content WHERE id = ?`, id))
	if err != nil {
		return nil, fmt.Errorf("get content %d: %w", id, mapSQLiteError(err))
	}
	return c, nil
}

// GetContent retrieves a catalog entry by ID.
// Returns ErrNotFound if the entry does not exist.
func (s *Store) GetContent(id int64) (*Content, error) { return getContent(s.db, id) }

// GetContent retrieves a catalog entry by ID within a transaction.
func (t *Tx) GetContent(id int64) (*Content, error) { return getContent(t.tx, id) }

// GetByFilePath retrieves the entry identified by a media-root-relative path.
// Returns ErrNotFound if no entry claims the path.
func (s *Store) GetByFilePath(path string) (*Content, error) {
	c, err := scanContent(s.db.QueryRow(
		`SELECT `+selectColumns+` FROM content WHERE file_path = ?`, path))
	if err != nil {
		return nil, fmt.Errorf("get content by path %q: %w", path, mapSQLiteError(err))
	}
	return c, nil
}

// ContentFilter selects catalog entries for listing.
type ContentFilter struct {
	Type   *ContentType
	Title  *string
	Year   *int
	Limit  int
	Offset int
}

// ListContent returns catalog entries matching the filter plus the total
// count before limit/offset are applied.
func (s *Store) ListContent(f ContentFilter) ([]*Content, int, error) {
	var conditions []string
	var args []any

	if f.Type != nil {
		conditions = append(conditions, "content_type = ?")
		args = append(args, *f.Type)
	}
	if f.Title != nil {
		conditions = append(conditions, "title = ?")
		args = append(args, *f.Title)
	}
	if f.Year != nil {
		conditions = append(conditions, "release_year = ?")
		args = append(args, *f.Year)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM content "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count content: %w", err)
	}

	query := `SELECT ` + selectColumns + ` FROM content ` + whereClause + ` ORDER BY id`
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list content: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var items []*Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan content: %w", err)
		}
		items = append(items, c)
	}
	return items, total, rows.Err()
}

// DeleteContent removes a catalog entry.
// Returns ErrNotFound if the entry does not exist.
func (s *Store) DeleteContent(id int64) error {
	result, err := s.db.Exec(`DELETE FROM content WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete content %d: %w", id, mapSQLiteError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// CountByType returns the number of entries per content type.
func (s *Store) CountByType() (map[ContentType]int, error) {
	rows, err := s.db.Query(`SELECT content_type, COUNT(*) FROM content GROUP BY content_type`)
	if err != nil {
		return nil, fmt.Errorf("count by type: %w", err)
	}
	defer func() { _ = rows.Close() }()

	counts := make(map[ContentType]int)
	for rows.Next() {
		var t ContentType
		var n int
		if err := rows.Scan(&t, &n); err != nil {
			return nil, fmt.Errorf("scan count: %w", err)
		}
		counts[t] = n
	}
	return counts, rows.Err()
}

// Upsert inserts or updates a catalog entry so that re-scans converge on a
// single row per source file. When FilePath is set it is the identity key;
// otherwise the entry is matched by (title, content_type), first exactly on
// the normalized title, then fuzzily at high confidence.
func (s *Store) Upsert(c *Content) error {
	if c.FilePath != "" {
		return s.upsertByFilePath(c)
	}
	return s.upsertByTitle(c)
}

func (s *Store) upsertByFilePath(c *Content) error {
	if c.Status == "" {
		c.Status = StatusPublished
	}
	now := time.Now()
	err := s.db.QueryRow(`
		INSERT INTO content (title, description, content_type, status, file_path,
			video_url, poster_url, banner_url, duration_minutes, release_year,
			season_number, episode_number, genres, cast_members, director,
			resolution, codec, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(file_path) DO UPDATE SET
			title = excluded.title,
			description = excluded.description,
			content_type = excluded.content_type,
			video_url = excluded.video_url,
			poster_url = excluded.poster_url,
			banner_url = excluded.banner_url,
			duration_minutes = excluded.duration_minutes,
			release_year = excluded.release_year,
			season_number = excluded.season_number,
			episode_number = excluded.episode_number,
			genres = excluded.genres,
			cast_members = excluded.cast_members,
			director = excluded.director,
			resolution = excluded.resolution,
			codec = excluded.codec,
			updated_at = excluded.updated_at
		RETURNING id, created_at`,
		c.Title, c.Description, c.Type, c.Status, c.FilePath,
		c.VideoURL, c.PosterURL, c.BannerURL, c.DurationMinutes, c.ReleaseYear,
		c.SeasonNumber, c.EpisodeNumber, joinList(c.Genres), joinList(c.CastMembers), c.Director,
		c.Resolution, c.Codec, now, now,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert content %q: %w", c.FilePath, mapSQLiteError(err))
	}
	c.UpdatedAt = now
	return nil
}

func (s *Store) upsertByTitle(c *Content) error {
	tx, err := s.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	id, err := findByTitle(tx.tx, c.Title, c.Type)
	if err != nil {
		return err
	}

	if id == 0 {
		if err := tx.AddContent(c); err != nil {
			return err
		}
	} else {
		if err := updateContent(tx.tx, id, c); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// findByTitle resolves an existing entry id for the (title, type) fallback
// key. Returns 0 when no entry matches.
func findByTitle(q querier, name string, ctype ContentType) (int64, error) {
	rows, err := q.Query(`SELECT id, title FROM content WHERE content_type = ?`, ctype)
	if err != nil {
		return 0, fmt.Errorf("list titles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []int64
	var titles []string
	for rows.Next() {
		var id int64
		var t string
		if err := rows.Scan(&id, &t); err != nil {
			return 0, fmt.Errorf("scan title: %w", err)
		}
		ids = append(ids, id)
		titles = append(titles, t)
	}
	if err := rows.Err(); err != nil {
		return 0, err
	}

	want := title.Normalize(name)
	for i, t := range titles {
		if title.Normalize(t) == want {
			return ids[i], nil
		}
	}

	// No exact normalized match; accept a fuzzy match only at high
	// confidence so distinct titles are never merged.
	if m := title.Match(name, titles); m.Confidence == title.ConfidenceHigh {
		for i, t := range titles {
			if t == m.Title {
				return ids[i], nil
			}
		}
	}
	return 0, nil
}

func updateContent(q querier, id int64, c *Content) error {
	now := time.Now()
	_, err := q.Exec(`
		UPDATE content SET
			title = ?, description = ?, video_url = ?, poster_url = ?, banner_url = ?,
			duration_minutes = ?, release_year = ?, season_number = ?, episode_number = ?,
			genres = ?, cast_members = ?, director = ?, resolution = ?, codec = ?,
			updated_at = ?
		WHERE id = ?`,
		c.Title, c.Description, c.VideoURL, c.PosterURL, c.BannerURL,
		c.DurationMinutes, c.ReleaseYear, c.SeasonNumber, c.EpisodeNumber,
		joinList(c.Genres), joinList(c.CastMembers), c.Director, c.Resolution, c.Codec,
		now, id,
	)
	if err != nil {
		return fmt.Errorf("update content %d: %w", id, mapSQLiteError(err))
	}
	c.ID = id
	c.UpdatedAt = now
	return nil
}
