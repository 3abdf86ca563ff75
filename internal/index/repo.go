package index

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/moonkyu/haru/internal/models"
)

// DailyRow represents a row in the daily_notes table.
type DailyRow struct {
	Date      string
	Tags      []string
	Preview   string
	Checksum  string
	UpdatedAt time.Time
}

// SearchResult represents one search hit.
type SearchResult struct {
	Date    string `json:"date"`
	Snippet string `json:"snippet"`
}

// UpsertDaily inserts or replaces a daily note row and its FTS entry.
func (db *DB) UpsertDaily(r DailyRow, body string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // best-effort on failure path

	tagsJSON, _ := json.Marshal(r.Tags)

	// Body is stored in the notes table too, for the fallback search.
	_, err = tx.Exec(`
		INSERT INTO daily_notes (date, tags, preview, checksum, body, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			tags       = excluded.tags,
			preview    = excluded.preview,
			checksum   = excluded.checksum,
			body       = excluded.body,
			updated_at = excluded.updated_at
	`, r.Date, string(tagsJSON), r.Preview, r.Checksum, body, r.UpdatedAt)
	if err != nil {
		return fmt.Errorf("index: upsert daily note: %w", err)
	}

	if err := ftsUpsert(tx, r.Date, body, r.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteDaily removes a daily note row and its FTS entry.
func (db *DB) DeleteDaily(date string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("index: begin tx: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	ftsDelete(tx, date)
	_, _ = tx.Exec(`DELETE FROM daily_notes WHERE date = ?`, date)

	return tx.Commit()
}

// GetChecksum returns the stored checksum for a date, or empty string if not
// indexed.
func (db *DB) GetChecksum(date string) (string, error) {
	var cs string
	err := db.conn.QueryRow(`SELECT checksum FROM daily_notes WHERE date = ?`, date).Scan(&cs)
	if err != nil {
		return "", nil // not found is fine
	}
	return cs, nil
}

// AllChecksums returns date → checksum for every indexed daily note.
func (db *DB) AllChecksums() (map[string]string, error) {
	rows, err := db.conn.Query(`SELECT date, checksum FROM daily_notes`)
	if err != nil {
		return nil, fmt.Errorf("index: all checksums: %w", err)
	}
	defer rows.Close()
	out := make(map[string]string)
	for rows.Next() {
		var d, cs string
		if err := rows.Scan(&d, &cs); err != nil {
			return nil, err
		}
		out[d] = cs
	}
	return out, rows.Err()
}

// Recent returns the newest daily notes by date, descending.
func (db *DB) Recent(limit int) ([]models.RecentNote, error) {
	if limit <= 0 {
		limit = 7
	}
	rows, err := db.conn.Query(`
		SELECT date, tags, preview
		FROM daily_notes
		ORDER BY date DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("index: recent: %w", err)
	}
	defer rows.Close()

	var out []models.RecentNote
	for rows.Next() {
		var n models.RecentNote
		var tagsJSON string
		if err := rows.Scan(&n.Date, &tagsJSON, &n.Preview); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(tagsJSON), &n.Tags); err != nil {
			n.Tags = nil
		}
		if n.Tags == nil {
			n.Tags = []string{}
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

// TagCounts aggregates frontmatter tags over the newest scanLimit notes and
// returns them frequency-sorted, ties broken alphabetically.
func (db *DB) TagCounts(scanLimit int) ([]models.TagCount, error) {
	if scanLimit <= 0 {
		scanLimit = 30
	}
	rows, err := db.conn.Query(`
		SELECT tags
		FROM daily_notes
		ORDER BY date DESC
		LIMIT ?
	`, scanLimit)
	if err != nil {
		return nil, fmt.Errorf("index: tag counts: %w", err)
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var tagsJSON string
		if err := rows.Scan(&tagsJSON); err != nil {
			return nil, err
		}
		var tags []string
		if err := json.Unmarshal([]byte(tagsJSON), &tags); err != nil {
			continue
		}
		for _, t := range tags {
			counts[t]++
		}
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]models.TagCount, 0, len(counts))
	for tag, count := range counts {
		out = append(out, models.TagCount{Tag: tag, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Tag < out[j].Tag
	})
	return out, nil
}
