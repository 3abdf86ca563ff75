package index

import (
	"log/slog"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/moonkyu/haru/internal/checksum"
	"github.com/moonkyu/haru/internal/frontmatter"
	"github.com/moonkyu/haru/internal/storage"
)

var dateFileRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}\.md$`)

const previewMaxRunes = 120

// Sync walks the daily-notes directory and brings the index up to date:
//   - new/changed date files are parsed and upserted
//   - files removed from disk are deleted from the index
func Sync(db *DB, store storage.Provider, dailyDir string, logger *slog.Logger) error {
	metas, err := store.List(dailyDir)
	if err != nil {
		return err
	}

	checksums, err := db.AllChecksums()
	if err != nil {
		return err
	}

	disk := make(map[string]struct{}, len(metas))
	for _, m := range metas {
		name := path.Base(m.Path)
		if !dateFileRe.MatchString(name) {
			continue
		}
		date := strings.TrimSuffix(name, ".md")
		disk[date] = struct{}{}

		if checksums[date] == m.Checksum {
			continue
		}

		data, err := store.Read(m.Path)
		if err != nil {
			logger.Warn("sync: read failed", slog.String("date", date), slog.String("error", err.Error()))
			continue
		}
		if err := IndexNote(db, date, data); err != nil {
			logger.Warn("sync: index failed", slog.String("date", date), slog.String("error", err.Error()))
		} else {
			logger.Debug("sync: indexed", slog.String("date", date))
		}
	}

	// Remove stale entries.
	for date := range checksums {
		if _, ok := disk[date]; !ok {
			if err := db.DeleteDaily(date); err != nil {
				logger.Warn("sync: delete failed", slog.String("date", date), slog.String("error", err.Error()))
			} else {
				logger.Debug("sync: removed stale", slog.String("date", date))
			}
		}
	}

	return nil
}

// IndexNote splits raw note content and upserts its row. Shared by the
// startup sync, the watcher, and the append path.
func IndexNote(db *DB, date string, data []byte) error {
	fm, body := frontmatter.Parse(string(data))
	tags := fm.StringList("tags")
	if tags == nil {
		tags = []string{}
	}

	return db.UpsertDaily(DailyRow{
		Date:      date,
		Tags:      tags,
		Preview:   preview(body),
		Checksum:  checksum.Sum(data),
		UpdatedAt: time.Now(),
	}, body)
}

// preview joins the first three non-blank body lines and truncates to 120
// runes.
func preview(body string) string {
	var kept []string
	for _, line := range strings.Split(body, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		kept = append(kept, line)
		if len(kept) == 3 {
			break
		}
	}
	joined := strings.Join(kept, " ")
	runes := []rune(joined)
	if len(runes) > previewMaxRunes {
		return string(runes[:previewMaxRunes])
	}
	return joined
}
