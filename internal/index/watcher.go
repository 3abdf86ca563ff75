package index

import (
	"context"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/moonkyu/haru/internal/storage"
)

// EventCallback is called after a watcher-driven index change.
// kind is one of "created", "updated", "deleted".
type EventCallback func(kind string, date string)

// Watch starts an fsnotify watcher on the daily-notes directory and
// processes file change events until ctx is cancelled. It calls cb (if
// non-nil) after each successful index mutation.
//
// The daily directory is flat, so no recursive watching is needed. When the
// directory itself does not exist yet it is created first; the append path
// creates it too, but the watcher must be able to start on a fresh vault.
func Watch(ctx context.Context, db *DB, store storage.Provider, vaultRoot, dailyDir string, logger *slog.Logger, cb EventCallback) error {
	absDir := filepath.Join(vaultRoot, dailyDir)
	if err := os.MkdirAll(absDir, 0o755); err != nil {
		return err
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	if err := w.Add(absDir); err != nil {
		return err
	}

	logger.Info("watcher: started", slog.String("dir", absDir))

	for {
		select {
		case <-ctx.Done():
			logger.Info("watcher: stopped")
			return nil

		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}

			name := filepath.Base(ev.Name)
			if !dateFileRe.MatchString(name) {
				continue
			}
			date := strings.TrimSuffix(name, ".md")
			rel := path.Join(dailyDir, name)

			switch {
			case ev.Op&(fsnotify.Create|fsnotify.Write) != 0:
				data, readErr := store.Read(rel)
				if readErr != nil {
					logger.Warn("watcher: read failed", slog.String("date", date), slog.String("error", readErr.Error()))
					continue
				}
				kind := "updated"
				if prev, _ := db.GetChecksum(date); prev == "" {
					kind = "created"
				}
				if idxErr := IndexNote(db, date, data); idxErr != nil {
					logger.Warn("watcher: index failed", slog.String("date", date), slog.String("error", idxErr.Error()))
					continue
				}
				logger.Debug("watcher: indexed", slog.String("date", date), slog.String("op", kind))
				if cb != nil {
					cb(kind, date)
				}

			case ev.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				if delErr := db.DeleteDaily(date); delErr != nil {
					logger.Warn("watcher: delete failed", slog.String("date", date), slog.String("error", delErr.Error()))
					continue
				}
				logger.Debug("watcher: removed", slog.String("date", date))
				if cb != nil {
					cb("deleted", date)
				}
			}

		case watchErr, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher: error", slog.String("error", watchErr.Error()))
		}
	}
}
