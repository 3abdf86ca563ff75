package index

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/moonkyu/haru/internal/storage"
)

// eventually polls fn every tick until it returns true or timeout elapses.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Error(msg)
}

func TestWatcher_NewDateFileIndexed(t *testing.T) {
	db := testDB(t)
	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var mu sync.Mutex
	var events []string

	go Watch(ctx, db, store, vaultDir, "10.Daily Notes", quietLogger(), func(kind, date string) {
		mu.Lock()
		events = append(events, kind+":"+date)
		mu.Unlock()
	})

	time.Sleep(100 * time.Millisecond)

	raw := []byte("---\ntags:\n  - daily\n---\n\n# 2025-01-15 (수요일)\n\n## 메모\n\n- hi\n")
	_ = os.WriteFile(filepath.Join(vaultDir, "10.Daily Notes", "2025-01-15.md"), raw, 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		cs, _ := db.GetChecksum("2025-01-15")
		return cs != ""
	}, "new date file not indexed by watcher")

	eventually(t, 2*time.Second, 50*time.Millisecond, func() bool {
		mu.Lock()
		defer mu.Unlock()
		for _, e := range events {
			if e == "created:2025-01-15" {
				return true
			}
		}
		return false
	}, "created event not delivered")
}

func TestWatcher_IgnoresNonDateFiles(t *testing.T) {
	db := testDB(t)
	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, vaultDir, "10.Daily Notes", quietLogger(), nil)
	time.Sleep(100 * time.Millisecond)

	_ = os.WriteFile(filepath.Join(vaultDir, "10.Daily Notes", "template.md"), []byte("x"), 0o644)
	_ = os.WriteFile(filepath.Join(vaultDir, "10.Daily Notes", "2025-01-15.md"), []byte("y"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		cs, _ := db.GetChecksum("2025-01-15")
		return cs != ""
	}, "date file not indexed")

	if cs, _ := db.GetChecksum("template"); cs != "" {
		t.Error("non-date file was indexed")
	}
}

func TestWatcher_RemoveDeletesRow(t *testing.T) {
	db := testDB(t)
	vaultDir := t.TempDir()
	store, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go Watch(ctx, db, store, vaultDir, "10.Daily Notes", quietLogger(), nil)
	time.Sleep(100 * time.Millisecond)

	abs := filepath.Join(vaultDir, "10.Daily Notes", "2025-01-15.md")
	_ = os.WriteFile(abs, []byte("body"), 0o644)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		cs, _ := db.GetChecksum("2025-01-15")
		return cs != ""
	}, "file not indexed before removal")

	_ = os.Remove(abs)

	eventually(t, 5*time.Second, 50*time.Millisecond, func() bool {
		cs, _ := db.GetChecksum("2025-01-15")
		return cs == ""
	}, "row not removed after file deletion")
}
