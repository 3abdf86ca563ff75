package internal

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/moonkyu/haru/internal/dailynote"
	"github.com/moonkyu/haru/internal/index"
	"github.com/moonkyu/haru/internal/mcpserver"
	"github.com/moonkyu/haru/internal/storage"
)

// RunMCP starts the MCP stdio server instead of the HTTP server. Stdout
// carries the MCP protocol, so logs go to stderr.
func RunMCP(_ context.Context, opts ...Option) error {
	app := &application{}

	for _, opt := range opts {
		opt(app)
	}

	if app.config == nil {
		return fmt.Errorf("config is required")
	}

	cfg := app.config

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.App.LogLevel,
	}))
	slog.SetDefault(logger)

	if err := os.MkdirAll(cfg.Vault.Path, 0o755); err != nil {
		return fmt.Errorf("create vault dir: %w", err)
	}

	store, err := storage.NewFS(cfg.Vault.Path)
	if err != nil {
		return fmt.Errorf("init storage: %w", err)
	}

	db, err := index.Open(cfg.SQLite.Path)
	if err != nil {
		return fmt.Errorf("init index: %w", err)
	}
	defer db.Close()

	if err := index.Sync(db, store, cfg.Vault.DailyDir, logger); err != nil {
		logger.Warn("initial sync failed", slog.String("error", err.Error()))
	}

	notes := dailynote.NewStore(store, cfg.Vault.DailyDir, dailynote.Conventions{
		DefaultSection: cfg.Note.DefaultSection,
		AnchorSection:  cfg.Note.AnchorSection,
		TodoSection:    cfg.Note.TodoSection,
		BaselineTag:    cfg.Note.BaselineTag,
		AttachmentDir:  cfg.Vault.AttachmentDir,
	})

	logger.Info("Starting MCP stdio server",
		slog.String("vault_path", cfg.Vault.Path),
		slog.String("daily_dir", cfg.Vault.DailyDir))

	return mcpserver.New(notes, store, db, cfg.Vault.AttachmentDir).ServeStdio()
}
