package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/moonkyu/haru/internal/dailynote"
	"github.com/moonkyu/haru/internal/index"
)

// NewRouter creates a chi router with all API routes mounted.
// authEnabled controls whether Bearer token auth is enforced; the health
// endpoint is always open. sseHandler, if non-nil, is mounted at GET /events
// inside the auth group. attachDir is resolved against vaultRoot.
func NewRouter(notes *dailynote.Store, db *index.DB, authEnabled bool, token string, sseHandler http.Handler, vaultRoot, dailyDir, attachDir string) chi.Router {
	h := NewHandler(notes, db, vaultRoot, dailyDir)
	ah := NewAttachmentHandler(vaultRoot, attachDir)

	r := chi.NewRouter()

	// Health check is reachable without auth.
	r.Get("/health", h.Health)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware(authEnabled, token))

		// Daily notes.
		r.Get("/daily/{date}", h.GetDaily)
		r.Post("/daily/{date}", h.AppendDaily)
		r.Get("/daily/{date}/todos", h.ListTodos)

		// Todo toggle.
		r.Post("/todo/toggle", h.ToggleTodo)

		// Tag statistics and recent notes.
		r.Get("/tags", h.ListTags)
		r.Get("/notes/recent", h.RecentNotes)

		// Search.
		r.Get("/search", h.Search)

		// Attachments.
		r.Post("/attachments", ah.Upload)
		r.Get("/attachments/{filename}", ah.ServeFile)

		// SSE endpoint (protected by same auth middleware).
		if sseHandler != nil {
			r.Get("/events", sseHandler.ServeHTTP)
		}
	})

	return r
}
