package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/moonkyu/haru/internal/apperr"
	"github.com/moonkyu/haru/internal/dailynote"
	"github.com/moonkyu/haru/internal/index"
	"github.com/moonkyu/haru/internal/models"
)

// Handler holds API route handlers.
type Handler struct {
	notes     *dailynote.Store
	db        *index.DB
	vaultRoot string
	dailyDir  string
}

// NewHandler creates a new Handler.
func NewHandler(notes *dailynote.Store, db *index.DB, vaultRoot, dailyDir string) *Handler {
	return &Handler{notes: notes, db: db, vaultRoot: vaultRoot, dailyDir: dailyDir}
}

// Health handles GET /api/health (unauthenticated).
func (h *Handler) Health(w http.ResponseWriter, _ *http.Request) {
	vaultOK := dirExists(h.vaultRoot)
	dailyOK := dirExists(filepath.Join(h.vaultRoot, h.dailyDir))
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "ok",
		Vault:     vaultOK,
		DailyDir:  dailyOK,
		VaultPath: h.vaultRoot,
	})
}

func dirExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.IsDir()
}

// GetDaily handles GET /api/daily/{date}.
func (h *Handler) GetDaily(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	n, err := h.notes.Read(date)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidDate):
			writeJSON(w, http.StatusBadRequest, errorBody("invalid date format, use YYYY-MM-DD"))
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("note not found"))
		default:
			slog.Error("get daily failed", slog.String("date", date), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, NoteResponse{
		Date:        date,
		Frontmatter: n.Frontmatter.AsAny(),
		Body:        n.Body,
		Raw:         n.Raw,
	})
}

// AppendDaily handles POST /api/daily/{date}.
func (h *Handler) AppendDaily(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	date := chi.URLParam(r, "date")

	var req AppendEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}

	res, err := h.notes.Append(date, dailynote.AppendRequest{
		Content:     req.Content,
		Tags:        req.Tags,
		Section:     req.Section,
		Priority:    req.Priority,
		Due:         req.Due,
		Attachments: append(append([]string{}, req.Images...), req.Audio...),
	})
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidDate):
			writeJSON(w, http.StatusBadRequest, errorBody("invalid date format, use YYYY-MM-DD"))
		case errors.Is(err, apperr.ErrEmptyContent):
			writeJSON(w, http.StatusBadRequest, errorBody("content is required"))
		default:
			slog.Error("append daily failed", slog.String("date", date), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	h.reindex(date)

	writeJSON(w, http.StatusOK, AppendEntryResponse{
		Success:   true,
		Date:      date,
		Section:   res.Section,
		Created:   res.Created,
		Updated:   res.Updated,
		TagsAdded: res.TagsAdded,
	})
}

// ListTodos handles GET /api/daily/{date}/todos.
func (h *Handler) ListTodos(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	todos, err := h.notes.ListTodos(date)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidDate):
			writeJSON(w, http.StatusBadRequest, errorBody("invalid date format, use YYYY-MM-DD"))
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("note not found"))
		default:
			slog.Error("list todos failed", slog.String("date", date), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}
	writeJSON(w, http.StatusOK, TodosResponse{Date: date, Todos: todos})
}

// ToggleTodo handles POST /api/todo/toggle.
func (h *Handler) ToggleTodo(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	var req ToggleTodoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("invalid JSON body"))
		return
	}
	if req.LineIndex == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("lineIndex is required"))
		return
	}

	toggled, err := h.notes.ToggleTodo(req.Date, *req.LineIndex)
	if err != nil {
		switch {
		case errors.Is(err, apperr.ErrInvalidDate):
			writeJSON(w, http.StatusBadRequest, errorBody("invalid date format, use YYYY-MM-DD"))
		case errors.Is(err, apperr.ErrNotFound):
			writeJSON(w, http.StatusNotFound, errorBody("note not found"))
		case errors.Is(err, apperr.ErrInvalidLineIndex):
			writeJSON(w, http.StatusBadRequest, errorBody("lineIndex out of range"))
		case errors.Is(err, apperr.ErrNotATodoLine):
			writeJSON(w, http.StatusBadRequest, errorBody("line is not a todo"))
		default:
			slog.Error("toggle todo failed", slog.String("date", req.Date), slog.String("error", err.Error()))
			writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		}
		return
	}

	h.reindex(req.Date)

	writeJSON(w, http.StatusOK, ToggleTodoResponse{Success: true, Toggled: toggled})
}

// ListTags handles GET /api/tags.
func (h *Handler) ListTags(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	tags, err := h.db.TagCounts(limit)
	if err != nil {
		slog.Error("list tags failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if tags == nil {
		tags = []models.TagCount{}
	}
	writeJSON(w, http.StatusOK, TagListResponse{Tags: tags})
}

// RecentNotes handles GET /api/notes/recent.
func (h *Handler) RecentNotes(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	notes, err := h.db.Recent(limit)
	if err != nil {
		slog.Error("recent notes failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if notes == nil {
		notes = []models.RecentNote{}
	}
	writeJSON(w, http.StatusOK, RecentNotesResponse{Notes: notes})
}

// Search handles GET /api/search.
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query().Get("q")
	if q == "" {
		writeJSON(w, http.StatusBadRequest, errorBody("query parameter 'q' is required"))
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	results, err := h.db.Search(q, limit)
	if err != nil {
		slog.Error("search failed", slog.String("query", q), slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorBody("internal error"))
		return
	}
	if results == nil {
		results = []index.SearchResult{}
	}
	writeJSON(w, http.StatusOK, SearchResponse{Results: results})
}

// reindex refreshes the index row for date right after a mutation, so tag
// and recent listings are current without waiting for the watcher.
func (h *Handler) reindex(date string) {
	n, err := h.notes.Read(date)
	if err != nil {
		slog.Warn("reindex read failed", slog.String("date", date), slog.String("error", err.Error()))
		return
	}
	if err := index.IndexNote(h.db, date, []byte(n.Raw)); err != nil {
		slog.Warn("reindex failed", slog.String("date", date), slog.String("error", err.Error()))
	}
}
