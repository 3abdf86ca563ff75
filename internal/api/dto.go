package api

import (
	"github.com/moonkyu/haru/internal/index"
	"github.com/moonkyu/haru/internal/models"
	"github.com/moonkyu/haru/internal/note"
)

// AppendEntryRequest is the request body for appending an entry to a daily
// note. Section defaults to the vault's memo section; Priority and Due only
// apply to the todo section.
type AppendEntryRequest struct {
	Content  string   `json:"content"`
	Tags     []string `json:"tags"`
	Section  string   `json:"section"`
	Priority string   `json:"priority"`
	Due      string   `json:"due"`
	Images   []string `json:"images"`
	Audio    []string `json:"audio"`
}

// AppendEntryResponse reports what an append did.
type AppendEntryResponse struct {
	Success   bool     `json:"success"`
	Date      string   `json:"date"`
	Section   string   `json:"section"`
	Created   bool     `json:"created,omitempty"`
	Updated   bool     `json:"updated,omitempty"`
	TagsAdded []string `json:"tagsAdded,omitempty"`
}

// NoteResponse is the full daily-note payload.
type NoteResponse struct {
	Date        string         `json:"date"`
	Frontmatter map[string]any `json:"frontmatter"`
	Body        string         `json:"body"`
	Raw         string         `json:"raw"`
}

// TodosResponse wraps the todo listing for one date.
type TodosResponse struct {
	Date  string      `json:"date"`
	Todos []note.Todo `json:"todos"`
}

// ToggleTodoRequest is the request body for flipping a checkbox line.
type ToggleTodoRequest struct {
	Date      string `json:"date"`
	LineIndex *int   `json:"lineIndex"`
}

// ToggleTodoResponse confirms a toggle.
type ToggleTodoResponse struct {
	Success bool `json:"success"`
	Toggled int  `json:"toggled"`
}

// TagListResponse wraps the frequency-sorted tag listing.
type TagListResponse struct {
	Tags []models.TagCount `json:"tags"`
}

// RecentNotesResponse wraps the recent-notes listing.
type RecentNotesResponse struct {
	Notes []models.RecentNote `json:"notes"`
}

// SearchResponse wraps search results.
type SearchResponse struct {
	Results []index.SearchResult `json:"results"`
}

// HealthResponse reports vault reachability.
type HealthResponse struct {
	Status    string `json:"status"`
	Vault     bool   `json:"vault"`
	DailyDir  bool   `json:"dailyDir"`
	VaultPath string `json:"vaultPath"`
}

// AttachmentUploadResponse is returned after a successful attachment upload.
type AttachmentUploadResponse struct {
	Filename string `json:"filename"`
	Size     int64  `json:"size"`
	Embed    string `json:"embed"`
}
