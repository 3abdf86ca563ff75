// Package mcpserver provides an MCP (Model Context Protocol) server
// that exposes Haru daily-note tools for LLM integration via stdio transport.
package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/moonkyu/haru/internal/apperr"
	"github.com/moonkyu/haru/internal/dailynote"
	"github.com/moonkyu/haru/internal/index"
	"github.com/moonkyu/haru/internal/storage"
)

// Server wraps the MCP server with Haru tools.
type Server struct {
	mcp       *server.MCPServer
	notes     *dailynote.Store
	store     storage.Provider
	db        *index.DB
	attachDir string
}

// New creates a new MCP server with all Haru tools registered.
func New(notes *dailynote.Store, store storage.Provider, db *index.DB, attachDir string) *Server {
	s := &Server{notes: notes, store: store, db: db, attachDir: attachDir}

	s.mcp = server.NewMCPServer(
		"Haru",
		"1.0.0",
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)

	s.mcp.AddTool(mcp.NewTool("append_entry",
		mcp.WithDescription("Append a timestamped entry to a daily note, creating the note "+
			"if needed. Entries land in the given section; the retrospective section always "+
			"stays last. Read the haru://entry-format resource for the note layout."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Note date in YYYY-MM-DD form")),
		mcp.WithString("content", mcp.Required(), mcp.Description("Entry text")),
		mcp.WithString("section", mcp.Description("Target section heading (default section when empty)")),
		mcp.WithString("tags", mcp.Description("Comma-separated tags to merge into the note")),
		mcp.WithString("priority", mcp.Description("Todo priority, only used for the todo section")),
		mcp.WithString("due", mcp.Description("Todo due date, only used for the todo section")),
	), s.appendEntry)

	s.mcp.AddTool(mcp.NewTool("read_daily_note",
		mcp.WithDescription("Read the full content of a daily note."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Note date in YYYY-MM-DD form")),
	), s.readDailyNote)

	s.mcp.AddTool(mcp.NewTool("list_todos",
		mcp.WithDescription("List all todo lines of a daily note with their line indexes and state."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Note date in YYYY-MM-DD form")),
	), s.listTodos)

	s.mcp.AddTool(mcp.NewTool("toggle_todo",
		mcp.WithDescription("Toggle the checkbox of a todo line. Use list_todos to find line indexes."),
		mcp.WithString("date", mcp.Required(), mcp.Description("Note date in YYYY-MM-DD form")),
		mcp.WithNumber("lineIndex", mcp.Required(), mcp.Description("Zero-based line index of the todo line")),
	), s.toggleTodo)

	s.mcp.AddTool(mcp.NewTool("list_tags",
		mcp.WithDescription("List tags used across recent daily notes with usage counts."),
	), s.listTags)

	s.mcp.AddTool(mcp.NewTool("search_notes",
		mcp.WithDescription("Full-text search through daily note content."),
		mcp.WithString("query", mcp.Required(), mcp.Description("Search query string")),
	), s.searchNotes)

	s.mcp.AddTool(mcp.NewTool("upload_attachment",
		mcp.WithDescription("Save an attachment into the vault from a URL or base64 data URI. "+
			"Returns the wiki embed line to attach under a daily entry."),
		mcp.WithString("url", mcp.Required(), mcp.Description("HTTP(S) URL or data: URI of the file")),
		mcp.WithString("filename", mcp.Description("Optional filename; derived from the URL when empty")),
	), s.uploadAttachment)

	// Resource: entry format contract.
	s.mcp.AddResource(
		mcp.NewResource("haru://entry-format", "Daily Note Format Contract",
			mcp.WithResourceDescription("Canonical daily note layout that all entries must follow."),
			mcp.WithMIMEType("text/markdown"),
		),
		s.readEntryFormatResource,
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcp)
}

// MCPServer returns the underlying server for testing.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcp
}

func (s *Server) appendEntry(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	content, err := req.RequireString("content")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	res, err := s.notes.Append(date, dailynote.AppendRequest{
		Content:  content,
		Section:  req.GetString("section", ""),
		Tags:     splitTags(req.GetString("tags", "")),
		Priority: req.GetString("priority", ""),
		Due:      req.GetString("due", ""),
	})
	if err != nil {
		return mcp.NewToolResultError(appendErrMessage(err)), nil
	}

	s.reindex(date)

	out, _ := json.Marshal(res)
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readDailyNote(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	n, err := s.notes.Read(date)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no daily note for %s", date)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(n.Raw), nil
}

func (s *Server) listTodos(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	todos, err := s.notes.ListTodos(date)
	if err != nil {
		if errors.Is(err, apperr.ErrNotFound) {
			return mcp.NewToolResultError(fmt.Sprintf("no daily note for %s", date)), nil
		}
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(todos, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) toggleTodo(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	lineIndex, err := req.RequireFloat("lineIndex")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	idx, err := s.notes.ToggleTodo(date, int(lineIndex))
	if err != nil {
		return mcp.NewToolResultError(toggleErrMessage(date, err)), nil
	}

	s.reindex(date)

	// Echo the line as it reads after the flip.
	n, err := s.notes.Read(date)
	if err != nil {
		return mcp.NewToolResultText(fmt.Sprintf("toggled line %d", idx)), nil
	}
	lines := strings.Split(n.Raw, "\n")
	if idx < len(lines) {
		return mcp.NewToolResultText(lines[idx]), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("toggled line %d", idx)), nil
}

func (s *Server) listTags(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	tags, err := s.db.TagCounts(0)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(tags, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) searchNotes(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	results, err := s.db.Search(query, 20)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	out, _ := json.MarshalIndent(results, "", "  ")
	return mcp.NewToolResultText(string(out)), nil
}

func (s *Server) readEntryFormatResource(_ context.Context, _ mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      "haru://entry-format",
			MIMEType: "text/markdown",
			Text:     EntryFormatContract,
		},
	}, nil
}

// reindex refreshes the index row for date after a mutation.
func (s *Server) reindex(date string) {
	n, err := s.notes.Read(date)
	if err != nil {
		return
	}
	_ = index.IndexNote(s.db, date, []byte(n.Raw))
}

// splitTags turns a comma-separated tag string into a trimmed slice.
func splitTags(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

func appendErrMessage(err error) string {
	switch {
	case errors.Is(err, apperr.ErrInvalidDate):
		return "invalid date: use YYYY-MM-DD"
	case errors.Is(err, apperr.ErrEmptyContent):
		return "content must not be empty"
	default:
		return err.Error()
	}
}

func toggleErrMessage(date string, err error) string {
	switch {
	case errors.Is(err, apperr.ErrNotFound):
		return fmt.Sprintf("no daily note for %s", date)
	case errors.Is(err, apperr.ErrInvalidLineIndex):
		return "lineIndex out of range"
	case errors.Is(err, apperr.ErrNotATodoLine):
		return "line is not a todo"
	default:
		return err.Error()
	}
}
