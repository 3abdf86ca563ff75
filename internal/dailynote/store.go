// Package dailynote orchestrates the daily-note read-modify-write cycle:
// frontmatter codec, tag reconciliation, and section merge against one
// markdown file per calendar date.
package dailynote

import (
	"errors"
	"fmt"
	"os"
	"path"
	"regexp"
	"strings"
	"time"

	"github.com/moonkyu/haru/internal/apperr"
	"github.com/moonkyu/haru/internal/frontmatter"
	"github.com/moonkyu/haru/internal/note"
	"github.com/moonkyu/haru/internal/storage"
)

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Conventions are the vault-specific section and tag constants. The anchor
// section is the conventionally-last heading new sections are inserted
// before.
type Conventions struct {
	DefaultSection string
	AnchorSection  string
	TodoSection    string
	BaselineTag    string
	AttachmentDir  string
}

// Store performs daily-note operations against a vault directory. It holds
// no mutable state between calls; the file system is the only shared
// resource, whole-file read and whole-file write, last writer wins.
type Store struct {
	store storage.Provider
	dir   string // daily-notes directory relative to vault root
	conv  Conventions
	now   func() time.Time
}

// NewStore creates a Store writing date-named files under dir.
func NewStore(provider storage.Provider, dir string, conv Conventions) *Store {
	return &Store{store: provider, dir: dir, conv: conv, now: time.Now}
}

// Conventions returns the store's section and tag constants.
func (s *Store) Conventions() Conventions {
	return s.conv
}

// NotePath returns the vault-relative path of the note for date.
func (s *Store) NotePath(date string) string {
	return path.Join(s.dir, date+".md")
}

// Note is a loaded daily note.
type Note struct {
	Date        string
	Frontmatter *frontmatter.Map
	Body        string
	Raw         string
}

// AppendRequest carries one entry to append.
type AppendRequest struct {
	Content     string
	Tags        []string
	Section     string // empty means the default section
	Priority    string // todo section only
	Due         string // todo section only
	Attachments []string
}

// AppendResult reports what an append did.
type AppendResult struct {
	Created   bool
	Updated   bool
	Section   string
	TagsAdded []string
}

// Read loads and splits the note for date.
func (s *Store) Read(date string) (*Note, error) {
	if !dateRe.MatchString(date) {
		return nil, apperr.ErrInvalidDate
	}
	raw, err := s.store.Read(s.NotePath(date))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}
	fm, body := frontmatter.Parse(string(raw))
	return &Note{Date: date, Frontmatter: fm, Body: body, Raw: string(raw)}, nil
}

// Append adds one entry to the note for date, creating the file when absent.
func (s *Store) Append(date string, req AppendRequest) (*AppendResult, error) {
	day, err := parseDate(date)
	if err != nil {
		return nil, err
	}
	content := strings.TrimSpace(req.Content)
	if content == "" && len(req.Attachments) == 0 {
		return nil, apperr.ErrEmptyContent
	}

	section := req.Section
	if section == "" {
		section = s.conv.DefaultSection
	}
	entry := s.buildEntry(section, content, req)

	raw, err := s.store.Read(s.NotePath(date))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s.create(date, day, section, entry, req.Tags)
		}
		return nil, err
	}
	return s.appendExisting(date, string(raw), section, entry, req.Tags)
}

// buildEntry renders the literal entry line: a checkbox line for the todo
// section, a timestamped list item otherwise, plus one indented embed
// sub-item per attachment.
func (s *Store) buildEntry(section, content string, req AppendRequest) string {
	var entry string
	if section == s.conv.TodoSection {
		entry = note.FormatTodoEntry(content, req.Priority, req.Due)
	} else {
		entry = note.FormatEntry(content, s.now())
	}
	for _, name := range req.Attachments {
		entry += "\n  - ![[" + s.conv.AttachmentDir + "/" + name + "]]"
	}
	return entry
}

func (s *Store) create(date string, day time.Time, section, entry string, tags []string) (*AppendResult, error) {
	fm := frontmatter.NewMap()
	fm.Set("날짜", frontmatter.ScalarValue(date))
	fm.Set("tags", frontmatter.ListValue(note.InitialTags(s.conv.BaselineTag, tags)...))

	var b strings.Builder
	fmt.Fprintf(&b, "\n# %s (%s)\n\n", date, note.DayName(day))
	if section != s.conv.AnchorSection {
		b.WriteString("## " + section + "\n\n" + entry + "\n\n")
		b.WriteString("## " + s.conv.AnchorSection + "\n\n")
	} else {
		b.WriteString("## " + s.conv.AnchorSection + "\n\n" + entry + "\n\n")
	}

	content := frontmatter.Serialize(fm) + b.String()
	if err := s.store.Write(s.NotePath(date), []byte(content)); err != nil {
		return nil, err
	}
	return &AppendResult{Created: true, Section: section}, nil
}

func (s *Store) appendExisting(date, raw, section, entry string, tags []string) (*AppendResult, error) {
	fm, body := frontmatter.Parse(raw)

	merged, added := note.MergeTags(fm.StringList("tags"), tags)
	fm.Set("tags", frontmatter.ListValue(merged...))

	newBody := note.MergeSection(body, section, entry, s.conv.AnchorSection)

	content := frontmatter.Serialize(fm) + newBody
	if err := s.store.Write(s.NotePath(date), []byte(content)); err != nil {
		return nil, err
	}
	return &AppendResult{Updated: true, Section: section, TagsAdded: added}, nil
}

// ToggleTodo flips the checkbox on the 0-based lineIndex of the note for
// date. The index is positional within the raw file; it is not stable across
// concurrent edits, an accepted limitation of the single-user design.
func (s *Store) ToggleTodo(date string, lineIndex int) (int, error) {
	if !dateRe.MatchString(date) {
		return 0, apperr.ErrInvalidDate
	}
	raw, err := s.store.Read(s.NotePath(date))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return 0, apperr.ErrNotFound
		}
		return 0, err
	}

	lines := strings.Split(string(raw), "\n")
	if lineIndex < 0 || lineIndex >= len(lines) {
		return 0, apperr.ErrInvalidLineIndex
	}
	toggled, ok := note.ToggleTodoLine(lines[lineIndex])
	if !ok {
		return 0, apperr.ErrNotATodoLine
	}
	lines[lineIndex] = toggled

	if err := s.store.Write(s.NotePath(date), []byte(strings.Join(lines, "\n"))); err != nil {
		return 0, err
	}
	return lineIndex, nil
}

// ListTodos scans every line of the note for date and returns the parsed
// checkbox entries.
func (s *Store) ListTodos(date string) ([]note.Todo, error) {
	if !dateRe.MatchString(date) {
		return nil, apperr.ErrInvalidDate
	}
	raw, err := s.store.Read(s.NotePath(date))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, apperr.ErrNotFound
		}
		return nil, err
	}

	todos := []note.Todo{}
	for i, line := range strings.Split(string(raw), "\n") {
		if todo, ok := note.ParseTodoLine(line, i); ok {
			todos = append(todos, todo)
		}
	}
	return todos, nil
}

func parseDate(date string) (time.Time, error) {
	if !dateRe.MatchString(date) {
		return time.Time{}, apperr.ErrInvalidDate
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, apperr.ErrInvalidDate
	}
	return day, nil
}
