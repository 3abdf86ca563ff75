package dailynote

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/moonkyu/haru/internal/apperr"
	"github.com/moonkyu/haru/internal/storage"
)

func testConventions() Conventions {
	return Conventions{
		DefaultSection: "메모",
		AnchorSection:  "오늘 회고",
		TodoSection:    "오늘할일",
		BaselineTag:    "daily",
		AttachmentDir:  "attachments",
	}
}

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	vaultDir := t.TempDir()
	provider, err := storage.NewFS(vaultDir)
	if err != nil {
		t.Fatalf("NewFS: %v", err)
	}
	s := NewStore(provider, "10.Daily Notes", testConventions())
	s.now = func() time.Time {
		return time.Date(2025, 1, 15, 9, 30, 0, 0, time.Local)
	}
	return s, vaultDir
}

func rawFile(t *testing.T, vaultDir, date string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(vaultDir, "10.Daily Notes", date+".md"))
	if err != nil {
		t.Fatalf("read note file: %v", err)
	}
	return string(data)
}

func TestAppend_CreatesNewNote(t *testing.T) {
	s, vaultDir := testStore(t)

	res, err := s.Append("2025-01-15", AppendRequest{Content: "hello", Tags: []string{"x"}})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	if !res.Created {
		t.Error("expected created result")
	}

	raw := rawFile(t, vaultDir, "2025-01-15")
	if !strings.HasPrefix(raw, "---\n날짜: 2025-01-15\ntags:\n  - daily\n  - x\n---\n") {
		t.Errorf("frontmatter wrong:\n%s", raw)
	}
	// 2025-01-15 is a Wednesday.
	if !strings.Contains(raw, "# 2025-01-15 (수요일)") {
		t.Errorf("heading wrong:\n%s", raw)
	}
	if !strings.Contains(raw, "## 메모\n\n- hello *(09:30)*\n") {
		t.Errorf("entry wrong:\n%s", raw)
	}
	anchorIdx := strings.Index(raw, "## 오늘 회고")
	if anchorIdx < 0 || anchorIdx < strings.Index(raw, "## 메모") {
		t.Errorf("anchor section missing or not last:\n%s", raw)
	}
}

func TestAppend_SecondEntrySameSection(t *testing.T) {
	s, vaultDir := testStore(t)

	if _, err := s.Append("2025-01-15", AppendRequest{Content: "hello", Tags: []string{"x"}}); err != nil {
		t.Fatalf("first append: %v", err)
	}
	res, err := s.Append("2025-01-15", AppendRequest{Content: "world", Tags: []string{"x"}})
	if err != nil {
		t.Fatalf("second append: %v", err)
	}
	if !res.Updated {
		t.Error("expected updated result")
	}
	if len(res.TagsAdded) != 0 {
		t.Errorf("tagsAdded = %v, want none", res.TagsAdded)
	}

	raw := rawFile(t, vaultDir, "2025-01-15")
	if strings.Count(raw, "tags:") != 1 || strings.Count(raw, "  - x") != 1 {
		t.Errorf("duplicate tags:\n%s", raw)
	}
	helloIdx := strings.Index(raw, "- hello")
	worldIdx := strings.Index(raw, "- world")
	anchorIdx := strings.Index(raw, "## 오늘 회고")
	if !(helloIdx < worldIdx && worldIdx < anchorIdx) {
		t.Errorf("entries out of order:\n%s", raw)
	}
}

func TestAppend_TodoSection(t *testing.T) {
	s, vaultDir := testStore(t)

	_, err := s.Append("2025-01-15", AppendRequest{
		Content:  "wash car",
		Section:  "오늘할일",
		Priority: "낮음",
		Due:      "2025-02-01",
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}

	raw := rawFile(t, vaultDir, "2025-01-15")
	if !strings.Contains(raw, "- [ ] wash car [priority::낮음] [due::2025-02-01]") {
		t.Errorf("todo line wrong:\n%s", raw)
	}

	todos, err := s.ListTodos("2025-01-15")
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(todos) != 1 {
		t.Fatalf("todos = %d, want 1", len(todos))
	}
	got := todos[0]
	if got.Done || got.Text != "wash car" || got.Priority != "낮음" || got.Due != "2025-02-01" {
		t.Errorf("todo = %+v", got)
	}
	lines := strings.Split(raw, "\n")
	if got.LineIndex < 0 || got.LineIndex >= len(lines) || lines[got.LineIndex] != "- [ ] wash car [priority::낮음] [due::2025-02-01]" {
		t.Errorf("lineIndex %d does not point at todo line", got.LineIndex)
	}
}

func TestAppend_NewSectionInsertedBeforeAnchor(t *testing.T) {
	s, vaultDir := testStore(t)

	_, _ = s.Append("2025-01-15", AppendRequest{Content: "hello"})
	if _, err := s.Append("2025-01-15", AppendRequest{Content: "run 5k", Section: "운동"}); err != nil {
		t.Fatalf("Append: %v", err)
	}

	raw := rawFile(t, vaultDir, "2025-01-15")
	newIdx := strings.Index(raw, "## 운동")
	anchorIdx := strings.Index(raw, "## 오늘 회고")
	if newIdx < 0 || newIdx > anchorIdx {
		t.Errorf("new section not before anchor:\n%s", raw)
	}
}

func TestAppend_IntoAnchorSection(t *testing.T) {
	s, vaultDir := testStore(t)

	if _, err := s.Append("2025-01-15", AppendRequest{Content: "좋은 하루", Section: "오늘 회고"}); err != nil {
		t.Fatalf("Append: %v", err)
	}
	raw := rawFile(t, vaultDir, "2025-01-15")
	if strings.Count(raw, "## 오늘 회고") != 1 {
		t.Errorf("anchor duplicated:\n%s", raw)
	}
	if !strings.Contains(raw, "## 오늘 회고\n\n- 좋은 하루 *(09:30)*") {
		t.Errorf("entry not in anchor:\n%s", raw)
	}
}

func TestAppend_Attachments(t *testing.T) {
	s, vaultDir := testStore(t)

	_, err := s.Append("2025-01-15", AppendRequest{
		Content:     "회의 사진",
		Attachments: []string{"photo-1.jpg", "photo-2.jpg"},
	})
	if err != nil {
		t.Fatalf("Append: %v", err)
	}
	raw := rawFile(t, vaultDir, "2025-01-15")
	want := "- 회의 사진 *(09:30)*\n  - ![[attachments/photo-1.jpg]]\n  - ![[attachments/photo-2.jpg]]"
	if !strings.Contains(raw, want) {
		t.Errorf("attachment sub-items wrong:\n%s", raw)
	}
}

func TestAppend_InvalidDate(t *testing.T) {
	s, vaultDir := testStore(t)

	for _, date := range []string{"2025/01/01", "20250101", "2025-1-1", "2025-13-40"} {
		if _, err := s.Append(date, AppendRequest{Content: "x"}); !errors.Is(err, apperr.ErrInvalidDate) {
			t.Errorf("Append(%q) err = %v, want ErrInvalidDate", date, err)
		}
	}
	entries, _ := os.ReadDir(filepath.Join(vaultDir, "10.Daily Notes"))
	if len(entries) != 0 {
		t.Errorf("files written for invalid dates: %v", entries)
	}
}

func TestAppend_EmptyContent(t *testing.T) {
	s, _ := testStore(t)
	if _, err := s.Append("2025-01-15", AppendRequest{Content: "   "}); !errors.Is(err, apperr.ErrEmptyContent) {
		t.Errorf("err = %v, want ErrEmptyContent", err)
	}
	// Attachments alone are enough.
	if _, err := s.Append("2025-01-15", AppendRequest{Attachments: []string{"a.png"}}); err != nil {
		t.Errorf("attachment-only append: %v", err)
	}
}

func TestRead(t *testing.T) {
	s, _ := testStore(t)

	if _, err := s.Read("2025-01-15"); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}

	_, _ = s.Append("2025-01-15", AppendRequest{Content: "hello", Tags: []string{"x"}})
	n, err := s.Read("2025-01-15")
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	tags := n.Frontmatter.StringList("tags")
	if len(tags) != 2 || tags[0] != "daily" || tags[1] != "x" {
		t.Errorf("tags = %v", tags)
	}
	if !strings.Contains(n.Body, "- hello") || strings.Contains(n.Body, "날짜:") {
		t.Errorf("body split wrong: %q", n.Body)
	}
}

func TestToggleTodo(t *testing.T) {
	s, vaultDir := testStore(t)

	_, _ = s.Append("2025-01-15", AppendRequest{Content: "task", Section: "오늘할일"})
	todos, _ := s.ListTodos("2025-01-15")
	if len(todos) != 1 {
		t.Fatalf("todos = %d", len(todos))
	}
	idx := todos[0].LineIndex

	if _, err := s.ToggleTodo("2025-01-15", idx); err != nil {
		t.Fatalf("ToggleTodo: %v", err)
	}
	raw := rawFile(t, vaultDir, "2025-01-15")
	if !strings.Contains(raw, "- [x] task") {
		t.Errorf("not checked:\n%s", raw)
	}

	// Toggling again restores the original line.
	if _, err := s.ToggleTodo("2025-01-15", idx); err != nil {
		t.Fatalf("second ToggleTodo: %v", err)
	}
	raw2 := rawFile(t, vaultDir, "2025-01-15")
	if !strings.Contains(raw2, "- [ ] task") || strings.Contains(raw2, "- [x]") {
		t.Errorf("not restored:\n%s", raw2)
	}
}

func TestToggleTodo_Errors(t *testing.T) {
	s, _ := testStore(t)

	if _, err := s.ToggleTodo("2025-01-15", 0); !errors.Is(err, apperr.ErrNotFound) {
		t.Errorf("missing note err = %v", err)
	}

	_, _ = s.Append("2025-01-15", AppendRequest{Content: "plain entry"})
	if _, err := s.ToggleTodo("2025-01-15", 9999); !errors.Is(err, apperr.ErrInvalidLineIndex) {
		t.Errorf("out-of-bounds err = %v", err)
	}
	if _, err := s.ToggleTodo("2025-01-15", 0); !errors.Is(err, apperr.ErrNotATodoLine) {
		t.Errorf("non-todo err = %v", err)
	}
}

func TestListTodos_MixedFile(t *testing.T) {
	s, _ := testStore(t)

	_, _ = s.Append("2025-01-15", AppendRequest{Content: "메모입니다"})
	_, _ = s.Append("2025-01-15", AppendRequest{Content: "task one", Section: "오늘할일", Priority: "높음"})
	_, _ = s.Append("2025-01-15", AppendRequest{Content: "task two", Section: "오늘할일"})

	todos, err := s.ListTodos("2025-01-15")
	if err != nil {
		t.Fatalf("ListTodos: %v", err)
	}
	if len(todos) != 2 {
		t.Fatalf("todos = %d, want 2", len(todos))
	}
	if todos[0].Text != "task one" || todos[0].Priority != "높음" {
		t.Errorf("todos[0] = %+v", todos[0])
	}
	if todos[1].Text != "task two" || todos[1].Priority != "" {
		t.Errorf("todos[1] = %+v", todos[1])
	}
}
