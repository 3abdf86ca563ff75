package note

import "testing"

func TestParseTodoLine_MetadataStripping(t *testing.T) {
	todo, ok := ParseTodoLine("- [ ] buy milk [priority::높음] [due::2025-01-01]", 5)
	if !ok {
		t.Fatal("not recognized")
	}
	if todo.Done {
		t.Error("done = true, want false")
	}
	if todo.Text != "buy milk" {
		t.Errorf("text = %q", todo.Text)
	}
	if todo.Priority != "높음" || todo.Due != "2025-01-01" {
		t.Errorf("priority/due = %q/%q", todo.Priority, todo.Due)
	}
	if todo.LineIndex != 5 {
		t.Errorf("lineIndex = %d", todo.LineIndex)
	}
}

func TestParseTodoLine_Checked(t *testing.T) {
	todo, ok := ParseTodoLine("- [x] done thing", 0)
	if !ok || !todo.Done || todo.Text != "done thing" {
		t.Errorf("todo = %+v, ok = %v", todo, ok)
	}
}

func TestParseTodoLine_TokenInMiddle(t *testing.T) {
	todo, ok := ParseTodoLine("- [ ] call [priority::보통] the dentist", 0)
	if !ok || todo.Text != "call the dentist" || todo.Priority != "보통" {
		t.Errorf("todo = %+v", todo)
	}
}

func TestParseTodoLine_NotATodo(t *testing.T) {
	for _, line := range []string{"- plain entry", "-[ ] missing space", "## 오늘할일", ""} {
		if _, ok := ParseTodoLine(line, 0); ok {
			t.Errorf("%q recognized as todo", line)
		}
	}
}

func TestToggleTodoLine_SelfInverse(t *testing.T) {
	line := "- [ ] wash car [due::2025-02-01]"
	once, ok := ToggleTodoLine(line)
	if !ok || once != "- [x] wash car [due::2025-02-01]" {
		t.Fatalf("once = %q, ok = %v", once, ok)
	}
	twice, ok := ToggleTodoLine(once)
	if !ok || twice != line {
		t.Errorf("twice = %q, want %q", twice, line)
	}
}

func TestToggleTodoLine_Rejected(t *testing.T) {
	if _, ok := ToggleTodoLine("- not a todo"); ok {
		t.Error("toggled a non-todo line")
	}
}

func TestFormatTodoEntry(t *testing.T) {
	got := FormatTodoEntry("wash car", "낮음", "2025-02-01")
	if got != "- [ ] wash car [priority::낮음] [due::2025-02-01]" {
		t.Errorf("got %q", got)
	}
	if got := FormatTodoEntry("plain", "", ""); got != "- [ ] plain" {
		t.Errorf("got %q", got)
	}
	if got := FormatTodoEntry("due only", "", "2025-03-01"); got != "- [ ] due only [due::2025-03-01]" {
		t.Errorf("got %q", got)
	}
}

func TestExtractToken_NoNestedBrackets(t *testing.T) {
	rest, val := extractToken("x [priority::[a]] y", "priority")
	if val != "" || rest != "x [priority::[a]] y" {
		t.Errorf("rest = %q, val = %q", rest, val)
	}
}
