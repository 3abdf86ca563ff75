package note

import "strings"

const (
	uncheckedPrefix = "- [ ] "
	checkedPrefix   = "- [x] "
)

// Todo is the parsed view of one checkbox line.
type Todo struct {
	LineIndex int    `json:"lineIndex"`
	Done      bool   `json:"done"`
	Text      string `json:"text"`
	Priority  string `json:"priority,omitempty"`
	Due       string `json:"due,omitempty"`
}

// IsTodoLine reports whether line carries a checkbox prefix.
func IsTodoLine(line string) bool {
	return strings.HasPrefix(line, uncheckedPrefix) || strings.HasPrefix(line, checkedPrefix)
}

// ParseTodoLine recognizes a checkbox line and extracts its inline
// [priority::V] and [due::V] tokens, stripping them from the display text.
func ParseTodoLine(line string, lineIndex int) (Todo, bool) {
	var done bool
	var rest string
	switch {
	case strings.HasPrefix(line, uncheckedPrefix):
		rest = line[len(uncheckedPrefix):]
	case strings.HasPrefix(line, checkedPrefix):
		done = true
		rest = line[len(checkedPrefix):]
	default:
		return Todo{}, false
	}

	rest, priority := extractToken(rest, "priority")
	rest, due := extractToken(rest, "due")

	return Todo{
		LineIndex: lineIndex,
		Done:      done,
		Text:      collapseSpaces(rest),
		Priority:  priority,
		Due:       due,
	}, true
}

// ToggleTodoLine flips the checkbox prefix and leaves the rest of the line
// untouched. Applying it twice restores the original line.
func ToggleTodoLine(line string) (string, bool) {
	switch {
	case strings.HasPrefix(line, uncheckedPrefix):
		return checkedPrefix + line[len(uncheckedPrefix):], true
	case strings.HasPrefix(line, checkedPrefix):
		return uncheckedPrefix + line[len(checkedPrefix):], true
	}
	return line, false
}

// FormatTodoEntry renders a new unchecked todo line with optional metadata
// tokens appended only when supplied.
func FormatTodoEntry(text, priority, due string) string {
	line := uncheckedPrefix + text
	if priority != "" {
		line += " [priority::" + priority + "]"
	}
	if due != "" {
		line += " [due::" + due + "]"
	}
	return line
}

// extractToken removes the first [key::value] token from text and returns
// the remaining text plus the value. Values may not contain brackets.
func extractToken(text, key string) (string, string) {
	open := "[" + key + "::"
	start := strings.Index(text, open)
	if start < 0 {
		return text, ""
	}
	rest := text[start+len(open):]
	end := strings.Index(rest, "]")
	if end < 0 {
		return text, ""
	}
	value := rest[:end]
	if strings.Contains(value, "[") {
		return text, ""
	}
	return text[:start] + rest[end+1:], value
}

func collapseSpaces(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
