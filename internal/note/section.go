// Package note implements the daily-note body format: "## name" sections,
// timestamped list entries, checkbox todo lines, and frontmatter tag
// reconciliation.
package note

import "strings"

const headerPrefix = "## "

// span is the line range of one section: header at start, content up to but
// not including the next header (or end of body).
type span struct {
	name  string
	start int // header line index
	end   int // exclusive
}

// scanSections splits body into lines and returns the section spans in file
// order. Headers are matched per whole line, so a section whose name is a
// substring of another ("할일" vs "오늘할일") never collides.
func scanSections(lines []string) []span {
	var spans []span
	for i, line := range lines {
		if !strings.HasPrefix(line, headerPrefix) {
			continue
		}
		if len(spans) > 0 {
			spans[len(spans)-1].end = i
		}
		spans = append(spans, span{name: line[len(headerPrefix):], start: i, end: len(lines)})
	}
	return spans
}

func findSpan(spans []span, name string) (span, bool) {
	for _, s := range spans {
		if s.name == name {
			return s, true
		}
	}
	return span{}, false
}

// MergeSection inserts entry as the last item of the named section in body.
//
// When the section is missing, a new section block is inserted immediately
// before the anchor section so the anchor stays visually last; if the anchor
// is missing too the block goes at the end. Asking for the anchor itself is
// the terminal case and appends into it directly. Section names match by
// exact literal text.
func MergeSection(body, sectionName, entry, anchorSection string) string {
	lines := strings.Split(body, "\n")
	spans := scanSections(lines)

	if s, ok := findSpan(spans, sectionName); ok {
		if s.end == len(lines) {
			// Last section in the file.
			return strings.TrimRight(body, " \t\n") + "\n" + entry + "\n\n"
		}
		before := strings.Join(lines[:s.end], "\n")
		after := strings.Join(lines[s.end:], "\n")
		return strings.TrimRight(before, " \t\n") + "\n" + entry + "\n\n" + strings.TrimLeft(after, " \t\n")
	}

	block := headerPrefix + sectionName + "\n\n" + entry + "\n\n"

	if sectionName != anchorSection {
		if a, ok := findSpan(spans, anchorSection); ok {
			before := strings.Join(lines[:a.start], "\n")
			after := strings.Join(lines[a.start:], "\n")
			return strings.TrimRight(before, " \t\n") + "\n\n" + block + after
		}
	}

	return strings.TrimRight(body, " \t\n") + "\n\n" + block
}
