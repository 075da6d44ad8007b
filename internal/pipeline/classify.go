package pipeline

import (
	"fmt"
	"regexp"
	"strings"
)

// LineKind tags a line of cleaned text for display.
type LineKind int

const (
	Blank LineKind = iota
	Paragraph
	ListItem
	Heading
)

var lineKindNames = map[LineKind]string{
	Blank:     "blank",
	Paragraph: "paragraph",
	ListItem:  "list_item",
	Heading:   "heading",
}

func (k LineKind) String() string {
	if name, ok := lineKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("LineKind(%d)", int(k))
}

// MarshalText renders the kind by name in JSON responses.
func (k LineKind) MarshalText() ([]byte, error) {
	name, ok := lineKindNames[k]
	if !ok {
		return nil, fmt.Errorf("unknown line kind %d", int(k))
	}
	return []byte(name), nil
}

// UnmarshalText parses a kind name so stored results decode back.
func (k *LineKind) UnmarshalText(text []byte) error {
	for kind, name := range lineKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown line kind %q", text)
}

// RenderLine is one line of cleaned text with its display tag.
type RenderLine struct {
	Text string   `json:"text"`
	Kind LineKind `json:"kind"`
}

var (
	headingPrefixes = []string{"Important Information:", "Other Information:"}
	numberedItem    = regexp.MustCompile(`^\d+\.`)
)

// Classify tags a single line; the first matching rule wins.
func Classify(line string) LineKind {
	for _, prefix := range headingPrefixes {
		if strings.HasPrefix(line, prefix) {
			return Heading
		}
	}
	if numberedItem.MatchString(line) || strings.HasPrefix(line, "-") {
		return ListItem
	}
	if strings.TrimSpace(line) != "" {
		return Paragraph
	}
	return Blank
}

// ClassifyLines splits text on newlines and tags every line. Empty text has
// no lines.
func ClassifyLines(text string) []RenderLine {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	out := make([]RenderLine, len(lines))
	for i, line := range lines {
		out[i] = RenderLine{Text: line, Kind: Classify(line)}
	}
	return out
}
