package pipeline

import (
	"regexp"
	"strings"
)

var (
	// One or more "-" markers at the start of a line, with surrounding blanks.
	bulletMarkers = regexp.MustCompile(`(?m)^(?:[ \t]*-[ \t]*)+`)
	blankLineRun  = regexp.MustCompile(`\n\s*\n`)
)

// Clean strips markdown decoration from a model response: code fences, bold
// and italic markers, leading bullet markers, and runs of blank lines.
//
// Every substitution only removes characters, so repeating the pass until
// nothing changes terminates and makes Clean idempotent.
func Clean(raw string) string {
	text := cleanOnce(raw)
	for {
		next := cleanOnce(text)
		if next == text {
			return text
		}
		text = next
	}
}

func cleanOnce(text string) string {
	text = strings.TrimSpace(text)
	text = strings.ReplaceAll(text, "```", "")
	text = strings.ReplaceAll(text, "**", "")
	text = strings.ReplaceAll(text, "*", "")
	text = bulletMarkers.ReplaceAllString(text, "")
	text = blankLineRun.ReplaceAllString(text, "\n")
	return strings.TrimSpace(text)
}
