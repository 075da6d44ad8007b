package pipeline

import (
	"strings"
	"unicode/utf8"
)

const (
	maxKeywords      = 5
	minKeywordLength = 5
)

var stopwords = map[string]struct{}{
	"this": {},
	"that": {},
	"with": {},
	"from": {},
	"have": {},
}

// ExtractKeywords picks up to five distinct whitespace-separated tokens longer
// than four characters, in order of first occurrence. Tokens keep any
// punctuation attached to them; dedup is case-sensitive, the stoplist is not.
func ExtractKeywords(text string) []string {
	keywords := make([]string, 0, maxKeywords)
	seen := make(map[string]struct{}, maxKeywords)
	for _, token := range strings.Fields(text) {
		if len(keywords) == maxKeywords {
			break
		}
		if utf8.RuneCountInString(token) < minKeywordLength {
			continue
		}
		if _, stop := stopwords[strings.ToLower(token)]; stop {
			continue
		}
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		keywords = append(keywords, token)
	}
	return keywords
}
