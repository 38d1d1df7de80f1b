package domain

import (
	"regexp"
	"strings"
)

var multiSpace = regexp.MustCompile(` +`)

// Document holds the normalized text of one invoice page. Strategies,
// the layout classifier and the NER adapter all read from the same
// normalized view so they agree on line indices.
type Document struct {
	Text  string
	Lines []string
}

// NewDocument normalizes raw text lines: NUL bytes (a PDF extraction
// artifact) become spaces, runs of spaces collapse, and every line is
// trimmed. Line order is preserved, including blank lines, because
// strategies use blank lines as block boundaries.
func NewDocument(lines []string) *Document {
	normalized := make([]string, len(lines))
	for i, line := range lines {
		line = strings.ReplaceAll(line, "\x00", " ")
		line = multiSpace.ReplaceAllString(line, " ")
		normalized[i] = strings.TrimSpace(line)
	}
	return &Document{
		Text:  strings.Join(normalized, "\n"),
		Lines: normalized,
	}
}

// NewDocumentFromText splits raw text on newlines and normalizes it.
func NewDocumentFromText(text string) *Document {
	return NewDocument(strings.Split(text, "\n"))
}
