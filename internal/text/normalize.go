package text

import (
	"errors"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// ErrEmptyText is returned when the input text is empty or whitespace-only.
var ErrEmptyText = errors.New("text is empty")

// Normalize prepares raw input text for tokenizing.
// It normalizes line endings to \n, trims surrounding whitespace,
// composes combining diacritics (NFC) and rejects empty or whitespace-only
// input.
func Normalize(s string) (string, error) {
	// Normalize line endings: CRLF → LF, then bare CR → LF.
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.ReplaceAll(s, "\r", "\n")

	s = strings.TrimSpace(s)

	if s == "" {
		return "", ErrEmptyText
	}

	s, _ = Compose(s)
	return s, nil
}

// Compose returns s in Unicode NFC, so that a decomposed ü (u + U+0308)
// matches the same patterns as the precomposed one. changed reports whether
// the text was rewritten.
func Compose(s string) (composed string, changed bool) {
	if norm.NFC.IsNormalString(s) {
		return s, false
	}
	return norm.NFC.String(s), true
}

// SplitLines splits normalized text into lines, dropping trailing
// whitespace from each line. Blank lines are kept so the output keeps the
// layout of the input.
func SplitLines(s string) []string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRightFunc(l, unicode.IsSpace)
	}
	return lines
}
