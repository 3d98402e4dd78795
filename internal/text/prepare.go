package text

import (
	"fmt"
	"strings"
)

// LineConverter is the minimal interface required by Prepare callers to
// convert prepared lines. It is satisfied by *pinyin.Converter.
type LineConverter interface {
	ConvertLines(lines []string) ([]string, error)
}

// PrepareOptions controls the optional input rewrites applied by Prepare.
type PrepareOptions struct {
	// Hanzi converts Han characters to numbered Pinyin before splitting.
	Hanzi bool
}

// Prepare applies the input preprocessing shared by the CLI and the server:
//  1. Normalize line endings, trim and compose to NFC.
//  2. Optionally rewrite Han characters as numbered Pinyin.
//  3. Split into lines, keeping blank lines.
func Prepare(input string, opts PrepareOptions) ([]string, error) {
	s, err := Normalize(input)
	if err != nil {
		return nil, err
	}
	if opts.Hanzi {
		s = HanziToPinyin(s)
	}
	return SplitLines(s), nil
}

// ConvertText prepares input and converts it line by line with conv. The
// converted lines are joined with \n.
func ConvertText(conv LineConverter, input string, opts PrepareOptions) (string, error) {
	lines, err := Prepare(input, opts)
	if err != nil {
		return "", err
	}

	out, err := conv.ConvertLines(lines)
	if err != nil {
		return "", fmt.Errorf("convert: %w", err)
	}
	return strings.Join(out, "\n"), nil
}
