package pinyin

import (
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/iter"
)

// DefaultWrapper is the LaTeX command used when none is configured.
const DefaultWrapper = "textsuperscript"

// Converter tokenizes and transforms Pinyin text for one output format.
// A Converter is immutable and safe for concurrent use.
type Converter struct {
	format  Format
	wrapper string
}

// NewConverter returns a Converter for format. An empty wrapper selects
// DefaultWrapper. The wrapper is substituted verbatim into LaTeX output.
func NewConverter(format Format, wrapper string) *Converter {
	if wrapper == "" {
		wrapper = DefaultWrapper
	}
	return &Converter{format: format, wrapper: wrapper}
}

func (c *Converter) Format() Format { return c.format }

func (c *Converter) Wrapper() string { return c.wrapper }

// Transform renders tokens in order and concatenates the results. The first
// failing token aborts the whole call.
func (c *Converter) Transform(tokens []Token) (string, error) {
	var b strings.Builder
	for _, tok := range tokens {
		switch tok.Kind {
		case KindSyllable:
			text, tone, err := tok.Syllable.Render(c.format, c.wrapper)
			if err != nil {
				return "", err
			}
			b.WriteString(text)
			b.WriteString(tone)
		case KindSeparator:
			if c.format == PinyinDiacritic {
				b.WriteByte('\'')
			}
		case KindSpace:
			b.WriteByte(' ')
		case KindPunctuation:
			b.WriteString(tok.Text)
		default:
			return "", fmt.Errorf("unknown token kind %v", tok.Kind)
		}
	}
	return b.String(), nil
}

// Convert tokenizes and transforms text.
func (c *Converter) Convert(text string) (string, error) {
	tokens, err := c.Tokenize(text)
	if err != nil {
		return "", err
	}
	return c.Transform(tokens)
}

// ConvertLines converts each line independently and concurrently. The result
// keeps the input order. If any line fails, the error of the first failing
// line is returned with its line number and no output.
func (c *Converter) ConvertLines(lines []string) ([]string, error) {
	type lineResult struct {
		out string
		err error
	}
	results := iter.Map(lines, func(line *string) lineResult {
		out, err := c.Convert(*line)
		return lineResult{out: out, err: err}
	})

	out := make([]string, len(results))
	for i, r := range results {
		if r.err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, r.err)
		}
		out[i] = r.out
	}
	return out, nil
}
