package text

import (
	"strings"
	"unicode"

	"github.com/mozillazg/go-pinyin"
)

var hanziArgs = func() pinyin.Args {
	a := pinyin.NewArgs()
	a.Style = pinyin.Tone3 // zhong1 guo2; ü is spelled v
	return a
}()

var fullwidthPunct = strings.NewReplacer(
	"，", ",",
	"、", ",",
	"。", ".",
	"！", "!",
	"？", "?",
	"：", ":",
	"“", `"`,
	"”", `"`,
	"－", "-",
	"＝", "=",
)

// HanziToPinyin replaces Han characters with numbered Pinyin syllables,
// separated from neighbouring syllables and words by a space. Full-width
// punctuation is folded to the ASCII marks the tokenizer understands.
// Characters without a known reading and all other text are kept as is.
func HanziToPinyin(s string) string {
	var b strings.Builder
	b.Grow(len(s) * 2)

	prevWord := false
	for _, r := range fullwidthPunct.Replace(s) {
		if !unicode.Is(unicode.Han, r) {
			b.WriteRune(r)
			prevWord = unicode.IsLetter(r) || unicode.IsDigit(r)
			continue
		}

		readings := pinyin.SinglePinyin(r, hanziArgs)
		if len(readings) == 0 {
			b.WriteRune(r)
			prevWord = false
			continue
		}
		if prevWord {
			b.WriteByte(' ')
		}
		b.WriteString(readings[0])
		prevWord = true
	}
	return b.String()
}

// ContainsHan reports whether s has at least one Han character.
func ContainsHan(s string) bool {
	return strings.IndexFunc(s, func(r rune) bool { return unicode.Is(unicode.Han, r) }) >= 0
}
