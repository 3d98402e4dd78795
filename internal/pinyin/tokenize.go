package pinyin

import (
	"fmt"
	"regexp"
	"strconv"
	"sync"
)

// syllablePattern matches, in priority order at each position: a syllable
// (optional initial, required rime, optional tone digit), a whitespace run,
// an apostrophe separator, or one punctuation character. y and w are never
// initials; they belong to the rime as glides.
const syllablePattern = `(?i:(?P<syllable>` +
	`(?P<initial>zh|ch|sh|[bpmfdtnlgkhjqxrzcs]?)` +
	`(?P<rime>(?:y|w)?[aeiouüv]{1,3}(?:ng|n)?r?)` +
	`(?P<tone>\d?)` +
	`))` +
	`|(?P<space>[\s\p{Z}]+)` +
	`|(?P<quote>')` +
	`|(?P<punctuation>[,!?.\-:"=])`

var compilePattern = sync.OnceValues(func() (*regexp.Regexp, error) {
	re, err := regexp.Compile(syllablePattern)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPattern, err)
	}
	return re, nil
})

// Pattern returns the compiled tokenizer pattern.
func Pattern() (*regexp.Regexp, error) { return compilePattern() }

// Tokenize splits normalized text into tokens. Characters that match none of
// the token kinds are dropped. When the converter targets IPA, each rhyme is
// rewritten with NormalizeRhyme.
func (c *Converter) Tokenize(text string) ([]Token, error) {
	re, err := compilePattern()
	if err != nil {
		return nil, err
	}

	var tokens []Token
	for _, m := range re.FindAllStringSubmatchIndex(text, -1) {
		group := func(name string) (string, bool) {
			i := re.SubexpIndex(name)
			if i < 0 || m[2*i] < 0 {
				return "", false
			}
			return text[m[2*i]:m[2*i+1]], true
		}

		if full, ok := group("syllable"); ok {
			onset, _ := group("initial")
			rime, _ := group("rime")
			if rime == "" {
				return nil, &SyllableError{Syllable: full, Err: ErrRhymeNotFound}
			}
			if c.format.IsIPA() {
				rime = NormalizeRhyme(onset, rime)
			}
			syl := Syllable{Full: full, Onset: onset, Rhyme: rime}
			if digits, _ := group("tone"); digits != "" {
				if tone, err := strconv.ParseUint(digits, 10, 0); err == nil {
					syl.Tone = uint(tone)
					syl.HasTone = true
				}
			}
			tokens = append(tokens, SyllableToken(syl))
		} else if _, ok := group("space"); ok {
			tokens = append(tokens, SpaceToken())
		} else if _, ok := group("quote"); ok {
			tokens = append(tokens, SeparatorToken())
		} else if p, ok := group("punctuation"); ok {
			tokens = append(tokens, PunctuationToken(p))
		}
	}
	return tokens, nil
}
