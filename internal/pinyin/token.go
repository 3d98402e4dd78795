package pinyin

import "fmt"

// Kind discriminates the variants of Token.
type Kind int

const (
	KindSyllable Kind = iota
	KindSpace
	KindSeparator
	KindPunctuation
)

func (k Kind) String() string {
	switch k {
	case KindSyllable:
		return "syllable"
	case KindSpace:
		return "space"
	case KindSeparator:
		return "separator"
	case KindPunctuation:
		return "punctuation"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Token is one segment of tokenized input. Syllable is set only for
// KindSyllable and Text only for KindPunctuation.
type Token struct {
	Kind     Kind
	Syllable Syllable
	Text     string
}

func SyllableToken(s Syllable) Token { return Token{Kind: KindSyllable, Syllable: s} }

func SpaceToken() Token { return Token{Kind: KindSpace} }

func SeparatorToken() Token { return Token{Kind: KindSeparator} }

func PunctuationToken(p string) Token { return Token{Kind: KindPunctuation, Text: p} }

func (t Token) String() string {
	switch t.Kind {
	case KindSyllable:
		s := t.Syllable
		if s.HasTone {
			return fmt.Sprintf("Syllable(%s|%s|%d)", s.Onset, s.Rhyme, s.Tone)
		}
		return fmt.Sprintf("Syllable(%s|%s|-)", s.Onset, s.Rhyme)
	case KindPunctuation:
		return fmt.Sprintf("Punctuation(%q)", t.Text)
	default:
		return t.Kind.String()
	}
}
