package pinyin

import (
	"fmt"
	"strings"
)

// Syllable is one parsed Pinyin syllable.
//
// Tone is not validated when the syllable is built: any digit the tokenizer
// captured is kept, and values outside 0..5 only fail once the syllable is
// rendered.
type Syllable struct {
	// Full is the matched source text, used in error messages.
	Full string
	// Onset is the initial as written; empty for a zero onset.
	Onset string
	// Rhyme is the final. For IPA output it has already been normalized.
	Rhyme string
	// Tone is the trailing tone digit, meaningful only when HasTone is set.
	Tone    uint
	HasTone bool
}

// Contour returns the pitch contour of the syllable's tone: "0" for tones
// 0 and 5, "55", "35", "214", "51" for tones 1-4 and "" when no tone was
// written.
func (s Syllable) Contour() (string, error) {
	if !s.HasTone {
		return "", nil
	}
	c, ok := contour(s.Tone)
	if !ok {
		return "", syllableErr(s, ErrToneConversion)
	}
	return c, nil
}

// Diacritic returns the rhyme with the tone mark placed on its nucleus.
// Tones 0 and 5, toneless syllables and rhymes without a markable vowel are
// returned unchanged.
func (s Syllable) Diacritic() (string, error) {
	if !s.HasTone {
		return s.Rhyme, nil
	}
	var idx int
	switch {
	case s.Tone >= 1 && s.Tone <= 4:
		idx = int(s.Tone) - 1
	case s.Tone == 0 || s.Tone == 5:
		return s.Rhyme, nil
	default:
		return "", syllableErr(s, ErrToneConversion)
	}

	if strings.Contains(s.Rhyme, "iu") {
		return markVowel(s.Rhyme, "u", idx), nil
	}
	for _, v := range []string{"a", "e", "o", "i", "u", "ü", "v"} {
		if strings.Contains(s.Rhyme, v) {
			return markVowel(s.Rhyme, v, idx), nil
		}
	}
	return s.Rhyme, nil
}

// markVowel replaces the first occurrence of vowel in rhyme with its marked
// form for tone index idx.
func markVowel(rhyme, vowel string, idx int) string {
	for _, row := range toneDiacritics {
		if row.vowel == vowel {
			return strings.Replace(rhyme, vowel, row.marks[idx], 1)
		}
	}
	return rhyme
}

// IPA returns the syllable's segments in IPA, without tone.
func (s Syllable) IPA() (string, error) {
	var onset string
	if s.Onset != "" {
		ipa, ok := OnsetIPA(s.Onset)
		if !ok {
			return "", syllableErr(s, ErrInvalidInitial)
		}
		onset = ipa
	}
	rhyme, ok := RhymeIPA(s.Rhyme)
	if !ok {
		return "", syllableErr(s, ErrInvalidRhyme)
	}
	return onset + rhyme, nil
}

// Render converts the syllable to the given format. The returned text and
// tone are concatenated by the caller. wrapper is the LaTeX command name used
// by PinyinLaTeX and IPALaTeX.
func (s Syllable) Render(f Format, wrapper string) (text, tone string, err error) {
	switch f {
	case PinyinDiacritic:
		marked, err := s.Diacritic()
		if err != nil {
			return "", "", err
		}
		return s.Onset + spellU(marked), "", nil
	case PinyinSuperscript, PinyinLaTeX:
		c, err := s.Contour()
		if err != nil {
			return "", "", err
		}
		text = s.Onset + spellU(s.Rhyme)
		if f == PinyinSuperscript {
			return text, Superscript(c), nil
		}
		return text, wrapLaTeX(wrapper, c), nil
	case IPALaTeX, IPASuperscript:
		text, err = s.IPA()
		if err != nil {
			return "", "", err
		}
		c, err := s.Contour()
		if err != nil {
			return "", "", err
		}
		if f == IPASuperscript {
			return text, Superscript(c), nil
		}
		return text, wrapLaTeX(wrapper, c), nil
	default:
		return "", "", fmt.Errorf("unsupported format %v", f)
	}
}

// Superscript rewrites ASCII digits as superscript digits. Other characters
// pass through.
func Superscript(tone string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return superscriptDigits[r-'0']
		}
		return r
	}, tone)
}

func wrapLaTeX(wrapper, c string) string {
	if c == "" {
		return ""
	}
	return `\` + wrapper + "{" + c + "}"
}

// spellU renders the typing alias v as ü.
func spellU(s string) string {
	return strings.ReplaceAll(s, "v", "ü")
}

// NormalizeRhyme rewrites a captured rhyme into the spelling used by the IPA
// table. j/q/x turn u into ü, zh/ch/sh/r turn i into the apical r, z/c/s
// turn i into the apical z; then the y and w glides are folded into the
// vowels they stand for. The steps run in this order and may feed each other.
func NormalizeRhyme(onset, rhyme string) string {
	rhyme = strings.ToLower(rhyme)
	switch strings.ToLower(onset) {
	case "j", "q", "x":
		rhyme = strings.ReplaceAll(rhyme, "u", "ü")
	case "zh", "ch", "sh", "r":
		rhyme = strings.ReplaceAll(rhyme, "i", "r")
	case "z", "c", "s":
		rhyme = strings.ReplaceAll(rhyme, "i", "z")
	}
	for _, step := range glideSteps {
		rhyme = strings.ReplaceAll(rhyme, step[0], step[1])
	}
	return rhyme
}

var glideSteps = [...][2]string{
	{"yu", "ü"},
	{"y", "i"},
	{"ii", "i"},
	{"w", "u"},
	{"uu", "u"},
}
