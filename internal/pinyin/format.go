package pinyin

import (
	"fmt"
	"strings"
)

// Format selects the output notation and the tone encoding.
type Format int

const (
	// PinyinDiacritic renders tones as diacritics on the nucleus vowel (zhě).
	PinyinDiacritic Format = iota
	// PinyinSuperscript appends the tone contour in superscript digits (zhe²¹⁴).
	PinyinSuperscript
	// PinyinLaTeX appends the tone contour wrapped in a LaTeX command (zhe\textsuperscript{214}).
	PinyinLaTeX
	// IPALaTeX renders IPA with the contour wrapped in a LaTeX command (tʂɤ\textsuperscript{214}).
	IPALaTeX
	// IPASuperscript renders IPA with the contour in superscript digits (tʂɤ²¹⁴).
	IPASuperscript
)

var formatNames = [...]string{
	PinyinDiacritic:   "dia",
	PinyinSuperscript: "pysup",
	PinyinLaTeX:       "num",
	IPALaTeX:          "ipa",
	IPASuperscript:    "sup",
}

var formatAliases = map[string]Format{
	"dia":             PinyinDiacritic,
	"pydia":           PinyinDiacritic,
	"pinyindia":       PinyinDiacritic,
	"diacritic":       PinyinDiacritic,
	"pinyindiacritic": PinyinDiacritic,

	"pysup":             PinyinSuperscript,
	"pinyinsup":         PinyinSuperscript,
	"pinyinsuper":       PinyinSuperscript,
	"pinyinsuperscript": PinyinSuperscript,

	"num":         PinyinLaTeX,
	"number":      PinyinLaTeX,
	"pynum":       PinyinLaTeX,
	"pylatex":     PinyinLaTeX,
	"pinyinlatex": PinyinLaTeX,

	"ipa":      IPALaTeX,
	"ipatex":   IPALaTeX,
	"ipalatex": IPALaTeX,
	"tex":      IPALaTeX,
	"latex":    IPALaTeX,

	"sup":         IPASuperscript,
	"ipasup":      IPASuperscript,
	"ipasuper":    IPASuperscript,
	"super":       IPASuperscript,
	"superscript": IPASuperscript,
}

// Formats returns every format in declaration order.
func Formats() []Format {
	return []Format{PinyinDiacritic, PinyinSuperscript, PinyinLaTeX, IPALaTeX, IPASuperscript}
}

// String returns the canonical short name accepted by ParseFormat.
func (f Format) String() string {
	if f < 0 || int(f) >= len(formatNames) {
		return fmt.Sprintf("Format(%d)", int(f))
	}
	return formatNames[f]
}

// IsIPA reports whether the format renders IPA rather than Pinyin.
func (f Format) IsIPA() bool {
	return f == IPALaTeX || f == IPASuperscript
}

// ParseFormat resolves a case-insensitive format name or alias.
// An empty name selects PinyinDiacritic.
func ParseFormat(raw string) (Format, error) {
	name := strings.ToLower(strings.TrimSpace(raw))
	if name == "" {
		return PinyinDiacritic, nil
	}
	if f, ok := formatAliases[name]; ok {
		return f, nil
	}
	return 0, fmt.Errorf(
		"invalid format %q (expected %s|%s|%s|%s|%s)",
		raw,
		PinyinDiacritic,
		PinyinSuperscript,
		PinyinLaTeX,
		IPALaTeX,
		IPASuperscript,
	)
}

// Set implements pflag.Value.
func (f *Format) Set(raw string) error {
	parsed, err := ParseFormat(raw)
	if err != nil {
		return err
	}
	*f = parsed
	return nil
}

// Type implements pflag.Value.
func (f *Format) Type() string { return "format" }
