package doctor

import (
	"errors"
	"fmt"
	"strings"

	"github.com/example/go-siphon/internal/pinyin"
	"github.com/example/go-siphon/internal/text"
)

// ReferenceSentence covers retroflex and apical rhymes, the neutral tone,
// toneless glide syllables and erhua.
const ReferenceSentence = "zhe4 shi4 yi2ge0 ce4shi4, yi ya yang yu yue yuan, zher4 shi4 nar3"

// referenceOutputs is ReferenceSentence rendered in every format with the
// default wrapper.
var referenceOutputs = map[pinyin.Format]string{
	pinyin.PinyinDiacritic: "zhè shì yíge cèshì, yi ya yang yu yue yuan, zhèr shì nǎr",
	pinyin.PinyinSuperscript: "zhe⁵¹ shi⁵¹ yi³⁵ge⁰ ce⁵¹shi⁵¹, yi ya yang yu yue yuan, " +
		"zher⁵¹ shi⁵¹ nar²¹⁴",
	pinyin.PinyinLaTeX: `zhe\textsuperscript{51} shi\textsuperscript{51} ` +
		`yi\textsuperscript{35}ge\textsuperscript{0} ce\textsuperscript{51}shi\textsuperscript{51}, ` +
		`yi ya yang yu yue yuan, zher\textsuperscript{51} shi\textsuperscript{51} nar\textsuperscript{214}`,
	pinyin.IPALaTeX: `tʂɤ\textsuperscript{51} ʂʅ\textsuperscript{51} ` +
		`i\textsuperscript{35}kɤ\textsuperscript{0} tsʰɤ\textsuperscript{51}ʂʅ\textsuperscript{51}, ` +
		`i jɑ jɑŋ y ɥœ ɥɛn, tʂɤʵ\textsuperscript{51} ʂʅ\textsuperscript{51} nɐʵ\textsuperscript{214}`,
	pinyin.IPASuperscript: "tʂɤ⁵¹ ʂʅ⁵¹ i³⁵kɤ⁰ tsʰɤ⁵¹ʂʅ⁵¹, i jɑ jɑŋ y ɥœ ɥɛn, tʂɤʵ⁵¹ ʂʅ⁵¹ nɐʵ²¹⁴",
}

// patternOnsets lists every initial the tokenizer can capture.
var patternOnsets = append([]string{"zh", "ch", "sh"}, strings.Split("bpmfdtnlgkhjqxrzcs", "")...)

// BuiltinChecks returns the table and converter self-checks. The Han
// dictionary check is skipped unless hanzi is set.
func BuiltinChecks(hanzi bool) []Check {
	checks := []Check{
		{Name: "tokenizer pattern", Run: checkPattern},
		{Name: "onset table", Run: checkOnsets},
		{Name: "diacritic rows", Run: checkDiacritics},
	}
	for _, f := range pinyin.Formats() {
		checks = append(checks, Check{
			Name: "reference " + f.String(),
			Run:  func() (string, error) { return checkReference(f) },
		})
	}
	checks = append(checks, Check{Name: "hanzi dictionary", Run: checkHanzi, Skip: !hanzi})
	return checks
}

func checkPattern() (string, error) {
	re, err := pinyin.Pattern()
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%d groups", re.NumSubexp()), nil
}

// checkOnsets tokenizes every capturable initial and requires an IPA entry
// for it.
func checkOnsets() (string, error) {
	conv := pinyin.NewConverter(pinyin.IPASuperscript, "")
	var errs []error
	for _, onset := range patternOnsets {
		tokens, err := conv.Tokenize(onset + "e1")
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if len(tokens) != 1 || tokens[0].Syllable.Onset != onset {
			errs = append(errs, fmt.Errorf("%s: captured as %v", onset, tokens))
			continue
		}
		if _, ok := pinyin.OnsetIPA(onset); !ok {
			errs = append(errs, fmt.Errorf("%s: %w", onset, pinyin.ErrInvalidInitial))
		}
	}
	if err := errors.Join(errs...); err != nil {
		return "", err
	}
	return fmt.Sprintf("%d onsets", len(patternOnsets)), nil
}

// checkDiacritics requires every markable vowel to change under tones 1-4.
func checkDiacritics() (string, error) {
	vowels := []string{"a", "e", "o", "i", "u", "ü", "v"}
	for _, v := range vowels {
		for tone := uint(1); tone <= 4; tone++ {
			s := pinyin.Syllable{Full: v, Rhyme: v, Tone: tone, HasTone: true}
			marked, err := s.Diacritic()
			if err != nil {
				return "", err
			}
			if marked == v {
				return "", fmt.Errorf("%s tone %d: no mark", v, tone)
			}
		}
	}
	return fmt.Sprintf("%d vowels", len(vowels)), nil
}

func checkReference(f pinyin.Format) (string, error) {
	got, err := pinyin.NewConverter(f, "").Convert(ReferenceSentence)
	if err != nil {
		return "", err
	}
	if want := referenceOutputs[f]; got != want {
		return "", fmt.Errorf("got %q, want %q", got, want)
	}
	return "ok", nil
}

func checkHanzi() (string, error) {
	const in, want = "中国", "zhong1 guo2"
	if got := text.HanziToPinyin(in); got != want {
		return "", fmt.Errorf("%s: got %q, want %q", in, got, want)
	}
	return "ok", nil
}
