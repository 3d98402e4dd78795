package pinyin

import (
	"maps"
	"slices"
	"strings"
)

var superscriptDigits = [10]rune{'⁰', '¹', '²', '³', '⁴', '⁵', '⁶', '⁷', '⁸', '⁹'}

// diacriticRow holds the marked forms of one vowel for tones 1 to 4.
type diacriticRow struct {
	vowel string
	marks [4]string
}

// Rows are searched in this order; ü and v share the same marks.
var toneDiacritics = [...]diacriticRow{
	{"a", [4]string{"ā", "á", "ǎ", "à"}},
	{"e", [4]string{"ē", "é", "ě", "è"}},
	{"o", [4]string{"ō", "ó", "ǒ", "ò"}},
	{"i", [4]string{"ī", "í", "ǐ", "ì"}},
	{"u", [4]string{"ū", "ú", "ǔ", "ù"}},
	{"ü", [4]string{"ǖ", "ǘ", "ǚ", "ǜ"}},
	{"v", [4]string{"ǖ", "ǘ", "ǚ", "ǜ"}},
}

var initialIPA = map[string]string{
	"b":  "p",
	"p":  "pʰ",
	"m":  "m",
	"f":  "f",
	"d":  "t",
	"t":  "tʰ",
	"n":  "n",
	"l":  "l",
	"g":  "k",
	"k":  "kʰ",
	"h":  "x",
	"j":  "tɕ",
	"q":  "tɕʰ",
	"x":  "ɕ",
	"zh": "tʂ",
	"ch": "tʂʰ",
	"sh": "ʂ",
	"r":  "ʐ",
	"z":  "ts",
	"c":  "tsʰ",
	"s":  "s",
}

var rhymeIPA = map[string]string{
	"a":   "ɑ",
	"ai":  "aj",
	"ao":  "ɑw",
	"an":  "an",
	"ang": "ɑŋ",

	"e":   "ɤ", // ɰʌ
	"ei":  "ej",
	"en":  "ən",
	"eng": "əŋ",

	"o":   "wʌ", // wɔ
	"uo":  "wʌ",
	"ou":  "ɤw",
	"ong": "ʊŋ",

	"i":    "i",
	"ia":   "jɑ",
	"iao":  "jɑw",
	"ie":   "jɛ",
	"iu":   "jɤw",
	"iou":  "jɤw",
	"ian":  "jɛn",
	"iang": "jɑŋ",
	"in":   "in",
	"ing":  "iŋ",
	"iong": "jʊŋ",

	"u":    "u",
	"ua":   "wɑ",
	"uai":  "waj",
	"uan":  "wan",
	"uang": "wɑŋ",
	"ui":   "wej",
	"uei":  "wej",
	"un":   "wən",
	"uen":  "wən",
	"ueng": "wəŋ",

	"ü":   "y",
	"v":   "y",
	"üe":  "ɥœ",
	"ve":  "ɥœ",
	"üan": "ɥɛn",
	"van": "ɥɛn",
	"ün":  "yn",
	"vn":  "yn",
	"üen": "yn",

	// apical vowels after z/c/s and zh/ch/sh/r
	"z": "ɿ",
	"r": "ʅ",

	// erhua
	"ar":   "ɐʵ",
	"air":  "ɐʵ",
	"aor":  "ɑʊʵ",
	"anr":  "ɐʵ",
	"angr": "ɑ̃ʵ",

	"er":   "ɤʵ",
	"eir":  "ɚ",
	"enr":  "ɚ",
	"engr": "ɤ̃ʵ",

	"or":   "wɔʵ",
	"uor":  "wɔʵ",
	"our":  "ɤʊʵ",
	"ongr": "ʊ̃ʵ",

	"ir":    "jɚ",
	"rr":    "ɚ",
	"zr":    "ɚ",
	"iar":   "jɐʵ",
	"iaor":  "jɑʊʵ",
	"ier":   "jɛʵ",
	"iur":   "jɤʊʵ",
	"iour":  "jɤʊʵ",
	"ianr":  "jɐʵ",
	"iangr": "jɑ̃ʵ",
	"inr":   "jɚ",
	"ingr":  "jɤ̃ʵ",
	"iongr": "jʊ̃ʵ",

	"ur":    "uʵ",
	"uar":   "wɐʵ",
	"uair":  "wɐʵ",
	"uanr":  "wɐʵ",
	"uangr": "wɑ̃ʵ",
	"uir":   "wɚ",
	"ueir":  "wɚ",
	"unr":   "wɚ",
	"uenr":  "wɚ",
	"uengr": "wɤ̃ʵ",

	"ür":   "ɥɚ",
	"üer":  "ɥœʵ",
	"üanr": "ɥɐʵ",
	"ünr":  "ɥɚ",
	"üenr": "ɥɚ",

	"vr":   "ɥɚ",
	"ver":  "ɥœʵ",
	"vanr": "ɥɐʵ",
	"vnr":  "ɥɚ",
}

// OnsetIPA returns the IPA rendering of a Pinyin initial. Lookup ignores case.
func OnsetIPA(onset string) (string, bool) {
	ipa, ok := initialIPA[strings.ToLower(onset)]
	return ipa, ok
}

// RhymeIPA returns the IPA rendering of a normalized rhyme.
func RhymeIPA(rhyme string) (string, bool) {
	ipa, ok := rhymeIPA[rhyme]
	return ipa, ok
}

// Onsets returns the known initials in sorted order.
func Onsets() []string {
	return slices.Sorted(maps.Keys(initialIPA))
}

// Rhymes returns the known rhymes in sorted order.
func Rhymes() []string {
	return slices.Sorted(maps.Keys(rhymeIPA))
}

// contour maps a tone number to its pitch contour. ok is false for tones
// outside 0..5.
func contour(tone uint) (string, bool) {
	switch tone {
	case 0, 5:
		return "0", true
	case 1:
		return "55", true
	case 2:
		return "35", true
	case 3:
		return "214", true
	case 4:
		return "51", true
	default:
		return "", false
	}
}
