// Package pinyin converts Pinyin with trailing tone digits into Pinyin with
// diacritics, Pinyin or IPA with superscript tone contours, or Pinyin or IPA
// with LaTeX-wrapped tone contours.
//
// Conversion runs in two steps. Tokenize splits text into syllables, spaces,
// apostrophe separators and punctuation; Transform renders each token and
// concatenates the results in order:
//
//	c := pinyin.NewConverter(pinyin.IPASuperscript, "")
//	out, err := c.Convert("ni3 hao3") // "ni²¹⁴ xɑw²¹⁴"
//
// Input is expected to be NFC-normalized. Characters outside the recognized
// token kinds (for example ';') are silently dropped. The conversion is one
// way: diacritic output cannot be tokenized back into tone digits.
package pinyin
