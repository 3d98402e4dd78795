package config

import "github.com/example/go-siphon/internal/pinyin"

// NormalizeFormat resolves a configured format name or alias. An empty
// name selects the Pinyin diacritic format.
func NormalizeFormat(raw string) (pinyin.Format, error) {
	return pinyin.ParseFormat(raw)
}

// Converter builds the converter described by the convert section.
func (c ConvertConfig) Converter() (*pinyin.Converter, error) {
	format, err := NormalizeFormat(c.Format)
	if err != nil {
		return nil, err
	}
	return pinyin.NewConverter(format, c.Wrapper), nil
}
