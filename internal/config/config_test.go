package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/example/go-siphon/internal/pinyin"
	"github.com/spf13/pflag"
)

// fakeBinder wraps a pflag.FlagSet to satisfy the flagBinder interface.
type fakeBinder struct {
	fs *pflag.FlagSet
}

func (f *fakeBinder) Flags() *pflag.FlagSet { return f.fs }

// newFlagBinder creates a FlagSet with all config flags registered at their defaults.
func newFlagBinder(defaults Config) *fakeBinder {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	return &fakeBinder{fs: fs}
}

// --- DefaultConfig ---

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Convert.Format != "dia" {
		t.Errorf("Convert.Format = %q; want %q", cfg.Convert.Format, "dia")
	}

	if cfg.Convert.Wrapper != "textsuperscript" {
		t.Errorf("Convert.Wrapper = %q; want %q", cfg.Convert.Wrapper, "textsuperscript")
	}

	if cfg.Convert.Hanzi {
		t.Error("Convert.Hanzi = true; want false")
	}

	if cfg.Server.ListenAddr != ":8080" {
		t.Errorf("Server.ListenAddr = %q; want %q", cfg.Server.ListenAddr, ":8080")
	}

	if cfg.Server.MaxTextBytes != 4096 {
		t.Errorf("Server.MaxTextBytes = %d; want 4096", cfg.Server.MaxTextBytes)
	}

	if cfg.Server.RequestTimeout != 10 {
		t.Errorf("Server.RequestTimeout = %d; want 10", cfg.Server.RequestTimeout)
	}

	if cfg.Server.ShutdownTimeout != 10 {
		t.Errorf("Server.ShutdownTimeout = %d; want 10", cfg.Server.ShutdownTimeout)
	}

	if cfg.Server.Workers != 4 {
		t.Errorf("Server.Workers = %d; want 4", cfg.Server.Workers)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "info")
	}
}

// --- NormalizeFormat ---

func TestNormalizeFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    pinyin.Format
		wantErr bool
	}{
		{"canonical dia", "dia", pinyin.PinyinDiacritic, false},
		{"latex alias", "latex", pinyin.IPALaTeX, false},
		{"superscript uppercase", "SUPERSCRIPT", pinyin.IPASuperscript, false},
		{"number alias with spaces", "  number  ", pinyin.PinyinLaTeX, false},
		{"pinyin superscript", "pysup", pinyin.PinyinSuperscript, false},
		{"empty defaults to dia", "", pinyin.PinyinDiacritic, false},
		{"invalid value", "morse", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeFormat(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NormalizeFormat(%q) = %v, nil; want error", tt.input, got)
				}

				return
			}

			if err != nil {
				t.Errorf("NormalizeFormat(%q) unexpected error: %v", tt.input, err)
				return
			}

			if got != tt.want {
				t.Errorf("NormalizeFormat(%q) = %v; want %v", tt.input, got, tt.want)
			}
		})
	}
}

func TestConvertConfig_Converter(t *testing.T) {
	c, err := ConvertConfig{Format: "sup", Wrapper: "UP"}.Converter()
	if err != nil {
		t.Fatalf("Converter() error = %v", err)
	}

	if c.Format() != pinyin.IPASuperscript || c.Wrapper() != "UP" {
		t.Errorf("Converter() = %v/%q; want sup/UP", c.Format(), c.Wrapper())
	}

	if _, err := (ConvertConfig{Format: "bad"}).Converter(); err == nil {
		t.Error("Converter() = nil error; want error for invalid format")
	}
}

// --- RegisterFlags ---

func TestRegisterFlags(t *testing.T) {
	defaults := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	// Spot-check a few flags are registered with correct defaults.
	checks := []struct {
		flag string
		want string
	}{
		{"format", "dia"},
		{"wrap", "textsuperscript"},
		{"hanzi", "false"},
		{"server-listen-addr", ":8080"},
		{"workers", "4"},
		{"log-level", "info"},
	}

	for _, c := range checks {
		f := fs.Lookup(c.flag)
		if f == nil {
			t.Errorf("flag %q not registered", c.flag)
			continue
		}

		if f.DefValue != c.want {
			t.Errorf("flag %q default = %q; want %q", c.flag, f.DefValue, c.want)
		}
	}

	if fs.ShorthandLookup("f") == nil || fs.ShorthandLookup("r") == nil {
		t.Error("expected -f and -r shorthands to be registered")
	}
}

func TestRegisterFlags_RejectsUnknownFormat(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.SetOutput(discard{})
	RegisterFlags(fs, DefaultConfig())

	if err := fs.Parse([]string{"--format=klingon"}); err == nil {
		t.Error("Parse() = nil; want error for unknown format")
	}
}

func TestRegisterFlags_Aliases(t *testing.T) {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, DefaultConfig())

	err := fs.Parse([]string{"--toneformat=ipa", "--latex-wrapper=UP"})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if got := fs.Lookup("format").Value.String(); got != "ipa" {
		t.Errorf("format = %q; want %q", got, "ipa")
	}

	if got := fs.Lookup("wrap").Value.String(); got != "UP" {
		t.Errorf("wrap = %q; want %q", got, "UP")
	}
}

// --- Load ---

func TestLoad_Defaults(t *testing.T) {
	defaults := DefaultConfig()
	binder := newFlagBinder(defaults)

	cfg, err := Load(LoadOptions{
		Cmd:      binder,
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg != defaults {
		t.Errorf("Load() = %+v; want %+v", cfg, defaults)
	}
}

func TestLoad_FlagOverride(t *testing.T) {
	defaults := DefaultConfig()
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	RegisterFlags(fs, defaults)

	err := fs.Parse([]string{
		"-f", "superscript",
		"-r", "UP",
		"--hanzi",
		"--workers=8",
		"--log-level=debug",
	})
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	cfg, err := Load(LoadOptions{
		Cmd:      &fakeBinder{fs: fs},
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Convert.Format != "sup" {
		t.Errorf("Convert.Format = %q; want %q", cfg.Convert.Format, "sup")
	}

	if cfg.Convert.Wrapper != "UP" {
		t.Errorf("Convert.Wrapper = %q; want %q", cfg.Convert.Wrapper, "UP")
	}

	if !cfg.Convert.Hanzi {
		t.Error("Convert.Hanzi = false; want true")
	}

	if cfg.Server.Workers != 8 {
		t.Errorf("Server.Workers = %d; want 8", cfg.Server.Workers)
	}

	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "debug")
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SIPHON_LOG_LEVEL", "warn")
	t.Setenv("SIPHON_SERVER_LISTEN_ADDR", ":9999")
	t.Setenv("SIPHON_CONVERT_FORMAT", "ipa")

	defaults := DefaultConfig()

	cfg, err := Load(LoadOptions{
		Cmd:      newFlagBinder(defaults),
		Defaults: defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "warn")
	}

	if cfg.Server.ListenAddr != ":9999" {
		t.Errorf("Server.ListenAddr = %q; want %q", cfg.Server.ListenAddr, ":9999")
	}

	if cfg.Convert.Format != "ipa" {
		t.Errorf("Convert.Format = %q; want %q", cfg.Convert.Format, "ipa")
	}
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "siphon.yaml")

	content := `
log_level: error
convert:
  format: num
  wrapper: UP
server:
  workers: 16
  listen_addr: ":7777"
`

	err := os.WriteFile(cfgFile, []byte(content), 0o644)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	defaults := DefaultConfig()

	cfg, err := Load(LoadOptions{
		Cmd:        newFlagBinder(defaults),
		ConfigFile: cfgFile,
		Defaults:   defaults,
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.LogLevel != "error" {
		t.Errorf("LogLevel = %q; want %q", cfg.LogLevel, "error")
	}

	if cfg.Convert.Format != "num" || cfg.Convert.Wrapper != "UP" {
		t.Errorf("Convert = %+v; want num/UP", cfg.Convert)
	}

	if cfg.Server.Workers != 16 {
		t.Errorf("Server.Workers = %d; want 16", cfg.Server.Workers)
	}

	if cfg.Server.ListenAddr != ":7777" {
		t.Errorf("Server.ListenAddr = %q; want %q", cfg.Server.ListenAddr, ":7777")
	}
}

func TestLoad_FlagBeatsConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "siphon.yaml")

	if err := os.WriteFile(cfgFile, []byte("convert:\n  format: num\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	defaults := DefaultConfig()
	binder := newFlagBinder(defaults)

	if err := binder.fs.Parse([]string{"--format=sup"}); err != nil {
		t.Fatalf("Parse: %v", err)
	}

	cfg, err := Load(LoadOptions{Cmd: binder, ConfigFile: cfgFile, Defaults: defaults})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Convert.Format != "sup" {
		t.Errorf("Convert.Format = %q; want %q", cfg.Convert.Format, "sup")
	}
}

func TestLoad_InvalidFormatInConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "siphon.yaml")

	if err := os.WriteFile(cfgFile, []byte("convert:\n  format: morse\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := Load(LoadOptions{ConfigFile: cfgFile, Defaults: DefaultConfig()})
	if err == nil {
		t.Error("Load() = nil; want error for invalid format")
	}
}

func TestLoad_InvalidConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "bad.yaml")
	// Write invalid YAML
	err := os.WriteFile(cfgFile, []byte(":\t:bad yaml:::"), 0o644)
	if err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err = Load(LoadOptions{
		ConfigFile: cfgFile,
		Defaults:   DefaultConfig(),
	})
	if err == nil {
		t.Error("Load() = nil; want error for invalid config file")
	}
}

func TestLoad_MissingExplicitConfigFile(t *testing.T) {
	_, err := Load(LoadOptions{
		ConfigFile: "/nonexistent/path/siphon.yaml",
		Defaults:   DefaultConfig(),
	})
	if err == nil {
		t.Error("Load() = nil; want error for missing explicit config file")
	}
}

func TestLoad_NilCmd(t *testing.T) {
	cfg, err := Load(LoadOptions{
		Cmd:      nil,
		Defaults: DefaultConfig(),
	})
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Convert.Wrapper != "textsuperscript" {
		t.Errorf("Convert.Wrapper = %q; want %q", cfg.Convert.Wrapper, "textsuperscript")
	}
}

type discard struct{}

func (discard) Write(p []byte) (int, error) { return len(p), nil }
