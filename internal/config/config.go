package config

import (
	"fmt"
	"strings"

	"github.com/example/go-siphon/internal/pinyin"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Convert  ConvertConfig `mapstructure:"convert"`
	Server   ServerConfig  `mapstructure:"server"`
	LogLevel string        `mapstructure:"log_level"`
}

type ConvertConfig struct {
	Format  string `mapstructure:"format"`
	Wrapper string `mapstructure:"wrapper"`
	Hanzi   bool   `mapstructure:"hanzi"`
}

type ServerConfig struct {
	ListenAddr      string `mapstructure:"listen_addr"`
	MaxTextBytes    int    `mapstructure:"max_text_bytes"`
	RequestTimeout  int    `mapstructure:"request_timeout"`
	ShutdownTimeout int    `mapstructure:"shutdown_timeout"`
	Workers         int    `mapstructure:"workers"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Convert: ConvertConfig{
			Format:  pinyin.PinyinDiacritic.String(),
			Wrapper: pinyin.DefaultWrapper,
			Hanzi:   false,
		},
		Server: ServerConfig{
			ListenAddr:      ":8080",
			MaxTextBytes:    4096,
			RequestTimeout:  10,
			ShutdownTimeout: 10,
			Workers:         4,
		},
		LogLevel: "info",
	}
}

// flagKeys maps each registered flag to the config key it sets.
var flagKeys = map[string]string{
	"format":                  "convert.format",
	"wrap":                    "convert.wrapper",
	"hanzi":                   "convert.hanzi",
	"server-listen-addr":      "server.listen_addr",
	"server-max-text-bytes":   "server.max_text_bytes",
	"server-request-timeout":  "server.request_timeout",
	"server-shutdown-timeout": "server.shutdown_timeout",
	"workers":                 "server.workers",
	"log-level":               "log_level",
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	format, err := NormalizeFormat(defaults.Convert.Format)
	if err != nil {
		format = pinyin.PinyinDiacritic
	}
	fs.VarP(&format, "format", "f", "Transcription format of the output text (dia|pysup|num|ipa|sup)")
	fs.StringP("wrap", "r", defaults.Convert.Wrapper, "LaTeX wrapper command name; only the command name is replaced")
	fs.Bool("hanzi", defaults.Convert.Hanzi, "Convert Chinese characters to numbered pinyin before converting")
	fs.String("server-listen-addr", defaults.Server.ListenAddr, "HTTP listen address")
	fs.Int("server-max-text-bytes", defaults.Server.MaxTextBytes, "Maximum request text size in bytes")
	fs.Int("server-request-timeout", defaults.Server.RequestTimeout, "Per-request conversion timeout in seconds")
	fs.Int("server-shutdown-timeout", defaults.Server.ShutdownTimeout, "Graceful shutdown timeout in seconds")
	fs.Int("workers", defaults.Server.Workers, "Maximum concurrent conversions served over HTTP")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
	fs.SetNormalizeFunc(NormalizeFlagName)
}

// NormalizeFlagName resolves the alternative flag spellings accepted on the
// command line.
func NormalizeFlagName(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	switch name {
	case "toneformat", "textformat":
		name = "format"
	case "wrapper", "latex", "latexwrapper", "latex-wrapper":
		name = "wrap"
	}
	return pflag.NormalizedName(name)
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("SIPHON")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("siphon")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if _, err := NormalizeFormat(cfg.Convert.Format); err != nil {
		return Config{}, fmt.Errorf("convert.format: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("convert.format", c.Convert.Format)
	v.SetDefault("convert.wrapper", c.Convert.Wrapper)
	v.SetDefault("convert.hanzi", c.Convert.Hanzi)
	v.SetDefault("server.listen_addr", c.Server.ListenAddr)
	v.SetDefault("server.max_text_bytes", c.Server.MaxTextBytes)
	v.SetDefault("server.request_timeout", c.Server.RequestTimeout)
	v.SetDefault("server.shutdown_timeout", c.Server.ShutdownTimeout)
	v.SetDefault("server.workers", c.Server.Workers)
	v.SetDefault("log_level", c.LogLevel)
}

// bindFlags binds every registered flag present in fs to its config key.
// Flags only override file and env values when set explicitly.
func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for name, key := range flagKeys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
