package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/example/go-siphon/internal/config"
	"github.com/example/go-siphon/internal/pinyin"
	"github.com/example/go-siphon/internal/server"
	"github.com/example/go-siphon/internal/text"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	debug     bool
	activeCfg config.Config
)

func NewRootCmd() *cobra.Command {
	defaults := config.DefaultConfig()

	cmd := &cobra.Command{
		Use:   "siphon [flags] INPUT...",
		Short: "Convert numbered Pinyin to diacritics, tone contours or IPA",
		Long: "Convert Pinyin with trailing tone digits (zhe4 shi4) into Pinyin with\n" +
			"diacritics, Pinyin or IPA with superscript tone contours, or LaTeX-wrapped\n" +
			"contours. Reads stdin line by line when no INPUT is given.",
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			loaded, err := config.Load(config.LoadOptions{
				Cmd:        cmd,
				ConfigFile: cfgFile,
				Defaults:   defaults,
			})
			if err != nil {
				return err
			}
			if debug {
				loaded.LogLevel = "debug"
			}
			activeCfg = loaded
			setupLogger(loaded.LogLevel)
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			conv, err := cfg.Convert.Converter()
			if err != nil {
				return err
			}

			input, err := readInput(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			out, err := convertInput(conv, input, text.PrepareOptions{Hanzi: cfg.Convert.Hanzi})
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), out)
			return err
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Optional config file (yaml|toml|json)")
	config.RegisterFlags(cmd.PersistentFlags(), defaults)
	cmd.SetGlobalNormalizationFunc(config.NormalizeFlagName)
	cmd.Flags().BoolVarP(&debug, "debug", "d", false, "Log the token stream of each line")

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newHealthCmd())
	cmd.AddCommand(newTablesCmd())
	cmd.AddCommand(newDoctorCmd())
	cmd.AddCommand(newBenchCmd())

	return cmd
}

// setupLogger configures the process-wide slog default logger.
func setupLogger(levelStr string) {
	lvl, err := server.ParseLogLevel(levelStr)
	if err != nil {
		lvl = slog.LevelInfo
	}
	h := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(h))
}

func requireConfig() (config.Config, error) {
	if activeCfg.Convert.Format == "" {
		return config.Config{}, fmt.Errorf("configuration not loaded")
	}
	return activeCfg, nil
}

// readInput joins the positional arguments with spaces, or reads all of
// stdin when there are none.
func readInput(args []string, stdin io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}

	b, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	if strings.TrimSpace(string(b)) == "" {
		return "", fmt.Errorf("either provide INPUT arguments or pipe text on stdin")
	}
	return string(b), nil
}

// convertInput prepares input and converts it line by line. At debug level
// the token stream of every line is logged.
func convertInput(conv *pinyin.Converter, input string, opts text.PrepareOptions) (string, error) {
	if _, changed := text.Compose(input); changed {
		slog.Debug("input composed to NFC")
	}

	lines, err := text.Prepare(input, opts)
	if err != nil {
		return "", err
	}

	if slog.Default().Enabled(context.Background(), slog.LevelDebug) {
		logTokens(conv, lines)
	}

	out, err := conv.ConvertLines(lines)
	if err != nil {
		return "", err
	}
	return strings.Join(out, "\n"), nil
}

func logTokens(conv *pinyin.Converter, lines []string) {
	for i, line := range lines {
		tokens, err := conv.Tokenize(line)
		if err != nil {
			slog.Debug("tokenize failed", slog.Int("line", i+1), slog.String("error", err.Error()))
			continue
		}
		names := make([]string, len(tokens))
		for j, tok := range tokens {
			names[j] = tok.String()
		}
		slog.Debug("tokens",
			slog.Int("line", i+1),
			slog.String("format", conv.Format().String()),
			slog.Any("tokens", names),
		)
	}
}
