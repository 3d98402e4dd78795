package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/example/go-siphon/internal/bench"
	"github.com/example/go-siphon/internal/doctor"
	"github.com/example/go-siphon/internal/pinyin"
	"github.com/spf13/cobra"
)

func newBenchCmd() *cobra.Command {
	var (
		runs          int
		report        string
		minThroughput float64
	)

	cmd := &cobra.Command{
		Use:   "bench [INPUT...]",
		Short: "Benchmark conversion latency and syllable throughput",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := requireConfig()
			if err != nil {
				return err
			}

			if runs < 1 {
				return fmt.Errorf("--runs must be at least 1")
			}
			if report != "table" && report != "json" {
				return fmt.Errorf("--report must be 'table' or 'json'")
			}

			input := doctor.ReferenceSentence
			if len(args) > 0 {
				input = strings.Join(args, " ")
			}

			conv, err := cfg.Convert.Converter()
			if err != nil {
				return err
			}

			results, err := runBench(conv, input, runs)
			if err != nil {
				return err
			}

			durations := make([]time.Duration, len(results))
			for i, r := range results {
				durations[i] = r.Duration
			}
			stats := bench.ComputeStats(durations)

			switch report {
			case "json":
				bench.FormatJSON(results, stats, cmd.OutOrStdout())
			default:
				bench.FormatTable(results, stats, cmd.OutOrStdout())
			}

			return bench.CheckThroughputThreshold(bench.MeanThroughput(results), minThroughput)
		},
	}

	cmd.Flags().IntVar(&runs, "runs", 5, "Number of conversion runs")
	cmd.Flags().StringVar(&report, "report", "table", "Report format: table|json")
	cmd.Flags().Float64Var(&minThroughput, "min-throughput", 0,
		"Exit non-zero if mean syllables per second falls below this value (0 = disabled)")

	return cmd
}

func runBench(conv *pinyin.Converter, input string, runs int) ([]bench.RunResult, error) {
	tokens, err := conv.Tokenize(input)
	if err != nil {
		return nil, err
	}
	syllables := 0
	for _, tok := range tokens {
		if tok.Kind == pinyin.KindSyllable {
			syllables++
		}
	}

	results := make([]bench.RunResult, 0, runs)

	for i := range runs {
		start := time.Now()
		if _, err := conv.Convert(input); err != nil {
			return nil, fmt.Errorf("run %d failed: %w", i+1, err)
		}
		dur := time.Since(start)

		results = append(results, bench.RunResult{
			Index:      i,
			Cold:       i == 0,
			Duration:   dur,
			Syllables:  syllables,
			Throughput: bench.CalcThroughput(syllables, dur),
		})
	}

	return results, nil
}
