// Package bench provides benchmarking primitives for the siphon bench command.
package bench

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"
)

// ---------------------------------------------------------------------------
// Run result and stats
// ---------------------------------------------------------------------------

// RunResult holds the timing for a single conversion run.
type RunResult struct {
	Index      int
	Cold       bool // true for the first run (pattern compile, table warm-up)
	Duration   time.Duration
	Syllables  int
	Throughput float64 // syllables per second
}

// Stats holds aggregate timing statistics across all runs.
type Stats struct {
	Min  time.Duration
	Max  time.Duration
	Mean time.Duration
}

// ComputeStats calculates min, max and mean over a slice of durations.
// An empty slice returns the zero Stats.
func ComputeStats(durations []time.Duration) Stats {
	if len(durations) == 0 {
		return Stats{}
	}
	mn, mx := durations[0], durations[0]
	var sum time.Duration
	for _, d := range durations {
		if d < mn {
			mn = d
		}
		if d > mx {
			mx = d
		}
		sum += d
	}
	return Stats{
		Min:  mn,
		Max:  mx,
		Mean: sum / time.Duration(len(durations)),
	}
}

// ---------------------------------------------------------------------------
// Throughput helpers
// ---------------------------------------------------------------------------

// CalcThroughput returns syllables converted per second.
// Returns 0 if dur is zero to avoid division by zero.
func CalcThroughput(syllables int, dur time.Duration) float64 {
	if dur <= 0 {
		return 0
	}
	return float64(syllables) / dur.Seconds()
}

// MeanThroughput averages the throughput of runs. Zero runs yield 0.
func MeanThroughput(runs []RunResult) float64 {
	if len(runs) == 0 {
		return 0
	}
	var total float64
	for _, r := range runs {
		total += r.Throughput
	}
	return total / float64(len(runs))
}

// ---------------------------------------------------------------------------
// Throughput threshold gate
// ---------------------------------------------------------------------------

// CheckThroughputThreshold returns an error if mean is below threshold
// syllables per second. A threshold of 0 disables the gate.
func CheckThroughputThreshold(mean, threshold float64) error {
	if threshold <= 0 {
		return nil
	}
	if mean < threshold {
		return fmt.Errorf("mean throughput %.0f syl/s below threshold %.0f syl/s", mean, threshold)
	}
	return nil
}

// ---------------------------------------------------------------------------
// Output formatters
// ---------------------------------------------------------------------------

// FormatTable writes a human-readable ASCII table of bench results to w.
func FormatTable(runs []RunResult, stats Stats, w io.Writer) {
	sb := &strings.Builder{}

	fmt.Fprintf(sb, "%-5s  %-5s  %10s  %10s  %12s\n", "Run", "Cold", "µs", "Syllables", "Syl/s")
	fmt.Fprintln(sb, strings.Repeat("-", 50))

	for _, r := range runs {
		cold := ""
		if r.Cold {
			cold = "yes"
		}
		fmt.Fprintf(sb, "%-5d  %-5s  %10d  %10d  %12.0f\n",
			r.Index+1,
			cold,
			r.Duration.Microseconds(),
			r.Syllables,
			r.Throughput,
		)
	}

	fmt.Fprintln(sb, strings.Repeat("-", 50))
	fmt.Fprintf(sb, "%-5s  %-5s  %10d  %10s  %12s  (min)\n", "", "", stats.Min.Microseconds(), "", "")
	fmt.Fprintf(sb, "%-5s  %-5s  %10d  %10s  %12s  (mean)\n", "", "", stats.Mean.Microseconds(), "", "")
	fmt.Fprintf(sb, "%-5s  %-5s  %10d  %10s  %12s  (max)\n", "", "", stats.Max.Microseconds(), "", "")

	fmt.Fprint(w, sb.String())
}

// jsonReport is the top-level JSON structure emitted by FormatJSON.
type jsonReport struct {
	Runs  []jsonRun `json:"runs"`
	Stats jsonStats `json:"stats"`
}

type jsonRun struct {
	Index      int     `json:"index"`
	Cold       bool    `json:"cold"`
	DurationUS int64   `json:"duration_us"`
	Syllables  int     `json:"syllables"`
	Throughput float64 `json:"syllables_per_second"`
}

type jsonStats struct {
	MinUS  int64 `json:"min_us"`
	MeanUS int64 `json:"mean_us"`
	MaxUS  int64 `json:"max_us"`
}

// FormatJSON writes a JSON report of bench results to w.
func FormatJSON(runs []RunResult, stats Stats, w io.Writer) {
	jr := jsonReport{
		Runs: make([]jsonRun, len(runs)),
		Stats: jsonStats{
			MinUS:  stats.Min.Microseconds(),
			MeanUS: stats.Mean.Microseconds(),
			MaxUS:  stats.Max.Microseconds(),
		},
	}
	for i, r := range runs {
		jr.Runs[i] = jsonRun{
			Index:      r.Index,
			Cold:       r.Cold,
			DurationUS: r.Duration.Microseconds(),
			Syllables:  r.Syllables,
			Throughput: r.Throughput,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(jr)
}
