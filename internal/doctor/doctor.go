// Package doctor provides self-checks for siphon's conversion tables and
// local setup.
package doctor

import (
	"fmt"
	"io"
	"os"
)

// PassMark and FailMark are the prefix symbols printed for each check result.
const (
	PassMark = "✓"
	FailMark = "✗"
)

// CheckFunc runs one check and returns a short detail string on success.
type CheckFunc func() (string, error)

// Check is a named self-check.
type Check struct {
	Name string
	Run  CheckFunc
	// Skip reports the check as skipped without running it.
	Skip bool
}

// Config holds injectable dependencies for each doctor check.
type Config struct {
	// Checks run in order.
	Checks []Check
	// ConfigFiles is the list of config file paths to verify on disk.
	ConfigFiles []string
}

// Result collects the outcome of all checks.
type Result struct {
	failures []string
}

// Failed returns true if any check failed.
func (r *Result) Failed() bool { return len(r.failures) > 0 }

// Failures returns the list of failure messages.
func (r *Result) Failures() []string { return append([]string(nil), r.failures...) }

// AddFailure appends an external failure message to the result.
func (r *Result) AddFailure(msg string) { r.failures = append(r.failures, msg) }

func (r *Result) fail(msg string) { r.failures = append(r.failures, msg) }

// Run executes all configured checks and writes human-readable output to w.
// Each check line is prefixed with PassMark or FailMark.
func Run(cfg Config, w io.Writer) Result {
	var res Result

	for _, c := range cfg.Checks {
		if c.Skip {
			fmt.Fprintf(w, "%s %s: skipped\n", PassMark, c.Name)
			continue
		}

		detail, err := c.Run()
		if err != nil {
			res.fail(fmt.Sprintf("%s: %v", c.Name, err))
			fmt.Fprintf(w, "%s %s: %v\n", FailMark, c.Name, err)
			continue
		}
		if detail == "" {
			detail = "ok"
		}
		fmt.Fprintf(w, "%s %s: %s\n", PassMark, c.Name, detail)
	}

	// ---- config files -----------------------------------------------------
	for _, path := range cfg.ConfigFiles {
		if _, err := os.Stat(path); err != nil {
			res.fail(fmt.Sprintf("config file %q: %v", path, err))
			fmt.Fprintf(w, "%s config file %s: not found\n", FailMark, path)
		} else {
			fmt.Fprintf(w, "%s config file: %s\n", PassMark, path)
		}
	}

	return res
}
