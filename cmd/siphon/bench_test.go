package main

import (
	"strings"
	"testing"

	"github.com/example/go-siphon/internal/pinyin"
)

func TestRunBench_SingleRun(t *testing.T) {
	conv := pinyin.NewConverter(pinyin.IPASuperscript, "")

	results, err := runBench(conv, "ni3 hao3, xi1'an1", 1)
	if err != nil {
		t.Fatalf("runBench: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("want 1 result, got %d", len(results))
	}

	if !results[0].Cold {
		t.Error("first run should be marked cold")
	}

	if results[0].Syllables != 4 {
		t.Errorf("want 4 syllables, got %d", results[0].Syllables)
	}
}

func TestRunBench_MultipleRuns(t *testing.T) {
	conv := pinyin.NewConverter(pinyin.PinyinDiacritic, "")

	results, err := runBench(conv, "ma1 ma2 ma3 ma4", 3)
	if err != nil {
		t.Fatalf("runBench: %v", err)
	}

	if len(results) != 3 {
		t.Fatalf("want 3 results, got %d", len(results))
	}

	for i, r := range results {
		if r.Index != i {
			t.Errorf("result %d has index %d", i, r.Index)
		}

		if i > 0 && r.Cold {
			t.Errorf("result %d should not be cold", i)
		}
	}
}

func TestRunBench_ConversionFailure(t *testing.T) {
	conv := pinyin.NewConverter(pinyin.IPASuperscript, "")

	if _, err := runBench(conv, "lio3", 2); err == nil {
		t.Fatal("want error for unconvertible input")
	}
}

func TestBenchCmd(t *testing.T) {
	got, err := runRoot(t, "", "bench", "--runs", "2", "--report", "json")
	if err != nil {
		t.Fatalf("bench failed: %v", err)
	}

	if !strings.Contains(got, `"syllables"`) {
		t.Errorf("json report missing syllables:\n%s", got)
	}

	if _, err := runRoot(t, "", "bench", "--runs", "0"); err == nil {
		t.Error("want error for --runs 0")
	}

	if _, err := runRoot(t, "", "bench", "--report", "xml"); err == nil {
		t.Error("want error for unknown report format")
	}
}
