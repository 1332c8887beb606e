package main

import (
	"strings"
	"testing"

	"parmine/internal/config"
	"parmine/internal/scorer"
)

func TestReadPairLines(t *testing.T) {
	input := "hello world\thallo welt\n\nsecond\tzweite\r\n"
	pairs, err := readPairLines(strings.NewReader(input))
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	if pairs[0] != [2]string{"hello world", "hallo welt"} {
		t.Fatalf("unexpected first pair: %v", pairs[0])
	}
	if pairs[1] != [2]string{"second", "zweite"} {
		t.Fatalf("unexpected second pair: %v", pairs[1])
	}

	if _, err := readPairLines(strings.NewReader("no tab here\n")); err == nil {
		t.Fatal("expected error for missing tab")
	}
}

func TestScorerOptions(t *testing.T) {
	cfg := config.Default()
	cfg.Scorer.Signals = "copy-pattern,ascii-ratio"
	cfg.Scorer.Debug = true
	cfg.TTable.Path = "/models/table.db"

	opts, err := scorerOptions(&cfg)
	if err != nil {
		t.Fatalf("map options: %v", err)
	}
	if len(opts.Signals) != 2 || opts.Signals[0] != scorer.SignalCopyPattern {
		t.Fatalf("unexpected signals: %v", opts.Signals)
	}
	if !opts.Debug || opts.TTablePath != "/models/table.db" {
		t.Fatalf("unexpected options: %+v", opts)
	}

	cfg.Scorer.Signals = "bogus"
	if _, err := scorerOptions(&cfg); err == nil {
		t.Fatal("expected error for unknown signal")
	}
}

func TestRenderSummary(t *testing.T) {
	out := renderSummary("Outcome", "Count", [][2]string{
		{"aligned", "12"},
		{"skipped", "3"},
	})
	for _, fragment := range []string{"Outcome", "Count", "aligned", "12", "skipped", "3"} {
		if !strings.Contains(out, fragment) {
			t.Fatalf("expected %q in table output:\n%s", fragment, out)
		}
	}
}
