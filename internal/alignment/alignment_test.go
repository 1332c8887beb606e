package alignment_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"parmine/internal/alignment"
	"parmine/internal/services"
)

func TestValidate(t *testing.T) {
	a := alignment.New("SIN_NW_1", "ENG_NW_1")
	a.Add([]string{"segment-0"}, []string{"segment-3"}, 0.9)
	a.Add([]string{"segment-1"}, []string{"segment-4"}, 0.5)
	if err := a.Validate(); err != nil {
		t.Fatalf("expected valid alignment, got %v", err)
	}

	a.Add([]string{"segment-0"}, []string{"segment-5"}, 0.2)
	if err := a.Validate(); !errors.Is(err, services.ErrData) {
		t.Fatalf("expected data error for reused source segment, got %v", err)
	}

	b := alignment.New("SIN_NW_1", "ENG_NW_1")
	b.Add([]string{"segment-0"}, []string{"segment-3"}, 0.9)
	b.Add([]string{"segment-1"}, []string{"segment-3"}, 0.5)
	if err := b.Validate(); !errors.Is(err, services.ErrData) {
		t.Fatalf("expected data error for reused target segment, got %v", err)
	}
}

func TestWriteReadRoundTrip(t *testing.T) {
	a := alignment.New("SIN_NW_000001", "ENG_NW_000002")
	a.Add([]string{"segment-0", "segment-1"}, []string{"segment-7"}, 0.87654)
	a.Add([]string{"segment-2"}, []string{"segment-8", "segment-9"}, -0.5)

	path := filepath.Join(t.TempDir(), "SIN_NW_000001_ENG_NW_000002"+alignment.Extension)
	if err := alignment.WriteFile(path, a); err != nil {
		t.Fatalf("write: %v", err)
	}

	loaded, err := alignment.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if loaded.SourceID != a.SourceID || loaded.TranslationID != a.TranslationID {
		t.Fatalf("pair ids not preserved: %s x %s", loaded.SourceID, loaded.TranslationID)
	}
	if len(loaded.Matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(loaded.Matches))
	}

	first := loaded.Matches[0]
	if strings.Join(first.SourceSegments, " ") != "segment-0 segment-1" {
		t.Fatalf("source segments not preserved: %v", first.SourceSegments)
	}
	if strings.Join(first.TargetSegments, " ") != "segment-7" {
		t.Fatalf("target segments not preserved: %v", first.TargetSegments)
	}
	// Scores are serialized at 4 decimal digits.
	if first.Score != 0.8765 {
		t.Fatalf("expected score rounded to 0.8765, got %v", first.Score)
	}
	if loaded.Matches[1].Score != -0.5 {
		t.Fatalf("negative score not preserved: %v", loaded.Matches[1].Score)
	}
}

func TestWriteFileFormat(t *testing.T) {
	a := alignment.New("SIN_NW_1", "ENG_NW_2")
	a.Add([]string{"segment-0"}, []string{"segment-1"}, 1)

	path := filepath.Join(t.TempDir(), "pair"+alignment.Extension)
	if err := alignment.WriteFile(path, a); err != nil {
		t.Fatalf("write: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	content := string(data)
	for _, fragment := range []string{
		`<alignments source_id="SIN_NW_1" translation_id="ENG_NW_2">`,
		`score="1.0000"`,
		`<source segments="segment-0">`,
		`<translation segments="segment-1">`,
	} {
		if !strings.Contains(content, fragment) {
			t.Fatalf("expected %q in output:\n%s", fragment, content)
		}
	}
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := alignment.ReadFile(filepath.Join(dir, "absent.aln.xml")); !errors.Is(err, services.ErrNotFound) {
		t.Fatalf("expected not-found error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.aln.xml")
	if err := os.WriteFile(bad, []byte("<wrong/>"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := alignment.ReadFile(bad); !errors.Is(err, services.ErrData) {
		t.Fatalf("expected data error for missing alignments element, got %v", err)
	}
}

func TestReadPairIDs(t *testing.T) {
	dir := t.TempDir()
	for _, pair := range [][2]string{
		{"SIN_NW_2", "ENG_NW_2"},
		{"SIN_NW_1", "ENG_NW_1"},
	} {
		a := alignment.New(pair[0], pair[1])
		a.Add([]string{"segment-0"}, []string{"segment-0"}, 0.5)
		name := pair[0] + "_" + pair[1] + alignment.Extension
		if err := alignment.WriteFile(filepath.Join(dir, name), a); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	pairs, err := alignment.ReadPairIDs(dir)
	if err != nil {
		t.Fatalf("read pair ids: %v", err)
	}
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d", len(pairs))
	}
	// Lexical file order.
	if pairs[0].SourceID != "SIN_NW_1" || pairs[1].SourceID != "SIN_NW_2" {
		t.Fatalf("unexpected order: %v", pairs)
	}
}
