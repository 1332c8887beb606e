package services_test

import (
	"errors"
	"testing"

	"parmine/internal/services"
)

func TestWrapTagsMarker(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrData, "ttable", "compile", "bad vocab line", base)
	if !errors.Is(err, services.ErrData) {
		t.Fatalf("expected ErrData marker, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped base error, got %v", err)
	}
	want := "data error: ttable: compile: bad vocab line: boom"
	if err.Error() != want {
		t.Fatalf("unexpected message: %q want %q", err.Error(), want)
	}
}

func TestWrapDefaultsToTransient(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if !errors.Is(err, services.ErrTransient) {
		t.Fatalf("expected transient default, got %v", err)
	}
	if err.Error() != "transient failure: service failure" {
		t.Fatalf("unexpected message: %q", err.Error())
	}
}

func TestFatal(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"configuration", services.Wrap(services.ErrConfiguration, "config", "validate", "unknown signal", nil), true},
		{"data", services.Wrap(services.ErrData, "embedding", "load", "duplicate word", nil), false},
		{"not found", services.Wrap(services.ErrNotFound, "mining", "read", "missing ltf", nil), false},
		{"plain", errors.New("plain"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.Fatal(tt.err); got != tt.want {
				t.Errorf("Fatal(%v) = %v, want %v", tt.err, got, tt.want)
			}
		})
	}
}
