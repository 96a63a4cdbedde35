package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorMessageHasNoInternalStack(t *testing.T) {
	e := New(ParseFailure, "extract", fmt.Errorf("unexpected token")).WithFile("a.ts")
	msg := e.Error()
	if msg == "" {
		t.Fatal("expected non-empty message")
	}
	if msg == e.Underlying.Error() {
		t.Fatal("expected message to add context beyond the underlying error")
	}
}

func TestIsKindWrapped(t *testing.T) {
	base := New(PathEscape, "resolve", nil)
	wrapped := fmt.Errorf("wrapping: %w", base)
	if !IsKind(wrapped, PathEscape) {
		t.Fatal("expected IsKind to see through fmt.Errorf wrapping")
	}
	if IsKind(wrapped, OversizedFile) {
		t.Fatal("expected IsKind to reject mismatched kind")
	}
}

func TestErrorsIsMatchesByKind(t *testing.T) {
	a := New(LockContention, "sync", nil)
	b := New(LockContention, "index", nil)
	if !errors.Is(a, b) {
		t.Fatal("expected errors with the same Kind to match via errors.Is")
	}
}

func TestSurfacedPolicy(t *testing.T) {
	if !Surfaced(StoreIntegrity) {
		t.Fatal("StoreIntegrity must be surfaced")
	}
	if Surfaced(OversizedFile) {
		t.Fatal("OversizedFile is per-file contained, not surfaced")
	}
}
