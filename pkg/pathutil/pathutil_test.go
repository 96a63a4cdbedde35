package pathutil

import (
	"testing"

	cgerrors "github.com/codegraphhq/codegraph/internal/errors"
)

func TestValidateAcceptsDescendant(t *testing.T) {
	rel, err := Validate("/proj/src/a.go", "/proj")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rel != "src/a.go" {
		t.Fatalf("expected src/a.go, got %q", rel)
	}
}

func TestValidateRejectsEscape(t *testing.T) {
	_, err := Validate("/proj/../etc/passwd", "/proj")
	if err == nil {
		t.Fatal("expected PathEscape error")
	}
	if !cgerrors.IsKind(err, cgerrors.PathEscape) {
		t.Fatalf("expected PathEscape kind, got %v", err)
	}
}

func TestValidateRejectsDotDotRelative(t *testing.T) {
	_, err := Validate("../outside.go", "/proj")
	if !cgerrors.IsKind(err, cgerrors.PathEscape) {
		t.Fatalf("expected PathEscape kind, got %v", err)
	}
}

func TestToRelativeFallsBackOutsideRoot(t *testing.T) {
	got := ToRelative("/other/file.go", "/proj")
	if got != "/other/file.go" {
		t.Fatalf("expected fallback to absolute path, got %q", got)
	}
}
