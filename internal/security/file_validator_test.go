package security

import "testing"

func TestOversized(t *testing.T) {
	v := NewValidator(100)
	if v.Oversized(100) {
		t.Fatal("expected exactly-at-limit to be accepted")
	}
	if !v.Oversized(101) {
		t.Fatal("expected over-limit to be rejected")
	}
}

func TestIsBinaryDetectsNulByte(t *testing.T) {
	if !IsBinary([]byte{'p', 'k', 0x00, 'g'}) {
		t.Fatal("expected NUL byte to mark content binary")
	}
}

func TestIsBinaryAcceptsSource(t *testing.T) {
	src := []byte("package main\n\nfunc main() {}\n")
	if IsBinary(src) {
		t.Fatal("expected plain source to not be flagged binary")
	}
}
