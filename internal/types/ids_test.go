package types

import "testing"

func TestDeriveNodeIDDeterministic(t *testing.T) {
	a := DeriveNodeID(KindFunction, "pkg/a.go", "Foo", 10)
	b := DeriveNodeID(KindFunction, "pkg/a.go", "Foo", 10)
	if a != b {
		t.Fatalf("expected identical IDs for identical inputs, got %q and %q", a, b)
	}
}

func TestDeriveNodeIDDiffersOnAnyField(t *testing.T) {
	base := DeriveNodeID(KindFunction, "pkg/a.go", "Foo", 10)
	cases := []string{
		DeriveNodeID(KindMethod, "pkg/a.go", "Foo", 10),
		DeriveNodeID(KindFunction, "pkg/b.go", "Foo", 10),
		DeriveNodeID(KindFunction, "pkg/a.go", "Bar", 10),
		DeriveNodeID(KindFunction, "pkg/a.go", "Foo", 11),
	}
	for _, c := range cases {
		if c == base {
			t.Fatalf("expected differing ID, got collision %q", c)
		}
	}
}

func TestHashContentStable(t *testing.T) {
	a := HashContent([]byte("package main\n"))
	b := HashContent([]byte("package main\n"))
	if a != b {
		t.Fatalf("expected stable content hash")
	}
	c := HashContent([]byte("package main"))
	if a == c {
		t.Fatalf("expected different hash for different content")
	}
}

func TestDeriveEdgeFingerprintUniqueness(t *testing.T) {
	r := Range{StartLine: 5, StartColumn: 2}
	f1 := DeriveEdgeFingerprint("nodeA", EdgeCalls, "Bar", r)
	f2 := DeriveEdgeFingerprint("nodeA", EdgeCalls, "Baz", r)
	if f1 == f2 {
		t.Fatalf("expected distinct fingerprints for distinct targets")
	}
}
