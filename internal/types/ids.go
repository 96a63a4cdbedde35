package types

import (
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"
)

// denseAlphabet is the 63-symbol alphabet used to print a hash as a short,
// human-scannable token: A-Z, a-z, 0-9, _. Adapted from the teacher's
// DenseObjectID encoding (standardbeagle/lci internal/core/dense_object_id.go),
// generalized here to encode a single 64-bit hash instead of a (fileID,
// localID) pair.
const denseAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789_"

func encodeDense(v uint64) string {
	if v == 0 {
		return string(denseAlphabet[0])
	}
	var buf [16]byte
	i := len(buf)
	for v > 0 {
		i--
		buf[i] = denseAlphabet[v%63]
		v /= 63
	}
	return string(buf[i:])
}

// DeriveNodeID computes the deterministic ID for a node from the fields
// spec §3 names as its identity: (kind, filePath, qualifiedName, startLine).
// Re-indexing an unchanged file reproduces identical IDs (testable
// property 4) because the inputs are a pure function of source position
// and name, never of insertion order or a surrogate counter.
func DeriveNodeID(kind Kind, filePath, qualifiedName string, startLine int) string {
	var b strings.Builder
	b.WriteString(string(kind))
	b.WriteByte(0)
	b.WriteString(filePath)
	b.WriteByte(0)
	b.WriteString(qualifiedName)
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(startLine))
	h := xxhash.Sum64String(b.String())
	return encodeDense(h)
}

// DeriveEdgeFingerprint computes a stable non-cryptographic fingerprint for
// an edge's identity fields {source, target, kind, sourceRange}, used as
// the store's uniqueness key (spec §3's edge identity) and as the Edge.ID
// surrogate for fast lookups.
func DeriveEdgeFingerprint(source string, kind EdgeKind, targetSymbol string, r Range) uint64 {
	var b strings.Builder
	b.WriteString(source)
	b.WriteByte(0)
	b.WriteString(string(kind))
	b.WriteByte(0)
	b.WriteString(targetSymbol)
	b.WriteByte(0)
	b.WriteString(strconv.Itoa(r.StartLine))
	b.WriteByte(':')
	b.WriteString(strconv.Itoa(r.StartColumn))
	return xxhash.Sum64String(b.String())
}

// HashContent returns the content hash used for §3's "stable over
// semantically-equivalent newline/BOM variations" requirement: a plain
// byte hash is sufficient per spec, so this is a direct xxhash of the raw
// bytes (the same library the teacher uses in file_content_store.go for
// its FastHash quick-equality check).
func HashContent(content []byte) uint64 {
	return xxhash.Sum64(content)
}
