// Package vectorindex implements spec §4.I: per-node embedding storage
// and brute-force cosine-similarity search, coexisting with the
// structural graph in the same store. Grounded on the teacher's
// internal/semantic package for the semantic-text construction and
// stemming step (stemmer.go, via surgebase/porter2), generalized from
// the teacher's translation-dictionary-driven search into the spec's
// simpler fixed embedding-entry model — the teacher has no vector store
// at all, so the storage/search half is adopted wholesale from the
// spec's own description rather than adapted from teacher code.
package vectorindex

import (
	"math"
	"sort"
	"strings"

	"github.com/surgebase/porter2"

	cgerrors "github.com/codegraphhq/codegraph/internal/errors"
	"github.com/codegraphhq/codegraph/internal/types"
)

// VectorStore is the subset of *store.Store the index needs.
type VectorStore interface {
	UpsertVector(v types.VectorEntry) error
	UpsertVectors(entries []types.VectorEntry) error
	DeleteVector(nodeID string) error
	AllVectors() ([]types.VectorEntry, error)
}

// Index wraps a VectorStore with search.
type Index struct {
	store VectorStore
}

func New(store VectorStore) *Index { return &Index{store: store} }

// StoreVector upserts one embedding (spec §4.I storeVector).
func (idx *Index) StoreVector(nodeID string, vec []float32, model string) error {
	return idx.store.UpsertVector(types.VectorEntry{NodeID: nodeID, Embedding: vec, ModelName: model})
}

// StoreVectorBatch upserts many embeddings in one transaction (spec §4.I
// storeVectorBatch).
func (idx *Index) StoreVectorBatch(entries []types.VectorEntry) error {
	return idx.store.UpsertVectors(entries)
}

// DeleteVector removes a node's embedding.
func (idx *Index) DeleteVector(nodeID string) error {
	return idx.store.DeleteVector(nodeID)
}

// SearchOptions bounds a Search call.
type SearchOptions struct {
	Limit    int
	MinScore float64
}

// SearchResult pairs a node ID with its similarity score.
type SearchResult struct {
	NodeID string
	Score  float64
}

// Search runs brute-force cosine similarity of query against every
// stored vector, sorted descending and filtered by MinScore (spec §4.I
// search).
func (idx *Index) Search(query []float32, opts SearchOptions) ([]SearchResult, error) {
	entries, err := idx.store.AllVectors()
	if err != nil {
		return nil, err
	}

	results := make([]SearchResult, 0, len(entries))
	for _, e := range entries {
		score, err := Cosine(query, e.Embedding)
		if err != nil {
			continue // dimension mismatch: skip rather than fail the whole search
		}
		if score < opts.MinScore {
			continue
		}
		results = append(results, SearchResult{NodeID: e.NodeID, Score: score})
	}

	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].NodeID < results[j].NodeID
	})

	if opts.Limit > 0 && len(results) > opts.Limit {
		results = results[:opts.Limit]
	}
	return results, nil
}

// Cosine computes dot(a,b) / (||a||·||b||), returning 0 for a zero
// vector and failing on dimension mismatch (spec §4.I / testable
// property 7).
func Cosine(a, b []float32) (float64, error) {
	if len(a) != len(b) {
		return 0, cgerrors.New(cgerrors.EmbeddingUnavailable, "cosine", nil)
	}
	var dot, normA, normB float64
	for i := range a {
		fa, fb := float64(a[i]), float64(b[i])
		dot += fa * fb
		normA += fa * fa
		normB += fb * fb
	}
	if normA == 0 || normB == 0 {
		return 0, nil
	}
	return dot / (math.Sqrt(normA) * math.Sqrt(normB)), nil
}

// SemanticText builds the labeled text a node's embedding should be
// computed from: {kind, name, qualifiedName, filePath, signature,
// docstring} joined with labeled prefixes (spec §4.I); empty fields are
// omitted. StemKeywords separately turns such text into a normalized
// keyword bag via the teacher's porter2-backed stemmer, for callers that want to combine embedding search with
// keyword normalization the way the teacher's semantic package does.
func SemanticText(n types.Node) string {
	var b strings.Builder
	writeField(&b, "kind", string(n.Kind))
	writeField(&b, "name", n.Name)
	writeField(&b, "qualifiedName", n.QualifiedName)
	writeField(&b, "filePath", n.FilePath)
	writeField(&b, "signature", n.Signature)
	writeField(&b, "docstring", n.Docstring)
	return b.String()
}

func writeField(b *strings.Builder, label, value string) {
	if value == "" {
		return
	}
	if b.Len() > 0 {
		b.WriteByte(' ')
	}
	b.WriteString(label)
	b.WriteByte(':')
	b.WriteString(value)
}

// StemKeywords splits text on whitespace and stems each token, matching
// the teacher's Stemmer.Stem usage (internal/semantic/stemmer.go) but
// applied unconditionally to the semantic text rather than gated by a
// translation-dictionary config, since this package has no dictionary
// concept to gate against.
func StemKeywords(text string) []string {
	fields := strings.Fields(text)
	keywords := make([]string, 0, len(fields))
	for _, f := range fields {
		if len(f) < 3 {
			keywords = append(keywords, f)
			continue
		}
		keywords = append(keywords, porter2.Stem(strings.ToLower(f)))
	}
	return keywords
}
