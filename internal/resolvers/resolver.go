// Package resolvers implements pluggable framework resolvers (spec §4.E):
// values conforming to {name, detect, resolve, extractNodes}, tried in
// registration order during the reference resolver's Framework pass.
// Grounded on the teacher's per-language resolver pattern in
// internal/symbollinker (GoResolver, JSResolver, PHPResolver, ...), but
// generalized from "one resolver per language" to "one resolver per
// framework idiom" per the spec's design, since the teacher resolves
// imports per-language while this spec resolves framework conventions
// (routes, DI) that cut across languages.
package resolvers

import "github.com/codegraphhq/codegraph/internal/types"

// Context is the read-only surface a resolver may consult. Resolvers
// must not mutate anything reachable through it (spec §4.E: "purely
// read-only against the context").
type Context interface {
	ReadFile(path string) ([]byte, error)
	FileExists(path string) bool
	AllFiles() []string
	NodesInFile(path string) []types.Node
}

// Resolved is what a successful Resolve call returns.
type Resolved struct {
	TargetNodeID string
	Confidence   float64
}

// FrameworkResolver is one pluggable framework idiom: detection,
// reference resolution, and derived-node extraction.
type FrameworkResolver interface {
	Name() string
	Detect(ctx Context) bool
	ExtractNodes(filePath string, content []byte) []types.Node
	Resolve(ref types.UnresolvedReference, ctx Context) (Resolved, bool)
}

// Registry is an ordered list of framework resolvers; the first
// registered resolver that detects and resolves wins (spec §4.E: "the
// resolver registry is ordered... the first hit wins").
type Registry struct {
	resolvers []FrameworkResolver
}

// NewRegistry builds a registry from the given resolvers, preserving
// order.
func NewRegistry(rs ...FrameworkResolver) *Registry {
	return &Registry{resolvers: rs}
}

// Active returns the resolvers whose Detect reports true against ctx.
// Callers currently re-run this per file rather than caching it once per
// indexing session; Detect is specified pure and cheap (spec §4.E), so
// this is a repeated-work cost, not a correctness issue.
func (r *Registry) Active(ctx Context) []FrameworkResolver {
	var active []FrameworkResolver
	for _, res := range r.resolvers {
		if res.Detect(ctx) {
			active = append(active, res)
		}
	}
	return active
}

// ExtractNodes runs every active resolver's node-hook over a file's
// content and concatenates their derived nodes (spec §4.D step 5).
func (r *Registry) ExtractNodes(ctx Context, filePath string, content []byte) []types.Node {
	var nodes []types.Node
	for _, res := range r.Active(ctx) {
		nodes = append(nodes, res.ExtractNodes(filePath, content)...)
	}
	return nodes
}

// Resolve tries each active resolver in order, returning the first hit.
func (r *Registry) Resolve(ref types.UnresolvedReference, ctx Context) (Resolved, string, bool) {
	for _, res := range r.Active(ctx) {
		if resolved, ok := res.Resolve(ref, ctx); ok {
			return resolved, res.Name(), true
		}
	}
	return Resolved{}, "", false
}
