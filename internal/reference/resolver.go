// Package reference implements the ordered-pass reference resolver (spec
// §4.F): for each unresolved reference, Local → Class → Import →
// Framework → Global-fallback passes run in order, the first hit wins.
// Grounded in the teacher's per-language resolvers (internal/symbollinker
// go_resolver.go/js_resolver.go/...), generalized from "one resolver per
// language" into "one ordered pass sequence shared across languages",
// since the spec's passes are language-agnostic scope rules rather than
// per-language import syntax.
package reference

import (
	"sort"

	"github.com/codegraphhq/codegraph/internal/resolvers"
	"github.com/codegraphhq/codegraph/internal/store"
	"github.com/codegraphhq/codegraph/internal/types"
)

// ResolveAndPersist runs Resolve for ref and, on a hit, atomically updates
// the matching edge via Store.ResolveEdge using the same fingerprint the
// extractor derived when it wrote the edge (spec §4.F/§5: resolution is a
// single atomic update per edge). Reports whether a match was found.
func (r *Resolver) ResolveAndPersist(ref types.UnresolvedReference) (bool, error) {
	o, ok := r.Resolve(ref)
	if !ok {
		return false, nil
	}
	fingerprint := types.DeriveEdgeFingerprint(ref.SourceNodeID, ref.Kind, ref.ReferenceName, ref.Position)
	if err := r.store.ResolveEdge(fingerprint, o.targetID, o.confidence, o.by); err != nil {
		return false, err
	}
	return true, nil
}

// Store is the subset of *store.Store the resolver needs; kept as an
// interface so tests can substitute an in-memory fake.
type Store interface {
	GetNodeByID(id string) (types.Node, bool, error)
	GetNodesByFile(path string) ([]types.Node, error)
	GetNodesByName(name string) ([]types.Node, error)
	GetIncomingEdges(nodeID string, kinds ...types.EdgeKind) ([]types.Edge, error)
	GetOutgoingEdges(nodeID string, kinds ...types.EdgeKind) ([]types.Edge, error)
	AllFiles() ([]types.File, error)
	ResolveEdge(fingerprint uint64, resolvedTargetID string, confidence float64, by types.ResolvedBy) error
}

var _ Store = (*store.Store)(nil)

// Resolver runs the five ordered passes against a Store, consulting an
// optional framework resolver registry for pass 4.
type Resolver struct {
	store    Store
	registry *resolvers.Registry
	ctx      resolvers.Context
}

func New(s Store, registry *resolvers.Registry, ctx resolvers.Context) *Resolver {
	return &Resolver{store: s, registry: registry, ctx: ctx}
}

// outcome is what a single pass may produce.
type outcome struct {
	targetID   string
	confidence float64
	by         types.ResolvedBy
}

// Resolve attempts every pass in order for one unresolved reference,
// returning the first hit. It does not itself write to the store —
// callers persist via Store.ResolveEdge, keeping resolution and
// persistence as separate, individually testable concerns.
func (r *Resolver) Resolve(ref types.UnresolvedReference) (outcome, bool) {
	if o, ok := r.localPass(ref); ok {
		return o, true
	}
	if o, ok := r.classPass(ref); ok {
		return o, true
	}
	if o, ok := r.importPass(ref); ok {
		return o, true
	}
	if r.registry != nil {
		if resolved, _, ok := r.registry.Resolve(ref, r.ctx); ok {
			return outcome{targetID: resolved.TargetNodeID, confidence: resolved.Confidence, by: types.ResolvedByFramework}, true
		}
	}
	if o, ok := r.globalPass(ref); ok {
		return o, true
	}
	return outcome{}, false
}

// localPass searches the same file for a matching simple name (spec §4.F
// pass 1, confidence 1.0). This covers same-function/class local scope
// in practice since file-level name search already restricts to the
// reference's own file, and shadowing within a file is rare enough that
// the spec does not require scope-exact resolution.
func (r *Resolver) localPass(ref types.UnresolvedReference) (outcome, bool) {
	nodes, err := r.store.GetNodesByFile(ref.SourceFile)
	if err != nil {
		return outcome{}, false
	}
	for _, n := range nodes {
		if n.Name == ref.ReferenceName {
			return outcome{targetID: n.ID, confidence: 1.0, by: types.ResolvedByLocal}, true
		}
	}
	return outcome{}, false
}

// classPass searches the class hierarchy reachable from the reference's
// source node via extends/implements edges (spec §4.F pass 2, confidence
// 0.95).
func (r *Resolver) classPass(ref types.UnresolvedReference) (outcome, bool) {
	source, ok, err := r.store.GetNodeByID(ref.SourceNodeID)
	if err != nil || !ok {
		return outcome{}, false
	}

	visited := map[string]bool{source.ID: true}
	queue := []string{source.ID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]

		edges, err := r.store.GetOutgoingEdges(id, types.EdgeExtends, types.EdgeImplements)
		if err != nil {
			continue
		}
		for _, e := range edges {
			if !e.Resolved() || visited[e.ResolvedTargetID] {
				continue
			}
			visited[e.ResolvedTargetID] = true

			members, err := r.membersOf(e.ResolvedTargetID)
			if err == nil {
				for _, m := range members {
					if m.Name == ref.ReferenceName {
						return outcome{targetID: m.ID, confidence: 0.95, by: types.ResolvedByClass}, true
					}
				}
			}
			queue = append(queue, e.ResolvedTargetID)
		}
	}
	return outcome{}, false
}

// membersOf returns the nodes directly contained by classID.
func (r *Resolver) membersOf(classID string) ([]types.Node, error) {
	edges, err := r.store.GetOutgoingEdges(classID, types.EdgeContains)
	if err != nil {
		return nil, err
	}
	var members []types.Node
	for _, e := range edges {
		if !e.Resolved() {
			continue
		}
		if n, ok, err := r.store.GetNodeByID(e.ResolvedTargetID); err == nil && ok {
			members = append(members, n)
		}
	}
	return members, nil
}

// importPass resolves via files reached through the source file's
// imports edges (spec §4.F pass 3, confidence 0.9), delegating the
// path-to-file mapping to ResolveImportTarget.
func (r *Resolver) importPass(ref types.UnresolvedReference) (outcome, bool) {
	fileNodes, err := r.store.GetNodesByFile(ref.SourceFile)
	if err != nil || len(fileNodes) == 0 {
		return outcome{}, false
	}
	var fileNodeID string
	for _, n := range fileNodes {
		if n.Kind == types.KindFile {
			fileNodeID = n.ID
			break
		}
	}
	if fileNodeID == "" {
		return outcome{}, false
	}

	edges, err := r.store.GetOutgoingEdges(fileNodeID, types.EdgeImports)
	if err != nil {
		return outcome{}, false
	}

	files, err := r.store.AllFiles()
	if err != nil {
		return outcome{}, false
	}

	for _, e := range edges {
		targetPath, ok := ResolveImportTarget(e.TargetSymbol, files)
		if !ok {
			continue
		}
		members, err := r.store.GetNodesByFile(targetPath)
		if err != nil {
			continue
		}
		for _, m := range members {
			if m.Name == ref.ReferenceName && m.IsExported {
				return outcome{targetID: m.ID, confidence: 0.9, by: types.ResolvedByImport}, true
			}
		}
	}
	return outcome{}, false
}

// globalPass searches every node in the index with a matching simple
// name, breaking ties by file-path lex order (spec §4.F pass 5,
// confidence 0.5; §9 open question (b) resolved in favor of this
// documented tie-break policy).
func (r *Resolver) globalPass(ref types.UnresolvedReference) (outcome, bool) {
	candidates, err := r.store.GetNodesByName(ref.ReferenceName)
	if err != nil || len(candidates) == 0 {
		return outcome{}, false
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].FilePath != candidates[j].FilePath {
			return candidates[i].FilePath < candidates[j].FilePath
		}
		return candidates[i].Range.StartLine < candidates[j].Range.StartLine
	})
	return outcome{targetID: candidates[0].ID, confidence: 0.5, by: types.ResolvedByGlobal}, true
}
