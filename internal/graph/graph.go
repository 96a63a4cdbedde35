// Package graph implements the traversal primitives of spec §4.G:
// ancestors, children, bounded-BFS impact radius, callers/callees, cycle
// detection and context assembly, all read-only over the store. Grounded
// in the teacher's graph-shaped traversals scattered through
// internal/mcp's analysis tools (callers/callees, dependency queries),
// consolidated here into one small package operating purely through node
// IDs — never an in-memory owning graph — per spec §9's "use the store
// as the source of truth" guidance.
package graph

import (
	"sort"

	"github.com/codegraphhq/codegraph/internal/types"
)

// Store is the read surface Graph needs.
type Store interface {
	GetNodeByID(id string) (types.Node, bool, error)
	GetNodesByFile(path string) ([]types.Node, error)
	GetIncomingEdges(nodeID string, kinds ...types.EdgeKind) ([]types.Edge, error)
	GetOutgoingEdges(nodeID string, kinds ...types.EdgeKind) ([]types.Edge, error)
	AllFiles() ([]types.File, error)
}

// Graph wraps a Store with traversal operations.
type Graph struct {
	store Store
}

func New(s Store) *Graph { return &Graph{store: s} }

func sortNodes(nodes []types.Node) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].FilePath != nodes[j].FilePath {
			return nodes[i].FilePath < nodes[j].FilePath
		}
		return nodes[i].Range.StartLine < nodes[j].Range.StartLine
	})
}

// GetAncestors walks `contains` edges upward from nodeId until the file
// node, inclusive, ordered nearest-first.
func (g *Graph) GetAncestors(nodeID string) ([]types.Node, error) {
	var ancestors []types.Node
	current := nodeID
	for {
		incoming, err := g.store.GetIncomingEdges(current, types.EdgeContains)
		if err != nil {
			return nil, err
		}
		if len(incoming) == 0 {
			break
		}
		parentID := incoming[0].Source
		parent, ok, err := g.store.GetNodeByID(parentID)
		if err != nil || !ok {
			break
		}
		ancestors = append(ancestors, parent)
		if parent.Kind == types.KindFile {
			break
		}
		current = parentID
	}
	return ancestors, nil
}

// GetChildren returns the immediate outgoing `contains` targets of
// nodeID, ordered by (filePath, startLine).
func (g *Graph) GetChildren(nodeID string) ([]types.Node, error) {
	edges, err := g.store.GetOutgoingEdges(nodeID, types.EdgeContains)
	if err != nil {
		return nil, err
	}
	var children []types.Node
	for _, e := range edges {
		if !e.Resolved() {
			continue
		}
		if n, ok, err := g.store.GetNodeByID(e.ResolvedTargetID); err == nil && ok {
			children = append(children, n)
		}
	}
	sortNodes(children)
	return children, nil
}

// impactEdgeKinds are the edge kinds impactRadius follows backward (spec
// §4.G).
var impactEdgeKinds = []types.EdgeKind{types.EdgeCalls, types.EdgeImports, types.EdgeExtends, types.EdgeImplements}

// ImpactedNode pairs a node with the minimum BFS depth at which it was
// first reached.
type ImpactedNode struct {
	Node  types.Node
	Depth int
}

// ImpactRadius performs a bounded BFS over incoming calls/imports/
// extends/implements edges, visiting each node at most once at its
// minimum depth (spec §4.G, testable property 6).
func (g *Graph) ImpactRadius(nodeID string, depth int) ([]ImpactedNode, error) {
	root, ok, err := g.store.GetNodeByID(nodeID)
	if err != nil || !ok {
		return nil, err
	}

	visited := map[string]int{nodeID: 0}
	result := []ImpactedNode{{Node: root, Depth: 0}}
	frontier := []string{nodeID}

	for d := 1; d <= depth && len(frontier) > 0; d++ {
		var next []string
		for _, id := range frontier {
			incoming, err := g.store.GetIncomingEdges(id, impactEdgeKinds...)
			if err != nil {
				continue
			}
			for _, e := range incoming {
				if _, seen := visited[e.Source]; seen {
					continue
				}
				visited[e.Source] = d
				if n, ok, err := g.store.GetNodeByID(e.Source); err == nil && ok {
					result = append(result, ImpactedNode{Node: n, Depth: d})
				}
				next = append(next, e.Source)
			}
		}
		frontier = next
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Depth != result[j].Depth {
			return result[i].Depth < result[j].Depth
		}
		if result[i].Node.FilePath != result[j].Node.FilePath {
			return result[i].Node.FilePath < result[j].Node.FilePath
		}
		return result[i].Node.Range.StartLine < result[j].Node.Range.StartLine
	})
	return result, nil
}

// GetCallers returns the one-hop incoming `calls` edges' source nodes.
func (g *Graph) GetCallers(nodeID string) ([]types.Node, error) {
	edges, err := g.store.GetIncomingEdges(nodeID, types.EdgeCalls)
	if err != nil {
		return nil, err
	}
	var callers []types.Node
	for _, e := range edges {
		if n, ok, err := g.store.GetNodeByID(e.Source); err == nil && ok {
			callers = append(callers, n)
		}
	}
	sortNodes(callers)
	return callers, nil
}

// GetCallees returns the one-hop outgoing `calls` edges' target nodes.
func (g *Graph) GetCallees(nodeID string) ([]types.Node, error) {
	edges, err := g.store.GetOutgoingEdges(nodeID, types.EdgeCalls)
	if err != nil {
		return nil, err
	}
	var callees []types.Node
	for _, e := range edges {
		if !e.Resolved() {
			continue
		}
		if n, ok, err := g.store.GetNodeByID(e.ResolvedTargetID); err == nil && ok {
			callees = append(callees, n)
		}
	}
	sortNodes(callees)
	return callees, nil
}

// Context is the assembled view for a focal node (spec §4.G getContext).
type Context struct {
	Focal     types.Node
	Ancestors []types.Node
	Children  []types.Node
	Incoming  []types.Edge
	Outgoing  []types.Edge
	Imports   []types.Edge
}

// GetContext assembles the focal node, its ancestors and children, and
// filtered incoming/outgoing references (excluding `contains`, already
// present in ancestors/children) plus the enclosing file's imports.
func (g *Graph) GetContext(nodeID string) (Context, error) {
	var ctx Context

	focal, ok, err := g.store.GetNodeByID(nodeID)
	if err != nil || !ok {
		return ctx, err
	}
	ctx.Focal = focal

	if ctx.Ancestors, err = g.GetAncestors(nodeID); err != nil {
		return ctx, err
	}
	if ctx.Children, err = g.GetChildren(nodeID); err != nil {
		return ctx, err
	}

	incoming, err := g.store.GetIncomingEdges(nodeID)
	if err != nil {
		return ctx, err
	}
	for _, e := range incoming {
		if e.Kind != types.EdgeContains {
			ctx.Incoming = append(ctx.Incoming, e)
		}
	}

	outgoing, err := g.store.GetOutgoingEdges(nodeID)
	if err != nil {
		return ctx, err
	}
	for _, e := range outgoing {
		if e.Kind != types.EdgeContains {
			ctx.Outgoing = append(ctx.Outgoing, e)
		}
	}

	var fileNode types.Node
	for i := len(ctx.Ancestors) - 1; i >= 0; i-- {
		if ctx.Ancestors[i].Kind == types.KindFile {
			fileNode = ctx.Ancestors[i]
			break
		}
	}
	if fileNode.Kind == types.KindFile {
		ctx.Imports, err = g.store.GetOutgoingEdges(fileNode.ID, types.EdgeImports)
		if err != nil {
			return ctx, err
		}
	}
	return ctx, nil
}

// Cycle is one detected circular-dependency chain, file paths in DFS
// order with the first element repeated at the end to close the loop.
type Cycle struct {
	FilePaths []string
}

// FindCircularDependencies runs DFS over file-level `imports` edges with
// a recursion stack; each back-edge emits the cycle slice (spec §4.G).
// Multiple cycles sharing nodes are reported separately.
func (g *Graph) FindCircularDependencies() ([]Cycle, error) {
	files, err := g.store.AllFiles()
	if err != nil {
		return nil, err
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })

	fileNodeID := make(map[string]string, len(files))
	for _, f := range files {
		nodes, err := g.store.GetNodesByFile(f.Path)
		if err != nil {
			continue
		}
		for _, n := range nodes {
			if n.Kind == types.KindFile {
				fileNodeID[f.Path] = n.ID
			}
		}
	}

	var cycles []Cycle
	onStack := map[string]bool{}
	visited := map[string]bool{}
	var stack []string

	var visit func(path string) error
	visit = func(path string) error {
		visited[path] = true
		onStack[path] = true
		stack = append(stack, path)

		id, ok := fileNodeID[path]
		if ok {
			edges, err := g.store.GetOutgoingEdges(id, types.EdgeImports)
			if err == nil {
				for _, e := range edges {
					if !e.Resolved() {
						continue
					}
					target, ok, err := g.store.GetNodeByID(e.ResolvedTargetID)
					if err != nil || !ok {
						continue
					}
					if onStack[target.FilePath] {
						cycle := extractCycle(stack, target.FilePath)
						cycles = append(cycles, Cycle{FilePaths: cycle})
						continue
					}
					if !visited[target.FilePath] {
						if err := visit(target.FilePath); err != nil {
							return err
						}
					}
				}
			}
		}

		stack = stack[:len(stack)-1]
		onStack[path] = false
		return nil
	}

	for _, f := range files {
		if !visited[f.Path] {
			if err := visit(f.Path); err != nil {
				return nil, err
			}
		}
	}
	return cycles, nil
}

func extractCycle(stack []string, back string) []string {
	for i, p := range stack {
		if p == back {
			cycle := append([]string{}, stack[i:]...)
			return append(cycle, back)
		}
	}
	return []string{back}
}
