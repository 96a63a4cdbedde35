package reference

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codegraphhq/codegraph/internal/types"
)

type fakeStore struct {
	nodes       map[string]types.Node
	nodesByFile map[string][]types.Node
	outgoing    map[string][]types.Edge
	files       []types.File

	resolvedFingerprint uint64
	resolvedTargetID    string
	resolvedConfidence  float64
	resolvedBy          types.ResolvedBy
}

func (f *fakeStore) GetNodeByID(id string) (types.Node, bool, error) {
	n, ok := f.nodes[id]
	return n, ok, nil
}
func (f *fakeStore) GetNodesByFile(path string) ([]types.Node, error) { return f.nodesByFile[path], nil }
func (f *fakeStore) GetNodesByName(name string) ([]types.Node, error) {
	var out []types.Node
	for _, n := range f.nodes {
		if n.Name == name {
			out = append(out, n)
		}
	}
	return out, nil
}
func (f *fakeStore) GetIncomingEdges(nodeID string, kinds ...types.EdgeKind) ([]types.Edge, error) {
	return nil, nil
}
func (f *fakeStore) GetOutgoingEdges(nodeID string, kinds ...types.EdgeKind) ([]types.Edge, error) {
	var out []types.Edge
	for _, e := range f.outgoing[nodeID] {
		if len(kinds) == 0 {
			out = append(out, e)
			continue
		}
		for _, k := range kinds {
			if e.Kind == k {
				out = append(out, e)
			}
		}
	}
	return out, nil
}
func (f *fakeStore) AllFiles() ([]types.File, error) { return f.files, nil }
func (f *fakeStore) ResolveEdge(fingerprint uint64, resolvedTargetID string, confidence float64, by types.ResolvedBy) error {
	f.resolvedFingerprint = fingerprint
	f.resolvedTargetID = resolvedTargetID
	f.resolvedConfidence = confidence
	f.resolvedBy = by
	return nil
}

func TestLocalPassWins(t *testing.T) {
	s := &fakeStore{
		nodesByFile: map[string][]types.Node{
			"a.go": {{ID: "n1", Name: "Foo", FilePath: "a.go"}},
		},
	}
	r := New(s, nil, nil)
	out, ok := r.Resolve(types.UnresolvedReference{SourceFile: "a.go", ReferenceName: "Foo"})
	require.True(t, ok)
	require.Equal(t, "n1", out.targetID)
	require.Equal(t, types.ResolvedByLocal, out.by)
	require.Equal(t, 1.0, out.confidence)
}

func TestClassPassWalksExtends(t *testing.T) {
	s := &fakeStore{
		nodes: map[string]types.Node{
			"child":  {ID: "child", Name: "Derived"},
			"base":   {ID: "base", Name: "Base"},
			"method": {ID: "method", Name: "Validate"},
		},
		nodesByFile: map[string][]types.Node{"a.go": {}},
		outgoing: map[string][]types.Edge{
			"child": {{Source: "child", Kind: types.EdgeExtends, ResolvedTargetID: "base"}},
			"base":  {{Source: "base", Kind: types.EdgeContains, ResolvedTargetID: "method"}},
		},
	}
	r := New(s, nil, nil)
	out, ok := r.Resolve(types.UnresolvedReference{SourceNodeID: "child", SourceFile: "a.go", ReferenceName: "Validate"})
	require.True(t, ok)
	require.Equal(t, "method", out.targetID)
	require.Equal(t, types.ResolvedByClass, out.by)
	require.Equal(t, 0.95, out.confidence)
}

func TestGlobalPassTieBreaksByFilePath(t *testing.T) {
	s := &fakeStore{
		nodesByFile: map[string][]types.Node{"x.go": {}},
		nodes: map[string]types.Node{
			"z": {ID: "z", Name: "Shared", FilePath: "z.go"},
			"a": {ID: "a", Name: "Shared", FilePath: "a.go"},
		},
	}
	r := New(s, nil, nil)
	out, ok := r.Resolve(types.UnresolvedReference{SourceFile: "x.go", ReferenceName: "Shared"})
	require.True(t, ok)
	require.Equal(t, "a", out.targetID)
	require.Equal(t, types.ResolvedByGlobal, out.by)
}

func TestUnresolvedWhenNoPassMatches(t *testing.T) {
	s := &fakeStore{nodesByFile: map[string][]types.Node{"x.go": {}}}
	r := New(s, nil, nil)
	_, ok := r.Resolve(types.UnresolvedReference{SourceFile: "x.go", ReferenceName: "Nope"})
	require.False(t, ok)
}

func TestResolveAndPersistWritesMatchingFingerprint(t *testing.T) {
	s := &fakeStore{
		nodesByFile: map[string][]types.Node{
			"a.go": {{ID: "n1", Name: "Foo", FilePath: "a.go"}},
		},
	}
	r := New(s, nil, nil)
	ref := types.UnresolvedReference{
		SourceNodeID:  "caller",
		SourceFile:    "a.go",
		ReferenceName: "Foo",
		Kind:          types.EdgeCalls,
		Position:      types.Range{StartLine: 5},
	}
	ok, err := r.ResolveAndPersist(ref)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "n1", s.resolvedTargetID)
	require.Equal(t, types.ResolvedByLocal, s.resolvedBy)
	require.Equal(t, types.DeriveEdgeFingerprint(ref.SourceNodeID, ref.Kind, ref.ReferenceName, ref.Position), s.resolvedFingerprint)
}

func TestResolveAndPersistNoMatch(t *testing.T) {
	s := &fakeStore{nodesByFile: map[string][]types.Node{"a.go": {}}}
	r := New(s, nil, nil)
	ok, err := r.ResolveAndPersist(types.UnresolvedReference{SourceFile: "a.go", ReferenceName: "Nope"})
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResolveImportTargetExactAndNamespace(t *testing.T) {
	files := []types.File{{Path: "src/b.ts"}, {Path: "src/util/C.ts"}}

	path, ok := ResolveImportTarget("./b", files)
	require.True(t, ok)
	require.Equal(t, "src/b.ts", path)

	path, ok = ResolveImportTarget("A.util.C", files)
	require.True(t, ok)
	require.Equal(t, "src/util/C.ts", path)
}
