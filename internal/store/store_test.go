package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/codegraphhq/codegraph/internal/errors"
	"github.com/codegraphhq/codegraph/internal/types"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenCreatesSchema(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	defer s.Close()

	again, err := Open(dir)
	require.NoError(t, err)
	defer again.Close()
}

func TestUpsertAndGetNode(t *testing.T) {
	s := openTestStore(t)

	n := types.Node{
		ID:            types.DeriveNodeID(types.KindFunction, "a.go", "pkg.Foo", 10),
		Kind:          types.KindFunction,
		Name:          "Foo",
		QualifiedName: "pkg.Foo",
		Language:      "go",
		FilePath:      "a.go",
		Range:         types.Range{StartLine: 10, EndLine: 12},
		UpdatedAt:     time.Now(),
	}
	require.NoError(t, s.UpsertNode(n))

	got, ok, err := s.GetNodeByID(n.ID)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, n.Name, got.Name)
	require.Equal(t, n.QualifiedName, got.QualifiedName)
}

func TestDeleteFileCascadesNodesAndEdges(t *testing.T) {
	s := openTestStore(t)

	n := types.Node{ID: "n1", Kind: types.KindFunction, Name: "Foo", FilePath: "a.go", UpdatedAt: time.Now()}
	require.NoError(t, s.UpsertNode(n))

	e := types.Edge{Source: "n1", Kind: types.EdgeCalls, TargetSymbol: "Bar", SourceFilePath: "a.go"}
	require.NoError(t, s.UpsertEdge(e))

	require.NoError(t, s.UpsertFile(types.File{Path: "a.go", Language: "go"}))

	require.NoError(t, s.DeleteFile("a.go"))

	nodes, err := s.GetNodesByFile("a.go")
	require.NoError(t, err)
	require.Empty(t, nodes)

	edges, err := s.GetOutgoingEdges("n1")
	require.NoError(t, err)
	require.Empty(t, edges)

	_, ok, err := s.GetFile("a.go")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestResolveEdgeAtomicUpdate(t *testing.T) {
	s := openTestStore(t)

	e := types.Edge{Source: "n1", Kind: types.EdgeCalls, TargetSymbol: "Bar", SourceFilePath: "a.go"}
	require.NoError(t, s.UpsertEdge(e))

	unresolved, err := s.GetUnresolvedEdges()
	require.NoError(t, err)
	require.Len(t, unresolved, 1)

	fp := types.DeriveEdgeFingerprint(e.Source, e.Kind, e.TargetSymbol, e.SourceRange)
	require.NoError(t, s.ResolveEdge(fp, "n2", 0.9, types.ResolvedByLocal))

	resolved, err := s.GetUnresolvedEdges()
	require.NoError(t, err)
	require.Empty(t, resolved)

	incoming, err := s.GetIncomingEdges("n2")
	require.NoError(t, err)
	require.Len(t, incoming, 1)
	require.Equal(t, types.ResolvedByLocal, incoming[0].ResolvedBy)
}

func TestGetNodesByKindOrdering(t *testing.T) {
	s := openTestStore(t)

	require.NoError(t, s.UpsertNode(types.Node{ID: "n2", Kind: types.KindClass, Name: "B", FilePath: "b.go", Range: types.Range{StartLine: 1}}))
	require.NoError(t, s.UpsertNode(types.Node{ID: "n1", Kind: types.KindClass, Name: "A", FilePath: "a.go", Range: types.Range{StartLine: 1}}))

	nodes, err := s.GetNodesByKind(types.KindClass)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	require.Equal(t, "a.go", nodes[0].FilePath)
	require.Equal(t, "b.go", nodes[1].FilePath)
}

func TestDowngradeRejected(t *testing.T) {
	dir := t.TempDir()
	s, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, s.db.Model(&schemaVersionRow{}).Where("id = ?", 1).Update("version", SchemaVersion+1).Error)
	require.NoError(t, s.Close())

	_, err = Open(dir)
	require.Error(t, err)
	require.True(t, errors.IsKind(err, errors.StoreIntegrity))
}

func TestLockContentionSurfacesAfterHolderStillAlive(t *testing.T) {
	dir := t.TempDir()
	lockPath := filepath.Join(dir, ".write.lock")
	lock := NewWriteLock(dir)

	release, err := lock.Acquire()
	require.NoError(t, err)
	defer release()

	other := NewWriteLock(dir)
	_, err = other.Acquire()
	require.Error(t, err)
	require.True(t, errors.IsKind(err, errors.LockContention))
	require.FileExists(t, lockPath)
}
