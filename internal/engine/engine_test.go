package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	cgerrors "github.com/codegraphhq/codegraph/internal/errors"
	"github.com/codegraphhq/codegraph/internal/types"
	"github.com/codegraphhq/codegraph/internal/vectorindex"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestInitializeThenOpenRejectsDoubleInit(t *testing.T) {
	root := t.TempDir()

	e, err := Initialize(root, nil)
	require.NoError(t, err)
	require.NoError(t, e.Close())

	_, err = Initialize(root, nil)
	require.Error(t, err)
	require.True(t, cgerrors.IsKind(err, cgerrors.AlreadyInitialized))
}

func TestOpenWithoutInitializeFails(t *testing.T) {
	root := t.TempDir()
	_, err := Open(root)
	require.Error(t, err)
	require.True(t, cgerrors.IsKind(err, cgerrors.NotInitialized))
}

func TestFullIndexExtractsAndResolves(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n\nfunc helper() {}\n\nfunc main() {\n\thelper()\n}\n")

	e, err := Initialize(root, nil)
	require.NoError(t, err)
	defer e.Close()

	summary, err := e.FullIndex(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.FilesIndexed)
	require.Greater(t, summary.NodesExtracted, 0)
	require.Empty(t, summary.Warnings)

	nodes, err := e.SearchByName("helper")
	require.NoError(t, err)
	require.Len(t, nodes, 1)

	fnNodes, err := e.SearchByKind(types.KindFunction)
	require.NoError(t, err)
	require.NotEmpty(t, fnNodes)
}

func TestFullIndexWarnsOnOversizedFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "big.go", "package main\n\nfunc Big() {}\n")

	e, err := Initialize(root, nil)
	require.NoError(t, err)
	defer e.Close()
	e.cfg.MaxFileSize = 1 // force every file over budget

	summary, err := e.FullIndex(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, summary.FilesIndexed)
	require.Len(t, summary.Warnings, 1)
	require.Equal(t, cgerrors.OversizedFile, summary.Warnings[0].Kind)
}

func TestInitializeDetectsBuildArtifactExclusions(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "Cargo.toml", "[profile.release]\ntarget-dir = \"my-target\"\n")
	writeFile(t, root, "my-target/debug/generated.go", "package generated\n\nfunc Gen() {}\n")
	writeFile(t, root, "main.go", "package main\n\nfunc main() {}\n")

	e, err := Initialize(root, nil)
	require.NoError(t, err)
	defer e.Close()

	summary, err := e.FullIndex(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.FilesIndexed, "my-target/ should be excluded as a detected Cargo build output")

	nodes, err := e.SearchByName("Gen")
	require.NoError(t, err)
	require.Empty(t, nodes)
}

func TestNodesInFileRejectsPathEscape(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n\nfunc Foo() {}\n")

	e, err := Initialize(root, nil)
	require.NoError(t, err)
	defer e.Close()

	_, err = e.FullIndex(context.Background())
	require.NoError(t, err)

	nodes, err := e.NodesInFile("main.go")
	require.NoError(t, err)
	require.NotEmpty(t, nodes)

	_, err = e.NodesInFile("../../etc/passwd")
	require.Error(t, err)
	require.True(t, cgerrors.IsKind(err, cgerrors.PathEscape))
}

func TestSemanticSearchFailsWithoutProvider(t *testing.T) {
	root := t.TempDir()
	e, err := Initialize(root, nil)
	require.NoError(t, err)
	defer e.Close()

	_, err = e.SemanticSearch(context.Background(), "anything", vectorindex.SearchOptions{Limit: 5})
	require.Error(t, err)
	require.True(t, cgerrors.IsKind(err, cgerrors.EmbeddingUnavailable))
}

func TestFullIndexSkipsBinaryFile(t *testing.T) {
	root := t.TempDir()
	full := filepath.Join(root, "blob.go")
	require.NoError(t, os.WriteFile(full, []byte("package main\x00\x01\x02garbage"), 0o644))

	e, err := Initialize(root, nil)
	require.NoError(t, err)
	defer e.Close()

	summary, err := e.FullIndex(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, summary.FilesIndexed)
	require.Len(t, summary.Warnings, 1)
	require.Equal(t, cgerrors.LanguageUnsupported, summary.Warnings[0].Kind)
}

func TestSyncAfterFullIndexIsRoundTrippable(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "main.go", "package main\n\nfunc Foo() {}\n")

	e, err := Initialize(root, nil)
	require.NoError(t, err)
	defer e.Close()

	_, err = e.FullIndex(context.Background())
	require.NoError(t, err)

	syncSummary, err := e.Sync(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, syncSummary.FilesAdded)
	require.Equal(t, 0, syncSummary.FilesModified)
	require.Equal(t, 0, syncSummary.FilesRemoved)
}
