package sync

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codegraphhq/codegraph/internal/config"
	"github.com/codegraphhq/codegraph/internal/parser"
	"github.com/codegraphhq/codegraph/internal/store"
)

func newTestSync(t *testing.T) (*Sync, *store.Store, string) {
	root := t.TempDir()
	storeDir := t.TempDir()

	st, err := store.Open(storeDir)
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	cfg := config.Default()
	cfg.Include = []string{"**/*"}

	s := New(root, st, parser.NewPool(), cfg, nil)
	return s, st, root
}

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestSyncAddsNewFile(t *testing.T) {
	s, st, root := newTestSync(t)
	writeFile(t, root, "main.go", "package main\n\nfunc Foo() {}\n")

	summary, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.FilesAdded)
	require.Equal(t, 0, summary.FilesModified)
	require.Equal(t, 0, summary.FilesRemoved)
	require.Empty(t, summary.Errors)

	nodes, err := st.GetNodesByName("Foo")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
}

func TestSyncDetectsModifiedFile(t *testing.T) {
	s, st, root := newTestSync(t)
	writeFile(t, root, "main.go", "package main\n\nfunc Foo() {}\n")
	_, err := s.Run(context.Background())
	require.NoError(t, err)

	writeFile(t, root, "main.go", "package main\n\nfunc Foo() {}\n\nfunc Bar() {}\n")
	summary, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, summary.FilesAdded)
	require.Equal(t, 1, summary.FilesModified)

	nodes, err := st.GetNodesByName("Bar")
	require.NoError(t, err)
	require.Len(t, nodes, 1)
}

func TestSyncRemovesDeletedFile(t *testing.T) {
	s, st, root := newTestSync(t)
	writeFile(t, root, "main.go", "package main\n\nfunc Foo() {}\n")
	_, err := s.Run(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.Remove(filepath.Join(root, "main.go")))
	summary, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.FilesRemoved)

	nodes, err := st.GetNodesByName("Foo")
	require.NoError(t, err)
	require.Empty(t, nodes)

	_, ok, err := st.GetFile("main.go")
	require.NoError(t, err)
	require.False(t, ok)
}

// TestSyncAfterRename matches testable scenario S3: renaming old.ts to
// new.ts (identical content) reports one add and one removal, the old
// node is gone, and a name lookup for f returns exactly one result at
// new.ts with a different node ID than before.
func TestSyncAfterRename(t *testing.T) {
	s, st, root := newTestSync(t)
	content := "export function f() {}\n"
	writeFile(t, root, "old.ts", content)

	_, err := s.Run(context.Background())
	require.NoError(t, err)

	before, err := st.GetNodesByName("f")
	require.NoError(t, err)
	require.Len(t, before, 1)
	oldID := before[0].ID

	require.NoError(t, os.Rename(filepath.Join(root, "old.ts"), filepath.Join(root, "new.ts")))
	summary, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.FilesAdded)
	require.Equal(t, 1, summary.FilesRemoved)

	after, err := st.GetNodesByName("f")
	require.NoError(t, err)
	require.Len(t, after, 1)
	require.Equal(t, "new.ts", after[0].FilePath)
	require.NotEqual(t, oldID, after[0].ID)
}

func TestSyncResolvesCallWithinTouchedFiles(t *testing.T) {
	s, st, root := newTestSync(t)
	writeFile(t, root, "main.go", "package main\n\nfunc helper() {}\n\nfunc main() {\n\thelper()\n}\n")

	_, err := s.Run(context.Background())
	require.NoError(t, err)

	edges, err := st.GetUnresolvedEdges()
	require.NoError(t, err)
	require.Empty(t, edges, "the call to helper() should resolve within the same file on its first sync")
}

func TestSyncUnchangedFileProducesNoChurn(t *testing.T) {
	s, _, root := newTestSync(t)
	writeFile(t, root, "main.go", "package main\n\nfunc Foo() {}\n")
	_, err := s.Run(context.Background())
	require.NoError(t, err)

	summary, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 0, summary.FilesAdded)
	require.Equal(t, 0, summary.FilesModified)
	require.Equal(t, 0, summary.FilesRemoved)
	require.Equal(t, 1, summary.FilesChecked)
}

func TestSyncSkipsBinaryFile(t *testing.T) {
	s, st, root := newTestSync(t)
	full := filepath.Join(root, "blob.go")
	require.NoError(t, os.WriteFile(full, []byte("package main\x00\x01\x02garbage"), 0o644))

	summary, err := s.Run(context.Background())
	require.NoError(t, err)
	require.Equal(t, 1, summary.FilesAdded, "the candidate is still counted as added even though nothing is extracted from it")
	require.Empty(t, summary.Errors)

	nodes, err := st.GetNodesByFile("blob.go")
	require.NoError(t, err)
	require.Empty(t, nodes)
}
