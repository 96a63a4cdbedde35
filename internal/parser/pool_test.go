package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	cgerrors "github.com/codegraphhq/codegraph/internal/errors"
)

func TestParseGo(t *testing.T) {
	pool := NewPool()
	tree, query, err := pool.Parse("go", []byte("package main\nfunc Foo() {}\n"))
	require.NoError(t, err)
	require.NotNil(t, tree)
	require.NotNil(t, query)
	defer tree.Close()

	root := tree.RootNode()
	require.Equal(t, "source_file", root.Kind())
}

func TestParseUnsupportedLanguage(t *testing.T) {
	pool := NewPool()
	_, _, err := pool.Parse("cobol", []byte("IDENTIFICATION DIVISION."))
	require.Error(t, err)
	require.True(t, cgerrors.IsKind(err, cgerrors.LanguageUnsupported))
}

func TestSupportedLanguagesListsAll(t *testing.T) {
	names := SupportedLanguages()
	require.Contains(t, names, "go")
	require.Contains(t, names, "python")
	require.Contains(t, names, "swift")
	require.Contains(t, names, "kotlin")
	require.Len(t, names, 13)
}

func TestParseReusesParserAcrossCalls(t *testing.T) {
	pool := NewPool()
	for i := 0; i < 3; i++ {
		tree, _, err := pool.Parse("python", []byte("def foo():\n    pass\n"))
		require.NoError(t, err)
		tree.Close()
	}
}
