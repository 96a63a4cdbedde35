package extractor

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codegraphhq/codegraph/internal/parser"
	"github.com/codegraphhq/codegraph/internal/types"
)

func TestExtractGoFileAndFunction(t *testing.T) {
	pool := parser.NewPool()
	content := []byte("package main\n\nfunc Foo() {}\n\nfunc bar() {}\n")

	res, err := Extract(pool, "go", "main.go", content)
	require.NoError(t, err)
	require.False(t, res.ParseFailed)

	var names []string
	var fileNode types.Node
	for _, n := range res.Nodes {
		names = append(names, n.Name)
		if n.Kind == types.KindFile {
			fileNode = n
		}
	}
	require.Contains(t, names, "Foo")
	require.Contains(t, names, "bar")
	require.Equal(t, "main.go", fileNode.QualifiedName)

	for _, n := range res.Nodes {
		switch n.Name {
		case "Foo":
			require.True(t, n.IsExported)
		case "bar":
			require.False(t, n.IsExported)
		}
	}

	// every non-file node has a contains edge sourced from some parent
	containsCount := 0
	for _, e := range res.Edges {
		if e.Kind == types.EdgeContains {
			containsCount++
			require.Equal(t, float64(1.0), e.Confidence)
			require.Equal(t, types.ResolvedByStructural, e.ResolvedBy)
		}
	}
	require.Equal(t, len(res.Nodes)-1, containsCount)
}

func TestExtractNestedClassQualifiedName(t *testing.T) {
	pool := parser.NewPool()
	content := []byte("class Foo:\n    def bar(self):\n        pass\n")

	res, err := Extract(pool, "python", "m.py", content)
	require.NoError(t, err)

	var gotQualified string
	for _, n := range res.Nodes {
		if n.Name == "bar" {
			gotQualified = n.QualifiedName
		}
	}
	require.Equal(t, "Foo.bar", gotQualified)
}

func TestExtractDeterministicNodeIDs(t *testing.T) {
	pool := parser.NewPool()
	content := []byte("package main\n\nfunc Foo() {}\n")

	res1, err := Extract(pool, "go", "main.go", content)
	require.NoError(t, err)
	res2, err := Extract(pool, "go", "main.go", content)
	require.NoError(t, err)

	require.Equal(t, len(res1.Nodes), len(res2.Nodes))
	for i := range res1.Nodes {
		require.Equal(t, res1.Nodes[i].ID, res2.Nodes[i].ID)
	}
}

func TestExtractCallAndExtendsProduceUnresolvedReferences(t *testing.T) {
	pool := parser.NewPool()
	content := []byte("package main\n\nfunc helper() {}\n\nfunc main() {\n\thelper()\n}\n")

	res, err := Extract(pool, "go", "main.go", content)
	require.NoError(t, err)

	var callEdge types.Edge
	found := false
	for _, e := range res.Edges {
		if e.Kind == types.EdgeCalls {
			callEdge = e
			found = true
		}
	}
	require.True(t, found, "expected a calls edge for helper()")
	require.Equal(t, "helper", callEdge.TargetSymbol)
	require.False(t, callEdge.Resolved())

	var ref types.UnresolvedReference
	for _, u := range res.Unresolved {
		if u.Kind == types.EdgeCalls {
			ref = u
		}
	}
	require.Equal(t, "helper", ref.ReferenceName)
}

func TestExtractParseErrorStillEmitsFileNode(t *testing.T) {
	pool := parser.NewPool()
	content := []byte("function foo( {\n") // truncated

	res, err := Extract(pool, "javascript", "broken.js", content)
	require.NoError(t, err)
	require.True(t, res.ParseFailed)
	require.NotEmpty(t, res.Nodes)
	require.Equal(t, types.KindFile, res.Nodes[0].Kind)
}
