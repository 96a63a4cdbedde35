package query

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/codegraphhq/codegraph/internal/parser"
)

func TestRunCollectsCaptures(t *testing.T) {
	pool := parser.NewPool()
	content := []byte("package main\n\nfunc Foo() {}\n\nfunc bar() {}\n")
	tree, q, err := pool.Parse("go", content)
	require.NoError(t, err)
	defer tree.Close()

	matches := Run(q, tree, content)
	require.NotEmpty(t, matches)

	var names []string
	for _, m := range matches {
		if c, ok := m.First("function.name"); ok {
			names = append(names, c.Text)
		}
	}
	require.Contains(t, names, "Foo")
	require.Contains(t, names, "bar")
}

func TestMatchNamedReturnsAllOccurrences(t *testing.T) {
	m := Match{Captures: []Capture{
		{Name: "field.name", Text: "a"},
		{Name: "field.name", Text: "b"},
		{Name: "struct", Text: "S"},
	}}
	require.Len(t, m.Named("field.name"), 2)
	c, ok := m.First("struct")
	require.True(t, ok)
	require.Equal(t, "S", c.Text)
}
