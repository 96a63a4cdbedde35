// Package query runs a tree-sitter query against a parsed tree and
// collects its captures into plain structs, decoupled from any one
// language's extraction logic. Grounded on the teacher's query-matching
// loop in internal/parser/parser.go (extractBasicSymbolsStringRef): a
// QueryCursor driven match-by-match, captures keyed by name.
package query

import (
	tree_sitter "github.com/tree-sitter/go-tree-sitter"

	"github.com/codegraphhq/codegraph/internal/types"
)

// Capture is one named capture within a match: the tree-sitter node plus
// its source text and range, already resolved so extractors never touch
// a *tree_sitter.Node directly.
type Capture struct {
	Name  string
	Text  string
	Range types.Range
	Node  *tree_sitter.Node
}

// Match is one query match: every capture it produced, keyed by capture
// name. A capture name may repeat within a match (e.g. multiple
// parameters); Named returns all of them in source order.
type Match struct {
	Captures []Capture
}

// First returns the first capture with the given name, if any.
func (m Match) First(name string) (Capture, bool) {
	for _, c := range m.Captures {
		if c.Name == name {
			return c, true
		}
	}
	return Capture{}, false
}

// Named returns every capture with the given name, in source order.
func (m Match) Named(name string) []Capture {
	var out []Capture
	for _, c := range m.Captures {
		if c.Name == name {
			out = append(out, c)
		}
	}
	return out
}

// Run executes query against tree's root node over content, returning one
// Match per query match in document order.
func Run(q *tree_sitter.Query, tree *tree_sitter.Tree, content []byte) []Match {
	cursor := tree_sitter.NewQueryCursor()
	defer cursor.Close()

	names := q.CaptureNames()
	qmatches := cursor.Matches(q, tree.RootNode(), content)

	var matches []Match
	for {
		qm := qmatches.Next()
		if qm == nil {
			break
		}
		m := Match{Captures: make([]Capture, 0, len(qm.Captures))}
		for _, c := range qm.Captures {
			node := c.Node
			m.Captures = append(m.Captures, Capture{
				Name: names[c.Index],
				Text: string(content[node.StartByte():node.EndByte()]),
				Range: types.Range{
					StartLine:   int(node.StartPosition().Row) + 1,
					StartColumn: int(node.StartPosition().Column),
					EndLine:     int(node.EndPosition().Row) + 1,
					EndColumn:   int(node.EndPosition().Column),
				},
				Node: &node,
			})
		}
		matches = append(matches, m)
	}
	return matches
}
