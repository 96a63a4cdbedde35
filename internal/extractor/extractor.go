// Package extractor translates query captures into typed nodes, edges and
// unresolved references (spec §4.D). It is grounded in the teacher's
// internal/parser/unified_extractor.go and internal/symbollinker's
// per-language extractors (go_extractor.go, js_extractor.go,
// python_extractor.go): a single generic, data-driven walk shared across
// most grammars, with a capture-name → Kind table per language instead of
// the teacher's bespoke per-language Go functions, since the spec's
// language set is wider and its extraction rules more uniform than the
// teacher's hand-tuned heuristics.
package extractor

import (
	"sort"
	"strings"

	"github.com/codegraphhq/codegraph/internal/parser"
	"github.com/codegraphhq/codegraph/internal/query"
	"github.com/codegraphhq/codegraph/internal/types"
)

// Result is everything one file's extraction produces.
type Result struct {
	Nodes       []types.Node
	Edges       []types.Edge
	Unresolved  []types.UnresolvedReference
	ParseFailed bool
}

// Extract parses content as language and walks its query matches into a
// Result. filePath is project-relative and becomes the synthetic file
// node's name and qualifiedName (spec §4.D step 1).
func Extract(pool *parser.Pool, language, filePath string, content []byte) (Result, error) {
	var res Result

	fileNodeID := types.DeriveNodeID(types.KindFile, filePath, filePath, 0)
	res.Nodes = append(res.Nodes, types.Node{
		ID:            fileNodeID,
		Kind:          types.KindFile,
		Name:          filePath,
		QualifiedName: filePath,
		Language:      language,
		FilePath:      filePath,
	})

	tree, q, err := pool.Parse(language, content)
	if err != nil {
		res.ParseFailed = true
		return res, err
	}
	defer tree.Close()

	if tree.RootNode().HasError() {
		res.ParseFailed = true
	}

	matches := query.Run(q, tree, content)
	ctab := kindTableFor(language)
	exportedFn := exportRuleFor(language)

	containers := newContainerStack(fileNodeID, filePath)

	type entry struct {
		match    query.Match
		kind     types.Kind
		edgeKind types.EdgeKind
		main     query.Capture
	}
	var entries []entry
	for _, m := range matches {
		for _, c := range m.Captures {
			if strings.Contains(c.Name, ".") {
				continue // sub-captures (e.g. "function.name") are read via First(), not walked directly
			}
			if ek, ok := refEdgeTable[c.Name]; ok {
				entries = append(entries, entry{match: m, edgeKind: ek, main: c})
				continue
			}
			if kind, ok := ctab[c.Name]; ok {
				entries = append(entries, entry{match: m, kind: kind, main: c})
			}
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].main.Range.StartLine < entries[j].main.Range.StartLine ||
			(entries[i].main.Range.StartLine == entries[j].main.Range.StartLine &&
				entries[i].main.Range.StartColumn < entries[j].main.Range.StartColumn)
	})

	for _, e := range entries {
		parent := containers.enclosing(e.main.Range)

		// Reference captures (imports, calls, extends/implements) describe
		// a use rather than a declaration: they become an unresolved edge
		// plus the UnresolvedReference the reference resolver later binds,
		// never a node of their own (spec §4.D step 3 / §4.F).
		if e.edgeKind != "" {
			refName := referenceTargetText(e.match, e.main.Name, e.main.Text)
			res.Edges = append(res.Edges, types.Edge{
				Source:         parent.nodeID,
				Kind:           e.edgeKind,
				TargetSymbol:   refName,
				SourceRange:    e.main.Range,
				SourceFilePath: filePath,
			})
			res.Unresolved = append(res.Unresolved, types.UnresolvedReference{
				SourceNodeID:  parent.nodeID,
				SourceFile:    filePath,
				ReferenceName: refName,
				Kind:          e.edgeKind,
				Position:      e.main.Range,
			})
			continue
		}

		name := captureName(e.match, e.kind)
		if name == "" {
			name = anonName(e.main.Range)
		}
		parentQualified := parent.qualifiedName
		if parent.nodeID == fileNodeID {
			parentQualified = "" // top-level names are not prefixed with the file path
		}
		qualifiedName := joinQualified(parentQualified, name, language)

		node := types.Node{
			ID:            types.DeriveNodeID(e.kind, filePath, qualifiedName, e.main.Range.StartLine),
			Kind:          e.kind,
			Name:          name,
			QualifiedName: qualifiedName,
			Language:      language,
			FilePath:      filePath,
			Range:         e.main.Range,
			IsExported:    exportedFn(name),
		}
		if sig, ok := e.match.First(string(e.kind) + ".signature"); ok {
			node.Signature = sig.Text
		}

		res.Nodes = append(res.Nodes, node)
		res.Edges = append(res.Edges, types.Edge{
			Source:           parent.nodeID,
			Kind:             types.EdgeContains,
			TargetSymbol:     node.ID,
			ResolvedTargetID: node.ID,
			Confidence:       1.0,
			ResolvedBy:       types.ResolvedByStructural,
			SourceRange:      e.main.Range,
			SourceFilePath:   filePath,
		})

		if isContainerKind(e.kind) {
			containers.push(node.ID, qualifiedName, e.main.Range)
		}
	}

	return res, nil
}

// referenceTargetText pulls the symbol text a reference capture points
// at: the "<mainCapture>.name" sub-capture when the query provides one
// (calls, extends, implements, and path-carrying imports), falling back
// to the whole captured node's text for bare `@import`-style captures
// that have no sub-capture in their grammar.
func referenceTargetText(m query.Match, mainCapture, fallback string) string {
	candidates := []string{
		mainCapture + ".name", mainCapture + ".path", mainCapture + ".source",
	}
	for _, name := range candidates {
		if c, ok := m.First(name); ok {
			return strings.Trim(c.Text, `"'`)
		}
	}
	return strings.TrimSpace(fallback)
}

func isContainerKind(k types.Kind) bool {
	switch k {
	case types.KindClass, types.KindStruct, types.KindInterface, types.KindTrait,
		types.KindEnum, types.KindModule:
		return true
	default:
		return false
	}
}

// captureName pulls the simple name out of a match's "<kind>.name" (or a
// couple of known aliases) sub-capture.
func captureName(m query.Match, kind types.Kind) string {
	candidates := []string{
		string(kind) + ".name",
		"function.name", "method.name", "class.name", "struct.name",
		"interface.name", "enum.name", "trait.name", "module.name",
		"record.name", "property.name", "field.name", "constructor.name",
		"type.name",
	}
	for _, name := range candidates {
		if c, ok := m.First(name); ok {
			return c.Text
		}
	}
	return ""
}
