// Package pascalblueprint is a minimal, hand-rolled extractor for Object
// Pascal (Delphi-style) units. No tree-sitter grammar for Pascal ships in
// this module's dependency set, so unlike every other language this one
// is a line-oriented scanner rather than a query walk over a parsed
// tree — grounded in spec.md's own §8 fixture (`UAuth.pas`) rather than
// in the teacher, which never handles Pascal either. It exists purely to
// exercise that fixture end to end (unit → interface → class →
// extends/implements/calls) and is deliberately excluded from
// internal/config's closed extension table: it is a worked example of
// the extraction contract, not a supported language.
package pascalblueprint

import (
	"regexp"
	"strings"

	"github.com/codegraphhq/codegraph/internal/types"
)

var (
	unitRe      = regexp.MustCompile(`(?i)^\s*unit\s+(\w+)\s*;`)
	typeHeadRe  = regexp.MustCompile(`(?i)^\s*(\w+)\s*=\s*(interface|class)\s*(?:\(([^)]*)\))?`)
	methodSigRe = regexp.MustCompile(`(?i)^\s*(procedure|function)\s+(\w+)(?:\.(\w+))?\s*[(;]`)
	callRe      = regexp.MustCompile(`\b([A-Za-z_]\w*)\s*\(`)
)

// Result mirrors extractor.Result's shape so callers can treat it the
// same way regardless of which language produced it.
type Result struct {
	Nodes      []types.Node
	Edges      []types.Edge
	Unresolved []types.UnresolvedReference
}

type typeDecl struct {
	nodeID  string
	name    string
	kind    types.Kind
	bases   []string
	methods map[string]string // method name -> node ID
}

// Extract scans content line by line for unit/interface/class/method
// declarations (spec §8 S1) and the call expressions inside method
// bodies, producing the same {nodes, edges, unresolved} shape the
// tree-sitter-backed extractor produces for every other language.
func Extract(filePath string, content []byte) Result {
	var res Result
	lines := strings.Split(string(content), "\n")

	unitName := filePath
	var fileKind types.Kind = types.KindFile
	for i, line := range lines {
		if m := unitRe.FindStringSubmatch(line); m != nil {
			unitName = m[1]
			fileKind = types.KindModule
			_ = i
			break
		}
	}
	unitNodeID := types.DeriveNodeID(fileKind, filePath, unitName, 1)
	res.Nodes = append(res.Nodes, types.Node{
		ID:            unitNodeID,
		Kind:          fileKind,
		Name:          unitName,
		QualifiedName: unitName,
		Language:      "pascal",
		FilePath:      filePath,
		Range:         types.Range{StartLine: 1},
	})

	types_ := map[string]*typeDecl{} // by name, case-insensitive key lowercased
	var order []string

	i := 0
	for i < len(lines) {
		line := lines[i]
		if m := typeHeadRe.FindStringSubmatch(line); m != nil {
			name := m[1]
			kindWord := strings.ToLower(m[2])
			bases := splitBases(m[3])

			kind := types.KindInterface
			if kindWord == "class" {
				kind = types.KindClass
			}
			qualified := unitName + "." + name
			node := types.Node{
				ID:            types.DeriveNodeID(kind, filePath, qualified, i+1),
				Kind:          kind,
				Name:          name,
				QualifiedName: qualified,
				Language:      "pascal",
				FilePath:      filePath,
				Range:         types.Range{StartLine: i + 1},
				IsExported:    true,
			}
			res.Nodes = append(res.Nodes, node)
			res.Edges = append(res.Edges, types.Edge{
				Source:           unitNodeID,
				Kind:             types.EdgeContains,
				TargetSymbol:     node.ID,
				ResolvedTargetID: node.ID,
				Confidence:       1.0,
				ResolvedBy:       types.ResolvedByStructural,
				SourceRange:      node.Range,
				SourceFilePath:   filePath,
			})

			decl := &typeDecl{nodeID: node.ID, name: name, kind: kind, bases: bases, methods: map[string]string{}}
			types_[strings.ToLower(name)] = decl
			order = append(order, strings.ToLower(name))

			// Scan the body for method signatures until "end;".
			j := i + 1
			for j < len(lines) && !strings.Contains(strings.ToLower(lines[j]), "end;") {
				if sig := methodSigRe.FindStringSubmatch(lines[j]); sig != nil && sig[3] == "" {
					methodName := sig[2]
					methodQualified := qualified + "." + methodName
					mNode := types.Node{
						ID:            types.DeriveNodeID(types.KindMethod, filePath, methodQualified, j+1),
						Kind:          types.KindMethod,
						Name:          methodName,
						QualifiedName: methodQualified,
						Language:      "pascal",
						FilePath:      filePath,
						Range:         types.Range{StartLine: j + 1},
						IsExported:    true,
					}
					res.Nodes = append(res.Nodes, mNode)
					res.Edges = append(res.Edges, types.Edge{
						Source:           node.ID,
						Kind:             types.EdgeContains,
						TargetSymbol:     mNode.ID,
						ResolvedTargetID: mNode.ID,
						Confidence:       1.0,
						ResolvedBy:       types.ResolvedByStructural,
						SourceRange:      mNode.Range,
						SourceFilePath:   filePath,
					})
					decl.methods[strings.ToLower(methodName)] = mNode.ID
				}
				j++
			}
			i = j + 1
			continue
		}
		i++
	}

	// Base-list edges: first base is `extends` (superclass), remaining
	// bases are `implements` (interfaces) — spec §8 S1's
	// TAuthService(TInterfacedObject, ITokenValidator) split.
	for _, key := range order {
		decl := types_[key]
		for idx, base := range decl.bases {
			edgeKind := types.EdgeImplements
			if idx == 0 {
				edgeKind = types.EdgeExtends
			}
			target, ok := types_[strings.ToLower(base)]
			edge := types.Edge{
				Source:         decl.nodeID,
				Kind:           edgeKind,
				TargetSymbol:   base,
				SourceRange:    types.Range{},
				SourceFilePath: filePath,
			}
			if ok {
				edge.ResolvedTargetID = target.nodeID
				edge.Confidence = 1.0
				edge.ResolvedBy = types.ResolvedByLocal
			}
			res.Edges = append(res.Edges, edge)
			if !ok {
				res.Unresolved = append(res.Unresolved, types.UnresolvedReference{
					SourceNodeID:  decl.nodeID,
					SourceFile:    filePath,
					ReferenceName: base,
					Kind:          edgeKind,
				})
			}
		}
	}

	// Implementation-section method bodies: `function/procedure
	// Class.Method` followed by calls to sibling methods on the same
	// class (spec §8 S1's TAuthService.Login --calls→ TAuthService.Validate,
	// confidence 0.95 — the same confidence the reference resolver's
	// class pass assigns to a same-hierarchy method lookup).
	i = 0
	for i < len(lines) {
		sig := methodSigRe.FindStringSubmatch(lines[i])
		if sig == nil || sig[3] == "" {
			i++
			continue
		}
		className, methodName := sig[2], sig[3]
		decl, ok := types_[strings.ToLower(className)]
		if !ok {
			i++
			continue
		}
		sourceID, ok := decl.methods[strings.ToLower(methodName)]
		if !ok {
			i++
			continue
		}

		j := i + 1
		for j < len(lines) && !strings.Contains(strings.ToLower(lines[j]), "end;") {
			for _, call := range callRe.FindAllStringSubmatch(lines[j], -1) {
				callee := call[1]
				if strings.EqualFold(callee, "procedure") || strings.EqualFold(callee, "function") {
					continue
				}
				targetID, resolved := decl.methods[strings.ToLower(callee)]
				edge := types.Edge{
					Source:         sourceID,
					Kind:           types.EdgeCalls,
					TargetSymbol:   callee,
					SourceRange:    types.Range{StartLine: j + 1},
					SourceFilePath: filePath,
				}
				if resolved {
					edge.ResolvedTargetID = targetID
					edge.Confidence = 0.95
					edge.ResolvedBy = types.ResolvedByClass
				}
				res.Edges = append(res.Edges, edge)
				if !resolved {
					res.Unresolved = append(res.Unresolved, types.UnresolvedReference{
						SourceNodeID:  sourceID,
						SourceFile:    filePath,
						ReferenceName: callee,
						Kind:          types.EdgeCalls,
						Position:      types.Range{StartLine: j + 1},
					})
				}
			}
			j++
		}
		i = j + 1
	}

	return res
}

func splitBases(raw string) []string {
	parts := strings.Split(raw, ",")
	var bases []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			bases = append(bases, p)
		}
	}
	return bases
}
