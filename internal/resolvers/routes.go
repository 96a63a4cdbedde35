package resolvers

import (
	"regexp"
	"strings"

	"github.com/codegraphhq/codegraph/internal/types"
)

// routeImportSignals are substrings (framework import names) whose
// presence anywhere in a file's content, compared case-insensitively,
// marks the project as using a web-routing framework,
// mirroring the teacher's ComponentDetector handler-suffix/import rules
// (internal/core/component_detector.go) but narrowed to route detection.
var routeImportSignals = []string{
	"flask", "fastapi", "express", "@nestjs/common", "gin-gonic/gin", "net/http",
}

// routePatterns capture decorator-style and registration-call-style route
// declarations across the handful of frameworks this resolver knows:
// Python decorators (@app.route("/path")), Express-style calls
// (app.get("/path", ...)), and Go's http.HandleFunc("/path", ...).
var routePatterns = []*regexp.Regexp{
	regexp.MustCompile(`@\w+\.(?:route|get|post|put|delete|patch)\(\s*["']([^"']+)["']`),
	regexp.MustCompile(`\b\w+\.(?:get|post|put|delete|patch)\(\s*["']([^"']+)["']`),
	regexp.MustCompile(`HandleFunc\(\s*["']([^"']+)["']`),
}

// RouteResolver detects web-framework route declarations and emits
// `route` nodes for them (spec §4.D step 5 / §4.E). It is read-only and
// stateless between calls; Detect simply scans the full content of every
// indexed file for known framework signals, not only import lines.
type RouteResolver struct{}

func NewRouteResolver() *RouteResolver { return &RouteResolver{} }

func (r *RouteResolver) Name() string { return "route" }

func (r *RouteResolver) Detect(ctx Context) bool {
	for _, path := range ctx.AllFiles() {
		content, err := ctx.ReadFile(path)
		if err != nil {
			continue
		}
		lower := strings.ToLower(string(content))
		for _, signal := range routeImportSignals {
			if strings.Contains(lower, signal) {
				return true
			}
		}
	}
	return false
}

func (r *RouteResolver) ExtractNodes(filePath string, content []byte) []types.Node {
	var nodes []types.Node
	text := string(content)
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		for _, pat := range routePatterns {
			m := pat.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			routePath := m[1]
			qualifiedName := filePath + ":" + routePath
			nodes = append(nodes, types.Node{
				ID:            types.DeriveNodeID(types.KindRoute, filePath, qualifiedName, i+1),
				Kind:          types.KindRoute,
				Name:          routePath,
				QualifiedName: qualifiedName,
				FilePath:      filePath,
				Range:         types.Range{StartLine: i + 1, EndLine: i + 1},
				IsExported:    true,
			})
		}
	}
	return nodes
}

// Resolve never claims a reference: routes are sinks (derived nodes), not
// named symbols other code refers to by identifier.
func (r *RouteResolver) Resolve(types.UnresolvedReference, Context) (Resolved, bool) {
	return Resolved{}, false
}
