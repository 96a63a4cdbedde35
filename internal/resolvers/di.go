package resolvers

import (
	"strings"

	"github.com/codegraphhq/codegraph/internal/types"
)

// diInterfacePrefixes are the naming conventions this resolver treats as
// "interface-shaped" targets for constructor-parameter binding — the
// common cross-language conventions (leading "I" for C#/TypeScript,
// "-able"/"-er" suffixes are too noisy to use reliably, so this resolver
// sticks to the unambiguous leading-I convention plus declared
// `interface` kind nodes already in the index).
var diInterfacePrefixes = []string{"I"}

// DIResolver performs dependency-injection-style name lookup: a
// constructor parameter typed as `IFoo` (or any declared interface named
// `Foo`) resolves references to that parameter's uses against the
// interface's node, rather than requiring an explicit import chain. This
// mirrors frameworks (ASP.NET Core, NestJS, Spring) that wire
// implementations to interfaces by type alone.
type DIResolver struct{}

func NewDIResolver() *DIResolver { return &DIResolver{} }

func (r *DIResolver) Name() string { return "dependency_injection" }

// Detect looks for at least one declared interface node anywhere in the
// index — DI name-lookup only makes sense where interfaces exist to bind
// against.
func (r *DIResolver) Detect(ctx Context) bool {
	for _, path := range ctx.AllFiles() {
		for _, n := range ctx.NodesInFile(path) {
			if n.Kind == types.KindInterface {
				return true
			}
		}
	}
	return false
}

// ExtractNodes contributes nothing; DI resolution only narrows reference
// lookup, it never derives new declarations.
func (r *DIResolver) ExtractNodes(string, []byte) []types.Node { return nil }

// Resolve matches a reference's name against the interface-prefix
// convention, or a qualifier that already names an interface in the
// index, and returns the interface's node as the (likely-typed) target.
func (r *DIResolver) Resolve(ref types.UnresolvedReference, ctx Context) (Resolved, bool) {
	candidate := ref.ReferenceName
	if ref.Qualifier != "" {
		candidate = ref.Qualifier
	}

	bare := candidate
	for _, prefix := range diInterfacePrefixes {
		if strings.HasPrefix(candidate, prefix) && len(candidate) > len(prefix) {
			bare = candidate[len(prefix):]
			break
		}
	}

	for _, path := range ctx.AllFiles() {
		for _, n := range ctx.NodesInFile(path) {
			if n.Kind != types.KindInterface {
				continue
			}
			if n.Name == candidate || n.Name == bare {
				return Resolved{TargetNodeID: n.ID, Confidence: 0.7}, true
			}
		}
	}
	return Resolved{}, false
}
