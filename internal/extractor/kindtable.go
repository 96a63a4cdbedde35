package extractor

import (
	"strings"
	"unicode"

	"github.com/codegraphhq/codegraph/internal/types"
)

// baseKindTable maps a query's main capture name (e.g. "function",
// "class") to the Node Kind it produces. Shared across every language;
// languages that need extra capture names (C#'s "record", "delegate",
// "event", and "namespace" for C#, C, C++ and PHP) extend it in
// kindTableFor.
var baseKindTable = map[string]types.Kind{
	"function":    types.KindFunction,
	"method":      types.KindMethod,
	"constructor": types.KindConstructor,
	"destructor":  types.KindDestructor,
	"class":       types.KindClass,
	"struct":      types.KindStruct,
	"interface":   types.KindInterface,
	"trait":       types.KindTrait,
	"enum":        types.KindEnum,
	"module":      types.KindModule,
	"type":        types.KindTypeAlias,
	"field":       types.KindField,
	"property":    types.KindProperty,
	"variable":    types.KindVariable,
	"constant":    types.KindConstant,
}

// kindTableFor returns the capture→Kind table for language, layering a
// few language-specific extensions over baseKindTable.
func kindTableFor(language string) map[string]types.Kind {
	t := make(map[string]types.Kind, len(baseKindTable)+4)
	for k, v := range baseKindTable {
		t[k] = v
	}
	switch language {
	case "csharp":
		t["record"] = types.KindClass
		t["delegate"] = types.KindTypeAlias
		t["event"] = types.KindField
		t["namespace"] = types.KindModule
	case "cpp", "c":
		t["namespace"] = types.KindModule
	case "php":
		t["namespace"] = types.KindModule
	}
	return t
}

// refEdgeTable maps a query's main capture name to the EdgeKind of an
// UnresolvedReference, for captures that describe a use rather than a
// declaration (spec §4.D step 3: calls, imports, and type relationships
// are references the resolver later binds to a node).
var refEdgeTable = map[string]types.EdgeKind{
	"import":     types.EdgeImports,
	"using":      types.EdgeImports,
	"use":        types.EdgeImports,
	"call":       types.EdgeCalls,
	"extends":    types.EdgeExtends,
	"implements": types.EdgeImplements,
}

// exportRuleFor returns the language-specific isExported predicate (spec
// §4.D step 2: "isExported (language-specific rule)").
func exportRuleFor(language string) func(name string) bool {
	switch language {
	case "go":
		return func(name string) bool {
			name = strings.TrimPrefix(name, "<anon:")
			if name == "" {
				return false
			}
			r := []rune(name)[0]
			return unicode.IsUpper(r)
		}
	case "python", "ruby":
		return func(name string) bool {
			return !strings.HasPrefix(name, "_")
		}
	default:
		// TypeScript/JavaScript/Java/C#/C++/PHP/Rust/Swift/Kotlin declare
		// visibility with keywords the generic query captures don't
		// surface; treat everything as exported and let the framework and
		// reference resolvers narrow by usage instead.
		return func(name string) bool { return true }
	}
}
