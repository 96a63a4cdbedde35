package extractor

import (
	"fmt"

	"github.com/codegraphhq/codegraph/internal/types"
)

// separatorFor returns the language-appropriate qualified-name join
// separator (spec §4.D step 3).
func separatorFor(language string) string {
	switch language {
	case "php", "ruby":
		return "::"
	case "rust":
		return "::"
	default:
		return "."
	}
}

// joinQualified builds a containment-prefixed qualified name, falling back
// to the simple name when there is no enclosing scope beyond the file.
func joinQualified(parentQualified, name, language string) string {
	if parentQualified == "" {
		return name
	}
	return parentQualified + separatorFor(language) + name
}

// anonName synthesizes a name for an anonymous function per spec §4.D
// edge cases: "<anon:line:col>".
func anonName(r types.Range) string {
	return fmt.Sprintf("<anon:%d:%d>", r.StartLine, r.StartColumn)
}
