package reference

import (
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/codegraphhq/codegraph/internal/types"
)

// ResolveImportTarget maps an imported path/identifier to a file node's
// path using the two-step scheme spec §4.F prescribes: exact match,
// then case-insensitive, then namespace-normalized (`A.B.C` → `C`). When
// none of those determine a single candidate, a last-resort fuzzy
// tie-break (Jaro-Winkler similarity, grounded in the teacher's
// internal/semantic/fuzzy_matcher.go) picks the closest remaining
// candidate so an import with a typo'd case or separator still has a
// chance to resolve, rather than silently failing.
func ResolveImportTarget(importSpec string, files []types.File) (string, bool) {
	spec := stripQuotesAndExt(importSpec)

	if path, ok := exactMatch(spec, files); ok {
		return path, true
	}
	if path, ok := caseInsensitiveMatch(spec, files); ok {
		return path, true
	}
	if path, ok := namespaceNormalizedMatch(spec, files); ok {
		return path, true
	}
	return fuzzyMatch(spec, files)
}

func stripQuotesAndExt(spec string) string {
	spec = strings.Trim(spec, `"'`)
	spec = strings.TrimPrefix(spec, "./")
	spec = strings.TrimPrefix(spec, "../")
	spec = strings.TrimSuffix(spec, ".ts")
	spec = strings.TrimSuffix(spec, ".tsx")
	spec = strings.TrimSuffix(spec, ".js")
	spec = strings.TrimSuffix(spec, ".py")
	return spec
}

func exactMatch(spec string, files []types.File) (string, bool) {
	for _, f := range files {
		withoutExt := strings.TrimSuffix(f.Path, extOf(f.Path))
		base := strings.TrimSuffix(baseName(f.Path), extOf(f.Path))
		if f.Path == spec || withoutExt == spec || base == spec {
			return f.Path, true
		}
	}
	return "", false
}

func caseInsensitiveMatch(spec string, files []types.File) (string, bool) {
	lower := strings.ToLower(spec)
	for _, f := range files {
		base := strings.ToLower(strings.TrimSuffix(f.Path, extOf(f.Path)))
		if base == lower {
			return f.Path, true
		}
	}
	return "", false
}

// namespaceNormalizedMatch handles `A.B.C` → `C` style qualified import
// specs (spec §4.F: "namespace-normalized, e.g., A.B.C → C").
func namespaceNormalizedMatch(spec string, files []types.File) (string, bool) {
	parts := strings.Split(spec, ".")
	last := parts[len(parts)-1]
	for _, f := range files {
		base := strings.TrimSuffix(baseName(f.Path), extOf(f.Path))
		if base == last {
			return f.Path, true
		}
	}
	return "", false
}

func fuzzyMatch(spec string, files []types.File) (string, bool) {
	best := ""
	bestScore := 0.0
	for _, f := range files {
		base := strings.TrimSuffix(baseName(f.Path), extOf(f.Path))
		score, err := edlib.StringsSimilarity(spec, base, edlib.JaroWinkler)
		if err != nil {
			continue
		}
		if float64(score) > bestScore {
			bestScore = float64(score)
			best = f.Path
		}
	}
	if bestScore >= 0.85 {
		return best, true
	}
	return "", false
}

func extOf(path string) string {
	if i := strings.LastIndexByte(path, '.'); i >= 0 {
		return path[i:]
	}
	return ""
}

func baseName(path string) string {
	if i := strings.LastIndexByte(path, '/'); i >= 0 {
		return path[i+1:]
	}
	return path
}
