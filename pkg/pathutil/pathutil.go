// Package pathutil converts between absolute and relative paths and
// enforces spec §6's path-escape boundary: every externally supplied
// path must resolve, after normalization, to a descendant of the project
// root.
//
// Architecture pattern carried over from the teacher (standardbeagle/lci
// pkg/pathutil): codegraph stores paths as project-relative internally
// for portability and hashes across machines, but accepts absolute paths
// at its external boundary and must validate and relativize them there.
package pathutil

import (
	"path/filepath"
	"strings"

	cgerrors "github.com/codegraphhq/codegraph/internal/errors"
)

// ToRelative converts an absolute path to one relative to root. A path
// that is already relative is returned cleaned; an absolute path outside
// root, or one that cannot be made relative, is returned cleaned but
// still absolute.
func ToRelative(path, root string) string {
	if path == "" || root == "" {
		return path
	}
	if !filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	path = filepath.Clean(path)
	root = filepath.Clean(root)

	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return path
	}
	return rel
}

// Validate resolves path against root and rejects it with a PathEscape
// error (spec §6) if the result is not a descendant of root. Accepts
// both absolute and root-relative input. Returns the project-relative
// path on success.
func Validate(path, root string) (string, error) {
	root = filepath.Clean(root)

	abs := path
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, abs)
	}
	abs = filepath.Clean(abs)

	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return "", cgerrors.New(cgerrors.PathEscape, "validate_path", err).WithFile(path)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", cgerrors.New(cgerrors.PathEscape, "validate_path", nil).WithFile(path)
	}
	if rel == "." {
		return "", nil
	}
	return filepath.ToSlash(rel), nil
}
