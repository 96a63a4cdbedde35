// Package sync implements spec §4.H: content-hash-driven incremental
// re-indexing. Grounded in the teacher's internal/indexing package
// (standardbeagle/lci) — file_content_store.go's quick-equality hash
// check and the add/modified/removed partitioning pattern driving its
// incremental rebuild — generalized from lci's MCP-server-triggered
// rebuild into a synchronous Run() any caller can drive directly.
package sync

import (
	"context"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/codegraphhq/codegraph/internal/config"
	cgerrors "github.com/codegraphhq/codegraph/internal/errors"
	"github.com/codegraphhq/codegraph/internal/extractor"
	"github.com/codegraphhq/codegraph/internal/parser"
	"github.com/codegraphhq/codegraph/internal/reference"
	"github.com/codegraphhq/codegraph/internal/resolvers"
	"github.com/codegraphhq/codegraph/internal/security"
	"github.com/codegraphhq/codegraph/internal/store"
	"github.com/codegraphhq/codegraph/internal/types"
)

// Store is the subset of *store.Store Sync needs, beyond what
// reference.Store already names.
type Store interface {
	reference.Store
	UpsertFile(f types.File) error
	DeleteFile(path string) error
	UpsertNodes(nodes []types.Node) error
	UpsertEdges(edges []types.Edge) error
	DeleteNodesByFile(path string) error
	DeleteEdgesByFile(path string) error
	GetFile(path string) (types.File, bool, error)
	GetUnresolvedEdges(sourceFiles ...string) ([]types.Edge, error)
}

var _ Store = (*store.Store)(nil)

// Summary is the result of one Run (spec §4.H step 6).
type Summary struct {
	FilesAdded    int
	FilesModified int
	FilesRemoved  int
	FilesChecked  int
	Errors        []error
}

// Sync orchestrates change detection, re-extraction and restricted
// re-resolution over a project root.
type Sync struct {
	root      string
	store     Store
	pool      *parser.Pool
	cfg       *config.Config
	registry  *resolvers.Registry
	validator *security.Validator
}

func New(root string, store Store, pool *parser.Pool, cfg *config.Config, registry *resolvers.Registry) *Sync {
	return &Sync{root: root, store: store, pool: pool, cfg: cfg, registry: registry, validator: security.NewValidator(cfg.MaxFileSize)}
}

type partition struct {
	added    []string
	modified []string
	removed  []string
}

// Run performs one full sync pass (spec §4.H steps 1-6).
func (s *Sync) Run(ctx context.Context) (Summary, error) {
	var summary Summary

	candidates, err := s.enumerateCandidates()
	if err != nil {
		return summary, err
	}
	summary.FilesChecked = len(candidates)

	known, err := s.store.AllFiles()
	if err != nil {
		return summary, err
	}
	knownByPath := make(map[string]types.File, len(known))
	for _, f := range known {
		knownByPath[f.Path] = f
	}

	part, err := s.partition(candidates, knownByPath)
	if err != nil {
		return summary, err
	}
	summary.FilesAdded = len(part.added)
	summary.FilesModified = len(part.modified)
	summary.FilesRemoved = len(part.removed)

	for _, path := range part.removed {
		if err := ctx.Err(); err != nil {
			return summary, nil
		}
		if err := s.store.DeleteFile(path); err != nil {
			summary.Errors = append(summary.Errors, err)
		}
	}

	touched := append(append([]string{}, part.added...), part.modified...)
	sort.Strings(touched)

	newlyAddedNames := map[string]bool{}
	for _, path := range touched {
		if err := ctx.Err(); err != nil {
			return summary, nil
		}
		names, err := s.reindexFile(path)
		if err != nil {
			summary.Errors = append(summary.Errors, err)
			continue
		}
		for _, n := range names {
			newlyAddedNames[n] = true
		}
	}

	if err := s.resolveRestricted(touched, newlyAddedNames); err != nil {
		summary.Errors = append(summary.Errors, err)
	}

	slog.Info("sync complete", "added", summary.FilesAdded, "modified", summary.FilesModified,
		"removed", summary.FilesRemoved, "checked", summary.FilesChecked, "errors", len(summary.Errors))
	return summary, nil
}

// enumerateCandidates walks the project root, filtering by the
// configured include/exclude glob sets and maximum file size (spec §4.H
// step 1).
func (s *Sync) enumerateCandidates() ([]string, error) {
	var candidates []string
	walkErr := filepath.WalkDir(s.root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip unreadable entries rather than aborting the whole walk
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(s.root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		if !matchesAny(s.cfg.Include, rel) || matchesAny(s.cfg.Exclude, rel) {
			return nil
		}
		if _, ok := config.LanguageForPath(rel); !ok {
			return nil
		}
		info, err := d.Info()
		if err != nil || s.validator.Oversized(info.Size()) {
			return nil
		}
		candidates = append(candidates, rel)
		return nil
	})
	if walkErr != nil {
		return nil, cgerrors.New(cgerrors.NotInitialized, "enumerate_candidates", walkErr)
	}
	sort.Strings(candidates)
	return candidates, nil
}

func matchesAny(patterns []string, path string) bool {
	for _, p := range patterns {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}

// partition compares each candidate's current content hash/size against
// the store's record (spec §4.H steps 2-3).
func (s *Sync) partition(candidates []string, known map[string]types.File) (partition, error) {
	var part partition
	seen := map[string]bool{}

	for _, rel := range candidates {
		seen[rel] = true
		content, err := os.ReadFile(filepath.Join(s.root, rel))
		if err != nil {
			continue
		}
		hash := types.HashContent(content)

		existing, ok := known[rel]
		switch {
		case !ok:
			part.added = append(part.added, rel)
		case existing.ContentHash != hash || existing.Size != int64(len(content)):
			part.modified = append(part.modified, rel)
		}
	}

	for path := range known {
		if !seen[path] {
			part.removed = append(part.removed, path)
		}
	}
	sort.Strings(part.removed)
	return part, nil
}

// reindexFile removes any existing nodes/edges sourced from path,
// re-runs extraction and the framework node hooks, and writes the result
// (spec §4.H step 5, first half). It returns the names of every node
// the file newly contributes, for the forward-discovery resolution pass.
func (s *Sync) reindexFile(path string) ([]string, error) {
	if err := s.store.DeleteNodesByFile(path); err != nil {
		return nil, err
	}
	if err := s.store.DeleteEdgesByFile(path); err != nil {
		return nil, err
	}

	content, err := os.ReadFile(filepath.Join(s.root, path))
	if err != nil {
		return nil, cgerrors.New(cgerrors.NotInitialized, "reindex_file", err).WithFile(path)
	}
	if security.IsBinary(content) {
		return nil, nil
	}
	language, _ := config.LanguageForPath(path)

	result, err := extractor.Extract(s.pool, language, path, content)
	if err != nil && language == "" {
		return nil, cgerrors.New(cgerrors.LanguageUnsupported, "reindex_file", err).WithFile(path)
	}
	// A parse error otherwise still yields the synthetic file node plus
	// whatever symbols parsed (result.ParseFailed is set); it is not treated
	// as fatal, so one malformed file doesn't abort the whole sync, and it
	// is not reported in the Summary.

	if s.registry != nil {
		result.Nodes = append(result.Nodes, s.registry.ExtractNodes(s.projectContext(), path, content)...)
	}

	if err := s.store.UpsertNodes(result.Nodes); err != nil {
		return nil, err
	}
	if err := s.store.UpsertEdges(result.Edges); err != nil {
		return nil, err
	}

	if err := s.store.UpsertFile(types.File{
		Path:        path,
		Language:    language,
		ContentHash: types.HashContent(content),
		Size:        int64(len(content)),
	}); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(result.Nodes))
	for _, n := range result.Nodes {
		names = append(names, n.Name)
	}
	return names, nil
}

// resolveRestricted re-runs resolver passes restricted to references
// whose source node lives in a touched file, plus any previously
// unresolved reference whose name now matches a newly added node (spec
// §4.H step 5, second half).
func (s *Sync) resolveRestricted(touched []string, newlyAdded map[string]bool) error {
	resolver := reference.New(s.store, s.registry, s.projectContext())

	restricted, err := s.store.GetUnresolvedEdges(touched...)
	if err != nil {
		return err
	}

	forward, err := s.store.GetUnresolvedEdges()
	if err != nil {
		return err
	}

	seen := map[uint64]bool{}
	var refs []types.UnresolvedReference
	for _, e := range restricted {
		refs = append(refs, edgeToRef(e))
		seen[e.ID] = true
	}
	for _, e := range forward {
		if seen[e.ID] {
			continue
		}
		if newlyAdded[e.TargetSymbol] {
			refs = append(refs, edgeToRef(e))
		}
	}

	for _, ref := range refs {
		if _, err := resolver.ResolveAndPersist(ref); err != nil {
			return err
		}
	}
	return nil
}

func edgeToRef(e types.Edge) types.UnresolvedReference {
	return types.UnresolvedReference{
		SourceNodeID:  e.Source,
		SourceFile:    e.SourceFilePath,
		ReferenceName: e.TargetSymbol,
		Kind:          e.Kind,
		Position:      e.SourceRange,
	}
}

// projectContext builds a resolvers.Context backed by the project root
// and store, for the framework resolver registry's Detect/ExtractNodes/
// Resolve hooks.
func (s *Sync) projectContext() resolvers.Context {
	return &projectContext{root: s.root, store: s.store}
}

type projectContext struct {
	root  string
	store Store
}

func (c *projectContext) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(c.root, path))
}

func (c *projectContext) FileExists(path string) bool {
	_, err := os.Stat(filepath.Join(c.root, path))
	return err == nil
}

func (c *projectContext) AllFiles() []string {
	files, err := c.store.AllFiles()
	if err != nil {
		return nil
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}
	return paths
}

func (c *projectContext) NodesInFile(path string) []types.Node {
	nodes, err := c.store.GetNodesByFile(path)
	if err != nil {
		return nil
	}
	return nodes
}
