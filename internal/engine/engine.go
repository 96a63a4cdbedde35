// Package engine is codegraph's top-level facade: it owns the project
// directory (spec §6), wires store, parser pool, framework resolver
// registry, reference resolver, graph traversal and vector index
// together, and exposes the operations a CLI or embedding host drives —
// Initialize, Open, FullIndex, Sync, Search and the graph/vector
// queries. Grounded in the teacher's internal/indexing (project
// initializer + pipeline orchestration: standardbeagle/lci
// project_initializer.go and pipeline.go wire the same set of
// collaborators behind one entry point) and
// internal/symbollinker/linker_engine.go's "engine" naming for the
// extract-then-resolve orchestrator.
package engine

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	"golang.org/x/sync/errgroup"

	"github.com/codegraphhq/codegraph/internal/config"
	cgerrors "github.com/codegraphhq/codegraph/internal/errors"
	"github.com/codegraphhq/codegraph/internal/extractor"
	"github.com/codegraphhq/codegraph/internal/graph"
	"github.com/codegraphhq/codegraph/internal/parser"
	"github.com/codegraphhq/codegraph/internal/reference"
	"github.com/codegraphhq/codegraph/internal/resolvers"
	"github.com/codegraphhq/codegraph/internal/security"
	"github.com/codegraphhq/codegraph/internal/store"
	"github.com/codegraphhq/codegraph/internal/sync"
	"github.com/codegraphhq/codegraph/internal/types"
	"github.com/codegraphhq/codegraph/internal/vectorindex"
	"github.com/codegraphhq/codegraph/pkg/pathutil"
)

// storeDirName is the sibling directory the core owns under the project
// root (spec §6: "a sibling directory under the project root containing:
// the persistent store; a configuration document").
const storeDirName = ".codegraph/store"

// EmbeddingProvider is the external embedding model (spec §4.I: "the
// embedding model itself is external"). Engine never implements one
// itself; callers that enable embeddings supply it.
type EmbeddingProvider interface {
	ModelName() string
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Warning is one contained, per-file indexing problem (spec §7:
// ParseFailure/LanguageUnsupported/OversizedFile are "skipped; warning",
// never fatal for other files).
type Warning struct {
	Path    string
	Kind    cgerrors.Kind
	Message string
}

// IndexSummary is the result of a FullIndex run.
type IndexSummary struct {
	FilesIndexed   int
	NodesExtracted int
	EdgesExtracted int
	Warnings       []Warning
}

// Engine is the wired collaborator set for one open project.
type Engine struct {
	root       string
	cfg        *config.Config
	store      *store.Store
	pool       *parser.Pool
	registry   *resolvers.Registry
	graph      *graph.Graph
	vectors    *vectorindex.Index
	syncer     *sync.Sync
	validator  *security.Validator
	embeddings EmbeddingProvider
}

func defaultRegistry() *resolvers.Registry {
	return resolvers.NewRegistry(resolvers.NewRouteResolver(), resolvers.NewDIResolver())
}

// Initialize creates a new project directory at root (spec §6): writes
// the default (or caller-supplied) config and opens a fresh store.
// Returns AlreadyInitialized if root already has a store.
func Initialize(root string, cfg *config.Config) (*Engine, error) {
	storeDir := filepath.Join(root, storeDirName)
	if _, err := os.Stat(filepath.Join(storeDir, "graph.sqlite")); err == nil {
		return nil, cgerrors.New(cgerrors.AlreadyInitialized, "initialize", nil).WithFile(root)
	}
	if cfg == nil {
		cfg = config.Default()
	}
	if err := config.Save(root, cfg); err != nil {
		return nil, err
	}
	return open(root, cfg)
}

// Open loads an existing project at root. Returns NotInitialized if no
// store exists there yet.
func Open(root string) (*Engine, error) {
	storeDir := filepath.Join(root, storeDirName)
	if _, err := os.Stat(filepath.Join(storeDir, "graph.sqlite")); err != nil {
		return nil, cgerrors.New(cgerrors.NotInitialized, "open", err).WithFile(root)
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, err
	}
	return open(root, cfg)
}

func open(root string, cfg *config.Config) (*Engine, error) {
	st, err := store.Open(filepath.Join(root, storeDirName))
	if err != nil {
		return nil, err
	}
	cfg.Exclude = appendMissing(cfg.Exclude, config.DetectBuildExclusions(root))
	e := &Engine{
		root:      root,
		cfg:       cfg,
		store:     st,
		pool:      parser.NewPool(),
		registry:  defaultRegistry(),
		graph:     graph.New(st),
		vectors:   vectorindex.New(st),
		validator: security.NewValidator(cfg.MaxFileSize),
	}
	e.syncer = sync.New(root, st, e.pool, cfg, e.registry)
	return e, nil
}

// SetEmbeddingProvider wires the external embedding model used by
// IndexEmbeddings/SemanticSearch. A nil provider disables embeddings
// regardless of cfg.EnableEmbeddings.
func (e *Engine) SetEmbeddingProvider(p EmbeddingProvider) { e.embeddings = p }

// Config returns the project's current configuration.
func (e *Engine) Config() *config.Config { return e.cfg }

// Graph exposes the read-only traversal API (spec §4.G).
func (e *Engine) Graph() *graph.Graph { return e.graph }

// VectorIndex exposes the semantic search API (spec §4.I).
func (e *Engine) VectorIndex() *vectorindex.Index { return e.vectors }

// Close releases the store and any held lock.
func (e *Engine) Close() error { return e.store.Close() }

// FullIndex walks the whole project and (re)indexes every matching file,
// honoring the concurrency model of spec §5: extraction fans out across
// files in parallel (bounded by errgroup's default unlimited-but-file-
// count-bounded fan-out here, since each goroutine only holds an
// immutable grammar and its own parse tree), and results are committed
// to the store serially by the calling goroutine, one file at a time.
func (e *Engine) FullIndex(ctx context.Context) (IndexSummary, error) {
	var summary IndexSummary
	e.validator.MaxFileSize = e.cfg.MaxFileSize // honor the config as it stands now, not as it was at Open

	candidates, err := e.enumerate()
	if err != nil {
		return summary, err
	}
	slog.Info("full index starting", "root", e.root, "candidates", len(candidates))

	type fileResult struct {
		path     string
		result   extractor.Result
		err      error
		warnKind cgerrors.Kind
	}
	results := make([]fileResult, len(candidates))

	g, gctx := errgroup.WithContext(ctx)
	for i, path := range candidates {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return nil // cancellation observed at a file boundary, per spec §5
			}
			res, warnKind, err := e.extractOne(path)
			results[i] = fileResult{path: path, result: res, err: err, warnKind: warnKind}
			return nil // per-file failures are contained, never abort the group
		})
	}
	if err := g.Wait(); err != nil {
		return summary, err
	}

	for _, r := range results {
		if r.err != nil {
			slog.Warn("skipping file", "path", r.path, "kind", r.warnKind, "error", r.err)
			summary.Warnings = append(summary.Warnings, Warning{Path: r.path, Kind: r.warnKind, Message: r.err.Error()})
			continue
		}
		if len(r.result.Nodes) == 0 {
			continue // vanished between enumeration and extraction; nothing to commit
		}
		if r.result.ParseFailed {
			summary.Warnings = append(summary.Warnings, Warning{Path: r.path, Kind: cgerrors.ParseFailure, Message: "parsed with errors"})
		}
		if e.registry != nil {
			content, readErr := os.ReadFile(filepath.Join(e.root, r.path))
			if readErr == nil {
				r.result.Nodes = append(r.result.Nodes, e.registry.ExtractNodes(e.projectContext(), r.path, content)...)
			}
		}
		if err := e.store.UpsertNodes(r.result.Nodes); err != nil {
			return summary, err
		}
		if err := e.store.UpsertEdges(r.result.Edges); err != nil {
			return summary, err
		}
		content, _ := os.ReadFile(filepath.Join(e.root, r.path))
		lang, _ := config.LanguageForPath(r.path)
		if err := e.store.UpsertFile(types.File{
			Path:        r.path,
			Language:    lang,
			ContentHash: types.HashContent(content),
			Size:        int64(len(content)),
		}); err != nil {
			return summary, err
		}
		summary.FilesIndexed++
		summary.NodesExtracted += len(r.result.Nodes)
		summary.EdgesExtracted += len(r.result.Edges)
	}

	if err := e.resolveAll(); err != nil {
		return summary, err
	}
	slog.Info("full index complete", "files", summary.FilesIndexed, "nodes", summary.NodesExtracted,
		"edges", summary.EdgesExtracted, "warnings", len(summary.Warnings))
	return summary, nil
}

// extractOne parses one candidate file, classifying a failure as either
// a contained warning (unsupported language, oversized, parse error) or
// a hard error. A file that vanished or became unreadable between
// enumeration and extraction (a benign race on a live filesystem) is
// skipped silently, the same way sync's partition pass treats it.
func (e *Engine) extractOne(path string) (extractor.Result, cgerrors.Kind, error) {
	full := filepath.Join(e.root, path)
	info, err := os.Stat(full)
	if err != nil {
		return extractor.Result{}, "", nil
	}
	if e.validator.Oversized(info.Size()) {
		return extractor.Result{}, cgerrors.OversizedFile, cgerrors.New(cgerrors.OversizedFile, "extract", nil).WithFile(path)
	}
	language, ok := config.LanguageForPath(path)
	if !ok {
		return extractor.Result{}, cgerrors.LanguageUnsupported, cgerrors.New(cgerrors.LanguageUnsupported, "extract", nil).WithFile(path)
	}
	content, err := os.ReadFile(full)
	if err != nil {
		return extractor.Result{}, "", nil
	}
	if security.IsBinary(content) {
		return extractor.Result{}, cgerrors.LanguageUnsupported, cgerrors.New(cgerrors.LanguageUnsupported, "extract", nil).WithFile(path)
	}
	res, err := extractor.Extract(e.pool, language, path, content)
	if res.ParseFailed {
		// A parse error is contained, not fatal (spec §7): the synthetic
		// file node and whatever symbols parsed before the error region
		// still get committed; only the warning propagates.
		return res, cgerrors.ParseFailure, nil
	}
	if err != nil {
		return res, cgerrors.LanguageUnsupported, err
	}
	return res, "", nil
}

// enumerate lists every project-relative candidate path matching the
// configured include/exclude glob sets and language allowlist, with a
// recognized extension (spec §6's closed extension table).
func (e *Engine) enumerate() ([]string, error) {
	var candidates []string
	walkErr := filepath.Walk(e.root, func(path string, info os.FileInfo, err error) error {
		if err != nil || info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(e.root, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if !matchesAny(e.cfg.Include, rel) || matchesAny(e.cfg.Exclude, rel) {
			return nil
		}
		lang, ok := config.LanguageForPath(rel)
		if !ok || !e.cfg.Enabled(lang) {
			return nil
		}
		candidates = append(candidates, rel)
		return nil
	})
	if walkErr != nil {
		return nil, cgerrors.New(cgerrors.NotInitialized, "enumerate", walkErr)
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

// appendMissing adds every pattern in extra not already present in base,
// so re-opening a project doesn't keep growing its exclude list with
// duplicates of its own build-artifact detection.
func appendMissing(base, extra []string) []string {
	have := make(map[string]bool, len(base))
	for _, p := range base {
		have[p] = true
	}
	for _, p := range extra {
		if !have[p] {
			base = append(base, p)
			have[p] = true
		}
	}
	return base
}

// resolveAll runs every resolver pass against every currently unresolved
// edge in the store — the full-index counterpart of Sync's restricted
// pass (spec §4.F, §4.H).
func (e *Engine) resolveAll() error {
	resolver := reference.New(e.store, e.registry, e.projectContext())
	edges, err := e.store.GetUnresolvedEdges()
	if err != nil {
		return err
	}
	for _, edge := range edges {
		ref := types.UnresolvedReference{
			SourceNodeID:  edge.Source,
			SourceFile:    edge.SourceFilePath,
			ReferenceName: edge.TargetSymbol,
			Kind:          edge.Kind,
			Position:      edge.SourceRange,
		}
		if _, err := resolver.ResolveAndPersist(ref); err != nil {
			return err
		}
	}
	return nil
}

// Sync performs one incremental re-index pass (spec §4.H), delegating to
// internal/sync.
func (e *Engine) Sync(ctx context.Context) (sync.Summary, error) {
	return e.syncer.Run(ctx)
}

// IndexEmbeddings computes and stores embeddings for every node in nodes,
// using the configured EmbeddingProvider; nodes that already have a vector
// are embedded again and overwritten. Returns EmbeddingUnavailable
// if embeddings are disabled or no provider is wired.
func (e *Engine) IndexEmbeddings(ctx context.Context, nodes []types.Node) error {
	if !e.cfg.EnableEmbeddings || e.embeddings == nil {
		return cgerrors.New(cgerrors.EmbeddingUnavailable, "index_embeddings", nil)
	}
	texts := make([]string, len(nodes))
	for i, n := range nodes {
		texts[i] = vectorindex.SemanticText(n)
	}
	vecs, err := e.embeddings.Embed(ctx, texts)
	if err != nil {
		return cgerrors.New(cgerrors.EmbeddingUnavailable, "index_embeddings", err)
	}
	entries := make([]types.VectorEntry, 0, len(nodes))
	for i, n := range nodes {
		if i >= len(vecs) {
			break
		}
		entries = append(entries, types.VectorEntry{NodeID: n.ID, Embedding: vecs[i], ModelName: e.embeddings.ModelName()})
	}
	return e.vectors.StoreVectorBatch(entries)
}

// SemanticSearch embeds query text and searches the vector index (spec
// §4.I). Fails with EmbeddingUnavailable if no provider is wired;
// structural queries are unaffected by this, per spec §7.
func (e *Engine) SemanticSearch(ctx context.Context, queryText string, opts vectorindex.SearchOptions) ([]vectorindex.SearchResult, error) {
	if e.embeddings == nil {
		return nil, cgerrors.New(cgerrors.EmbeddingUnavailable, "semantic_search", nil)
	}
	vecs, err := e.embeddings.Embed(ctx, []string{queryText})
	if err != nil || len(vecs) == 0 {
		return nil, cgerrors.New(cgerrors.EmbeddingUnavailable, "semantic_search", err)
	}
	return e.vectors.Search(vecs[0], opts)
}

// SearchByName is the structural query surface (spec §6: "Structural
// query results are plain records").
func (e *Engine) SearchByName(name string) ([]types.Node, error) {
	return e.store.GetNodesByName(name)
}

// SearchByKind returns every node of the given kind.
func (e *Engine) SearchByKind(kind types.Kind) ([]types.Node, error) {
	return e.store.GetNodesByKind(kind)
}

// NodesInFile returns every node sourced from path, which may be given
// absolute or root-relative. Validates path against the project root
// (spec §6's path-escape boundary) before querying the store.
func (e *Engine) NodesInFile(path string) ([]types.Node, error) {
	rel, err := pathutil.Validate(path, e.root)
	if err != nil {
		return nil, err
	}
	return e.store.GetNodesByFile(rel)
}

func (e *Engine) projectContext() resolvers.Context {
	return &engineContext{root: e.root, store: e.store}
}

// engineContext adapts Engine's store to resolvers.Context, the same
// read-only surface internal/sync builds for its own resolver passes.
type engineContext struct {
	root  string
	store *store.Store
}

func (c *engineContext) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(filepath.Join(c.root, path))
}

func (c *engineContext) FileExists(path string) bool {
	_, err := os.Stat(filepath.Join(c.root, path))
	return err == nil
}

func (c *engineContext) AllFiles() []string {
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

func (c *engineContext) NodesInFile(path string) []types.Node {
	nodes, err := c.store.GetNodesByFile(path)
	if err != nil {
		return nil
	}
	return nodes
}
