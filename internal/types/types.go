// Package types defines the data model shared across codegraph: files,
// nodes, edges, unresolved references and vector entries, plus the
// deterministic ID scheme that keeps re-indexing idempotent.
package types

import "time"

// Common system-wide constants.
const (
	// DefaultMaxFileSize is the default ceiling (bytes) for files
	// considered during indexing; larger files are skipped as
	// OversizedFile. Matches typical source-file sizes while avoiding
	// memory blowups on generated or vendored files.
	DefaultMaxFileSize = 5 * 1024 * 1024

	// DefaultImpactDepth is a suggested depth for impact-radius queries;
	// ImpactRadius always takes its depth explicitly and does not apply it.
	DefaultImpactDepth = 3
)

// Kind enumerates the entity kinds a Node may carry, per spec §3.
type Kind string

const (
	KindFile        Kind = "file"
	KindModule      Kind = "module"
	KindClass       Kind = "class"
	KindStruct      Kind = "struct"
	KindInterface   Kind = "interface"
	KindTrait       Kind = "trait"
	KindEnum        Kind = "enum"
	KindFunction    Kind = "function"
	KindMethod      Kind = "method"
	KindConstructor Kind = "constructor"
	KindDestructor  Kind = "destructor"
	KindProperty    Kind = "property"
	KindField       Kind = "field"
	KindVariable    Kind = "variable"
	KindConstant    Kind = "constant"
	KindTypeAlias   Kind = "type_alias"
	KindRoute       Kind = "route"
	KindComponent   Kind = "component"
	KindParameter   Kind = "parameter"
	KindImport      Kind = "import"
	KindUnknown     Kind = "unknown"
)

// EdgeKind enumerates the directed relation kinds an Edge may carry.
type EdgeKind string

const (
	EdgeContains   EdgeKind = "contains"
	EdgeCalls      EdgeKind = "calls"
	EdgeImports    EdgeKind = "imports"
	EdgeExtends    EdgeKind = "extends"
	EdgeImplements EdgeKind = "implements"
	EdgeReturns    EdgeKind = "returns"
	EdgeTypeOf     EdgeKind = "type_of"
	EdgeReads      EdgeKind = "reads"
	EdgeWrites     EdgeKind = "writes"
)

// ResolvedBy records which resolution pass produced an edge's target, for
// diagnostics and confidence provenance (spec §4.F).
type ResolvedBy string

const (
	ResolvedByStructural ResolvedBy = "structural"
	ResolvedByLocal      ResolvedBy = "local"
	ResolvedByClass      ResolvedBy = "class"
	ResolvedByImport     ResolvedBy = "import"
	ResolvedByFramework  ResolvedBy = "framework"
	ResolvedByGlobal     ResolvedBy = "global"
)

// Range is a half-open-by-line/column source range, 1-indexed lines and
// 0-indexed columns to match tree-sitter's point convention.
type Range struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// File is the record for one source file under the project root (spec §3).
type File struct {
	Path         string // relative to project root; primary key
	Language     string
	ContentHash  uint64
	Size         int64
	ModifiedAt   time.Time
	LastIndexed  time.Time
}

// Node is a named entity extracted from source (spec §3).
type Node struct {
	ID            string // deterministic, see DeriveNodeID
	Kind          Kind
	Name          string
	QualifiedName string
	Language      string
	FilePath      string
	Range         Range
	Signature     string
	Docstring     string
	IsExported    bool
	UpdatedAt     time.Time
}

// Edge is a directed typed relation between two nodes (spec §3).
//
// Target is unresolved until ResolvedTargetID is non-empty; TargetSymbol
// retains the name-based reference so callers/searches can still find it.
type Edge struct {
	ID                uint64 // derived, not stable across schema versions; use Source/Target/Kind/SourceRange for identity
	Source            string
	Kind              EdgeKind
	TargetSymbol      string
	ResolvedTargetID  string
	Confidence        float64
	ResolvedBy        ResolvedBy
	SourceRange       Range
	SourceFilePath    string // denormalized, used by deleteEdgesByFile
}

// Resolved reports whether the edge's target has been bound to a node ID.
func (e Edge) Resolved() bool {
	return e.ResolvedTargetID != ""
}

// UnresolvedReference is the intermediate produced by the extractor and
// consumed by the reference resolver (spec §3).
type UnresolvedReference struct {
	SourceNodeID  string
	SourceFile    string
	ReferenceName string
	Qualifier     string
	Kind          EdgeKind
	Position      Range
}

// VectorEntry is one embedding stored for a node (spec §4.I).
type VectorEntry struct {
	NodeID    string
	Embedding []float32
	ModelName string
}
