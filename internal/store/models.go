package store

import "time"

// Gorm-backed row models for codegraph's relational store (spec §4.A).
// Kept deliberately flat (no gorm.Model embedding, no foreign-key structs)
// so the mapping to/from internal/types stays a pure, auditable function —
// the same separation the teacher draws between its wire/query types and
// its internal symbol model.

type fileRow struct {
	Path        string `gorm:"primaryKey"`
	Language    string
	ContentHash uint64 `gorm:"index"`
	Size        int64
	ModifiedAt  time.Time
	LastIndexed time.Time
}

func (fileRow) TableName() string { return "files" }

type nodeRow struct {
	ID            string `gorm:"primaryKey"`
	Kind          string `gorm:"index:idx_node_kind"`
	Name          string `gorm:"index:idx_node_name"`
	QualifiedName string
	Language      string
	FilePath      string `gorm:"index:idx_node_file"`
	StartLine     int
	StartColumn   int
	EndLine       int
	EndColumn     int
	Signature     string
	Docstring     string
	IsExported    bool
	UpdatedAt     time.Time
}

func (nodeRow) TableName() string { return "nodes" }

type edgeRow struct {
	Fingerprint      uint64 `gorm:"primaryKey"` // DeriveEdgeFingerprint(source,kind,targetSymbol,sourceRange)
	Source           string `gorm:"index:idx_edge_source"`
	Kind             string `gorm:"index:idx_edge_kind"`
	TargetSymbol     string
	ResolvedTargetID string `gorm:"index:idx_edge_target"`
	Confidence       float64
	ResolvedBy       string
	SourceStartLine  int
	SourceStartCol   int
	SourceEndLine    int
	SourceEndCol     int
	SourceFilePath   string `gorm:"index:idx_edge_source_file"` // indexed for deleteEdgesByFile
}

func (edgeRow) TableName() string { return "edges" }

type vectorRow struct {
	NodeID    string `gorm:"primaryKey"`
	ModelName string
	Dims      int
	Embedding []byte // little-endian float32 blob, see codec.go
}

func (vectorRow) TableName() string { return "vectors" }

type schemaVersionRow struct {
	ID      int `gorm:"primaryKey"`
	Version int
}

func (schemaVersionRow) TableName() string { return "schema_version" }
