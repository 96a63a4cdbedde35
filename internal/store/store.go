// Package store is codegraph's persistent relational backing store (spec
// §4.A): nodes, edges, files and vectors in SQLite via gorm, with schema
// migrations and a single-writer advisory lock. Grounded in termfx/morfx's
// db package (gorm + gorm.io/driver/sqlite, hand-written migrations) —
// the teacher (standardbeagle/lci) keeps everything in memory and never
// persists across runs, so this component is adopted from the rest of the
// retrieval pack rather than adapted line-by-line from the teacher.
package store

import (
	"os"
	"path/filepath"
	"sort"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	cgerrors "github.com/codegraphhq/codegraph/internal/errors"
	"github.com/codegraphhq/codegraph/internal/types"
)

// Store wraps a gorm.DB and the store's write lock. All public mutations
// are flushed before returning (spec §4.A's durability contract) — SQLite
// with gorm's default synchronous commit gives this for free; no
// additional buffering layer sits in front of it.
type Store struct {
	db   *gorm.DB
	lock *WriteLock
	dir  string
}

// Open opens (creating if necessary) the store rooted at dir, running any
// pending migrations. dir is typically <projectRoot>/.codegraph/store.
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, cgerrors.New(cgerrors.StoreIntegrity, "open_store", err)
	}
	dbPath := filepath.Join(dir, "graph.sqlite")

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, cgerrors.New(cgerrors.StoreIntegrity, "open_store", err)
	}
	if err := runMigrations(db); err != nil {
		return nil, err
	}

	return &Store{db: db, lock: NewWriteLock(dir), dir: dir}, nil
}

// withWriteLock runs fn while holding the store's single-writer lock.
func (s *Store) withWriteLock(fn func() error) error {
	release, err := s.lock.Acquire()
	if err != nil {
		return err
	}
	defer release()
	return fn()
}

// UpsertFile creates or updates a file record.
func (s *Store) UpsertFile(f types.File) error {
	return s.withWriteLock(func() error {
		row := fileToRow(f)
		return s.db.Save(&row).Error
	})
}

// DeleteFile removes the file record at path and cascades to every node
// and edge sourced from it (spec §3: "Deletion cascades to all nodes
// whose filePath equals the deleted path").
func (s *Store) DeleteFile(path string) error {
	return s.withWriteLock(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Where("file_path = ?", path).Delete(&nodeRow{}).Error; err != nil {
				return err
			}
			if err := tx.Where("source_file_path = ?", path).Delete(&edgeRow{}).Error; err != nil {
				return err
			}
			return tx.Where("path = ?", path).Delete(&fileRow{}).Error
		})
	})
}

// UpsertNode creates or updates a node.
func (s *Store) UpsertNode(n types.Node) error {
	return s.withWriteLock(func() error {
		row := nodeToRow(n)
		return s.db.Save(&row).Error
	})
}

// UpsertNodes writes a batch of nodes in a single transaction (spec §4.A:
// "Bulk extractor writes are batched inside a single transaction per file
// for throughput").
func (s *Store) UpsertNodes(nodes []types.Node) error {
	if len(nodes) == 0 {
		return nil
	}
	return s.withWriteLock(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			for _, n := range nodes {
				row := nodeToRow(n)
				if err := tx.Save(&row).Error; err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// DeleteNodesByFile removes every node sourced from path.
func (s *Store) DeleteNodesByFile(path string) error {
	return s.withWriteLock(func() error {
		return s.db.Where("file_path = ?", path).Delete(&nodeRow{}).Error
	})
}

// UpsertEdge creates or updates an edge, keyed by its identity fingerprint
// (source, target symbol, kind, source range — spec §3's edge identity).
func (s *Store) UpsertEdge(e types.Edge) error {
	return s.withWriteLock(func() error {
		row := edgeToRow(e)
		return s.db.Save(&row).Error
	})
}

// UpsertEdges writes a batch of edges in a single transaction.
func (s *Store) UpsertEdges(edges []types.Edge) error {
	if len(edges) == 0 {
		return nil
	}
	return s.withWriteLock(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			for _, e := range edges {
				row := edgeToRow(e)
				if err := tx.Save(&row).Error; err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// ResolveEdge atomically updates an edge's resolution fields. Spec §5:
// "an edge never appears in the store unresolved and then resolved in
// the same externally-observed transaction — resolution is a single
// atomic update per edge" — this is that single update.
func (s *Store) ResolveEdge(fingerprint uint64, resolvedTargetID string, confidence float64, by types.ResolvedBy) error {
	return s.withWriteLock(func() error {
		return s.db.Model(&edgeRow{}).Where("fingerprint = ?", fingerprint).Updates(map[string]any{
			"resolved_target_id": resolvedTargetID,
			"confidence":         confidence,
			"resolved_by":        string(by),
		}).Error
	})
}

// DeleteEdgesByFile removes every edge sourced from path (edges are
// indexed by source file for this purpose, per spec §4.A).
func (s *Store) DeleteEdgesByFile(path string) error {
	return s.withWriteLock(func() error {
		return s.db.Where("source_file_path = ?", path).Delete(&edgeRow{}).Error
	})
}

// GetNodeByID is a point lookup; returns (zero, false) if absent.
func (s *Store) GetNodeByID(id string) (types.Node, bool, error) {
	var row nodeRow
	err := s.db.First(&row, "id = ?", id).Error
	if err == gorm.ErrRecordNotFound {
		return types.Node{}, false, nil
	}
	if err != nil {
		return types.Node{}, false, cgerrors.New(cgerrors.StoreIntegrity, "get_node", err)
	}
	return rowToNode(row), true, nil
}

// GetNodesByFile returns every node sourced from path, ordered by
// (filePath, startLine) for deterministic traversal (spec §4.G).
func (s *Store) GetNodesByFile(path string) ([]types.Node, error) {
	var rows []nodeRow
	if err := s.db.Where("file_path = ?", path).Order("start_line asc").Find(&rows).Error; err != nil {
		return nil, cgerrors.New(cgerrors.StoreIntegrity, "get_nodes_by_file", err)
	}
	return mapNodes(rows), nil
}

// GetNodesByKind returns every node of the given kind.
func (s *Store) GetNodesByKind(kind types.Kind) ([]types.Node, error) {
	var rows []nodeRow
	if err := s.db.Where("kind = ?", string(kind)).Order("file_path asc, start_line asc").Find(&rows).Error; err != nil {
		return nil, cgerrors.New(cgerrors.StoreIntegrity, "get_nodes_by_kind", err)
	}
	return mapNodes(rows), nil
}

// GetNodesByName returns every node whose simple Name matches name,
// ordered by file path for the global-fallback resolver pass's
// lex-order tie-break (spec §4.F pass 5).
func (s *Store) GetNodesByName(name string) ([]types.Node, error) {
	var rows []nodeRow
	if err := s.db.Where("name = ?", name).Order("file_path asc, start_line asc").Find(&rows).Error; err != nil {
		return nil, cgerrors.New(cgerrors.StoreIntegrity, "get_nodes_by_name", err)
	}
	return mapNodes(rows), nil
}

// GetIncomingEdges returns edges targeting nodeID, optionally filtered by
// kind.
func (s *Store) GetIncomingEdges(nodeID string, kinds ...types.EdgeKind) ([]types.Edge, error) {
	q := s.db.Where("resolved_target_id = ?", nodeID)
	q = filterKinds(q, kinds)
	var rows []edgeRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, cgerrors.New(cgerrors.StoreIntegrity, "get_incoming_edges", err)
	}
	return mapEdges(rows), nil
}

// GetOutgoingEdges returns edges sourced from nodeID, optionally filtered
// by kind.
func (s *Store) GetOutgoingEdges(nodeID string, kinds ...types.EdgeKind) ([]types.Edge, error) {
	q := s.db.Where("source = ?", nodeID)
	q = filterKinds(q, kinds)
	var rows []edgeRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, cgerrors.New(cgerrors.StoreIntegrity, "get_outgoing_edges", err)
	}
	return mapEdges(rows), nil
}

// GetUnresolvedEdges returns every edge whose target is still unresolved,
// optionally restricted to edges sourced from the given files (sync's
// "restricted to references whose source node lives in the touched
// files", spec §4.H step 5).
func (s *Store) GetUnresolvedEdges(sourceFiles ...string) ([]types.Edge, error) {
	q := s.db.Where("resolved_target_id = ?", "")
	if len(sourceFiles) > 0 {
		q = q.Where("source_file_path IN ?", sourceFiles)
	}
	var rows []edgeRow
	if err := q.Find(&rows).Error; err != nil {
		return nil, cgerrors.New(cgerrors.StoreIntegrity, "get_unresolved_edges", err)
	}
	return mapEdges(rows), nil
}

// GetFile returns the stored file record, if any.
func (s *Store) GetFile(path string) (types.File, bool, error) {
	var row fileRow
	err := s.db.First(&row, "path = ?", path).Error
	if err == gorm.ErrRecordNotFound {
		return types.File{}, false, nil
	}
	if err != nil {
		return types.File{}, false, cgerrors.New(cgerrors.StoreIntegrity, "get_file", err)
	}
	return rowToFile(row), true, nil
}

// AllFiles returns every file record, sorted by path.
func (s *Store) AllFiles() ([]types.File, error) {
	var rows []fileRow
	if err := s.db.Order("path asc").Find(&rows).Error; err != nil {
		return nil, cgerrors.New(cgerrors.StoreIntegrity, "all_files", err)
	}
	files := make([]types.File, len(rows))
	for i, r := range rows {
		files[i] = rowToFile(r)
	}
	return files, nil
}

// UpsertVector stores or replaces the embedding for a node (spec §4.I
// storeVector). A model mismatch against an existing entry is allowed —
// spec §4.I: "model mismatch is allowed but flagged" — callers compare
// ModelName themselves if they care; the store does not reject it.
func (s *Store) UpsertVector(v types.VectorEntry) error {
	return s.withWriteLock(func() error {
		row := vectorRow{
			NodeID:    v.NodeID,
			ModelName: v.ModelName,
			Dims:      len(v.Embedding),
			Embedding: encodeEmbedding(v.Embedding),
		}
		return s.db.Save(&row).Error
	})
}

// UpsertVectors writes a batch of embeddings in a single transaction
// (spec §4.I storeVectorBatch).
func (s *Store) UpsertVectors(entries []types.VectorEntry) error {
	if len(entries) == 0 {
		return nil
	}
	return s.withWriteLock(func() error {
		return s.db.Transaction(func(tx *gorm.DB) error {
			for _, v := range entries {
				row := vectorRow{
					NodeID:    v.NodeID,
					ModelName: v.ModelName,
					Dims:      len(v.Embedding),
					Embedding: encodeEmbedding(v.Embedding),
				}
				if err := tx.Save(&row).Error; err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// DeleteVector removes the embedding stored for nodeID, if any.
func (s *Store) DeleteVector(nodeID string) error {
	return s.withWriteLock(func() error {
		return s.db.Where("node_id = ?", nodeID).Delete(&vectorRow{}).Error
	})
}

// AllVectors returns every stored embedding, decoded.
func (s *Store) AllVectors() ([]types.VectorEntry, error) {
	var rows []vectorRow
	if err := s.db.Find(&rows).Error; err != nil {
		return nil, cgerrors.New(cgerrors.StoreIntegrity, "all_vectors", err)
	}
	entries := make([]types.VectorEntry, len(rows))
	for i, r := range rows {
		entries[i] = types.VectorEntry{
			NodeID:    r.NodeID,
			ModelName: r.ModelName,
			Embedding: decodeEmbedding(r.Embedding, r.Dims),
		}
	}
	return entries, nil
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func filterKinds(q *gorm.DB, kinds []types.EdgeKind) *gorm.DB {
	if len(kinds) == 0 {
		return q
	}
	strs := make([]string, len(kinds))
	for i, k := range kinds {
		strs[i] = string(k)
	}
	return q.Where("kind IN ?", strs)
}

func mapNodes(rows []nodeRow) []types.Node {
	nodes := make([]types.Node, len(rows))
	for i, r := range rows {
		nodes[i] = rowToNode(r)
	}
	return nodes
}

func mapEdges(rows []edgeRow) []types.Edge {
	edges := make([]types.Edge, len(rows))
	for i, r := range rows {
		edges[i] = rowToEdge(r)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].ID < edges[j].ID })
	return edges
}
