package store

import (
	"encoding/binary"
	"math"

	"github.com/codegraphhq/codegraph/internal/types"
)

func encodeEmbedding(v []float32) []byte {
	buf := make([]byte, 4*len(v))
	for i, f := range v {
		binary.LittleEndian.PutUint32(buf[i*4:], math.Float32bits(f))
	}
	return buf
}

func decodeEmbedding(buf []byte, dims int) []float32 {
	v := make([]float32, dims)
	for i := range v {
		v[i] = math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:]))
	}
	return v
}

func nodeToRow(n types.Node) nodeRow {
	return nodeRow{
		ID:            n.ID,
		Kind:          string(n.Kind),
		Name:          n.Name,
		QualifiedName: n.QualifiedName,
		Language:      n.Language,
		FilePath:      n.FilePath,
		StartLine:     n.Range.StartLine,
		StartColumn:   n.Range.StartColumn,
		EndLine:       n.Range.EndLine,
		EndColumn:     n.Range.EndColumn,
		Signature:     n.Signature,
		Docstring:     n.Docstring,
		IsExported:    n.IsExported,
		UpdatedAt:     n.UpdatedAt,
	}
}

func rowToNode(r nodeRow) types.Node {
	return types.Node{
		ID:            r.ID,
		Kind:          types.Kind(r.Kind),
		Name:          r.Name,
		QualifiedName: r.QualifiedName,
		Language:      r.Language,
		FilePath:      r.FilePath,
		Range: types.Range{
			StartLine:   r.StartLine,
			StartColumn: r.StartColumn,
			EndLine:     r.EndLine,
			EndColumn:   r.EndColumn,
		},
		Signature:  r.Signature,
		Docstring:  r.Docstring,
		IsExported: r.IsExported,
		UpdatedAt:  r.UpdatedAt,
	}
}

func edgeToRow(e types.Edge) edgeRow {
	return edgeRow{
		Fingerprint:      types.DeriveEdgeFingerprint(e.Source, e.Kind, e.TargetSymbol, e.SourceRange),
		Source:           e.Source,
		Kind:             string(e.Kind),
		TargetSymbol:     e.TargetSymbol,
		ResolvedTargetID: e.ResolvedTargetID,
		Confidence:       e.Confidence,
		ResolvedBy:       string(e.ResolvedBy),
		SourceStartLine:  e.SourceRange.StartLine,
		SourceStartCol:   e.SourceRange.StartColumn,
		SourceEndLine:    e.SourceRange.EndLine,
		SourceEndCol:     e.SourceRange.EndColumn,
		SourceFilePath:   e.SourceFilePath,
	}
}

func rowToEdge(r edgeRow) types.Edge {
	return types.Edge{
		ID:               r.Fingerprint,
		Source:           r.Source,
		Kind:             types.EdgeKind(r.Kind),
		TargetSymbol:     r.TargetSymbol,
		ResolvedTargetID: r.ResolvedTargetID,
		Confidence:       r.Confidence,
		ResolvedBy:       types.ResolvedBy(r.ResolvedBy),
		SourceRange: types.Range{
			StartLine:   r.SourceStartLine,
			StartColumn: r.SourceStartCol,
			EndLine:     r.SourceEndLine,
			EndColumn:   r.SourceEndCol,
		},
		SourceFilePath: r.SourceFilePath,
	}
}

func fileToRow(f types.File) fileRow {
	return fileRow{
		Path:        f.Path,
		Language:    f.Language,
		ContentHash: f.ContentHash,
		Size:        f.Size,
		ModifiedAt:  f.ModifiedAt,
		LastIndexed: f.LastIndexed,
	}
}

func rowToFile(r fileRow) types.File {
	return types.File{
		Path:        r.Path,
		Language:    r.Language,
		ContentHash: r.ContentHash,
		Size:        r.Size,
		ModifiedAt:  r.ModifiedAt,
		LastIndexed: r.LastIndexed,
	}
}
