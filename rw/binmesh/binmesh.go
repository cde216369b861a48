// Package binmesh parses BinMeshPLG (0x50E) section: list of material splits
// with index counts and optional explicit vertex indices.
package binmesh

import (
	"fmt"

	"github.com/mogaika/dff_browser/rw"
	"github.com/mogaika/dff_browser/utils"
)

const (
	HEADER_SIZE     = 12 // faceType | splitCount | totalFaceCount
	SPLIT_HEAD_SIZE = 8  // indexCount | materialIndex
)

type Split struct {
	IndexCount    uint32
	MaterialIndex int32
	// nil when section does not carry explicit index arrays
	Indices []uint32 `json:",omitempty" yaml:",omitempty"`
}

type Header struct {
	Offset         int64
	Chunk          rw.ChunkHeader
	FaceType       int32
	SplitCount     uint32
	TotalFaceCount uint32
	Splits         []Split
}

func (h *Header) String() string {
	return fmt.Sprintf("BinMesh{Offset:0x%x; FaceType:%d; Splits:%d; Faces:%d}",
		h.Offset, h.FaceType, h.SplitCount, h.TotalFaceCount)
}

// HasExplicitIndices reports whether section of declaredSize carries index
// arrays after each split. Format has no flag for it, so only size tells:
// without indices section is exactly header + 8 bytes per split.
func HasExplicitIndices(declaredSize, splitCount uint32) bool {
	return uint64(declaredSize) != HEADER_SIZE+SPLIT_HEAD_SIZE*uint64(splitCount)
}

// Parse reads BinMeshPLG starting at cursor position (section id).
// Truncated explicit index arrays are kept partially read.
func Parse(c rw.Cursor, exlog *utils.Logger) (*Header, error) {
	h := &Header{Offset: c.Pos(), Splits: make([]Split, 0)}

	chunk, ok := rw.ReadChunkHeader(&c)
	if !ok {
		return nil, rw.NewFormatError(rw.SECTION_BIN_MESH_PLG, h.Offset, rw.REASON_TRUNCATED_HEADER, 0)
	}
	h.Chunk = chunk
	exlog.Printf("binmesh %v at 0x%.6x", chunk, h.Offset)

	if chunk.Size == HEADER_SIZE {
		exlog.Printf("  empty binmesh")
		return h, nil
	}

	var ok1, ok2, ok3 bool
	h.FaceType, ok1 = c.ReadI32()
	h.SplitCount, ok2 = c.ReadU32()
	h.TotalFaceCount, ok3 = c.ReadU32()
	if !(ok1 && ok2 && ok3) {
		return nil, rw.NewFormatError(rw.SECTION_BIN_MESH_PLG, h.Offset, rw.REASON_TRUNCATED_HEADER, chunk.Size)
	}

	explicit := HasExplicitIndices(chunk.Size, h.SplitCount)
	exlog.Printf("  face type %d splits %d faces %d explicit indices %t",
		h.FaceType, h.SplitCount, h.TotalFaceCount, explicit)

	indicesTruncated := false
	for i := uint32(0); i < h.SplitCount; i++ {
		splitPos := c.Pos()
		indexCount, ok1 := c.ReadU32()
		materialIndex, ok2 := c.ReadI32()
		if !(ok1 && ok2) {
			if indicesTruncated {
				// data ended inside an index list, keep what was read
				exlog.Printf("  ! stopped at split %d of %d after truncated indices", i, h.SplitCount)
				break
			}
			return nil, rw.NewFormatError(rw.SECTION_BIN_MESH_PLG, splitPos, rw.REASON_TRUNCATED_HEADER, i)
		}
		split := Split{IndexCount: indexCount, MaterialIndex: materialIndex}
		if explicit {
			split.Indices = readIndices(&c, indexCount)
			if uint32(len(split.Indices)) != indexCount {
				indicesTruncated = true
				exlog.Printf("  ! split %d indices truncated: %d of %d", i, len(split.Indices), indexCount)
			}
		}
		exlog.Printf("  - split %d at 0x%.6x: indices %d material %d", i, splitPos, indexCount, materialIndex)
		h.Splits = append(h.Splits, split)
	}

	return h, nil
}

func readIndices(c *rw.Cursor, count uint32) []uint32 {
	capacity := c.Remaining() / 4
	if capacity < 0 {
		capacity = 0
	}
	if int64(count) < capacity {
		capacity = int64(count)
	}
	indices := make([]uint32, 0, capacity)
	for j := uint32(0); j < count; j++ {
		index, ok := c.ReadU32()
		if !ok {
			break
		}
		indices = append(indices, index)
	}
	return indices
}
