// Package nativedata decodes NativeDataPLG (0x510) section of ps2 clumps:
// per material split DMA entry lists pointing to packed vertex blocks.
package nativedata

import (
	"github.com/mogaika/dff_browser/mesh"
	"github.com/mogaika/dff_browser/ps2/dma"
	"github.com/mogaika/dff_browser/rw"
	"github.com/mogaika/dff_browser/rw/binmesh"
	"github.com/mogaika/dff_browser/utils"
)

const (
	PLATFORM_PS2 = 0x4

	// struct carrying only platform id
	EMPTY_STRUCT_SIZE = 4

	VERTEX_SCALE = 1.0 / 128.0
	// x, y, z int16 and 2 byte pad
	VERTEX_STRIDE = 8
)

type Options struct {
	// Limits DMA entries walked per split. Zero means derive limit from
	// DMA size of split, so walking can not exceed the DMA area.
	MaxDmaEntries int
}

// Header is leading part of NativeDataPLG
type Header struct {
	Offset   int64
	Chunk    rw.ChunkHeader
	Struct   rw.ChunkHeader
	Platform uint32
}

type NativeData struct {
	Header
	Splits []mesh.MaterialSplit
}

// Decode reads NativeDataPLG starting at cursor position (section id).
// Splits are decoded in order of bm.Splits, one MaterialSplit per BinMesh split.
// Only missing struct marker, unsupported platform and truncated section
// header fail; problems inside split blocks produce partial splits.
func Decode(c rw.Cursor, bm *binmesh.Header, opts Options, exlog *utils.Logger) (*NativeData, error) {
	nd := &NativeData{Header: Header{Offset: c.Pos()}, Splits: make([]mesh.MaterialSplit, 0)}
	h := &nd.Header

	var ok bool
	if h.Chunk, ok = rw.ReadChunkHeader(&c); !ok {
		return nil, rw.NewFormatError(rw.SECTION_NATIVE_DATA_PLG, h.Offset, rw.REASON_TRUNCATED_HEADER, 0)
	}
	exlog.Printf("native data %v at 0x%.6x", h.Chunk, h.Offset)

	structPos := c.Pos()
	if h.Struct, ok = rw.ReadChunkHeader(&c); !ok {
		return nil, rw.NewFormatError(rw.SECTION_NATIVE_DATA_PLG, structPos, rw.REASON_TRUNCATED_HEADER, 0)
	}
	if h.Struct.Id != rw.SECTION_STRUCT {
		return nil, rw.NewFormatError(rw.SECTION_NATIVE_DATA_PLG, structPos, rw.REASON_MISSING_STRUCT, uint32(h.Struct.Id))
	}
	if h.Struct.Size == EMPTY_STRUCT_SIZE {
		exlog.Printf("  empty native data struct")
		return nd, nil
	}

	platformPos := c.Pos()
	if h.Platform, ok = c.ReadU32(); !ok {
		return nil, rw.NewFormatError(rw.SECTION_NATIVE_DATA_PLG, platformPos, rw.REASON_TRUNCATED_HEADER, 0)
	}
	if h.Platform != PLATFORM_PS2 {
		return nil, rw.NewFormatError(rw.SECTION_NATIVE_DATA_PLG, platformPos, rw.REASON_UNSUPPORTED_PLATFORM, h.Platform)
	}
	exlog.Printf("  %v platform 0x%x", h.Struct, h.Platform)

	if bm == nil {
		return nd, nil
	}
	for i := range bm.Splits {
		ms, blockEnd := decodeSplit(c, i, &bm.Splits[i], opts, exlog)
		// resync on declared split size, whatever happened inside the block
		c.SetPos(blockEnd)
		nd.Splits = append(nd.Splits, ms)
	}

	return nd, nil
}

// decodeSplit decodes one split block at cursor and returns position of the
// next split block.
func decodeSplit(c rw.Cursor, iSplit int, split *binmesh.Split, opts Options, exlog *utils.Logger) (mesh.MaterialSplit, int64) {
	ms := mesh.MaterialSplit{MaterialIndex: split.MaterialIndex}
	splitPos := c.Pos()

	splitSize, ok := c.ReadU32()
	if !ok {
		exlog.Printf("  ! split %d header truncated at 0x%.6x", iSplit, splitPos)
		return ms, c.Len()
	}
	c.Skip(4)
	blockStart := c.Pos()
	c.Skip(4)
	dmaQwc, ok := c.ReadU32()
	if !ok {
		exlog.Printf("  ! split %d dma size truncated at 0x%.6x", iSplit, splitPos)
		return ms, c.Len()
	}
	c.SetPos(blockStart)

	dmaEnd := blockStart + int64(dmaQwc)*dma.ENTRY_SIZE
	blockEnd := blockStart + int64(splitSize)
	exlog.Printf("  - split %d at 0x%.6x: block 0x%.6x-0x%.6x dma end 0x%.6x material %d",
		iSplit, splitPos, blockStart, blockEnd, dmaEnd, split.MaterialIndex)

	maxEntries := opts.MaxDmaEntries
	if maxEntries <= 0 {
		maxEntries = int(dmaQwc) + 1
	}

	hasVertexData := false
	for iEntry := 0; c.Pos() < dmaEnd; iEntry++ {
		if iEntry >= maxEntries {
			exlog.Printf("    ! dma entries limit %d reached at 0x%.6x", maxEntries, c.Pos())
			break
		}
		entryPos := c.Pos()
		raw, ok := c.ReadBytes(dma.ENTRY_SIZE)
		if !ok {
			exlog.Printf("    ! dma entry truncated at 0x%.6x", entryPos)
			break
		}
		entry := dma.NewEntry(raw, c.Order())
		exlog.Printf("    %.6x %v", entryPos, entry)

		if entry.IsEnd() {
			break
		}
		if !entry.IsVertexData() {
			exlog.Printf("      skip %s", utils.DumpToOneLineString(raw))
			continue
		}
		if entry.IsVertexV4_16() {
			ms.Vertices = decodeVertices(c.At(entry.DataPosition(blockStart)), split.IndexCount)
			hasVertexData = true
			if uint32(len(ms.Vertices)) != split.IndexCount {
				exlog.Printf("    ! vertices truncated: %d of %d", len(ms.Vertices), split.IndexCount)
			}
		} else {
			exlog.Printf("    ! unsupported vertex data %v", entry.DataTypeCode().UnpackString())
		}
		c.Skip(dma.ENTRY_SIZE)
	}

	if hasVertexData {
		ms.Triangles = mesh.StripToTriangles(ms.Vertices)
		exlog.Printf("    = vertices %d triangles %d", len(ms.Vertices), len(ms.Triangles))
	}

	return ms, blockEnd
}

// decodeVertices reads count fixed point vertices, stops at end of data
func decodeVertices(c rw.Cursor, count uint32) []mesh.Vertex {
	capacity := c.Remaining() / VERTEX_STRIDE
	if capacity < 0 {
		capacity = 0
	}
	if int64(count) < capacity {
		capacity = int64(count)
	}
	vertices := make([]mesh.Vertex, 0, capacity)
	for i := uint32(0); i < count; i++ {
		x, okX := c.ReadI16()
		y, okY := c.ReadI16()
		z, okZ := c.ReadI16()
		if !(okX && okY && okZ) {
			break
		}
		c.Skip(2)
		vertices = append(vertices, mesh.Vertex{
			float32(x) * VERTEX_SCALE,
			float32(y) * VERTEX_SCALE,
			float32(z) * VERTEX_SCALE,
		})
	}
	return vertices
}
