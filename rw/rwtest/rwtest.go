// Package rwtest builds synthetic ps2 dff data for tests.
package rwtest

import (
	"bytes"
	"encoding/binary"
)

const (
	RW_VERSION = 0x1803FFFF

	defaultPlatform = 0x4
	defaultStructId = 0x1
	// unpack V4-16 with non zero NUM, decoders must mask NUM out
	defaultVertexTag = 0x6D048000

	entryIdUnknown = 0x20
	entryIdVertex  = 0x30
	entryIdEnd     = 0x10
)

type Split struct {
	MaterialIndex int32
	// zero means len(Vertices)
	IndexCount uint32
	// explicit index values written when Model.ExplicitIndices is set;
	// nil means 0..IndexCount-1
	Indices  []uint32
	Vertices [][3]int16
	// zero means V4-16 unpack
	VertexTag      uint32
	UnknownEntries int
	NoEndMarker    bool
	NoVertexEntry  bool
}

func (s *Split) indexCount() uint32 {
	if s.IndexCount != 0 {
		return s.IndexCount
	}
	return uint32(len(s.Vertices))
}

type Model struct {
	Order           binary.ByteOrder
	Splits          []Split
	ExplicitIndices bool
	// zero means ps2
	Platform uint32
	// zero means struct section id
	StructId uint32
	// bytes placed before BinMeshPLG
	Prefix []byte
	// bytes placed between BinMeshPLG and NativeDataPLG
	Gap []byte

	OmitBinMesh    bool
	OmitNativeData bool
	EmptyBinMesh   bool
	EmptyNative    bool
}

type writer struct {
	bytes.Buffer
	order binary.ByteOrder
}

func (w *writer) u32(v uint32) {
	var b [4]byte
	w.order.PutUint32(b[:], v)
	w.Write(b[:])
}

func (w *writer) i16(v int16) {
	var b [2]byte
	w.order.PutUint16(b[:], uint16(v))
	w.Write(b[:])
}

func (w *writer) entry(id uint8, offset uint32, dataType uint32) {
	w.Write([]byte{0, 0, 0, id})
	w.u32(offset)
	w.u32(0)
	w.u32(dataType)
}

func (m *Model) order() binary.ByteOrder {
	if m.Order == nil {
		return binary.LittleEndian
	}
	return m.Order
}

// BinMesh returns BinMeshPLG section
func (m *Model) BinMesh() []byte {
	w := &writer{order: m.order()}
	if m.EmptyBinMesh {
		w.u32(0x50E)
		w.u32(12)
		w.u32(RW_VERSION)
		return w.Bytes()
	}

	body := &writer{order: m.order()}
	body.u32(1) // triangle strip
	body.u32(uint32(len(m.Splits)))
	body.u32(0) // total faces, patched below
	totalFaces := uint32(0)
	for i := range m.Splits {
		s := &m.Splits[i]
		count := s.indexCount()
		if count > 2 {
			totalFaces += count - 2
		}
		body.u32(count)
		body.u32(uint32(s.MaterialIndex))
		if m.ExplicitIndices {
			if s.Indices != nil {
				for _, index := range s.Indices {
					body.u32(index)
				}
			} else {
				for j := uint32(0); j < count; j++ {
					body.u32(j)
				}
			}
		}
	}
	b := body.Bytes()
	m.order().PutUint32(b[8:], totalFaces)

	w.u32(0x50E)
	w.u32(uint32(len(b)))
	w.u32(RW_VERSION)
	w.Write(b)
	return w.Bytes()
}

func (m *Model) splitBlock(s *Split) []byte {
	w := &writer{order: m.order()}

	entries := 1 + s.UnknownEntries
	if !s.NoVertexEntry {
		entries += 2
	}
	if !s.NoEndMarker {
		entries++
	}
	dmaQwc := uint32(entries)

	vertexTag := s.VertexTag
	if vertexTag == 0 {
		vertexTag = defaultVertexTag
	}

	// first entry also carries dma size in its offset field
	w.entry(0, dmaQwc, 0)
	for i := 0; i < s.UnknownEntries; i++ {
		w.entry(entryIdUnknown, 0, 0)
	}
	if !s.NoVertexEntry {
		w.entry(entryIdVertex, dmaQwc, vertexTag)
		w.Write(make([]byte, 16))
	}
	if !s.NoEndMarker {
		w.entry(entryIdEnd, 0, 0)
	}

	for _, v := range s.Vertices {
		w.i16(v[0])
		w.i16(v[1])
		w.i16(v[2])
		w.i16(0x7f)
	}
	if pad := w.Len() % 16; pad != 0 {
		w.Write(make([]byte, 16-pad))
	}

	block := &writer{order: m.order()}
	block.u32(uint32(w.Len()))
	block.u32(0)
	block.Write(w.Bytes())
	return block.Bytes()
}

// NativeData returns NativeDataPLG section
func (m *Model) NativeData() []byte {
	structId := m.StructId
	if structId == 0 {
		structId = defaultStructId
	}
	platform := m.Platform
	if platform == 0 {
		platform = defaultPlatform
	}

	body := &writer{order: m.order()}
	if !m.EmptyNative {
		body.u32(platform)
		for i := range m.Splits {
			body.Write(m.splitBlock(&m.Splits[i]))
		}
	}
	structSize := uint32(body.Len())
	if m.EmptyNative {
		structSize = 4
	}

	w := &writer{order: m.order()}
	w.u32(0x510)
	w.u32(12 + uint32(body.Len()))
	w.u32(RW_VERSION)
	w.u32(structId)
	w.u32(structSize)
	w.u32(RW_VERSION)
	w.Write(body.Bytes())
	return w.Bytes()
}

// Bytes returns whole file: prefix, BinMeshPLG, gap, NativeDataPLG
func (m *Model) Bytes() []byte {
	var buf bytes.Buffer
	buf.Write(m.Prefix)
	if !m.OmitBinMesh {
		buf.Write(m.BinMesh())
	}
	buf.Write(m.Gap)
	if !m.OmitNativeData {
		buf.Write(m.NativeData())
	}
	return buf.Bytes()
}

// Quad returns 5 distinct vertices of triangle strip, decoded into
// (0,0,0) (1,0,0) (0,1,0) (1,1,0) (2,0,0)
func Quad() [][3]int16 {
	return [][3]int16{{0, 0, 0}, {128, 0, 0}, {0, 128, 0}, {128, 128, 0}, {256, 0, 0}}
}
