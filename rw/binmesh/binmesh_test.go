package binmesh

import (
	"encoding/binary"
	"testing"

	"github.com/mogaika/dff_browser/rw"
	"github.com/mogaika/dff_browser/rw/rwtest"
)

func TestHasExplicitIndices(t *testing.T) {
	var tests = []struct {
		size, splits uint32
		explicit     bool
	}{
		{12, 0, false},
		{28, 2, false},
		{40, 2, true},
		{20, 1, false},
		{24, 1, true},
	}
	for _, test := range tests {
		if result := HasExplicitIndices(test.size, test.splits); result != test.explicit {
			t.Errorf("HasExplicitIndices(%d,%d)=%t; expected %t", test.size, test.splits, result, test.explicit)
		}
	}
}

func parse(t *testing.T, data []byte, order binary.ByteOrder) *Header {
	t.Helper()
	h, err := Parse(rw.NewCursor(data, order, 0), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	return h
}

func TestParseEmpty(t *testing.T) {
	m := &rwtest.Model{EmptyBinMesh: true}
	data := append(m.BinMesh(), 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12)
	h := parse(t, data, nil)
	if h.SplitCount != 0 || len(h.Splits) != 0 {
		t.Errorf("empty binmesh parsed as %v %v", h, h.Splits)
	}
}

func TestParseWithoutIndices(t *testing.T) {
	m := &rwtest.Model{Splits: []rwtest.Split{
		{MaterialIndex: 0, IndexCount: 5},
		{MaterialIndex: 3, IndexCount: 7},
	}}
	data := m.BinMesh()
	h := parse(t, data, nil)

	if h.Chunk.Size != 28 {
		t.Fatalf("declared size %d; expected 28", h.Chunk.Size)
	}
	if h.FaceType != 1 || h.SplitCount != 2 || h.TotalFaceCount != 8 || len(h.Splits) != 2 {
		t.Fatalf("unexpected header %v", h)
	}
	for i, expected := range []Split{{IndexCount: 5, MaterialIndex: 0}, {IndexCount: 7, MaterialIndex: 3}} {
		s := h.Splits[i]
		if s.IndexCount != expected.IndexCount || s.MaterialIndex != expected.MaterialIndex || s.Indices != nil {
			t.Errorf("split %d = %+v; expected %+v", i, s, expected)
		}
	}
}

func TestParseWithIndices(t *testing.T) {
	m := &rwtest.Model{
		ExplicitIndices: true,
		Splits: []rwtest.Split{
			{MaterialIndex: 1, IndexCount: 2, Indices: []uint32{9, 8}},
			{MaterialIndex: 2, IndexCount: 1, Indices: []uint32{4}},
		},
	}
	h := parse(t, m.BinMesh(), nil)
	if h.Chunk.Size != 40 {
		t.Fatalf("declared size %d; expected 40", h.Chunk.Size)
	}
	if len(h.Splits) != 2 {
		t.Fatalf("splits %v", h.Splits)
	}
	if s := h.Splits[0]; s.MaterialIndex != 1 || len(s.Indices) != 2 || s.Indices[0] != 9 || s.Indices[1] != 8 {
		t.Errorf("split 0 = %+v", s)
	}
	if s := h.Splits[1]; s.MaterialIndex != 2 || len(s.Indices) != 1 || s.Indices[0] != 4 {
		t.Errorf("split 1 = %+v", s)
	}
}

func TestParseTruncatedIndices(t *testing.T) {
	m := &rwtest.Model{
		ExplicitIndices: true,
		Splits:          []rwtest.Split{{MaterialIndex: 0, IndexCount: 4, Indices: []uint32{1, 2, 3, 4}}},
	}
	data := m.BinMesh()
	// cut last index and a half
	data = data[:len(data)-6]
	h := parse(t, data, nil)
	if len(h.Splits) != 1 {
		t.Fatalf("splits %v", h.Splits)
	}
	if s := h.Splits[0]; s.IndexCount != 4 || len(s.Indices) != 2 || s.Indices[0] != 1 || s.Indices[1] != 2 {
		t.Errorf("truncated split = %+v", s)
	}
}

func TestParseTruncatedIndicesBeforeNextSplit(t *testing.T) {
	m := &rwtest.Model{
		ExplicitIndices: true,
		Splits: []rwtest.Split{
			{MaterialIndex: 0, IndexCount: 4, Indices: []uint32{1, 2, 3, 4}},
			{MaterialIndex: 1, IndexCount: 3, Indices: []uint32{5, 6, 7}},
		},
	}
	// chunk header, fixed fields, first split head and two of its indices
	data := m.BinMesh()[:40]
	h := parse(t, data, nil)
	if h.SplitCount != 2 {
		t.Errorf("split count %d; expected 2", h.SplitCount)
	}
	if len(h.Splits) != 1 {
		t.Fatalf("splits %+v; expected only first split", h.Splits)
	}
	if s := h.Splits[0]; s.IndexCount != 4 || len(s.Indices) != 2 || s.Indices[0] != 1 || s.Indices[1] != 2 {
		t.Errorf("truncated split = %+v", s)
	}
}

func TestParseBigEndian(t *testing.T) {
	m := &rwtest.Model{Order: binary.BigEndian, Splits: []rwtest.Split{{MaterialIndex: 6, IndexCount: 3}}}
	h := parse(t, m.BinMesh(), binary.BigEndian)
	if len(h.Splits) != 1 || h.Splits[0].MaterialIndex != 6 || h.Splits[0].IndexCount != 3 {
		t.Errorf("big endian splits %+v", h.Splits)
	}
}

func TestParseTruncatedHeader(t *testing.T) {
	m := &rwtest.Model{Splits: []rwtest.Split{{MaterialIndex: 0, IndexCount: 3}}}
	data := m.BinMesh()
	for _, size := range []int{8, 16, 24} {
		if _, err := Parse(rw.NewCursor(data[:size], nil, 0), nil); !rw.IsFormatError(err, rw.REASON_TRUNCATED_HEADER) {
			t.Errorf("Parse of %d bytes err=%v; expected truncated header", size, err)
		}
	}
}

func TestParseAtOffset(t *testing.T) {
	m := &rwtest.Model{Splits: []rwtest.Split{{MaterialIndex: 5, IndexCount: 3}}}
	data := append([]byte{0xaa, 0xbb, 0xcc}, m.BinMesh()...)
	h, err := Parse(rw.NewCursor(data, nil, 3), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if h.Offset != 3 || len(h.Splits) != 1 || h.Splits[0].MaterialIndex != 5 {
		t.Errorf("Parse at offset = %v %+v", h, h.Splits)
	}
}
