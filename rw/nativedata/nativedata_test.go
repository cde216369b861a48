package nativedata

import (
	"encoding/binary"
	"testing"

	"github.com/mogaika/dff_browser/mesh"
	"github.com/mogaika/dff_browser/rw"
	"github.com/mogaika/dff_browser/rw/binmesh"
	"github.com/mogaika/dff_browser/rw/rwtest"
)

func decodeModel(t *testing.T, m *rwtest.Model, opts Options) (*NativeData, error) {
	t.Helper()
	bmData := m.BinMesh()
	data := append(bmData, m.NativeData()...)
	bm, err := binmesh.Parse(rw.NewCursor(data, m.Order, 0), nil)
	if err != nil {
		t.Fatalf("binmesh.Parse: %v", err)
	}
	return Decode(rw.NewCursor(data, m.Order, int64(len(bmData))), bm, opts, nil)
}

func mustDecode(t *testing.T, m *rwtest.Model) *NativeData {
	t.Helper()
	nd, err := decodeModel(t, m, Options{})
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	return nd
}

func equalVertices(a, b []mesh.Vertex) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

var quadVertices = []mesh.Vertex{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}, {1, 1, 0}, {2, 0, 0}}

func TestDecodeQuad(t *testing.T) {
	for _, order := range []binary.ByteOrder{binary.LittleEndian, binary.BigEndian} {
		t.Run(order.String(), func(t *testing.T) {
			m := &rwtest.Model{Order: order, Splits: []rwtest.Split{{MaterialIndex: 2, Vertices: rwtest.Quad()}}}
			nd := mustDecode(t, m)
			if nd.Platform != PLATFORM_PS2 {
				t.Errorf("platform %d", nd.Platform)
			}
			if len(nd.Splits) != 1 {
				t.Fatalf("splits %d; expected 1", len(nd.Splits))
			}
			s := nd.Splits[0]
			if s.MaterialIndex != 2 {
				t.Errorf("material %d; expected 2", s.MaterialIndex)
			}
			if !equalVertices(s.Vertices, quadVertices) {
				t.Errorf("vertices %v; expected %v", s.Vertices, quadVertices)
			}
			expected := []mesh.Triangle{{2, 0, 1}, {2, 1, 3}, {4, 2, 3}}
			if len(s.Triangles) != len(expected) {
				t.Fatalf("triangles %v; expected %v", s.Triangles, expected)
			}
			for i := range expected {
				if s.Triangles[i] != expected[i] {
					t.Errorf("triangle %d = %v; expected %v", i, s.Triangles[i], expected[i])
				}
			}
		})
	}
}

func TestDecodeVertexScale(t *testing.T) {
	m := &rwtest.Model{Splits: []rwtest.Split{{Vertices: [][3]int16{{256, -128, 0}}}}}
	nd := mustDecode(t, m)
	s := nd.Splits[0]
	if !equalVertices(s.Vertices, []mesh.Vertex{{2, -1, 0}}) {
		t.Errorf("vertices %v; expected [[2 -1 0]]", s.Vertices)
	}
	if s.Triangles == nil || len(s.Triangles) != 0 {
		t.Errorf("triangles %v; expected empty list", s.Triangles)
	}
}

func TestDecodeHardErrors(t *testing.T) {
	var tests = []struct {
		name   string
		model  rwtest.Model
		reason string
	}{
		{"missing struct", rwtest.Model{StructId: 2, Splits: []rwtest.Split{{Vertices: rwtest.Quad()}}}, rw.REASON_MISSING_STRUCT},
		{"unsupported platform", rwtest.Model{Platform: 2, Splits: []rwtest.Split{{Vertices: rwtest.Quad()}}}, rw.REASON_UNSUPPORTED_PLATFORM},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			nd, err := decodeModel(t, &test.model, Options{})
			if !rw.IsFormatError(err, test.reason) {
				t.Errorf("Decode()=%v,%v; expected %q error", nd, err, test.reason)
			}
		})
	}
}

func TestDecodeTruncatedHeader(t *testing.T) {
	m := &rwtest.Model{Splits: []rwtest.Split{{Vertices: rwtest.Quad()}}}
	data := m.NativeData()
	for _, size := range []int{4, 20, 26} {
		_, err := Decode(rw.NewCursor(data[:size], nil, 0), nil, Options{}, nil)
		if !rw.IsFormatError(err, rw.REASON_TRUNCATED_HEADER) {
			t.Errorf("Decode of %d bytes err=%v; expected truncated header", size, err)
		}
	}
}

func TestDecodeEmptyStruct(t *testing.T) {
	m := &rwtest.Model{EmptyNative: true, Splits: []rwtest.Split{{Vertices: rwtest.Quad()}}}
	nd := mustDecode(t, m)
	if len(nd.Splits) != 0 {
		t.Errorf("splits %v; expected none", nd.Splits)
	}
}

func TestDecodeWithoutBinMesh(t *testing.T) {
	m := &rwtest.Model{Splits: []rwtest.Split{{Vertices: rwtest.Quad()}}}
	nd, err := Decode(rw.NewCursor(m.NativeData(), nil, 0), nil, Options{}, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(nd.Splits) != 0 {
		t.Errorf("splits %v; expected none", nd.Splits)
	}
}

func TestDecodeSoftDegradations(t *testing.T) {
	var tests = []struct {
		name      string
		split     rwtest.Split
		opts      Options
		vertices  int
		triangles int
		hasData   bool
	}{
		{"unknown entries", rwtest.Split{Vertices: rwtest.Quad(), UnknownEntries: 3}, Options{}, 5, 3, true},
		{"no end marker", rwtest.Split{Vertices: rwtest.Quad(), NoEndMarker: true}, Options{}, 5, 3, true},
		{"unsupported tag", rwtest.Split{Vertices: rwtest.Quad(), VertexTag: 0x6C008000}, Options{}, 0, 0, false},
		{"no vertex entry", rwtest.Split{Vertices: rwtest.Quad(), NoVertexEntry: true}, Options{}, 0, 0, false},
		{"entries limit", rwtest.Split{Vertices: rwtest.Quad()}, Options{MaxDmaEntries: 1}, 0, 0, false},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			test.split.MaterialIndex = 7
			m := &rwtest.Model{Splits: []rwtest.Split{test.split}}
			nd, err := decodeModel(t, m, test.opts)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if len(nd.Splits) != 1 {
				t.Fatalf("splits %d; expected 1", len(nd.Splits))
			}
			s := nd.Splits[0]
			if s.MaterialIndex != 7 {
				t.Errorf("material %d; expected 7", s.MaterialIndex)
			}
			if len(s.Vertices) != test.vertices || len(s.Triangles) != test.triangles {
				t.Errorf("vertices %d triangles %d; expected %d %d",
					len(s.Vertices), len(s.Triangles), test.vertices, test.triangles)
			}
			if hasData := s.Triangles != nil; hasData != test.hasData {
				t.Errorf("triangles built %t; expected %t", hasData, test.hasData)
			}
		})
	}
}

func TestDecodeTruncatedVertices(t *testing.T) {
	m := &rwtest.Model{Splits: []rwtest.Split{{Vertices: rwtest.Quad()}}}
	bmData := m.BinMesh()
	nativeData := m.NativeData()
	// 5 vertices take 40 bytes padded to 48, keep 2.5 vertices
	data := append(bmData, nativeData[:len(nativeData)-48+20]...)

	bm, err := binmesh.Parse(rw.NewCursor(data, nil, 0), nil)
	if err != nil {
		t.Fatalf("binmesh.Parse: %v", err)
	}
	nd, err := Decode(rw.NewCursor(data, nil, int64(len(bmData))), bm, Options{}, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	s := nd.Splits[0]
	if !equalVertices(s.Vertices, quadVertices[:2]) {
		t.Errorf("vertices %v; expected %v", s.Vertices, quadVertices[:2])
	}
	if len(s.Triangles) != 0 {
		t.Errorf("triangles %v; expected none", s.Triangles)
	}
}

func TestDecodeResync(t *testing.T) {
	second := [][3]int16{{0, 0, 128}, {128, 0, 128}, {0, 128, 128}}
	m := &rwtest.Model{Splits: []rwtest.Split{
		// dma walk stops at end marker, vertex data after it is skipped by split size
		{MaterialIndex: 0, Vertices: rwtest.Quad(), UnknownEntries: 2},
		{MaterialIndex: 1, Vertices: second},
		{MaterialIndex: 4, Vertices: rwtest.Quad(), VertexTag: 0x6C008000},
	}}
	nd := mustDecode(t, m)
	if len(nd.Splits) != 3 {
		t.Fatalf("splits %d; expected 3", len(nd.Splits))
	}
	if !equalVertices(nd.Splits[0].Vertices, quadVertices) {
		t.Errorf("split 0 vertices %v", nd.Splits[0].Vertices)
	}
	if s := nd.Splits[1]; s.MaterialIndex != 1 ||
		!equalVertices(s.Vertices, []mesh.Vertex{{0, 0, 1}, {1, 0, 1}, {0, 1, 1}}) ||
		len(s.Triangles) != 1 || s.Triangles[0] != (mesh.Triangle{2, 0, 1}) {
		t.Errorf("split 1 = %+v", s)
	}
	if s := nd.Splits[2]; s.MaterialIndex != 4 || !s.IsEmpty() {
		t.Errorf("split 2 = %+v; expected empty", s)
	}
}

func TestDecodeMissingSplitBlocks(t *testing.T) {
	full := &rwtest.Model{Splits: []rwtest.Split{
		{MaterialIndex: 0, Vertices: rwtest.Quad()},
		{MaterialIndex: 9, Vertices: rwtest.Quad()},
	}}
	short := &rwtest.Model{Splits: full.Splits[:1]}

	bmData := full.BinMesh()
	data := append(bmData, short.NativeData()...)
	bm, err := binmesh.Parse(rw.NewCursor(data, nil, 0), nil)
	if err != nil {
		t.Fatalf("binmesh.Parse: %v", err)
	}
	nd, err := Decode(rw.NewCursor(data, nil, int64(len(bmData))), bm, Options{}, nil)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(nd.Splits) != 2 {
		t.Fatalf("splits %d; expected 2", len(nd.Splits))
	}
	if nd.Splits[0].IsEmpty() {
		t.Errorf("split 0 is empty")
	}
	if s := nd.Splits[1]; s.MaterialIndex != 9 || s.Vertices != nil || s.Triangles != nil {
		t.Errorf("split 1 = %+v; expected empty with material 9", s)
	}
}
