// Package dff extracts material split geometry from ps2 dff files.
// BinMeshPLG tells how many vertices every split has,
// NativeDataPLG holds vertices in DMA/VIF packed form.
package dff

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/mogaika/dff_browser/mesh"
	"github.com/mogaika/dff_browser/rw"
	"github.com/mogaika/dff_browser/rw/binmesh"
	"github.com/mogaika/dff_browser/rw/nativedata"
	"github.com/mogaika/dff_browser/utils"
)

type Options struct {
	// nil means little endian
	Order binary.ByteOrder
	// nil means rw.FlatScanner with Order
	Locator       rw.Locator
	MaxDmaEntries int
}

type Model struct {
	Name string
	Size int

	BinMeshOffset    int64
	NativeDataOffset int64
	// every match of section id, first one is used.
	// more than one candidate usually means false positive in payload.
	BinMeshCandidates    []int64
	NativeDataCandidates []int64

	BinMesh    *binmesh.Header
	NativeData nativedata.Header
	Splits     []mesh.MaterialSplit
}

type NamedSplit struct {
	Name  string
	Index int
	Split *mesh.MaterialSplit
}

// Renderable returns splits with both vertices and triangles,
// names keep index of split inside model
func (m *Model) Renderable() []NamedSplit {
	result := make([]NamedSplit, 0, len(m.Splits))
	for i := range m.Splits {
		split := &m.Splits[i]
		if split.IsEmpty() {
			continue
		}
		result = append(result, NamedSplit{Name: split.Name(i), Index: i, Split: split})
	}
	return result
}

func (m *Model) TrianglesCount() int {
	count := 0
	for i := range m.Splits {
		count += len(m.Splits[i].Triangles)
	}
	return count
}

// Extract decodes geometry from whole file data.
// Fails when BinMeshPLG or NativeDataPLG is absent or NativeDataPLG
// structure can not be trusted. Damaged split data gives partial splits.
func Extract(name string, data []byte, opts Options, exlog *utils.Logger) (*Model, error) {
	order := opts.Order
	if order == nil {
		order = binary.LittleEndian
	}
	locator := opts.Locator
	if locator == nil {
		locator = rw.FlatScanner{Order: order}
	}

	m := &Model{Name: name, Size: len(data)}

	var err error
	m.BinMeshOffset, m.BinMeshCandidates, err = rw.LocateFirst(locator, data, rw.SECTION_BIN_MESH_PLG)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't locate binmesh in '%s'", name)
	}
	m.NativeDataOffset, m.NativeDataCandidates, err = rw.LocateFirst(locator, data, rw.SECTION_NATIVE_DATA_PLG)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't locate native data in '%s'", name)
	}
	if len(m.BinMeshCandidates) > 1 || len(m.NativeDataCandidates) > 1 {
		exlog.Printf("%s: several candidates, using first: binmesh %v native data %v",
			name, m.BinMeshCandidates, m.NativeDataCandidates)
	}

	m.BinMesh, err = binmesh.Parse(rw.NewCursor(data, order, m.BinMeshOffset), exlog)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't parse binmesh of '%s'", name)
	}

	nd, err := nativedata.Decode(rw.NewCursor(data, order, m.NativeDataOffset), m.BinMesh,
		nativedata.Options{MaxDmaEntries: opts.MaxDmaEntries}, exlog)
	if err != nil {
		return nil, errors.Wrapf(err, "Can't decode native data of '%s'", name)
	}
	m.NativeData = nd.Header
	m.Splits = nd.Splits

	return m, nil
}
