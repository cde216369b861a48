package rw

import (
	"encoding/binary"
	"testing"

	"github.com/pkg/errors"
)

func equalOffsets(a, b []int64) bool {
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

func TestFlatScannerLocate(t *testing.T) {
	id := []byte{0x0e, 0x05, 0x00, 0x00}
	var tests = []struct {
		name    string
		data    []byte
		offsets []int64
	}{
		{"empty", nil, []int64{}},
		{"short", []byte{0x0e, 0x05, 0x00}, []int64{}},
		{"absent", []byte{1, 2, 3, 4, 5, 6, 7, 8}, []int64{}},
		{"start", append(append([]byte{}, id...), 9, 9), []int64{0}},
		{"end", append([]byte{9, 9, 9}, id...), []int64{3}},
		{"unaligned", append(append(append([]byte{1}, id...), 7, 7), id...), []int64{1, 7}},
		{"adjacent", append(append([]byte{}, id...), id...), []int64{0, 4}},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			result := FlatScanner{}.Locate(test.data, SECTION_BIN_MESH_PLG)
			if !equalOffsets(result, test.offsets) {
				t.Errorf("Locate(%x)=%v; expected %v", test.data, result, test.offsets)
			}
		})
	}
}

func TestFlatScannerNonOverlapping(t *testing.T) {
	// 0x01010101 matches at every byte of a run, scan resumes after each match
	data := []byte{1, 1, 1, 1, 1, 1, 1, 1, 1}
	result := FlatScanner{}.Locate(data, SectionId(0x01010101))
	if !equalOffsets(result, []int64{0, 4}) {
		t.Errorf("Locate=%v; expected [0 4]", result)
	}
}

func TestFlatScannerBigEndian(t *testing.T) {
	data := []byte{0xff, 0x00, 0x00, 0x05, 0x10}
	if result := (FlatScanner{Order: binary.BigEndian}).Locate(data, SECTION_NATIVE_DATA_PLG); !equalOffsets(result, []int64{1}) {
		t.Errorf("big endian Locate=%v; expected [1]", result)
	}
	if result := (FlatScanner{}).Locate(data, SECTION_NATIVE_DATA_PLG); len(result) != 0 {
		t.Errorf("little endian Locate=%v; expected none", result)
	}
}

func TestLocateFirst(t *testing.T) {
	data := []byte{0, 0x10, 0x05, 0, 0, 0x10, 0x05, 0, 0}
	first, all, err := LocateFirst(FlatScanner{}, data, SECTION_NATIVE_DATA_PLG)
	if err != nil {
		t.Fatalf("LocateFirst: %v", err)
	}
	if first != 1 || !equalOffsets(all, []int64{1, 5}) {
		t.Errorf("LocateFirst=%d %v; expected 1 [1 5]", first, all)
	}

	_, _, err = LocateFirst(FlatScanner{}, data, SECTION_BIN_MESH_PLG)
	if errors.Cause(err) != ErrChunkNotFound {
		t.Errorf("LocateFirst of absent section err=%v; expected ErrChunkNotFound", err)
	}
}
