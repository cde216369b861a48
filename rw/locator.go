package rw

import (
	"bytes"
	"encoding/binary"

	"github.com/pkg/errors"
)

// Locator finds offsets of sections inside dff file data.
type Locator interface {
	Locate(data []byte, id SectionId) []int64
}

// FlatScanner treats file as flat bytes and returns every offset where 4-byte
// section id occurs. It does not walk chunk tree, so payload bytes that happen
// to match the id are reported too. Matches do not overlap: search resumes
// 4 bytes after previous match.
type FlatScanner struct {
	Order binary.ByteOrder
}

func (fs FlatScanner) Locate(data []byte, id SectionId) []int64 {
	order := fs.Order
	if order == nil {
		order = binary.LittleEndian
	}
	var pattern [4]byte
	order.PutUint32(pattern[:], uint32(id))

	result := make([]int64, 0)
	for start := 0; start <= len(data)-len(pattern); {
		idx := bytes.Index(data[start:], pattern[:])
		if idx < 0 {
			break
		}
		result = append(result, int64(start+idx))
		start += idx + len(pattern)
	}
	return result
}

// LocateFirst returns first offset of section and all found candidates.
// Fails with ErrChunkNotFound when section is absent.
func LocateFirst(l Locator, data []byte, id SectionId) (int64, []int64, error) {
	offsets := l.Locate(data, id)
	if len(offsets) == 0 {
		return -1, nil, errors.Wrapf(ErrChunkNotFound, "%v", id)
	}
	return offsets[0], offsets, nil
}
