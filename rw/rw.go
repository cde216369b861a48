// Package rw holds RenderWare stream primitives shared by dff plugin parsers:
// section identifiers, chunk header layout, a bounds-checked cursor and
// section locating strategies.
package rw

import "fmt"

type SectionId uint32

const (
	SECTION_STRUCT          SectionId = 0x1
	SECTION_BIN_MESH_PLG    SectionId = 0x50E
	SECTION_NATIVE_DATA_PLG SectionId = 0x510
)

var sectionIdToString = map[SectionId]string{
	SECTION_STRUCT:          "Struct",
	SECTION_BIN_MESH_PLG:    "BinMeshPLG",
	SECTION_NATIVE_DATA_PLG: "NativeDataPLG",
}

func (id SectionId) String() string {
	if name, ok := sectionIdToString[id]; ok {
		return fmt.Sprintf("%s(0x%x)", name, uint32(id))
	}
	return fmt.Sprintf("Section(0x%x)", uint32(id))
}

// every chunk starts with id | size | version
const CHUNK_HEADER_SIZE = 12

type ChunkHeader struct {
	Id      SectionId
	Size    uint32
	Version uint32
}

func (h ChunkHeader) String() string {
	return fmt.Sprintf("ChunkHeader{Id:%v; Size:0x%x; Version:0x%.8x}", h.Id, h.Size, h.Version)
}

// ReadChunkHeader reads 12 bytes of chunk header at cursor position
func ReadChunkHeader(c *Cursor) (ChunkHeader, bool) {
	id, ok1 := c.ReadU32()
	size, ok2 := c.ReadU32()
	version, ok3 := c.ReadU32()
	return ChunkHeader{Id: SectionId(id), Size: size, Version: version}, ok1 && ok2 && ok3
}
