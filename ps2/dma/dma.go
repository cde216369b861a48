package dma

import (
	"encoding/binary"
	"fmt"

	"github.com/mogaika/dff_browser/ps2/vif"
)

type DmaTag uint64

const (
	DMA_TAG_CNTS = 0x00 //T=QWC D=QWC+1 MADR => STADR
	DMA_TAG_REFE = 0x00 //T=ADDR then END
	DMA_TAG_CNT  = 0x01 //T=QWC D=QWC+1
	DMA_TAG_NEXT = 0x02 //T=QWC D=ADDR
	DMA_TAG_REF  = 0x03 //D=D+1 T=ADDR
	DMA_TAG_REFS = 0x04 //.. + stall ctrl
	DMA_TAG_CALL = 0x05 //T=QWC D=ADDR QWC+1 => ASR0
	DMA_TAG_RET  = 0x06 //T=QWC (ASR0 => D) if !ASR0 then END
	DMA_TAG_END  = 0x07 //T=QWC then END
)

var dmaTagIdToString = []string{
	"cnts/refe", "cnt", "next", "ref",
	"refs", "call", "ret", "end",
}

func (p DmaTag) QWC() uint16 {
	return uint16(p & 0xffff)
}

func (p DmaTag) ID() uint8 {
	return uint8((p >> 28) & 0x7)
}

func (p DmaTag) Addr() uint32 {
	return uint32((p >> 32) & 0x7FFFFFFF)
}

func (p DmaTag) IsSPR() bool {
	return (p>>63)&1 != 0
}

func (p DmaTag) IsIRQ() bool {
	return (p>>31)&1 != 0
}

func (p DmaTag) String() string {
	return fmt.Sprintf("DmaTag{ID:%-9s; Addr:0x%.4x; QWC:0x%.2x; SPR:%t; IRQ:%t}",
		dmaTagIdToString[p.ID()], p.Addr(), p.QWC(), p.IsSPR(), p.IsIRQ())
}

func NewTag(raw uint64) DmaTag {
	return DmaTag(raw)
}

// Native geometry of rw ps2 clumps is a list of 16 byte entries:
// dma tag (8 bytes) followed by two vif codes. Entry kind is decided by
// whole upper byte of the tag, not by tag ID bits alone.
const (
	ENTRY_SIZE = 0x10

	ENTRY_ID_VERTEX_DATA = 0x30
	ENTRY_ID_END         = 0x10

	// second vif code of entry, with NUM byte cleared
	DATA_TYPE_MASK = 0xFF00FFFF
	// unpack V4-16 with TOPS flag: x,y,z int16 and 2 byte pad
	DATA_TYPE_VERTEX_V4_16 = 0x6D008000
)

type Entry struct {
	Raw        DmaTag
	Id         uint8
	DataOffset uint32 // in quad words, relative to split block start
	DataType   uint32 // masked with DATA_TYPE_MASK
}

// NewEntry decodes entry from at least ENTRY_SIZE bytes
func NewEntry(b []byte, order binary.ByteOrder) Entry {
	return Entry{
		Raw:        NewTag(order.Uint64(b[0:8])),
		Id:         b[3],
		DataOffset: order.Uint32(b[4:8]),
		DataType:   order.Uint32(b[12:16]) & DATA_TYPE_MASK,
	}
}

func (e Entry) IsVertexData() bool        { return e.Id == ENTRY_ID_VERTEX_DATA }
func (e Entry) IsEnd() bool               { return e.Id == ENTRY_ID_END }
func (e Entry) IsVertexV4_16() bool       { return e.DataType == DATA_TYPE_VERTEX_V4_16 }
func (e Entry) DataTypeCode() vif.VifCode { return vif.NewCode(e.DataType) }

// DataPosition returns absolute position of entry data
func (e Entry) DataPosition(blockStart int64) int64 {
	return blockStart + int64(e.DataOffset)*ENTRY_SIZE
}

func (e Entry) String() string {
	return fmt.Sprintf("DmaEntry{Id:0x%.2x; DataOffset:0x%.4x; DataType:0x%.8x; %v; %v}",
		e.Id, e.DataOffset, e.DataType, e.Raw, e.DataTypeCode())
}
