package rw

import (
	"encoding/binary"
)

// Cursor is a read position over an immutable buffer.
// All reads are bounds checked: on short buffer the read returns ok=false
// and cursor position is not changed.
type Cursor struct {
	buf   []byte
	order binary.ByteOrder
	pos   int64
}

func NewCursor(buf []byte, order binary.ByteOrder, pos int64) Cursor {
	if order == nil {
		order = binary.LittleEndian
	}
	return Cursor{buf: buf, order: order, pos: pos}
}

func (c *Cursor) Pos() int64              { return c.pos }
func (c *Cursor) Len() int64              { return int64(len(c.buf)) }
func (c *Cursor) Order() binary.ByteOrder { return c.order }
func (c *Cursor) SetPos(pos int64)        { c.pos = pos }
func (c *Cursor) Skip(amount int64)       { c.pos += amount }
func (c *Cursor) At(pos int64) Cursor     { return Cursor{buf: c.buf, order: c.order, pos: pos} }
func (c *Cursor) Remaining() int64        { return int64(len(c.buf)) - c.pos }
func (c *Cursor) Available(amount int64) bool {
	return c.pos >= 0 && amount >= 0 && c.pos+amount <= int64(len(c.buf))
}

func (c *Cursor) read(amount int64) ([]byte, bool) {
	if !c.Available(amount) {
		return nil, false
	}
	b := c.buf[c.pos : c.pos+amount]
	c.pos += amount
	return b, true
}

func (c *Cursor) ReadU8() (uint8, bool) {
	b, ok := c.read(1)
	if !ok {
		return 0, false
	}
	return b[0], true
}

func (c *Cursor) ReadU16() (uint16, bool) {
	b, ok := c.read(2)
	if !ok {
		return 0, false
	}
	return c.order.Uint16(b), true
}

func (c *Cursor) ReadI16() (int16, bool) {
	v, ok := c.ReadU16()
	return int16(v), ok
}

func (c *Cursor) ReadU32() (uint32, bool) {
	b, ok := c.read(4)
	if !ok {
		return 0, false
	}
	return c.order.Uint32(b), true
}

func (c *Cursor) ReadI32() (int32, bool) {
	v, ok := c.ReadU32()
	return int32(v), ok
}

// ReadBytes returns slice of underlying buffer, callers must not modify it
func (c *Cursor) ReadBytes(amount int64) ([]byte, bool) {
	return c.read(amount)
}
