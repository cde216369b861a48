package config

import (
	"encoding/binary"
	"strings"

	"github.com/pkg/errors"
)

var byteOrders = map[string]binary.ByteOrder{
	"little": binary.LittleEndian,
	"big":    binary.BigEndian,
}

var currentByteOrder binary.ByteOrder = binary.LittleEndian

// SetByteOrder selects byte order used for every multi-byte field of dff files.
// Accepts "little" or "big" (case insensitive).
func SetByteOrder(name string) error {
	if o, ok := byteOrders[strings.ToLower(name)]; ok {
		currentByteOrder = o
		return nil
	}
	return errors.Errorf("Failed to find byte order %q", name)
}

func ParseByteOrder(name string) (binary.ByteOrder, error) {
	if o, ok := byteOrders[strings.ToLower(name)]; ok {
		return o, nil
	}
	return nil, errors.Errorf("Unknown byte order %q (expected little or big)", name)
}

func GetByteOrder() binary.ByteOrder {
	return currentByteOrder
}
