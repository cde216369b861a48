package rw

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrChunkNotFound = errors.New("chunk not found")

const (
	REASON_MISSING_STRUCT       = "missing nested structure marker"
	REASON_UNSUPPORTED_PLATFORM = "unsupported platform"
	REASON_TRUNCATED_HEADER     = "truncated header"
)

// FormatError is returned when structure of a section can not be trusted
// and whole decode is aborted.
type FormatError struct {
	Section SectionId
	Offset  int64
	Reason  string
	Value   uint32
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%v at 0x%x: %s (value 0x%x)", e.Section, e.Offset, e.Reason, e.Value)
}

func NewFormatError(section SectionId, offset int64, reason string, value uint32) error {
	return &FormatError{Section: section, Offset: offset, Reason: reason, Value: value}
}

// IsFormatError reports whether err (or its cause) is a FormatError with given reason.
// Empty reason matches any FormatError.
func IsFormatError(err error, reason string) bool {
	var fe *FormatError
	if !errors.As(err, &fe) {
		return false
	}
	return reason == "" || fe.Reason == reason
}
