package ipm

import (
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/ipm/layout"
	"github.com/hexbee-net/ipm/schema"
	"github.com/hexbee-net/ipm/stream"
)

// Error kinds returned by the decoder. Compare them with errors.Cause.
const (
	ErrEndOfStream          = stream.ErrEndOfStream
	ErrInvalidPosition      = stream.ErrInvalidPosition
	ErrInvalidBlock         = stream.ErrInvalidBlock
	ErrInvalidLengthPrefix  = layout.ErrInvalidLengthPrefix
	ErrLengthMismatch       = layout.ErrLengthMismatch
	ErrInvalidFieldSpec     = schema.ErrInvalidFieldSpec
	ErrRecordLengthMismatch = errors.Error("record length mismatch")
)

// Kind returns a short name for the kind of err, used as a metric label.
func Kind(err error) string {
	switch errors.Cause(err) {
	case nil:
		return ""
	case ErrEndOfStream:
		return "end_of_stream"
	case ErrInvalidPosition:
		return "invalid_position"
	case ErrInvalidBlock:
		return "invalid_block"
	case ErrInvalidLengthPrefix:
		return "invalid_length_prefix"
	case ErrLengthMismatch:
		return "length_mismatch"
	case ErrInvalidFieldSpec:
		return "invalid_field_spec"
	case ErrRecordLengthMismatch:
		return "record_length_mismatch"
	default:
		return "io"
	}
}
