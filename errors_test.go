package ipm

import (
	"io"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/tj/assert"
)

func TestKind(t *testing.T) {
	t.Parallel()

	tests := map[string]error{
		"":                       nil,
		"end_of_stream":          errors.Wrap(errors.WithStack(ErrEndOfStream), "failed to read"),
		"invalid_position":       ErrInvalidPosition,
		"invalid_block":          ErrInvalidBlock,
		"invalid_length_prefix":  errors.WithField(ErrInvalidLengthPrefix, "field", 2),
		"length_mismatch":        ErrLengthMismatch,
		"invalid_field_spec":     ErrInvalidFieldSpec,
		"record_length_mismatch": ErrRecordLengthMismatch,
		"io":                     errors.Wrap(io.ErrClosedPipe, "failed to read source"),
	}

	for want, err := range tests {
		assert.Equal(t, want, Kind(err), want)
	}
}
