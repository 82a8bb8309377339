package source

import (
	"io"

	"github.com/hexbee-net/errors"
)

const (
	// ErrInvalidOffset is returned by Seek when the target position is outside the object.
	ErrInvalidOffset = errors.Error("invalid offset")
	// ErrInvalidWhence is returned by Seek for an unknown whence, or for io.SeekEnd
	// on an object of unknown size.
	ErrInvalidWhence = errors.Error("invalid whence")
)

// Reader is a seekable batch file.
type Reader interface {
	io.Reader
	io.Seeker
	io.Closer
}

// ResolveOffset returns the absolute position targeted by a Seek call on an
// object of the given size, the cursor being at current. A negative size
// means the size is unknown and only bounds the position from below.
func ResolveOffset(offset int64, whence int, current, size int64) (int64, error) {
	var pos int64

	switch whence {
	case io.SeekStart:
		pos = offset
	case io.SeekCurrent:
		pos = current + offset
	case io.SeekEnd:
		if size < 0 {
			return 0, errors.WithFields(
				errors.WithStack(ErrInvalidWhence),
				errors.Fields{
					"whence": "SeekEnd",
					"size":   size,
				})
		}

		pos = size + offset
	default:
		return 0, errors.WithFields(
			errors.WithStack(ErrInvalidWhence),
			errors.Fields{
				"whence": whence,
			})
	}

	if pos < 0 || (size >= 0 && pos > size) {
		return 0, errors.WithFields(
			errors.WithStack(ErrInvalidOffset),
			errors.Fields{
				"offset":   offset,
				"whence":   whence,
				"position": pos,
				"size":     size,
			})
	}

	return pos, nil
}
