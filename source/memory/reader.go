package memory

import (
	"bytes"
)

// Reader is a batch file held in memory.
type Reader struct {
	*bytes.Reader
}

// NewReader returns a Reader over buf. buf must not be modified while it is read.
func NewReader(buf []byte) *Reader {
	return &Reader{
		Reader: bytes.NewReader(buf),
	}
}

func (r *Reader) Close() error {
	return nil
}
