package stream

import (
	"bytes"
	"io"

	"github.com/hexbee-net/errors"
)

const (
	// DefaultBlockSize is the physical block size of 1014 blocked files.
	DefaultBlockSize = 1014
	// TrailerSize is the number of non-data bytes closing every block.
	TrailerSize = 2
	// DefaultPad is the EBCDIC space used to fill block trailers.
	DefaultPad byte = 0x40
)

const (
	// ErrInvalidBlock is returned by a trailer checking BlockReader on a malformed block.
	ErrInvalidBlock = errors.Error("invalid block")

	errInvalidBlockSize = errors.Error("invalid block size")
)

// BlockOption configures a BlockReader.
type BlockOption func(*BlockReader)

// WithTrailerCheck makes the reader fail on short blocks and on trailers
// that are not made of two pad bytes.
func WithTrailerCheck(pad byte) BlockOption {
	return func(r *BlockReader) {
		r.checkTrailer = true
		r.pad = pad
	}
}

// BlockReader presents a stream of fixed size blocks as a continuous stream,
// dropping the trailer of every block.
// At the end of the underlying stream it serves what remains, then io.EOF.
type BlockReader struct {
	inner     io.Reader
	blockSize int

	checkTrailer bool
	pad          byte

	block  []byte
	buf    []byte
	blocks int
	eof    bool
}

// NewBlockReader returns a BlockReader over r. A zero blockSize selects DefaultBlockSize.
func NewBlockReader(r io.Reader, blockSize int, opts ...BlockOption) (*BlockReader, error) {
	if blockSize == 0 {
		blockSize = DefaultBlockSize
	}

	if blockSize <= TrailerSize {
		return nil, errors.WithFields(
			errors.WithStack(errInvalidBlockSize),
			errors.Fields{
				"size": blockSize,
			})
	}

	br := &BlockReader{
		inner:     r,
		blockSize: blockSize,
		block:     make([]byte, blockSize),
	}

	for _, opt := range opts {
		opt(br)
	}

	return br, nil
}

// Blocks returns the number of physical blocks consumed so far.
func (r *BlockReader) Blocks() int {
	return r.blocks
}

func (r *BlockReader) Read(p []byte) (int, error) {
	for len(r.buf) < len(p) && !r.eof {
		if err := r.fill(); err != nil {
			return 0, err
		}
	}

	if len(r.buf) == 0 && r.eof {
		return 0, io.EOF
	}

	n := copy(p, r.buf)
	r.buf = r.buf[:copy(r.buf, r.buf[n:])]

	return n, nil
}

func (r *BlockReader) fill() error {
	n, err := io.ReadFull(r.inner, r.block)

	switch err {
	case nil:
	case io.EOF, io.ErrUnexpectedEOF:
		r.eof = true
	default:
		return errors.Wrap(err, "failed to read block")
	}

	if n == 0 {
		return nil
	}

	if r.checkTrailer {
		if err := r.validate(r.block[:n]); err != nil {
			return err
		}
	}

	keep := n
	if keep > r.blockSize-TrailerSize {
		keep = r.blockSize - TrailerSize
	}

	r.buf = append(r.buf, r.block[:keep]...)
	r.blocks++

	return nil
}

func (r *BlockReader) validate(block []byte) error {
	if len(block) < r.blockSize {
		return errors.WithFields(
			errors.WithStack(ErrInvalidBlock),
			errors.Fields{
				"block":    r.blocks,
				"expected": r.blockSize,
				"actual":   len(block),
			})
	}

	trailer := block[r.blockSize-TrailerSize:]
	if !bytes.Equal(trailer, bytes.Repeat([]byte{r.pad}, TrailerSize)) {
		return errors.WithFields(
			errors.WithStack(ErrInvalidBlock),
			errors.Fields{
				"block":   r.blocks,
				"trailer": append([]byte(nil), trailer...),
			})
	}

	return nil
}
