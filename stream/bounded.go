package stream

import (
	"io"

	"github.com/hexbee-net/errors"
)

const (
	// ErrEndOfStream is returned when fewer bytes are available than a read requires.
	ErrEndOfStream = errors.Error("unexpected end of stream")
	// ErrInvalidPosition is returned when a seek or tell yields a negative offset.
	ErrInvalidPosition = errors.Error("invalid stream position")

	errNotSeekable = errors.Error("source is not seekable")
)

const readChunk = 64 << 10

// Bounded enforces exact-length reads over an underlying reader.
//
// When the reader is also an io.Seeker able to report its current position,
// lookahead is done by seeking back. Otherwise a single byte is buffered.
type Bounded struct {
	inner  io.Reader
	seeker io.Seeker

	offset int64
	count  int64

	peeked    bool
	lookahead byte
}

// NewBounded returns a Bounded reading from r.
func NewBounded(r io.Reader) *Bounded {
	b := &Bounded{inner: r}

	if s, ok := r.(io.Seeker); ok {
		if pos, err := s.Seek(0, io.SeekCurrent); err == nil && pos >= 0 {
			b.seeker = s
			b.offset = pos
		}
	}

	return b
}

// Seekable reports whether positions are backed by the underlying reader.
func (b *Bounded) Seekable() bool {
	return b.seeker != nil
}

// ReadExactly returns exactly n bytes or fails with ErrEndOfStream.
// A zero n returns an empty, non-nil slice.
func (b *Bounded) ReadExactly(n int) ([]byte, error) {
	start := b.offset

	buf, err := b.read(n)
	if err != nil {
		return nil, err
	}

	if len(buf) < n {
		return nil, errors.WithFields(
			errors.WithStack(ErrEndOfStream),
			errors.Fields{
				"expected": n,
				"actual":   len(buf),
				"offset":   start,
			})
	}

	return buf, nil
}

// ReadAtMost returns up to n bytes. It is short only at the end of the stream
// and never reports the end of the stream as an error.
func (b *Bounded) ReadAtMost(n int) ([]byte, error) {
	return b.read(n)
}

// PeekEOF reports whether the stream has no more bytes, without consuming any.
func (b *Bounded) PeekEOF() (eof bool, err error) {
	if b.peeked {
		return false, nil
	}

	if b.seeker == nil {
		var one [1]byte

		n, err := io.ReadFull(b.inner, one[:])

		switch {
		case n == 1:
			b.peeked = true
			b.lookahead = one[0]

			return false, nil
		case err == io.EOF:
			return true, nil
		default:
			return false, errors.Wrap(err, "failed to peek source")
		}
	}

	pos, err := b.Tell()
	if err != nil {
		return false, err
	}

	defer func() {
		if _, serr := b.Seek(pos, io.SeekStart); serr != nil && err == nil {
			err = serr
		}
	}()

	var one [1]byte

	n, rerr := b.inner.Read(one[:])
	b.offset += int64(n)
	b.count += int64(n)

	if n == 1 {
		return false, nil
	}

	if rerr == io.EOF {
		return true, nil
	}

	if rerr != nil {
		return false, errors.Wrap(rerr, "failed to peek source")
	}

	// A reader returning (0, nil) has not reached the end yet.
	return false, nil
}

// Seek moves the cursor of the underlying reader.
func (b *Bounded) Seek(offset int64, whence int) (int64, error) {
	if b.seeker == nil {
		return 0, errors.WithStack(errNotSeekable)
	}

	i, err := b.seeker.Seek(offset, whence)
	if err != nil {
		return 0, errors.Wrap(err, "failed to seek source")
	}

	if i < 0 {
		return 0, errors.WithFields(
			errors.WithStack(ErrInvalidPosition),
			errors.Fields{
				"offset": i,
			})
	}

	b.count += i - b.offset
	b.offset = i
	b.peeked = false

	return i, nil
}

// Tell returns the current position. Without a seekable reader, the position
// is the number of bytes consumed since construction.
func (b *Bounded) Tell() (int64, error) {
	if b.seeker == nil {
		return b.offset, nil
	}

	i, err := b.seeker.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, errors.Wrap(err, "failed to query source position")
	}

	if i < 0 {
		return 0, errors.WithFields(
			errors.WithStack(ErrInvalidPosition),
			errors.Fields{
				"offset": i,
			})
	}

	return i, nil
}

// Offset returns the logical position of the cursor.
func (b *Bounded) Offset() int64 {
	return b.offset
}

// Count returns the number of bytes consumed through b.
func (b *Bounded) Count() int64 {
	return b.count
}

func (b *Bounded) read(n int) ([]byte, error) {
	if n < 0 {
		return nil, errors.WithFields(
			errors.New("negative read length"),
			errors.Fields{
				"length": n,
			})
	}

	// The buffer grows with the bytes actually read, not with n.
	buf := make([]byte, 0, minInt(n, readChunk))

	if n > 0 && b.peeked {
		buf = append(buf, b.lookahead)
		b.peeked = false
	}

	var err error

	for len(buf) < n && err == nil {
		if len(buf) == cap(buf) {
			buf = append(buf, make([]byte, minInt(n-len(buf), cap(buf)))...)[:len(buf)]
		}

		var m int

		m, err = io.ReadFull(b.inner, buf[len(buf):minInt(n, cap(buf))])
		buf = buf[:len(buf)+m]
	}

	b.offset += int64(len(buf))
	b.count += int64(len(buf))

	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, errors.Wrap(err, "failed to read source")
	}

	return buf, nil
}

func minInt(a, b int) int {
	if a < b {
		return a
	}

	return b
}
