package ipm

import (
	"encoding/binary"
	"io"

	"github.com/apex/log"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/ipm/stream"
)

// RDWSize is the size of a record descriptor word.
const RDWSize = 4

type record struct {
	// length is zero when the framing carries no length.
	length uint32
}

func readRDW(src *stream.Bounded) (uint32, error) {
	b, err := src.ReadExactly(RDWSize)
	if err != nil {
		return 0, errors.Wrap(err, "failed to read record descriptor word")
	}

	return binary.BigEndian.Uint32(b), nil
}

// RecordReader iterates over the raw records of an RDW framed file, without
// decoding them. Parameter table files are read this way.
type RecordReader struct {
	src *stream.Bounded
	log log.Interface

	done   bool
	record []byte
	err    error
	count  int
}

// NewRecordReader creates a RecordReader over r. Only the blocking and
// logging options apply.
func NewRecordReader(r io.Reader, opts ...Option) (*RecordReader, error) {
	c := newConfig(opts)

	in, err := c.unblock(r)
	if err != nil {
		return nil, err
	}

	return &RecordReader{
		src: stream.NewBounded(in),
		log: c.logger,
	}, nil
}

// Next reads the next record. It returns false on the terminating zero
// length record and on failure.
func (r *RecordReader) Next() bool {
	if r.done {
		return false
	}

	length, err := readRDW(r.src)
	if err != nil {
		return r.fail(err)
	}

	if length == 0 {
		r.done = true
		r.record = nil

		r.log.WithField("records", r.count).Debug("end of records")

		return false
	}

	rec, err := r.src.ReadExactly(int(length))
	if err != nil {
		return r.fail(errors.WithFields(
			errors.Wrap(err, "failed to read record"),
			errors.Fields{
				"record":        r.count,
				"record_length": length,
			}))
	}

	r.record = rec
	r.count++

	r.log.WithField("record_length", length).Debug("record")

	return true
}

// Record returns the record read by the last successful call to Next.
func (r *RecordReader) Record() []byte {
	return r.record
}

// Err returns the failure that stopped the iteration, if any.
func (r *RecordReader) Err() error {
	return r.err
}

func (r *RecordReader) fail(err error) bool {
	r.done = true
	r.record = nil
	r.err = err

	r.log.WithFields(errors.GetFields(err)).WithError(err).Debug("record reading failed")

	return false
}
