package ipm

import (
	"fmt"
	"io"

	"github.com/apex/log"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/ipm/encoding"
	"github.com/hexbee-net/ipm/layout"
	"github.com/hexbee-net/ipm/schema"
	"github.com/hexbee-net/ipm/stream"
)

type state int

const (
	stateReady state = iota
	stateExhausted
	stateFailed
)

// Reader decodes the messages of a batch, one at a time and in order.
// Always use NewReader or Open to create one.
//
// Next advances to the next message. When it returns false, Err tells a clean
// end of batch (nil) from a failure. A Reader is not safe for concurrent use.
type Reader struct {
	src     *stream.Bounded
	index   *layout.Index
	cfg     config
	log     log.Interface
	closers []io.Closer

	state    state
	msg      *Message
	err      error
	count    int
	reported int64
}

// NewReader creates a Reader decoding r with the field layout cfg.
// It fails with ErrInvalidFieldSpec before reading anything if cfg is unusable.
func NewReader(r io.Reader, cfg schema.Config, opts ...Option) (*Reader, error) {
	c := newConfig(opts)

	index, err := layout.NewIndex(cfg, layout.WithPolicy(c.policy), layout.WithCharset(c.charset))
	if err != nil {
		return nil, err
	}

	in, err := c.unblock(r)
	if err != nil {
		return nil, err
	}

	src := stream.NewBounded(in)

	return &Reader{
		src:      src,
		index:    index,
		cfg:      c,
		log:      c.logger,
		reported: src.Count(),
	}, nil
}

func (c config) unblock(r io.Reader) (io.Reader, error) {
	if !c.blocked {
		return r, nil
	}

	br, err := stream.NewBlockReader(r, c.blockSize, c.blockOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create block reader")
	}

	return br, nil
}

// Next decodes the next message. It returns false at the end of the batch or
// on failure, and keeps returning false afterwards.
func (r *Reader) Next() bool {
	if r.state != stateReady {
		return false
	}

	msg, err := r.next()
	r.report()

	switch {
	case err != nil:
		r.state = stateFailed
		r.msg = nil
		r.err = err

		r.cfg.metrics.failed(err)
		r.log.
			WithFields(errors.GetFields(err)).
			WithError(err).
			WithField("messages", r.count).
			Debug("batch decoding failed")

		return false

	case msg == nil:
		r.state = stateExhausted
		r.msg = nil

		r.log.WithFields(log.Fields{
			"messages": r.count,
			"bytes":    r.src.Offset(),
		}).Debug("end of batch")

		return false
	}

	r.msg = msg
	r.count++
	r.cfg.metrics.decoded()

	r.log.WithFields(log.Fields{
		"mti":      r.formatMTI(msg.MTI),
		"offset":   msg.Offset,
		"elements": len(msg.Fields()),
	}).Debug("decoded message")

	return true
}

// Message returns the message decoded by the last successful call to Next.
func (r *Reader) Message() *Message {
	return r.msg
}

// Err returns the failure that stopped the batch, or nil after a clean end.
func (r *Reader) Err() error {
	return r.err
}

// Count returns the number of messages decoded so far.
func (r *Reader) Count() int {
	return r.count
}

// Offset returns the position of the decoder in the logical stream.
func (r *Reader) Offset() int64 {
	return r.src.Offset()
}

// ReadAll decodes the remaining messages.
func (r *Reader) ReadAll() ([]*Message, error) {
	var msgs []*Message

	for r.Next() {
		msgs = append(msgs, r.Message())
	}

	return msgs, r.Err()
}

// Close releases the source and decompressor opened by Open.
// Readers created by NewReader do not own their input and Close does nothing.
func (r *Reader) Close() error {
	var first error

	for _, c := range r.closers {
		if err := c.Close(); err != nil && first == nil {
			first = errors.Wrap(err, "failed to close batch file")
		}
	}

	r.closers = nil

	return first
}

// next returns nil without error at the end of the batch.
func (r *Reader) next() (*Message, error) {
	start := r.src.Offset()

	rec, err := r.frame()
	if err != nil || rec == nil {
		return nil, err
	}

	body := r.src.Offset()

	header, err := r.src.ReadExactly(MTISize + encoding.BitmapSize)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to read message header"),
			errors.Fields{
				"message":        r.count,
				"message_offset": start,
			})
	}

	msg := &Message{Offset: start}
	copy(msg.MTI[:], header[:MTISize])
	copy(msg.Bitmap[:], header[MTISize:])

	msg.Elements, err = r.index.Decode(r.src, encoding.DecodeBitmap(msg.Bitmap))
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to decode message"),
			errors.Fields{
				"message":        r.count,
				"message_offset": start,
			})
	}

	if rec.length > 0 && r.cfg.recordLengthCheck {
		if consumed := r.src.Offset() - body; consumed != int64(rec.length) {
			return nil, errors.WithFields(
				errors.WithStack(ErrRecordLengthMismatch),
				errors.Fields{
					"message":        r.count,
					"message_offset": start,
					"record_length":  rec.length,
					"consumed":       consumed,
				})
		}
	}

	return msg, nil
}

// frame applies the framing before a message. A nil record means the batch is over.
func (r *Reader) frame() (*record, error) {
	if r.cfg.framing == FramingRDW {
		length, err := readRDW(r.src)
		if err != nil {
			return nil, err
		}

		if length == 0 {
			return nil, nil
		}

		r.log.WithField("record_length", length).Debug("record")

		return &record{length: length}, nil
	}

	eof, err := r.src.PeekEOF()
	if err != nil {
		return nil, errors.Wrap(err, "failed to check for end of batch")
	}

	if eof {
		return nil, nil
	}

	return &record{}, nil
}

func (r *Reader) report() {
	n := r.src.Count()
	r.cfg.metrics.consumed(n - r.reported)
	r.reported = n
}

func (r *Reader) formatMTI(mti [MTISize]byte) string {
	if r.cfg.charset == encoding.ASCII {
		return string(mti[:])
	}

	return fmt.Sprintf("%X", mti[:])
}
