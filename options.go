package ipm

import (
	"github.com/apex/log"
	"github.com/hexbee-net/ipm/compression"
	"github.com/hexbee-net/ipm/encoding"
	"github.com/hexbee-net/ipm/layout"
	"github.com/hexbee-net/ipm/source/uri"
	"github.com/hexbee-net/ipm/stream"
)

// Framing is the physical record convention around messages.
type Framing int

const (
	// FramingNone reads messages back to back. The batch ends at the end of the data.
	FramingNone Framing = iota
	// FramingRDW reads a 4 byte big endian record length before every message.
	// A zero length ends the batch.
	FramingRDW
)

func (f Framing) String() string {
	switch f {
	case FramingNone:
		return "none"
	case FramingRDW:
		return "rdw"
	default:
		return "unknown"
	}
}

type config struct {
	framing           Framing
	recordLengthCheck bool

	blocked   bool
	blockSize int
	blockOpts []stream.BlockOption

	policy  layout.Policy
	charset encoding.Charset

	logger  log.Interface
	metrics *Metrics

	codec         compression.Codec
	codecSet      bool
	sourceOptions []uri.Option
}

func newConfig(opts []Option) config {
	c := config{
		framing: FramingNone,
		policy:  layout.Strict,
		charset: encoding.ASCII,
		logger:  log.Log,
	}

	for _, opt := range opts {
		opt(&c)
	}

	return c
}

// Option configures a Reader or a RecordReader.
type Option func(*config)

// WithFraming sets the record convention. The default is FramingNone.
func WithFraming(f Framing) Option {
	return func(c *config) {
		c.framing = f
	}
}

// WithRDW is a shortcut for WithFraming(FramingRDW).
func WithRDW() Option {
	return WithFraming(FramingRDW)
}

// WithRecordLengthCheck makes RDW framed decoding fail with ErrRecordLengthMismatch
// when a message does not use exactly the bytes its record length announces.
func WithRecordLengthCheck() Option {
	return func(c *config) {
		c.recordLengthCheck = true
	}
}

// WithBlocking unwraps fixed size blocks before decoding.
// A zero size selects stream.DefaultBlockSize (1014).
func WithBlocking(size int) Option {
	return func(c *config) {
		c.blocked = true
		c.blockSize = size
	}
}

// WithTrailerCheck validates block trailers against pad. It implies WithBlocking(0)
// unless a block size was set.
func WithTrailerCheck(pad byte) Option {
	return func(c *config) {
		c.blocked = true
		c.blockOpts = append(c.blockOpts, stream.WithTrailerCheck(pad))
	}
}

// WithPolicy sets the element read policy. The default is layout.Strict.
func WithPolicy(p layout.Policy) Option {
	return func(c *config) {
		c.policy = p
	}
}

// WithPermissive is a shortcut for WithPolicy(layout.Permissive).
func WithPermissive() Option {
	return WithPolicy(layout.Permissive)
}

// WithCharset sets the code page of element length prefixes. The default is ASCII.
func WithCharset(cs encoding.Charset) Option {
	return func(c *config) {
		c.charset = cs
	}
}

// WithLogger sets the logger. The default is the apex/log package logger.
func WithLogger(l log.Interface) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithMetrics records decoding statistics in m.
func WithMetrics(m *Metrics) Option {
	return func(c *config) {
		c.metrics = m
	}
}

// WithCodec sets the compression of the file opened by Open, overriding
// the codec guessed from the file extension.
func WithCodec(codec compression.Codec) Option {
	return func(c *config) {
		c.codec = codec
		c.codecSet = true
	}
}

// WithSourceOptions passes options to the source opened by Open.
func WithSourceOptions(opts ...uri.Option) Option {
	return func(c *config) {
		c.sourceOptions = append(c.sourceOptions, opts...)
	}
}
