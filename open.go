package ipm

import (
	"bufio"
	"context"
	"io"
	"net/url"

	"github.com/apex/log"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/ipm/compression"
	"github.com/hexbee-net/ipm/schema"
	"github.com/hexbee-net/ipm/source/uri"
)

// sourceBufferSize is the read-ahead kept in front of a batch file opened by Open.
const sourceBufferSize = 1 << 20

// Open opens the batch file at rawURL and returns a Reader over it.
// The file is decompressed according to its extension unless WithCodec is set.
// The returned Reader owns the file: Close releases it.
func Open(ctx context.Context, rawURL string, cfg schema.Config, opts ...Option) (*Reader, error) {
	c := newConfig(opts)

	codec := c.codec
	if !c.codecSet {
		codec = compression.CodecFromPath(pathOf(rawURL))
	}

	src, err := uri.Open(ctx, rawURL, c.sourceOptions...)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to open batch file"),
			errors.Fields{
				"url": rawURL,
			})
	}

	r, err := fromSource(src, codec, cfg, opts)
	if err != nil {
		return nil, errors.WithField(err, "url", rawURL)
	}

	c.logger.WithFields(log.Fields{
		"url":   rawURL,
		"codec": codec.String(),
	}).Debug("opened batch file")

	return r, nil
}

// fromSource builds a Reader owning src. Reads go through a read-ahead buffer:
// remote sources issue one request per Read call.
func fromSource(src io.ReadCloser, codec compression.Codec, cfg schema.Config, opts []Option) (*Reader, error) {
	closers := []io.Closer{src}
	in := io.Reader(bufio.NewReaderSize(src, sourceBufferSize))

	if codec != compression.None {
		dec, err := compression.NewReader(in, codec)
		if err != nil {
			_ = src.Close()
			return nil, err
		}

		closers = []io.Closer{dec, src}
		in = dec
	}

	r, err := NewReader(in, cfg, opts...)
	if err != nil {
		for _, cl := range closers {
			_ = cl.Close()
		}

		return nil, err
	}

	r.closers = closers

	return r, nil
}

func pathOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return rawURL
	}

	return u.Path
}
