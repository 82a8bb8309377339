package compression

import (
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/hexbee-net/errors"
)

const errUnknownCodec = errors.Error("unknown compression codec")

// Codec identifies the compression a batch file is stored with.
type Codec int

const (
	None Codec = iota
	GZipCodec
	SnappyCodec
	LZ4Codec
	ZStdCodec
	BrotliCodec
)

func (c Codec) String() string {
	switch c {
	case None:
		return "none"
	case GZipCodec:
		return "gzip"
	case SnappyCodec:
		return "snappy"
	case LZ4Codec:
		return "lz4"
	case ZStdCodec:
		return "zstd"
	case BrotliCodec:
		return "brotli"
	default:
		return "unknown"
	}
}

// Decompressor wraps a compressed stream with a reader of the plain data.
type Decompressor interface {
	NewReader(r io.Reader) (io.ReadCloser, error)
}

var decompressors = map[Codec]Decompressor{
	None:        Uncompressed{},
	GZipCodec:   GZip{},
	SnappyCodec: Snappy{},
	LZ4Codec:    LZ4{},
	ZStdCodec:   ZStd{},
	BrotliCodec: Brotli{},
}

var extensions = map[string]Codec{
	".gz":     GZipCodec,
	".gzip":   GZipCodec,
	".sz":     SnappyCodec,
	".snappy": SnappyCodec,
	".lz4":    LZ4Codec,
	".zst":    ZStdCodec,
	".zstd":   ZStdCodec,
	".br":     BrotliCodec,
}

// ForCodec returns the Decompressor of codec.
func ForCodec(codec Codec) (Decompressor, error) {
	c, ok := decompressors[codec]
	if !ok {
		return nil, errors.WithFields(
			errors.WithStack(errUnknownCodec),
			errors.Fields{
				"codec": int(codec),
			})
	}

	return c, nil
}

// NewReader returns a reader decompressing r with codec.
// Closing it does not close r.
func NewReader(r io.Reader, codec Codec) (io.ReadCloser, error) {
	c, err := ForCodec(codec)
	if err != nil {
		return nil, err
	}

	rc, err := c.NewReader(r)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to open decompressor"),
			errors.Fields{
				"codec": codec.String(),
			})
	}

	return rc, nil
}

// CodecFromPath guesses the codec of a file from its extension.
// Unrecognised extensions map to None.
func CodecFromPath(path string) Codec {
	if c, ok := extensions[strings.ToLower(filepath.Ext(path))]; ok {
		return c
	}

	return None
}

// Uncompressed passes data through.
type Uncompressed struct {
}

func (c Uncompressed) NewReader(r io.Reader) (io.ReadCloser, error) {
	return ioutil.NopCloser(r), nil
}
