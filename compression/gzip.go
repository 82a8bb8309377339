package compression

import (
	"compress/gzip"
	"io"

	"github.com/hexbee-net/errors"
)

type GZip struct {
}

func (c GZip) NewReader(r io.Reader) (io.ReadCloser, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read GZIP header")
	}

	return gr, nil
}
