package compression

import (
	"io"

	"github.com/hexbee-net/errors"
	"github.com/klauspost/compress/zstd"
)

type ZStd struct {
}

func (c ZStd) NewReader(r io.Reader) (io.ReadCloser, error) {
	d, err := zstd.NewReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create ZSTD decoder")
	}

	return d.IOReadCloser(), nil
}
