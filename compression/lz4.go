package compression //nolint:dupl // it's easier to duplicate the algorithm wrappers

import (
	"io"
	"io/ioutil"

	"github.com/pierrec/lz4"
)

type LZ4 struct {
}

func (c LZ4) NewReader(r io.Reader) (io.ReadCloser, error) {
	return ioutil.NopCloser(lz4.NewReader(r)), nil
}
