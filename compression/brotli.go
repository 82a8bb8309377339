package compression //nolint:dupl // it's easier to duplicate the algorithm wrappers

import (
	"io"
	"io/ioutil"

	"github.com/andybalholm/brotli"
)

type Brotli struct {
}

func (c Brotli) NewReader(r io.Reader) (io.ReadCloser, error) {
	return ioutil.NopCloser(brotli.NewReader(r)), nil
}
