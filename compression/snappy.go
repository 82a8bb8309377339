package compression

import (
	"io"
	"io/ioutil"

	"github.com/golang/snappy"
)

// Snappy handles the framed snappy stream format, not raw blocks.
type Snappy struct {
}

func (c Snappy) NewReader(r io.Reader) (io.ReadCloser, error) {
	return ioutil.NopCloser(snappy.NewReader(r)), nil
}
