package memory

import (
	"io"
	"io/ioutil"
	"testing"

	"github.com/hexbee-net/ipm/source"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func TestReader(t *testing.T) {
	t.Parallel()

	var r source.Reader = NewReader([]byte("hello world"))

	pos, err := r.Seek(6, io.SeekStart)
	require.NoError(t, err)
	assert.Equal(t, int64(6), pos)

	out, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("world"), out)
	assert.NoError(t, r.Close())
}
