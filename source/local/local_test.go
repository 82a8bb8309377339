package local

import (
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func TestFile(t *testing.T) {
	t.Parallel()

	dir, err := ioutil.TempDir("", "ipm-local")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "T112.ipm")
	require.NoError(t, ioutil.WriteFile(path, []byte("0123456789"), 0o600))

	f, err := NewReader(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, path, f.FilePath)

	size, err := f.Size()
	require.NoError(t, err)
	assert.Equal(t, int64(10), size)

	buf := make([]byte, 4)

	n, err := f.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, 4, n)
	assert.Equal(t, []byte("0123"), buf)

	pos, err := f.Seek(-2, io.SeekEnd)
	require.NoError(t, err)
	assert.Equal(t, int64(8), pos)

	n, err = f.Read(buf)
	assert.Equal(t, 2, n)
	assert.Equal(t, io.EOF, err)
	assert.Equal(t, []byte("89"), buf[:n])
}

func TestFile_Missing(t *testing.T) {
	t.Parallel()

	_, err := NewReader(filepath.Join(os.TempDir(), "ipm-does-not-exist", "T112.ipm"))

	assert.Error(t, err)
}
