package uri

import (
	"context"
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func TestOpen_Local(t *testing.T) {
	t.Parallel()

	dir, err := ioutil.TempDir("", "ipm-uri")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "T112.ipm")
	require.NoError(t, ioutil.WriteFile(path, []byte("batch"), 0o600))

	for _, rawURL := range []string{path, "file://" + path} {
		r, err := Open(context.Background(), rawURL)
		require.NoError(t, err, rawURL)

		out, err := ioutil.ReadAll(r)
		require.NoError(t, err, rawURL)
		assert.Equal(t, []byte("batch"), out, rawURL)
		assert.NoError(t, r.Close(), rawURL)
	}
}

func TestOpen_Unsupported(t *testing.T) {
	t.Parallel()

	for _, rawURL := range []string{
		"ftp://example.com/T112.ipm",
		"https://example.com/T112.ipm",
	} {
		_, err := Open(context.Background(), rawURL)

		assert.EqualError(t, errors.Cause(err), errUnsupportedScheme.Error(), rawURL)
	}
}

func TestOpen_Options(t *testing.T) {
	t.Parallel()

	o := Options{}
	for _, opt := range []Option{WithHDFSUser("batch"), WithAWSConfig(nil), WithGCSOptions()} {
		opt(&o)
	}

	assert.Equal(t, "batch", o.HDFSUser)
	assert.Len(t, o.AWSConfigs, 1)
	assert.Empty(t, o.GCSOptions)
}
