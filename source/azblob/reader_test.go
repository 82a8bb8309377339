package azblob

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/ipm/source"
	"github.com/stretchr/testify/require"
	"github.com/tj/assert"
)

func blobServer(t *testing.T, data []byte) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		switch req.Method {
		case http.MethodHead:
			w.Header().Set("Content-Length", strconv.Itoa(len(data)))
			w.WriteHeader(http.StatusOK)
		case http.MethodGet:
			var begin, end int

			if _, err := fmt.Sscanf(req.Header.Get("x-ms-range"), "bytes=%d-%d", &begin, &end); err != nil {
				t.Errorf("unexpected range %q", req.Header.Get("x-ms-range"))
				w.WriteHeader(http.StatusBadRequest)

				return
			}

			w.Header().Set("Content-Length", strconv.Itoa(end-begin+1))
			w.WriteHeader(http.StatusPartialContent)
			_, _ = w.Write(data[begin : end+1])
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
	}))
}

func TestReader(t *testing.T) {
	t.Parallel()

	srv := blobServer(t, []byte("0123456789"))
	defer srv.Close()

	r, err := NewReader(context.Background(), srv.URL+"/batches/T112.ipm", nil, ReaderOptions{})
	require.NoError(t, err)
	defer r.Close()

	assert.Equal(t, int64(10), r.Size())

	buf := make([]byte, 4)

	n, err := r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("0123"), buf[:n])

	n, err = r.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, []byte("4567"), buf[:n])

	pos, err := r.Seek(-1, io.SeekCurrent)
	require.NoError(t, err)
	assert.Equal(t, int64(7), pos)

	out, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, []byte("789"), out)

	_, err = r.Seek(11, io.SeekStart)
	assert.EqualError(t, errors.Cause(err), source.ErrInvalidOffset.Error())
}
