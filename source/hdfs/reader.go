package hdfs

import (
	"github.com/colinmarc/hdfs/v2"
	"github.com/hexbee-net/errors"
)

// Reader reads a batch file stored on HDFS.
type Reader struct {
	Path string

	client     *hdfs.Client
	ownsClient bool
	file       *hdfs.FileReader
}

// NewReader connects to the namenodes at hosts as user and opens path.
func NewReader(hosts []string, user, path string) (*Reader, error) {
	client, err := hdfs.NewClient(hdfs.ClientOptions{
		Addresses: hosts,
		User:      user,
	})
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to create HDFS client"),
			errors.Fields{
				"hosts": hosts,
				"user":  user,
			})
	}

	r, err := attach(client, path)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	r.ownsClient = true

	return r, nil
}

// NewReaderWithClient is the same as NewReader but uses client, which the Reader never closes.
func NewReaderWithClient(client *hdfs.Client, path string) (*Reader, error) {
	return attach(client, path)
}

func attach(client *hdfs.Client, path string) (*Reader, error) {
	f, err := client.Open(path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to open HDFS file"),
			errors.Fields{
				"path": path,
			})
	}

	return &Reader{
		Path:   path,
		client: client,
		file:   f,
	}, nil
}

// Size returns the size of the file.
func (r *Reader) Size() int64 {
	return r.file.Stat().Size()
}

// Read fills p unless the end of the file or an error is reached first.
func (r *Reader) Read(p []byte) (n int, err error) {
	for n < len(p) && err == nil {
		var cnt int

		cnt, err = r.file.Read(p[n:])
		n += cnt
	}

	return n, err
}

func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	return r.file.Seek(offset, whence)
}

// Close closes the file, then the client if the Reader created it.
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil

		if err != nil {
			return errors.Wrap(err, "failed to close HDFS file")
		}
	}

	if r.client != nil && r.ownsClient {
		err := r.client.Close()
		r.client = nil

		if err != nil {
			return errors.Wrap(err, "failed to close HDFS client")
		}
	}

	return nil
}
