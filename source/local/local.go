package local

import (
	"io"
	"os"

	"github.com/hexbee-net/errors"
)

// File is a batch file on the local file system.
type File struct {
	FilePath string

	f *os.File
}

// NewReader opens the file at path.
func NewReader(path string) (*File, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to open batch file"),
			errors.Fields{
				"path": path,
			})
	}

	return &File{FilePath: path, f: f}, nil
}

// Read fills b unless the end of the file or an error is reached first.
func (f *File) Read(b []byte) (int, error) {
	n, err := io.ReadFull(f.f, b)
	if err == io.ErrUnexpectedEOF {
		err = io.EOF
	}

	return n, err
}

func (f *File) Seek(offset int64, whence int) (int64, error) {
	return f.f.Seek(offset, whence)
}

// Size returns the size of the file.
func (f *File) Size() (int64, error) {
	info, err := f.f.Stat()
	if err != nil {
		return 0, errors.Wrap(err, "failed to stat batch file")
	}

	return info.Size(), nil
}

func (f *File) Close() error {
	return f.f.Close()
}
