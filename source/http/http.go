package http

import (
	"mime/multipart"
	"net/http"

	"github.com/hexbee-net/errors"
)

// DefaultMaxMemory is the part of a multipart upload kept in memory before
// spilling to temporary files.
const DefaultMaxMemory = 32 << 20

// Reader is a batch file uploaded in a multipart form.
type Reader struct {
	fileHeader *multipart.FileHeader
	file       multipart.File
}

// NewReader opens the uploaded file described by header.
func NewReader(header *multipart.FileHeader) (r *Reader, err error) {
	r = &Reader{
		fileHeader: header,
	}

	r.file, err = r.fileHeader.Open()
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to open HTTP stream"),
			errors.Fields{
				"filename": header.Filename,
			})
	}

	return r, nil
}

// FromRequest opens the file uploaded under the form field name of req.
func FromRequest(req *http.Request, name string) (*Reader, error) {
	if req.MultipartForm == nil {
		if err := req.ParseMultipartForm(DefaultMaxMemory); err != nil {
			return nil, errors.Wrap(err, "failed to parse multipart form")
		}
	}

	headers := req.MultipartForm.File[name]
	if len(headers) == 0 {
		return nil, errors.WithFields(
			errors.WithStack(http.ErrMissingFile),
			errors.Fields{
				"field": name,
			})
	}

	return NewReader(headers[0])
}

// Filename returns the name the file was uploaded with.
func (r *Reader) Filename() string {
	return r.fileHeader.Filename
}

// Size returns the size of the uploaded file.
func (r *Reader) Size() int64 {
	return r.fileHeader.Size
}

func (r *Reader) Read(p []byte) (n int, err error) {
	return r.file.Read(p)
}

func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	return r.file.Seek(offset, whence)
}

func (r *Reader) Close() error {
	return r.file.Close()
}
