package gcs

import (
	"context"
	"io"

	"cloud.google.com/go/storage"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/ipm/source"
	"google.golang.org/api/option"
)

const errInstantiate = errors.Error("failed to instantiate GCS client")

// Reader reads a GCS object with range requests.
type Reader struct {
	Bucket string
	Name   string

	ctx        context.Context
	client     *storage.Client
	ownsClient bool
	handle     *storage.ObjectHandle

	size   int64
	offset int64
}

// NewReader creates a GCS Reader. The client is built from opts and closed with the Reader.
func NewReader(ctx context.Context, bucket, name string, opts ...option.ClientOption) (*Reader, error) {
	client, err := storage.NewClient(ctx, opts...)
	if err != nil {
		return nil, errors.WithFields(
			errors.WithStack(errInstantiate),
			errors.Fields{
				"reason": err.Error(),
			})
	}

	r, err := attach(ctx, client, bucket, name)
	if err != nil {
		_ = client.Close()
		return nil, err
	}

	r.ownsClient = true

	return r, nil
}

// NewReaderWithClient is the same as NewReader but uses client, which the Reader never closes.
func NewReaderWithClient(ctx context.Context, client *storage.Client, bucket, name string) (*Reader, error) {
	return attach(ctx, client, bucket, name)
}

func attach(ctx context.Context, client *storage.Client, bucket, name string) (*Reader, error) {
	handle := client.Bucket(bucket).Object(name)

	attrs, err := handle.Attrs(ctx)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to get object attributes"),
			errors.Fields{
				"bucket": bucket,
				"object": name,
			})
	}

	return &Reader{
		Bucket: bucket,
		Name:   name,
		ctx:    ctx,
		client: client,
		handle: handle,
		size:   attrs.Size,
	}, nil
}

// Size returns the object size.
func (r *Reader) Size() int64 {
	return r.size
}

func (r *Reader) Read(p []byte) (int, error) {
	if r.offset >= r.size {
		return 0, io.EOF
	}

	want := int64(len(p))
	if rest := r.size - r.offset; want > rest {
		want = rest
	}

	body, err := r.handle.NewRangeReader(r.ctx, r.offset, want)
	if err != nil {
		return 0, errors.WithFields(
			errors.Wrap(err, "failed to open object range"),
			errors.Fields{
				"bucket": r.Bucket,
				"object": r.Name,
				"offset": r.offset,
			})
	}
	defer func() { _ = body.Close() }()

	n, err := io.ReadFull(body, p[:want])
	r.offset += int64(n)

	if err != nil {
		return n, errors.Wrap(err, "failed to read object range")
	}

	return n, nil
}

func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	pos, err := source.ResolveOffset(offset, whence, r.offset, r.size)
	if err != nil {
		return 0, err
	}

	r.offset = pos

	return pos, nil
}

// Close closes the client if the Reader created it.
func (r *Reader) Close() error {
	if r.client == nil || !r.ownsClient {
		return nil
	}

	err := r.client.Close()
	r.client = nil

	if err != nil {
		return errors.Wrap(err, "failed to close GCS client")
	}

	return nil
}
