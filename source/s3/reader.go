package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/client"
	"github.com/aws/aws-sdk-go/service/s3"
	"github.com/aws/aws-sdk-go/service/s3/s3iface"
	"github.com/aws/aws-sdk-go/service/s3/s3manager"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/ipm/source"
)

// Reader reads an S3 object with ranged downloads.
type Reader struct {
	Bucket string
	Key    string

	ctx        context.Context
	downloader *s3manager.Downloader

	size   int64
	offset int64
}

// NewReader creates an S3 Reader.
func NewReader(ctx context.Context, bucket, key string, configProvider client.ConfigProvider, configs ...*aws.Config) (*Reader, error) {
	return NewReaderWithClient(ctx, s3.New(configProvider, configs...), bucket, key)
}

// NewReaderWithClient is the same as NewReader but uses api for all requests.
func NewReaderWithClient(ctx context.Context, api s3iface.S3API, bucket, key string) (*Reader, error) {
	head, err := api.HeadObjectWithContext(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to fetch object metadata"),
			errors.Fields{
				"bucket": bucket,
				"key":    key,
			})
	}

	return &Reader{
		Bucket:     bucket,
		Key:        key,
		ctx:        ctx,
		downloader: s3manager.NewDownloaderWithClient(api),
		size:       aws.Int64Value(head.ContentLength),
	}, nil
}

// Size returns the object size.
func (r *Reader) Size() int64 {
	return r.size
}

func (r *Reader) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	if r.offset >= r.size {
		return 0, io.EOF
	}

	last := r.offset + int64(len(p)) - 1
	if last >= r.size {
		last = r.size - 1
	}

	dst := p[:last-r.offset+1]
	buf := aws.NewWriteAtBuffer(dst)

	n, err := r.downloader.DownloadWithContext(r.ctx, buf, &s3.GetObjectInput{
		Bucket: aws.String(r.Bucket),
		Key:    aws.String(r.Key),
		Range:  aws.String(fmt.Sprintf("bytes=%d-%d", r.offset, last)),
	})
	if err != nil {
		return 0, errors.WithFields(
			errors.Wrap(err, "failed to download object range"),
			errors.Fields{
				"bucket": r.Bucket,
				"key":    r.Key,
				"offset": r.offset,
			})
	}

	// WriteAtBuffer reallocates when the response outgrows dst.
	if got := buf.Bytes(); len(got) > 0 && &got[0] != &dst[0] {
		n = int64(copy(dst, got))
	}

	if n == 0 {
		return 0, io.EOF
	}

	r.offset += n

	return int(n), nil
}

// Seek moves the offset of the next ranged download.
func (r *Reader) Seek(offset int64, whence int) (int64, error) {
	pos, err := source.ResolveOffset(offset, whence, r.offset, r.size)
	if err != nil {
		return 0, err
	}

	r.offset = pos

	return pos, nil
}

func (r *Reader) Close() error {
	return nil
}
