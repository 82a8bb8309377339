package azblob

import (
	"context"
	"io"
	"net/url"

	"github.com/Azure/azure-pipeline-go/pipeline"
	"github.com/Azure/azure-storage-blob-go/azblob"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/ipm/source"
)

const errURLNotOpened = errors.Error("url not opened")

// ReaderOptions holds the pipeline settings of the blob client.
type ReaderOptions struct {
	// HTTPSender replaces the default HTTP sender.
	HTTPSender pipeline.Factory
	// RetryOptions configures the retry policy.
	RetryOptions azblob.RetryOptions
	// Log configures pipeline logging.
	Log pipeline.LogOptions
}

// Reader reads a block blob with ranged downloads.
type Reader struct {
	URL *url.URL

	ctx  context.Context
	blob *azblob.BlockBlobURL

	size   int64
	offset int64
}

// NewReader creates an Azure Blob Reader. A nil credential means anonymous
// access, which is what SAS URLs need.
func NewReader(ctx context.Context, rawURL string, credential azblob.Credential, options ReaderOptions) (*Reader, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse blob URL")
	}

	if credential == nil {
		credential = azblob.NewAnonymousCredential()
	}

	blob := azblob.NewBlockBlobURL(*u, azblob.NewPipeline(credential, azblob.PipelineOptions{
		HTTPSender: options.HTTPSender,
		Retry:      options.RetryOptions,
		Log:        options.Log,
	}))

	props, err := blob.GetProperties(ctx, azblob.BlobAccessConditions{})
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to get blob properties"),
			errors.Fields{
				"url": u.Redacted(),
			})
	}

	return &Reader{
		URL:  u,
		ctx:  ctx,
		blob: &blob,
		size: props.ContentLength(),
	}, nil
}

// Size returns the blob size.
func (r *Reader) Size() int64 {
	return r.size
}

func (r *Reader) Read(p []byte) (int, error) {
	if r.blob == nil {
		return 0, errors.WithStack(errURLNotOpened)
	}

	if len(p) == 0 {
		return 0, nil
	}

	if r.offset >= r.size {
		return 0, io.EOF
	}

	count := int64(len(p))
	if rest := r.size - r.offset; count > rest {
		count = rest
	}

	resp, err := r.blob.Download(r.ctx, r.offset, count, azblob.BlobAccessConditions{}, false)
	if err != nil {
		return 0, errors.WithFields(
			errors.Wrap(err, "failed to download blob range"),
			errors.Fields{
				"offset": r.offset,
				"count":  count,
			})
	}

	body := resp.Body(azblob.RetryReaderOptions{})
	defer body.Close()

	n, err := io.ReadFull(body, p[:count])
	r.offset += int64(n)

	if err != nil {
		return n, errors.Wrap(err, "failed to read blob range")
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

// Close does nothing: blob downloads hold no connection between reads.
func (r *Reader) Close() error {
	return nil
}
