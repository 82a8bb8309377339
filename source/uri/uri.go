// Package uri opens batch files from a URL, picking the source by scheme.
//
//	/data/T112.ipm, file:///data/T112.ipm           local file
//	s3://bucket/key                                 Amazon S3
//	gs://bucket/object                              Google Cloud Storage
//	hdfs://user@namenode:8020/path                  HDFS
//	https://account.blob.core.windows.net/c/blob    Azure Blob Storage
package uri

import (
	"context"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/hexbee-net/errors"
	"github.com/hexbee-net/ipm/source"
	"github.com/hexbee-net/ipm/source/azblob"
	"github.com/hexbee-net/ipm/source/gcs"
	"github.com/hexbee-net/ipm/source/hdfs"
	"github.com/hexbee-net/ipm/source/local"
	"github.com/hexbee-net/ipm/source/s3"
	"google.golang.org/api/option"
)

const errUnsupportedScheme = errors.Error("unsupported source scheme")

const azureBlobHostSuffix = ".blob.core.windows.net"

// Options holds the client settings of the remote sources.
type Options struct {
	AWSConfigs   []*aws.Config
	GCSOptions   []option.ClientOption
	AzureOptions azblob.ReaderOptions
	HDFSUser     string
}

// Option configures Open.
type Option func(*Options)

// WithAWSConfig adds configuration to the S3 session.
func WithAWSConfig(cfg *aws.Config) Option {
	return func(o *Options) {
		o.AWSConfigs = append(o.AWSConfigs, cfg)
	}
}

// WithGCSOptions adds options to the GCS client.
func WithGCSOptions(opts ...option.ClientOption) Option {
	return func(o *Options) {
		o.GCSOptions = append(o.GCSOptions, opts...)
	}
}

// WithAzureOptions sets the pipeline options of the Azure Blob client.
func WithAzureOptions(opts azblob.ReaderOptions) Option {
	return func(o *Options) {
		o.AzureOptions = opts
	}
}

// WithHDFSUser sets the HDFS user when the URL does not carry one.
func WithHDFSUser(user string) Option {
	return func(o *Options) {
		o.HDFSUser = user
	}
}

// Open returns a reader over the batch file at rawURL.
func Open(ctx context.Context, rawURL string, opts ...Option) (source.Reader, error) {
	o := Options{}
	for _, opt := range opts {
		opt(&o)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, errors.WithFields(
			errors.Wrap(err, "failed to parse source URL"),
			errors.Fields{
				"url": rawURL,
			})
	}

	var r source.Reader

	switch strings.ToLower(u.Scheme) {
	case "":
		r, err = openLocal(rawURL)

	case "file":
		r, err = openLocal(u.Path)

	case "s3":
		r, err = openS3(ctx, u, o)

	case "gs":
		r, err = openGCS(ctx, u, o)

	case "hdfs":
		r, err = openHDFS(u, o)

	case "https", "http":
		if !strings.HasSuffix(strings.ToLower(u.Hostname()), azureBlobHostSuffix) {
			return nil, unsupported(u)
		}

		r, err = openAzure(ctx, rawURL, o)

	default:
		return nil, unsupported(u)
	}

	if err != nil {
		return nil, err
	}

	return r, nil
}

func unsupported(u *url.URL) error {
	return errors.WithFields(
		errors.WithStack(errUnsupportedScheme),
		errors.Fields{
			"scheme": u.Scheme,
			"host":   u.Host,
		})
}

func openLocal(path string) (source.Reader, error) {
	f, err := local.NewReader(path)
	if err != nil {
		return nil, err
	}

	return f, nil
}

func openS3(ctx context.Context, u *url.URL, o Options) (source.Reader, error) {
	sess, err := session.NewSession(o.AWSConfigs...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create AWS session")
	}

	r, err := s3.NewReader(ctx, u.Host, strings.TrimPrefix(u.Path, "/"), sess)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func openGCS(ctx context.Context, u *url.URL, o Options) (source.Reader, error) {
	r, err := gcs.NewReader(ctx, u.Host, strings.TrimPrefix(u.Path, "/"), o.GCSOptions...)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func openHDFS(u *url.URL, o Options) (source.Reader, error) {
	user := o.HDFSUser
	if u.User != nil {
		user = u.User.Username()
	}

	r, err := hdfs.NewReader([]string{u.Host}, user, u.Path)
	if err != nil {
		return nil, err
	}

	return r, nil
}

func openAzure(ctx context.Context, rawURL string, o Options) (source.Reader, error) {
	r, err := azblob.NewReader(ctx, rawURL, nil, o.AzureOptions)
	if err != nil {
		return nil, err
	}

	return r, nil
}
