// Package s3 fetches reference data documents from S3.
package s3

import (
	"context"
	"fmt"
	"io"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"go.uber.org/zap"

	"github.com/Agrid-Dev/hvacstandards/internal/standards"
)

// ObjectGetter is the part of the S3 client the reader needs.
type ObjectGetter interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

type Reader struct {
	client ObjectGetter
	log    *zap.Logger
}

type Option func(*Reader)

func WithLogger(l *zap.Logger) Option {
	return func(r *Reader) {
		if l != nil {
			r.log = l
		}
	}
}

// NewReader builds a reader from the default AWS credential chain. An empty
// region keeps the one from the environment.
func NewReader(ctx context.Context, region string, opts ...Option) (*Reader, error) {
	var loadOpts []func(*config.LoadOptions) error
	if region != "" {
		loadOpts = append(loadOpts, config.WithRegion(region))
	}
	cfg, err := config.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	return NewReaderWithClient(s3.NewFromConfig(cfg), opts...), nil
}

func NewReaderWithClient(client ObjectGetter, opts ...Option) *Reader {
	r := &Reader{client: client, log: zap.NewNop()}
	for _, o := range opts {
		o(r)
	}
	return r
}

// GetObjectStream returns the object body. The caller closes it.
func (r *Reader) GetObjectStream(ctx context.Context, bucket, key string) (io.ReadCloser, error) {
	resp, err := r.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fmt.Errorf("get s3://%s/%s: %w", bucket, key, err)
	}
	return resp.Body, nil
}

// LoadStore fetches and validates a reference data document. The format
// follows the key extension.
func (r *Reader) LoadStore(ctx context.Context, bucket, key string) (*standards.Store, error) {
	format, err := standards.FormatFromPath(key)
	if err != nil {
		return nil, err
	}
	body, err := r.GetObjectStream(ctx, bucket, key)
	if err != nil {
		return nil, err
	}
	defer body.Close()

	store, err := standards.Load(body, format)
	if err != nil {
		return nil, fmt.Errorf("s3://%s/%s: %w", bucket, key, err)
	}
	r.log.Info("reference data loaded",
		zap.String("bucket", bucket),
		zap.String("key", key),
		zap.String("version", store.Version()))
	return store, nil
}
