package attachments

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"

	"github.com/compactconnect/notify/pkg/rawmail"
)

// S3Client defines the S3 operations used by S3Fetcher.
// Narrow by design so tests can substitute a mock.
type S3Client interface {
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
}

// Config contains object-store configuration for report attachments.
type Config struct {
	Bucket      string `env:"REPORT_BUCKET"`
	Region      string `env:"AWS_REGION" envDefault:"us-east-1"`
	AccessKeyID string `env:"AWS_ACCESS_KEY_ID"`
	SecretKey   string `env:"AWS_SECRET_ACCESS_KEY"`
	Endpoint    string `env:"S3_ENDPOINT"` // Optional: for S3-compatible services
}

// Option configures an S3Fetcher.
type Option func(*options)

type options struct {
	client S3Client
}

// WithS3Client sets a pre-configured S3 client. Useful for testing with mocks
// or for sharing one client across components.
func WithS3Client(client S3Client) Option {
	return func(o *options) { o.client = client }
}

// S3Fetcher retrieves report attachment content (zip transaction bundles,
// inline CSV exports) from an S3 bucket. It is safe for concurrent use.
type S3Fetcher struct {
	client S3Client
	bucket string
}

// NewS3Fetcher creates an attachment fetcher over the configured bucket.
func NewS3Fetcher(ctx context.Context, cfg Config, opts ...Option) (*S3Fetcher, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	client := o.client
	if client == nil {
		loadOpts := []func(*awsconfig.LoadOptions) error{
			awsconfig.WithRegion(cfg.Region),
		}
		if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
			loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
				credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
			))
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
		if err != nil {
			return nil, errors.Join(ErrFailedToLoadConfig, err)
		}
		client = s3.NewFromConfig(awsCfg, func(s3opts *s3.Options) {
			if cfg.Endpoint != "" {
				s3opts.BaseEndpoint = aws.String(cfg.Endpoint)
				s3opts.UsePathStyle = true
			}
		})
	}

	return &S3Fetcher{client: client, bucket: cfg.Bucket}, nil
}

// Fetch reads the object stored under key and returns it as a ready-to-attach
// rawmail.Attachment. A missing object or an empty body is a hard error
// (ErrMissingAttachment naming the key), never an empty attachment.
func (f *S3Fetcher) Fetch(ctx context.Context, key string) (rawmail.Attachment, error) {
	out, err := f.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(f.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return rawmail.Attachment{}, classifyFetchError(key, err)
	}
	defer out.Body.Close()

	content, err := io.ReadAll(out.Body)
	if err != nil {
		return rawmail.Attachment{}, fmt.Errorf("%w: %q: %w", ErrFailedToFetch, key, err)
	}
	if len(content) == 0 {
		return rawmail.Attachment{}, fmt.Errorf("%w: %q", ErrMissingAttachment, key)
	}

	contentType := aws.ToString(out.ContentType)
	if contentType == "" || contentType == "binary/octet-stream" || contentType == "application/octet-stream" {
		contentType = contentTypeForKey(key)
	}

	return rawmail.Attachment{
		Filename: path.Base(key),
		MIMEType: contentType,
		Content:  content,
	}, nil
}

// classifyFetchError maps S3 API errors onto package sentinels so callers can
// distinguish "no such attachment" from transport trouble.
func classifyFetchError(key string, err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "NoSuchKey", "NotFound":
			return fmt.Errorf("%w: %q", ErrMissingAttachment, key)
		case "AccessDenied":
			return fmt.Errorf("%w: %q", ErrAccessDenied, key)
		}
	}
	return fmt.Errorf("%w: %q: %w", ErrFailedToFetch, key, err)
}

// contentTypeForKey falls back to the extension when the store did not record
// a useful content type. The report pipeline only ever writes CSV exports and
// zip bundles.
func contentTypeForKey(key string) string {
	switch strings.ToLower(path.Ext(key)) {
	case ".csv":
		return "text/csv"
	case ".zip":
		return "application/zip"
	default:
		return "application/octet-stream"
	}
}
