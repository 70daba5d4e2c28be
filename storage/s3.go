package storage

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	nerrors "github.com/input-output-hk/catalyst-forge-libs/nimbus/errors"
)

// S3Client moves objects in and out of Amazon S3 or an S3-compatible store.
type S3Client struct {
	api    S3API
	files  localFiles
	logger *slog.Logger
}

var _ Helper = (*S3Client)(nil)

// NewS3 creates an S3 client. The configuration passed with WithAWSConfig is
// used when present, otherwise the default credential chain.
func NewS3(ctx context.Context, opts ...Option) (*S3Client, error) {
	options := applyOptions(opts)

	var cfg aws.Config
	if options.awsConfig != nil {
		cfg = *options.awsConfig
	} else {
		var err error
		cfg, err = awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nerrors.NewError("storage.new", "", err).WithMessage("failed to load AWS config")
		}
	}

	api := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.UsePathStyle = options.pathStyle
	})

	return newS3(api, options), nil
}

// NewS3WithAPI wraps an existing S3 API implementation.
// This is primarily used for testing with mocked clients.
func NewS3WithAPI(api S3API, opts ...Option) *S3Client {
	return newS3(api, applyOptions(opts))
}

func newS3(api S3API, options *clientOptions) *S3Client {
	return &S3Client{
		api:    api,
		files:  newLocalFiles(options),
		logger: options.logger,
	}
}

// UploadFromBytes writes data to bucket/key with a single PutObject call.
func (c *S3Client) UploadFromBytes(ctx context.Context, bucket, key, contentType string, data []byte) error {
	if err := requireObject(opUpload, bucket, key); err != nil {
		return err
	}

	contentType = detectContentType(contentType, data)

	if c.logger != nil {
		c.logger.DebugContext(ctx, "uploading object",
			"bucket", bucket,
			"key", key,
			"content_type", contentType,
			"size", len(data))
	}

	_, err := c.api.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(bucket),
		Key:           aws.String(key),
		Body:          bytes.NewReader(data),
		ContentLength: aws.Int64(int64(len(data))),
		ContentType:   aws.String(contentType),
	})
	if err != nil {
		return fail(ctx, c.logger, opUpload, bucket, key, err)
	}

	return nil
}

// DownloadToBytes reads the whole object. A missing object yields an error
// wrapping the NoSuchKey API error.
func (c *S3Client) DownloadToBytes(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := requireObject(opDownload, bucket, key); err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.DebugContext(ctx, "downloading object",
			"bucket", bucket,
			"key", key)
	}

	out, err := c.api.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return nil, fail(ctx, c.logger, opDownload, bucket, key, err)
	}
	defer func() { _ = out.Body.Close() }()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fail(ctx, c.logger, opDownload, bucket, key, err)
	}

	return data, nil
}

// DeleteFile deletes the object. S3 reports success for a missing key.
func (c *S3Client) DeleteFile(ctx context.Context, bucket, key string) error {
	if err := requireObject(opDelete, bucket, key); err != nil {
		return err
	}

	if c.logger != nil {
		c.logger.DebugContext(ctx, "deleting object",
			"bucket", bucket,
			"key", key)
	}

	_, err := c.api.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fail(ctx, c.logger, opDelete, bucket, key, err)
	}

	return nil
}

// UploadFile uploads the file at path under key; the file's own name is not used.
func (c *S3Client) UploadFile(ctx context.Context, bucket, key, path string) error {
	return c.files.upload(ctx, c.UploadFromBytes, bucket, key, path)
}

// DownloadFile writes the object to dir/key, creating dir and any parent
// directories of key, and returns the written path.
func (c *S3Client) DownloadFile(ctx context.Context, bucket, key, dir string) (string, error) {
	return c.files.download(ctx, c.DownloadToBytes, bucket, key, dir)
}
