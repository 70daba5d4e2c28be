package storage

import (
	"bytes"
	"context"
	"io"
	"log/slog"

	"github.com/minio/minio-go/v7"

	nerrors "github.com/input-output-hk/catalyst-forge-libs/nimbus/errors"
)

// MinIOClient moves objects in and out of a MinIO server.
type MinIOClient struct {
	api    MinioAPI
	files  localFiles
	logger *slog.Logger
}

var _ Helper = (*MinIOClient)(nil)

// NewMinIO connects to the MinIO server at endpoint (host:port). Credentials
// and TLS come from minioOpts, typically built with auth.MinIOOptions.
func NewMinIO(endpoint string, minioOpts *minio.Options, opts ...Option) (*MinIOClient, error) {
	client, err := minio.New(endpoint, minioOpts)
	if err != nil {
		return nil, nerrors.NewError("storage.new", endpoint, err).WithMessage("failed to create MinIO client")
	}
	return NewMinIOWithAPI(AdaptMinio(client), opts...), nil
}

// NewMinIOWithAPI wraps an existing MinioAPI implementation.
// This is primarily used for testing with fake clients.
func NewMinIOWithAPI(api MinioAPI, opts ...Option) *MinIOClient {
	options := applyOptions(opts)
	return &MinIOClient{
		api:    api,
		files:  newLocalFiles(options),
		logger: options.logger,
	}
}

// UploadFromBytes writes data to bucket/key in a single PutObject call.
func (c *MinIOClient) UploadFromBytes(ctx context.Context, bucket, key, contentType string, data []byte) error {
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

	_, err := c.api.PutObject(ctx, bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return fail(ctx, c.logger, opUpload, bucket, key, err)
	}

	return nil
}

// DownloadToBytes reads the whole object. MinIO reports a missing object on the
// first read, as a minio.ErrorResponse with code NoSuchKey.
func (c *MinIOClient) DownloadToBytes(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := requireObject(opDownload, bucket, key); err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.DebugContext(ctx, "downloading object",
			"bucket", bucket,
			"key", key)
	}

	obj, err := c.api.GetObject(ctx, bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fail(ctx, c.logger, opDownload, bucket, key, err)
	}
	defer func() { _ = obj.Close() }()

	data, err := io.ReadAll(obj)
	if err != nil {
		return nil, fail(ctx, c.logger, opDownload, bucket, key, err)
	}

	return data, nil
}

// DeleteFile deletes the object. Like S3, MinIO reports success for a missing key.
func (c *MinIOClient) DeleteFile(ctx context.Context, bucket, key string) error {
	if err := requireObject(opDelete, bucket, key); err != nil {
		return err
	}

	if c.logger != nil {
		c.logger.DebugContext(ctx, "deleting object",
			"bucket", bucket,
			"key", key)
	}

	if err := c.api.RemoveObject(ctx, bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fail(ctx, c.logger, opDelete, bucket, key, err)
	}

	return nil
}

// UploadFile uploads the file at path under key; the file's own name is not used.
func (c *MinIOClient) UploadFile(ctx context.Context, bucket, key, path string) error {
	return c.files.upload(ctx, c.UploadFromBytes, bucket, key, path)
}

// DownloadFile writes the object to dir/key, creating dir and any parent
// directories of key, and returns the written path.
func (c *MinIOClient) DownloadFile(ctx context.Context, bucket, key, dir string) (string, error) {
	return c.files.download(ctx, c.DownloadToBytes, bucket, key, dir)
}
