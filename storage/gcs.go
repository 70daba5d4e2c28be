package storage

import (
	"context"
	"io"
	"log/slog"

	gcs "cloud.google.com/go/storage"

	nerrors "github.com/input-output-hk/catalyst-forge-libs/nimbus/errors"
)

// GCSClient moves objects in and out of Google Cloud Storage.
type GCSClient struct {
	client StorageClient
	files  localFiles
	logger *slog.Logger
}

var _ Helper = (*GCSClient)(nil)

// NewGCS creates a Cloud Storage client from the options passed with
// WithClientOptions; without any, Application Default Credentials are used.
func NewGCS(ctx context.Context, opts ...Option) (*GCSClient, error) {
	options := applyOptions(opts)

	client, err := gcs.NewClient(ctx, options.googleOptions...)
	if err != nil {
		return nil, nerrors.NewError("storage.new", "", err).WithMessage("failed to create Cloud Storage client")
	}

	return newGCS(AdaptClient(client), options), nil
}

// NewGCSWithClient wraps an existing StorageClient.
// This is primarily used for testing with fake clients.
func NewGCSWithClient(client StorageClient, opts ...Option) *GCSClient {
	return newGCS(client, applyOptions(opts))
}

func newGCS(client StorageClient, options *clientOptions) *GCSClient {
	return &GCSClient{
		client: client,
		files:  newLocalFiles(options),
		logger: options.logger,
	}
}

// UploadFromBytes writes data to bucket/key in a single request.
func (c *GCSClient) UploadFromBytes(ctx context.Context, bucket, key, contentType string, data []byte) error {
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

	w := c.client.Bucket(bucket).Object(key).NewWriter(ctx)
	w.SetContentType(contentType)

	if _, err := w.Write(data); err != nil {
		_ = w.Close()
		return fail(ctx, c.logger, opUpload, bucket, key, err)
	}

	// The object is only committed on Close.
	if err := w.Close(); err != nil {
		return fail(ctx, c.logger, opUpload, bucket, key, err)
	}

	return nil
}

// DownloadToBytes reads the whole object. A missing object yields an error
// wrapping storage.ErrObjectNotExist.
func (c *GCSClient) DownloadToBytes(ctx context.Context, bucket, key string) ([]byte, error) {
	if err := requireObject(opDownload, bucket, key); err != nil {
		return nil, err
	}

	if c.logger != nil {
		c.logger.DebugContext(ctx, "downloading object",
			"bucket", bucket,
			"key", key)
	}

	r, err := c.client.Bucket(bucket).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fail(ctx, c.logger, opDownload, bucket, key, err)
	}
	defer func() { _ = r.Close() }()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fail(ctx, c.logger, opDownload, bucket, key, err)
	}

	return data, nil
}

// DeleteFile deletes the object. Deleting a missing object fails with
// storage.ErrObjectNotExist.
func (c *GCSClient) DeleteFile(ctx context.Context, bucket, key string) error {
	if err := requireObject(opDelete, bucket, key); err != nil {
		return err
	}

	if c.logger != nil {
		c.logger.DebugContext(ctx, "deleting object",
			"bucket", bucket,
			"key", key)
	}

	if err := c.client.Bucket(bucket).Object(key).Delete(ctx); err != nil {
		return fail(ctx, c.logger, opDelete, bucket, key, err)
	}

	return nil
}

// UploadFile uploads the file at path under key; the file's own name is not used.
func (c *GCSClient) UploadFile(ctx context.Context, bucket, key, path string) error {
	return c.files.upload(ctx, c.UploadFromBytes, bucket, key, path)
}

// DownloadFile writes the object to dir/key, creating dir and any parent
// directories of key, and returns the written path.
func (c *GCSClient) DownloadFile(ctx context.Context, bucket, key, dir string) (string, error) {
	return c.files.download(ctx, c.DownloadToBytes, bucket, key, dir)
}

// Close closes the underlying Cloud Storage client.
func (c *GCSClient) Close() error {
	return c.client.Close()
}
