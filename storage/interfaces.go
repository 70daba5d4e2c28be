package storage

import (
	"context"
	"io"

	gcs "cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/minio/minio-go/v7"
)

// StorageClient represents a GCS client.
type StorageClient interface {
	// Bucket returns a handle for the named bucket.
	Bucket(name string) Bucket

	// Close closes the client.
	Close() error
}

// Bucket represents a GCS bucket.
type Bucket interface {
	// Object returns a handle for a key.
	Object(key string) Object
}

// Object represents a GCS object.
type Object interface {
	// NewWriter returns a writer that replaces the object on Close.
	NewWriter(ctx context.Context) Writer

	// NewReader returns a reader over the object's content.
	NewReader(ctx context.Context) (io.ReadCloser, error)

	// Delete deletes the object.
	Delete(ctx context.Context) error
}

// Writer represents a GCS object writer.
type Writer interface {
	io.WriteCloser

	// SetContentType sets the Content-Type stored with the object.
	SetContentType(contentType string)
}

// S3API is the subset of the S3 client used by S3Client.
type S3API interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, params *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

var _ S3API = (*s3.Client)(nil)

// AdaptClient wraps a *storage.Client so it satisfies StorageClient.
func AdaptClient(c *gcs.Client) StorageClient {
	return clientAdapter{c}
}

type clientAdapter struct{ c *gcs.Client }

func (a clientAdapter) Bucket(name string) Bucket { return bucketAdapter{a.c.Bucket(name)} }
func (a clientAdapter) Close() error              { return a.c.Close() }

type bucketAdapter struct{ h *gcs.BucketHandle }

func (a bucketAdapter) Object(key string) Object { return objectAdapter{a.h.Object(key)} }

type objectAdapter struct{ h *gcs.ObjectHandle }

func (a objectAdapter) NewWriter(ctx context.Context) Writer {
	return writerAdapter{a.h.NewWriter(ctx)}
}

func (a objectAdapter) NewReader(ctx context.Context) (io.ReadCloser, error) {
	r, err := a.h.NewReader(ctx)
	if err != nil {
		return nil, err
	}
	return r, nil
}

func (a objectAdapter) Delete(ctx context.Context) error { return a.h.Delete(ctx) }

type writerAdapter struct{ *gcs.Writer }

func (w writerAdapter) SetContentType(contentType string) { w.ContentType = contentType }

// MinioAPI is the subset of the MinIO client used by MinIOClient. GetObject
// returns a plain reader so the client can be faked.
type MinioAPI interface {
	PutObject(
		ctx context.Context,
		bucket, key string,
		reader io.Reader,
		size int64,
		opts minio.PutObjectOptions,
	) (minio.UploadInfo, error)
	GetObject(ctx context.Context, bucket, key string, opts minio.GetObjectOptions) (io.ReadCloser, error)
	RemoveObject(ctx context.Context, bucket, key string, opts minio.RemoveObjectOptions) error
}

// AdaptMinio wraps a *minio.Client so it satisfies MinioAPI.
func AdaptMinio(c *minio.Client) MinioAPI {
	return minioAdapter{c}
}

type minioAdapter struct{ *minio.Client }

func (a minioAdapter) GetObject(
	ctx context.Context,
	bucket, key string,
	opts minio.GetObjectOptions,
) (io.ReadCloser, error) {
	obj, err := a.Client.GetObject(ctx, bucket, key, opts)
	if err != nil {
		return nil, err
	}
	return obj, nil
}
