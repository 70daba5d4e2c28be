package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"sync"

	gcs "cloud.google.com/go/storage"
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/minio/minio-go/v7"
)

type storedObject struct {
	data        []byte
	contentType string
}

// fakeGCS is an in-memory StorageClient. Buckets exist once listed in buckets.
type fakeGCS struct {
	mu       sync.Mutex
	buckets  map[string]map[string]storedObject
	writeErr error
	closed   bool
}

func newFakeGCS(buckets ...string) *fakeGCS {
	f := &fakeGCS{buckets: make(map[string]map[string]storedObject)}
	for _, b := range buckets {
		f.buckets[b] = make(map[string]storedObject)
	}
	return f
}

func (f *fakeGCS) Bucket(name string) Bucket { return &fakeBucket{gcs: f, name: name} }

func (f *fakeGCS) Close() error {
	f.closed = true
	return nil
}

func (f *fakeGCS) object(bucket, key string) (storedObject, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	obj, ok := f.buckets[bucket][key]
	return obj, ok
}

type fakeBucket struct {
	gcs  *fakeGCS
	name string
}

func (b *fakeBucket) Object(key string) Object {
	return &fakeObject{gcs: b.gcs, bucket: b.name, key: key}
}

type fakeObject struct {
	gcs    *fakeGCS
	bucket string
	key    string
}

func (o *fakeObject) NewWriter(context.Context) Writer {
	return &fakeWriter{object: o}
}

func (o *fakeObject) NewReader(context.Context) (io.ReadCloser, error) {
	o.gcs.mu.Lock()
	defer o.gcs.mu.Unlock()

	objects, ok := o.gcs.buckets[o.bucket]
	if !ok {
		return nil, gcs.ErrBucketNotExist
	}
	obj, ok := objects[o.key]
	if !ok {
		return nil, gcs.ErrObjectNotExist
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (o *fakeObject) Delete(context.Context) error {
	o.gcs.mu.Lock()
	defer o.gcs.mu.Unlock()

	objects, ok := o.gcs.buckets[o.bucket]
	if !ok {
		return gcs.ErrBucketNotExist
	}
	if _, ok := objects[o.key]; !ok {
		return gcs.ErrObjectNotExist
	}
	delete(objects, o.key)
	return nil
}

type fakeWriter struct {
	object      *fakeObject
	buf         bytes.Buffer
	contentType string
}

func (w *fakeWriter) Write(p []byte) (int, error) {
	if w.object.gcs.writeErr != nil {
		return 0, w.object.gcs.writeErr
	}
	return w.buf.Write(p)
}

func (w *fakeWriter) SetContentType(contentType string) { w.contentType = contentType }

func (w *fakeWriter) Close() error {
	f := w.object.gcs
	f.mu.Lock()
	defer f.mu.Unlock()

	objects, ok := f.buckets[w.object.bucket]
	if !ok {
		return gcs.ErrBucketNotExist
	}
	objects[w.object.key] = storedObject{
		data:        bytes.Clone(w.buf.Bytes()),
		contentType: w.contentType,
	}
	return nil
}

// fakeS3 is an in-memory S3API. Deleting a missing key succeeds, as in S3.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]storedObject
	putErr  error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: make(map[string]storedObject)}
}

func (f *fakeS3) PutObject(_ context.Context, params *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}

	data, err := io.ReadAll(params.Body)
	if err != nil {
		return nil, err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)] = storedObject{
		data:        data,
		contentType: aws.ToString(params.ContentType),
	}
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	obj, ok := f.objects[aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key)]
	if !ok {
		return nil, &types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{
		Body:        io.NopCloser(bytes.NewReader(obj.data)),
		ContentType: aws.String(obj.contentType),
	}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.objects, aws.ToString(params.Bucket)+"/"+aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

// fakeMinio is an in-memory MinioAPI. Like MinIO, it reports a missing object on read.
type fakeMinio struct {
	mu      sync.Mutex
	objects map[string]storedObject
}

func newFakeMinio() *fakeMinio {
	return &fakeMinio{objects: make(map[string]storedObject)}
}

func (f *fakeMinio) PutObject(
	_ context.Context,
	bucket, key string,
	reader io.Reader,
	size int64,
	opts minio.PutObjectOptions,
) (minio.UploadInfo, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return minio.UploadInfo{}, err
	}
	if int64(len(data)) != size {
		return minio.UploadInfo{}, errors.New("size mismatch")
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[bucket+"/"+key] = storedObject{data: data, contentType: opts.ContentType}
	return minio.UploadInfo{Bucket: bucket, Key: key, Size: size}, nil
}

func (f *fakeMinio) GetObject(_ context.Context, bucket, key string, _ minio.GetObjectOptions) (io.ReadCloser, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	obj, ok := f.objects[bucket+"/"+key]
	if !ok {
		return io.NopCloser(&failingReader{err: minio.ErrorResponse{
			Code:       "NoSuchKey",
			Message:    "The specified key does not exist.",
			BucketName: bucket,
			Key:        key,
			StatusCode: 404,
		}}), nil
	}
	return io.NopCloser(bytes.NewReader(obj.data)), nil
}

func (f *fakeMinio) RemoveObject(_ context.Context, bucket, key string, _ minio.RemoveObjectOptions) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.objects, bucket+"/"+key)
	return nil
}

type failingReader struct{ err error }

func (r *failingReader) Read([]byte) (int, error) { return 0, r.err }

var errInjected = errors.New("injected failure")
