package storage

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	nerrors "github.com/input-output-hk/catalyst-forge-libs/nimbus/errors"
)

// Operation names used in returned errors.
const (
	opUpload       = "storage.upload"
	opDownload     = "storage.download"
	opDelete       = "storage.delete"
	opUploadFile   = "storage.upload_file"
	opDownloadFile = "storage.download_file"
)

var (
	// ErrInvalidFileType is returned by ValidFileType when the detected type differs from the expected one.
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrNotDirectory is returned by DownloadFile when the destination exists and is not a directory.
	ErrNotDirectory = errors.New("not a directory")
)

// Helper is the set of object operations shared by every backend.
type Helper interface {
	// UploadFromBytes writes data to bucket/key. An empty contentType is detected from data.
	UploadFromBytes(ctx context.Context, bucket, key, contentType string, data []byte) error

	// DownloadToBytes reads the whole object at bucket/key.
	DownloadToBytes(ctx context.Context, bucket, key string) ([]byte, error)

	// DeleteFile deletes the object at bucket/key.
	DeleteFile(ctx context.Context, bucket, key string) error

	// UploadFile uploads the local file at path to bucket/key.
	UploadFile(ctx context.Context, bucket, key, path string) error

	// DownloadFile writes the object at bucket/key to dir/key and returns that path.
	DownloadFile(ctx context.Context, bucket, key, dir string) (string, error)
}

// ValidFileType checks that data starts with the signature of the expected
// file type, given as an extension with or without the leading dot.
func ValidFileType(data []byte, expected string) error {
	got := strings.TrimPrefix(mimetype.Detect(data).Extension(), ".")
	if got == "" {
		return fmt.Errorf("%w: unable to detect file type", ErrInvalidFileType)
	}

	want := strings.ToLower(strings.TrimPrefix(expected, "."))
	if got != want {
		return fmt.Errorf("%w: expected %s, got %s", ErrInvalidFileType, want, got)
	}

	return nil
}

// detectContentType returns contentType, or the MIME type sniffed from data when it is empty.
func detectContentType(contentType string, data []byte) string {
	if contentType != "" {
		return contentType
	}
	return mimetype.Detect(data).String()
}

func objectName(bucket, key string) string {
	return bucket + "/" + key
}

func requireObject(op, bucket, key string) error {
	if bucket == "" {
		return nerrors.InvalidInput(op, "", "bucket cannot be empty")
	}
	if key == "" {
		return nerrors.InvalidInput(op, bucket, "key cannot be empty")
	}
	return nil
}

// fail logs err and wraps it with the operation and object name.
func fail(ctx context.Context, logger *slog.Logger, op, bucket, key string, err error) error {
	if logger != nil {
		logger.ErrorContext(ctx, "storage operation failed",
			"op", op,
			"bucket", bucket,
			"key", key,
			"error", err)
	}
	return nerrors.NewError(op, objectName(bucket, key), err)
}
