package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	nerrors "github.com/input-output-hk/catalyst-forge-libs/nimbus/errors"
)

const (
	dirPerm  fs.FileMode = 0o755
	filePerm fs.FileMode = 0o644
)

// localFiles moves object payloads between a Helper and a billy filesystem.
type localFiles struct {
	fs billy.Filesystem

	// absolute resolves relative paths against the working directory; set when
	// fs is the host filesystem rooted at "/".
	absolute bool

	logger *slog.Logger
}

func newLocalFiles(opts *clientOptions) localFiles {
	if opts.fs != nil {
		return localFiles{fs: opts.fs, logger: opts.logger}
	}
	return localFiles{fs: osfs.New("/"), absolute: true, logger: opts.logger}
}

func (l localFiles) resolve(path string) (string, error) {
	if !l.absolute {
		return filepath.Clean(path), nil
	}
	return filepath.Abs(path)
}

type uploadFunc func(ctx context.Context, bucket, key, contentType string, data []byte) error

type downloadFunc func(ctx context.Context, bucket, key string) ([]byte, error)

func (l localFiles) upload(ctx context.Context, upload uploadFunc, bucket, key, path string) error {
	if err := requireObject(opUploadFile, bucket, key); err != nil {
		return err
	}
	if path == "" {
		return nerrors.InvalidInput(opUploadFile, objectName(bucket, key), "path cannot be empty")
	}

	resolved, err := l.resolve(path)
	if err != nil {
		return nerrors.NewError(opUploadFile, path, err)
	}

	data, err := util.ReadFile(l.fs, resolved)
	if err != nil {
		return nerrors.NewError(opUploadFile, resolved, err).WithMessage("failed to read file")
	}

	if l.logger != nil {
		l.logger.DebugContext(ctx, "uploading file",
			"bucket", bucket,
			"key", key,
			"path", resolved,
			"size", len(data))
	}

	return upload(ctx, bucket, key, "", data)
}

func (l localFiles) download(ctx context.Context, download downloadFunc, bucket, key, dir string) (string, error) {
	if err := requireObject(opDownloadFile, bucket, key); err != nil {
		return "", err
	}
	if dir == "" {
		return "", nerrors.InvalidInput(opDownloadFile, objectName(bucket, key), "directory cannot be empty")
	}

	root, err := l.resolve(dir)
	if err != nil {
		return "", nerrors.NewError(opDownloadFile, dir, err)
	}

	target := filepath.Join(root, filepath.FromSlash(key))
	if rel, err := filepath.Rel(root, target); err != nil || rel == "." || rel == ".." ||
		strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", nerrors.InvalidInput(opDownloadFile, objectName(bucket, key), "key escapes the destination directory")
	}

	if err := l.ensureDir(root); err != nil {
		return "", err
	}

	data, err := download(ctx, bucket, key)
	if err != nil {
		return "", err
	}

	if err := l.fs.MkdirAll(filepath.Dir(target), dirPerm); err != nil {
		return "", nerrors.NewError(opDownloadFile, target, err).WithMessage("failed to create parent directory")
	}

	if err := util.WriteFile(l.fs, target, data, filePerm); err != nil {
		return "", nerrors.NewError(opDownloadFile, target, err).WithMessage("failed to write file")
	}

	if l.logger != nil {
		l.logger.DebugContext(ctx, "downloaded file",
			"bucket", bucket,
			"key", key,
			"path", target,
			"size", len(data))
	}

	return target, nil
}

// ensureDir creates dir when missing and fails when it exists as something else.
func (l localFiles) ensureDir(dir string) error {
	info, err := l.fs.Stat(dir)
	switch {
	case err == nil && !info.IsDir():
		return nerrors.NewError(opDownloadFile, dir, fmt.Errorf("path %s: %w", dir, ErrNotDirectory))
	case err == nil:
		return nil
	case errors.Is(err, fs.ErrNotExist):
		if err := l.fs.MkdirAll(dir, dirPerm); err != nil {
			return nerrors.NewError(opDownloadFile, dir, err).WithMessage("failed to create directory")
		}
		return nil
	default:
		return nerrors.NewError(opDownloadFile, dir, err)
	}
}
