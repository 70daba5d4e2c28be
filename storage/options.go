package storage

import (
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/go-git/go-billy/v5"
	"google.golang.org/api/option"
)

// clientOptions holds configuration options for the storage clients.
type clientOptions struct {
	logger        *slog.Logger
	googleOptions []option.ClientOption
	awsConfig     *aws.Config
	pathStyle     bool
	fs            billy.Filesystem
}

// Option is a functional option for configuring the storage clients.
type Option func(*clientOptions)

// WithLogger configures the client with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *clientOptions) {
		opts.logger = logger
	}
}

// WithClientOptions passes options to the Cloud Storage client created by NewGCS.
func WithClientOptions(googleOptions ...option.ClientOption) Option {
	return func(opts *clientOptions) {
		opts.googleOptions = append(opts.googleOptions, googleOptions...)
	}
}

// WithAWSConfig provides the AWS configuration used by NewS3 instead of the
// default credential chain.
func WithAWSConfig(cfg *aws.Config) Option {
	return func(opts *clientOptions) {
		opts.awsConfig = cfg
	}
}

// WithPathStyle makes NewS3 address buckets in the request path, as LocalStack
// and MinIO expect.
func WithPathStyle() Option {
	return func(opts *clientOptions) {
		opts.pathStyle = true
	}
}

// WithFilesystem sets the filesystem used by UploadFile and DownloadFile.
// Paths are then interpreted relative to that filesystem's root.
func WithFilesystem(fs billy.Filesystem) Option {
	return func(opts *clientOptions) {
		opts.fs = fs
	}
}

func applyOptions(options []Option) *clientOptions {
	opts := &clientOptions{}
	for _, option := range options {
		option(opts)
	}
	return opts
}
