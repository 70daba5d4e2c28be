package secret

import (
	"log/slog"

	"github.com/aws/aws-sdk-go-v2/aws"
	"google.golang.org/api/option"
)

// clientOptions holds configuration options for the secret clients.
type clientOptions struct {
	logger        *slog.Logger
	googleOptions []option.ClientOption
	awsConfig     *aws.Config
}

// Option is a functional option for configuring the secret clients.
type Option func(*clientOptions)

// WithLogger configures the client with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *clientOptions) {
		opts.logger = logger
	}
}

// WithClientOptions passes options to the Secret Manager client created by NewGoogle,
// typically the result of auth.GoogleClientOptions.
func WithClientOptions(googleOptions ...option.ClientOption) Option {
	return func(opts *clientOptions) {
		opts.googleOptions = append(opts.googleOptions, googleOptions...)
	}
}

// WithAWSConfig provides the AWS configuration used by NewAWS instead of the
// default credential chain.
func WithAWSConfig(cfg *aws.Config) Option {
	return func(opts *clientOptions) {
		opts.awsConfig = cfg
	}
}

func applyOptions(options []Option) *clientOptions {
	opts := &clientOptions{}
	for _, option := range options {
		option(opts)
	}
	return opts
}
