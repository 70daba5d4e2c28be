package task

import (
	"log/slog"

	"google.golang.org/api/option"
)

// clientOptions holds configuration options for the Cloud Tasks client.
type clientOptions struct {
	logger        *slog.Logger
	googleOptions []option.ClientOption
}

// Option is a functional option for configuring the Cloud Tasks client.
type Option func(*clientOptions)

// WithLogger configures the client with a custom logger.
// If logger is nil, logging will be disabled.
func WithLogger(logger *slog.Logger) Option {
	return func(opts *clientOptions) {
		opts.logger = logger
	}
}

// WithClientOptions passes options to the Cloud Tasks service created by New.
func WithClientOptions(googleOptions ...option.ClientOption) Option {
	return func(opts *clientOptions) {
		opts.googleOptions = append(opts.googleOptions, googleOptions...)
	}
}

func applyOptions(options []Option) *clientOptions {
	opts := &clientOptions{}
	for _, option := range options {
		option(opts)
	}
	return opts
}
