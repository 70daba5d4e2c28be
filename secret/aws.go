package secret

import (
	"context"
	"log/slog"
	"unicode/utf8"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"

	nerrors "github.com/input-output-hk/catalyst-forge-libs/nimbus/errors"
)

// AWSClient reads and creates secrets in AWS Secrets Manager.
// AWS secrets are not scoped by project, so the project argument of every
// method is ignored.
type AWSClient struct {
	// api is the underlying AWS Secrets Manager client (thread-safe)
	api ManagerAPI

	// logger is used for structured logging of operations (thread-safe)
	logger *slog.Logger
}

var _ Accessor = (*AWSClient)(nil)

// NewAWS creates an AWS Secrets Manager client. The configuration passed with
// WithAWSConfig is used when present, otherwise the default credential chain.
func NewAWS(ctx context.Context, opts ...Option) (*AWSClient, error) {
	options := applyOptions(opts)

	var cfg aws.Config
	if options.awsConfig != nil {
		cfg = *options.awsConfig
	} else {
		var err error
		cfg, err = awsconfig.LoadDefaultConfig(ctx)
		if err != nil {
			return nil, nerrors.NewError("secret.new", "", err).WithMessage("failed to load AWS config")
		}
	}

	return &AWSClient{
		api:    secretsmanager.NewFromConfig(cfg),
		logger: options.logger,
	}, nil
}

// NewAWSWithAPI wraps an existing Secrets Manager API implementation.
// This is primarily used for testing with mocked clients.
func NewAWSWithAPI(api ManagerAPI, opts ...Option) *AWSClient {
	options := applyOptions(opts)
	return &AWSClient{
		api:    api,
		logger: options.logger,
	}
}

// GetSecret returns the current value of the named secret. String secrets are
// returned as their UTF-8 bytes, binary secrets as stored.
func (c *AWSClient) GetSecret(ctx context.Context, _ string, name string) ([]byte, error) {
	return c.get(ctx, opGet, name, "")
}

// GetSecretVersion returns the value attached to a version stage such as
// AWSCURRENT, AWSPREVIOUS or a custom label.
func (c *AWSClient) GetSecretVersion(ctx context.Context, _ string, name, version string) ([]byte, error) {
	if version == "" {
		return nil, nerrors.InvalidInput(opGetVersion, name, "version cannot be empty")
	}
	return c.get(ctx, opGetVersion, name, version)
}

func (c *AWSClient) get(ctx context.Context, op, name, stage string) ([]byte, error) {
	if name == "" {
		return nil, nerrors.InvalidInput(op, "", "secret name cannot be empty")
	}

	if c.logger != nil {
		c.logger.DebugContext(ctx, "retrieving secret",
			"secret_name", name,
			"version_stage", stage)
	}

	input := &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(name),
	}
	if stage != "" {
		input.VersionStage = aws.String(stage)
	}

	output, err := c.api.GetSecretValue(ctx, input)
	if err != nil {
		if c.logger != nil {
			c.logger.ErrorContext(ctx, "failed to retrieve secret",
				"secret_name", name,
				"error", err)
		}
		return nil, nerrors.NewError(op, name, err)
	}

	switch {
	case output.SecretString != nil:
		return []byte(*output.SecretString), nil
	case output.SecretBinary != nil:
		return output.SecretBinary, nil
	default:
		return nil, nerrors.NewError(op, name, ErrNoData)
	}
}

// CreateSecret creates the named secret. Valid UTF-8 values are stored as a
// string secret, anything else as a binary secret.
func (c *AWSClient) CreateSecret(ctx context.Context, _ string, name string, value []byte) error {
	if name == "" {
		return nerrors.InvalidInput(opCreate, "", "secret name cannot be empty")
	}

	if c.logger != nil {
		c.logger.InfoContext(ctx, "creating secret",
			"secret_name", name)
	}

	input := &secretsmanager.CreateSecretInput{
		Name: aws.String(name),
	}
	if utf8.Valid(value) {
		input.SecretString = aws.String(string(value))
	} else {
		input.SecretBinary = value
	}

	if _, err := c.api.CreateSecret(ctx, input); err != nil {
		if c.logger != nil {
			c.logger.ErrorContext(ctx, "failed to create secret",
				"secret_name", name,
				"error", err)
		}
		return nerrors.NewError(opCreate, name, err)
	}

	if c.logger != nil {
		c.logger.InfoContext(ctx, "secret created successfully",
			"secret_name", name)
	}

	return nil
}
