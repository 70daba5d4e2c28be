package secret

import (
	"context"
	"hash/crc32"
	"log/slog"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"

	nerrors "github.com/input-output-hk/catalyst-forge-libs/nimbus/errors"
)

var crc32c = crc32.MakeTable(crc32.Castagnoli)

// GoogleClient reads and creates secrets in Google Cloud Secret Manager.
type GoogleClient struct {
	// api is the underlying Secret Manager client (thread-safe)
	api GoogleAPI

	// logger is used for structured logging of operations (thread-safe)
	logger *slog.Logger
}

var _ Accessor = (*GoogleClient)(nil)

// NewGoogle creates a Secret Manager client from the options passed with
// WithClientOptions; without any, Application Default Credentials are used.
//
// Example usage:
//
//	opts, err := auth.GoogleClientOptions(ctx, cfg.Google)
//	if err != nil {
//	    return err
//	}
//	client, err := secret.NewGoogle(ctx, secret.WithClientOptions(opts...))
func NewGoogle(ctx context.Context, opts ...Option) (*GoogleClient, error) {
	options := applyOptions(opts)

	api, err := secretmanager.NewClient(ctx, options.googleOptions...)
	if err != nil {
		return nil, nerrors.NewError("secret.new", "", err).WithMessage("failed to create Secret Manager client")
	}

	return &GoogleClient{
		api:    api,
		logger: options.logger,
	}, nil
}

// NewGoogleWithAPI wraps an existing Secret Manager API implementation.
// This is primarily used for testing with mocked clients.
func NewGoogleWithAPI(api GoogleAPI, opts ...Option) *GoogleClient {
	options := applyOptions(opts)
	return &GoogleClient{
		api:    api,
		logger: options.logger,
	}
}

// GetSecret returns the payload of the latest version of the named secret.
// The bytes are returned as stored; callers decide how to decode them.
func (c *GoogleClient) GetSecret(ctx context.Context, project, name string) ([]byte, error) {
	return c.access(ctx, opGet, project, name, LatestVersion)
}

// GetSecretVersion returns the payload of a specific version, given either
// as a version number or an alias.
func (c *GoogleClient) GetSecretVersion(ctx context.Context, project, name, version string) ([]byte, error) {
	if version == "" {
		return nil, nerrors.InvalidInput(opGetVersion, SecretName(project, name), "version cannot be empty")
	}
	return c.access(ctx, opGetVersion, project, name, version)
}

func (c *GoogleClient) access(ctx context.Context, op, project, name, version string) ([]byte, error) {
	if err := requireNames(op, project, name); err != nil {
		return nil, err
	}

	resource := VersionName(project, name, version)

	if c.logger != nil {
		c.logger.DebugContext(ctx, "accessing secret version",
			"project", project,
			"secret_name", name,
			"version", version)
	}

	resp, err := c.api.AccessSecretVersion(ctx, &secretmanagerpb.AccessSecretVersionRequest{
		Name: resource,
	})
	if err != nil {
		if c.logger != nil {
			c.logger.ErrorContext(ctx, "failed to access secret version",
				"project", project,
				"secret_name", name,
				"version", version,
				"error", err)
		}
		return nil, nerrors.NewError(op, resource, err)
	}

	payload := resp.GetPayload()
	if payload == nil {
		return nil, nerrors.NewError(op, resource, ErrNoPayload)
	}
	if payload.Data == nil {
		return nil, nerrors.NewError(op, resource, ErrNoData)
	}

	if payload.DataCrc32C != nil && int64(crc32.Checksum(payload.Data, crc32c)) != payload.GetDataCrc32C() {
		return nil, nerrors.NewError(op, resource, nerrors.ErrChecksumMismatch)
	}

	return payload.Data, nil
}

// CreateSecret creates the secret with automatic replication and adds value as
// its first version.
func (c *GoogleClient) CreateSecret(ctx context.Context, project, name string, value []byte) error {
	if err := requireNames(opCreate, project, name); err != nil {
		return err
	}

	if c.logger != nil {
		c.logger.InfoContext(ctx, "creating secret",
			"project", project,
			"secret_name", name)
	}

	_, err := c.api.CreateSecret(ctx, &secretmanagerpb.CreateSecretRequest{
		Parent:   ParentName(project),
		SecretId: name,
		Secret: &secretmanagerpb.Secret{
			Replication: &secretmanagerpb.Replication{
				Replication: &secretmanagerpb.Replication_Automatic_{
					Automatic: &secretmanagerpb.Replication_Automatic{},
				},
			},
		},
	})
	if err != nil {
		return nerrors.NewError(opCreate, SecretName(project, name), err)
	}

	_, err = c.api.AddSecretVersion(ctx, &secretmanagerpb.AddSecretVersionRequest{
		Parent: SecretName(project, name),
		Payload: &secretmanagerpb.SecretPayload{
			Data: value,
		},
	})
	if err != nil {
		return nerrors.NewError(opCreate, SecretName(project, name), err).WithMessage("failed to add first version")
	}

	if c.logger != nil {
		c.logger.InfoContext(ctx, "secret created successfully",
			"project", project,
			"secret_name", name)
	}

	return nil
}

// Close releases the underlying Secret Manager connection.
func (c *GoogleClient) Close() error {
	return c.api.Close()
}

func requireNames(op, project, name string) error {
	if project == "" {
		return nerrors.InvalidInput(op, "", "project cannot be empty")
	}
	if name == "" {
		return nerrors.InvalidInput(op, ParentName(project), "secret name cannot be empty")
	}
	return nil
}
