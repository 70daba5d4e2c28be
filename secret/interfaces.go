package secret

import (
	"context"

	secretmanager "cloud.google.com/go/secretmanager/apiv1"
	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/googleapis/gax-go/v2"
)

// GoogleAPI is the subset of the Secret Manager client used by GoogleClient.
type GoogleAPI interface {
	// AccessSecretVersion returns the payload of a secret version.
	AccessSecretVersion(
		ctx context.Context,
		req *secretmanagerpb.AccessSecretVersionRequest,
		opts ...gax.CallOption,
	) (*secretmanagerpb.AccessSecretVersionResponse, error)

	// CreateSecret creates a secret without any version.
	CreateSecret(
		ctx context.Context,
		req *secretmanagerpb.CreateSecretRequest,
		opts ...gax.CallOption,
	) (*secretmanagerpb.Secret, error)

	// AddSecretVersion adds a version holding the given payload.
	AddSecretVersion(
		ctx context.Context,
		req *secretmanagerpb.AddSecretVersionRequest,
		opts ...gax.CallOption,
	) (*secretmanagerpb.SecretVersion, error)

	// Close closes the connection to the API service.
	Close() error
}

// ManagerAPI is the subset of the AWS Secrets Manager client used by AWSClient.
type ManagerAPI interface {
	// GetSecretValue retrieves the value of a secret.
	GetSecretValue(
		ctx context.Context,
		params *secretsmanager.GetSecretValueInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.GetSecretValueOutput, error)

	// CreateSecret creates a new secret.
	CreateSecret(
		ctx context.Context,
		params *secretsmanager.CreateSecretInput,
		optFns ...func(*secretsmanager.Options),
	) (*secretsmanager.CreateSecretOutput, error)
}

var (
	_ GoogleAPI  = (*secretmanager.Client)(nil)
	_ ManagerAPI = (*secretsmanager.Client)(nil)
)
