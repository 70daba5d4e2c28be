// Package auth turns configuration into authenticated client settings for the
// wrapped SDKs. It does not implement any credential flow itself: Google
// credentials are resolved by golang.org/x/oauth2/google and AWS credentials by
// the AWS SDK default chain. MinIO uses static keys from the configuration,
// falling back to the MINIO_ and AWS_ environment variables.
package auth

import (
	"context"
	"fmt"
	"os"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"

	"github.com/input-output-hk/catalyst-forge-libs/nimbus/config"
)

// DefaultScope is requested when the configuration lists no scopes.
const DefaultScope = "https://www.googleapis.com/auth/cloud-platform"

// GoogleClientOptions builds the client options shared by the Secret Manager,
// Cloud Storage and Cloud Tasks clients.
//
// Credentials are taken, in order, from inline JSON, a credentials file, or
// Application Default Credentials. When an endpoint is configured without any
// explicit credentials it is treated as an emulator and authentication is disabled.
func GoogleClientOptions(ctx context.Context, cfg config.Google) ([]option.ClientOption, error) {
	scopes := cfg.Scopes
	if len(scopes) == 0 {
		scopes = []string{DefaultScope}
	}

	var opts []option.ClientOption

	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	var credJSON []byte
	switch {
	case cfg.CredentialsJSON != "":
		credJSON = []byte(cfg.CredentialsJSON)
	case cfg.CredentialsFile != "":
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		credJSON = data
	case cfg.Endpoint != "":
		return append(opts, option.WithoutAuthentication()), nil
	}

	var (
		creds *google.Credentials
		err   error
	)
	if credJSON != nil {
		creds, err = google.CredentialsFromJSON(ctx, credJSON, scopes...)
	} else {
		creds, err = google.FindDefaultCredentials(ctx, scopes...)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve google credentials: %w", err)
	}

	return append(opts, option.WithCredentials(creds)), nil
}

// AWSConfig loads the AWS SDK configuration for the secret and storage AWS
// backends. A configured endpoint replaces the service endpoints, which is how
// LocalStack is targeted.
func AWSConfig(ctx context.Context, cfg config.AWS) (aws.Config, error) {
	var loadOpts []func(*awsconfig.LoadOptions) error

	if cfg.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Region))
	}
	if cfg.Profile != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(cfg.Profile))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load AWS config: %w", err)
	}

	if cfg.Endpoint != "" {
		awsCfg.BaseEndpoint = aws.String(cfg.Endpoint)
	}

	return awsCfg, nil
}

// MinIOOptions builds the options passed to storage.NewMinIO. Without configured
// keys, credentials are read from MINIO_ACCESS_KEY/MINIO_SECRET_KEY or the AWS_
// environment variables.
func MinIOOptions(cfg config.MinIO) *minio.Options {
	creds := credentials.NewChainCredentials([]credentials.Provider{
		&credentials.EnvMinio{},
		&credentials.EnvAWS{},
	})
	if cfg.AccessKey != "" {
		creds = credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, "")
	}

	return &minio.Options{
		Creds:  creds,
		Secure: cfg.Secure,
		Region: cfg.Region,
	}
}
