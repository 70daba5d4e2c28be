package auth

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/input-output-hk/catalyst-forge-libs/nimbus/config"
)

// authorizedUserJSON is a syntactically valid authorized_user credential; it is
// never exchanged for a token in these tests.
const authorizedUserJSON = `{
  "type": "authorized_user",
  "client_id": "test-client.apps.googleusercontent.com",
  "client_secret": "test-secret",
  "refresh_token": "test-refresh-token"
}`

func TestGoogleClientOptions(t *testing.T) {
	dir := t.TempDir()
	credFile := filepath.Join(dir, "creds.json")
	require.NoError(t, os.WriteFile(credFile, []byte(authorizedUserJSON), 0o600))

	tests := []struct {
		name      string
		cfg       config.Google
		wantCount int
		wantErr   bool
	}{
		{
			name:      "emulator endpoint without credentials",
			cfg:       config.Google{Endpoint: "http://localhost:8123/"},
			wantCount: 2,
		},
		{
			name:      "inline credentials",
			cfg:       config.Google{CredentialsJSON: authorizedUserJSON},
			wantCount: 1,
		},
		{
			name:      "credentials file with endpoint",
			cfg:       config.Google{CredentialsFile: credFile, Endpoint: "https://example.test/"},
			wantCount: 2,
		},
		{
			name:    "missing credentials file",
			cfg:     config.Google{CredentialsFile: filepath.Join(dir, "missing.json")},
			wantErr: true,
		},
		{
			name:    "malformed inline credentials",
			cfg:     config.Google{CredentialsJSON: "{not json"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := GoogleClientOptions(context.Background(), tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Len(t, opts, tt.wantCount)
		})
	}
}

func TestAWSConfig(t *testing.T) {
	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")

	cfg, err := AWSConfig(context.Background(), config.AWS{
		Region:   "eu-west-1",
		Endpoint: "http://localhost:4566",
	})
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1", cfg.Region)
	require.NotNil(t, cfg.BaseEndpoint)
	assert.Equal(t, "http://localhost:4566", *cfg.BaseEndpoint)
}

func TestMinIOOptions(t *testing.T) {
	t.Run("static keys", func(t *testing.T) {
		opts := MinIOOptions(config.MinIO{
			AccessKey: "access",
			SecretKey: "secret",
			Region:    "eu-west-1",
			Secure:    true,
		})

		value, err := opts.Creds.Get()
		require.NoError(t, err)
		assert.Equal(t, "access", value.AccessKeyID)
		assert.Equal(t, "secret", value.SecretAccessKey)
		assert.True(t, opts.Secure)
		assert.Equal(t, "eu-west-1", opts.Region)
	})

	t.Run("environment", func(t *testing.T) {
		t.Setenv("MINIO_ACCESS_KEY", "env-access")
		t.Setenv("MINIO_SECRET_KEY", "env-secret")

		opts := MinIOOptions(config.MinIO{})

		value, err := opts.Creds.Get()
		require.NoError(t, err)
		assert.Equal(t, "env-access", value.AccessKeyID)
		assert.False(t, opts.Secure)
	})
}
