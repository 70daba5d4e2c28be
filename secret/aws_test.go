package secret

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	nerrors "github.com/input-output-hk/catalyst-forge-libs/nimbus/errors"
)

// mockManagerAPI implements ManagerAPI for testing
type mockManagerAPI struct {
	getSecretValueFunc func(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
	createSecretFunc   func(ctx context.Context, params *secretsmanager.CreateSecretInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error)
}

func (m *mockManagerAPI) GetSecretValue(
	ctx context.Context,
	params *secretsmanager.GetSecretValueInput,
	optFns ...func(*secretsmanager.Options),
) (*secretsmanager.GetSecretValueOutput, error) {
	if m.getSecretValueFunc != nil {
		return m.getSecretValueFunc(ctx, params, optFns...)
	}
	return nil, fmt.Errorf("GetSecretValue not implemented")
}

func (m *mockManagerAPI) CreateSecret(
	ctx context.Context,
	params *secretsmanager.CreateSecretInput,
	optFns ...func(*secretsmanager.Options),
) (*secretsmanager.CreateSecretOutput, error) {
	if m.createSecretFunc != nil {
		return m.createSecretFunc(ctx, params, optFns...)
	}
	return nil, fmt.Errorf("CreateSecret not implemented")
}

// logCapture collects formatted log lines.
type logCapture struct {
	logs []string
}

func (c *logCapture) Write(p []byte) (n int, err error) {
	c.logs = append(c.logs, string(p))
	return len(p), nil
}

func TestNewAWS(t *testing.T) {
	cfg := aws.Config{Region: "eu-west-1"}

	client, err := NewAWS(context.Background(), WithAWSConfig(&cfg))
	require.NoError(t, err)
	assert.NotNil(t, client.api)
	assert.Nil(t, client.logger)
}

func TestAWSGetSecret(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		secretName string
		output     *secretsmanager.GetSecretValueOutput
		apiErr     error
		expected   []byte
		checkErr   func(t *testing.T, err error)
	}{
		{
			name:       "string secret",
			secretName: "db-password",
			output:     &secretsmanager.GetSecretValueOutput{SecretString: aws.String("hunter2")},
			expected:   []byte("hunter2"),
		},
		{
			name:       "binary secret",
			secretName: "tls-key",
			output:     &secretsmanager.GetSecretValueOutput{SecretBinary: []byte{0x00, 0xff, 0x10}},
			expected:   []byte{0x00, 0xff, 0x10},
		},
		{
			name:       "no value",
			secretName: "empty",
			output:     &secretsmanager.GetSecretValueOutput{},
			checkErr: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, ErrNoData)
			},
		},
		{
			name:       "not found keeps api error",
			secretName: "missing",
			apiErr: &smithy.GenericAPIError{
				Code:    "ResourceNotFoundException",
				Message: "Secrets Manager can't find the specified secret.",
			},
			checkErr: func(t *testing.T, err error) {
				assert.True(t, nerrors.IsNotFound(err))

				var apiErr smithy.APIError
				require.True(t, errors.As(err, &apiErr))
				assert.Equal(t, "ResourceNotFoundException", apiErr.ErrorCode())
			},
		},
		{
			name: "empty name",
			checkErr: func(t *testing.T, err error) {
				assert.True(t, nerrors.IsInvalidInput(err))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &mockManagerAPI{
				getSecretValueFunc: func(_ context.Context, params *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
					assert.Equal(t, tt.secretName, aws.ToString(params.SecretId))
					assert.Nil(t, params.VersionStage)
					return tt.output, tt.apiErr
				},
			}
			client := NewAWSWithAPI(api)

			value, err := client.GetSecret(ctx, "ignored-project", tt.secretName)
			if tt.checkErr != nil {
				require.Error(t, err)
				tt.checkErr(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expected, value)
		})
	}
}

func TestAWSGetSecretVersion(t *testing.T) {
	ctx := context.Background()

	client := NewAWSWithAPI(&mockManagerAPI{
		getSecretValueFunc: func(_ context.Context, params *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
			assert.Equal(t, "AWSPREVIOUS", aws.ToString(params.VersionStage))
			return &secretsmanager.GetSecretValueOutput{SecretString: aws.String("old")}, nil
		},
	})

	value, err := client.GetSecretVersion(ctx, "", "api-key", "AWSPREVIOUS")
	require.NoError(t, err)
	assert.Equal(t, []byte("old"), value)

	_, err = client.GetSecretVersion(ctx, "", "api-key", "")
	assert.True(t, nerrors.IsInvalidInput(err))
}

func TestAWSCreateSecret(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		value      []byte
		wantString *string
		wantBinary []byte
	}{
		{
			name:       "utf8 value stored as string",
			value:      []byte(`{"user":"admin"}`),
			wantString: aws.String(`{"user":"admin"}`),
		},
		{
			name:       "binary value stored as binary",
			value:      []byte{0xff, 0xfe, 0x00},
			wantBinary: []byte{0xff, 0xfe, 0x00},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got *secretsmanager.CreateSecretInput
			client := NewAWSWithAPI(&mockManagerAPI{
				createSecretFunc: func(_ context.Context, params *secretsmanager.CreateSecretInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error) {
					got = params
					return &secretsmanager.CreateSecretOutput{Name: params.Name}, nil
				},
			})

			require.NoError(t, client.CreateSecret(ctx, "", "token", tt.value))
			require.NotNil(t, got)
			assert.Equal(t, "token", aws.ToString(got.Name))
			assert.Equal(t, tt.wantString, got.SecretString)
			assert.Equal(t, tt.wantBinary, got.SecretBinary)
		})
	}

	t.Run("already exists", func(t *testing.T) {
		client := NewAWSWithAPI(&mockManagerAPI{
			createSecretFunc: func(context.Context, *secretsmanager.CreateSecretInput, ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error) {
				return nil, &smithy.GenericAPIError{Code: "ResourceExistsException", Message: "exists"}
			},
		})

		err := client.CreateSecret(ctx, "", "token", []byte("x"))
		assert.Equal(t, nerrors.CodeAlreadyExists, nerrors.CodeOf(err))
	})
}

func TestSecretValuesNeverLogged(t *testing.T) {
	ctx := context.Background()
	const value = "super-secret-password-12345"

	capture := &logCapture{}
	logger := slog.New(slog.NewTextHandler(capture, &slog.HandlerOptions{Level: slog.LevelDebug}))

	awsClient := NewAWSWithAPI(&mockManagerAPI{
		getSecretValueFunc: func(context.Context, *secretsmanager.GetSecretValueInput, ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
			return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(value)}, nil
		},
		createSecretFunc: func(context.Context, *secretsmanager.CreateSecretInput, ...func(*secretsmanager.Options)) (*secretsmanager.CreateSecretOutput, error) {
			return &secretsmanager.CreateSecretOutput{}, nil
		},
	}, WithLogger(logger))

	googleClient := NewGoogleWithAPI(newFakeGoogleAPI(), WithLogger(logger))

	_, err := awsClient.GetSecret(ctx, "", "db-password")
	require.NoError(t, err)
	require.NoError(t, awsClient.CreateSecret(ctx, "", "db-password", []byte(value)))
	require.NoError(t, googleClient.CreateSecret(ctx, "proj", "db-password", []byte(value)))
	_, err = googleClient.GetSecret(ctx, "proj", "db-password")
	require.NoError(t, err)

	require.NotEmpty(t, capture.logs)
	for _, line := range capture.logs {
		assert.NotContains(t, line, value)
		assert.Contains(t, line, "db-password")
	}
}
