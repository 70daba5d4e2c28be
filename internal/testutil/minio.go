//go:build integration

package testutil

import (
	"context"
	"fmt"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/input-output-hk/catalyst-forge-libs/nimbus/auth"
	"github.com/input-output-hk/catalyst-forge-libs/nimbus/config"
)

const (
	minioUser     = "minioadmin"
	minioPassword = "minioadmin"
)

// MinIO wraps a running MinIO server container.
type MinIO struct {
	container testcontainers.Container
	endpoint  string
}

// StartMinIO starts a MinIO server and waits until it reports ready.
func StartMinIO(ctx context.Context) (*MinIO, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "minio/minio:latest",
			Cmd:          []string{"server", "/data"},
			ExposedPorts: []string{"9000/tcp"},
			Env: map[string]string{
				"MINIO_ROOT_USER":     minioUser,
				"MINIO_ROOT_PASSWORD": minioPassword,
			},
			WaitingFor: wait.ForHTTP("/minio/health/ready").
				WithPort("9000/tcp").
				WithStartupTimeout(2 * time.Minute),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start MinIO container: %w", err)
	}

	endpoint, err := container.PortEndpoint(ctx, "9000/tcp", "")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, fmt.Errorf("failed to get MinIO endpoint: %w", err)
	}

	return &MinIO{container: container, endpoint: endpoint}, nil
}

// Config returns the settings for connecting to the container.
func (m *MinIO) Config() config.MinIO {
	return config.MinIO{
		Endpoint:  m.endpoint,
		AccessKey: minioUser,
		SecretKey: minioPassword,
	}
}

// CreateBucket creates a bucket on the server.
func (m *MinIO) CreateBucket(ctx context.Context, bucket string) error {
	client, err := minio.New(m.endpoint, auth.MinIOOptions(m.Config()))
	if err != nil {
		return fmt.Errorf("failed to create MinIO client: %w", err)
	}
	if err := client.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
		return fmt.Errorf("failed to create bucket: %w", err)
	}
	return nil
}

// Terminate stops and removes the container.
func (m *MinIO) Terminate(ctx context.Context) error {
	if err := m.container.Terminate(ctx); err != nil {
		return fmt.Errorf("failed to terminate container: %w", err)
	}
	return nil
}
