package secret

import (
	"context"
	"errors"
	"fmt"
)

// LatestVersion is the version alias resolved by GetSecret.
const LatestVersion = "latest"

// Operation names used in returned errors.
const (
	opGet        = "secret.get"
	opGetVersion = "secret.get_version"
	opCreate     = "secret.create"
)

var (
	// ErrNoPayload is returned when an access response carries no payload.
	ErrNoPayload = errors.New("no payload in secret version response")

	// ErrNoData is returned when the payload of a secret version holds no data.
	ErrNoData = errors.New("no data in secret payload")
)

// Accessor is the set of secret operations shared by every backend.
type Accessor interface {
	// GetSecret returns the payload of the latest version of a secret.
	GetSecret(ctx context.Context, project, name string) ([]byte, error)

	// GetSecretVersion returns the payload of a specific secret version.
	GetSecretVersion(ctx context.Context, project, name, version string) ([]byte, error)

	// CreateSecret creates a secret and stores value as its first version.
	CreateSecret(ctx context.Context, project, name string, value []byte) error
}

// ParentName returns the Secret Manager resource name of a project.
func ParentName(project string) string {
	return fmt.Sprintf("projects/%s", project)
}

// SecretName returns the Secret Manager resource name of a secret.
func SecretName(project, name string) string {
	return fmt.Sprintf("projects/%s/secrets/%s", project, name)
}

// VersionName returns the Secret Manager resource name of a secret version.
func VersionName(project, name, version string) string {
	return fmt.Sprintf("projects/%s/secrets/%s/versions/%s", project, name, version)
}
