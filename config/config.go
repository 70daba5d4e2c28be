// Package config loads the settings used to construct the nimbus helpers:
// Google Cloud credentials and endpoints, AWS region and endpoint, and logging.
//
// Values come from an optional TOML or CUE file and are overridden by
// environment variables carrying the NIMBUS_ prefix. The first underscore after the prefix
// separates the section from the key:
//
//	NIMBUS_GOOGLE_PROJECT=my-project          -> google.project
//	NIMBUS_GOOGLE_CREDENTIALS_FILE=/sa.json   -> google.credentials_file
//	NIMBUS_AWS_REGION=eu-west-1               -> aws.region
//	NIMBUS_MINIO_ACCESS_KEY=minioadmin        -> minio.access_key
//	NIMBUS_LOG_LEVEL=debug                    -> log.level
//
// The helpers themselves never read the environment; callers load a Config and
// pass it to the auth package to build client options.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/go-viper/mapstructure/v2"
	"github.com/joho/godotenv"
	toml "github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "NIMBUS_"

// Config is the root configuration.
type Config struct {
	Google Google `koanf:"google"`
	AWS    AWS    `koanf:"aws"`
	MinIO  MinIO  `koanf:"minio"`
	Log    Log    `koanf:"log"`
}

// Google holds Google Cloud settings shared by the secret, storage and task helpers.
type Google struct {
	// Project is the default project identifier.
	Project string `koanf:"project"`

	// Location is the default Cloud Tasks location (e.g. "us-central1").
	Location string `koanf:"location"`

	// CredentialsFile is a path to a service account or external account JSON file.
	CredentialsFile string `koanf:"credentials_file"`

	// CredentialsJSON is the content of a credentials JSON file.
	CredentialsJSON string `koanf:"credentials_json"`

	// Endpoint overrides the service endpoint, typically for an emulator.
	Endpoint string `koanf:"endpoint"`

	// Scopes requested for the credentials. Defaults to cloud-platform.
	Scopes []string `koanf:"scopes"`
}

// AWS holds settings for the AWS backends.
type AWS struct {
	Region   string `koanf:"region"`
	Endpoint string `koanf:"endpoint"`
	Profile  string `koanf:"profile"`
}

// MinIO holds settings for the MinIO storage backend.
type MinIO struct {
	// Endpoint is the server address as host:port, without scheme.
	Endpoint  string `koanf:"endpoint"`
	AccessKey string `koanf:"access_key"`
	SecretKey string `koanf:"secret_key"`
	Region    string `koanf:"region"`

	// Secure enables TLS.
	Secure bool `koanf:"secure"`
}

// Log configures the slog logger built by NewLogger.
type Log struct {
	// Level is one of debug, info, warn, error.
	Level string `koanf:"level"`

	// Format is either "text" or "json".
	Format string `koanf:"format"`
}

func defaultConfig() *Config {
	return &Config{
		Google: Google{
			Scopes: []string{"https://www.googleapis.com/auth/cloud-platform"},
		},
		AWS: AWS{
			Region: "us-east-1",
		},
		Log: Log{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from the file at path (skipped when path is empty)
// and then from NIMBUS_ environment variables. Files ending in .cue are parsed
// as CUE, anything else as TOML. Unset fields keep their defaults.
func Load(path string) (*Config, error) {
	cfg := defaultConfig()

	k := koanf.New(".")

	if path != "" {
		var parser koanf.Parser = toml.Parser()
		if strings.EqualFold(filepath.Ext(path), ".cue") {
			parser = CUEParser()
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, fmt.Errorf("failed to load config file: %w", err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{
		DecoderConfig: &mapstructure.DecoderConfig{
			TagName:          "koanf",
			WeaklyTypedInput: true,
			Result:           cfg,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				mapstructure.StringToSliceHookFunc(","),
				mapstructure.StringToTimeDurationHookFunc(),
			),
		},
	}); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Discover returns the first nimbus/config.toml or nimbus/config.cue found in
// the XDG config directories, or "" when there is none.
func Discover() string {
	for _, name := range []string{"nimbus/config.toml", "nimbus/config.cue"} {
		if path, err := xdg.SearchConfigFile(name); err == nil {
			return path
		}
	}
	return ""
}

// envKey maps NIMBUS_GOOGLE_CREDENTIALS_FILE to google.credentials_file.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	section, key, found := strings.Cut(s, "_")
	if !found {
		return section
	}
	return section + "." + key
}

// LoadDotEnv loads environment variables from the given .env files, or from
// ".env" when none is given. Missing files are skipped and variables already
// present in the environment are not overridden.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}

	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}

	return nil
}

// Validate checks the configuration for contradictory or malformed values.
func (c *Config) Validate() error {
	if c.Google.CredentialsFile != "" && c.Google.CredentialsJSON != "" {
		return fmt.Errorf("google: credentials_file and credentials_json are mutually exclusive")
	}

	if strings.Contains(c.MinIO.Endpoint, "://") {
		return fmt.Errorf("minio: endpoint %q must not include a scheme", c.MinIO.Endpoint)
	}

	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log: unsupported format %q", c.Log.Format)
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return fmt.Errorf("log: invalid level %q: %w", c.Log.Level, err)
	}

	return nil
}
