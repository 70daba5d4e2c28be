// Package nimbus is a set of small helper clients over the Google Cloud Secret
// Manager, Cloud Storage and Cloud Tasks SDKs, with AWS and MinIO backends for
// the secret and storage helpers.
//
// Each helper wraps an SDK client and composes one to three of its calls:
//
//   - secret: read the latest (or a given) version of a secret as bytes, create secrets
//   - storage: upload and download whole objects from memory or local files, delete objects
//   - task: build HTTP tasks and enqueue them, returning the enqueue response
//
// Authentication, transport, retries and pagination stay in the wrapped SDKs.
// Errors come back wrapped with the failing operation and resource, and the SDK
// error stays reachable with errors.As. The errors package classifies them with
// provider-neutral predicates such as IsNotFound.
//
// Settings are loaded with the config package and turned into SDK options by
// the auth package:
//
//	cfg, err := config.Load(config.Discover())
//	if err != nil {
//	    return err
//	}
//	opts, err := auth.GoogleClientOptions(ctx, cfg.Google)
//	if err != nil {
//	    return err
//	}
//	logger := config.NewLogger(cfg.Log, os.Stderr)
//
//	secrets, err := secret.NewGoogle(ctx, secret.WithClientOptions(opts...), secret.WithLogger(logger))
//	objects, err := storage.NewGCS(ctx, storage.WithClientOptions(opts...), storage.WithLogger(logger))
//	tasks, err := task.New(ctx, task.WithClientOptions(opts...), task.WithLogger(logger))
package nimbus
