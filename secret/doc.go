// Package secret provides small helper clients for reading and creating secrets
// in Google Cloud Secret Manager and AWS Secrets Manager.
//
// Both clients implement Accessor and delegate every call to the wrapped SDK
// client: there is no caching, retrying or local state. Errors returned by the
// SDK are wrapped with operation context and stay reachable with errors.As, so
// gRPC status codes and AWS API error codes can still be inspected. Use
// nerrors.IsNotFound and friends for provider-neutral checks.
//
// # Security
//
// Secret values are never logged; only project and secret names are.
//
// # Thread safety
//
// All exported client methods are safe for concurrent use. The wrapped SDK
// clients are thread-safe and the helpers hold no mutable state.
//
// # Usage
//
//	client, err := secret.NewGoogle(ctx, secret.WithLogger(slog.Default()))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	value, err := client.GetSecret(ctx, "my-project", "db-password")
package secret
