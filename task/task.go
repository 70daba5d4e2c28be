package task

import (
	"encoding/base64"
	"fmt"
	"maps"
	"strconv"
	"time"

	"google.golang.org/api/cloudtasks/v2"
)

// TaskOption sets an optional field of a task built by NewTask.
type TaskOption func(*cloudtasks.Task)

// NewTask returns an HTTP task targeting url with the given method. Fields
// without an option stay unset so the service applies its defaults. Nothing is
// validated here; the service rejects malformed tasks when they are pushed.
func NewTask(url, method string, opts ...TaskOption) *cloudtasks.Task {
	t := &cloudtasks.Task{
		HttpRequest: &cloudtasks.HttpRequest{
			Url:        url,
			HttpMethod: method,
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WithBody sets the request body. Cloud Tasks only accepts a body for POST,
// PUT and PATCH requests.
func WithBody(body []byte) TaskOption {
	return func(t *cloudtasks.Task) {
		t.HttpRequest.Body = base64.StdEncoding.EncodeToString(body)
	}
}

// WithHeaders sets the request headers.
func WithHeaders(headers map[string]string) TaskOption {
	return func(t *cloudtasks.Task) {
		t.HttpRequest.Headers = maps.Clone(headers)
	}
}

// WithName sets the task name, which must be a full
// projects/*/locations/*/queues/*/tasks/* resource name. Named tasks are
// deduplicated by the service.
func WithName(name string) TaskOption {
	return func(t *cloudtasks.Task) {
		t.Name = name
	}
}

// WithScheduleTime delays dispatch until at.
func WithScheduleTime(at time.Time) TaskOption {
	return func(t *cloudtasks.Task) {
		t.ScheduleTime = at.UTC().Format(time.RFC3339Nano)
	}
}

// WithDispatchDeadline sets how long the service waits for the target to respond.
func WithDispatchDeadline(d time.Duration) TaskOption {
	return func(t *cloudtasks.Task) {
		t.DispatchDeadline = formatDuration(d)
	}
}

// WithOIDCToken makes the service attach an OIDC token for serviceAccount.
// An empty audience defaults to the target URL.
func WithOIDCToken(serviceAccount, audience string) TaskOption {
	return func(t *cloudtasks.Task) {
		t.HttpRequest.OidcToken = &cloudtasks.OidcToken{
			ServiceAccountEmail: serviceAccount,
			Audience:            audience,
		}
	}
}

// WithOAuthToken makes the service attach an OAuth access token for
// serviceAccount. Only use it for targets on *.googleapis.com.
func WithOAuthToken(serviceAccount, scope string) TaskOption {
	return func(t *cloudtasks.Task) {
		t.HttpRequest.OauthToken = &cloudtasks.OAuthToken{
			ServiceAccountEmail: serviceAccount,
			Scope:               scope,
		}
	}
}

// QueueName returns the fully-qualified name of a queue.
func QueueName(project, location, queue string) string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", project, location, queue)
}

// formatDuration renders d in the JSON form of google.protobuf.Duration.
func formatDuration(d time.Duration) string {
	return strconv.FormatFloat(d.Seconds(), 'f', -1, 64) + "s"
}
