package task

import (
	"context"
	"log/slog"
	"net/http"

	"google.golang.org/api/cloudtasks/v2"

	nerrors "github.com/input-output-hk/catalyst-forge-libs/nimbus/errors"
)

// Response views controlling how much of the task the service returns.
const (
	ViewBasic = "BASIC"
	ViewFull  = "FULL"
)

const opPush = "task.push"

// Response is the HTTP response of the create call that enqueued a task.
type Response struct {
	StatusCode int
	Header     http.Header
}

// TasksAPI is the task creation call used by Client.
type TasksAPI interface {
	// CreateTask creates req.Task in the queue named parent.
	CreateTask(ctx context.Context, parent string, req *cloudtasks.CreateTaskRequest) (*cloudtasks.Task, error)
}

// AdaptService wraps a *cloudtasks.Service so it satisfies TasksAPI.
func AdaptService(svc *cloudtasks.Service) TasksAPI {
	return serviceAdapter{tasks: svc.Projects.Locations.Queues.Tasks}
}

type serviceAdapter struct {
	tasks *cloudtasks.ProjectsLocationsQueuesTasksService
}

func (a serviceAdapter) CreateTask(
	ctx context.Context,
	parent string,
	req *cloudtasks.CreateTaskRequest,
) (*cloudtasks.Task, error) {
	return a.tasks.Create(parent, req).Context(ctx).Do()
}

// Client enqueues tasks in Cloud Tasks queues.
type Client struct {
	api    TasksAPI
	logger *slog.Logger
}

// New creates a Cloud Tasks client from the options passed with
// WithClientOptions; without any, Application Default Credentials are used.
func New(ctx context.Context, opts ...Option) (*Client, error) {
	options := applyOptions(opts)

	svc, err := cloudtasks.NewService(ctx, options.googleOptions...)
	if err != nil {
		return nil, nerrors.NewError("task.new", "", err).WithMessage("failed to create Cloud Tasks service")
	}

	return &Client{
		api:    AdaptService(svc),
		logger: options.logger,
	}, nil
}

// NewWithAPI wraps an existing TasksAPI implementation.
// This is primarily used for testing with mocked clients.
func NewWithAPI(api TasksAPI, opts ...Option) *Client {
	options := applyOptions(opts)
	return &Client{
		api:    api,
		logger: options.logger,
	}
}

// PushTask enqueues t in the fully-qualified queue and returns the HTTP
// response of the create call with the task as stored by the service. An empty
// responseView leaves the choice to the service (BASIC).
//
// Errors from the service, such as a missing queue or an exhausted quota, are
// returned wrapped and remain reachable as *googleapi.Error.
func (c *Client) PushTask(
	ctx context.Context,
	queue string,
	t *cloudtasks.Task,
	responseView string,
) (*Response, *cloudtasks.Task, error) {
	if queue == "" {
		return nil, nil, nerrors.InvalidInput(opPush, "", "queue cannot be empty")
	}
	if t == nil {
		return nil, nil, nerrors.InvalidInput(opPush, queue, "task cannot be nil")
	}

	if c.logger != nil {
		attrs := []any{"queue", queue, "task_name", t.Name}
		if t.HttpRequest != nil {
			attrs = append(attrs, "url", t.HttpRequest.Url, "method", t.HttpRequest.HttpMethod)
		}
		c.logger.DebugContext(ctx, "pushing task", attrs...)
	}

	created, err := c.api.CreateTask(ctx, queue, &cloudtasks.CreateTaskRequest{
		Task:         t,
		ResponseView: responseView,
	})
	if err != nil {
		if c.logger != nil {
			c.logger.ErrorContext(ctx, "failed to push task",
				"queue", queue,
				"error", err)
		}
		return nil, nil, nerrors.NewError(opPush, queue, err)
	}

	resp := &Response{
		StatusCode: created.HTTPStatusCode,
		Header:     created.Header,
	}

	if c.logger != nil {
		c.logger.InfoContext(ctx, "task enqueued",
			"queue", queue,
			"task_name", created.Name,
			"status", resp.StatusCode)
	}

	return resp, created, nil
}

// Push builds a task with NewTask and enqueues it with PushTask.
func (c *Client) Push(
	ctx context.Context,
	queue, url, method, responseView string,
	opts ...TaskOption,
) (*Response, *cloudtasks.Task, error) {
	return c.PushTask(ctx, queue, NewTask(url, method, opts...), responseView)
}
