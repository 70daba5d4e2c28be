// Package task builds Cloud Tasks HTTP tasks and enqueues them.
//
// NewTask assembles a *cloudtasks.Task from a target URL, an HTTP method and
// optional fields. Client.PushTask submits a task to a queue with the Cloud
// Tasks REST API and returns the HTTP response of that create call together
// with the task as stored by the service. Pushing only enqueues: the response is
// the queue's acknowledgment, not the response of the dispatched request, which
// happens later and asynchronously.
//
// Retry behaviour is configured on the queue in Cloud Tasks v2, so tasks carry
// no retry settings.
//
// # Usage
//
//	client, err := task.New(ctx, task.WithClientOptions(opts...))
//	if err != nil {
//	    return err
//	}
//
//	queue := task.QueueName("my-project", "europe-west1", "emails")
//	resp, created, err := client.Push(ctx, queue, "https://example.com/send", http.MethodPost, task.ViewBasic,
//	    task.WithBody(payload),
//	    task.WithHeaders(map[string]string{"Content-Type": "application/json"}),
//	)
package task
