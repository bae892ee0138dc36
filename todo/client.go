package todo

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/adamwoolhether/todoapi/client"
)

// DefaultBaseURL is the public JSONPlaceholder deployment of the API.
const DefaultBaseURL = "http://jsonplaceholder.typicode.com"

const todosPath = "todos"

// Operation names carried in [Error.Op].
const (
	OpGetAllTasks    = "get all tasks"
	OpGetTaskByID    = "get task by id"
	OpAddTaskToUser  = "add task to user"
	OpUpdateTask     = "update task"
	OpDeleteTaskByID = "delete task by id"
)

// Doer performs one HTTP exchange and returns the raw outcome. A non-nil
// error means no complete response was obtained.
type Doer interface {
	Exchange(ctx context.Context, call client.Call) (*client.Outcome, error)
}

// Client talks to the /todos resource. It is safe for concurrent use; each
// call issues exactly one request and classifies its own response.
type Client struct {
	doer    Doer
	baseURL *url.URL
	logger  *slog.Logger
}

// New builds a Client. Without options it targets [DefaultBaseURL] over a
// default *[client.Client].
func New(optFns ...Option) (*Client, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying todo option: %w", err)
		}
	}

	c := &Client{
		doer:    opts.doer,
		baseURL: opts.baseURL,
		logger:  opts.logger,
	}

	if c.logger == nil {
		c.logger = slog.Default()
	}

	if c.baseURL == nil {
		u, err := url.Parse(DefaultBaseURL)
		if err != nil {
			return nil, fmt.Errorf("parsing default base url: %w", err)
		}
		c.baseURL = u
	}

	if c.doer == nil {
		httpOpts := append([]client.Option{client.WithLogger(c.logger)}, opts.httpOpts...)
		hc, err := client.Build(httpOpts...)
		if err != nil {
			return nil, fmt.Errorf("building http client: %w", err)
		}
		c.doer = hc
	}

	return c, nil
}

// GetAllTasks fetches every task, in the order the server returns them.
func (c *Client) GetAllTasks(ctx context.Context) ([]Task, error) {
	out, err := c.exchange(ctx, OpGetAllTasks, http.MethodGet, c.endpoint(""), nil)

	return classify[[]Task](OpGetAllTasks, out, err)
}

// GetTaskByID fetches a single task.
func (c *Client) GetTaskByID(ctx context.Context, id string) (Task, error) {
	if id == "" {
		return Task{}, fmt.Errorf("%s: %w", OpGetTaskByID, ErrInvalidID)
	}

	out, err := c.exchange(ctx, OpGetTaskByID, http.MethodGet, c.endpoint(id), nil)

	return classify[Task](OpGetTaskByID, out, err)
}

// AddTaskToUser creates a task owned by userID and returns it as stored by
// the server, id included.
func (c *Client) AddTaskToUser(ctx context.Context, userID, title string, completed bool) (Task, error) {
	body := NewTask{
		UserID:    userID,
		Title:     title,
		Completed: completed,
	}

	out, err := c.exchange(ctx, OpAddTaskToUser, http.MethodPost, c.endpoint(""), body)

	return classify[Task](OpAddTaskToUser, out, err)
}

// UpdateTask replaces the task identified by task.ID with task.
func (c *Client) UpdateTask(ctx context.Context, task Task) (Task, error) {
	if task.ID == "" {
		return Task{}, fmt.Errorf("%s: %w", OpUpdateTask, ErrInvalidID)
	}

	out, err := c.exchange(ctx, OpUpdateTask, http.MethodPut, c.endpoint(task.ID), task)

	return classify[Task](OpUpdateTask, out, err)
}

// DeleteTaskByID removes a task. A nil error means the server accepted the
// deletion; the response body is ignored.
func (c *Client) DeleteTaskByID(ctx context.Context, id string) error {
	if id == "" {
		return fmt.Errorf("%s: %w", OpDeleteTaskByID, ErrInvalidID)
	}

	out, err := c.exchange(ctx, OpDeleteTaskByID, http.MethodDelete, c.endpoint(id), nil)

	return classifyStatus(OpDeleteTaskByID, out, err)
}

// exchange fires one call through the doer and logs how it went.
func (c *Client) exchange(ctx context.Context, op, method string, u *url.URL, body any) (*client.Outcome, error) {
	call := client.Call{
		Method: method,
		URL:    u,
		Body:   body,
	}

	out, err := c.doer.Exchange(ctx, call)
	if err != nil {
		c.logger.DebugContext(ctx, "todo exchange failed", "op", op, "method", method, "path", u.Path, "error", err)
		return nil, err
	}

	if out != nil {
		c.logger.DebugContext(ctx, "todo exchange", "op", op, "method", method, "path", u.Path, "status", out.StatusCode, "bytes", len(out.Body))
	}

	return out, nil
}

// endpoint returns the /todos URL, or /todos/{id} with id escaped as a
// single path segment.
func (c *Client) endpoint(id string) *url.URL {
	u := *c.baseURL
	u.RawQuery = ""
	u.Fragment = ""

	prefix := strings.TrimSuffix(c.baseURL.Path, "/")
	rawPrefix := strings.TrimSuffix(c.baseURL.EscapedPath(), "/")

	u.Path = prefix + "/" + todosPath
	u.RawPath = ""
	if id != "" {
		u.Path += "/" + id
		u.RawPath = rawPrefix + "/" + todosPath + "/" + url.PathEscape(id)
	}

	return &u
}
