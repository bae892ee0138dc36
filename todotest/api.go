package todotest

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/adamwoolhether/todoapi/todo"
	"github.com/adamwoolhether/todoapi/web"
	"github.com/adamwoolhether/todoapi/web/errs"
	"github.com/adamwoolhether/todoapi/web/middleware"
	"github.com/adamwoolhether/todoapi/web/mux"
)

// ErrInjected is the message carried by responses forced with
// [API.FailNext].
var ErrInjected = errors.New("injected failure")

// API is an in-memory implementation of the /todos resource.
type API struct {
	app   *mux.App
	store *store

	mu     sync.Mutex
	faults []fault
}

type fault struct {
	status  int
	malform bool
	delay   time.Duration
}

// payload is the request body accepted by POST and PUT.
type payload struct {
	UserID    string `json:"userId" validate:"required"`
	ID        string `json:"id,omitempty"`
	Title     string `json:"title" validate:"required,max=512"`
	Completed bool   `json:"completed"`
}

// NewHandler builds the fake API. Logs are discarded unless [WithLogger]
// is given.
func NewHandler(optFns ...Option) (*API, error) {
	var opts options
	for _, opt := range optFns {
		if err := opt(&opts); err != nil {
			return nil, fmt.Errorf("applying todotest option: %w", err)
		}
	}
	if opts.logger == nil {
		opts.logger = slog.New(slog.DiscardHandler)
	}

	a := API{
		store: newStore(opts.seed),
	}

	muxOpts := []mux.Option{
		mux.WithLogger(opts.logger),
		mux.WithMiddleware(
			middleware.Panics(),
			a.inject,
			middleware.Errors(opts.logger),
			middleware.Logger(opts.logger),
		),
	}
	if opts.tracer != nil {
		muxOpts = append(muxOpts, mux.WithTracer(opts.tracer))
	}

	a.app = mux.New(muxOpts...)
	a.app.Get("/todos", a.list)
	a.app.Get("/todos/{id}", a.get)
	a.app.Post("/todos", a.create)
	a.app.Put("/todos/{id}", a.update)
	a.app.Delete("/todos/{id}", a.delete)

	return &a, nil
}

// ServeHTTP implements http.Handler.
func (a *API) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	a.app.ServeHTTP(w, r)
}

// FailNext makes the next request answer with status and an error body.
// Queued faults are consumed one per request, in order.
func (a *API) FailNext(status int) {
	a.push(fault{status: status})
}

// MalformNext makes the next request succeed with a truncated JSON body.
func (a *API) MalformNext() {
	a.push(fault{malform: true})
}

// DelayNext holds the next request for d, or until the client gives up.
func (a *API) DelayNext(d time.Duration) {
	a.push(fault{delay: d})
}

// Tasks returns a snapshot of the stored tasks in order.
func (a *API) Tasks() []todo.Task {
	return a.store.list("")
}

func (a *API) push(f fault) {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.faults = append(a.faults, f)
}

func (a *API) pop() (fault, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if len(a.faults) == 0 {
		return fault{}, false
	}
	f := a.faults[0]
	a.faults = a.faults[1:]

	return f, true
}

// inject applies the next queued fault, if any, to the request.
func (a *API) inject(handler mux.Handler) mux.Handler {
	return func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
		f, ok := a.pop()
		if !ok {
			return handler(ctx, w, r)
		}

		switch {
		case f.status != 0:
			return errs.New(f.status, ErrInjected)

		case f.malform:
			return handler(ctx, truncWriter{w}, r)

		case f.delay > 0:
			timer := time.NewTimer(f.delay)
			defer timer.Stop()

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
			}
		}

		return handler(ctx, w, r)
	}
}

func (a *API) list(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	userID := web.QueryString(r, "userId")

	_, span := mux.AddSpan(ctx, "todotest.list", attribute.String("userId", userID))
	tasks := a.store.list(userID)
	span.End()

	return web.RespondJSON(ctx, w, http.StatusOK, tasks)
}

func (a *API) get(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id, err := web.Param(r, "id")
	if err != nil {
		return errs.New(http.StatusBadRequest, err)
	}

	t, ok := a.store.get(id)
	if !ok {
		return errs.New(http.StatusNotFound, fmt.Errorf("task[%s] not found", id))
	}

	return web.RespondJSON(ctx, w, http.StatusOK, t)
}

func (a *API) create(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	p, err := decode(r)
	if err != nil {
		return err
	}

	_, span := mux.AddSpan(ctx, "todotest.create", attribute.String("userId", p.UserID))
	t := a.store.create(todo.NewTask{
		UserID:    p.UserID,
		Title:     p.Title,
		Completed: p.Completed,
	})
	span.End()

	return web.RespondJSON(ctx, w, http.StatusCreated, t)
}

// update replaces the task at the path id. An id in the body is ignored.
func (a *API) update(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id, err := web.Param(r, "id")
	if err != nil {
		return errs.New(http.StatusBadRequest, err)
	}

	p, err := decode(r)
	if err != nil {
		return err
	}

	t, ok := a.store.update(todo.Task{
		UserID:    p.UserID,
		ID:        id,
		Title:     p.Title,
		Completed: p.Completed,
	})
	if !ok {
		return errs.New(http.StatusNotFound, fmt.Errorf("task[%s] not found", id))
	}

	return web.RespondJSON(ctx, w, http.StatusOK, t)
}

func (a *API) delete(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
	id, err := web.Param(r, "id")
	if err != nil {
		return errs.New(http.StatusBadRequest, err)
	}

	if !a.store.delete(id) {
		return errs.New(http.StatusNotFound, fmt.Errorf("task[%s] not found", id))
	}

	return web.RespondJSON(ctx, w, http.StatusOK, struct{}{})
}

// decode reads a task payload, keeping validation failures intact for a
// 422 and reporting anything else as a bad request.
func decode(r *http.Request) (payload, error) {
	var p payload
	if err := web.Decode(r, &p); err != nil {
		if fe := errs.GetFieldErrors(err); fe != nil {
			return payload{}, fe
		}
		return payload{}, errs.New(http.StatusBadRequest, err)
	}

	return p, nil
}

// truncWriter writes only the first half of each body chunk.
type truncWriter struct {
	http.ResponseWriter
}

func (t truncWriter) Write(b []byte) (int, error) {
	if _, err := t.ResponseWriter.Write(b[:len(b)/2]); err != nil {
		return 0, err
	}
	return len(b), nil
}
