package todo

import (
	"context"
	"sync"
)

// Result is the single-shot completion of an operation started with [Go].
// It completes exactly once, with either a value or an error.
type Result[T any] struct {
	done chan struct{}

	mu    sync.Mutex
	value T
	err   error
	thens []func(T, error)
}

// Go runs fn on its own goroutine and returns immediately. Results of
// separate calls complete in no particular order.
func Go[T any](ctx context.Context, fn func(context.Context) (T, error)) *Result[T] {
	r := &Result[T]{done: make(chan struct{})}

	go func() {
		v, err := fn(ctx)
		r.complete(v, err)
	}()

	return r
}

// Done returns a channel that is closed once the result is available.
func (r *Result[T]) Done() <-chan struct{} { return r.done }

// Wait blocks until the operation completes.
func (r *Result[T]) Wait() (T, error) {
	<-r.done
	return r.value, r.err
}

// Err blocks until the operation completes and returns its error.
func (r *Result[T]) Err() error {
	<-r.done
	return r.err
}

// Then registers fn to receive the outcome. fn runs exactly once: on the
// completing goroutine if registered early, or immediately on the caller's
// goroutine if the result is already available.
func (r *Result[T]) Then(fn func(T, error)) {
	r.mu.Lock()
	select {
	case <-r.done:
		r.mu.Unlock()
		fn(r.value, r.err)
		return
	default:
	}
	r.thens = append(r.thens, fn)
	r.mu.Unlock()
}

func (r *Result[T]) complete(v T, err error) {
	if err != nil {
		var zero T
		v = zero
	}

	r.mu.Lock()
	r.value, r.err = v, err
	thens := r.thens
	r.thens = nil
	close(r.done)
	r.mu.Unlock()

	for _, fn := range thens {
		fn(v, err)
	}
}

// GetAllTasksAsync is the non-blocking form of [Client.GetAllTasks].
func (c *Client) GetAllTasksAsync(ctx context.Context) *Result[[]Task] {
	return Go(ctx, c.GetAllTasks)
}

// GetTaskByIDAsync is the non-blocking form of [Client.GetTaskByID].
func (c *Client) GetTaskByIDAsync(ctx context.Context, id string) *Result[Task] {
	return Go(ctx, func(ctx context.Context) (Task, error) {
		return c.GetTaskByID(ctx, id)
	})
}

// AddTaskToUserAsync is the non-blocking form of [Client.AddTaskToUser].
func (c *Client) AddTaskToUserAsync(ctx context.Context, userID, title string, completed bool) *Result[Task] {
	return Go(ctx, func(ctx context.Context) (Task, error) {
		return c.AddTaskToUser(ctx, userID, title, completed)
	})
}

// UpdateTaskAsync is the non-blocking form of [Client.UpdateTask].
func (c *Client) UpdateTaskAsync(ctx context.Context, task Task) *Result[Task] {
	return Go(ctx, func(ctx context.Context) (Task, error) {
		return c.UpdateTask(ctx, task)
	})
}

// DeleteTaskByIDAsync is the non-blocking form of [Client.DeleteTaskByID].
func (c *Client) DeleteTaskByIDAsync(ctx context.Context, id string) *Result[struct{}] {
	return Go(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, c.DeleteTaskByID(ctx, id)
	})
}
