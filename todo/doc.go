// Package todo is a client for the TODO-list REST API exposed under /todos.
//
// Five operations are supported, each issuing exactly one request:
//
//	c, err := todo.New()
//	tasks, err := c.GetAllTasks(ctx)
//	task, err := c.GetTaskByID(ctx, "1")
//	task, err = c.AddTaskToUser(ctx, "1", "Finish this kata", false)
//	task, err = c.UpdateTask(ctx, task)
//	err = c.DeleteTaskByID(ctx, "1")
//
// # Errors
//
// Every failure is an *[Error] whose Kind is one of:
//
//   - [KindNetwork]: the transport failed, or a 2xx body could not be decoded.
//   - [KindNotFound]: the server answered 404.
//   - [KindUnknown]: any other non-2xx status; StatusCode carries it.
//
// A transport failure always wins over status inspection, and 404 is
// checked before the 2xx range. Decoding never yields a partial value.
//
// # Async
//
// The *Async methods, and [Go] for arbitrary calls, run an operation in the
// background and deliver its outcome exactly once through a [Result].
package todo
