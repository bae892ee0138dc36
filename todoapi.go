// Package todoapi is a client for the JSONPlaceholder /todos resource.
//
// The client lives in package [todo]; this package only offers the entry
// point:
//
//	c, err := todoapi.NewClient(
//		todo.WithHTTPOptions(client.WithTimeout(10 * time.Second)),
//	)
//	if err != nil {
//		return err
//	}
//
//	task, err := c.GetTaskByID(ctx, "1")
//	switch {
//	case todo.IsItemNotFound(err):
//	case todo.IsNetworkError(err):
//	}
//
// Subpackages provide the HTTP transport ([client]), a resty transport
// ([restyclient]), request throttling ([throttle]) and test doubles
// ([todotest]).
package todoapi

import (
	"github.com/adamwoolhether/todoapi/todo"
)

// NewClient instantiates a new *todo.Client with the provided options.
// If not specified, the public JSONPlaceholder API is used over the
// default http.Client and http.Transport.
func NewClient(opts ...todo.Option) (*todo.Client, error) {
	return todo.New(opts...)
}
