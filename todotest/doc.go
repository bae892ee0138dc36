// Package todotest provides test doubles for the todo API.
//
// [NewServer] runs an in-memory /todos implementation behind a loopback
// listener, with hooks to force the next response to fail, arrive malformed
// or arrive late:
//
//	srv := todotest.NewServer(t, todotest.WithFixture("testdata/getTasksResponse.json"))
//	srv.FailNext(http.StatusInternalServerError)
//
//	c, _ := todo.New(todo.WithBaseURL(srv.URL()))
//
// [Stub] replaces the transport instead, answering canned responses keyed
// by method and URL without touching the network:
//
//	stub := todotest.NewStub()
//	stub.Respond(http.MethodGet, "http://api.test/todos/1", http.StatusNotFound, []byte(`{}`))
//
//	c, _ := todo.New(
//		todo.WithBaseURL("http://api.test"),
//		todo.WithHTTPOptions(client.WithTransport(stub)),
//	)
package todotest
