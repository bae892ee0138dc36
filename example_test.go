package todoapi_test

import (
	"context"
	"fmt"
	"net/http/httptest"
	"time"

	"github.com/adamwoolhether/todoapi"
	"github.com/adamwoolhether/todoapi/client"
	"github.com/adamwoolhether/todoapi/todo"
	"github.com/adamwoolhether/todoapi/todotest"
)

func ExampleNewClient() {
	api, _ := todotest.NewHandler(todotest.WithSeed(
		todo.Task{UserID: "1", ID: "1", Title: "delectus aut autem"},
	))
	ts := httptest.NewServer(api)
	defer ts.Close()

	c, err := todoapi.NewClient(
		todo.WithBaseURL(ts.URL),
		todo.WithHTTPOptions(client.WithTimeout(5*time.Second)),
	)
	if err != nil {
		fmt.Println("build error:", err)
		return
	}

	task, err := c.GetTaskByID(context.Background(), "1")
	if err != nil {
		fmt.Println("get error:", err)
		return
	}

	fmt.Println(task.Title)
	// Output: delectus aut autem
}
