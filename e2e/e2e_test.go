//go:build integration

// Package e2e_test exercises the todo client against the public
// JSONPlaceholder API. Run with:
//
//	go test -tags integration ./e2e/...
package e2e_test

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/todoapi"
	"github.com/adamwoolhether/todoapi/client"
	"github.com/adamwoolhether/todoapi/client/restyclient"
	"github.com/adamwoolhether/todoapi/todo"
)

const timeout = 15 * time.Second

type clientFactory func(t *testing.T) *todo.Client

var transports = map[string]clientFactory{
	"netHTTP": func(t *testing.T) *todo.Client {
		t.Helper()

		c, err := todoapi.NewClient(todo.WithHTTPOptions(
			client.WithTimeout(timeout),
			client.WithThrottle(5, 1),
		))
		if err != nil {
			t.Fatalf("building client: %v", err)
		}
		return c
	},
	"resty": func(t *testing.T) *todo.Client {
		t.Helper()

		rc, err := restyclient.New(restyclient.WithTimeout(timeout))
		if err != nil {
			t.Fatalf("building resty client: %v", err)
		}

		c, err := todoapi.NewClient(todo.WithDoer(rc))
		if err != nil {
			t.Fatalf("building client: %v", err)
		}
		return c
	},
}

func fixtureTasks(t *testing.T) []todo.Task {
	t.Helper()

	data, err := os.ReadFile("../todo/testdata/getTasksResponse.json")
	if err != nil {
		t.Fatal(err)
	}

	var tasks []todo.Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		t.Fatal(err)
	}
	return tasks
}

func TestJSONPlaceholder(t *testing.T) {
	expTasks := fixtureTasks(t)

	for name, newClient := range transports {
		t.Run(name, func(t *testing.T) {
			c := newClient(t)
			ctx, cancel := context.WithTimeout(t.Context(), time.Minute)
			defer cancel()

			t.Run("getAll", func(t *testing.T) {
				tasks, err := c.GetAllTasks(ctx)
				if err != nil {
					t.Fatalf("exp nil err, got: %v", err)
				}
				if len(tasks) != len(expTasks) {
					t.Fatalf("exp %d tasks, got %d", len(expTasks), len(tasks))
				}
				if diff := cmp.Diff(expTasks[0], tasks[0]); diff != "" {
					t.Errorf("first task mismatch (-exp +got):\n%s", diff)
				}
			})

			t.Run("getByID", func(t *testing.T) {
				task, err := c.GetTaskByID(ctx, "1")
				if err != nil {
					t.Fatalf("exp nil err, got: %v", err)
				}
				if diff := cmp.Diff(expTasks[0], task); diff != "" {
					t.Errorf("task mismatch (-exp +got):\n%s", diff)
				}
			})

			t.Run("getMissing", func(t *testing.T) {
				_, err := c.GetTaskByID(ctx, "9999")
				if !todo.IsItemNotFound(err) {
					t.Errorf("exp item not found, got: %v", err)
				}
			})

			t.Run("add", func(t *testing.T) {
				task, err := c.AddTaskToUser(ctx, "1", "Finish this kata", false)
				if err != nil {
					t.Fatalf("exp nil err, got: %v", err)
				}

				exp := todo.Task{UserID: "1", ID: "201", Title: "Finish this kata"}
				if diff := cmp.Diff(exp, task); diff != "" {
					t.Errorf("created task mismatch (-exp +got):\n%s", diff)
				}
			})

			t.Run("update", func(t *testing.T) {
				exp := todo.Task{UserID: "1", ID: "2", Title: "Finish this kata", Completed: true}

				task, err := c.UpdateTask(ctx, exp)
				if err != nil {
					t.Fatalf("exp nil err, got: %v", err)
				}
				if diff := cmp.Diff(exp, task); diff != "" {
					t.Errorf("updated task mismatch (-exp +got):\n%s", diff)
				}
			})

			t.Run("delete", func(t *testing.T) {
				if err := c.DeleteTaskByID(ctx, "1"); err != nil {
					t.Errorf("exp nil err, got: %v", err)
				}
			})

			t.Run("async", func(t *testing.T) {
				task, err := c.GetTaskByIDAsync(ctx, "1").Wait()
				if err != nil {
					t.Fatalf("exp nil err, got: %v", err)
				}
				if task.ID != "1" {
					t.Errorf("exp id 1, got %q", task.ID)
				}
			})
		})
	}
}
