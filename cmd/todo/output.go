package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/adamwoolhether/todoapi/todo"
)

// printTask prints a single task to the writer.
func printTask(w io.Writer, task todo.Task, jsonOutput bool) error {
	if jsonOutput {
		return encode(w, task)
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "ID:\t%s\n", task.ID)
	fmt.Fprintf(tw, "User:\t%s\n", task.UserID)
	fmt.Fprintf(tw, "Title:\t%s\n", task.Title)
	fmt.Fprintf(tw, "Completed:\t%s\n", strconv.FormatBool(task.Completed))

	return tw.Flush()
}

// printTasks prints tasks as a table, one row per task.
func printTasks(w io.Writer, tasks []todo.Task, jsonOutput bool) error {
	if jsonOutput {
		if tasks == nil {
			tasks = []todo.Task{}
		}
		return encode(w, tasks)
	}

	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "No tasks found.")
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSER\tDONE\tTITLE")
	for _, t := range tasks {
		done := " "
		if t.Completed {
			done = "x"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", t.ID, t.UserID, done, t.Title)
	}

	return tw.Flush()
}

// printDeleted confirms a deletion.
func printDeleted(w io.Writer, id string, jsonOutput bool) error {
	if jsonOutput {
		return encode(w, map[string]string{"deleted": id})
	}

	_, err := fmt.Fprintf(w, "Deleted task %s\n", id)
	return err
}

// printError reports err on w, as {"error": ...} when jsonOutput is set.
func printError(w io.Writer, err error, jsonOutput bool) {
	if !jsonOutput {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}

	out := struct {
		Error  string `json:"error"`
		Kind   string `json:"kind,omitempty"`
		Status int    `json:"status,omitempty"`
	}{
		Error: err.Error(),
	}
	if e, ok := errors.AsType[*todo.Error](err); ok {
		out.Kind = e.Kind.String()
		out.Status = e.StatusCode
	}

	// A failed write to stderr has nowhere left to be reported.
	_ = encode(w, out)
}

func encode(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
