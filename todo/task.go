package todo

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Task is a single TODO item as served by the /todos resource.
type Task struct {
	UserID    string `json:"userId"`
	ID        string `json:"id"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// UnmarshalJSON accepts userId and id as either JSON strings or JSON
// numbers. Numbers are kept verbatim, so {"id": 1} decodes to ID "1".
// A null task is an error.
func (t *Task) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errNullTask
	}

	var raw struct {
		UserID    looseString `json:"userId"`
		ID        looseString `json:"id"`
		Title     string      `json:"title"`
		Completed bool        `json:"completed"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*t = Task{
		UserID:    string(raw.UserID),
		ID:        string(raw.ID),
		Title:     raw.Title,
		Completed: raw.Completed,
	}

	return nil
}

var errNullTask = errors.New("task must be an object, got null")

// NewTask is the payload sent when creating a task. The server assigns the id.
type NewTask struct {
	UserID    string `json:"userId"`
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

// looseString decodes a JSON string or number into a string.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		return nil
	}

	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = looseString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*s = looseString(n.String())

	return nil
}
