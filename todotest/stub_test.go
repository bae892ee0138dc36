package todotest_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"syscall"
	"testing"

	"github.com/adamwoolhether/todoapi/todotest"
)

func TestStub_RoundTrip(t *testing.T) {
	stub := todotest.NewStub()
	stub.Respond(http.MethodGet, "http://todo.test/todos/1", http.StatusOK, []byte(`{"id":1}`))
	stub.RespondFixture(t, http.MethodGet, "http://todo.test/todos", http.StatusOK, "../todo/testdata/getTasksResponse.json")
	stub.Fail(http.MethodDelete, "http://todo.test/todos/1", todotest.ErrConnRefused)

	hc := &http.Client{Transport: stub}

	resp, err := hc.Get("http://todo.test/todos/1")
	if err != nil {
		t.Fatalf("exp nil err, got: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || string(body) != `{"id":1}` {
		t.Errorf("exp 200 {\"id\":1}, got %d %s", resp.StatusCode, body)
	}
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Errorf("exp json content type, got %q", ct)
	}

	resp, err = hc.Get("http://todo.test/todos")
	if err != nil {
		t.Fatalf("exp nil err, got: %v", err)
	}
	resp.Body.Close()
	if resp.ContentLength <= 0 {
		t.Errorf("exp fixture body, got content length %d", resp.ContentLength)
	}

	req, _ := http.NewRequest(http.MethodDelete, "http://todo.test/todos/1", nil)
	if _, err := hc.Do(req); !errors.Is(err, syscall.ECONNREFUSED) {
		t.Errorf("exp connection refused, got: %v", err)
	}

	req, _ = http.NewRequest(http.MethodPut, "http://todo.test/todos/1", strings.NewReader(`{"title":"x"}`))
	if _, err := hc.Do(req); !errors.Is(err, todotest.ErrNoStub) {
		t.Errorf("exp %v, got: %v", todotest.ErrNoStub, err)
	}

	reqs := stub.Requests()
	if len(reqs) != 4 {
		t.Fatalf("exp 4 recorded requests, got %d", len(reqs))
	}
	last := reqs[3]
	if last.Method != http.MethodPut || last.URL != "http://todo.test/todos/1" || string(last.Body) != `{"title":"x"}` {
		t.Errorf("unexpected recorded request: %+v", last)
	}
}

func TestStub_CancelledContext(t *testing.T) {
	stub := todotest.NewStub()
	stub.Respond(http.MethodGet, "http://todo.test/todos", http.StatusOK, []byte(`[]`))

	ctx, cancel := context.WithCancel(t.Context())
	cancel()

	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, "http://todo.test/todos", nil)
	if _, err := (&http.Client{Transport: stub}).Do(req); !errors.Is(err, context.Canceled) {
		t.Errorf("exp %v, got: %v", context.Canceled, err)
	}
	if n := len(stub.Requests()); n != 0 {
		t.Errorf("exp cancelled request not to be recorded, got %d", n)
	}
}

func TestErrTimeout(t *testing.T) {
	var netErr interface{ Timeout() bool }
	if !errors.As(todotest.ErrTimeout, &netErr) || !netErr.Timeout() {
		t.Error("exp ErrTimeout to report a timeout")
	}
}
