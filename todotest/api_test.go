package todotest_test

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/adamwoolhether/todoapi/todo"
	"github.com/adamwoolhether/todoapi/todotest"
	"github.com/adamwoolhether/todoapi/web/errs"
)

var seed = []todo.Task{
	{UserID: "1", ID: "1", Title: "delectus aut autem"},
	{UserID: "1", ID: "2", Title: "quis ut nam facilis et officia qui", Completed: true},
	{UserID: "2", ID: "21", Title: "suscipit repellat esse quibusdam voluptatem incidunt"},
}

func TestAPI_Routes(t *testing.T) {
	testCases := map[string]struct {
		method    string
		path      string
		body      string
		expStatus int
		expBody   string
	}{
		"list": {
			method:    http.MethodGet,
			path:      "/todos",
			expStatus: http.StatusOK,
			expBody:   `[{"userId":"1","id":"1","title":"delectus aut autem","completed":false},{"userId":"1","id":"2","title":"quis ut nam facilis et officia qui","completed":true},{"userId":"2","id":"21","title":"suscipit repellat esse quibusdam voluptatem incidunt","completed":false}]`,
		},
		"listByUser": {
			method:    http.MethodGet,
			path:      "/todos?userId=2",
			expStatus: http.StatusOK,
			expBody:   `[{"userId":"2","id":"21","title":"suscipit repellat esse quibusdam voluptatem incidunt","completed":false}]`,
		},
		"listUnknownUser": {
			method:    http.MethodGet,
			path:      "/todos?userId=99",
			expStatus: http.StatusOK,
			expBody:   `[]`,
		},
		"get": {
			method:    http.MethodGet,
			path:      "/todos/2",
			expStatus: http.StatusOK,
			expBody:   `{"userId":"1","id":"2","title":"quis ut nam facilis et officia qui","completed":true}`,
		},
		"getMissing": {
			method:    http.MethodGet,
			path:      "/todos/404",
			expStatus: http.StatusNotFound,
			expBody:   `{"code":404,"message":"task[404] not found"}`,
		},
		"create": {
			method:    http.MethodPost,
			path:      "/todos",
			body:      `{"userId":"1","title":"Finish this kata","completed":false}`,
			expStatus: http.StatusCreated,
			expBody:   `{"userId":"1","id":"22","title":"Finish this kata","completed":false}`,
		},
		"createMissingFields": {
			method:    http.MethodPost,
			path:      "/todos",
			body:      `{"completed":true}`,
			expStatus: http.StatusUnprocessableEntity,
			expBody:   `[{"field":"userId","error":"This field is required"},{"field":"title","error":"This field is required"}]`,
		},
		"createUnknownField": {
			method:    http.MethodPost,
			path:      "/todos",
			body:      `{"userId":"1","title":"t","priority":1}`,
			expStatus: http.StatusBadRequest,
		},
		"createNotJSON": {
			method:    http.MethodPost,
			path:      "/todos",
			body:      `userId=1`,
			expStatus: http.StatusBadRequest,
		},
		"update": {
			method:    http.MethodPut,
			path:      "/todos/1",
			body:      `{"userId":"1","id":"1","title":"renamed","completed":true}`,
			expStatus: http.StatusOK,
			expBody:   `{"userId":"1","id":"1","title":"renamed","completed":true}`,
		},
		"updatePathWins": {
			method:    http.MethodPut,
			path:      "/todos/2",
			body:      `{"userId":"1","id":"1","title":"renamed","completed":false}`,
			expStatus: http.StatusOK,
			expBody:   `{"userId":"1","id":"2","title":"renamed","completed":false}`,
		},
		"updateMissing": {
			method:    http.MethodPut,
			path:      "/todos/404",
			body:      `{"userId":"1","title":"renamed"}`,
			expStatus: http.StatusNotFound,
		},
		"updateInvalid": {
			method:    http.MethodPut,
			path:      "/todos/1",
			body:      `{"userId":"1"}`,
			expStatus: http.StatusUnprocessableEntity,
			expBody:   `[{"field":"title","error":"This field is required"}]`,
		},
		"delete": {
			method:    http.MethodDelete,
			path:      "/todos/21",
			expStatus: http.StatusOK,
			expBody:   `{}`,
		},
		"deleteMissing": {
			method:    http.MethodDelete,
			path:      "/todos/404",
			expStatus: http.StatusNotFound,
		},
		"methodNotAllowed": {
			method:    http.MethodPatch,
			path:      "/todos/1",
			expStatus: http.StatusMethodNotAllowed,
		},
	}

	for name, tc := range testCases {
		t.Run(name, func(t *testing.T) {
			api, err := todotest.NewHandler(todotest.WithSeed(seed...))
			if err != nil {
				t.Fatal(err)
			}

			var body io.Reader
			if tc.body != "" {
				body = strings.NewReader(tc.body)
			}
			r := httptest.NewRequest(tc.method, tc.path, body)
			w := httptest.NewRecorder()

			api.ServeHTTP(w, r)

			if w.Code != tc.expStatus {
				t.Fatalf("exp status %d, got %d: %s", tc.expStatus, w.Code, w.Body.String())
			}
			if tc.expBody != "" {
				if diff := cmp.Diff(tc.expBody, w.Body.String()); diff != "" {
					t.Errorf("body mismatch (-exp +got):\n%s", diff)
				}
			}
		})
	}
}

func TestAPI_SequentialIDs(t *testing.T) {
	srv := todotest.NewServer(t, todotest.WithSeed(seed...))

	for _, exp := range []string{"22", "23", "24"} {
		resp, err := http.Post(srv.URL()+"/todos", "application/json", strings.NewReader(`{"userId":"3","title":"t"}`))
		if err != nil {
			t.Fatal(err)
		}

		var task todo.Task
		err = json.NewDecoder(resp.Body).Decode(&task)
		resp.Body.Close()
		if err != nil {
			t.Fatal(err)
		}

		if task.ID != exp {
			t.Errorf("exp id %s, got %s", exp, task.ID)
		}
	}

	if got := len(srv.Tasks()); got != len(seed)+3 {
		t.Errorf("exp %d stored tasks, got %d", len(seed)+3, got)
	}
}

func TestAPI_EmptyStoreStartsAtOne(t *testing.T) {
	api, err := todotest.NewHandler()
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	api.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/todos", strings.NewReader(`{"userId":"1","title":"first"}`)))

	if w.Code != http.StatusCreated {
		t.Fatalf("exp 201, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"id":"1"`) {
		t.Errorf("exp id 1, got %s", w.Body.String())
	}
}

func TestAPI_Faults(t *testing.T) {
	api, err := todotest.NewHandler(todotest.WithSeed(seed...))
	if err != nil {
		t.Fatal(err)
	}

	api.FailNext(http.StatusInternalServerError)
	api.MalformNext()

	w := httptest.NewRecorder()
	api.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/todos/1", nil))
	if w.Code != http.StatusInternalServerError {
		t.Fatalf("exp injected 500, got %d", w.Code)
	}
	var appErr errs.Error
	if err := json.Unmarshal(w.Body.Bytes(), &appErr); err != nil {
		t.Fatalf("exp error body, got %s", w.Body.String())
	}
	if appErr.Message != todotest.ErrInjected.Error() {
		t.Errorf("exp message %q, got %q", todotest.ErrInjected, appErr.Message)
	}

	w = httptest.NewRecorder()
	api.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/todos/1", nil))
	if w.Code != http.StatusOK {
		t.Fatalf("exp malformed 200, got %d", w.Code)
	}
	if json.Valid(w.Body.Bytes()) {
		t.Errorf("exp malformed body, got %s", w.Body.String())
	}

	w = httptest.NewRecorder()
	api.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/todos/1", nil))
	if w.Code != http.StatusOK || !json.Valid(w.Body.Bytes()) {
		t.Errorf("exp faults to be consumed, got %d %s", w.Code, w.Body.String())
	}
}

func TestAPI_Logs(t *testing.T) {
	var buf bytes.Buffer
	api, err := todotest.NewHandler(todotest.WithLogger(slog.New(slog.NewTextHandler(&buf, nil))))
	if err != nil {
		t.Fatal(err)
	}

	w := httptest.NewRecorder()
	api.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/todos/9", nil))

	logs := buf.String()
	for _, exp := range []string{"request started", "request completed", "statusCode=404", "task[9] not found"} {
		if !strings.Contains(logs, exp) {
			t.Errorf("exp %q in logs, got: %s", exp, logs)
		}
	}
}

func TestOptions(t *testing.T) {
	testCases := map[string]todotest.Option{
		"missingFixture": todotest.WithFixture("testdata/nope.json"),
		"nilLogger":      todotest.WithLogger(nil),
		"nilTracer":      todotest.WithTracer(nil),
	}

	for name, opt := range testCases {
		t.Run(name, func(t *testing.T) {
			if _, err := todotest.NewHandler(opt); err == nil {
				t.Error("exp error, got nil")
			}
		})
	}
}

func TestWithFixture(t *testing.T) {
	api, err := todotest.NewHandler(todotest.WithFixture("../todo/testdata/getTasksResponse.json"))
	if err != nil {
		t.Fatal(err)
	}

	tasks := api.Tasks()
	if len(tasks) != 200 {
		t.Fatalf("exp 200 tasks, got %d", len(tasks))
	}
	if diff := cmp.Diff(todo.Task{UserID: "1", ID: "1", Title: "delectus aut autem"}, tasks[0]); diff != "" {
		t.Errorf("first task mismatch (-exp +got):\n%s", diff)
	}
}
