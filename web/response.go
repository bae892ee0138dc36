package web

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/adamwoolhether/todoapi/web/errs"
	"github.com/adamwoolhether/todoapi/web/mux"
)

// RespondJSON to an HTTP request, setting the status code and body if any.
func RespondJSON(ctx context.Context, w http.ResponseWriter, statusCode int, data any) error {
	jsonData, err := json.Marshal(data)
	if err != nil {
		return err
	}

	return RespondRaw(ctx, w, statusCode, jsonData)
}

// RespondRaw writes body verbatim as a JSON response. A nil body writes
// only the status line.
func RespondRaw(ctx context.Context, w http.ResponseWriter, statusCode int, body []byte) error {
	mux.SetStatusCode(ctx, statusCode)

	if statusCode == http.StatusNoContent || body == nil {
		w.WriteHeader(statusCode)
		return nil
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(statusCode)

	if _, err := w.Write(body); err != nil {
		return err
	}

	return nil
}

// RespondError writes a structured JSON error response using the
// status code and message from the given *errs.Error.
func RespondError(ctx context.Context, w http.ResponseWriter, err *errs.Error) error {
	return RespondJSON(ctx, w, err.Code, err)
}
