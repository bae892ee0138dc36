// Package middleware provides the logging, error rendering and panic
// recovery wrapped around every fake todo API route.
package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"path"

	"github.com/adamwoolhether/todoapi/web"
	"github.com/adamwoolhether/todoapi/web/errs"
	"github.com/adamwoolhether/todoapi/web/mux"
)

// Errors renders errors coming out of the call chain. Validation failures
// become 422 with the offending fields, an *errs.Error is rendered with its
// own code and anything else is logged and answered with a bare 500.
func Errors(log *slog.Logger) mux.Middleware {
	m := func(handler mux.Handler) mux.Handler {
		h := func(ctx context.Context, w http.ResponseWriter, r *http.Request) error {
			err := handler(ctx, w, r)
			if err == nil {
				return nil
			}

			if fieldErr, ok := errors.AsType[errs.FieldErrors](err); ok {
				return web.RespondJSON(ctx, w, http.StatusUnprocessableEntity, fieldErr)
			}

			appErr, ok := errors.AsType[*errs.Error](err)
			if !ok {
				appErr = errs.NewInternal(err)
			}

			log.Error(err.Error(),
				"trace_id", mux.GetValues(ctx).TraceID,
				"status", appErr.Code,
				"source_err_file", path.Base(appErr.FileName),
				"source_err_func", path.Base(appErr.FuncName),
			)

			if appErr.IsInternal() {
				appErr.Message = http.StatusText(appErr.Code)
			}

			return web.RespondError(ctx, w, appErr)
		}

		return h
	}

	return m
}
