package middleware

import (
	"errors"
	"net/http"

	"go.uber.org/zap"
)

// PanicHandler writes the response after a handler panicked
type PanicHandler func(w http.ResponseWriter, r *http.Request)

// Recovery turns a handler panic into a logged error response.
// http.ErrAbortHandler is re-raised so the server drops the connection.
func Recovery(logger *zap.Logger, write PanicHandler) func(http.Handler) http.Handler {
	if write == nil {
		write = plainInternalError
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}
				logger.Error("handler panicked",
					zap.Any("panic", rec),
					zap.Stack("stack"),
					zap.String("request_id", RequestID(r.Context())),
					zap.String("route", r.Method+" "+r.URL.Path),
				)
				write(w, r)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func plainInternalError(w http.ResponseWriter, _ *http.Request) {
	http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
}
