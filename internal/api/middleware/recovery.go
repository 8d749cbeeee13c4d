package middleware

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/dlehdeod1/newcornerkicks/internal/api/apierr"
	"github.com/dlehdeod1/newcornerkicks/internal/middleware"
)

// Recovery answers a panicking handler with the JSON internal error body
func Recovery(logger *zap.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, func(w http.ResponseWriter, _ *http.Request) {
		apierr.WriteError(w, apierr.NewInternalError())
	})
}
