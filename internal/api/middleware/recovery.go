package middleware

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/mcoot/lobbyregistry/internal/api/apierr"
	"github.com/mcoot/lobbyregistry/internal/middleware"
)

// Recovery creates panic recovery middleware for the API
// Returns JSON error responses on panic
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return middleware.Recovery(logger, apiPanicHandler)
}

func apiPanicHandler(w http.ResponseWriter, _ *http.Request, _ any) {
	apierr.WriteError(w, apierr.NewInternalError())
}

// Stack is the middleware every API route runs behind, outermost first.
// Recovery wraps everything so a panic in logging still yields a JSON error.
func Stack(logger *slog.Logger) []mux.MiddlewareFunc {
	return []mux.MiddlewareFunc{
		Recovery(logger),
		middleware.RequestID,
		middleware.Logging(logger),
		Credentials,
	}
}
