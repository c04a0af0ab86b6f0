package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/sakif/trivia-api/internal/handler"
)

// Recoverer turns a panic in a handler into the 500 envelope and logs the
// stack. chi's own Recoverer answers with plain text, which clients of this
// API cannot parse.
//
// http.ErrAbortHandler is re-panicked: net/http uses it to abort a response
// on purpose.
func Recoverer(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				logger.Error("panic recovered",
					slog.String("request_id", RequestIDFromContext(r.Context())),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.Any("panic", rec),
					slog.String("stack", string(debug.Stack())),
				)

				// Nothing sensible can be sent once the handler has started writing.
				if rw, ok := w.(*responseWriter); ok && rw.wroteHeader {
					return
				}
				handler.WriteStatus(w, http.StatusInternalServerError)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
