package middleware

import "net/http"

// CORS header values. The trailing "true" in the allowed headers list is what
// existing browser clients of this API were built against and is kept as is.
const (
	corsAllowOrigin  = "*"
	corsAllowHeaders = "Content-Type,Authorization,true"
	corsAllowMethods = "GET,POST,DELETE,PATCH"
)

// CORS sets the cross-origin headers on every response and answers preflight
// requests itself.
//
// The headers are set before calling next, so they are present on error
// envelopes, unknown routes and recovered panics too.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", corsAllowOrigin)
		h.Set("Access-Control-Allow-Headers", corsAllowHeaders)
		h.Set("Access-Control-Allow-Methods", corsAllowMethods)

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
