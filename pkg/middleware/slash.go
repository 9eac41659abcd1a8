package middleware

import (
	"net/http"
	"strings"
)

// TrimSlash returns middleware that strips trailing slashes from the request
// path before dispatch, so "/gebruiksrechten/" and "/gebruiksrechten" reach
// the same route. The path is rewritten rather than redirected since module
// handlers only see it with the mount prefix removed.
func TrimSlash() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			path := r.URL.Path
			if len(path) <= 1 || !strings.HasSuffix(path, "/") {
				next.ServeHTTP(w, r)
				return
			}

			trimmed := strings.TrimRight(path, "/")
			if trimmed == "" {
				trimmed = "/"
			}

			req := r.Clone(r.Context())
			req.URL.Path = trimmed
			req.URL.RawPath = ""
			next.ServeHTTP(w, req)
		})
	}
}
