package middleware

import (
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RealIP rewrites RemoteAddr from X-Forwarded-For / X-Real-IP only when trustProxy is set.
// Enable it only behind a proxy that overwrites those headers; otherwise any client can pick its own rate-limit key.
func RealIP(trustProxy bool) func(http.Handler) http.Handler {
	if trustProxy {
		return chimw.RealIP
	}
	return func(next http.Handler) http.Handler { return next }
}
