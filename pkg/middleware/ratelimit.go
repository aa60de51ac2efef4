package middleware

import (
	"math"
	"net"
	"net/http"
	"strconv"

	"product-catalog/pkg/apperror"
	"product-catalog/pkg/ratelimit"
	"product-catalog/pkg/utils"

	"go.uber.org/zap"
)

// KeyFunc picks the bucket a request is counted against.
type KeyFunc func(r *http.Request) string

// ClientIP keys by remote address without the port. Run chi's RealIP first to honour proxy headers.
func ClientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// RateLimit answers 429 once the key's bucket is empty. A limiter error lets the request through.
func RateLimit(limiter ratelimit.Limiter, logger *zap.Logger, keyFn KeyFunc) func(http.Handler) http.Handler {
	if keyFn == nil {
		keyFn = ClientIP
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFn(r)

			decision, err := limiter.Allow(r.Context(), key)
			if err != nil {
				logger.Warn("Rate limiter unavailable, allowing request", zap.Error(err), zap.String("key", key))
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Set("X-RateLimit-Remaining", strconv.Itoa(decision.Remaining))
			if !decision.Allowed {
				retry := int(math.Ceil(decision.RetryAfter.Seconds()))
				if retry < 1 {
					retry = 1
				}
				w.Header().Set("Retry-After", strconv.Itoa(retry))
				utils.ResponseError(w, logger, apperror.RateLimited())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
