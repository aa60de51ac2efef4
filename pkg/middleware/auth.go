package middleware

import (
	"context"
	"net/http"
	"strings"

	"product-catalog/pkg/token"
	"product-catalog/pkg/utils"

	"go.uber.org/zap"
)

// PrincipalLoader resolves the subject of a verified access token.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, email string) (*utils.Principal, error)
}

// Authenticate attaches the caller to the request context when a valid bearer token is present.
// It never rejects a request; any failure leaves the request anonymous.
func Authenticate(codec *token.Codec, loader PrincipalLoader, logger *zap.Logger) func(http.Handler) http.Handler {
	logger = logger.With(zap.String("middleware", "authenticate"))

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Extract bearer token
			raw, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			// 2. Verify signature, expiry and kind
			claims, err := codec.Verify(raw)
			if err != nil {
				logger.Debug("Ignoring invalid access token", zap.Error(err), zap.String("path", r.URL.Path))
				next.ServeHTTP(w, r)
				return
			}
			if claims.Kind != token.KindAccess {
				logger.Warn("Ignoring token of wrong kind", zap.String("kind", claims.Kind))
				next.ServeHTTP(w, r)
				return
			}

			// 3. Resolve principal
			principal, err := loader.LoadPrincipal(r.Context(), claims.Subject)
			if err != nil {
				logger.Warn("Token subject could not be resolved", zap.Error(err), zap.String("subject", claims.Subject))
				next.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r.WithContext(utils.SetPrincipal(r.Context(), principal)))
		})
	}
}

// RequireAuth rejects anonymous requests with 401.
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := utils.GetPrincipal(r.Context()); !ok {
			utils.ResponseUnauthorized(w, "Authentication required")
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(header string) (string, bool) {
	scheme, value, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	value = strings.TrimSpace(value)
	return value, value != ""
}
