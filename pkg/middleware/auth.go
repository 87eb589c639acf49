package middleware

import (
	"net/http"

	"guidee-orders/pkg/auth"
	"guidee-orders/pkg/utils"

	"go.uber.org/zap"
)

// Auth middleware resolves the caller from the bearer/cookie token and puts
// the identity on the request context. Expired tokens are unauthenticated.
func Auth(jwtSecret string, logger *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := auth.ExtractToken(r)
			if token == "" {
				utils.ResponseUnauthorized(w, "Missing authorization token")
				return
			}

			actor, err := auth.ParseToken(jwtSecret, token)
			if err != nil {
				logger.Warn("Invalid or expired token",
					zap.Error(err),
					zap.String("path", r.URL.Path))
				utils.ResponseUnauthorized(w, "Invalid or expired token")
				return
			}

			ctx := utils.SetActorContext(r.Context(), *actor)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
