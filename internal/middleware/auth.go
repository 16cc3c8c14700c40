package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/festy23/softball_scoreboard/internal/auth"
)

// SubjectKey is the context key holding the authenticated subject.
const SubjectKey = "subject"

// TokenValidator is the part of auth.Issuer used by RequireAdmin.
type TokenValidator interface {
	Enabled() bool
	Parse(token string) (*auth.Claims, error)
	Authorize(claims *auth.Claims) error
}

// RequireAdmin rejects requests without a valid admin bearer token. When
// auth is disabled every request is rejected with 503.
func RequireAdmin(v TokenValidator, logger *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !v.Enabled() {
			abortWithError(c, "AUTH_DISABLED", "write access is not configured", http.StatusServiceUnavailable)
			return
		}

		header := c.GetHeader("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abortWithError(c, "UNAUTHORIZED", "missing bearer token", http.StatusUnauthorized)
			return
		}

		claims, err := v.Parse(strings.TrimSpace(token))
		if err != nil {
			msg := "invalid token"
			if errors.Is(err, auth.ErrExpiredToken) {
				msg = "token expired"
			}
			abortWithError(c, "UNAUTHORIZED", msg, http.StatusUnauthorized)
			return
		}

		if err := v.Authorize(claims); err != nil {
			logger.Warnw("admin access denied", "subject", claims.Subject, "role", claims.Role)
			abortWithError(c, "FORBIDDEN", "admin role required", http.StatusForbidden)
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Next()
	}
}
