package middleware

import (
	"context"
	"net/http"
	"strings"

	"college/backend/foundation/web"
	"college/backend/internal/auth"

	"github.com/pkg/errors"
)

// Authenticate checks the bearer token and, when roles are given, that the
// caller holds one of them. Claims end up in the request context for the
// repository layer.
func Authenticate(a *auth.Auth, roles ...string) web.Middleware {
	return func(handler web.Handler) web.Handler {
		return func(c *web.Context) error {
			authHeader := c.GetHeader("Authorization")
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
				return c.RespondError(web.NewRequestError(errors.New("expected authorization header format: bearer <token>"), http.StatusUnauthorized))
			}

			claims, err := a.ValidateToken(parts[1])
			if err != nil {
				return c.RespondError(web.NewRequestError(errors.New("invalid or expired token"), http.StatusUnauthorized))
			}

			if len(roles) > 0 && !claims.Authorized(roles...) {
				return c.RespondError(web.NewRequestError(errors.New("you are not authorized for this action"), http.StatusForbidden))
			}

			c.Ctx = context.WithValue(c.Ctx, auth.Key, claims)

			return handler(c)
		}
	}
}
