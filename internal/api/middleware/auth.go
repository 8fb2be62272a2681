package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/rewardly/cashback-system/internal/api/metrics"
	"github.com/rewardly/cashback-system/internal/core/domain"
	"github.com/rewardly/cashback-system/internal/core/ports"
)

// userContextKey is where Auth stores the resolved user in the echo context.
const userContextKey = "current_user"

// Auth parses the Authorization: Bearer framing, resolves the live user
// record behind the token and injects it into the request context. Token
// errors propagate to the central error handler.
func Auth(resolver ports.CurrentUserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid authorization header")
			}

			user, err := resolver.ResolveCurrentUser(c.Request().Context(), parts[1])
			if err != nil {
				if errors.Is(err, domain.ErrInvalidToken) {
					metrics.TokenVerificationsTotal.WithLabelValues("invalid").Inc()
				} else {
					metrics.TokenVerificationsTotal.WithLabelValues("error").Inc()
				}
				return err
			}
			metrics.TokenVerificationsTotal.WithLabelValues("ok").Inc()

			c.Set(userContextKey, user)
			return next(c)
		}
	}
}

// RequireAdmin gates admin-only routes on the live role. Must run after Auth.
func RequireAdmin(resolver ports.CurrentUserResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication")
			}
			if _, err := resolver.ResolveCurrentAdmin(user); err != nil {
				return err
			}
			return next(c)
		}
	}
}

// CurrentUser returns the user injected by Auth, or nil when the middleware
// did not run.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(userContextKey).(*domain.User)
	return user
}
