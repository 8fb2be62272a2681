package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rewardly/cashback-system/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Error string `json:"error"`
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Collapses ErrUserNotFound and ErrPasswordVerification into one
//     indistinguishable "invalid email or password" response, so callers
//     cannot probe which emails have accounts.
//   - Logs unexpected errors internally without leaking details to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, msg := resolveError(err, log, c)
		_ = c.JSON(code, errorResponse{Error: msg})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string) {
	// Echo's own errors (bind failures, 404 from router, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code, fmt.Sprintf("%v", he.Message)
	}

	var complexityErr *domain.PasswordComplexityError
	var cashbackErr *domain.CashbackPercentageError

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrPasswordVerification):
		return http.StatusUnauthorized, "invalid email or password"
	case errors.Is(err, domain.ErrInvalidToken):
		return http.StatusUnauthorized, "invalid token"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, "too many login attempts, retry later"
	case errors.As(err, &complexityErr):
		return http.StatusBadRequest, complexityErr.Reason
	case errors.As(err, &cashbackErr):
		return http.StatusBadRequest, cashbackErr.Reason
	case errors.Is(err, domain.ErrEmailAlreadyRegistered):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, domain.ErrMerchantNameExists):
		return http.StatusConflict, "merchant name already exists"
	case errors.Is(err, domain.ErrMerchantNotFound):
		return http.StatusNotFound, "merchant not found"
	case errors.Is(err, domain.ErrInternalJwt):
		// Possibly a tampered token; log the cause, say nothing specific.
		log.Error().
			Err(err).
			Str("method", c.Request().Method).
			Str("path", c.Path()).
			Msg("token verification error")
		return http.StatusInternalServerError, "internal server error"
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, "internal server error"
}
