package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/freeedu/auth-service/internal/api/handler"
	"github.com/freeedu/auth-service/internal/core/domain"
)

// Machine-readable error codes carried in every error response.
const (
	CodeInvalidCredentials  = "INVALID_CREDENTIALS"
	CodeEmailAlreadyTaken   = "EMAIL_ALREADY_TAKEN"
	CodeUserNotFound        = "USER_NOT_FOUND"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeTooManyAttempts     = "TOO_MANY_ATTEMPTS"
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeInternalServerError = "INTERNAL_SERVER_ERROR"
)

// problemDetail is the canonical error envelope for all API errors:
// a human title and detail, a machine-readable code, and the request path
// as the type.
type problemDetail struct {
	Title  string `json:"title"`
	Detail string `json:"detail"`
	Code   string `json:"code"`
	Type   string `json:"type"`
}

// NewHTTPErrorHandler returns the single translation point from domain
// failures to client-facing error payloads:
//   - Known domain errors map to deterministic status/code pairs.
//   - Validation failures aggregate per-field messages.
//   - Anything unrecognized is logged internally and masked as a generic
//     internal error, leaking no detail to the client.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		status, code, detail := resolveError(err, log, c)
		_ = c.JSON(status, problemDetail{
			Title:  http.StatusText(status),
			Detail: detail,
			Code:   code,
			Type:   c.Request().URL.Path,
		})
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, string, string) {
	// Request payload validation, aggregated per field.
	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return http.StatusBadRequest, CodeValidationFailed, "Validation failed: " + ve.Error()
	}

	// Known domain errors. Login failures deliberately share one code and
	// message whether the email is unknown or the password is wrong.
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusBadRequest, CodeInvalidCredentials, domain.ErrInvalidCredentials.Error()
	case errors.Is(err, domain.ErrEmailTaken):
		return http.StatusBadRequest, CodeEmailAlreadyTaken, domain.ErrEmailTaken.Error()
	case errors.Is(err, domain.ErrUserNotFound):
		return http.StatusNotFound, CodeUserNotFound, domain.ErrUserNotFound.Error()
	case errors.Is(err, domain.ErrTooManyAttempts):
		return http.StatusTooManyRequests, CodeTooManyAttempts, domain.ErrTooManyAttempts.Error()
	}

	// Echo's own errors (bind failures, 404 from the router, authorization
	// gate denials).
	var he *echo.HTTPError
	if errors.As(err, &he) {
		code := CodeValidationFailed
		switch he.Code {
		case http.StatusUnauthorized:
			code = CodeUnauthorized
		case http.StatusForbidden:
			code = CodeForbidden
		case http.StatusNotFound:
			code = CodeNotFound
		case http.StatusInternalServerError:
			code = CodeInternalServerError
		}
		return he.Code, code, fmt.Sprintf("%v", he.Message)
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, CodeInternalServerError, "An unexpected error occurred"
}
