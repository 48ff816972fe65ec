// Package handlers provides HTTP handler implementations for the public API.
//
// This file defines the standard response utilities used across all endpoints,
// including structured error envelopes, consistent JSON serialization, and
// helpers for common HTTP patterns. The goal is to guarantee uniform responses
// for both success and failure cases, making the API predictable and
// machine-friendly.
//
// Conventions:
//   - All error responses must return an ErrorResponse with a stable `code`.
//   - `fail()` centralizes error logging and formatting, ensuring 5xx responses
//     are logged with request context for observability.
//   - `failValidation()` enriches the envelope with the validation code,
//     translation key, and localized message so browser clients can render
//     field-level feedback without a second lookup.
//   - `ok()` and `noContent()` simplify writing success responses in a consistent
//     shape across handlers.
//
// Example error response:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "form not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/skatsaros/go-forms-backend/internal/http/middleware"
	"github.com/skatsaros/go-forms-backend/internal/i18n"
	"github.com/skatsaros/go-forms-backend/internal/services"
)

// ErrorResponse is the standard error envelope returned by all endpoints.
//
// Fields:
//   - RequestID: Optional correlation ID, echoed from X-Request-ID header, used
//     to correlate server logs with client-side errors.
//   - Code: A stable, machine-readable string (see errors.go constants).
//   - Message: A human-readable error description, safe for display to users.
//   - ValidationCode / TranslationKey / MissingFields: populated only for
//     validation failures.
//
// This struct is used in OpenAPI documentation via Swagger annotations.
type ErrorResponse struct {
	// Correlates server logs and client errors
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go constants)
	Code string `json:"code" example:"not_found"`
	// Human-readable message (safe to show to users)
	Message string `json:"message" example:"resource not found"`
	// Uppercase validation identifier, e.g. TITLE_REQUIRED
	ValidationCode string `json:"validation_code,omitempty" example:"TITLE_REQUIRED"`
	// Dictionary key for client-side localization
	TranslationKey string `json:"translation_key,omitempty" example:"validation.titleRequired"`
	// Labels of required fields absent from a submission
	MissingFields []string `json:"missing_fields,omitempty"`
}

// fail aborts the request with a structured error and logs server-side errors.
//
// It constructs an ErrorResponse, writes it as JSON with the given HTTP status,
// and calls gin.Context.AbortWithStatusJSON to stop further processing.
//
// Server errors (>=500) are logged using the request-scoped logger from middleware.
func fail(c *gin.Context, status int, code, msg string) {
	reqID := c.Writer.Header().Get("X-Request-ID")
	resp := ErrorResponse{
		RequestID: reqID,
		Code:      code,
		Message:   msg,
	}

	// Log 5xx (server-side) with request-scoped logger
	if status >= http.StatusInternalServerError {
		lg := middleware.LoggerFrom(c)
		lg.Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}

	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported variant of fail().
//
// External packages (e.g., router setup) should call Fail to return
// consistent error envelopes without directly depending on unexported helpers.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failValidation writes a 400 carrying the service-level validation details.
// The message is localized using the request's resolved language.
func failValidation(c *gin.Context, ve *services.ValidationError) {
	t := i18n.T(requestLang(c))
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{
		RequestID:      c.Writer.Header().Get("X-Request-ID"),
		Code:           ErrCodeValidation,
		Message:        t(ve.Key),
		ValidationCode: ve.Code,
		TranslationKey: ve.Key,
		MissingFields:  ve.Fields,
	})
}

// requestLang resolves the response language from ?lang= and Accept-Language.
func requestLang(c *gin.Context) string {
	return i18n.Resolve(c.Query("lang"), c.GetHeader("Accept-Language"))
}

// ok writes a success JSON response.
//
// It serializes `body` as JSON with the given HTTP status code.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes an HTTP 204 No Content response.
//
// Used when the operation succeeds but there is no response body.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}
