package errors

import (
	stderrors "errors"
	"net/http"

	"codeberg.org/fitstack/server/internal/identity"
	"codeberg.org/fitstack/server/internal/logger"
	"github.com/gin-gonic/gin"
)

// Error Handling Guidelines:
//
// For HTTP REST handlers:
//   - Use errors.FromIdentity() for anything returned by the identity gateway
//   - Use errors.InternalError(), errors.NotFound(), etc. for local failures;
//     these handle both logging and the HTTP response
//   - Use logger.ErrorErr() only for non-critical errors where processing
//     continues (the dual-write recovery path)
//
// For the gateway and repositories:
//   - Return typed errors (*identity.AuthError, users sentinel errors) or
//     wrapped errors with context via fmt.Errorf("context: %w", err)
//   - Do not log outside handlers (avoid double logging)

// local error codes; identity taxonomy codes come from the identity package
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeServerError     = "INTERNAL_ERROR"
)

// represents the uniform error body: domain code, human text, transport status
type ErrorResponse struct {
	Error      string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"status_code"`
}

// maps every identity taxonomy code to its transport-level status. New codes
// added to the taxonomy must be added here; anything unmapped is treated as a
// server error.
func StatusForCode(code identity.Code) int {
	switch code {
	case identity.CodeUserExists:
		return http.StatusConflict
	case identity.CodeInvalidPassword, identity.CodeInvalidParameter:
		return http.StatusBadRequest
	case identity.CodeRegistrationFailed:
		return http.StatusInternalServerError
	case identity.CodeInvalidCredentials, identity.CodeAuthFailed:
		return http.StatusUnauthorized
	case identity.CodeUserNotFound:
		return http.StatusNotFound
	case identity.CodeUserNotConfirmed, identity.CodePasswordResetRequired:
		return http.StatusForbidden
	case identity.CodeInvalidRefreshToken:
		return http.StatusUnauthorized
	case identity.CodeRefreshFailed:
		return http.StatusBadRequest
	case identity.CodeFederatedAuthFailed:
		return http.StatusUnauthorized
	case identity.CodeInvalidToken:
		return http.StatusUnauthorized
	case identity.CodeInternal:
		return http.StatusInternalServerError
	}

	return http.StatusInternalServerError
}

// writes an identity taxonomy error with its mapped status; server-side
// failures are logged with the wrapped provider error, client-side ones are not
func Auth(c *gin.Context, authErr *identity.AuthError) {
	status := StatusForCode(authErr.Code)

	if status >= http.StatusInternalServerError {
		logger.ErrorErr(authErr, "identity operation failed",
			"path", c.Request.URL.Path,
			"method", c.Request.Method,
			"code", string(authErr.Code),
		)
	}

	c.JSON(status, ErrorResponse{
		Error:      string(authErr.Code),
		Message:    authErr.Message,
		StatusCode: status,
	})
}

// responds for any error coming back from the identity gateway
func FromIdentity(c *gin.Context, err error) {
	var authErr *identity.AuthError
	if stderrors.As(err, &authErr) {
		Auth(c, authErr)
		return
	}

	InternalError(c, "an unexpected error occurred", err)
}

// returns a 400 bad request error for binding/validation failures
func ValidationError(c *gin.Context, err error) {
	message := "request validation failed"
	if err != nil {
		message = err.Error()
	}

	c.JSON(http.StatusBadRequest, ErrorResponse{
		Error:      CodeValidationError,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	})
}

// returns a 401 unauthorized error
func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "authentication required"
	}

	c.JSON(http.StatusUnauthorized, ErrorResponse{
		Error:      CodeUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	})
}

// returns a 404 not found error
func NotFound(c *gin.Context, resource string) {
	message := "resource not found"
	if resource != "" {
		message = resource + " not found"
	}

	c.JSON(http.StatusNotFound, ErrorResponse{
		Error:      CodeNotFound,
		Message:    message,
		StatusCode: http.StatusNotFound,
	})
}

// returns a 409 conflict error
func Conflict(c *gin.Context, message string) {
	if message == "" {
		message = "resource conflict"
	}

	c.JSON(http.StatusConflict, ErrorResponse{
		Error:      CodeConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
	})
}

// returns a 500 internal server error and logs the full cause server-side
func InternalError(c *gin.Context, message string, err error) {
	if message == "" {
		message = "an error occurred"
	}

	logger.ErrorErr(err, message,
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)

	c.JSON(http.StatusInternalServerError, ErrorResponse{
		Error:      CodeServerError,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	})
}
