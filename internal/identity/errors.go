package identity

// Code is the closed set of domain error codes the gateway can produce.
// Provider-specific errors are never passed through verbatim; anything
// unrecognized collapses into the catch-all for its operation.
type Code string

const (
	// registration
	CodeUserExists         Code = "USER_EXISTS"
	CodeInvalidPassword    Code = "INVALID_PASSWORD"
	CodeInvalidParameter   Code = "INVALID_PARAMETER"
	CodeRegistrationFailed Code = "REGISTRATION_FAILED"

	// authentication
	CodeInvalidCredentials    Code = "INVALID_CREDENTIALS"
	CodeUserNotFound          Code = "USER_NOT_FOUND"
	CodeUserNotConfirmed      Code = "USER_NOT_CONFIRMED"
	CodePasswordResetRequired Code = "PASSWORD_RESET_REQUIRED"
	CodeAuthFailed            Code = "AUTH_FAILED"

	// token refresh
	CodeInvalidRefreshToken Code = "INVALID_REFRESH_TOKEN"
	CodeRefreshFailed       Code = "REFRESH_FAILED"

	// federated login
	CodeFederatedAuthFailed Code = "GOOGLE_AUTH_FAILED"

	// token introspection
	CodeInvalidToken Code = "INVALID_TOKEN"

	// anything unexpected
	CodeInternal Code = "INTERNAL_ERROR"
)

// AuthError pairs a taxonomy code with a caller-safe message. The wrapped
// provider error is kept for logging, never for responses.
type AuthError struct {
	Code    Code
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return string(e.Code) + ": " + e.Message + ": " + e.Err.Error()
	}

	return string(e.Code) + ": " + e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func newAuthError(code Code, message string, err error) *AuthError {
	return &AuthError{Code: code, Message: message, Err: err}
}
