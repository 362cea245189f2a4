package errors

import (
	"errors"
	"net/http"

	"secalert/internal/auth"
)

// Domain errors returned by the authentication service. The login and
// forgot-password paths deliberately collapse distinct internal reasons
// into one externally observable error so accounts cannot be enumerated.
var (
	// ErrInvalidCredentials covers both "no such user" and "wrong password".
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrEmailAlreadyExists is returned when registering an email already in use.
	ErrEmailAlreadyExists = errors.New("email is already registered")
	// ErrWeakPassword is returned when a password fails the password policy.
	ErrWeakPassword = errors.New("password must be at least 8 characters")
	// ErrInvalidOrExpiredToken covers absent, expired and already-consumed
	// verification tokens without revealing which.
	ErrInvalidOrExpiredToken = errors.New("invalid or expired token")
	// ErrInvalidRefreshToken is returned when a refresh token is rejected.
	ErrInvalidRefreshToken = errors.New("invalid or expired refresh token")
	// ErrAccountDisabled is returned when the account is deactivated.
	ErrAccountDisabled = errors.New("account is disabled")
	// ErrEmailNotVerified is returned on login before email verification.
	ErrEmailNotVerified = errors.New("email is not verified")
	// ErrForbidden is returned when the caller's role denies the operation.
	ErrForbidden = errors.New("forbidden")
	// ErrUserNotFound is returned on user lookups by id or, where
	// enumeration is not a concern, by email.
	ErrUserNotFound = errors.New("user not found")
)

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Token-service
// specifics (expired, malformed, bad signature, wrong type) all collapse
// to 401 at this boundary.
func MapErrorToHTTP(err error) *HTTPError {
	switch {
	case errors.Is(err, ErrInvalidCredentials):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_CREDENTIALS")
	case errors.Is(err, ErrEmailAlreadyExists):
		return NewHTTPError(http.StatusConflict, err.Error(), "EMAIL_ALREADY_EXISTS")
	case errors.Is(err, ErrWeakPassword):
		return NewHTTPError(http.StatusUnprocessableEntity, err.Error(), "WEAK_PASSWORD")
	case errors.Is(err, ErrInvalidOrExpiredToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_OR_EXPIRED_TOKEN")
	case errors.Is(err, ErrInvalidRefreshToken):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "INVALID_REFRESH_TOKEN")
	case errors.Is(err, ErrAccountDisabled):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "ACCOUNT_DISABLED")
	case errors.Is(err, ErrEmailNotVerified):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "EMAIL_NOT_VERIFIED")
	case errors.Is(err, ErrForbidden):
		return NewHTTPError(http.StatusForbidden, err.Error(), "FORBIDDEN")
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, err.Error(), "USER_NOT_FOUND")
	case errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenMalformed),
		errors.Is(err, auth.ErrInvalidSignature),
		errors.Is(err, auth.ErrWrongTokenType):
		return NewHTTPError(http.StatusUnauthorized, err.Error(), "UNAUTHORIZED")
	default:
		return NewHTTPError(http.StatusInternalServerError, "internal server error", "INTERNAL_ERROR")
	}
}
