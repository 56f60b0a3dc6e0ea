package errors

import "fmt"

// ErrorCode represents a Memories error code.
type ErrorCode string

const (
	ErrInvalidRequest    ErrorCode = "INVALID_REQUEST"    // 400
	ErrInvalidCredential ErrorCode = "INVALID_CREDENTIAL" // 401
	ErrUnauthorized      ErrorCode = "UNAUTHORIZED"       // 401
	ErrForbidden         ErrorCode = "FORBIDDEN"          // 403
	ErrNotFound          ErrorCode = "NOT_FOUND"          // 404
	ErrUserNotFound      ErrorCode = "USER_NOT_FOUND"     // 404
	ErrEmailInUse        ErrorCode = "EMAIL_IN_USE"       // 409
	ErrImageTooLarge     ErrorCode = "IMAGE_TOO_LARGE"    // 413
	ErrUnsupportedImage  ErrorCode = "UNSUPPORTED_IMAGE"  // 415
	ErrWeakPassword      ErrorCode = "WEAK_PASSWORD"      // 422
	ErrInvalidEmail      ErrorCode = "INVALID_EMAIL"      // 422
	ErrInternal          ErrorCode = "INTERNAL"           // 500
)

// GalleryError is a structured error with code, HTTP status, and a
// human-readable message suitable for surfacing to the client as-is.
type GalleryError struct {
	Code    ErrorCode
	Status  int
	Message string
	Details map[string]any
}

// Error implements the error interface.
func (e *GalleryError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// NewInvalidRequest creates a 400 error for invalid request parameters.
func NewInvalidRequest(msg string) *GalleryError {
	return &GalleryError{
		Code:    ErrInvalidRequest,
		Status:  400,
		Message: msg,
	}
}

// NewInvalidCredential creates a 401 error for a failed sign-in.
// The message matches for wrong-password and malformed-credential shapes so
// the endpoint does not leak which half was wrong.
func NewInvalidCredential() *GalleryError {
	return &GalleryError{
		Code:    ErrInvalidCredential,
		Status:  401,
		Message: "Invalid email or password",
	}
}

// NewUnauthorized creates a 401 error for requests without a valid session.
func NewUnauthorized() *GalleryError {
	return &GalleryError{
		Code:    ErrUnauthorized,
		Status:  401,
		Message: "sign in required",
	}
}

// NewForbidden creates a 403 error for operations on another user's records.
func NewForbidden(msg string) *GalleryError {
	return &GalleryError{
		Code:    ErrForbidden,
		Status:  403,
		Message: msg,
	}
}

// NewNotFound creates a 404 error for a missing moment, comment, or upload.
func NewNotFound(kind, identifier string) *GalleryError {
	return &GalleryError{
		Code:    ErrNotFound,
		Status:  404,
		Message: fmt.Sprintf("%s not found: %s", kind, identifier),
		Details: map[string]any{"identifier": identifier},
	}
}

// NewUserNotFound creates a 404 error for sign-in against an unknown email.
func NewUserNotFound() *GalleryError {
	return &GalleryError{
		Code:    ErrUserNotFound,
		Status:  404,
		Message: "No account found with this email",
	}
}

// NewEmailInUse creates a 409 error for duplicate sign-ups.
func NewEmailInUse() *GalleryError {
	return &GalleryError{
		Code:    ErrEmailInUse,
		Status:  409,
		Message: "Email address already exists!",
	}
}

// NewImageTooLarge creates a 413 error when an upload exceeds the size limit.
func NewImageTooLarge(max, actual int64) *GalleryError {
	return &GalleryError{
		Code:    ErrImageTooLarge,
		Status:  413,
		Message: fmt.Sprintf("image exceeds maximum size: %d bytes (max %d)", actual, max),
		Details: map[string]any{"max_bytes": max, "actual_bytes": actual},
	}
}

// NewUnsupportedImage creates a 415 error for undecodable image payloads.
func NewUnsupportedImage(err error) *GalleryError {
	msg := "unsupported image format"
	if err != nil {
		msg = fmt.Sprintf("unsupported image format: %v", err)
	}
	return &GalleryError{
		Code:    ErrUnsupportedImage,
		Status:  415,
		Message: msg,
	}
}

// NewWeakPassword creates a 422 error for passwords under the minimum length.
func NewWeakPassword() *GalleryError {
	return &GalleryError{
		Code:    ErrWeakPassword,
		Status:  422,
		Message: "Password should be at least 6 characters",
	}
}

// NewInvalidEmail creates a 422 error for malformed email addresses.
func NewInvalidEmail() *GalleryError {
	return &GalleryError{
		Code:    ErrInvalidEmail,
		Status:  422,
		Message: "Invalid email address",
	}
}

// NewInternal creates a 500 error for unexpected internal errors.
func NewInternal(err error) *GalleryError {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return &GalleryError{
		Code:    ErrInternal,
		Status:  500,
		Message: msg,
	}
}

// Is checks if an error is a GalleryError with the given code.
func Is(err error, code ErrorCode) bool {
	if gErr, ok := err.(*GalleryError); ok {
		return gErr.Code == code
	}
	return false
}
