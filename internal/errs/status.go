package errs

import (
	"net/http"
)

// NewBadRequestError creates a 400 error.
//
// code overrides the default "BAD_REQUEST" code when non-nil; errors carries
// optional field-level validation failures.
func NewBadRequestError(message string, override bool, code *string, errors []FieldError) *Error {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusBadRequest))
	if code != nil {
		formattedCode = *code
	}

	return &Error{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusBadRequest,
		Override: override,
		Errors:   errors,
	}
}

// NewConflictError creates a 409 error, used for unique constraint violations.
func NewConflictError(message string, override bool, code *string) *Error {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusConflict))
	if code != nil {
		formattedCode = *code
	}

	return &Error{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusConflict,
		Override: override,
	}
}

// NewNotFoundError creates a 404 error.
func NewNotFoundError(message string, override bool, code *string) *Error {
	formattedCode := MakeUpperCaseWithUnderscores(http.StatusText(http.StatusNotFound))
	if code != nil {
		formattedCode = *code
	}

	return &Error{
		Code:     formattedCode,
		Message:  message,
		Status:   http.StatusNotFound,
		Override: override,
	}
}

// NewInternalServerError creates a 500 error carrying only the generic status
// text; the real cause stays in logs.
func NewInternalServerError() *Error {
	return &Error{
		Code:     MakeUpperCaseWithUnderscores(http.StatusText(http.StatusInternalServerError)),
		Message:  http.StatusText(http.StatusInternalServerError),
		Status:   http.StatusInternalServerError,
		Override: false,
	}
}

// ValidationError wraps a validation failure into a 400 error.
func ValidationError(err error) *Error {
	return NewBadRequestError("Validation failed: "+err.Error(), false, nil, nil)
}
