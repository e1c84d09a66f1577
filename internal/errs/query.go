package errs

import (
	"errors"
	"fmt"
)

// QueryExecutionError is returned by every data-access operation whose
// statement could not be executed or scanned.
//
// Op names the operation (e.g. "getAllProperties"), Err is the driver error
// and Public is the client-safe classification of it.
type QueryExecutionError struct {
	Op     string
	Err    error
	Public *Error
}

// NewQueryExecutionError builds a QueryExecutionError. A nil public error is
// replaced with a generic internal error.
func NewQueryExecutionError(op string, err error, public *Error) *QueryExecutionError {
	if public == nil {
		public = NewInternalServerError()
	}
	return &QueryExecutionError{Op: op, Err: err, Public: public}
}

func (e *QueryExecutionError) Error() string {
	return fmt.Sprintf("%s: query execution failed: %v", e.Op, e.Err)
}

func (e *QueryExecutionError) Unwrap() error {
	return e.Err
}

// IsQueryExecution reports whether err is, or wraps, a QueryExecutionError.
func IsQueryExecution(err error) bool {
	var qerr *QueryExecutionError
	return errors.As(err, &qerr)
}

// Public extracts the client-safe error from err.
//
// *Error values are returned as-is, QueryExecutionErrors yield their
// classification, anything else becomes a generic internal error.
func Public(err error) *Error {
	var qerr *QueryExecutionError
	if errors.As(err, &qerr) {
		return qerr.Public
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}

	return NewInternalServerError()
}
