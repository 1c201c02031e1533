package mlflow

import (
	"errors"
	"fmt"

	"github.com/tarek7669/mlflow/internal/layout"
	"github.com/tarek7669/mlflow/internal/record"
	"github.com/tarek7669/mlflow/query"
)

// ErrorCode classifies store failures the way API clients branch on them.
type ErrorCode string

const (
	// ErrCodeInternal covers unexpected failures: I/O errors, corrupt
	// records, broken invariants.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeNotFound means the referenced entity does not exist.
	ErrCodeNotFound ErrorCode = "RESOURCE_DOES_NOT_EXIST"
	// ErrCodeInvalidArgument means the request itself is malformed.
	ErrCodeInvalidArgument ErrorCode = "INVALID_PARAMETER_VALUE"
	// ErrCodeAlreadyExists means a uniqueness constraint was violated.
	ErrCodeAlreadyExists ErrorCode = "RESOURCE_ALREADY_EXISTS"
	// ErrCodeInvalidState means the entity exists but cannot accept the
	// requested transition.
	ErrCodeInvalidState ErrorCode = "INVALID_STATE"
)

// Error is the error type returned by every store operation.
//
// The original underlying error (if any) can be accessed via errors.Unwrap.
type Error struct {
	Code  ErrorCode
	msg   string
	cause error
}

func (e *Error) Error() string { return e.msg }

func (e *Error) Unwrap() error { return e.cause }

// ErrorCodeOf extracts the code from a store error. Non-store errors report
// ErrCodeInternal; nil reports the empty code.
func ErrorCodeOf(err error) ErrorCode {
	if err == nil {
		return ""
	}
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ErrCodeInternal
}

func notFoundf(format string, args ...any) *Error {
	return &Error{Code: ErrCodeNotFound, msg: fmt.Sprintf(format, args...)}
}

func invalidArgumentf(format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidArgument, msg: fmt.Sprintf(format, args...)}
}

func alreadyExistsf(format string, args ...any) *Error {
	return &Error{Code: ErrCodeAlreadyExists, msg: fmt.Sprintf(format, args...)}
}

func invalidStatef(format string, args ...any) *Error {
	return &Error{Code: ErrCodeInvalidState, msg: fmt.Sprintf(format, args...)}
}

func internalf(format string, args ...any) *Error {
	return &Error{Code: ErrCodeInternal, msg: fmt.Sprintf(format, args...)}
}

// translateError normalizes errors from the internal layers into coded
// store errors. Already-coded errors pass through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var se *Error
	if errors.As(err, &se) {
		return err
	}

	var parseErr *query.ParseError
	if errors.As(err, &parseErr) {
		return &Error{Code: ErrCodeInvalidArgument, msg: parseErr.Error(), cause: err}
	}

	var modelNotFound *layout.ErrModelNotFound
	if errors.As(err, &modelNotFound) {
		return &Error{Code: ErrCodeNotFound, msg: modelNotFound.Error(), cause: err}
	}
	var expNotFound *layout.ErrExperimentNotFound
	if errors.As(err, &expNotFound) {
		return &Error{Code: ErrCodeNotFound, msg: expNotFound.Error(), cause: err}
	}
	var expNotActive *layout.ErrExperimentNotActive
	if errors.As(err, &expNotActive) {
		return &Error{Code: ErrCodeInvalidState, msg: expNotActive.Error(), cause: err}
	}

	var corrupt *record.CorruptError
	if errors.As(err, &corrupt) {
		return &Error{Code: ErrCodeInternal, msg: corrupt.Error(), cause: err}
	}

	return &Error{Code: ErrCodeInternal, msg: err.Error(), cause: err}
}
