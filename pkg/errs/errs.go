package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel values for the error categories the services produce.
var (
	ErrNotFound   = errors.New("resource not found")
	ErrValidation = errors.New("invalid input")
	ErrConflict   = errors.New("resource conflict")
	ErrInternal   = errors.New("internal server error")
)

// ApiErr carries an HTTP status alongside the error so handlers can
// translate service failures without inspecting message strings.
type ApiErr struct {
	StatusCode int
	err        error
	Details    string
	Cause      error
}

func (e *ApiErr) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.err.Error(), e.Details)
	}
	return e.err.Error()
}

// Unwrap makes errors.Is(err, ErrNotFound) etc. work on ApiErr values.
func (e *ApiErr) Unwrap() error {
	return e.err
}

// NotFound reports a referenced entity id that did not resolve.
func NotFound(details string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusNotFound, err: ErrNotFound, Details: details}
}

func NotFoundf(format string, args ...interface{}) *ApiErr {
	return NotFound(fmt.Sprintf(format, args...))
}

// Validation reports malformed or missing required input.
func Validation(details string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusBadRequest, err: ErrValidation, Details: details}
}

func Validationf(format string, args ...interface{}) *ApiErr {
	return Validation(fmt.Sprintf(format, args...))
}

// Conflict reports a duplicate unique value (tag name, link pair).
// The API contract maps conflicts to 400 rather than 409.
func Conflict(details string) *ApiErr {
	return &ApiErr{StatusCode: http.StatusBadRequest, err: ErrConflict, Details: details}
}

func Conflictf(format string, args ...interface{}) *ApiErr {
	return Conflict(fmt.Sprintf(format, args...))
}

// Internal wraps an unexpected failure with its cause preserved.
func Internal(details string, cause error) *ApiErr {
	return &ApiErr{StatusCode: http.StatusInternalServerError, err: ErrInternal, Details: details, Cause: cause}
}

func IsNotFound(err error) bool   { return errors.Is(err, ErrNotFound) }
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }
func IsConflict(err error) bool   { return errors.Is(err, ErrConflict) }

// StatusOf returns the HTTP status for err, defaulting to 500 for
// anything the services did not classify.
func StatusOf(err error) int {
	var apiErr *ApiErr
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return http.StatusInternalServerError
}
