package myerrors

import (
	"errors"
	"fmt"
	"net/http"
)

type httpErrorCoder interface {
	error
	GetHTTPErrorCode() int
}

type httpError struct {
	httpCode int
	err      error
}

func (e httpError) Error() string {
	return fmt.Sprintf("status: %d, err: %s", e.httpCode, e.err.Error())
}

func (e httpError) Unwrap() error {
	return e.err
}

func (e httpError) GetHTTPErrorCode() int {
	return e.httpCode
}

func newError(httpCode int, err error) *httpError {
	return &httpError{
		httpCode: httpCode,
		err:      err,
	}
}

func NewInvalidInputError(err error) *httpError {
	return newError(http.StatusBadRequest, err)
}

func NewInvalidInputErrorf(format string, args ...any) *httpError {
	return NewInvalidInputError(fmt.Errorf(format, args...))
}

func NewNotAuthenticatedError(err error) *httpError {
	return newError(http.StatusUnauthorized, err)
}

func NewAuthenticationError(err error) *httpError {
	return newError(http.StatusForbidden, err)
}

func NewNotFoundError(err error) *httpError {
	return newError(http.StatusNotFound, err)
}

func NewConflictError(err error) *httpError {
	return newError(http.StatusConflict, err)
}

func NewUnsupportedMediaTypeError(err error) *httpError {
	return newError(http.StatusUnsupportedMediaType, err)
}

func NewInternalError(err error) *httpError {
	return newError(http.StatusInternalServerError, err)
}

func NewNotImplementedError(err error) *httpError {
	return newError(http.StatusNotImplemented, err)
}

func NewUnavailableError(err error) *httpError {
	return newError(http.StatusServiceUnavailable, err)
}

// FromHTTPStatus converts the status returned by a remote service into a local error.
func FromHTTPStatus(httpStatus int, err error) error {
	switch {
	case httpStatus == http.StatusBadRequest || httpStatus == http.StatusUnprocessableEntity:
		return NewInvalidInputError(err)
	case httpStatus == http.StatusUnauthorized:
		return NewNotAuthenticatedError(err)
	case httpStatus == http.StatusForbidden:
		return NewAuthenticationError(err)
	case httpStatus == http.StatusNotFound:
		return NewNotFoundError(err)
	case httpStatus == http.StatusConflict:
		return NewConflictError(err)
	case httpStatus >= 500:
		return NewUnavailableError(err)
	default:
		return NewInternalError(err)
	}
}

func GetHTTPStatus(err error) int {
	var myError httpErrorCoder
	if errors.As(err, &myError) {
		return myError.GetHTTPErrorCode()
	}
	return http.StatusInternalServerError
}
