package api

import (
	"fmt"
	"net/http"

	"github.com/go-errors/errors"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrInvalidMedia  = errors.New("invalid media path")
	ErrMissingUpload = errors.New("no file to upload")
)

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *StatusError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: API returned %d: %s", e.Op, e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("%s: API returned %d", e.Op, e.StatusCode)
}

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// AsClientError reports whether err is an API 4xx other than 404, meaning the
// submitted data was rejected.
func AsClientError(err error) (*StatusError, bool) {
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		return nil, false
	}
	if statusErr.StatusCode == http.StatusNotFound {
		return statusErr, false
	}
	return statusErr, statusErr.StatusCode >= 400 && statusErr.StatusCode < 500
}
