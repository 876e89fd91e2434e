package api

import (
	"errors"

	"github.com/kgarud95/learningx-cli/internal/common"
)

var (
	ErrUnavailable = errors.New("server unavailable")
)

// Error is a request the server rejected. Detail carries the human-readable
// message from the response payload (the "detail" field), or the
// per-operation fallback when the payload has none.
type Error struct {
	StatusCode int
	Detail     string
}

func (e *Error) Error() string {
	return e.Detail
}

// Unwrap lets errors.Is(err, common.ErrorUnauthorized) match 401 responses
// and errors.Is(err, common.ErrorNotFound) match 404 responses.
func (e *Error) Unwrap() error {
	switch e.StatusCode {
	case 401:
		return common.ErrorUnauthorized
	case 404:
		return common.ErrorNotFound
	default:
		return nil
	}
}
