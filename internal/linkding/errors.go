package linkding

import (
	"errors"
	"fmt"

	"github.com/MrSnakeDoc/linkbridge/internal/dispatch"
)

var (
	// ErrInvalidBaseURI is returned by New for an empty or relative base URI.
	ErrInvalidBaseURI = errors.New("invalid linkding base uri")

	// ErrTooManyPages is returned when a listing keeps returning a next
	// cursor past the configured page cap.
	ErrTooManyPages = errors.New("too many pages")

	// ErrForeignCursor is returned when a "next" cursor leaves the
	// configured scheme and host. The token is never sent there.
	ErrForeignCursor = errors.New("next cursor points outside the linkding base uri")
)

// StatusError is a non-2xx answer from LinkDing. It unwraps to
// dispatch.ErrBackend.
type StatusError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string // leading bytes of the response, for diagnostics
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("linkding %s %s: unexpected status %d: %s", e.Method, e.URL, e.StatusCode, e.Body)
}

func (e *StatusError) Unwrap() error { return dispatch.ErrBackend }
