// Package dispatch defines the capabilities a bookmark backend must provide
// to serve the Shaarli API, and the backends that do not need a remote service.
package dispatch

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/linkbridge/internal/domain"
)

// ErrBackend marks a failure reported by (or while reaching) the backend.
// The HTTP layer maps it to 502 instead of fabricating a success body.
var ErrBackend = errors.New("backend error")

// ErrInvalidInput marks a request the backend cannot accept as sent
// (e.g. a link without url). The HTTP layer maps it to 400.
var ErrInvalidInput = errors.New("invalid input")

// Dispatcher executes the Shaarli capabilities against a backend.
// Implementations must be safe for concurrent use.
type Dispatcher interface {
	// SearchLinks never fails because of absent filters.
	SearchLinks(ctx context.Context, f domain.LinkFilters) ([]domain.Bookmark, error)
	SearchTags(ctx context.Context, f domain.TagFilters) ([]domain.Tag, error)
	// AddLink returns a best-effort record; fields the backend cannot
	// resolve are left zero for the caller to default.
	AddLink(ctx context.Context, in domain.LinkInput) (domain.Bookmark, error)
}

// Kind names a dispatcher for logs and health output.
func Kind(d Dispatcher) string {
	if k, ok := d.(interface{ Kind() string }); ok {
		return k.Kind()
	}
	return "custom"
}
