package dispatch

import (
	"context"

	"github.com/MrSnakeDoc/linkbridge/internal/domain"
)

// Stub lets the emulated API run without a backend. It keeps no state.
type Stub struct{}

// NewStub returns the default dispatcher.
func NewStub() *Stub {
	return &Stub{}
}

func (Stub) Kind() string { return "stub" }

// SearchLinks always returns an empty list.
func (Stub) SearchLinks(context.Context, domain.LinkFilters) ([]domain.Bookmark, error) {
	return []domain.Bookmark{}, nil
}

// SearchTags always returns an empty list.
func (Stub) SearchTags(context.Context, domain.TagFilters) ([]domain.Tag, error) {
	return []domain.Tag{}, nil
}

// AddLink echoes the input. No id, short url or timestamps are assigned.
func (Stub) AddLink(_ context.Context, in domain.LinkInput) (domain.Bookmark, error) {
	return in.Bookmark(), nil
}
