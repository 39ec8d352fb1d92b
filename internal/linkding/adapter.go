package linkding

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/MrSnakeDoc/linkbridge/internal/dispatch"
	"github.com/MrSnakeDoc/linkbridge/internal/domain"
	"github.com/MrSnakeDoc/linkbridge/internal/logger"
)

// AddLink creates a bookmark. LinkDing has no private flag: the returned
// record always has Private=false, whatever the client asked.
func (a *Adapter) AddLink(ctx context.Context, in domain.LinkInput) (domain.Bookmark, error) {
	if in.URL == "" {
		return domain.Bookmark{}, fmt.Errorf("%w: url is required", dispatch.ErrInvalidInput)
	}

	tags := in.Tags
	if tags == nil {
		tags = []string{}
	}

	req := bookmarkRequest{
		URL:         in.URL,
		Title:       in.Title,
		Description: in.Description,
		TagNames:    tags,
	}

	var resp bookmarkResponse
	if err := a.doJSON(ctx, http.MethodPost, a.endpoint(endpointBookmarks), req, &resp); err != nil {
		return domain.Bookmark{}, err
	}

	b := domain.Bookmark{
		ID:          resp.ID,
		URL:         in.URL,
		Title:       in.Title,
		Description: in.Description,
		Tags:        tags,
		Private:     false,
		Created:     a.timestamp("date_added", resp.DateAdded),
		Updated:     a.timestamp("date_modified", resp.DateModified),
	}

	a.logger.Info("bookmark created",
		logger.Int("id", int(resp.ID)),
		logger.String("url", in.URL),
		logger.Int("tags", len(tags)))

	return b, nil
}

// SearchTags lists every LinkDing tag by following the "next" cursors, then
// applies the filters window. LinkDing does not report usage counts, so
// every tag has one occurrence.
func (a *Adapter) SearchTags(ctx context.Context, f domain.TagFilters) ([]domain.Tag, error) {
	next := a.endpoint(endpointTags) + "?limit=" + strconv.Itoa(a.pageSize)

	tags := make([]domain.Tag, 0)
	for page := 0; next != ""; page++ {
		if page >= a.maxPages {
			return nil, fmt.Errorf("%w: linkding tags: %w (cap %d)", dispatch.ErrBackend, ErrTooManyPages, a.maxPages)
		}

		var p tagPage
		if err := a.doJSON(ctx, http.MethodGet, next, nil, &p); err != nil {
			return nil, err
		}
		for _, t := range p.Results {
			tags = append(tags, domain.Tag{Name: t.Name, Occurrences: 1})
		}

		cursor, err := a.resolveNext(next, p.Next)
		if err != nil {
			return nil, fmt.Errorf("%w: linkding tags: %w", dispatch.ErrBackend, err)
		}
		next = cursor
	}

	// A tag created between two pages shifts the listing; drop the repeats.
	tags = domain.DedupeTags(tags)

	a.logger.Debug("linkding tags listed", logger.Int("count", len(tags)))

	return f.Window(tags), nil
}

// resolveNext returns the absolute URL of the next page, or "" on the last one.
// A relative cursor is resolved against the current page. The result must
// stay on the base URI's scheme and host.
func (a *Adapter) resolveNext(current string, next *string) (string, error) {
	if next == nil || *next == "" {
		return "", nil
	}
	base, err := url.Parse(current)
	if err != nil {
		return "", fmt.Errorf("invalid page url %q: %w", current, err)
	}
	ref, err := url.Parse(*next)
	if err != nil {
		return "", fmt.Errorf("invalid next cursor %q: %w", *next, err)
	}
	resolved := base.ResolveReference(ref)
	origin, err := url.Parse(a.baseURI)
	if err != nil {
		return "", fmt.Errorf("invalid base uri %q: %w", a.baseURI, err)
	}
	if !strings.EqualFold(resolved.Scheme, origin.Scheme) || !strings.EqualFold(resolved.Host, origin.Host) {
		return "", fmt.Errorf("%w: %s://%s", ErrForeignCursor, resolved.Scheme, resolved.Host)
	}
	return resolved.String(), nil
}

// timestamp parses a LinkDing date, leaving it zero (and logging) when the
// value is absent or unreadable.
func (a *Adapter) timestamp(field, value string) domain.Timestamp {
	if value == "" {
		return domain.Timestamp{}
	}
	ts, err := domain.ParseTimestamp(value)
	if err != nil {
		a.logger.Warn("ignoring unreadable linkding date",
			logger.String("field", field),
			logger.String("value", value),
			logger.Error(err))
		return domain.Timestamp{}
	}
	return ts
}
