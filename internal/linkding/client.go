// Package linkding implements the Shaarli capabilities on top of the
// LinkDing REST API (https://github.com/sissbruecker/linkding/blob/master/docs/API.md).
package linkding

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/MrSnakeDoc/linkbridge/internal/dispatch"
	"github.com/MrSnakeDoc/linkbridge/internal/logger"
	"github.com/MrSnakeDoc/linkbridge/internal/utils"
)

const (
	// DefaultTimeout bounds each outbound call.
	DefaultTimeout = 5 * time.Second
	// DefaultPageSize is the tag page size; Shaarli clients expect every tag
	// on a wildcard lookup, so ask for many at once.
	DefaultPageSize = 1000
	// DefaultMaxPages caps the number of followed "next" cursors.
	DefaultMaxPages = 100

	endpointBookmarks = "api/bookmarks/"
	endpointTags      = "api/tags/"

	maxErrorBody = 512
)

// Options configures an Adapter.
type Options struct {
	BaseURI       string        // ex: "https://linkding.domain.ext/"
	Token         string        // LinkDing API token
	Timeout       time.Duration // per outbound call, DefaultTimeout when <= 0
	PageSize      int           // DefaultPageSize when <= 0
	MaxPages      int           // DefaultMaxPages when <= 0
	SkipTLSVerify bool          // accept self-signed certificates
	HTTPClient    *http.Client  // optional, replaces the built-in client
	Logger        logger.Logger // optional
}

// Adapter is a dispatch.Dispatcher backed by LinkDing. After New it only
// holds immutable configuration, so it is safe for concurrent use.
type Adapter struct {
	dispatch.Stub // SearchLinks has no LinkDing mapping yet

	baseURI  string
	headers  map[string]string
	http     *http.Client
	pageSize int
	maxPages int
	logger   logger.Logger
}

// New validates the options and builds an Adapter.
func New(opts Options) (*Adapter, error) {
	base, err := normalizeBaseURI(opts.BaseURI)
	if err != nil {
		return nil, err
	}
	if opts.Token == "" {
		return nil, fmt.Errorf("linkding token is required")
	}

	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.PageSize <= 0 {
		opts.PageSize = DefaultPageSize
	}
	if opts.MaxPages <= 0 {
		opts.MaxPages = DefaultMaxPages
	}
	if opts.Logger == nil {
		opts.Logger = logger.NewNop()
	}

	client := opts.HTTPClient
	if client == nil {
		client = newHTTPClient(opts.Timeout, opts.SkipTLSVerify)
	}

	return &Adapter{
		baseURI: base,
		headers: map[string]string{
			"Authorization": "Token " + opts.Token,
			"Accept":        "application/json",
		},
		http:     client,
		pageSize: opts.PageSize,
		maxPages: opts.MaxPages,
		logger:   opts.Logger,
	}, nil
}

func (a *Adapter) Kind() string { return "linkding" }

// BaseURI is the normalized base, without trailing separator.
func (a *Adapter) BaseURI() string { return a.baseURI }

// normalizeBaseURI strips every trailing "/" so that joining an endpoint
// never produces "//api/...", which LinkDing answers with 404.
func normalizeBaseURI(raw string) (string, error) {
	base := strings.TrimRight(strings.TrimSpace(raw), "/")
	if base == "" {
		return "", fmt.Errorf("%w: %q", ErrInvalidBaseURI, raw)
	}
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidBaseURI, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not absolute", ErrInvalidBaseURI, raw)
	}
	return base, nil
}

func (a *Adapter) endpoint(path string) string {
	return a.baseURI + "/" + strings.TrimLeft(path, "/")
}

func newHTTPClient(timeout time.Duration, skipVerify bool) *http.Client {
	transport := http.DefaultTransport.(*http.Transport).Clone()
	transport.TLSClientConfig = &tls.Config{
		MinVersion:         tls.VersionTLS12,
		InsecureSkipVerify: skipVerify, //nolint:gosec // opt-in for self-signed setups
	}
	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}

// doJSON sends one request and decodes a 2xx JSON answer into out.
// Transport failures and non-2xx statuses wrap dispatch.ErrBackend.
// No retries: a failed call is a failed capability.
func (a *Adapter) doJSON(ctx context.Context, method, uri string, body, out any) error {
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode linkding request: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, uri, reader)
	if err != nil {
		return fmt.Errorf("failed to create linkding request: %w", err)
	}
	for k, v := range a.headers {
		req.Header.Set(k, v)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := a.http.Do(req)
	if err != nil {
		return fmt.Errorf("%w: linkding %s %s: %w", dispatch.ErrBackend, method, uri, err)
	}
	defer utils.Close(resp.Body)

	a.logger.Debug("linkding call",
		logger.String("method", method),
		logger.String("url", uri),
		logger.Int("status", resp.StatusCode),
		logger.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		excerpt, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return &StatusError{
			Method:     method,
			URL:        uri,
			StatusCode: resp.StatusCode,
			Body:       strings.TrimSpace(string(excerpt)),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: linkding %s %s: invalid response: %w", dispatch.ErrBackend, method, uri, err)
	}
	return nil
}
