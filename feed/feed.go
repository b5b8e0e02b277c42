// Package feed loads the listings document.
package feed

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/nordiskauto/bilvisning/internal/logging"
	"github.com/nordiskauto/bilvisning/types"
)

const userAgent = "bilvisning/1.0 (+https://github.com/nordiskauto/bilvisning)"

// Loader implements types.ListingSource for one fixed location: an http(s)
// URL, a file:// URL or a plain path.
type Loader struct {
	location string
	client   *http.Client
	logger   logging.Logger
}

// Compile-time interface check
var _ types.ListingSource = (*Loader)(nil)

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

// WithLogger sets the logger used to report failures and stats mismatches.
func WithLogger(logger logging.Logger) Option {
	return func(l *Loader) { l.logger = logging.OrNoop(logger) }
}

// New creates a Loader. The HTTP client has no timeout: a load is a single
// best-effort attempt bounded only by ctx.
func New(location string, opts ...Option) *Loader {
	l := &Loader{
		location: location,
		client:   &http.Client{},
		logger:   logging.Noop(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Location returns the document location.
func (l *Loader) Location() string { return l.location }

// Load fetches and decodes the document once. Failures are *NetworkError or
// *ParseError.
func (l *Loader) Load(ctx context.Context) (types.Feed, error) {
	body, err := l.fetch(ctx)
	if err != nil {
		l.logger.Error("feed fetch failed", "location", l.location, "err", err)
		return types.Feed{}, err
	}

	feed, err := ParseFeed(bytes.NewReader(body))
	if err != nil {
		perr := &ParseError{Location: l.location, Err: err}
		l.logger.Error("feed parse failed", "location", l.location, "err", err)
		return types.Feed{}, perr
	}

	if derived := types.DeriveStats(feed.Cars); len(feed.Cars) > 0 && derived != feed.Stats {
		l.logger.Warn("feed stats disagree with listings",
			"location", l.location,
			"stats", fmt.Sprintf("%+v", feed.Stats),
			"derived", fmt.Sprintf("%+v", derived))
	}
	l.logger.Info("feed loaded", "location", l.location, "cars", len(feed.Cars))
	return feed, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	if isRemote(l.location) {
		return l.fetchHTTP(ctx)
	}
	path := strings.TrimPrefix(l.location, "file://")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &NetworkError{Location: l.location, Err: err}
	}
	return data, nil
}

func (l *Loader) fetchHTTP(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.location, nil)
	if err != nil {
		return nil, &NetworkError{Location: l.location, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, &NetworkError{Location: l.location, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &NetworkError{Location: l.location, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Location: l.location, Err: fmt.Errorf("read body: %w", err)}
	}
	return body, nil
}

func isRemote(location string) bool {
	lower := strings.ToLower(location)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
