package remote

import (
	"context"
	"fmt"
	"net/http"

	"awscli-update/internal/config"
	"awscli-update/internal/logger"
	"awscli-update/internal/version"
)

// HTTPClient is the minimal HTTP client the fetcher needs, so tests can swap it.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithURL sets the changelog URL.
func WithURL(url string) Option {
	return func(f *Fetcher) {
		if url != "" {
			f.url = url
		}
	}
}

// WithHTTPClient sets the HTTP client.
func WithHTTPClient(h HTTPClient) Option {
	return func(f *Fetcher) {
		if h != nil {
			f.httpClient = h
		}
	}
}

// Fetcher discovers the latest published AWS CLI version from the changelog page.
type Fetcher struct {
	url        string
	httpClient HTTPClient
}

// NewFetcher creates a Fetcher for the default changelog URL.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		url:        config.DefaultChangelogURL,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// FetchLatest downloads the changelog once and parses the newest release from it.
// Network failures and non-200 responses are returned as errors; a page that does
// not contain a recognisable version yields (nil, nil).
func (f *Fetcher) FetchLatest(ctx context.Context) (*version.Version, error) {
	logger.Debug("[DEBUG] Fetching changelog from %s\n", f.url)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("remote: build request: %w", err)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("remote: request failed: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil {
			logger.Warn("[WARN] Failed to close HTTP response body: %v\n", cerr)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("remote: unexpected status %d from %s", resp.StatusCode, f.url)
	}

	latest := version.ParseChangelog(resp.Body)
	if latest == nil {
		logger.Debug("[DEBUG] No version heading found in changelog\n")
		return nil, nil
	}
	logger.Debug("[DEBUG] Latest version from changelog: %s\n", latest)
	return latest, nil
}
