package localsearch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
)

// Fetcher retrieves the raw index payload.
type Fetcher interface {
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, path string) ([]byte, error)

func (f FetcherFunc) Fetch(ctx context.Context, path string) ([]byte, error) {
	return f(ctx, path)
}

// DefaultFetcher GETs http(s) URLs and reads anything else from disk. A
// relative path is resolved against BaseURL when one is set.
//
// No timeout is applied beyond what the context and Client impose.
type DefaultFetcher struct {
	Client  *http.Client
	BaseURL string
}

func (f *DefaultFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if !isHTTP(path) && f.BaseURL != "" {
		base, err := url.Parse(f.BaseURL)
		if err != nil {
			return nil, fmt.Errorf("parse base url: %w", err)
		}
		ref, err := url.Parse(path)
		if err != nil {
			return nil, fmt.Errorf("parse index path: %w", err)
		}
		path = base.ResolveReference(ref).String()
	}
	if isHTTP(path) {
		return f.get(ctx, path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read index file: %w", err)
	}
	return data, nil
}

func (f *DefaultFetcher) get(ctx context.Context, rawURL string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build index request: %w", err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("fetch index: unexpected status %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read index body: %w", err)
	}
	return body, nil
}

func isHTTP(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}
