package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"

	"golang.org/x/time/rate"
)

// Non-200 answer from the puzzle site
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP error %d from %s", e.Code, e.URL)
}

// Handles puzzle page downloads
type PageFetcher struct {
	client  *http.Client
	config  *Config
	decoder *PayloadDecoder
	limiter *rate.Limiter
	logger  *log.Logger
}

// Creates a new page fetcher
func NewPageFetcher(config *Config, decoder *PayloadDecoder) *PageFetcher {
	return &PageFetcher{
		client: &http.Client{
			Timeout: config.HTTPTimeout.Std(),
		},
		config:  config,
		decoder: decoder,
		limiter: rate.NewLimiter(rate.Every(config.RetryInterval.Std()), 1),
		logger:  log.New(os.Stderr, "[Fetcher] ", log.LstdFlags),
	}
}

// Downloads a page and returns its body
func (f *PageFetcher) FetchPage(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if f.config.UserAgent != "" {
		req.Header.Set("User-Agent", f.config.UserAgent)
	}
	if f.config.Cookie != "" {
		req.Header.Set("Cookie", f.config.Cookie)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &StatusError{URL: url, Code: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}

	return string(body), nil
}

// Downloads a game page and decodes the puzzle JSON embedded in it.
// Pages that come back without a payload are fetched again, up to
// config.Retries attempts spaced by config.RetryInterval.
func (f *PageFetcher) FetchPuzzle(ctx context.Context, url string) ([]byte, error) {
	var lastErr error

	for attempt := 1; attempt <= f.config.Retries; attempt++ {
		if err := f.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		f.logger.Printf("Loading %s (attempt %d/%d)...", url, attempt, f.config.Retries)

		page, err := f.FetchPage(ctx, url)
		if err != nil {
			var statusErr *StatusError
			if errors.As(err, &statusErr) && statusErr.Code < http.StatusInternalServerError {
				return nil, err
			}
			lastErr = err
			f.logger.Printf("Fetch failed: %v", err)
			continue
		}

		blob, err := ExtractPayload(page)
		if err != nil {
			lastErr = err
			f.logger.Printf("No puzzle data in %s, retrying", url)
			continue
		}

		data, err := f.decoder.Decode(blob)
		if err != nil {
			return nil, fmt.Errorf("failed to decode puzzle from %s: %w", url, err)
		}

		return data, nil
	}

	return nil, fmt.Errorf("giving up on %s after %d attempts: %w", url, f.config.Retries, lastErr)
}
