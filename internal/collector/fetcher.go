package collector

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Fetcher retrieves the full text payload addressed by a locator.
type Fetcher interface {
	Fetch(ctx context.Context, locator string) (string, error)
	Name() string
}

// RetrievalError means the payload could not be obtained.
type RetrievalError struct {
	Locator    string
	StatusCode int
	Err        error
}

func (e *RetrievalError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("retrieve %s: status %d: %v", e.Locator, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("retrieve %s: %v", e.Locator, e.Err)
}

func (e *RetrievalError) Unwrap() error { return e.Err }

// NewFetcher picks an HTTP fetcher for http(s) URLs and a file fetcher otherwise.
func NewFetcher(locator, proxyURL string, timeout time.Duration) Fetcher {
	if isHTTP(locator) {
		return NewHTTPFetcher(proxyURL, timeout)
	}
	return NewFileFetcher()
}

func isHTTP(locator string) bool {
	l := strings.ToLower(locator)
	return strings.HasPrefix(l, "http://") || strings.HasPrefix(l, "https://")
}
