package collector

import (
	"context"
	"net/url"
	"os"
	"strings"
)

// FileFetcher reads the payload from the local filesystem. Locators may be
// plain paths or file:// URLs.
type FileFetcher struct{}

func NewFileFetcher() *FileFetcher { return &FileFetcher{} }

func (f *FileFetcher) Name() string { return "file" }

func (f *FileFetcher) Fetch(ctx context.Context, locator string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &RetrievalError{Locator: locator, Err: err}
	}
	path := locator
	if strings.HasPrefix(strings.ToLower(locator), "file://") {
		u, err := url.Parse(locator)
		if err != nil {
			return "", &RetrievalError{Locator: locator, Err: err}
		}
		path = u.Path
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", &RetrievalError{Locator: locator, Err: err}
	}
	return string(data), nil
}
