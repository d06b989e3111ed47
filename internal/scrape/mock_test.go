package scrape

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/market-research-cli/internal/fetcher"
)

// fakeGetter serves canned HTML by URL. Unknown URLs return a 404 status
// error; URLs in errs return the configured error.
type fakeGetter struct {
	pages map[string]string
	errs  map[string]error
	calls []string
}

func (f *fakeGetter) GetDocument(_ context.Context, url string) (*goquery.Document, error) {
	f.calls = append(f.calls, url)
	if err, ok := f.errs[url]; ok {
		return nil, err
	}
	html, ok := f.pages[url]
	if !ok {
		return nil, &fetcher.StatusError{URL: url, Status: http.StatusNotFound}
	}
	return goquery.NewDocumentFromReader(strings.NewReader(html))
}
