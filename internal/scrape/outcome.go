// Package scrape extracts the pipeline's inputs from three semi-structured
// HTML sources: the per-state city listing, per-city demographic detail
// pages, and metro employment time series. Every scrape returns a tagged
// Outcome so the pipeline can skip the affected city or state while the
// logs keep the distinction between a bad status, a network failure, and a
// page whose markup lacked the expected shape.
package scrape

import (
	"context"
	"errors"

	"github.com/PuerkitoBio/goquery"

	"github.com/sells-group/market-research-cli/internal/fetcher"
)

// Getter fetches and parses one page. Implemented by fetcher.HTML.
type Getter interface {
	GetDocument(ctx context.Context, url string) (*goquery.Document, error)
}

// Kind classifies how a scrape ended.
type Kind int

const (
	// KindOK means data was extracted.
	KindOK Kind = iota
	// KindBadStatus means the source answered with a non-200 status.
	KindBadStatus
	// KindTransport means the source could not be reached.
	KindTransport
	// KindMissingData means the page was fetched but the expected markup
	// (table, rows, enough years of data) was absent.
	KindMissingData
)

// Outcome tags the result of one scrape operation. The pipeline treats all
// non-OK kinds alike (skip and continue); Err carries the cause for logs.
type Outcome struct {
	Kind Kind
	Err  error
}

// OK reports whether the scrape produced data.
func (o Outcome) OK() bool { return o.Kind == KindOK }

func ok() Outcome { return Outcome{Kind: KindOK} }

func missing(err error) Outcome { return Outcome{Kind: KindMissingData, Err: err} }

// classify maps a fetch error onto the outcome taxonomy.
func classify(err error) Outcome {
	var se *fetcher.StatusError
	if errors.As(err, &se) {
		return Outcome{Kind: KindBadStatus, Err: err}
	}
	var te *fetcher.TransportError
	if errors.As(err, &te) {
		return Outcome{Kind: KindTransport, Err: err}
	}
	// Anything else (context cancellation, parse failure) is reported the
	// same way; the pipeline still only skips the unit of work.
	return Outcome{Kind: KindTransport, Err: err}
}
