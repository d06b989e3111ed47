package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/market-research-cli/internal/fetcher"
	"github.com/sells-group/market-research-cli/internal/geo"
	"github.com/sells-group/market-research-cli/internal/pipeline"
	"github.com/sells-group/market-research-cli/internal/refdata"
	"github.com/sells-group/market-research-cli/internal/scrape"
	"github.com/sells-group/market-research-cli/internal/store"
	"github.com/sells-group/market-research-cli/pkg/geocode"
)

// pipelineEnv holds the initialized store and pipeline shared by the
// scrape and serve commands.
type pipelineEnv struct {
	Store    store.Store
	Pipeline *pipeline.Pipeline
}

// Close releases resources held by the pipeline environment.
func (pe *pipelineEnv) Close() {
	if pe.Store != nil {
		_ = pe.Store.Close()
	}
}

// initPipeline sets up the store, loads reference data, and builds the
// pipeline. Callers should defer env.Close(). The geocoder key may come
// from config or be overridden per request.
func initPipeline(ctx context.Context, geocoderKey string) (*pipelineEnv, error) {
	if geocoderKey == "" {
		geocoderKey = cfg.Geocoder.Key
	}
	if geocoderKey == "" {
		return nil, eris.New("geocoder api key is required (geocoder.key or MARKETRESEARCH_GEOCODER_KEY)")
	}

	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}

	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "migrate store")
	}

	ref, err := refdata.Load()
	if err != nil {
		_ = st.Close()
		return nil, eris.Wrap(err, "load reference data")
	}
	zap.L().Info("reference data loaded",
		zap.Int("metro_areas", len(ref.Metros)),
		zap.Int("cached_cities", ref.Cities.Len()),
	)

	f := fetcher.NewHTML(fetcher.HTMLOptions{
		UserAgent:    cfg.Scrape.UserAgent,
		Timeout:      time.Duration(cfg.Scrape.TimeoutSecs) * time.Second,
		RateLimiters: fetcher.DefaultRateLimiters(),
	})

	gc := geocode.NewClient(geocoderKey, geocode.WithRateLimit(cfg.Geocoder.RPS))
	resolver := geo.NewResolver(gc, ref.Metros, ref.Cities)

	p := pipeline.New(f, st, resolver, ref, scrape.DefaultRules(), pipeline.Options{
		CityDataBaseURL: cfg.Scrape.CityDataBaseURL,
		SeriesBaseURL:   cfg.Scrape.SeriesBaseURL,
	})

	return &pipelineEnv{Store: st, Pipeline: p}, nil
}
