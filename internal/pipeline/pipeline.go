// Package pipeline drives the per-state, per-city aggregation loop:
// roster → detail → metro resolution → employment lookup → growth →
// report assembly. External calls fail softly; only reference-data and
// artifact-store failures abort a run.
package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/market-research-cli/internal/geo"
	"github.com/sells-group/market-research-cli/internal/model"
	"github.com/sells-group/market-research-cli/internal/refdata"
	"github.com/sells-group/market-research-cli/internal/scrape"
	"github.com/sells-group/market-research-cli/internal/store"
)

const (
	contentTypeJSON = "application/json"
	contentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Options configures a Pipeline.
type Options struct {
	CityDataBaseURL string
	SeriesBaseURL   string
}

// Pipeline aggregates city demographics and metro employment data into
// per-state report artifacts.
type Pipeline struct {
	fetcher  scrape.Getter
	store    store.Store
	resolver *geo.Resolver
	ref      *refdata.Reference
	rules    []scrape.Rule
	opts     Options
	now      func() time.Time
}

// New creates a Pipeline. The extraction-rule registry is bound here, once,
// and its order fixes the report's column order.
func New(f scrape.Getter, st store.Store, resolver *geo.Resolver, ref *refdata.Reference, rules []scrape.Rule, opts Options) *Pipeline {
	return &Pipeline{
		fetcher:  f,
		store:    st,
		resolver: resolver,
		ref:      ref,
		rules:    rules,
		opts:     opts,
		now:      time.Now,
	}
}

// Run processes each requested state sequentially and returns the
// descriptors of every artifact produced. States whose roster scrape fails
// or comes back empty are skipped; a store failure aborts the run.
func (p *Pipeline) Run(ctx context.Context, states []string, minPopulation int) ([]model.GeneratedFile, error) {
	var generated []model.GeneratedFile

	for _, stateName := range states {
		files, err := p.runState(ctx, stateName, minPopulation)
		if err != nil {
			return generated, err
		}
		generated = append(generated, files...)
	}

	return generated, nil
}

func (p *Pipeline) runState(ctx context.Context, stateName string, minPopulation int) ([]model.GeneratedFile, error) {
	log := zap.L().With(zap.String("state", stateName))

	state, known := refdata.StateByName(stateName)
	if !known {
		log.Warn("pipeline: unknown state, skipping")
		return nil, nil
	}

	listingURL := scrape.ListingURL(p.opts.CityDataBaseURL, state.Name)
	log.Info("pipeline: scraping city roster", zap.String("url", listingURL))

	roster, outcome := scrape.Roster(ctx, p.fetcher, listingURL, state.Abbrev, minPopulation)
	if !outcome.OK() {
		log.Warn("pipeline: roster scrape failed, skipping state",
			zap.String("url", listingURL),
			zap.Error(outcome.Err),
		)
		return nil, nil
	}
	if len(roster) == 0 {
		log.Info("pipeline: no cities above population threshold",
			zap.Int("min_population", minPopulation),
		)
		return nil, nil
	}

	log.Info("pipeline: roster scraped",
		zap.Int("cities", len(roster)),
		zap.Int("min_population", minPopulation),
	)

	// Timestamp truncated to whole seconds; shared by both artifacts so a
	// state's roster and report pair up by name.
	timestamp := p.now().UTC().Format("2006-01-02T15:04:05")

	var generated []model.GeneratedFile

	rosterFile, err := p.saveRoster(ctx, state, roster, minPopulation, timestamp)
	if err != nil {
		return nil, err
	}
	generated = append(generated, *rosterFile)

	rows := p.processCities(ctx, state, roster)

	// No empty report is ever written.
	if len(rows) > 0 {
		reportFile, err := p.saveReport(ctx, state, rows, minPopulation, timestamp)
		if err != nil {
			return generated, err
		}
		generated = append(generated, *reportFile)
		log.Info("pipeline: state complete", zap.Int("rows", len(rows)))
	} else {
		log.Warn("pipeline: no cities yielded detail records, no report written")
	}

	return generated, nil
}

// processCities scrapes each roster city in order and assembles one report
// row per city that yielded a detail record. Metro resolution and the
// employment lookup are best-effort per city.
func (p *Pipeline) processCities(ctx context.Context, state refdata.State, roster model.CityRoster) []model.ReportRow {
	var rows []model.ReportRow

	for _, city := range roster {
		log := zap.L().With(
			zap.String("city", city.Name),
			zap.String("state", state.Name),
		)

		detailURL := scrape.DetailURL(p.opts.CityDataBaseURL, city.Name, state.Name)
		fields, outcome := scrape.Detail(ctx, p.fetcher, detailURL, p.rules)
		if !outcome.OK() {
			log.Warn("pipeline: detail scrape failed, dropping city from report",
				zap.String("url", detailURL),
				zap.Error(outcome.Err),
			)
			continue
		}

		row := model.ReportRow{
			City:        city.Name,
			CityDataURL: detailURL,
			Fields:      fields,
		}

		label := city.Name + ", " + state.Abbrev
		if metro := p.resolver.Closest(ctx, label); metro != "" {
			row.ClosestMetro = metro
			if areaCode, found := p.ref.AreaCode(metro); found {
				seriesURL := scrape.SeriesURL(p.opts.SeriesBaseURL, state.Code, areaCode)
				row.SeriesURL = seriesURL

				sample, empOutcome := scrape.Employment(ctx, p.fetcher, seriesURL)
				if empOutcome.OK() {
					row.JobGrowth = scrape.JobGrowth(sample.MostRecentValue, sample.PreviousYearValue)
				} else {
					log.Warn("pipeline: employment series lookup failed",
						zap.String("url", seriesURL),
						zap.Error(empOutcome.Err),
					)
				}
			}
		}

		rows = append(rows, row)
	}

	return rows
}

func (p *Pipeline) saveRoster(ctx context.Context, state refdata.State, roster model.CityRoster, minPopulation int, timestamp string) (*model.GeneratedFile, error) {
	content, err := json.Marshal(roster)
	if err != nil {
		return nil, eris.Wrap(err, "pipeline: marshal roster")
	}

	name := fmt.Sprintf("%s_cities_population_min_%d_%s.json",
		stateSlug(state.Name), minPopulation, timestamp)

	file, err := p.store.SaveFile(ctx, name, content, contentTypeJSON, map[string]string{
		"state": state.Name,
		"type":  "cities-population",
	})
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: save roster for %s", state.Name)
	}
	return file, nil
}

func (p *Pipeline) saveReport(ctx context.Context, state refdata.State, rows []model.ReportRow, minPopulation int, timestamp string) (*model.GeneratedFile, error) {
	content, err := BuildWorkbook(state.Name, p.rules, rows)
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: build workbook for %s", state.Name)
	}

	name := fmt.Sprintf("market_research_%s_min_%d_%s.xlsx",
		stateSlug(state.Name), minPopulation, timestamp)

	file, err := p.store.SaveFile(ctx, name, content, contentTypeXLSX, map[string]string{
		"state": state.Name,
		"type":  "excel-report",
	})
	if err != nil {
		return nil, eris.Wrapf(err, "pipeline: save report for %s", state.Name)
	}
	return file, nil
}

func stateSlug(name string) string {
	return strings.ToLower(strings.ReplaceAll(name, " ", ""))
}
