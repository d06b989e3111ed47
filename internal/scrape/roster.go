package scrape

import (
	"context"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/sells-group/market-research-cli/internal/model"
)

// Roster scrapes the city listing page for a state and returns the cities
// whose population is strictly greater than minPopulation, in page order.
// The state abbreviation suffix (", TX") is stripped from city labels by
// exact match. Rows with fewer than 3 cells or an unparseable population
// are skipped.
func Roster(ctx context.Context, g Getter, url, stateAbbrev string, minPopulation int) (model.CityRoster, Outcome) {
	doc, err := g.GetDocument(ctx, url)
	if err != nil {
		return nil, classify(err)
	}

	suffix := ", " + stateAbbrev
	var roster model.CityRoster

	doc.Find(".tabBlue tbody tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}
		name := strings.TrimSpace(strings.ReplaceAll(cells.Eq(1).Text(), suffix, ""))
		popText := strings.TrimSpace(cells.Eq(2).Text())

		population, parseErr := strconv.Atoi(strings.ReplaceAll(popText, ",", ""))
		if parseErr != nil {
			zap.L().Debug("roster: unparseable population, skipping row",
				zap.String("city", name),
				zap.String("population", popText),
				zap.String("url", url),
			)
			return
		}
		if population > minPopulation {
			roster = append(roster, model.CityCount{Name: name, Population: population})
		}
	})

	return roster, ok()
}
