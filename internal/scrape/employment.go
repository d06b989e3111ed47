package scrape

import (
	"context"
	"sort"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/rotisserie/eris"

	"github.com/sells-group/market-research-cli/internal/model"
)

type monthValue struct {
	index int // column position among the month cells
	value float64
}

type yearRow struct {
	year   int
	months []monthValue
}

// Employment scrapes an employment time series table and returns the most
// recent data point together with the comparable point one year earlier.
// The comparison prefers the exact same month; failing that, the closest
// month index in the previous year. Requires at least two years of data.
func Employment(ctx context.Context, g Getter, url string) (*model.EmploymentSample, Outcome) {
	doc, err := g.GetDocument(ctx, url)
	if err != nil {
		return nil, classify(err)
	}

	table := doc.Find("#table0")
	if table.Length() == 0 {
		return nil, missing(eris.Errorf("no series table in %s", url))
	}

	rows := table.Find("tbody tr")
	if rows.Length() == 0 {
		return nil, missing(eris.Errorf("no rows in series table at %s", url))
	}

	var years []yearRow
	rows.Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		year, parseErr := strconv.Atoi(strings.TrimSpace(cells.First().Text()))
		if parseErr != nil {
			// Non-numeric first cell: annotation row, not an error.
			return
		}

		var months []monthValue
		cells.Slice(1, cells.Length()).Each(func(i int, cell *goquery.Selection) {
			// TrimSpace also drops non-breaking-space placeholder cells.
			raw := strings.TrimSpace(cell.Text())
			if raw == "" {
				return
			}
			cleaned := cleanSeriesValue(raw)
			v, valErr := strconv.ParseFloat(cleaned, 64)
			if valErr != nil {
				return
			}
			months = append(months, monthValue{index: i, value: v})
		})

		if len(months) > 0 {
			years = append(years, yearRow{year: year, months: months})
		}
	})

	sort.Slice(years, func(i, j int) bool { return years[i].year > years[j].year })

	if len(years) < 2 {
		return nil, missing(eris.Errorf("fewer than two years of data at %s", url))
	}

	current, previous := years[0], years[1]

	sort.Slice(current.months, func(i, j int) bool {
		return current.months[i].index > current.months[j].index
	})
	mostRecent := current.months[0]

	// Exact month match preferred; otherwise the closest month index, with
	// ties resolved by whichever sorts first.
	var previousValue *float64
	var previousMonth *int
	for _, m := range previous.months {
		if m.index == mostRecent.index {
			v := m.value
			previousValue = &v
			pm := m.index + 1
			previousMonth = &pm
			break
		}
	}
	if previousValue == nil && len(previous.months) > 0 {
		candidates := make([]monthValue, len(previous.months))
		copy(candidates, previous.months)
		sort.SliceStable(candidates, func(i, j int) bool {
			return abs(candidates[i].index-mostRecent.index) < abs(candidates[j].index-mostRecent.index)
		})
		v := candidates[0].value
		previousValue = &v
	}

	if previousValue == nil {
		return nil, missing(eris.Errorf("no comparable month for year %d at %s", previous.year, url))
	}

	return &model.EmploymentSample{
		MostRecentValue:   mostRecent.value,
		PreviousYearValue: *previousValue,
		CurrentYear:       current.year,
		PreviousYear:      previous.year,
		CurrentMonth:      mostRecent.index + 1,
		PreviousMonth:     previousMonth,
	}, ok()
}

var preliminaryMarker = strings.NewReplacer("(P)", "", "(p)", "", ",", "")

// cleanSeriesValue strips the preliminary-data marker and thousands
// separators before numeric parsing.
func cleanSeriesValue(raw string) string {
	return strings.TrimSpace(preliminaryMarker.Replace(raw))
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
