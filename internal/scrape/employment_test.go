package scrape

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seriesPage(rows string) string {
	return `<html><body><table id="table0"><thead>
<tr><th>Year</th><th>Jan</th><th>Feb</th><th>Mar</th><th>Apr</th><th>May</th><th>Jun</th></tr>
</thead><tbody>` + rows + `</tbody></table></body></html>`
}

func TestEmployment(t *testing.T) {
	// 2024 has data through April (preliminary), 2023 has April too: the
	// exact same month is preferred for the year-over-year comparison.
	page := seriesPage(`
<tr><td>2024</td><td>&nbsp;</td><td>&nbsp;</td><td>104.8</td><td>105.2(P)</td><td>&nbsp;</td><td>&nbsp;</td></tr>
<tr><td>2023</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>100.0</td><td>&nbsp;</td><td>&nbsp;</td></tr>
`)
	g := &fakeGetter{pages: map[string]string{"http://x/series": page}}

	sample, outcome := Employment(context.Background(), g, "http://x/series")
	require.True(t, outcome.OK())

	assert.Equal(t, 105.2, sample.MostRecentValue)
	assert.Equal(t, 100.0, sample.PreviousYearValue)
	assert.Equal(t, 2024, sample.CurrentYear)
	assert.Equal(t, 2023, sample.PreviousYear)
	assert.Equal(t, 4, sample.CurrentMonth)
	require.NotNil(t, sample.PreviousMonth)
	assert.Equal(t, 4, *sample.PreviousMonth)
}

func TestEmployment_ThousandsSeparators(t *testing.T) {
	page := seriesPage(`
<tr><td>2024</td><td>1,234.5</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td></tr>
<tr><td>2023</td><td>1,200.0</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td></tr>
`)
	g := &fakeGetter{pages: map[string]string{"http://x/series": page}}

	sample, outcome := Employment(context.Background(), g, "http://x/series")
	require.True(t, outcome.OK())
	assert.Equal(t, 1234.5, sample.MostRecentValue)
	assert.Equal(t, 1200.0, sample.PreviousYearValue)
	assert.Equal(t, 1, sample.CurrentMonth)
}

func TestEmployment_ClosestMonthFallback(t *testing.T) {
	// 2023 lacks April; June (distance 2) beats January (distance 3).
	page := seriesPage(`
<tr><td>2024</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>105.2</td><td>&nbsp;</td><td>&nbsp;</td></tr>
<tr><td>2023</td><td>98.0</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>99.5</td></tr>
`)
	g := &fakeGetter{pages: map[string]string{"http://x/series": page}}

	sample, outcome := Employment(context.Background(), g, "http://x/series")
	require.True(t, outcome.OK())
	assert.Equal(t, 99.5, sample.PreviousYearValue)
	assert.Nil(t, sample.PreviousMonth, "fallback comparisons carry no month")
}

func TestEmployment_ClosestMonthTie(t *testing.T) {
	// March and May are both one month from April; the earlier table
	// column wins the tie.
	page := seriesPage(`
<tr><td>2024</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>105.2</td><td>&nbsp;</td><td>&nbsp;</td></tr>
<tr><td>2023</td><td>&nbsp;</td><td>&nbsp;</td><td>99.0</td><td>&nbsp;</td><td>101.0</td><td>&nbsp;</td></tr>
`)
	g := &fakeGetter{pages: map[string]string{"http://x/series": page}}

	sample, outcome := Employment(context.Background(), g, "http://x/series")
	require.True(t, outcome.OK())
	assert.Equal(t, 99.0, sample.PreviousYearValue)
}

func TestEmployment_SkipsAnnotationRows(t *testing.T) {
	page := seriesPage(`
<tr><td>Annual averages</td><td>102.0</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td></tr>
<tr><td>2024</td><td>105.0</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td></tr>
<tr><td>2023</td><td>100.0</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td></tr>
`)
	g := &fakeGetter{pages: map[string]string{"http://x/series": page}}

	sample, outcome := Employment(context.Background(), g, "http://x/series")
	require.True(t, outcome.OK())
	assert.Equal(t, 2024, sample.CurrentYear)
	assert.Equal(t, 105.0, sample.MostRecentValue)
}

func TestEmployment_SingleYear(t *testing.T) {
	page := seriesPage(`
<tr><td>2024</td><td>105.0</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td><td>&nbsp;</td></tr>
`)
	g := &fakeGetter{pages: map[string]string{"http://x/series": page}}

	sample, outcome := Employment(context.Background(), g, "http://x/series")
	assert.Nil(t, sample)
	assert.Equal(t, KindMissingData, outcome.Kind)
}

func TestEmployment_NoTable(t *testing.T) {
	g := &fakeGetter{pages: map[string]string{"http://x/series": "<html><body><p>series not found</p></body></html>"}}

	sample, outcome := Employment(context.Background(), g, "http://x/series")
	assert.Nil(t, sample)
	assert.Equal(t, KindMissingData, outcome.Kind)
}

func TestEmployment_FetchFailure(t *testing.T) {
	g := &fakeGetter{}

	sample, outcome := Employment(context.Background(), g, "http://x/series")
	assert.Nil(t, sample)
	assert.Equal(t, KindBadStatus, outcome.Kind)
}

func TestCleanSeriesValue(t *testing.T) {
	assert.Equal(t, "105.2", cleanSeriesValue("105.2(P)"))
	assert.Equal(t, "105.2", cleanSeriesValue("105.2(p)"))
	assert.Equal(t, "1234.5", cleanSeriesValue("1,234.5"))
	assert.Equal(t, "105.2", cleanSeriesValue(" 105.2 "))
}
