package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/market-research-cli/internal/model"
	"github.com/sells-group/market-research-cli/internal/scrape"
)

func TestReportHeaders(t *testing.T) {
	rules := scrape.DefaultRules()
	headers := ReportHeaders(rules)

	require.Len(t, headers, 5+len(rules))
	assert.Equal(t, []string{"City", "Closest Metro Area", "Job Growth (%)", "City Data URL", "BLS URL"}, headers[:5])
	for i, r := range rules {
		assert.Equal(t, r.Name, headers[5+i])
	}
}

func TestBuildWorkbook(t *testing.T) {
	rules := []scrape.Rule{
		{Name: "Population in 2022"},
		{Name: "Poverty percentage"},
	}
	growth := 0.052
	pop := "961,855"
	rows := []model.ReportRow{
		{
			City:         "Austin",
			ClosestMetro: "Austin-Round Rock-Georgetown, TX",
			JobGrowth:    &growth,
			CityDataURL:  "http://cd/city/Austin-Texas.html",
			SeriesURL:    "http://bls/SMU48124200000000001",
			Fields: []model.FieldValue{
				{Name: "Population in 2022", Value: &pop},
				{Name: "Poverty percentage", Value: nil},
			},
		},
		{
			City:        "Laredo",
			CityDataURL: "http://cd/city/Laredo-Texas.html",
			Fields: []model.FieldValue{
				{Name: "Population in 2022", Value: nil},
				{Name: "Poverty percentage", Value: nil},
			},
		},
	}

	content, err := BuildWorkbook("Texas", rules, rows)
	require.NoError(t, err)
	require.NotEmpty(t, content)

	wb, err := xlsx.OpenBinary(content)
	require.NoError(t, err)
	require.Len(t, wb.Sheets, 1)

	sheet := wb.Sheets[0]
	assert.Equal(t, "Texas", sheet.Name)
	require.Len(t, sheet.Rows, 3)

	header := sheet.Rows[0]
	assert.Equal(t, "City", header.Cells[0].Value)
	assert.Equal(t, "Poverty percentage", header.Cells[6].Value)
	assert.True(t, header.Cells[0].GetStyle().Font.Bold)

	austin := sheet.Rows[1]
	assert.Equal(t, "Austin", austin.Cells[0].Value)
	g, err := austin.Cells[2].Float()
	require.NoError(t, err)
	assert.InDelta(t, 0.052, g, 1e-9)
	assert.Equal(t, "961,855", austin.Cells[5].Value)
	assert.Empty(t, austin.Cells[6].Value)

	// Nullable columns render as empty cells, never "nil" strings.
	laredo := sheet.Rows[2]
	assert.Equal(t, "Laredo", laredo.Cells[0].Value)
	assert.Empty(t, laredo.Cells[1].Value)
	assert.Empty(t, laredo.Cells[2].Value)
}

func TestBuildWorkbook_NoRows(t *testing.T) {
	content, err := BuildWorkbook("Texas", scrape.DefaultRules(), nil)
	require.NoError(t, err)

	wb, err := xlsx.OpenBinary(content)
	require.NoError(t, err)
	require.Len(t, wb.Sheets[0].Rows, 1, "header only")
}
