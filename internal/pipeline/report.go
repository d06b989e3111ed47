package pipeline

import (
	"bytes"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/market-research-cli/internal/model"
	"github.com/sells-group/market-research-cli/internal/scrape"
)

// reportColumnWidth is applied to every column of the report sheet.
const reportColumnWidth = 20

// ReportHeaders returns the report column headers: the fixed correlation
// columns followed by the extraction-registry field names in order.
func ReportHeaders(rules []scrape.Rule) []string {
	headers := []string{"City", "Closest Metro Area", "Job Growth (%)", "City Data URL", "BLS URL"}
	for _, r := range rules {
		headers = append(headers, r.Name)
	}
	return headers
}

// BuildWorkbook renders the report rows into a single-sheet xlsx workbook
// named after the state and returns the serialized bytes. Rows appear in
// the order given (the order cities were successfully scraped).
func BuildWorkbook(state string, rules []scrape.Rule, rows []model.ReportRow) ([]byte, error) {
	file := xlsx.NewFile()
	sheet, err := file.AddSheet(state)
	if err != nil {
		return nil, eris.Wrapf(err, "report: add sheet %s", state)
	}

	headers := ReportHeaders(rules)

	headerStyle := xlsx.NewStyle()
	headerStyle.Font.Bold = true
	headerStyle.ApplyFont = true

	headerRow := sheet.AddRow()
	for _, h := range headers {
		cell := headerRow.AddCell()
		cell.Value = h
		cell.SetStyle(headerStyle)
	}

	for _, r := range rows {
		row := sheet.AddRow()
		row.AddCell().Value = r.City
		row.AddCell().Value = r.ClosestMetro

		growthCell := row.AddCell()
		if r.JobGrowth != nil {
			growthCell.SetFloat(*r.JobGrowth)
		}

		row.AddCell().Value = r.CityDataURL
		row.AddCell().Value = r.SeriesURL

		for _, fv := range r.Fields {
			cell := row.AddCell()
			if fv.Value != nil {
				cell.Value = *fv.Value
			}
		}
	}

	sheet.SetColWidth(0, len(headers)-1, reportColumnWidth)

	var buf bytes.Buffer
	if err := file.Write(&buf); err != nil {
		return nil, eris.Wrap(err, "report: write workbook")
	}
	return buf.Bytes(), nil
}
