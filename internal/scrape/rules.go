package scrape

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Rule extracts one named demographic field from a parsed city page.
// Extract returns nil when the anchor or pattern is absent; one rule
// failing never affects the others.
type Rule struct {
	Name    string
	Extract func(doc *goquery.Document) *string
}

// The positional text-node offsets below (contents 1, 3, 25, 27 of the
// income section) encode the exact shape of the observed markup. They are
// deliberately literal and must not be re-derived from a schema: the pages
// carry no stable structure beyond "the Nth node after the Nth label".
var (
	rePopulation    = regexp.MustCompile(`Population in 2022:\s*([\d,]+)`)
	rePopChange     = regexp.MustCompile(`Population change since 2000:</b>(.*?)%`)
	reCurrency      = regexp.MustCompile(`\$\d{1,3}(?:,\d{3})*`)
	reGrossRent     = regexp.MustCompile(`Median gross rent in 2023:.*?(\$[\d,]+)`)
	rePovertyLevel  = regexp.MustCompile(`Percentage of residents living in poverty in 2023.*?:</b>(.*?)%`)
)

// DefaultRules returns the fixed extraction registry in output-column
// order. The registry is bound once at pipeline start; field names double
// as report column headers.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "Population in 2022",
			Extract: func(doc *goquery.Document) *string {
				text := doc.Find("#city-population").Text()
				if m := rePopulation.FindStringSubmatch(text); m != nil {
					return strPtr(strings.TrimSpace(m[1]))
				}
				return nil
			},
		},
		{
			Name: "Population change since 2000 (%)",
			Extract: func(doc *goquery.Document) *string {
				html, err := doc.Find("#city-population").Html()
				if err != nil {
					return nil
				}
				if m := rePopChange.FindStringSubmatch(html); m != nil {
					return strPtr(strings.TrimSpace(m[1]) + "%")
				}
				return nil
			},
		},
		{
			Name: "Median household income in 2023",
			Extract: func(doc *goquery.Document) *string {
				// Text node directly after the first bold label.
				text := strings.TrimSpace(doc.Find("#median-income").Contents().Eq(1).Text())
				if m := reCurrency.FindString(text); m != "" {
					return strPtr(m)
				}
				return nil
			},
		},
		{
			Name: "Median household income in 2000",
			Extract: func(doc *goquery.Document) *string {
				text := strings.TrimSpace(doc.Find("#median-income").Contents().Eq(3).Text())
				if text == "" {
					return nil
				}
				return strPtr(text)
			},
		},
		{
			Name: "Median condo value in 2023",
			Extract: func(doc *goquery.Document) *string {
				text := strings.TrimSpace(doc.Find("#median-income").Contents().Eq(25).Text())
				if m := reCurrency.FindString(text); m != "" {
					return strPtr(m)
				}
				return nil
			},
		},
		{
			Name: "Median condo value in 2000",
			Extract: func(doc *goquery.Document) *string {
				text := strings.TrimSpace(doc.Find("#median-income").Contents().Eq(27).Text())
				if text == "" {
					return nil
				}
				return strPtr(text)
			},
		},
		{
			Name: "Median contract rent",
			Extract: func(doc *goquery.Document) *string {
				text := doc.Find("#median-rent").Find("p").First().Text()
				if m := reGrossRent.FindStringSubmatch(text); m != nil {
					return strPtr(strings.TrimSpace(m[1]))
				}
				return nil
			},
		},
		{
			Name: "Poverty percentage",
			Extract: func(doc *goquery.Document) *string {
				html, err := doc.Find("#poverty-level").Html()
				if err != nil {
					return nil
				}
				if m := rePovertyLevel.FindStringSubmatch(html); m != nil {
					return strPtr(strings.TrimSpace(m[1]) + "%")
				}
				return nil
			},
		},
		{
			Name: "Largest ethnicity percentage",
			Extract: func(doc *goquery.Document) *string {
				items := doc.Find("#races-graph").Find("ul li ul li")
				if items.Length() == 0 {
					return nil
				}
				percentage := strings.TrimSpace(items.First().Find("span").Last().Text())
				if percentage == "" {
					return nil
				}
				return strPtr(percentage)
			},
		},
		{
			Name: "Largest ethnicity slice",
			Extract: func(doc *goquery.Document) *string {
				items := doc.Find("#races-graph").Find("ul li ul li")
				if items.Length() == 0 {
					return nil
				}
				ethnicity := strings.TrimSpace(items.First().Find("b").Text())
				if ethnicity == "" {
					return nil
				}
				return strPtr(ethnicity)
			},
		},
		{
			Name: "Most recent crime index",
			Extract: func(doc *goquery.Document) *string {
				last := doc.Find("#crimeTab").Find("tfoot tr td").Last()
				if last.Length() == 0 {
					return nil
				}
				return strPtr(strings.TrimSpace(last.Text()))
			},
		},
		{
			Name: "Unemployment rate",
			Extract: func(doc *goquery.Document) *string {
				text := strings.TrimSpace(doc.Find("#unemployment .hgraph table tr").
					First().
					Find("td").
					Last().
					Text())
				if text == "" {
					return nil
				}
				return strPtr(text)
			},
		},
	}
}

func strPtr(s string) *string { return &s }
