package scrape

import (
	"context"

	"github.com/sells-group/market-research-cli/internal/model"
)

// Detail scrapes a city detail page, applying every rule in the registry
// independently. The returned values are in registry order; a rule whose
// anchor or pattern is absent contributes a nil value rather than failing
// the scrape.
func Detail(ctx context.Context, g Getter, url string, rules []Rule) ([]model.FieldValue, Outcome) {
	doc, err := g.GetDocument(ctx, url)
	if err != nil {
		return nil, classify(err)
	}

	fields := make([]model.FieldValue, 0, len(rules))
	for _, rule := range rules {
		fields = append(fields, model.FieldValue{
			Name:  rule.Name,
			Value: rule.Extract(doc),
		})
	}
	return fields, ok()
}
