package scrape

// JobGrowth returns the year-over-year change ratio between two series
// values, or nil when the previous-year denominator is zero. Negative
// growth is valid and signed; no flooring or capping is applied.
func JobGrowth(current, previous float64) *float64 {
	if previous == 0 {
		return nil
	}
	g := (current - previous) / previous
	return &g
}
