package scrape

import "strings"

// ListingURL builds the city listing page URL for a state.
func ListingURL(base, state string) string {
	return base + "/city/" + strings.ReplaceAll(state, " ", "-") + ".html"
}

// DetailURL builds the detail page URL for a city. Spaces become dashes
// and apostrophes are dropped, matching how the source names its pages.
func DetailURL(base, city, state string) string {
	c := strings.ReplaceAll(city, " ", "-")
	c = strings.ReplaceAll(c, "'", "")
	return base + "/city/" + c + "-" + strings.ReplaceAll(state, " ", "-") + ".html"
}

// SeriesID constructs the employment series identifier for a state and
// metro area code. External systems key on this format, so it must be
// reproduced exactly: SMU + 2-digit state code + 5-char area code +
// "0000000001".
func SeriesID(stateCode, areaCode string) string {
	return "SMU" + stateCode + areaCode + "0000000001"
}

// SeriesURL builds the time-series lookup URL for a series ID.
func SeriesURL(base, stateCode, areaCode string) string {
	return base + "/" + SeriesID(stateCode, areaCode)
}
