// Package refdata loads the static lookup tables the pipeline correlates
// against: named metropolitan areas (with their employment-series area
// codes) and named cities, both with coordinates. Tables are embedded and
// loaded once per run.
package refdata

import (
	"embed"
	"encoding/json"
	"sort"

	"github.com/rotisserie/eris"
)

//go:embed data/area_data.json data/city_data.json
var dataFS embed.FS

// Coord is a (latitude, longitude) pair in decimal degrees.
type Coord struct {
	Lat float64
	Lon float64
}

// MetroArea is one metropolitan statistical area from the reference table.
// AreaCode is the 5-character code keyed on by the employment series.
type MetroArea struct {
	Name     string
	AreaCode string
	Coord    Coord
}

// Reference holds both lookup tables for a pipeline run.
type Reference struct {
	Metros []MetroArea
	Cities *CoordCache
}

type areaEntry struct {
	AreaCode    string     `json:"area_code"`
	Coordinates [2]float64 `json:"coordinates"`
}

type cityEntry struct {
	Coordinates [2]float64 `json:"coordinates"`
}

// Load reads the embedded reference tables. Metro areas are sorted by name
// so nearest-metro tie-breaks are deterministic across runs.
func Load() (*Reference, error) {
	areaRaw, err := dataFS.ReadFile("data/area_data.json")
	if err != nil {
		return nil, eris.Wrap(err, "refdata: read area data")
	}
	var areas map[string]areaEntry
	if err := json.Unmarshal(areaRaw, &areas); err != nil {
		return nil, eris.Wrap(err, "refdata: decode area data")
	}

	metros := make([]MetroArea, 0, len(areas))
	for name, a := range areas {
		metros = append(metros, MetroArea{
			Name:     name,
			AreaCode: a.AreaCode,
			Coord:    Coord{Lat: a.Coordinates[0], Lon: a.Coordinates[1]},
		})
	}
	sort.Slice(metros, func(i, j int) bool { return metros[i].Name < metros[j].Name })

	cityRaw, err := dataFS.ReadFile("data/city_data.json")
	if err != nil {
		return nil, eris.Wrap(err, "refdata: read city data")
	}
	var cities map[string]cityEntry
	if err := json.Unmarshal(cityRaw, &cities); err != nil {
		return nil, eris.Wrap(err, "refdata: decode city data")
	}

	cache := NewCoordCache()
	for name, c := range cities {
		cache.Put(name, Coord{Lat: c.Coordinates[0], Lon: c.Coordinates[1]})
	}

	return &Reference{Metros: metros, Cities: cache}, nil
}

// AreaCode returns the employment-series area code for a metro name.
func (r *Reference) AreaCode(metroName string) (string, bool) {
	for _, m := range r.Metros {
		if m.Name == metroName {
			return m.AreaCode, true
		}
	}
	return "", false
}
