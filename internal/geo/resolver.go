// Package geo resolves a city to its geographically closest metropolitan
// area using the static reference table, geocoding city coordinates on
// cache miss.
package geo

import (
	"context"
	"math"

	"go.uber.org/zap"

	"github.com/sells-group/market-research-cli/internal/refdata"
	"github.com/sells-group/market-research-cli/pkg/geocode"
)

// Resolver finds the nearest metro area for "City, ST" labels. The
// coordinate cache is run-scoped: geocoded entries are added in memory and
// never persisted back to the reference store.
type Resolver struct {
	geocoder geocode.Client
	metros   []refdata.MetroArea
	cache    *refdata.CoordCache
}

// NewResolver creates a Resolver over the given metro table and cache.
// The metro slice is iterated in order for distance ties, so callers
// needing deterministic tie-breaks should pass a sorted table (refdata.Load
// sorts by name).
func NewResolver(gc geocode.Client, metros []refdata.MetroArea, cache *refdata.CoordCache) *Resolver {
	return &Resolver{geocoder: gc, metros: metros, cache: cache}
}

// Closest returns the name of the metro area nearest to the labeled city,
// or "" when the city's coordinates cannot be established. A failed or
// unmatched geocode is a soft failure: logged, not returned as an error.
func (r *Resolver) Closest(ctx context.Context, label string) string {
	coord, cached := r.cache.Get(label)
	if !cached {
		result, err := r.geocoder.Geocode(ctx, label)
		if err != nil {
			zap.L().Warn("geo: geocode failed", zap.String("city", label), zap.Error(err))
			return ""
		}
		if !result.Matched {
			zap.L().Warn("geo: no geocode result", zap.String("city", label))
			return ""
		}
		coord = refdata.Coord{Lat: result.Lat, Lon: result.Lon}
		r.cache.Put(label, coord)
	}

	closest := ""
	minDistance := math.Inf(1)
	for _, m := range r.metros {
		d := distanceKM(coord, m.Coord)
		if d < minDistance {
			minDistance = d
			closest = m.Name
		}
	}
	return closest
}

const earthRadiusKM = 6371.0

// distanceKM is the great-circle (haversine) distance between two points.
func distanceKM(a, b refdata.Coord) float64 {
	lat1 := a.Lat * math.Pi / 180
	lat2 := b.Lat * math.Pi / 180
	dLat := (b.Lat - a.Lat) * math.Pi / 180
	dLon := (b.Lon - a.Lon) * math.Pi / 180

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1)*math.Cos(lat2)*math.Sin(dLon/2)*math.Sin(dLon/2)
	return 2 * earthRadiusKM * math.Asin(math.Sqrt(h))
}
