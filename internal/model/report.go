// Package model defines the pipeline's data types: roster entries, scraped
// detail fields, employment samples, assembled report rows, and stored
// artifact descriptors.
package model

import (
	"bytes"
	"encoding/json"
	"time"
)

// CityCount is one roster entry: a city and its listed population.
type CityCount struct {
	Name       string
	Population int
}

// CityRoster is an ordered set of roster entries, preserving the order the
// listing page presented them. It marshals to a JSON object keyed by city
// name, in that order.
type CityRoster []CityCount

// Get returns the population for a city name, if present.
func (r CityRoster) Get(name string) (int, bool) {
	for _, c := range r {
		if c.Name == name {
			return c.Population, true
		}
	}
	return 0, false
}

// MarshalJSON emits a {"city": population, ...} object preserving roster
// order. A map would serialize with sorted keys, losing page order.
func (r CityRoster) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, c := range r {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(c.Name)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		val, err := json.Marshal(c.Population)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// FieldValue is one extracted demographic field. Value is nil when the
// page lacked the field's anchor or pattern.
type FieldValue struct {
	Name  string
	Value *string
}

// ReportRow is one city's merged output. JobGrowth is nil when the
// employment comparison had no valid denominator; ClosestMetro and
// SeriesURL are empty when metro resolution failed.
type ReportRow struct {
	City         string
	ClosestMetro string
	JobGrowth    *float64
	CityDataURL  string
	SeriesURL    string
	Fields       []FieldValue
}

// EmploymentSample is the most recent point of an employment series plus
// the comparable point one year earlier. Months are 1-based column
// positions; PreviousMonth is nil when the previous year lacked the exact
// month and a closest-month fallback was used.
type EmploymentSample struct {
	MostRecentValue   float64
	PreviousYearValue float64
	CurrentYear       int
	PreviousYear      int
	CurrentMonth      int
	PreviousMonth     *int
}

// GeneratedFile describes a stored artifact, without its content.
type GeneratedFile struct {
	Name        string            `json:"name"`
	ContentType string            `json:"content_type"`
	Size        int64             `json:"size"`
	Metadata    map[string]string `json:"metadata"`
	CreatedAt   time.Time         `json:"created_at"`
}

// File is a stored artifact together with its content.
type File struct {
	GeneratedFile
	Content []byte `json:"-"`
}
