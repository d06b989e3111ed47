package scrape

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetail(t *testing.T) {
	g := &fakeGetter{pages: map[string]string{"http://x/Austin-Texas.html": detailPage()}}

	fields, outcome := Detail(context.Background(), g, "http://x/Austin-Texas.html", DefaultRules())
	require.True(t, outcome.OK())
	require.Len(t, fields, len(DefaultRules()))

	// Values come back in registry order under the registry names.
	for i, r := range DefaultRules() {
		assert.Equal(t, r.Name, fields[i].Name)
	}
	require.NotNil(t, fields[0].Value)
	assert.Equal(t, "961,855", *fields[0].Value)
}

func TestDetail_PartialPage(t *testing.T) {
	// Only the population anchor exists; every other rule contributes a
	// nil value without failing the scrape.
	page := `<html><body><section id="city-population">Population in 2022: 12,345</section></body></html>`
	g := &fakeGetter{pages: map[string]string{"http://x/c.html": page}}

	fields, outcome := Detail(context.Background(), g, "http://x/c.html", DefaultRules())
	require.True(t, outcome.OK())

	require.NotNil(t, fields[0].Value)
	assert.Equal(t, "12,345", *fields[0].Value)
	for _, fv := range fields[1:] {
		assert.Nil(t, fv.Value, "field %q", fv.Name)
	}
}

func TestDetail_FetchFailure(t *testing.T) {
	g := &fakeGetter{}

	fields, outcome := Detail(context.Background(), g, "http://x/gone.html", DefaultRules())
	assert.Nil(t, fields)
	assert.Equal(t, KindBadStatus, outcome.Kind)
	assert.Error(t, outcome.Err)
}
