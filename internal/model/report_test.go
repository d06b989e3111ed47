package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCityRoster_MarshalJSON_PreservesOrder(t *testing.T) {
	roster := CityRoster{
		{Name: "Wichita Falls", Population: 102316},
		{Name: "Abilene", Population: 125182},
		{Name: "Austin", Population: 961855},
	}

	out, err := json.Marshal(roster)
	require.NoError(t, err)

	// A plain map would sort keys; the roster keeps page order.
	assert.Equal(t, `{"Wichita Falls":102316,"Abilene":125182,"Austin":961855}`, string(out))
}

func TestCityRoster_MarshalJSON_Empty(t *testing.T) {
	out, err := json.Marshal(CityRoster{})
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(out))
}

func TestCityRoster_MarshalJSON_EscapesNames(t *testing.T) {
	roster := CityRoster{{Name: `San "Antonio"`, Population: 1}}
	out, err := json.Marshal(roster)
	require.NoError(t, err)

	var decoded map[string]int
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, 1, decoded[`San "Antonio"`])
}

func TestCityRoster_Get(t *testing.T) {
	roster := CityRoster{
		{Name: "Austin", Population: 961855},
		{Name: "El Paso", Population: 677456},
	}

	pop, ok := roster.Get("El Paso")
	assert.True(t, ok)
	assert.Equal(t, 677456, pop)

	_, ok = roster.Get("Nowhere")
	assert.False(t, ok)
}
