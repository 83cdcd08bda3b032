package encoding

import (
	"testing"

	"github.com/stretchr/testify/require"
)

type sample struct {
	Health float32 `json:"health"`
	Name   string  `json:"name"`
}

func TestToMap(t *testing.T) {
	m, err := ToMap(sample{Health: 42.5, Name: "Hero"})
	require.NoError(t, err)
	require.Equal(t, map[string]any{"health": 42.5, "name": "Hero"}, m)
}

func TestFromMap(t *testing.T) {
	var s sample
	require.NoError(t, FromMap(map[string]any{"health": 10, "name": "NPC"}, &s))
	require.Equal(t, sample{Health: 10, Name: "NPC"}, s)
}

func TestToMapRejectsNonObjects(t *testing.T) {
	_, err := ToMap(42)
	require.Error(t, err)
}
