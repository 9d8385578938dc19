package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Mbabane Swallows", "mbabaneswallows"},
		{"strips punctuation", "Green-Mamba F.C.", "greenmambafc"},
		{"keeps digits", "Eleven Men 11", "elevenmen11"},
		{"trims whitespace", "  Royal Leopards  ", "royalleopards"},
		{"empty", "", ""},
		{"only punctuation", "***", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Normalize(tc.in))
		})
	}
}

func TestNormalizeCollision(t *testing.T) {
	// The whole engine joins on this property: spelling variants of one
	// name must collide.
	assert.Equal(t, Normalize("Mbabane Swallows"), Normalize("MBABANE SWALLOWS"))
	assert.Equal(t, Normalize("Green Mamba"), Normalize("green-mamba"))
	assert.NotEqual(t, Normalize("Green Mamba"), Normalize("Black Mamba"))
}

func TestStableIDDeterministic(t *testing.T) {
	a := StableID("Sabelo Ndzinisa")
	b := StableID("Sabelo Ndzinisa")
	assert.Equal(t, a, b)

	// Same normalized name, same id — regardless of formatting.
	assert.Equal(t, StableID("sabelo ndzinisa"), a)
	assert.Equal(t, StableID("SABELO-NDZINISA"), a)
}

func TestStableIDNonNegative(t *testing.T) {
	for _, name := range []string{"a", "zz", "Banele Sikhondze", "Player With A Rather Long Name Indeed"} {
		assert.GreaterOrEqual(t, StableID(name), 0, "name %q", name)
	}
}

func TestStableIDDistinguishesNames(t *testing.T) {
	assert.NotEqual(t, StableID("Sabelo Ndzinisa"), StableID("Banele Sikhondze"))
}
