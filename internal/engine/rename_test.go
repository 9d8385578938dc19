package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/matchdayhq/matchday-data/internal/model"
)

func TestRenameTeamInMatches(t *testing.T) {
	matches := []model.Match{
		{TeamA: "Mbabane Swallows", TeamB: "Green Mamba"},
		{TeamA: "Royal Leopards", TeamB: "mbabane-swallows"}, // normalize-equal variant
		{TeamA: "Young Buffaloes", TeamB: "Royal Leopards"},
	}

	out := RenameTeamInMatches(matches, "Mbabane Swallows", "Mbabane Eagles")

	assert.Equal(t, "Mbabane Eagles", out[0].TeamA)
	assert.Equal(t, "Green Mamba", out[0].TeamB)
	assert.Equal(t, "Mbabane Eagles", out[1].TeamB)
	assert.Equal(t, "Young Buffaloes", out[2].TeamA)

	// Input untouched.
	assert.Equal(t, "Mbabane Swallows", matches[0].TeamA)
}
