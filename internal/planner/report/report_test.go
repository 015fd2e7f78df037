package report

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

func testPlan() *tacticus.EstimatedShards {
	loc := func(id string, done bool) tacticus.TodayRaidLocation {
		return tacticus.TodayRaidLocation{
			RaidLocation: tacticus.RaidLocation{
				Kind:           tacticus.LocationKindCampaign,
				CampaignBattle: tacticus.CampaignBattle{ID: id},
			},
			RaidsCount:  3,
			FarmedItems: 3,
			EnergySpent: 30,
			IsCompleted: done,
		}
	}

	return &tacticus.EstimatedShards{
		DaysTotal:       1234,
		EnergyTotal:     56789,
		EnergyPerDay:    300,
		RaidsTotal:      4321,
		OnslaughtTokens: 9,
		Materials: []tacticus.ShardEstimate{
			{
				ShardMaterial: tacticus.ShardMaterial{
					GoalID: "g1", Label: "Tigurius", AcquiredCount: 100, RequiredCount: 130,
					PossibleLocations: []tacticus.CampaignBattle{{ID: "IE12"}, {ID: "IE40"}},
				},
				UnlockedLocations: []string{"IE12"},
				DaysTotal:         10,
				EnergyTotal:       300,
				RaidsTotal:        30,
			},
			{
				ShardMaterial: tacticus.ShardMaterial{GoalID: "g2", Label: "Actus", RequiredCount: 40},
				IsBlocked:     true,
			},
		},
		ShardsRaids: []tacticus.ShardsRaid{
			{GoalID: "g1", Label: "Tigurius", Locations: []tacticus.TodayRaidLocation{loc("IE12", false), loc("IE05", true)}},
		},
	}
}

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testPlan(), 0))
	out := buf.String()

	for _, want := range []string{
		"Shards farming plan",
		"1,234",
		"56,789",
		"4,321",
		"Tigurius",
		"100/130",
		"1 of 2 unlocked",
		"Actus",
		"blocked",
		"Today",
		"IE12",
		"IE05",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Daily energy")
}

func TestRenderDailyEnergyShare(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, testPlan(), 600))
	assert.Contains(t, buf.String(), "Daily energy")
	assert.Contains(t, buf.String(), "50% of 600")

	// Over budget still renders the share.
	buf.Reset()
	require.NoError(t, Render(&buf, testPlan(), 150))
	assert.Contains(t, buf.String(), "200% of 150")
}

func TestRenderEmptyPlan(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, &tacticus.EstimatedShards{}, 288))
	assert.Contains(t, buf.String(), "No goals need shards.")
	assert.NotContains(t, buf.String(), "Today")
}

func TestRenderNilPlan(t *testing.T) {
	assert.Error(t, Render(&bytes.Buffer{}, nil, 0))
}
