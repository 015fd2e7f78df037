package engine

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

func TestGetShardsEstimatedDaysOnslaughtOnly(t *testing.T) {
	e, _ := newTestEngine(t)

	plan, err := e.GetShardsEstimatedDays(fullProgress(),
		onslaughtGoal("a", "delta", 97),
		onslaughtGoal("b", "epsilon", 97),
	)
	require.NoError(t, err)

	assert.Equal(t, 6, plan.OnslaughtTokens)
	assert.Equal(t, 4, plan.DaysTotal)
	assert.Zero(t, plan.EnergyTotal)
	assert.Zero(t, plan.RaidsTotal)
	require.Len(t, plan.Materials, 2)
	assert.Equal(t, 4, plan.Materials[1].DaysTotal)
}

func TestGetShardsEstimatedDaysTotals(t *testing.T) {
	e, _ := newTestEngine(t)

	plan, err := e.GetShardsEstimatedDays(fullProgress(),
		unlockGoal("g1", "beta", 0),
		unlockGoal("g2", "alpha", 70),
		unlockGoal("g3", "gamma", 0),
	)
	require.NoError(t, err)
	require.Len(t, plan.Materials, 3)

	assert.Equal(t, 500.0+150, plan.EnergyTotal)
	assert.Equal(t, 50+15, plan.RaidsTotal)
	assert.Equal(t, 100.0+200, plan.EnergyPerDay)
	assert.Equal(t, 5, plan.DaysTotal)
	assert.True(t, plan.Materials[2].IsBlocked)

	// The blocked material has no raids today.
	require.Len(t, plan.ShardsRaids, 2)
	assert.Equal(t, "g1", plan.ShardsRaids[0].GoalID)
	assert.Equal(t, "g2", plan.ShardsRaids[1].GoalID)
}

func TestGetShardsEstimatedDaysTokenBottleneck(t *testing.T) {
	e, _ := newTestEngine(t)

	// Heavy onslaught yield closes the gap fast but still burns tokens.
	goal := onslaughtGoal("a", "delta", 0)
	goal.OnslaughtShards = 20
	other := onslaughtGoal("b", "epsilon", 0)
	other.OnslaughtShards = 20

	plan, err := e.GetShardsEstimatedDays(fullProgress(), goal, other)
	require.NoError(t, err)

	maxDays := 0
	for _, m := range plan.Materials {
		maxDays = max(maxDays, m.DaysTotal)
	}
	assert.Equal(t, max(maxDays, ceil(float64(plan.OnslaughtTokens)/onslaughtTokensPerDay)), plan.DaysTotal)
	assert.GreaterOrEqual(t, plan.DaysTotal, maxDays)
}

func TestGetShardsEstimatedDaysEnergyBudget(t *testing.T) {
	e, _ := newTestEngine(t)

	settings := fullProgress()
	settings.Preferences.ShardsEnergy = 150

	plan, err := e.GetShardsEstimatedDays(settings,
		unlockGoal("g1", "beta", 0),
		unlockGoal("g2", "alpha", 0),
	)
	require.NoError(t, err)

	// Long-run totals ignore the budget.
	require.Len(t, plan.Materials, 2)
	assert.Equal(t, 300.0, plan.EnergyPerDay)

	// Today: beta whole (100 energy), alpha scaled to the remaining 50 of 200.
	require.Len(t, plan.ShardsRaids, 2)
	alpha := plan.ShardsRaids[1]
	require.Len(t, alpha.Locations, 2)
	spent := 0.0
	for _, loc := range alpha.Locations {
		spent += loc.EnergySpent
		assert.Equal(t, 3, loc.RaidsCount)
		assert.Equal(t, 5.0, loc.FarmedItems)
	}
	assert.Equal(t, 50.0, spent)

	// The unscaled estimate is untouched.
	assert.Equal(t, 100.0, plan.Materials[1].RaidsLocations[0].EnergyPerDay)
}

func TestGetShardsEstimatedDaysIdempotent(t *testing.T) {
	e, _ := newTestEngine(t)

	settings := fullProgress()
	settings.CampaignEvent = "Saim-Hann"
	settings.CompletedLocations = []string{"IE10"}
	settings.Preferences.ShardsEnergy = 250
	goals := []tacticus.CharacterGoal{
		unlockGoal("g1", "beta", 10),
		onslaughtGoal("g2", "delta", 50),
		unlockGoal("g3", "alpha", 33),
	}

	first, err := e.GetShardsEstimatedDays(settings, goals...)
	require.NoError(t, err)
	second, err := e.GetShardsEstimatedDays(settings, goals...)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("estimates differ (-first +second):\n%s", diff)
	}
}

func TestTodayRaidsOrdering(t *testing.T) {
	loc := func(id string, daily float64) tacticus.RaidLocation {
		return tacticus.RaidLocation{
			Kind: tacticus.LocationKindCampaign,
			CampaignBattle: tacticus.CampaignBattle{
				ID:               id,
				DailyBattleCount: daily,
				ItemsPerDay:      daily * 2,
				EnergyPerDay:     daily * 10,
			},
		}
	}

	materials := []tacticus.ShardEstimate{
		{
			ShardMaterial:  tacticus.ShardMaterial{GoalID: "done"},
			RaidsLocations: []tacticus.RaidLocation{loc("A", 3)},
		},
		{
			ShardMaterial: tacticus.ShardMaterial{GoalID: "blocked"},
			IsBlocked:     true,
		},
		{
			ShardMaterial:  tacticus.ShardMaterial{GoalID: "mixed"},
			RaidsLocations: []tacticus.RaidLocation{loc("B", 1.5), loc("C", 10)},
		},
	}

	raids := TodayRaids(materials, []string{"A", "B"})
	require.Len(t, raids, 2)

	assert.Equal(t, "mixed", raids[0].GoalID)
	assert.False(t, raids[0].IsCompleted)
	require.Len(t, raids[0].Locations, 2)
	assert.Equal(t, "C", raids[0].Locations[0].ID)
	assert.False(t, raids[0].Locations[0].IsCompleted)
	assert.Equal(t, "B", raids[0].Locations[1].ID)
	assert.True(t, raids[0].Locations[1].IsCompleted)
	assert.Equal(t, 2, raids[0].Locations[1].RaidsCount)
	assert.Equal(t, 3.0, raids[0].Locations[1].FarmedItems)
	assert.Equal(t, 15.0, raids[0].Locations[1].EnergySpent)

	assert.Equal(t, "done", raids[1].GoalID)
	assert.True(t, raids[1].IsCompleted)
}

func TestLimitByEnergy(t *testing.T) {
	est := func(id string, energyPerDay float64) tacticus.ShardEstimate {
		return tacticus.ShardEstimate{
			ShardMaterial: tacticus.ShardMaterial{GoalID: id},
			RaidsLocations: []tacticus.RaidLocation{
				{
					Kind: tacticus.LocationKindCampaign,
					CampaignBattle: tacticus.CampaignBattle{
						ID:               id,
						DailyBattleCount: energyPerDay / 10,
						ItemsPerDay:      energyPerDay / 5,
						EnergyPerDay:     energyPerDay,
					},
				},
				{
					Kind:           tacticus.LocationKindOnslaught,
					CampaignBattle: tacticus.CampaignBattle{ID: "Onslaught 1", DailyBattleCount: 0.5, ItemsPerDay: 1},
				},
			},
			EnergyPerDay: energyPerDay,
		}
	}
	estimates := []tacticus.ShardEstimate{est("a", 100), est("b", 60), est("c", 50)}

	assert.Equal(t, estimates, LimitByEnergy(estimates, 0))

	limited := LimitByEnergy(estimates, 130)
	require.Len(t, limited, 2)
	assert.Equal(t, estimates[0], limited[0])

	partial := limited[1]
	assert.Equal(t, 30.0, partial.EnergyPerDay)
	assert.Equal(t, 30.0, partial.RaidsLocations[0].EnergyPerDay)
	assert.Equal(t, 6.0, partial.RaidsLocations[0].ItemsPerDay)
	assert.Equal(t, 3.0, partial.RaidsLocations[0].DailyBattleCount)
	// Onslaught slots are not energy bound.
	assert.Equal(t, 1.0, partial.RaidsLocations[1].ItemsPerDay)

	// Input is untouched.
	assert.Equal(t, 60.0, estimates[1].RaidsLocations[0].EnergyPerDay)

	// An exact fit leaves no room for a partial material.
	assert.Len(t, LimitByEnergy(estimates, 160), 2)
	assert.Equal(t, 60.0, LimitByEnergy(estimates, 160)[1].EnergyPerDay)
}
