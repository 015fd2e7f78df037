package engine

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rsned/tacticus-planner/internal/planner/catalog"
	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

// testRaw returns a small catalog:
//
//	Elite:    10 energy, 10 battles/day, shard drop 2   -> 5 energy/item, 20 items/day
//	Normal:    6 energy, 10 battles/day, shard drop 0.5 -> 12 energy/item, 5 items/day
//	Standard:  5 energy, 10 battles/day, shard drop 0.5 -> 10 energy/item, 5 items/day
//
// Unlocking a Common character costs 100 shards.
func testRaw(t *testing.T) catalog.RawData {
	t.Helper()

	base, err := catalog.Default()
	require.NoError(t, err)

	base.Configs = []tacticus.CampaignConfig{
		{Type: tacticus.CampaignTypeElite, EnergyCost: 10, DailyBattleCount: 10, DropRates: map[string]float64{"Shard": 2}},
		{Type: tacticus.CampaignTypeNormal, EnergyCost: 6, DailyBattleCount: 10, DropRates: map[string]float64{"Shard": 0.5}},
		{Type: tacticus.CampaignTypeStandard, EnergyCost: 5, DailyBattleCount: 10, DropRates: map[string]float64{"Shard": 0.5}},
	}
	for i := range base.UnlockCosts {
		if base.UnlockCosts[i].Rarity == tacticus.RarityCommon {
			base.UnlockCosts[i].Shards = 100
		}
	}
	base.Campaigns = []tacticus.Campaign{
		{ID: "Indomitus", Type: tacticus.CampaignTypeNormal},
		{ID: "Indomitus Elite", Type: tacticus.CampaignTypeElite},
		{ID: "Saim-Hann Standard", Type: tacticus.CampaignTypeStandard, Event: "Saim-Hann"},
	}
	base.Battles = []tacticus.BattleConfig{
		{ID: "IE01", Campaign: "Indomitus Elite", NodeNumber: 1, Reward: "shards_alpha", ExpectedGold: 10},
		{ID: "IE02", Campaign: "Indomitus Elite", NodeNumber: 2, Reward: "shards_alpha", ExpectedGold: 50},
		{ID: "I05", Campaign: "Indomitus", NodeNumber: 5, Reward: "shards_alpha"},
		{ID: "SHS03", Campaign: "Saim-Hann Standard", NodeNumber: 3, Reward: "shards_alpha"},
		{ID: "IE10", Campaign: "Indomitus Elite", NodeNumber: 10, Reward: "shards_beta"},
	}
	return base
}

func newTestEngine(t *testing.T) (*Engine, *bytes.Buffer) {
	t.Helper()

	cat, err := catalog.Build(testRaw(t))
	require.NoError(t, err)

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return New(cat, logger), &logs
}

func fullProgress() tacticus.EstimatedAscensionSettings {
	return tacticus.EstimatedAscensionSettings{
		CampaignsProgress: tacticus.CampaignsProgress{
			"Indomitus":          75,
			"Indomitus Elite":    40,
			"Saim-Hann Standard": 30,
		},
	}
}

func unlockGoal(id, unit string, acquired int) tacticus.CharacterGoal {
	return tacticus.CharacterGoal{
		Type:     tacticus.GoalTypeUnlock,
		GoalID:   id,
		UnitID:   unit,
		UnitName: unit,
		Rarity:   tacticus.RarityCommon,
		Shards:   acquired,
	}
}

func onslaughtGoal(id, unit string, acquired int) tacticus.CharacterGoal {
	g := unlockGoal(id, unit, acquired)
	g.OnslaughtShards = 1
	g.CampaignsUsage = tacticus.CampaignsUsageNone
	return g
}
