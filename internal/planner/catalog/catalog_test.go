package catalog

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

func testRaw(t *testing.T) RawData {
	t.Helper()

	base, err := Default()
	require.NoError(t, err)

	base.Campaigns = []tacticus.Campaign{
		{ID: "Indomitus", Type: tacticus.CampaignTypeNormal},
		{ID: "Indomitus Elite", Type: tacticus.CampaignTypeElite},
		{ID: "Adeptus Mechanicus Standard", Type: tacticus.CampaignTypeStandard, Event: "Adeptus Mechanicus"},
	}
	base.Battles = []tacticus.BattleConfig{
		{ID: "IE12", Campaign: "Indomitus Elite", NodeNumber: 12, Reward: "shards_ultraTigurius", ExpectedGold: 60},
		{ID: "I30", Campaign: "Indomitus", NodeNumber: 30, Reward: "shards_ultraTigurius", ExpectedGold: 40},
		{ID: "I02", Campaign: "Indomitus", NodeNumber: 2, Reward: "upg_bolter", Rarity: tacticus.RarityCommon},
		{ID: "AMS05", Campaign: "Adeptus Mechanicus Standard", NodeNumber: 5, Reward: "shards_admecManipulus"},
	}
	return base
}

func TestBuildComposesBattles(t *testing.T) {
	cat, err := Build(testRaw(t))
	require.NoError(t, err)

	elite, ok := cat.Battle("IE12")
	require.True(t, ok)
	assert.Equal(t, tacticus.CampaignTypeElite, elite.CampaignType)
	assert.Equal(t, 10, elite.EnergyCost)
	assert.Equal(t, 3.0, elite.DailyBattleCount)
	assert.Equal(t, 1.0, elite.DropRate)
	assert.Equal(t, 10.0, elite.EnergyPerItem)
	assert.Equal(t, 3.0, elite.ItemsPerDay)
	assert.Equal(t, 30.0, elite.EnergyPerDay)

	normal, ok := cat.Battle("I02")
	require.True(t, ok)
	assert.Equal(t, 0.75, normal.DropRate)
	assert.InDelta(t, 8.0, normal.EnergyPerItem, 1e-9)
	assert.InDelta(t, 7.5, normal.ItemsPerDay, 1e-9)

	// energyPerItem * itemsPerDay == dailyBattleCount * energyCost
	assert.InDelta(t, normal.EnergyPerDay, normal.EnergyPerItem*normal.ItemsPerDay, 1e-9)

	event, ok := cat.Battle("AMS05")
	require.True(t, ok)
	assert.Equal(t, "Adeptus Mechanicus", event.CampaignEvent)
	assert.Equal(t, 4, cat.BattleCount())
}

func TestLocationsForItemOrder(t *testing.T) {
	cat, err := Build(testRaw(t))
	require.NoError(t, err)

	locations := cat.LocationsForItem(ShardsMaterialID("ultraTigurius"))
	require.Len(t, locations, 2)
	assert.Equal(t, "I30", locations[0].ID)
	assert.Equal(t, "IE12", locations[1].ID)

	assert.Nil(t, cat.LocationsForItem("shards_nobody"))

	// Callers get a copy.
	locations[0].ID = "changed"
	assert.Equal(t, "I30", cat.LocationsForItem(ShardsMaterialID("ultraTigurius"))[0].ID)
}

func TestZeroDropRateIsNotALocation(t *testing.T) {
	raw := testRaw(t)
	for i := range raw.Configs {
		if raw.Configs[i].Type == tacticus.CampaignTypeStandard {
			raw.Configs[i].DropRates = map[string]float64{"Shard": 0}
		}
	}

	cat, err := Build(raw)
	require.NoError(t, err)

	b, ok := cat.Battle("AMS05")
	require.True(t, ok)
	assert.True(t, math.IsInf(b.EnergyPerItem, 1))
	assert.Empty(t, cat.LocationsForItem("shards_admecManipulus"))
}

func TestEvents(t *testing.T) {
	cat, err := Build(testRaw(t))
	require.NoError(t, err)

	assert.Equal(t, "Adeptus Mechanicus", cat.EventFor("Adeptus Mechanicus Standard"))
	assert.Equal(t, "", cat.EventFor("Indomitus"))
	assert.Equal(t, []string{"Adeptus Mechanicus Standard"}, cat.EventCampaigns("Adeptus Mechanicus"))
	assert.Empty(t, cat.EventCampaigns("Tyranids"))
}

func TestProgressionLookups(t *testing.T) {
	cat, err := Build(testRaw(t))
	require.NoError(t, err)

	from, ok := cat.StepIndex(tacticus.RarityCommon, tacticus.StarsNone)
	require.True(t, ok)
	to, ok := cat.StepIndex(tacticus.RarityUncommon, tacticus.StarsFour)
	require.True(t, ok)

	assert.Equal(t, 10+15+0+15+15, cat.ShardsBetween(from, to))
	assert.Equal(t, 0, cat.ShardsBetween(to, from))
	assert.Equal(t, 0, cat.ShardsBetween(from, from))

	_, ok = cat.StepIndex(tacticus.RarityCommon, tacticus.StarsBlue)
	assert.False(t, ok)

	n, ok := cat.UnlockShards(tacticus.RarityEpic)
	require.True(t, ok)
	assert.Equal(t, 250, n)
}

func TestBuildValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RawData)
	}{
		{
			name: "unknown campaign type",
			mutate: func(r *RawData) {
				r.Configs = append(r.Configs, tacticus.CampaignConfig{Type: "Weekly"})
			},
		},
		{
			name: "duplicate config",
			mutate: func(r *RawData) {
				r.Configs = append(r.Configs, r.Configs[0])
			},
		},
		{
			name: "campaign without config",
			mutate: func(r *RawData) {
				r.Campaigns = append(r.Campaigns, tacticus.Campaign{ID: "Onslaught", Type: tacticus.CampaignTypeOnslaught})
			},
		},
		{
			name: "battle in unknown campaign",
			mutate: func(r *RawData) {
				r.Battles = append(r.Battles, tacticus.BattleConfig{ID: "X1", Campaign: "Nowhere", Reward: "x"})
			},
		},
		{
			name: "duplicate battle",
			mutate: func(r *RawData) {
				r.Battles = append(r.Battles, r.Battles[0])
			},
		},
		{
			name: "empty ladder",
			mutate: func(r *RawData) {
				r.Progression = nil
			},
		},
		{
			name: "duplicate step",
			mutate: func(r *RawData) {
				r.Progression = append(r.Progression, r.Progression[1])
			},
		},
		{
			name: "unknown stars",
			mutate: func(r *RawData) {
				r.Progression = append(r.Progression, tacticus.ProgressionStep{Rarity: tacticus.RarityMythic, Stars: "Wings"})
			},
		},
		{
			name: "missing unlock cost",
			mutate: func(r *RawData) {
				r.UnlockCosts = r.UnlockCosts[:len(r.UnlockCosts)-1]
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := testRaw(t)
			tt.mutate(&raw)

			_, err := Build(raw)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCatalog), "got %v", err)
		})
	}
}

func TestRewardClass(t *testing.T) {
	assert.Equal(t, "Shard", RewardClass(tacticus.BattleConfig{Reward: "shards_x"}))
	assert.Equal(t, "Rare", RewardClass(tacticus.BattleConfig{Reward: "upg_x", Rarity: tacticus.RarityRare}))
}
