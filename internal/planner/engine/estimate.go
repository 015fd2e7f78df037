package engine

import (
	"slices"
	"sort"

	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

// GetShardsEstimatedDays builds the aggregate farming plan for goals in
// priority order. Long-run totals use every material; today's raids honour
// the settings' shards energy budget.
func (e *Engine) GetShardsEstimatedDays(
	settings tacticus.EstimatedAscensionSettings,
	goals ...tacticus.CharacterGoal,
) (*tacticus.EstimatedShards, error) {
	materials, err := e.ConvertGoalsToMaterials(settings, goals)
	if err != nil {
		return nil, err
	}

	plan := &tacticus.EstimatedShards{
		Materials:   materials,
		ShardsRaids: TodayRaids(LimitByEnergy(materials, settings.Preferences.ShardsEnergy), settings.CompletedLocations),
	}

	maxDays := 0
	for _, m := range materials {
		plan.EnergyTotal += m.EnergyTotal
		plan.EnergyPerDay += m.EnergyPerDay
		plan.OnslaughtTokens += m.OnslaughtTokensTotal
		plan.RaidsTotal += m.RaidsTotal
		maxDays = max(maxDays, m.DaysTotal)
	}
	plan.DaysTotal = max(maxDays, ceil(float64(plan.OnslaughtTokens)/onslaughtTokensPerDay))

	e.logger.Debug("estimated shards",
		"materials", len(materials),
		"days", plan.DaysTotal,
		"energy", plan.EnergyTotal,
		"raids", plan.RaidsTotal,
		"tokens", plan.OnslaughtTokens)

	return plan, nil
}

// TodayRaids lays out today's raids per material. Completed locations and
// fully completed materials sort last; materials without locations are left out.
func TodayRaids(materials []tacticus.ShardEstimate, completedLocations []string) []tacticus.ShardsRaid {
	raids := make([]tacticus.ShardsRaid, 0, len(materials))
	for _, m := range materials {
		if len(m.RaidsLocations) == 0 {
			continue
		}

		locations := make([]tacticus.TodayRaidLocation, 0, len(m.RaidsLocations))
		allDone := true
		for _, loc := range m.RaidsLocations {
			done := slices.Contains(completedLocations, loc.ID)
			allDone = allDone && done
			locations = append(locations, tacticus.TodayRaidLocation{
				RaidLocation: loc,
				RaidsCount:   ceil(loc.DailyBattleCount),
				FarmedItems:  loc.ItemsPerDay,
				EnergySpent:  loc.EnergyPerDay,
				IsCompleted:  done,
			})
		}
		sort.SliceStable(locations, func(i, j int) bool {
			return !locations[i].IsCompleted && locations[j].IsCompleted
		})

		raids = append(raids, tacticus.ShardsRaid{
			GoalID:          m.GoalID,
			CharacterID:     m.CharacterID,
			Label:           m.Label,
			IconPath:        m.IconPath,
			AcquiredCount:   m.AcquiredCount,
			RequiredCount:   m.RequiredCount,
			OnslaughtShards: m.OnslaughtShards,
			IsCompleted:     allDone,
			Locations:       locations,
		})
	}

	sort.SliceStable(raids, func(i, j int) bool {
		return !raids[i].IsCompleted && raids[j].IsCompleted
	})

	return raids
}
