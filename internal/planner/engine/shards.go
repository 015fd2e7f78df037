package engine

import (
	"fmt"

	"github.com/rsned/tacticus-planner/internal/planner/catalog"
	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

// ConvertGoalsToMaterials simulates farming for each goal in priority order.
// Goals that are already satisfied are dropped. Onslaught tokens used by a
// goal delay the onslaught income of every goal after it.
func (e *Engine) ConvertGoalsToMaterials(
	settings tacticus.EstimatedAscensionSettings,
	goals []tacticus.CharacterGoal,
) ([]tacticus.ShardEstimate, error) {
	materials := make([]tacticus.ShardMaterial, 0, len(goals))
	for _, goal := range goals {
		material, err := e.ConvertGoalToMaterial(goal)
		if err != nil {
			return nil, err
		}
		if material.AcquiredCount >= material.RequiredCount {
			continue
		}
		materials = append(materials, *material)
	}

	estimates := make([]tacticus.ShardEstimate, 0, len(materials))
	previousTokens := 0
	for _, material := range materials {
		estimate := e.simulate(settings, material, previousTokens)
		previousTokens += estimate.OnslaughtTokensTotal
		estimates = append(estimates, estimate)
	}

	return estimates, nil
}

// simulate runs the day-stepped farming loop for a single material.
func (e *Engine) simulate(
	settings tacticus.EstimatedAscensionSettings,
	material tacticus.ShardMaterial,
	previousTokens int,
) tacticus.ShardEstimate {
	unlocked := e.UnlockedLocations(material.PossibleLocations, settings, nil)
	selected := selectRaidLocations(unlocked, material.CampaignsUsage)

	raids := make([]tacticus.RaidLocation, 0, len(selected)+onslaughtMaxTokens)
	energyPerDay := 0.0
	for _, loc := range selected {
		raids = append(raids, tacticus.RaidLocation{Kind: tacticus.LocationKindCampaign, CampaignBattle: loc})
		energyPerDay += loc.EnergyPerDay
	}
	if material.OnslaughtShards > 0 {
		raids = append(raids, onslaughtSlots(material)...)
	}

	estimate := tacticus.ShardEstimate{
		ShardMaterial:     material,
		UnlockedLocations: locationIDs(unlocked),
		RaidsLocations:    raids,
		IsBlocked:         len(raids) == 0,
	}
	if estimate.IsBlocked {
		estimate.RaidsLocations = nil
		return estimate
	}
	estimate.EnergyPerDay = energyPerDay

	gap := float64(material.RequiredCount - material.AcquiredCount)
	tokenDays := float64(previousTokens) / onslaughtTokensPerDay

	var collected, energyTotal, raidsTotal, tokens float64
	days := 0
	for collected < gap {
		// Campaign farming stops for the day after a partial raid. Onslaught
		// slots always run through their gate.
		campaignsDone := false
		for _, loc := range raids {
			switch loc.Kind {
			case tacticus.LocationKindOnslaught:
				if days == 0 || float64(days) > tokenDays {
					collected += loc.ItemsPerDay
					tokens += loc.DailyBattleCount
				}

			default:
				left := gap - collected
				if campaignsDone || left <= 0 {
					continue
				}
				if left >= loc.ItemsPerDay {
					collected += loc.ItemsPerDay
					energyTotal += loc.EnergyPerDay
					raidsTotal += loc.DailyBattleCount
					continue
				}
				energyLeft := left * loc.EnergyPerItem
				collected += left
				energyTotal += energyLeft
				raidsTotal += energyLeft / float64(loc.EnergyCost)
				campaignsDone = true
			}
		}

		days++
		if days > maxSimulatedDays {
			e.logger.Error("farming simulation exceeded day limit",
				"goal_id", material.GoalID,
				"unit_id", material.CharacterID,
				"days", days,
				"collected", collected,
				"required", gap,
				"locations", raidIDs(raids))
			break
		}
	}

	// A partial raid still takes a calendar day.
	if isFractional(raidsTotal) {
		days++
	}

	estimate.EnergyTotal = energyTotal
	estimate.DaysTotal = days
	estimate.RaidsTotal = ceil(raidsTotal)
	estimate.OnslaughtTokensTotal = ceil(tokens)
	return estimate
}

// onslaughtSlots builds one pseudo-location per onslaught token slot. For a
// slot DailyBattleCount is tokens per day and ItemsPerDay is shards per day.
func onslaughtSlots(material tacticus.ShardMaterial) []tacticus.RaidLocation {
	tokensPerSlot := onslaughtTokensPerDay / onslaughtMaxTokens
	slots := make([]tacticus.RaidLocation, 0, onslaughtMaxTokens)
	for node := 1; node <= onslaughtMaxTokens; node++ {
		slots = append(slots, tacticus.RaidLocation{
			Kind: tacticus.LocationKindOnslaught,
			CampaignBattle: tacticus.CampaignBattle{
				ID:               fmt.Sprintf("Onslaught %d", node),
				Campaign:         string(tacticus.CampaignTypeOnslaught),
				CampaignType:     tacticus.CampaignTypeOnslaught,
				NodeNumber:       node,
				DailyBattleCount: tokensPerSlot,
				DropRate:         float64(material.OnslaughtShards),
				ItemsPerDay:      float64(material.OnslaughtShards) * tokensPerSlot,
				Reward:           catalog.ShardsMaterialID(material.CharacterID),
			},
		})
	}
	return slots
}

func locationIDs(locations []tacticus.CampaignBattle) []string {
	ids := make([]string, 0, len(locations))
	for _, loc := range locations {
		ids = append(ids, loc.ID)
	}
	return ids
}

func raidIDs(locations []tacticus.RaidLocation) []string {
	ids := make([]string, 0, len(locations))
	for _, loc := range locations {
		ids = append(ids, loc.ID)
	}
	return ids
}
