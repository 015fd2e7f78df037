package engine

import (
	"math"
	"slices"
	"sort"

	"github.com/rsned/tacticus-planner/internal/planner/catalog"
	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

// defaultSlots is assumed for battles that don't list a slot count.
const defaultSlots = 5

// SelectBestLocations keeps only the locations with the lowest energy per
// item, ordered by energy per item and then by expected gold, highest first.
// Locations that can never drop the item are ignored.
func SelectBestLocations(locations []tacticus.CampaignBattle) []tacticus.CampaignBattle {
	minEnergy := math.Inf(1)
	for _, loc := range locations {
		if loc.EnergyPerItem < minEnergy {
			minEnergy = loc.EnergyPerItem
		}
	}
	if math.IsInf(minEnergy, 1) {
		return nil
	}

	var best []tacticus.CampaignBattle
	for _, loc := range locations {
		if loc.EnergyPerItem == minEnergy {
			best = append(best, loc)
		}
	}

	sort.SliceStable(best, func(i, j int) bool {
		if best[i].EnergyPerItem != best[j].EnergyPerItem {
			return best[i].EnergyPerItem < best[j].EnergyPerItem
		}
		return best[i].ExpectedGold > best[j].ExpectedGold
	})

	return best
}

// PassLocationFilter reports whether a location satisfies every non-empty
// filter. The upgrade rarity filter only applies when materialRarity is set.
func PassLocationFilter(loc tacticus.CampaignBattle, filters tacticus.LocationFilters, materialRarity *tacticus.Rarity) bool {
	if len(filters.EnemiesCount) > 0 && !slices.Contains(filters.EnemiesCount, loc.EnemiesTotal) {
		return false
	}

	if len(filters.EnemiesTypes) > 0 && !intersects(filters.EnemiesTypes, loc.EnemiesTypes) {
		return false
	}

	if len(filters.SlotsCount) > 0 {
		slots := loc.Slots
		if slots == 0 {
			slots = defaultSlots
		}
		if !slices.Contains(filters.SlotsCount, slots) {
			return false
		}
	}

	if materialRarity != nil && len(filters.UpgradesRarity) > 0 && !slices.Contains(filters.UpgradesRarity, *materialRarity) {
		return false
	}

	if len(filters.CampaignTypes) > 0 && !slices.Contains(filters.CampaignTypes, loc.CampaignType) {
		return false
	}

	if len(filters.AlliesAlliance) > 0 && !slices.Contains(filters.AlliesAlliance, loc.AlliesAlliance) {
		return false
	}

	if len(filters.AlliesFactions) > 0 && !intersects(filters.AlliesFactions, loc.AlliesFactions) {
		return false
	}

	if len(filters.EnemiesAlliance) > 0 && !intersects(filters.EnemiesAlliance, loc.EnemiesAlliances) {
		return false
	}

	if len(filters.EnemiesFactions) > 0 && !intersects(filters.EnemiesFactions, loc.EnemiesFactions) {
		return false
	}

	return true
}

func intersects[T comparable](want, have []T) bool {
	for _, h := range have {
		if slices.Contains(want, h) {
			return true
		}
	}
	return false
}

// IsLocationUnlocked reports whether the player has reached a location.
// Event campaign locations also need their event group to be selected.
func (e *Engine) IsLocationUnlocked(loc tacticus.CampaignBattle, settings tacticus.EstimatedAscensionSettings) bool {
	if loc.NodeNumber > settings.CampaignsProgress[loc.Campaign] {
		return false
	}

	event := loc.CampaignEvent
	if event == "" {
		event = e.catalog.EventFor(loc.Campaign)
	}
	if event == "" {
		return true
	}

	return settings.CampaignEvent != "" && slices.Contains(e.catalog.EventCampaigns(settings.CampaignEvent), loc.Campaign)
}

// UnlockedLocations returns the locations that are unlocked and pass the
// settings' filters, in input order.
func (e *Engine) UnlockedLocations(
	possible []tacticus.CampaignBattle,
	settings tacticus.EstimatedAscensionSettings,
	materialRarity *tacticus.Rarity,
) []tacticus.CampaignBattle {
	var unlocked []tacticus.CampaignBattle
	for _, loc := range possible {
		if e.IsLocationUnlocked(loc, settings) && PassLocationFilter(loc, settings.Filters, materialRarity) {
			unlocked = append(unlocked, loc)
		}
	}
	return unlocked
}

// selectRaidLocations applies a campaigns usage policy to unlocked locations.
func selectRaidLocations(unlocked []tacticus.CampaignBattle, usage tacticus.CampaignsUsage) []tacticus.CampaignBattle {
	switch usage {
	case tacticus.CampaignsUsageLeastEnergy:
		return SelectBestLocations(unlocked)
	case tacticus.CampaignsUsageBestTime:
		return unlocked
	default:
		return nil
	}
}

// BestLocations resolves where a unit's shards can be farmed under the
// given settings and usage policy.
func (e *Engine) BestLocations(req tacticus.BestLocationsRequest) *tacticus.BestLocationsResponse {
	materialID := catalog.ShardsMaterialID(req.UnitID)
	return e.bestLocations(req, materialID, e.catalog.LocationsForItem(materialID))
}

// BestLocationsAmong is BestLocations over the given battle ids instead of the
// catalog's item index. Ids the catalog doesn't know and battles that never
// drop the unit's shards are skipped.
func (e *Engine) BestLocationsAmong(req tacticus.BestLocationsRequest, battleIDs []string) *tacticus.BestLocationsResponse {
	materialID := catalog.ShardsMaterialID(req.UnitID)

	var possible []tacticus.CampaignBattle
	for _, id := range battleIDs {
		battle, ok := e.catalog.Battle(id)
		if !ok || battle.Reward != materialID || battle.DropRate <= 0 {
			e.logger.Debug("skipping battle", "battle", id, "material", materialID)
			continue
		}
		possible = append(possible, battle)
	}

	return e.bestLocations(req, materialID, possible)
}

func (e *Engine) bestLocations(req tacticus.BestLocationsRequest, materialID string, possible []tacticus.CampaignBattle) *tacticus.BestLocationsResponse {
	usage := req.CampaignsUsage
	if usage == "" {
		usage = tacticus.CampaignsUsageLeastEnergy
	}

	unlocked := e.UnlockedLocations(possible, req.Settings, nil)
	selected := selectRaidLocations(unlocked, usage)

	return &tacticus.BestLocationsResponse{
		UnitID:    req.UnitID,
		Material:  materialID,
		Possible:  len(possible),
		Unlocked:  unlocked,
		Selected:  selected,
		IsBlocked: len(selected) == 0,
	}
}
