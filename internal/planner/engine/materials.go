package engine

import (
	"fmt"

	"github.com/rsned/tacticus-planner/internal/planner/catalog"
	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

// ConvertGoalToMaterial turns a character goal into a shard request.
func (e *Engine) ConvertGoalToMaterial(goal tacticus.CharacterGoal) (*tacticus.ShardMaterial, error) {
	required, err := e.requiredShards(goal)
	if err != nil {
		return nil, fmt.Errorf("goal %s: %w", goal.GoalID, err)
	}

	label := goal.UnitName
	if label == "" {
		label = goal.UnitID
	}

	usage := goal.CampaignsUsage
	if usage == "" {
		usage = tacticus.CampaignsUsageLeastEnergy
	}

	return &tacticus.ShardMaterial{
		GoalID:            goal.GoalID,
		CharacterID:       goal.UnitID,
		Label:             label,
		IconPath:          goal.UnitIcon,
		AcquiredCount:     goal.Shards,
		RequiredCount:     required,
		RelatedCharacters: []string{label},
		PossibleLocations: e.catalog.LocationsForItem(catalog.ShardsMaterialID(goal.UnitID)),
		OnslaughtShards:   goal.OnslaughtShards,
		CampaignsUsage:    usage,
	}, nil
}

func (e *Engine) requiredShards(goal tacticus.CharacterGoal) (int, error) {
	switch goal.Type {
	case tacticus.GoalTypeAscend:
		from, ok := e.catalog.StepIndex(goal.RarityStart, goal.StarsStart)
		if !ok {
			return 0, fmt.Errorf("%w: %s/%s", ErrUnknownProgression, goal.RarityStart, goal.StarsStart)
		}
		to, ok := e.catalog.StepIndex(goal.RarityEnd, goal.StarsEnd)
		if !ok {
			return 0, fmt.Errorf("%w: %s/%s", ErrUnknownProgression, goal.RarityEnd, goal.StarsEnd)
		}
		return e.catalog.ShardsBetween(from, to), nil

	case tacticus.GoalTypeUnlock:
		shards, ok := e.catalog.UnlockShards(goal.Rarity)
		if !ok {
			return 0, fmt.Errorf("%w: unlock %s", ErrUnknownProgression, goal.Rarity)
		}
		return shards, nil

	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownGoalType, goal.Type)
	}
}
