package sync

import (
	"fmt"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

// GoalsFile is the goals YAML file format. Goals are listed in priority order.
type GoalsFile struct {
	Goals []tacticus.CharacterGoal `yaml:"goals"`
}

// LoadSettings reads estimation settings from a YAML file.
func LoadSettings(path string) (*tacticus.EstimatedAscensionSettings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading settings: %w", err)
	}

	var settings tacticus.EstimatedAscensionSettings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("parsing settings %s: %w", path, err)
	}
	if settings.CampaignsProgress == nil {
		settings.CampaignsProgress = tacticus.CampaignsProgress{}
	}

	return &settings, nil
}

// LoadGoals reads goals from a YAML file. Goals without an id get a
// generated one; priorities follow file order.
func LoadGoals(path string) ([]tacticus.CharacterGoal, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading goals: %w", err)
	}

	var file GoalsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing goals %s: %w", path, err)
	}

	goals := make([]tacticus.CharacterGoal, 0, len(file.Goals))
	for i, g := range file.Goals {
		if err := validateGoal(g); err != nil {
			return nil, fmt.Errorf("goal %d in %s: %w", i+1, path, err)
		}
		if g.GoalID == "" {
			g.GoalID = uuid.NewString()
		}
		g.Priority = i + 1
		goals = append(goals, g)
	}

	return goals, nil
}

func validateGoal(g tacticus.CharacterGoal) error {
	if g.UnitID == "" {
		return fmt.Errorf("missing unit_id")
	}
	switch g.Type {
	case tacticus.GoalTypeAscend, tacticus.GoalTypeUnlock:
	default:
		return fmt.Errorf("unknown goal type %q", g.Type)
	}
	if g.CampaignsUsage != "" && !g.CampaignsUsage.IsValid() {
		return fmt.Errorf("unknown campaigns_usage %q", g.CampaignsUsage)
	}
	if g.Shards < 0 || g.OnslaughtShards < 0 {
		return fmt.Errorf("negative shard count")
	}
	return nil
}
