package catalog

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/rsned/tacticus-planner/internal/planner/db"
)

//go:embed baseline.json
var baselineJSON []byte

// Default returns the baseline campaign configs, progression ladder and
// unlock costs. It carries no campaigns or battles.
func Default() (RawData, error) {
	var raw RawData
	if err := json.Unmarshal(baselineJSON, &raw); err != nil {
		return RawData{}, fmt.Errorf("parsing baseline tables: %w", err)
	}
	return raw, nil
}

// Load reads the static tables from the database and builds a Catalog.
// Tables that have not been imported fall back to the baseline.
func Load(ctx context.Context, database *db.DB) (*Catalog, error) {
	raw, err := Read(ctx, database)
	if err != nil {
		return nil, err
	}
	return Build(raw)
}

// Read reads the raw tables from the database, filling empty config,
// progression and unlock tables from the baseline.
func Read(ctx context.Context, database *db.DB) (RawData, error) {
	campaigns := db.NewCampaignStore(database)
	progression := db.NewProgressionStore(database)

	base, err := Default()
	if err != nil {
		return RawData{}, err
	}

	var raw RawData
	if raw.Configs, err = campaigns.GetConfigs(ctx); err != nil {
		return RawData{}, fmt.Errorf("loading campaign configs: %w", err)
	}
	if raw.Campaigns, err = campaigns.GetCampaigns(ctx); err != nil {
		return RawData{}, fmt.Errorf("loading campaigns: %w", err)
	}
	if raw.Battles, err = campaigns.GetAllBattles(ctx); err != nil {
		return RawData{}, fmt.Errorf("loading battles: %w", err)
	}
	if raw.Progression, err = progression.GetSteps(ctx); err != nil {
		return RawData{}, fmt.Errorf("loading progression: %w", err)
	}
	if raw.UnlockCosts, err = progression.GetUnlockCosts(ctx); err != nil {
		return RawData{}, fmt.Errorf("loading unlock costs: %w", err)
	}

	if len(raw.Configs) == 0 {
		raw.Configs = base.Configs
	}
	if len(raw.Progression) == 0 {
		raw.Progression = base.Progression
	}
	if len(raw.UnlockCosts) == 0 {
		raw.UnlockCosts = base.UnlockCosts
	}

	return raw, nil
}
