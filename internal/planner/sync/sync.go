// Package sync imports static game data and user goals into the planner database.
package sync

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"sort"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rsned/tacticus-planner/internal/planner/catalog"
	"github.com/rsned/tacticus-planner/internal/planner/db"
	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

// Syncer imports data files into the database.
type Syncer struct {
	db     *db.DB
	logger *slog.Logger
}

// NewSyncer creates a new Syncer. A nil logger discards output.
func NewSyncer(database *db.DB, logger *slog.Logger) *Syncer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Syncer{db: database, logger: logger}
}

// Files names the files to import. Empty paths are skipped.
type Files struct {
	Campaigns   string
	Battles     string
	Progression string
	Goals       string
}

// Result reports how many rows each import wrote.
type Result struct {
	Configs     int `json:"configs"`
	Campaigns   int `json:"campaigns"`
	Battles     int `json:"battles"`
	Steps       int `json:"steps"`
	UnlockCosts int `json:"unlock_costs"`
	Goals       int `json:"goals"`
}

// CampaignsImport is the campaigns file format.
type CampaignsImport struct {
	Configs   []tacticus.CampaignConfig `json:"configs"`
	Campaigns []tacticus.Campaign       `json:"campaigns"`
}

// BattleImport is one battle in the battles file. The file is either a JSON
// array of battles or an object keyed by battle id.
type BattleImport struct {
	ID               string   `json:"id,omitempty"`
	Campaign         string   `json:"campaign"`
	NodeNumber       int      `json:"nodeNumber"`
	Reward           string   `json:"reward"`
	Rarity           string   `json:"rarity,omitempty"`
	ExpectedGold     int      `json:"expectedGold,omitempty"`
	Slots            int      `json:"slots,omitempty"`
	EnemiesTotal     int      `json:"enemiesTotal,omitempty"`
	EnemiesTypes     []string `json:"enemiesTypes,omitempty"`
	AlliesAlliance   string   `json:"alliesAlliance,omitempty"`
	AlliesFactions   []string `json:"alliesFactions,omitempty"`
	EnemiesAlliances []string `json:"enemiesAlliances,omitempty"`
	EnemiesFactions  []string `json:"enemiesFactions,omitempty"`
}

// ProgressionImport is the progression file format.
type ProgressionImport struct {
	Steps       []tacticus.ProgressionStep `json:"steps"`
	UnlockCosts []tacticus.UnlockCost      `json:"unlock_costs"`
}

type parsed struct {
	campaigns   *CampaignsImport
	battles     []tacticus.BattleConfig
	progression *ProgressionImport
	goals       []tacticus.CharacterGoal
}

// ImportFiles parses the given files concurrently, validates the resulting
// catalog against what is already stored, and writes each table.
func (s *Syncer) ImportFiles(ctx context.Context, files Files) (*Result, error) {
	var p parsed

	g, _ := errgroup.WithContext(ctx)
	if files.Campaigns != "" {
		g.Go(func() error {
			var imp CampaignsImport
			if err := readJSON(files.Campaigns, &imp); err != nil {
				return err
			}
			p.campaigns = &imp
			return nil
		})
	}
	if files.Battles != "" {
		g.Go(func() error {
			battles, err := readBattles(files.Battles)
			if err != nil {
				return err
			}
			p.battles = battles
			return nil
		})
	}
	if files.Progression != "" {
		g.Go(func() error {
			var imp ProgressionImport
			if err := readJSON(files.Progression, &imp); err != nil {
				return err
			}
			p.progression = &imp
			return nil
		})
	}
	if files.Goals != "" {
		g.Go(func() error {
			goals, err := LoadGoals(files.Goals)
			if err != nil {
				return err
			}
			p.goals = goals
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return s.write(ctx, p)
}

func (s *Syncer) write(ctx context.Context, p parsed) (*Result, error) {
	raw, err := catalog.Read(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("reading stored catalog: %w", err)
	}

	if p.campaigns != nil {
		if len(p.campaigns.Configs) > 0 {
			raw.Configs = p.campaigns.Configs
		}
		raw.Campaigns = p.campaigns.Campaigns
	}
	if p.battles != nil {
		raw.Battles = p.battles
	}
	if p.progression != nil {
		if len(p.progression.Steps) > 0 {
			raw.Progression = p.progression.Steps
		}
		if len(p.progression.UnlockCosts) > 0 {
			raw.UnlockCosts = p.progression.UnlockCosts
		}
	}

	if _, err := catalog.Build(raw); err != nil {
		return nil, fmt.Errorf("validating import: %w", err)
	}

	result := &Result{}
	now := time.Now().Format(time.RFC3339)
	metadata := make(map[string]int)

	// Every table is written in one transaction so a failed import leaves
	// the previous data in place.
	err = s.db.InTransaction(ctx, func(tx *sql.Tx) error {
		if p.campaigns != nil || p.battles != nil {
			if err := db.NewCampaignStore(s.db).ReplaceAllTx(ctx, tx, raw.Configs, raw.Campaigns, raw.Battles); err != nil {
				return fmt.Errorf("inserting campaigns: %w", err)
			}
			result.Configs = len(raw.Configs)
			result.Campaigns = len(raw.Campaigns)
			result.Battles = len(raw.Battles)
			metadata["campaigns"] = result.Campaigns
			metadata["battles"] = result.Battles
		}

		if p.progression != nil {
			if err := db.NewProgressionStore(s.db).ReplaceTx(ctx, tx, raw.Progression, raw.UnlockCosts); err != nil {
				return fmt.Errorf("inserting progression: %w", err)
			}
			result.Steps = len(raw.Progression)
			result.UnlockCosts = len(raw.UnlockCosts)
			metadata["progression"] = result.Steps
		}

		if p.goals != nil {
			if err := db.NewGoalStore(s.db).ReplaceGoalsTx(ctx, tx, p.goals); err != nil {
				return fmt.Errorf("inserting goals: %w", err)
			}
			result.Goals = len(p.goals)
			metadata["goals"] = result.Goals
		}

		return s.setMetadata(ctx, tx, now, metadata)
	})
	if err != nil {
		return nil, err
	}

	s.logger.Info("import complete",
		"campaigns", result.Campaigns,
		"battles", result.Battles,
		"steps", result.Steps,
		"goals", result.Goals)

	return result, nil
}

// setMetadata records <name>_last_sync and <name>_count for each table.
func (s *Syncer) setMetadata(ctx context.Context, tx *sql.Tx, now string, counts map[string]int) error {
	for name, count := range counts {
		if err := s.db.SetSyncMetadataTx(ctx, tx, name+"_last_sync", now); err != nil {
			return err
		}
		if err := s.db.SetSyncMetadataTx(ctx, tx, name+"_count", strconv.Itoa(count)); err != nil {
			return err
		}
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading file: %w", err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parsing JSON %s: %w", path, err)
	}
	return nil
}

func readBattles(path string) ([]tacticus.BattleConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	var imports []BattleImport
	if trimmed := bytes.TrimSpace(data); len(trimmed) > 0 && trimmed[0] == '{' {
		var byID map[string]BattleImport
		if err := json.Unmarshal(trimmed, &byID); err != nil {
			return nil, fmt.Errorf("parsing JSON %s: %w", path, err)
		}
		for id, imp := range byID {
			if imp.ID == "" {
				imp.ID = id
			}
			imports = append(imports, imp)
		}
		sort.Slice(imports, func(i, j int) bool { return imports[i].ID < imports[j].ID })
	} else if err := json.Unmarshal(data, &imports); err != nil {
		return nil, fmt.Errorf("parsing JSON %s: %w", path, err)
	}

	battles := make([]tacticus.BattleConfig, 0, len(imports))
	for _, imp := range imports {
		if imp.ID == "" || imp.Campaign == "" {
			return nil, fmt.Errorf("battle in %s is missing id or campaign", path)
		}
		battles = append(battles, transformBattle(imp))
	}
	return battles, nil
}

// transformBattle converts import format to domain format.
func transformBattle(imp BattleImport) tacticus.BattleConfig {
	b := tacticus.BattleConfig{
		ID:             imp.ID,
		Campaign:       imp.Campaign,
		NodeNumber:     imp.NodeNumber,
		Reward:         imp.Reward,
		Rarity:         tacticus.Rarity(imp.Rarity),
		ExpectedGold:   imp.ExpectedGold,
		Slots:          imp.Slots,
		EnemiesTotal:   imp.EnemiesTotal,
		EnemiesTypes:   imp.EnemiesTypes,
		AlliesAlliance: tacticus.Alliance(imp.AlliesAlliance),
	}
	for _, f := range imp.AlliesFactions {
		b.AlliesFactions = append(b.AlliesFactions, tacticus.Faction(f))
	}
	for _, a := range imp.EnemiesAlliances {
		b.EnemiesAlliances = append(b.EnemiesAlliances, tacticus.Alliance(a))
	}
	for _, f := range imp.EnemiesFactions {
		b.EnemiesFactions = append(b.EnemiesFactions, tacticus.Faction(f))
	}
	return b
}
