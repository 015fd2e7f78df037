package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

const rewardCacheSize = 512

// CampaignStore handles campaign, campaign config and battle data access.
type CampaignStore struct {
	db       *DB
	byReward *lru.Cache[string, []tacticus.BattleConfig]
}

// NewCampaignStore creates a new CampaignStore.
func NewCampaignStore(db *DB) *CampaignStore {
	// lru.New only fails for a non-positive size.
	cache, _ := lru.New[string, []tacticus.BattleConfig](rewardCacheSize)
	return &CampaignStore{db: db, byReward: cache}
}

const battleColumns = `id, campaign, node_number, reward, rarity, expected_gold, slots, enemies_total,
	enemies_types, allies_alliance, allies_factions, enemies_alliances, enemies_factions`

// GetConfigs retrieves every campaign type config with its drop rates.
func (s *CampaignStore) GetConfigs(ctx context.Context) ([]tacticus.CampaignConfig, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT campaign_type, energy_cost, daily_battle_count
		FROM campaign_configs
		ORDER BY campaign_type
	`)
	if err != nil {
		return nil, fmt.Errorf("querying campaign configs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var configs []tacticus.CampaignConfig
	for rows.Next() {
		var c tacticus.CampaignConfig
		if err := rows.Scan(&c.Type, &c.EnergyCost, &c.DailyBattleCount); err != nil {
			return nil, fmt.Errorf("scanning campaign config: %w", err)
		}
		configs = append(configs, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range configs {
		rates, err := s.getDropRates(ctx, configs[i].Type)
		if err != nil {
			return nil, fmt.Errorf("loading drop rates for %s: %w", configs[i].Type, err)
		}
		configs[i].DropRates = rates
	}

	return configs, nil
}

// getDropRates retrieves drop rates for a campaign type keyed by reward class.
func (s *CampaignStore) getDropRates(ctx context.Context, campaignType tacticus.CampaignType) (map[string]float64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT reward_class, drop_rate
		FROM campaign_drop_rates
		WHERE campaign_type = ?
	`, string(campaignType))
	if err != nil {
		return nil, fmt.Errorf("querying drop rates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	rates := make(map[string]float64)
	for rows.Next() {
		var class string
		var rate float64
		if err := rows.Scan(&class, &rate); err != nil {
			return nil, fmt.Errorf("scanning drop rate: %w", err)
		}
		rates[class] = rate
	}

	return rates, rows.Err()
}

// GetCampaigns retrieves all campaigns.
func (s *CampaignStore) GetCampaigns(ctx context.Context) ([]tacticus.Campaign, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, type, event FROM campaigns ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying campaigns: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var campaigns []tacticus.Campaign
	for rows.Next() {
		var c tacticus.Campaign
		if err := rows.Scan(&c.ID, &c.Type, &c.Event); err != nil {
			return nil, fmt.Errorf("scanning campaign: %w", err)
		}
		campaigns = append(campaigns, c)
	}

	return campaigns, rows.Err()
}

// GetAllBattles retrieves every battle ordered by campaign and node.
func (s *CampaignStore) GetAllBattles(ctx context.Context) ([]tacticus.BattleConfig, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+battleColumns+`
		FROM campaign_battles
		ORDER BY campaign, node_number
	`)
	if err != nil {
		return nil, fmt.Errorf("querying battles: %w", err)
	}
	defer func() { _ = rows.Close() }()

	return scanBattles(rows)
}

// BattlesForReward retrieves the battles that drop a reward. Results are
// cached until the next ReplaceAllTx.
func (s *CampaignStore) BattlesForReward(ctx context.Context, reward string) ([]tacticus.BattleConfig, error) {
	if cached, ok := s.byReward.Get(reward); ok {
		return cached, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT `+battleColumns+`
		FROM campaign_battles
		WHERE reward = ?
		ORDER BY campaign, node_number
	`, reward)
	if err != nil {
		return nil, fmt.Errorf("querying battles for reward: %w", err)
	}
	defer func() { _ = rows.Close() }()

	battles, err := scanBattles(rows)
	if err != nil {
		return nil, err
	}

	s.byReward.Add(reward, battles)
	return battles, nil
}

func scanBattles(rows *sql.Rows) ([]tacticus.BattleConfig, error) {
	var battles []tacticus.BattleConfig
	for rows.Next() {
		var b tacticus.BattleConfig
		var enemiesTypes, alliesFactions, enemiesAlliances, enemiesFactions string
		if err := rows.Scan(
			&b.ID,
			&b.Campaign,
			&b.NodeNumber,
			&b.Reward,
			&b.Rarity,
			&b.ExpectedGold,
			&b.Slots,
			&b.EnemiesTotal,
			&enemiesTypes,
			&b.AlliesAlliance,
			&alliesFactions,
			&enemiesAlliances,
			&enemiesFactions,
		); err != nil {
			return nil, fmt.Errorf("scanning battle: %w", err)
		}

		if err := decodeList(enemiesTypes, &b.EnemiesTypes); err != nil {
			return nil, fmt.Errorf("battle %s enemies_types: %w", b.ID, err)
		}
		if err := decodeList(alliesFactions, &b.AlliesFactions); err != nil {
			return nil, fmt.Errorf("battle %s allies_factions: %w", b.ID, err)
		}
		if err := decodeList(enemiesAlliances, &b.EnemiesAlliances); err != nil {
			return nil, fmt.Errorf("battle %s enemies_alliances: %w", b.ID, err)
		}
		if err := decodeList(enemiesFactions, &b.EnemiesFactions); err != nil {
			return nil, fmt.Errorf("battle %s enemies_factions: %w", b.ID, err)
		}

		battles = append(battles, b)
	}

	return battles, rows.Err()
}

// ReplaceAllTx clears every campaign table and inserts configs, campaigns and
// battles inside tx. Nothing changes unless the caller commits.
func (s *CampaignStore) ReplaceAllTx(
	ctx context.Context,
	tx *sql.Tx,
	configs []tacticus.CampaignConfig,
	campaigns []tacticus.Campaign,
	battles []tacticus.BattleConfig,
) error {
	defer s.byReward.Purge()

	// Foreign keys cascade to battles and drop rates.
	if _, err := tx.ExecContext(ctx, `DELETE FROM campaigns`); err != nil {
		return fmt.Errorf("clearing campaigns: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM campaign_configs`); err != nil {
		return fmt.Errorf("clearing campaign configs: %w", err)
	}
	if err := insertConfigs(ctx, tx, configs); err != nil {
		return err
	}
	if err := insertCampaigns(ctx, tx, campaigns); err != nil {
		return err
	}
	return insertBattles(ctx, tx, battles)
}

func insertConfigs(ctx context.Context, tx *sql.Tx, configs []tacticus.CampaignConfig) error {
	configStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO campaign_configs (campaign_type, energy_cost, daily_battle_count)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing config statement: %w", err)
	}
	defer func() { _ = configStmt.Close() }()

	rateStmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO campaign_drop_rates (campaign_type, reward_class, drop_rate)
		VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing drop rate statement: %w", err)
	}
	defer func() { _ = rateStmt.Close() }()

	for _, c := range configs {
		if _, err := configStmt.ExecContext(ctx, string(c.Type), c.EnergyCost, c.DailyBattleCount); err != nil {
			return fmt.Errorf("inserting config %s: %w", c.Type, err)
		}
		for class, rate := range c.DropRates {
			if _, err := rateStmt.ExecContext(ctx, string(c.Type), class, rate); err != nil {
				return fmt.Errorf("inserting drop rate %s/%s: %w", c.Type, class, err)
			}
		}
	}

	return nil
}

func insertCampaigns(ctx context.Context, tx *sql.Tx, campaigns []tacticus.Campaign) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO campaigns (id, type, event) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing campaign statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range campaigns {
		if _, err := stmt.ExecContext(ctx, c.ID, string(c.Type), c.Event); err != nil {
			return fmt.Errorf("inserting campaign %s: %w", c.ID, err)
		}
	}
	return nil
}

func insertBattles(ctx context.Context, tx *sql.Tx, battles []tacticus.BattleConfig) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO campaign_battles (`+battleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing battle statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, b := range battles {
		_, err := stmt.ExecContext(ctx,
			b.ID, b.Campaign, b.NodeNumber, b.Reward, string(b.Rarity),
			b.ExpectedGold, b.Slots, b.EnemiesTotal,
			encodeList(b.EnemiesTypes), string(b.AlliesAlliance), encodeList(b.AlliesFactions),
			encodeList(b.EnemiesAlliances), encodeList(b.EnemiesFactions),
		)
		if err != nil {
			return fmt.Errorf("inserting battle %s: %w", b.ID, err)
		}
	}
	return nil
}

// encodeList stores a slice as a JSON array column.
func encodeList[T any](values []T) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

func decodeList[T any](raw string, out *[]T) error {
	if raw == "" || raw == "[]" {
		*out = nil
		return nil
	}
	return json.Unmarshal([]byte(raw), out)
}
