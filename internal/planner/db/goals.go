package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

// GoalStore handles the user's character goals.
type GoalStore struct {
	db *DB
}

// NewGoalStore creates a new GoalStore.
func NewGoalStore(db *DB) *GoalStore {
	return &GoalStore{db: db}
}

// ListGoals returns all goals in priority order.
func (s *GoalStore) ListGoals(ctx context.Context) ([]tacticus.CharacterGoal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT goal_id, priority, type, unit_id, unit_name, unit_icon,
			rarity_start, rarity_end, stars_start, stars_end, rarity,
			shards, onslaught_shards, campaigns_usage
		FROM goals
		ORDER BY priority ASC, goal_id ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying goals: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var goals []tacticus.CharacterGoal
	for rows.Next() {
		var g tacticus.CharacterGoal
		if err := rows.Scan(
			&g.GoalID,
			&g.Priority,
			&g.Type,
			&g.UnitID,
			&g.UnitName,
			&g.UnitIcon,
			&g.RarityStart,
			&g.RarityEnd,
			&g.StarsStart,
			&g.StarsEnd,
			&g.Rarity,
			&g.Shards,
			&g.OnslaughtShards,
			&g.CampaignsUsage,
		); err != nil {
			return nil, fmt.Errorf("scanning goal: %w", err)
		}
		goals = append(goals, g)
	}

	return goals, rows.Err()
}

// ReplaceGoalsTx replaces all goals inside tx. Priority follows slice
// order, starting at 1.
func (s *GoalStore) ReplaceGoalsTx(ctx context.Context, tx *sql.Tx, goals []tacticus.CharacterGoal) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM goals`); err != nil {
		return fmt.Errorf("clearing goals: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO goals (goal_id, priority, type, unit_id, unit_name, unit_icon,
			rarity_start, rarity_end, stars_start, stars_end, rarity,
			shards, onslaught_shards, campaigns_usage)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing goal statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, g := range goals {
		usage := g.CampaignsUsage
		if usage == "" {
			usage = tacticus.CampaignsUsageLeastEnergy
		}
		_, err := stmt.ExecContext(ctx,
			g.GoalID, i+1, string(g.Type), g.UnitID, g.UnitName, g.UnitIcon,
			string(g.RarityStart), string(g.RarityEnd), string(g.StarsStart), string(g.StarsEnd),
			string(g.Rarity), g.Shards, g.OnslaughtShards, string(usage),
		)
		if err != nil {
			return fmt.Errorf("inserting goal %s: %w", g.GoalID, err)
		}
	}
	return nil
}

// DeleteGoal removes a goal. It reports whether a goal was removed.
func (s *GoalStore) DeleteGoal(ctx context.Context, goalID string) (bool, error) {
	result, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE goal_id = ?`, goalID)
	if err != nil {
		return false, fmt.Errorf("deleting goal: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// CountGoals returns the number of stored goals.
func (s *GoalStore) CountGoals(ctx context.Context) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM goals`).Scan(&count); err != nil {
		return 0, fmt.Errorf("counting goals: %w", err)
	}
	return count, nil
}
