package db

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

// ProgressionStore handles the shard progression ladder and unlock costs.
type ProgressionStore struct {
	db *DB
}

// NewProgressionStore creates a new ProgressionStore.
func NewProgressionStore(db *DB) *ProgressionStore {
	return &ProgressionStore{db: db}
}

// GetSteps retrieves the progression ladder, lowest step first.
func (s *ProgressionStore) GetSteps(ctx context.Context) ([]tacticus.ProgressionStep, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT rarity, stars, shards
		FROM shards_progression
		ORDER BY step ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying progression steps: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var steps []tacticus.ProgressionStep
	for rows.Next() {
		var st tacticus.ProgressionStep
		if err := rows.Scan(&st.Rarity, &st.Stars, &st.Shards); err != nil {
			return nil, fmt.Errorf("scanning progression step: %w", err)
		}
		steps = append(steps, st)
	}

	return steps, rows.Err()
}

// GetUnlockCosts retrieves the unlock shard cost per rarity.
func (s *ProgressionStore) GetUnlockCosts(ctx context.Context) ([]tacticus.UnlockCost, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT rarity, shards FROM unlock_shards`)
	if err != nil {
		return nil, fmt.Errorf("querying unlock costs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var costs []tacticus.UnlockCost
	for rows.Next() {
		var c tacticus.UnlockCost
		if err := rows.Scan(&c.Rarity, &c.Shards); err != nil {
			return nil, fmt.Errorf("scanning unlock cost: %w", err)
		}
		costs = append(costs, c)
	}

	return costs, rows.Err()
}

// ReplaceTx replaces the ladder and upserts unlock costs inside tx. Step
// order is the slice order.
func (s *ProgressionStore) ReplaceTx(ctx context.Context, tx *sql.Tx, steps []tacticus.ProgressionStep, costs []tacticus.UnlockCost) error {
	if err := replaceSteps(ctx, tx, steps); err != nil {
		return err
	}
	return insertUnlockCosts(ctx, tx, costs)
}

func replaceSteps(ctx context.Context, tx *sql.Tx, steps []tacticus.ProgressionStep) error {
	if _, err := tx.ExecContext(ctx, `DELETE FROM shards_progression`); err != nil {
		return fmt.Errorf("clearing progression: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO shards_progression (step, rarity, stars, shards)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing step statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for i, st := range steps {
		if _, err := stmt.ExecContext(ctx, i, string(st.Rarity), string(st.Stars), st.Shards); err != nil {
			return fmt.Errorf("inserting step %s/%s: %w", st.Rarity, st.Stars, err)
		}
	}
	return nil
}

func insertUnlockCosts(ctx context.Context, tx *sql.Tx, costs []tacticus.UnlockCost) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT OR REPLACE INTO unlock_shards (rarity, shards) VALUES (?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing unlock statement: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	for _, c := range costs {
		if _, err := stmt.ExecContext(ctx, string(c.Rarity), c.Shards); err != nil {
			return fmt.Errorf("inserting unlock cost %s: %w", c.Rarity, err)
		}
	}
	return nil
}
