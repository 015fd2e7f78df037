package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

// timeLayout has a fixed width so stored timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// EstimateStore persists computed farming plans.
type EstimateStore struct {
	db  *DB
	now func() time.Time
}

// NewEstimateStore creates a new EstimateStore.
func NewEstimateStore(db *DB) *EstimateStore {
	return &EstimateStore{db: db, now: time.Now}
}

// SaveEstimate stores a plan and returns its generated id.
func (s *EstimateStore) SaveEstimate(ctx context.Context, plan *tacticus.EstimatedShards) (string, error) {
	payload, err := json.Marshal(plan)
	if err != nil {
		return "", fmt.Errorf("encoding estimate: %w", err)
	}

	id := uuid.New().String()
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO estimates (id, created_at, materials, days_total, energy_total,
			raids_total, onslaught_tokens, payload)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, s.now().UTC().Format(timeLayout), len(plan.Materials), plan.DaysTotal,
		plan.EnergyTotal, plan.RaidsTotal, plan.OnslaughtTokens, string(payload))
	if err != nil {
		return "", fmt.Errorf("inserting estimate: %w", err)
	}

	return id, nil
}

// GetEstimate retrieves a saved plan by id. It returns nil if not found.
func (s *EstimateStore) GetEstimate(ctx context.Context, id string) (*tacticus.SavedEstimate, error) {
	var createdAt, payload string
	err := s.db.QueryRowContext(ctx, `
		SELECT created_at, payload FROM estimates WHERE id = ?
	`, id).Scan(&createdAt, &payload)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("querying estimate: %w", err)
	}

	saved := &tacticus.SavedEstimate{ID: id}
	if saved.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
		return nil, fmt.Errorf("parsing estimate timestamp: %w", err)
	}
	if err := json.Unmarshal([]byte(payload), &saved.Plan); err != nil {
		return nil, fmt.Errorf("decoding estimate: %w", err)
	}

	return saved, nil
}

// ListEstimates lists saved plans, newest first.
func (s *EstimateStore) ListEstimates(ctx context.Context, limit int) ([]tacticus.EstimateSummary, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, created_at, materials, days_total, energy_total, raids_total, onslaught_tokens
		FROM estimates
		ORDER BY created_at DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing estimates: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []tacticus.EstimateSummary
	for rows.Next() {
		var sum tacticus.EstimateSummary
		var createdAt string
		if err := rows.Scan(
			&sum.ID,
			&createdAt,
			&sum.Materials,
			&sum.DaysTotal,
			&sum.EnergyTotal,
			&sum.RaidsTotal,
			&sum.OnslaughtTokens,
		); err != nil {
			return nil, fmt.Errorf("scanning estimate: %w", err)
		}
		if sum.CreatedAt, err = time.Parse(timeLayout, createdAt); err != nil {
			return nil, fmt.Errorf("parsing estimate timestamp: %w", err)
		}
		summaries = append(summaries, sum)
	}

	return summaries, rows.Err()
}

// PruneEstimates removes saved plans older than the given age.
func (s *EstimateStore) PruneEstimates(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := s.now().Add(-olderThan).UTC().Format(timeLayout)
	result, err := s.db.ExecContext(ctx, `DELETE FROM estimates WHERE created_at < ?`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("pruning estimates: %w", err)
	}
	return result.RowsAffected()
}
