// Package engine contains the shard farming estimator.
package engine

import (
	"errors"
	"log/slog"
	"math"
	"os"

	"github.com/rsned/tacticus-planner/internal/planner/catalog"
)

var (
	// ErrUnknownGoalType is returned for goals that are neither ascend nor unlock.
	ErrUnknownGoalType = errors.New("unknown goal type")
	// ErrUnknownProgression is returned when a goal's rarity or star level
	// is missing from the progression tables.
	ErrUnknownProgression = errors.New("unknown progression step")
)

const (
	// onslaughtMaxTokens is the number of onslaught tokens a player can hold.
	onslaughtMaxTokens = 3
	// onslaughtTokensPerDay is the token income: one token every 16 hours.
	onslaughtTokensPerDay = 24.0 / 16.0
	// maxSimulatedDays caps the per-material simulation.
	maxSimulatedDays = 1000
	// epsilon absorbs float error when checking for fractional raids.
	epsilon = 1e-9
)

// Engine estimates farming plans over an immutable catalog. It holds no
// per-call state and is safe for concurrent use.
type Engine struct {
	catalog *catalog.Catalog
	logger  *slog.Logger
}

// New creates a new Engine. A nil logger logs text to stderr.
func New(cat *catalog.Catalog, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}
	return &Engine{
		catalog: cat,
		logger:  logger,
	}
}

// Catalog returns the catalog the engine reads from.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// ceil rounds up, ignoring float noise just above an integer.
func ceil(x float64) int {
	return int(math.Ceil(x - epsilon))
}

func isFractional(x float64) bool {
	_, frac := math.Modf(x)
	return frac > epsilon && frac < 1-epsilon
}
