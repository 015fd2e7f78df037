package catalog

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rsned/tacticus-planner/internal/planner/db"
	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

func TestLoadFallsBackToBaseline(t *testing.T) {
	ctx := context.Background()
	database, err := db.OpenAndInit(ctx, db.MemoryPath)
	require.NoError(t, err)
	defer database.Close()

	raw := testRaw(t)
	campaigns := db.NewCampaignStore(database)
	require.NoError(t, database.InTransaction(ctx, func(tx *sql.Tx) error {
		return campaigns.ReplaceAllTx(ctx, tx, nil, raw.Campaigns, raw.Battles)
	}))

	cat, err := Load(ctx, database)
	require.NoError(t, err)

	assert.Equal(t, len(raw.Battles), cat.BattleCount())
	assert.Len(t, cat.LocationsForItem("shards_ultraTigurius"), 2)

	n, ok := cat.UnlockShards(tacticus.RarityLegendary)
	require.True(t, ok)
	assert.Equal(t, 500, n)
}

func TestLoadPrefersImportedTables(t *testing.T) {
	ctx := context.Background()
	database, err := db.OpenAndInit(ctx, db.MemoryPath)
	require.NoError(t, err)
	defer database.Close()

	raw := testRaw(t)
	raw.UnlockCosts[0].Shards = 42

	progression := db.NewProgressionStore(database)
	require.NoError(t, database.InTransaction(ctx, func(tx *sql.Tx) error {
		return progression.ReplaceTx(ctx, tx, raw.Progression, raw.UnlockCosts)
	}))

	loaded, err := Read(ctx, database)
	require.NoError(t, err)
	assert.Equal(t, raw.Progression, loaded.Progression)

	cat, err := Build(loaded)
	require.NoError(t, err)
	n, _ := cat.UnlockShards(raw.UnlockCosts[0].Rarity)
	assert.Equal(t, 42, n)
	assert.Zero(t, cat.BattleCount())
}
