package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func run(t *testing.T, args ...string) string {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	require.NoError(t, rootCmd.ExecuteContext(context.Background()), out.String())
	return out.String()
}

func TestImportEstimateAndList(t *testing.T) {
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "planner.db")
	configFile := filepath.Join(dir, "missing.toml")

	campaigns := writeFile(t, dir, "campaigns.json", `{"campaigns": [{"id": "Indomitus Elite", "type": "Elite"}]}`)
	battles := writeFile(t, dir, "battles.json",
		`[{"id": "IE12", "campaign": "Indomitus Elite", "nodeNumber": 12, "reward": "shards_ultraTigurius", "expectedGold": 60}]`)
	goals := writeFile(t, dir, "goals.yaml", `
goals:
  - type: Unlock
    goal_id: tig
    unit_id: ultraTigurius
    unit_name: Tigurius
    rarity: Rare
    shards: 100
`)
	settings := writeFile(t, dir, "settings.yaml", `
campaigns_progress:
  Indomitus Elite: 20
`)

	out := run(t, "--config", configFile, "--db", dbFile,
		"import", "--campaigns", campaigns, "--battles", battles, "--goals", goals)
	assert.Contains(t, out, "imported 1 campaigns, 1 battles")
	assert.Contains(t, out, "database holds 1 campaigns, 1 battles, 0 progression steps, 1 goals, 0 estimates")

	out = run(t, "--config", configFile, "--db", dbFile, "estimate", "--settings", settings, "--save")
	assert.Contains(t, out, "Shards farming plan")
	assert.Contains(t, out, "Tigurius")
	assert.Contains(t, out, "100/130")
	// daily_energy defaults to 288 without a config file.
	assert.Contains(t, out, "Daily energy")
	assert.Contains(t, out, "of 288")
	assert.Contains(t, out, "saved estimate")

	out = run(t, "--config", configFile, "--db", dbFile, "estimates", "--limit", "5")
	assert.Contains(t, out, "1 goals, 10 days")

	out = run(t, "--config", configFile, "--db", dbFile, "locations", "ultraTigurius", "--settings", settings)
	assert.Contains(t, out, "shards_ultraTigurius: 1 locations, 1 unlocked")
	assert.Contains(t, out, "IE12")

	out = run(t, "--config", configFile, "--db", dbFile, "goals")
	assert.Contains(t, out, "tig")
	assert.Contains(t, out, "Tigurius")

	out = run(t, "--config", configFile, "--db", dbFile, "goals", "delete", "tig")
	assert.Contains(t, out, "deleted goal tig, 0 goals left")

	rootCmd.SetArgs([]string{"--config", configFile, "--db", dbFile, "goals", "delete", "tig"})
	assert.ErrorContains(t, rootCmd.ExecuteContext(context.Background()), "goal tig not found")

	out = run(t, "--config", configFile, "--db", dbFile, "goals")
	assert.Contains(t, out, "no goals")
}

func TestConfigSuppliesDatabasePath(t *testing.T) {
	dir := t.TempDir()
	dbFile := filepath.Join(dir, "from-config.db")
	configFile := writeFile(t, dir, "config.toml", "[data]\ndb_path = \""+filepath.ToSlash(dbFile)+"\"\n")

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"--config", configFile, "estimates"})

	// Reset the flag so the config value applies.
	require.NoError(t, rootCmd.PersistentFlags().Set("db", "tacticus.db"))
	rootCmd.PersistentFlags().Lookup("db").Changed = false

	require.NoError(t, rootCmd.ExecuteContext(context.Background()))
	assert.Equal(t, dbFile, dbPath)
	assert.Contains(t, out.String(), "no saved estimates")

	_, err := os.Stat(dbFile)
	assert.NoError(t, err)
}
