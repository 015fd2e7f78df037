// Package catalog builds the immutable campaign location catalog and the
// shard progression tables the estimator reads from.
package catalog

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

// ErrInvalidCatalog is returned when the raw tables are inconsistent.
var ErrInvalidCatalog = errors.New("invalid catalog")

// ShardRewardPrefix prefixes every character shard reward id.
const ShardRewardPrefix = "shards_"

// shardRewardClass is the drop rate key used for shard rewards.
const shardRewardClass = "Shard"

// RawData is the set of static tables a Catalog is built from.
type RawData struct {
	Configs     []tacticus.CampaignConfig  `json:"configs"`
	Campaigns   []tacticus.Campaign        `json:"campaigns"`
	Battles     []tacticus.BattleConfig    `json:"battles"`
	Progression []tacticus.ProgressionStep `json:"progression"`
	UnlockCosts []tacticus.UnlockCost      `json:"unlock_costs"`
}

type stepKey struct {
	rarity tacticus.Rarity
	stars  tacticus.RarityStars
}

// Catalog is the read-only view of composed campaign battles, the item
// location index and the progression tables. It is safe for concurrent use.
type Catalog struct {
	battles map[string]tacticus.CampaignBattle
	byItem  map[string][]tacticus.CampaignBattle
	events  map[string]string

	ladder      []tacticus.ProgressionStep
	ladderIndex map[stepKey]int
	unlock      map[tacticus.Rarity]int
}

// Build validates raw and composes the catalog.
func Build(raw RawData) (*Catalog, error) {
	configs := make(map[tacticus.CampaignType]tacticus.CampaignConfig, len(raw.Configs))
	for _, c := range raw.Configs {
		if !c.Type.IsValid() {
			return nil, fmt.Errorf("%w: unknown campaign type %q", ErrInvalidCatalog, c.Type)
		}
		if _, dup := configs[c.Type]; dup {
			return nil, fmt.Errorf("%w: duplicate config for %s", ErrInvalidCatalog, c.Type)
		}
		configs[c.Type] = c
	}

	campaigns := make(map[string]tacticus.Campaign, len(raw.Campaigns))
	events := make(map[string]string)
	for _, c := range raw.Campaigns {
		if _, ok := configs[c.Type]; !ok {
			return nil, fmt.Errorf("%w: campaign %s has no config for type %q", ErrInvalidCatalog, c.ID, c.Type)
		}
		campaigns[c.ID] = c
		if c.Event != "" {
			events[c.ID] = c.Event
		}
	}

	cat := &Catalog{
		battles: make(map[string]tacticus.CampaignBattle, len(raw.Battles)),
		byItem:  make(map[string][]tacticus.CampaignBattle),
		events:  events,
	}

	for _, b := range raw.Battles {
		if _, dup := cat.battles[b.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate battle %s", ErrInvalidCatalog, b.ID)
		}
		campaign, ok := campaigns[b.Campaign]
		if !ok {
			return nil, fmt.Errorf("%w: battle %s references unknown campaign %s", ErrInvalidCatalog, b.ID, b.Campaign)
		}

		battle := compose(b, campaign, configs[campaign.Type])
		cat.battles[b.ID] = battle

		// Battles that can never drop their reward are not locations for it.
		if battle.DropRate > 0 {
			cat.byItem[b.Reward] = append(cat.byItem[b.Reward], battle)
		}
	}

	for _, locations := range cat.byItem {
		sort.SliceStable(locations, func(i, j int) bool {
			if locations[i].Campaign != locations[j].Campaign {
				return locations[i].Campaign < locations[j].Campaign
			}
			return locations[i].NodeNumber < locations[j].NodeNumber
		})
	}

	if err := cat.buildProgression(raw.Progression, raw.UnlockCosts); err != nil {
		return nil, err
	}

	return cat, nil
}

func (c *Catalog) buildProgression(steps []tacticus.ProgressionStep, costs []tacticus.UnlockCost) error {
	if len(steps) == 0 {
		return fmt.Errorf("%w: empty progression ladder", ErrInvalidCatalog)
	}

	c.ladder = append([]tacticus.ProgressionStep(nil), steps...)
	c.ladderIndex = make(map[stepKey]int, len(steps))
	for i, st := range steps {
		if !st.Rarity.IsValid() || !st.Stars.IsValid() {
			return fmt.Errorf("%w: progression step %d has unknown rarity %q or stars %q", ErrInvalidCatalog, i, st.Rarity, st.Stars)
		}
		if st.Shards < 0 {
			return fmt.Errorf("%w: progression step %s/%s has negative shards", ErrInvalidCatalog, st.Rarity, st.Stars)
		}
		key := stepKey{st.Rarity, st.Stars}
		if _, dup := c.ladderIndex[key]; dup {
			return fmt.Errorf("%w: duplicate progression step %s/%s", ErrInvalidCatalog, st.Rarity, st.Stars)
		}
		c.ladderIndex[key] = i
	}

	c.unlock = make(map[tacticus.Rarity]int, len(costs))
	for _, uc := range costs {
		c.unlock[uc.Rarity] = uc.Shards
	}
	var missing []string
	for _, r := range tacticus.ValidRarities() {
		if _, ok := c.unlock[r]; !ok {
			missing = append(missing, string(r))
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing unlock costs for %s", ErrInvalidCatalog, strings.Join(missing, ", "))
	}

	return nil
}

// compose derives the farming figures for a battle from its campaign config.
func compose(b tacticus.BattleConfig, campaign tacticus.Campaign, cfg tacticus.CampaignConfig) tacticus.CampaignBattle {
	dropRate := cfg.DropRates[RewardClass(b)]

	energyPerItem := math.Inf(1)
	if dropRate > 0 {
		energyPerItem = float64(cfg.EnergyCost) / dropRate
	}

	daily := float64(cfg.DailyBattleCount)
	return tacticus.CampaignBattle{
		ID:               b.ID,
		Campaign:         b.Campaign,
		CampaignType:     campaign.Type,
		CampaignEvent:    campaign.Event,
		NodeNumber:       b.NodeNumber,
		EnergyCost:       cfg.EnergyCost,
		DailyBattleCount: daily,
		DropRate:         dropRate,
		EnergyPerItem:    energyPerItem,
		ItemsPerDay:      daily * dropRate,
		EnergyPerDay:     daily * float64(cfg.EnergyCost),
		Reward:           b.Reward,
		Rarity:           b.Rarity,
		ExpectedGold:     b.ExpectedGold,
		Slots:            b.Slots,
		EnemiesTotal:     b.EnemiesTotal,
		EnemiesTypes:     b.EnemiesTypes,
		AlliesAlliance:   b.AlliesAlliance,
		AlliesFactions:   b.AlliesFactions,
		EnemiesAlliances: b.EnemiesAlliances,
		EnemiesFactions:  b.EnemiesFactions,
	}
}

// RewardClass returns the drop rate key for a battle's reward.
func RewardClass(b tacticus.BattleConfig) string {
	if strings.HasPrefix(b.Reward, ShardRewardPrefix) {
		return shardRewardClass
	}
	return string(b.Rarity)
}

// ShardsMaterialID returns the material id of a unit's shards.
func ShardsMaterialID(unitID string) string {
	return ShardRewardPrefix + unitID
}

// Battle returns a composed battle by id.
func (c *Catalog) Battle(id string) (tacticus.CampaignBattle, bool) {
	b, ok := c.battles[id]
	return b, ok
}

// BattleCount returns the number of composed battles.
func (c *Catalog) BattleCount() int {
	return len(c.battles)
}

// LocationsForItem returns the battles that drop an item, ordered by
// campaign and node. The returned slice is a copy.
func (c *Catalog) LocationsForItem(itemID string) []tacticus.CampaignBattle {
	locations := c.byItem[itemID]
	if len(locations) == 0 {
		return nil
	}
	return append([]tacticus.CampaignBattle(nil), locations...)
}

// EventFor returns the event group of a campaign, or "" for regular campaigns.
func (c *Catalog) EventFor(campaignID string) string {
	return c.events[campaignID]
}

// EventCampaigns returns the campaigns that belong to an event group, sorted.
func (c *Catalog) EventCampaigns(event string) []string {
	var ids []string
	for id, ev := range c.events {
		if ev == event {
			ids = append(ids, id)
		}
	}
	sort.Strings(ids)
	return ids
}

// StepIndex returns the ladder position of a rarity and star level.
func (c *Catalog) StepIndex(rarity tacticus.Rarity, stars tacticus.RarityStars) (int, bool) {
	i, ok := c.ladderIndex[stepKey{rarity, stars}]
	return i, ok
}

// ShardsBetween sums the shard cost of the ladder steps in (from, to].
// It returns 0 when to is not above from.
func (c *Catalog) ShardsBetween(from, to int) int {
	total := 0
	for i := from + 1; i <= to && i < len(c.ladder); i++ {
		if i < 0 {
			continue
		}
		total += c.ladder[i].Shards
	}
	return total
}

// UnlockShards returns the shards needed to unlock a character of a rarity.
func (c *Catalog) UnlockShards(rarity tacticus.Rarity) (int, bool) {
	n, ok := c.unlock[rarity]
	return n, ok
}

// Ladder returns a copy of the progression ladder.
func (c *Catalog) Ladder() []tacticus.ProgressionStep {
	return append([]tacticus.ProgressionStep(nil), c.ladder...)
}
