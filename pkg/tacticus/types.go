// Package tacticus contains the core types for the shard farming planner.
package tacticus

import "time"

// ============================================
// ENUMS
// ============================================

// Rarity is a unit or upgrade rarity.
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityUncommon  Rarity = "Uncommon"
	RarityRare      Rarity = "Rare"
	RarityEpic      Rarity = "Epic"
	RarityLegendary Rarity = "Legendary"
	RarityMythic    Rarity = "Mythic"
)

// ValidRarities returns all rarities, lowest first.
func ValidRarities() []Rarity {
	return []Rarity{
		RarityCommon,
		RarityUncommon,
		RarityRare,
		RarityEpic,
		RarityLegendary,
		RarityMythic,
	}
}

// IsValid checks if the rarity is a known rarity.
func (r Rarity) IsValid() bool {
	for _, valid := range ValidRarities() {
		if r == valid {
			return true
		}
	}
	return false
}

// RarityStars is the star level of a unit within its rarity band.
type RarityStars string

const (
	StarsNone        RarityStars = "None"
	StarsOne         RarityStars = "OneStar"
	StarsTwo         RarityStars = "TwoStars"
	StarsThree       RarityStars = "ThreeStars"
	StarsFour        RarityStars = "FourStars"
	StarsFive        RarityStars = "FiveStars"
	StarsRedOne      RarityStars = "RedOneStar"
	StarsRedTwo      RarityStars = "RedTwoStars"
	StarsRedThree    RarityStars = "RedThreeStars"
	StarsRedFour     RarityStars = "RedFourStars"
	StarsRedFive     RarityStars = "RedFiveStars"
	StarsBlue        RarityStars = "BlueStar"
	StarsMythicWings RarityStars = "MythicWings"
)

// ValidRarityStars returns all star levels, lowest first.
func ValidRarityStars() []RarityStars {
	return []RarityStars{
		StarsNone,
		StarsOne,
		StarsTwo,
		StarsThree,
		StarsFour,
		StarsFive,
		StarsRedOne,
		StarsRedTwo,
		StarsRedThree,
		StarsRedFour,
		StarsRedFive,
		StarsBlue,
		StarsMythicWings,
	}
}

// IsValid checks if the star level is known.
func (s RarityStars) IsValid() bool {
	for _, valid := range ValidRarityStars() {
		if s == valid {
			return true
		}
	}
	return false
}

// CampaignType identifies the kind of campaign a battle belongs to.
type CampaignType string

const (
	CampaignTypeNormal    CampaignType = "Normal"
	CampaignTypeEarly     CampaignType = "Early"
	CampaignTypeMirror    CampaignType = "Mirror"
	CampaignTypeElite     CampaignType = "Elite"
	CampaignTypeStandard  CampaignType = "Standard"
	CampaignTypeExtremis  CampaignType = "Extremis"
	CampaignTypeOnslaught CampaignType = "Onslaught"
)

// ValidCampaignTypes returns all campaign types.
func ValidCampaignTypes() []CampaignType {
	return []CampaignType{
		CampaignTypeNormal,
		CampaignTypeEarly,
		CampaignTypeMirror,
		CampaignTypeElite,
		CampaignTypeStandard,
		CampaignTypeExtremis,
		CampaignTypeOnslaught,
	}
}

// IsValid checks if the campaign type is known.
func (c CampaignType) IsValid() bool {
	for _, valid := range ValidCampaignTypes() {
		if c == valid {
			return true
		}
	}
	return false
}

// Alliance is one of the three top-level unit alliances.
type Alliance string

const (
	AllianceImperial Alliance = "Imperial"
	AllianceXenos    Alliance = "Xenos"
	AllianceChaos    Alliance = "Chaos"
)

// Faction is a unit faction, e.g. "Ultramarines".
type Faction string

// CampaignsUsage controls which unlocked locations a goal farms.
type CampaignsUsage string

const (
	// CampaignsUsageLeastEnergy farms only the cheapest locations per item.
	CampaignsUsageLeastEnergy CampaignsUsage = "LeastEnergy"
	// CampaignsUsageBestTime farms every unlocked location.
	CampaignsUsageBestTime CampaignsUsage = "BestTime"
	// CampaignsUsageNone never farms campaigns (onslaught only).
	CampaignsUsageNone CampaignsUsage = "None"
)

// IsValid checks if the usage policy is known.
func (u CampaignsUsage) IsValid() bool {
	switch u {
	case CampaignsUsageLeastEnergy, CampaignsUsageBestTime, CampaignsUsageNone:
		return true
	}
	return false
}

// GoalType distinguishes character goals.
type GoalType string

const (
	GoalTypeAscend GoalType = "Ascend"
	GoalTypeUnlock GoalType = "Unlock"
)

// LocationKind tags a raid location as a campaign node or an onslaught slot.
type LocationKind string

const (
	LocationKindCampaign  LocationKind = "campaign"
	LocationKindOnslaught LocationKind = "onslaught"
)

// ============================================
// STATIC DATA TYPES
// ============================================

// CampaignConfig holds per campaign type energy and drop rate data.
type CampaignConfig struct {
	Type             CampaignType       `json:"type"`
	EnergyCost       int                `json:"energy_cost"`
	DailyBattleCount int                `json:"daily_battle_count"`
	DropRates        map[string]float64 `json:"drop_rates"` // reward class -> drop rate
}

// Campaign describes a single campaign and the event group it belongs to.
type Campaign struct {
	ID    string       `json:"id"`
	Type  CampaignType `json:"type"`
	Event string       `json:"event,omitempty"`
}

// BattleConfig is the raw description of a campaign battle node.
type BattleConfig struct {
	ID               string     `json:"id"`
	Campaign         string     `json:"campaign"`
	NodeNumber       int        `json:"node_number"`
	Reward           string     `json:"reward"`
	Rarity           Rarity     `json:"rarity,omitempty"`
	ExpectedGold     int        `json:"expected_gold,omitempty"`
	Slots            int        `json:"slots,omitempty"`
	EnemiesTotal     int        `json:"enemies_total,omitempty"`
	EnemiesTypes     []string   `json:"enemies_types,omitempty"`
	AlliesAlliance   Alliance   `json:"allies_alliance,omitempty"`
	AlliesFactions   []Faction  `json:"allies_factions,omitempty"`
	EnemiesAlliances []Alliance `json:"enemies_alliances,omitempty"`
	EnemiesFactions  []Faction  `json:"enemies_factions,omitempty"`
}

// ProgressionStep is one step of the character progression ladder.
type ProgressionStep struct {
	Rarity Rarity      `json:"rarity"`
	Stars  RarityStars `json:"stars"`
	Shards int         `json:"shards"`
}

// UnlockCost is the shard count required to unlock a character of a rarity.
type UnlockCost struct {
	Rarity Rarity `json:"rarity"`
	Shards int    `json:"shards"`
}

// CampaignBattle is a composed, farmable campaign location.
type CampaignBattle struct {
	ID               string       `json:"id"`
	Campaign         string       `json:"campaign"`
	CampaignType     CampaignType `json:"campaign_type"`
	CampaignEvent    string       `json:"campaign_event,omitempty"`
	NodeNumber       int          `json:"node_number"`
	EnergyCost       int          `json:"energy_cost"`
	DailyBattleCount float64      `json:"daily_battle_count"`
	DropRate         float64      `json:"drop_rate"`
	EnergyPerItem    float64      `json:"energy_per_item"`
	ItemsPerDay      float64      `json:"items_per_day"`
	EnergyPerDay     float64      `json:"energy_per_day"`
	Reward           string       `json:"reward"`
	Rarity           Rarity       `json:"rarity,omitempty"`
	ExpectedGold     int          `json:"expected_gold,omitempty"`
	Slots            int          `json:"slots,omitempty"`
	EnemiesTotal     int          `json:"enemies_total,omitempty"`
	EnemiesTypes     []string     `json:"enemies_types,omitempty"`
	AlliesAlliance   Alliance     `json:"allies_alliance,omitempty"`
	AlliesFactions   []Faction    `json:"allies_factions,omitempty"`
	EnemiesAlliances []Alliance   `json:"enemies_alliances,omitempty"`
	EnemiesFactions  []Faction    `json:"enemies_factions,omitempty"`
}

// ============================================
// INPUT TYPES
// ============================================

// CampaignsProgress maps campaign IDs to the highest node reached.
type CampaignsProgress map[string]int

// LocationFilters narrows the set of usable locations. Empty lists impose
// no constraint.
type LocationFilters struct {
	EnemiesCount    []int          `json:"enemies_count,omitempty" yaml:"enemies_count"`
	EnemiesTypes    []string       `json:"enemies_types,omitempty" yaml:"enemies_types"`
	SlotsCount      []int          `json:"slots_count,omitempty" yaml:"slots_count"`
	UpgradesRarity  []Rarity       `json:"upgrades_rarity,omitempty" yaml:"upgrades_rarity"`
	CampaignTypes   []CampaignType `json:"campaign_types,omitempty" yaml:"campaign_types"`
	AlliesAlliance  []Alliance     `json:"allies_alliance,omitempty" yaml:"allies_alliance"`
	AlliesFactions  []Faction      `json:"allies_factions,omitempty" yaml:"allies_factions"`
	EnemiesAlliance []Alliance     `json:"enemies_alliance,omitempty" yaml:"enemies_alliance"`
	EnemiesFactions []Faction      `json:"enemies_factions,omitempty" yaml:"enemies_factions"`
}

// Preferences are user preferences relevant to planning.
type Preferences struct {
	// ShardsEnergy is the daily energy budget reserved for shard farming.
	// Zero means unlimited.
	ShardsEnergy int `json:"shards_energy,omitempty" yaml:"shards_energy"`
	DailyEnergy  int `json:"daily_energy,omitempty" yaml:"daily_energy"`
}

// EstimatedAscensionSettings is the caller-owned planning context.
type EstimatedAscensionSettings struct {
	CampaignsProgress  CampaignsProgress `json:"campaigns_progress" yaml:"campaigns_progress"`
	Filters            LocationFilters   `json:"filters,omitempty" yaml:"filters"`
	CampaignEvent      string            `json:"campaign_event,omitempty" yaml:"campaign_event"`
	CompletedLocations []string          `json:"completed_locations,omitempty" yaml:"completed_locations"`
	Preferences        Preferences       `json:"preferences,omitempty" yaml:"preferences"`
}

// CharacterGoal is an ascend or unlock goal for a character.
// Ascend goals use the Start/End fields; unlock goals use Rarity.
type CharacterGoal struct {
	Type            GoalType       `json:"type" yaml:"type"`
	GoalID          string         `json:"goal_id" yaml:"goal_id"`
	Priority        int            `json:"priority,omitempty" yaml:"priority"`
	UnitID          string         `json:"unit_id" yaml:"unit_id"`
	UnitName        string         `json:"unit_name" yaml:"unit_name"`
	UnitIcon        string         `json:"unit_icon,omitempty" yaml:"unit_icon"`
	RarityStart     Rarity         `json:"rarity_start,omitempty" yaml:"rarity_start"`
	RarityEnd       Rarity         `json:"rarity_end,omitempty" yaml:"rarity_end"`
	StarsStart      RarityStars    `json:"stars_start,omitempty" yaml:"stars_start"`
	StarsEnd        RarityStars    `json:"stars_end,omitempty" yaml:"stars_end"`
	Rarity          Rarity         `json:"rarity,omitempty" yaml:"rarity"`
	Shards          int            `json:"shards" yaml:"shards"`
	OnslaughtShards int            `json:"onslaught_shards,omitempty" yaml:"onslaught_shards"`
	CampaignsUsage  CampaignsUsage `json:"campaigns_usage,omitempty" yaml:"campaigns_usage"`
}

// ============================================
// RESULT TYPES
// ============================================

// ShardMaterial is the shard request derived from a single goal.
type ShardMaterial struct {
	GoalID            string           `json:"goal_id"`
	CharacterID       string           `json:"character_id"`
	Label             string           `json:"label"`
	IconPath          string           `json:"icon_path,omitempty"`
	AcquiredCount     int              `json:"acquired_count"`
	RequiredCount     int              `json:"required_count"`
	RelatedCharacters []string         `json:"related_characters,omitempty"`
	PossibleLocations []CampaignBattle `json:"possible_locations,omitempty"`
	OnslaughtShards   int              `json:"onslaught_shards"`
	CampaignsUsage    CampaignsUsage   `json:"campaigns_usage"`
}

// RaidLocation is a location the simulator raids: a campaign battle or an
// onslaught slot. For onslaught slots DailyBattleCount is tokens per day.
type RaidLocation struct {
	Kind LocationKind `json:"kind"`
	CampaignBattle
}

// ShardEstimate is a ShardMaterial enriched with simulation results.
type ShardEstimate struct {
	ShardMaterial
	UnlockedLocations    []string       `json:"unlocked_locations"`
	RaidsLocations       []RaidLocation `json:"raids_locations"`
	EnergyTotal          float64        `json:"energy_total"`
	DaysTotal            int            `json:"days_total"`
	RaidsTotal           int            `json:"raids_total"`
	OnslaughtTokensTotal int            `json:"onslaught_tokens_total"`
	IsBlocked            bool           `json:"is_blocked"`
	EnergyPerDay         float64        `json:"energy_per_day"`
}

// TodayRaidLocation is a location in today's raid plan.
type TodayRaidLocation struct {
	RaidLocation
	RaidsCount  int     `json:"raids_count"`
	FarmedItems float64 `json:"farmed_items"`
	EnergySpent float64 `json:"energy_spent"`
	IsCompleted bool    `json:"is_completed"`
}

// ShardsRaid is today's raid plan for one material.
type ShardsRaid struct {
	GoalID          string              `json:"goal_id"`
	CharacterID     string              `json:"character_id"`
	Label           string              `json:"label"`
	IconPath        string              `json:"icon_path,omitempty"`
	AcquiredCount   int                 `json:"acquired_count"`
	RequiredCount   int                 `json:"required_count"`
	OnslaughtShards int                 `json:"onslaught_shards"`
	IsCompleted     bool                `json:"is_completed"`
	Locations       []TodayRaidLocation `json:"locations"`
}

// EstimatedShards is the aggregate farming plan.
type EstimatedShards struct {
	ShardsRaids     []ShardsRaid    `json:"shards_raids"`
	Materials       []ShardEstimate `json:"materials"`
	DaysTotal       int             `json:"days_total"`
	EnergyTotal     float64         `json:"energy_total"`
	RaidsTotal      int             `json:"raids_total"`
	OnslaughtTokens int             `json:"onslaught_tokens"`
	EnergyPerDay    float64         `json:"energy_per_day"`
}

// ============================================
// TOOL REQUEST/RESPONSE TYPES
// ============================================

// EstimateShardsRequest is the input for the estimate_shards tool.
type EstimateShardsRequest struct {
	Settings EstimatedAscensionSettings `json:"settings"`
	Goals    []CharacterGoal            `json:"goals,omitempty"` // stored goals when empty
	Save     bool                       `json:"save,omitempty"`
}

// EstimateShardsResponse is the output for the estimate_shards tool.
type EstimateShardsResponse struct {
	EstimateID string          `json:"estimate_id,omitempty"`
	Plan       EstimatedShards `json:"plan"`
}

// BestLocationsRequest is the input for the best_locations tool.
type BestLocationsRequest struct {
	UnitID         string                     `json:"unit_id"`
	CampaignsUsage CampaignsUsage             `json:"campaigns_usage,omitempty"`
	Settings       EstimatedAscensionSettings `json:"settings"`
}

// BestLocationsResponse is the output for the best_locations tool.
type BestLocationsResponse struct {
	UnitID    string           `json:"unit_id"`
	Material  string           `json:"material"`
	Possible  int              `json:"possible"`
	Unlocked  []CampaignBattle `json:"unlocked"`
	Selected  []CampaignBattle `json:"selected"`
	IsBlocked bool             `json:"is_blocked"`
}

// GoalMaterialRequest is the input for the goal_material tool.
type GoalMaterialRequest struct {
	Goal CharacterGoal `json:"goal"`
}

// SavedEstimate is a persisted plan.
type SavedEstimate struct {
	ID        string          `json:"id"`
	CreatedAt time.Time       `json:"created_at"`
	Plan      EstimatedShards `json:"plan"`
}

// EstimateSummary is a lightweight listing entry for a saved plan.
type EstimateSummary struct {
	ID              string    `json:"id"`
	CreatedAt       time.Time `json:"created_at"`
	Materials       int       `json:"materials"`
	DaysTotal       int       `json:"days_total"`
	EnergyTotal     float64   `json:"energy_total"`
	RaidsTotal      int       `json:"raids_total"`
	OnslaughtTokens int       `json:"onslaught_tokens"`
}
