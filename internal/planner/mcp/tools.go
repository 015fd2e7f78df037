package mcp

import (
	"context"
	"fmt"

	mcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rsned/tacticus-planner/internal/planner/catalog"
	"github.com/rsned/tacticus-planner/pkg/tacticus"
)

type toolEntry struct {
	tool    mcp.Tool
	handler mcpserver.ToolHandlerFunc
}

const settingsDescription = "Estimation settings as JSON: campaigns_progress (campaign -> highest node), " +
	"campaign_event, completed_locations, filters, preferences.shards_energy"

// tools returns all tool definitions with their handlers.
func (s *Server) tools() []toolEntry {
	return []toolEntry{
		{estimateShardsTool(), s.toolEstimateShards},
		{bestLocationsTool(), s.toolBestLocations},
		{goalMaterialTool(), s.toolGoalMaterial},
		{listGoalsTool(), s.toolListGoals},
		{listEstimatesTool(), s.toolListEstimates},
		{getEstimateTool(), s.toolGetEstimate},
	}
}

func estimateShardsTool() mcp.Tool {
	return mcp.NewTool("estimate_shards",
		mcp.WithDescription("Estimate days, energy, raids and onslaught tokens needed to farm shards for "+
			"character goals in priority order, plus today's raid plan."),
		mcp.WithString("settings_json",
			mcp.Required(),
			mcp.Description(settingsDescription),
		),
		mcp.WithString("goals_json",
			mcp.Description("Goals as a JSON array in priority order. Uses the stored goals when omitted."),
		),
		mcp.WithBoolean("save",
			mcp.Description("Persist the plan and return its estimate_id"),
			mcp.DefaultBool(false),
		),
	)
}

func bestLocationsTool() mcp.Tool {
	return mcp.NewTool("best_locations",
		mcp.WithDescription("Find where a unit's shards can be farmed: every unlocked location and the ones "+
			"selected under the campaigns usage policy."),
		mcp.WithString("unit_id",
			mcp.Required(),
			mcp.Description("Unit id, e.g. ultraTigurius"),
		),
		mcp.WithString("campaigns_usage",
			mcp.Description("Location selection policy"),
			mcp.Enum(
				string(tacticus.CampaignsUsageNone),
				string(tacticus.CampaignsUsageLeastEnergy),
				string(tacticus.CampaignsUsageBestTime),
			),
			mcp.DefaultString(string(tacticus.CampaignsUsageLeastEnergy)),
		),
		mcp.WithString("settings_json",
			mcp.Description(settingsDescription),
		),
	)
}

func goalMaterialTool() mcp.Tool {
	return mcp.NewTool("goal_material",
		mcp.WithDescription("Convert a single Ascend or Unlock goal into the shards it still needs."),
		mcp.WithString("goal_json",
			mcp.Required(),
			mcp.Description("Character goal as JSON"),
		),
	)
}

func listGoalsTool() mcp.Tool {
	return mcp.NewTool("list_goals",
		mcp.WithDescription("List the imported character goals in priority order."),
	)
}

func listEstimatesTool() mcp.Tool {
	return mcp.NewTool("list_estimates",
		mcp.WithDescription("List saved estimates, newest first."),
		mcp.WithNumber("limit",
			mcp.Description("Max results"),
			mcp.DefaultNumber(20),
			mcp.Min(1),
			mcp.Max(100),
		),
	)
}

func getEstimateTool() mcp.Tool {
	return mcp.NewTool("get_estimate",
		mcp.WithDescription("Fetch a saved estimate by id."),
		mcp.WithString("estimate_id",
			mcp.Required(),
			mcp.Description("Id returned by estimate_shards with save=true"),
		),
	)
}

func (s *Server) toolEstimateShards(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in tacticus.EstimateShardsRequest
	if err := decodeArg(req, "settings_json", true, &in.Settings); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := decodeArg(req, "goals_json", false, &in.Goals); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	in.Save = req.GetBool("save", false)

	if len(in.Goals) == 0 {
		goals, err := s.goals.ListGoals(ctx)
		if err != nil {
			return nil, fmt.Errorf("listing goals: %w", err)
		}
		in.Goals = goals
	}

	plan, err := s.engine.GetShardsEstimatedDays(in.Settings, in.Goals...)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	resp := tacticus.EstimateShardsResponse{Plan: *plan}
	if in.Save {
		id, err := s.estimates.SaveEstimate(ctx, plan)
		if err != nil {
			return nil, fmt.Errorf("saving estimate: %w", err)
		}
		resp.EstimateID = id
	}

	return jsonResult(resp)
}

func (s *Server) toolBestLocations(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	in := tacticus.BestLocationsRequest{
		UnitID:         req.GetString("unit_id", ""),
		CampaignsUsage: tacticus.CampaignsUsage(req.GetString("campaigns_usage", "")),
	}
	if in.UnitID == "" {
		return mcp.NewToolResultError("missing required argument \"unit_id\""), nil
	}
	if in.CampaignsUsage != "" && !in.CampaignsUsage.IsValid() {
		return mcp.NewToolResultError(fmt.Sprintf("unknown campaigns_usage %q", in.CampaignsUsage)), nil
	}
	if err := decodeArg(req, "settings_json", false, &in.Settings); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	// Stored battles are looked up through the campaign store cache. An
	// empty result means nothing was imported and the catalog runs on its
	// built-in tables.
	battles, err := s.campaigns.BattlesForReward(ctx, catalog.ShardsMaterialID(in.UnitID))
	if err != nil {
		return nil, fmt.Errorf("looking up battles: %w", err)
	}
	if len(battles) == 0 {
		return jsonResult(s.engine.BestLocations(in))
	}

	ids := make([]string, 0, len(battles))
	for _, b := range battles {
		ids = append(ids, b.ID)
	}
	return jsonResult(s.engine.BestLocationsAmong(in, ids))
}

func (s *Server) toolGoalMaterial(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var in tacticus.GoalMaterialRequest
	if err := decodeArg(req, "goal_json", true, &in.Goal); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	material, err := s.engine.ConvertGoalToMaterial(in.Goal)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(material)
}

func (s *Server) toolListGoals(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	goals, err := s.goals.ListGoals(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing goals: %w", err)
	}
	return jsonResult(map[string]any{"goals": goals, "count": len(goals)})
}

func (s *Server) toolListEstimates(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	estimates, err := s.estimates.ListEstimates(ctx, req.GetInt("limit", 20))
	if err != nil {
		return nil, fmt.Errorf("listing estimates: %w", err)
	}
	return jsonResult(map[string]any{"estimates": estimates, "count": len(estimates)})
}

func (s *Server) toolGetEstimate(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("estimate_id")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	saved, err := s.estimates.GetEstimate(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("getting estimate: %w", err)
	}
	if saved == nil {
		return mcp.NewToolResultError(fmt.Sprintf("estimate %s not found", id)), nil
	}
	return jsonResult(saved)
}
