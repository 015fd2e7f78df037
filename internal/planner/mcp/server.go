// Package mcp implements the Model Context Protocol server.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"log/slog"
	"os"

	mcp "github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"

	"github.com/rsned/tacticus-planner/internal/planner/db"
	"github.com/rsned/tacticus-planner/internal/planner/engine"
)

// Info identifies the server to MCP clients.
type Info struct {
	Name    string
	Version string
}

// Server exposes the planner engine as MCP tools over stdio.
type Server struct {
	engine    *engine.Engine
	campaigns *db.CampaignStore
	goals     *db.GoalStore
	estimates *db.EstimateStore
	logger    *slog.Logger
	mcp       *mcpserver.MCPServer
}

// NewServer creates a new MCP server and registers the planner tools.
func NewServer(eng *engine.Engine, database *db.DB, info Info, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(os.Stderr, nil))
	}

	s := &Server{
		engine:    eng,
		campaigns: db.NewCampaignStore(database),
		goals:     db.NewGoalStore(database),
		estimates: db.NewEstimateStore(database),
		logger:    logger,
		mcp: mcpserver.NewMCPServer(
			info.Name,
			info.Version,
			mcpserver.WithToolCapabilities(true),
			mcpserver.WithRecovery(),
		),
	}

	for _, t := range s.tools() {
		s.mcp.AddTool(t.tool, s.logged(t.tool.Name, t.handler))
	}

	return s
}

// Run serves MCP requests on stdin/stdout until ctx is done or stdin closes.
func (s *Server) Run(ctx context.Context) error {
	s.logger.Info("MCP server starting", "tools", len(s.tools()))

	stdio := mcpserver.NewStdioServer(s.mcp)
	stdio.SetErrorLogger(log.New(os.Stderr, "mcp: ", log.LstdFlags))

	if err := stdio.Listen(ctx, os.Stdin, os.Stdout); err != nil && ctx.Err() == nil {
		return fmt.Errorf("serving stdio: %w", err)
	}
	return nil
}

// logged wraps a tool handler with debug logging of calls and failures.
func (s *Server) logged(name string, h mcpserver.ToolHandlerFunc) mcpserver.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		s.logger.Debug("calling tool", "name", name)

		result, err := h(ctx, req)
		if err != nil {
			s.logger.Error("tool call failed", "name", name, "error", err)
		} else if result != nil && result.IsError {
			s.logger.Debug("tool returned error", "name", name)
		}
		return result, err
	}
}

// jsonResult marshals v as the text content of a tool result.
func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return mcp.NewToolResultText(string(data)), nil
}

// decodeArg unmarshals a JSON-encoded string argument into v. Missing
// arguments leave v untouched unless required.
func decodeArg(req mcp.CallToolRequest, name string, required bool, v any) error {
	raw := req.GetString(name, "")
	if raw == "" {
		if required {
			return fmt.Errorf("missing required argument %q", name)
		}
		return nil
	}
	if err := json.Unmarshal([]byte(raw), v); err != nil {
		return fmt.Errorf("invalid %s: %w", name, err)
	}
	return nil
}
