// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/contriboard/contriboard/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Contriboard MCP server without
// starting it. This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, store contract.Store) *server.MCPServer {
	s := server.NewMCPServer(
		"Contriboard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		store:   store,
	}

	// --- 1. Tool: get_leaderboard ---
	s.AddTool(mcp.NewTool("get_leaderboard",
		mcp.WithDescription("Get the ranked contributor leaderboard for a reporting period."),
		mcp.WithString("period", mcp.Description("Reporting period (week, month, year). Defaults to the configured period."), mcp.Enum("week", "month", "year")),
	), h.handleGetLeaderboard)

	// --- 2. Tool: get_top_contributors ---
	s.AddTool(mcp.NewTool("get_top_contributors",
		mcp.WithDescription("Get the top contributors per activity type for a reporting period."),
		mcp.WithString("period", mcp.Description("Reporting period (week, month, year)."), mcp.Enum("week", "month", "year")),
		mcp.WithString("activities", mcp.Description("Comma-separated activity-definition slugs. Defaults to the full catalog.")),
	), h.handleGetTopContributors)

	// --- 3. Tool: get_contributor_profile ---
	s.AddTool(mcp.NewTool("get_contributor_profile",
		mcp.WithDescription("Get one contributor's profile with their full activity timeline."),
		mcp.WithString("username", mcp.Description("The contributor's username."), mcp.Required()),
	), h.handleGetContributorProfile)

	// --- 4. Tool: get_recent_activities ---
	s.AddTool(mcp.NewTool("get_recent_activities",
		mcp.WithDescription("Get recent activities grouped by activity type."),
		mcp.WithNumber("days", mcp.Description("Lookback window in days. Defaults to the configured lookback.")),
	), h.handleGetRecentActivities)

	// --- 5. Tool: get_people ---
	s.AddTool(mcp.NewTool("get_people",
		mcp.WithDescription("Get the contributor roster with all-time points."),
	), h.handleGetPeople)

	return s
}

// StartMCPServer starts the Contriboard MCP server over stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, store contract.Store) error {
	s := NewMCPServer(baseCfg, store)
	return server.ServeStdio(s)
}
