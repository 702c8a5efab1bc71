package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/internal/staticdata"
	"github.com/contriboard/contriboard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	store   contract.Store
}

// resolvePeriod applies an optional period argument over the base config.
func (h *toolHandler) resolvePeriod(request mcp.CallToolRequest) (schema.Period, error) {
	p := request.GetString("period", "")
	if p == "" {
		return h.baseCfg.Period, nil
	}
	period := schema.Period(p)
	if _, ok := schema.ValidPeriods[period]; !ok {
		return "", fmt.Errorf("invalid period '%s'. must be week, month, year", p)
	}
	return period, nil
}

func (h *toolHandler) handleGetLeaderboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	period, err := h.resolvePeriod(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid leaderboard parameters: %v", err)), nil
	}

	snapshot, err := staticdata.BuildSnapshot(ctx, h.store, period, time.Now().UTC())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("leaderboard query failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(snapshot, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetTopContributors(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	period, err := h.resolvePeriod(request)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid top-contributor parameters: %v", err)), nil
	}

	slugs := contract.SplitList(request.GetString("activities", ""))
	if len(slugs) == 0 {
		defs, err := h.store.ActivityDefinitions(ctx)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("catalog query failed: %v", err)), nil
		}
		for _, d := range defs {
			slugs = append(slugs, d.Slug)
		}
	}

	start, end := contract.PeriodRange(period, time.Now().UTC())
	top, err := h.store.TopContributorsByActivity(ctx, start, end, slugs)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("top-contributor query failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(top, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetContributorProfile(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	username := request.GetString("username", "")
	if username == "" {
		return mcp.NewToolResultError("username is required"), nil
	}

	profile, err := h.store.ContributorProfile(ctx, username)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("profile query failed: %v", err)), nil
	}
	if profile.Contributor == nil {
		return mcp.NewToolResultError(fmt.Sprintf("no contributor found with username '%s'", username)), nil
	}

	jsonData, _ := json.MarshalIndent(profile, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetRecentActivities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := request.GetInt("days", h.baseCfg.LookbackDays)
	if days <= 0 || days > contract.MaxLookbackDays {
		return mcp.NewToolResultError(fmt.Sprintf("days must be between 1 and %d", contract.MaxLookbackDays)), nil
	}

	groups, err := h.store.RecentActivitiesGroupedByType(ctx, days)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("activity query failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(groups, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetPeople(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	people, err := h.store.ContributorsWithAvatars(ctx, h.baseCfg.HiddenRoles)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("roster query failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(people, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}
