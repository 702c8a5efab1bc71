package core

import (
	"context"
	"time"

	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/internal/outwriter"
)

// ExecuteLeaderboard computes the ranked leaderboard for the configured
// period and prints it. It serves as the main entry point for the
// 'leaderboard' command.
func ExecuteLeaderboard(ctx context.Context, cfg *contract.Config, store contract.Store) error {
	begin := time.Now()
	start, end := contract.PeriodRange(cfg.Period, time.Now().UTC())

	entries, err := store.Leaderboard(ctx, start, end)
	if err != nil {
		return err
	}
	ranked := RankLeaderboard(entries)
	duration := time.Since(begin)
	return outwriter.WriteLeaderboard(ranked, start, end, cfg, duration)
}

// ExecuteTop computes the per-activity top contributors for the configured
// period and prints them. An empty activity selector means the full catalog.
func ExecuteTop(ctx context.Context, cfg *contract.Config, store contract.Store) error {
	begin := time.Now()
	start, end := contract.PeriodRange(cfg.Period, time.Now().UTC())

	slugs := cfg.Activities
	if len(slugs) == 0 {
		defs, err := store.ActivityDefinitions(ctx)
		if err != nil {
			return err
		}
		slugs = make([]string, 0, len(defs))
		for _, d := range defs {
			slugs = append(slugs, d.Slug)
		}
	}

	top, err := store.TopContributorsByActivity(ctx, start, end, slugs)
	if err != nil {
		return err
	}
	duration := time.Since(begin)
	return outwriter.WriteTopContributors(top, cfg, duration)
}

// ExecuteProfile looks up one contributor's full history and prints it.
// Unknown usernames render a not-found state rather than failing.
func ExecuteProfile(ctx context.Context, cfg *contract.Config, store contract.Store, username string) error {
	profile, err := store.ContributorProfile(ctx, username)
	if err != nil {
		return err
	}
	if profile.Contributor == nil {
		return outwriter.WriteProfileNotFound(username, cfg)
	}
	return outwriter.WriteProfile(profile, cfg)
}

// ExecuteActivity prints the recent activity feed grouped by activity type
// over the configured lookback window.
func ExecuteActivity(ctx context.Context, cfg *contract.Config, store contract.Store) error {
	groups, err := store.RecentActivitiesGroupedByType(ctx, cfg.LookbackDays)
	if err != nil {
		return err
	}
	return outwriter.WriteActivityFeed(groups, cfg)
}

// ExecutePeople prints the contributor roster with all-time points,
// excluding the configured hidden roles.
func ExecutePeople(ctx context.Context, cfg *contract.Config, store contract.Store) error {
	people, err := store.ContributorsWithAvatars(ctx, cfg.HiddenRoles)
	if err != nil {
		return err
	}
	return outwriter.WritePeople(people, cfg)
}
