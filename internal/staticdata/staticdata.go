// Package staticdata produces the static JSON snapshot tree that the
// presentation layer consumes instead of live database access.
package staticdata

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/contriboard/contriboard/core"
	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/schema"
)

// Directory and file names of the export tree, relative to the data dir.
const (
	StaticDir   = "static"
	ProfilesDir = "profiles"

	UsernamesFile   = "usernames.json"
	DefinitionsFile = "activity-definitions.json"
	PeopleFile      = "people.json"
	RecentFile      = "recent-activities.json"
)

// LeaderboardFile returns the file name for one period's snapshot.
func LeaderboardFile(period schema.Period) string {
	return fmt.Sprintf("leaderboard-%s.json", period)
}

// Exporter writes one complete, internally consistent snapshot of all
// aggregates. A run is all-or-nothing: the first failing step aborts it.
type Exporter struct {
	store contract.Store
	cfg   *contract.Config
}

// NewExporter returns an exporter over an already-open store.
func NewExporter(store contract.Store, cfg *contract.Config) *Exporter {
	return &Exporter{store: store, cfg: cfg}
}

// ExportAll performs one full export pass into <data-dir>/static. It is
// idempotent: re-running against identical data overwrites every file with
// byte-identical content.
func (e *Exporter) ExportAll(ctx context.Context) error {
	root := filepath.Join(e.cfg.DataDir, StaticDir)
	if err := os.MkdirAll(filepath.Join(root, ProfilesDir), 0o755); err != nil {
		return fmt.Errorf("failed to create export directory tree: %w", err)
	}

	// One reference time for the whole run keeps the period snapshots
	// mutually consistent.
	now := time.Now().UTC()

	fmt.Println("Exporting usernames...")
	usernames, err := e.exportUsernames(ctx, root)
	if err != nil {
		return fmt.Errorf("failed to export usernames: %w", err)
	}
	fmt.Println("Exporting activity definitions...")
	if err := e.exportDefinitions(ctx, root); err != nil {
		return fmt.Errorf("failed to export activity definitions: %w", err)
	}
	fmt.Println("Exporting people...")
	if err := e.exportPeople(ctx, root); err != nil {
		return fmt.Errorf("failed to export people: %w", err)
	}
	fmt.Println("Exporting recent activities...")
	if err := e.exportRecentActivities(ctx, root); err != nil {
		return fmt.Errorf("failed to export recent activities: %w", err)
	}
	for _, period := range schema.AllPeriods {
		fmt.Printf("Exporting %s leaderboard...\n", period)
		if err := e.exportLeaderboard(ctx, root, period, now); err != nil {
			return fmt.Errorf("failed to export %s leaderboard: %w", period, err)
		}
	}
	fmt.Printf("Exporting %d profiles...\n", len(usernames))
	for _, username := range usernames {
		if err := e.exportProfile(ctx, root, username); err != nil {
			return fmt.Errorf("failed to export profile %s: %w", username, err)
		}
	}

	fmt.Printf("Exported static data for %d contributors to %s\n", len(usernames), root)
	return nil
}

func (e *Exporter) exportUsernames(ctx context.Context, root string) ([]string, error) {
	usernames, err := e.store.Usernames(ctx)
	if err != nil {
		return nil, err
	}
	if usernames == nil {
		usernames = []string{}
	}
	return usernames, writeJSONFile(filepath.Join(root, UsernamesFile), usernames)
}

func (e *Exporter) exportDefinitions(ctx context.Context, root string) error {
	defs, err := e.store.ActivityDefinitions(ctx)
	if err != nil {
		return err
	}
	if defs == nil {
		defs = []schema.ActivityDefinition{}
	}
	return writeJSONFile(filepath.Join(root, DefinitionsFile), defs)
}

func (e *Exporter) exportPeople(ctx context.Context, root string) error {
	people, err := e.store.ContributorsWithAvatars(ctx, e.cfg.HiddenRoles)
	if err != nil {
		return err
	}
	if people == nil {
		people = []schema.ContributorWithAvatar{}
	}
	return writeJSONFile(filepath.Join(root, PeopleFile), people)
}

func (e *Exporter) exportRecentActivities(ctx context.Context, root string) error {
	groups, err := e.store.RecentActivitiesGroupedByType(ctx, e.cfg.LookbackDays)
	if err != nil {
		return err
	}
	if groups == nil {
		groups = []schema.ActivityGroup{}
	}
	return writeJSONFile(filepath.Join(root, RecentFile), groups)
}

func (e *Exporter) exportLeaderboard(ctx context.Context, root string, period schema.Period, now time.Time) error {
	snapshot, err := BuildSnapshot(ctx, e.store, period, now)
	if err != nil {
		return err
	}
	return writeJSONFile(filepath.Join(root, LeaderboardFile(period)), snapshot)
}

func (e *Exporter) exportProfile(ctx context.Context, root, username string) error {
	// Usernames become file names; a name carrying path separators must
	// never write outside the profiles directory.
	if strings.ContainsAny(username, `/\`) || strings.Contains(username, "..") {
		return fmt.Errorf("username '%s' resolves outside the profiles directory", username)
	}
	path := filepath.Join(root, ProfilesDir, username+".json")
	profile, err := e.store.ContributorProfile(ctx, username)
	if err != nil {
		return err
	}
	return writeJSONFile(path, profile)
}

// BuildSnapshot computes one period's ranked leaderboard paired with its
// top-contributors-by-activity view over the full catalog.
func BuildSnapshot(ctx context.Context, store contract.Store, period schema.Period, now time.Time) (schema.LeaderboardSnapshot, error) {
	start, end := contract.PeriodRange(period, now)

	snapshot := schema.LeaderboardSnapshot{
		StartDate: start.Format(schema.DateFormat),
		EndDate:   end.Format(schema.DateFormat),
	}

	entries, err := store.Leaderboard(ctx, start, end)
	if err != nil {
		return snapshot, err
	}
	if entries == nil {
		entries = []schema.LeaderboardEntry{}
	}
	snapshot.Entries = core.RankLeaderboard(entries)

	defs, err := store.ActivityDefinitions(ctx)
	if err != nil {
		return snapshot, err
	}
	slugs := make([]string, 0, len(defs))
	for _, d := range defs {
		slugs = append(slugs, d.Slug)
	}

	top, err := store.TopContributorsByActivity(ctx, start, end, slugs)
	if err != nil {
		return snapshot, err
	}
	snapshot.TopByActivity = top
	return snapshot, nil
}

// writeJSONFile marshals fully in memory before a single write, so a
// failing step never leaves a truncated file behind. Output is stable:
// indented encoding with sorted map keys and no generation timestamp.
func writeJSONFile(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return nil
}
