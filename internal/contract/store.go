package contract

import (
	"context"
	"time"

	"github.com/contriboard/contriboard/schema"
)

// Store is the contract for the activity store. A Store handle is only ever
// handed out fully initialized (open, pinged, migrated); callers own its
// lifecycle and must Close it on all exit paths.
type Store interface {
	// Leaderboard returns one entry per contributor with at least one
	// positive-point activity in the inclusive date range. Entries are
	// returned in no guaranteed order; ranking is the caller's job.
	Leaderboard(ctx context.Context, start, end time.Time) ([]schema.LeaderboardEntry, error)

	// TopContributorsByActivity ranks contributors per selected activity
	// type within the range. Types with no qualifying contributors are
	// omitted from the result entirely.
	TopContributorsByActivity(ctx context.Context, start, end time.Time, slugs []string) (schema.TopContributorsByActivity, error)

	// ContributorProfile returns the full profile for a username. An
	// unknown username yields an empty profile with a nil contributor,
	// never an error.
	ContributorProfile(ctx context.Context, username string) (schema.ContributorProfile, error)

	// RecentActivitiesGroupedByType returns one group per activity type
	// with activity inside the lookback window. Groups are ordered by
	// definition slug ascending; activities within a group descend by
	// occurrence time.
	RecentActivitiesGroupedByType(ctx context.Context, days int) ([]schema.ActivityGroup, error)

	// ContributorsWithAvatars returns the roster with all-time points,
	// excluding contributors whose role is in hiddenRoles. Contributors
	// with no role are always included.
	ContributorsWithAvatars(ctx context.Context, hiddenRoles []string) ([]schema.ContributorWithAvatar, error)

	// Usernames returns all contributor usernames, sorted.
	Usernames(ctx context.Context) ([]string, error)

	// ActivityDefinitions returns the full catalog, ordered by slug.
	ActivityDefinitions(ctx context.Context) ([]schema.ActivityDefinition, error)

	// UpsertContributor creates or updates a contributor row.
	UpsertContributor(ctx context.Context, c schema.Contributor) error

	// UpsertDefinition creates or updates a catalog entry.
	UpsertDefinition(ctx context.Context, d schema.ActivityDefinition) error

	// InsertActivity inserts an activity if its slug is new. Activities
	// are immutable: re-inserting an existing slug is a no-op.
	InsertActivity(ctx context.Context, a schema.Activity) error

	// Status reports row counts per table.
	Status(ctx context.Context) (StoreStatus, error)

	// Close releases the underlying connection.
	Close() error
}

// StoreStatus summarizes the contents of the store.
type StoreStatus struct {
	Backend      string `json:"backend"`
	Contributors int64  `json:"contributors"`
	Definitions  int64  `json:"definitions"`
	Activities   int64  `json:"activities"`
}
