package staticdata

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/internal/store"
	"github.com/contriboard/contriboard/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int64) *int64   { return &i }

// newTestEnv opens an in-memory store and a temp export directory.
func newTestEnv(t *testing.T) (*store.Store, *contract.Config) {
	t.Helper()
	cfg := &contract.Config{
		DBBackend:    schema.SQLiteBackend,
		DBPath:       schema.MemoryDBPath,
		DataDir:      t.TempDir(),
		LookbackDays: 7,
	}
	s, err := store.Open(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s, cfg
}

// seedFixture loads three contributors with one scored activity each.
func seedFixture(t *testing.T, s *store.Store) time.Time {
	t.Helper()
	ctx := context.Background()
	at := time.Now().UTC().Add(-24 * time.Hour).Truncate(time.Second)

	require.NoError(t, s.UpsertDefinition(ctx, schema.ActivityDefinition{Slug: "pr", Name: "Pull Request", Points: intPtr(10)}))
	for username, points := range map[string]int64{"alice": 15, "bob": 5, "carol": 3} {
		require.NoError(t, s.UpsertContributor(ctx, schema.Contributor{
			Username:  username,
			AvatarURL: strPtr("https://example.com/" + username + ".png"),
		}))
		require.NoError(t, s.InsertActivity(ctx, schema.Activity{
			Slug:           "pr-" + username,
			Username:       username,
			DefinitionSlug: "pr",
			OccuredAt:      at,
			Points:         &points,
		}))
	}
	return at
}

func readFile(t *testing.T, cfg *contract.Config, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(cfg.DataDir, StaticDir, name))
	require.NoError(t, err)
	return data
}

// TestExportAll tests the full snapshot tree against seeded data.
func TestExportAll(t *testing.T) {
	s, cfg := newTestEnv(t)
	seededAt := seedFixture(t, s)
	exporter := NewExporter(s, cfg)
	require.NoError(t, exporter.ExportAll(context.Background()))

	t.Run("top-level files present", func(t *testing.T) {
		for _, name := range []string{UsernamesFile, DefinitionsFile, PeopleFile, RecentFile,
			LeaderboardFile(schema.WeekPeriod), LeaderboardFile(schema.MonthPeriod), LeaderboardFile(schema.YearPeriod)} {
			assert.FileExists(t, filepath.Join(cfg.DataDir, StaticDir, name))
		}
	})

	t.Run("usernames sorted", func(t *testing.T) {
		var usernames []string
		require.NoError(t, json.Unmarshal(readFile(t, cfg, UsernamesFile), &usernames))
		assert.Equal(t, []string{"alice", "bob", "carol"}, usernames)
	})

	t.Run("one profile file per username", func(t *testing.T) {
		for _, username := range []string{"alice", "bob", "carol"} {
			assert.FileExists(t, filepath.Join(cfg.DataDir, StaticDir, ProfilesDir, username+".json"))
		}
	})

	t.Run("week leaderboard ranked 15 > 5 > 3", func(t *testing.T) {
		var snapshot schema.LeaderboardSnapshot
		require.NoError(t, json.Unmarshal(readFile(t, cfg, LeaderboardFile(schema.WeekPeriod)), &snapshot))
		require.Len(t, snapshot.Entries, 3)
		assert.Equal(t, "alice", snapshot.Entries[0].Username)
		assert.EqualValues(t, 15, snapshot.Entries[0].TotalPoints)
		assert.EqualValues(t, 5, snapshot.Entries[1].TotalPoints)
		assert.EqualValues(t, 3, snapshot.Entries[2].TotalPoints)

		ranked := snapshot.TopByActivity["Pull Request"]
		require.Len(t, ranked, 3)
		assert.Equal(t, "alice", ranked[0].Username)

		// Dates round-trip through the fixed format.
		_, err := time.Parse(schema.DateFormat, snapshot.StartDate)
		assert.NoError(t, err)
		_, err = time.Parse(schema.DateFormat, snapshot.EndDate)
		assert.NoError(t, err)
	})

	t.Run("recent activity timestamps round-trip to the second", func(t *testing.T) {
		var groups []schema.ActivityGroup
		require.NoError(t, json.Unmarshal(readFile(t, cfg, RecentFile), &groups))
		require.Len(t, groups, 1)
		require.Len(t, groups[0].Activities, 3)
		for _, act := range groups[0].Activities {
			assert.True(t, act.OccuredAt.Equal(seededAt))
		}
	})

	t.Run("profile shape", func(t *testing.T) {
		data, err := os.ReadFile(filepath.Join(cfg.DataDir, StaticDir, ProfilesDir, "alice.json"))
		require.NoError(t, err)
		var profile schema.ContributorProfile
		require.NoError(t, json.Unmarshal(data, &profile))
		require.NotNil(t, profile.Contributor)
		assert.EqualValues(t, 15, profile.TotalPoints)
		assert.Len(t, profile.Activities, 1)
		assert.Len(t, profile.ActivityByDate, 1)
	})
}

// TestExportAllEmptyDatabase tests that an empty store still produces the
// complete top-level file set with empty collections and zero profiles.
func TestExportAllEmptyDatabase(t *testing.T) {
	s, cfg := newTestEnv(t)
	exporter := NewExporter(s, cfg)
	require.NoError(t, exporter.ExportAll(context.Background()))

	assert.JSONEq(t, "[]", string(readFile(t, cfg, UsernamesFile)))
	assert.JSONEq(t, "[]", string(readFile(t, cfg, DefinitionsFile)))
	assert.JSONEq(t, "[]", string(readFile(t, cfg, PeopleFile)))
	assert.JSONEq(t, "[]", string(readFile(t, cfg, RecentFile)))

	var snapshot schema.LeaderboardSnapshot
	require.NoError(t, json.Unmarshal(readFile(t, cfg, LeaderboardFile(schema.YearPeriod)), &snapshot))
	assert.Empty(t, snapshot.Entries)
	assert.Empty(t, snapshot.TopByActivity)

	profiles, err := os.ReadDir(filepath.Join(cfg.DataDir, StaticDir, ProfilesDir))
	require.NoError(t, err)
	assert.Empty(t, profiles)
}

// TestExportAllIdempotent tests byte-for-byte stability across runs over
// identical source data.
func TestExportAllIdempotent(t *testing.T) {
	s, cfg := newTestEnv(t)
	seedFixture(t, s)
	exporter := NewExporter(s, cfg)

	require.NoError(t, exporter.ExportAll(context.Background()))
	first := map[string][]byte{}
	names := []string{UsernamesFile, DefinitionsFile, PeopleFile, RecentFile,
		LeaderboardFile(schema.WeekPeriod), LeaderboardFile(schema.MonthPeriod), LeaderboardFile(schema.YearPeriod),
		filepath.Join(ProfilesDir, "alice.json")}
	for _, name := range names {
		first[name] = readFile(t, cfg, name)
	}

	require.NoError(t, exporter.ExportAll(context.Background()))
	for _, name := range names {
		assert.Equal(t, string(first[name]), string(readFile(t, cfg, name)), "file %s changed between runs", name)
	}
}

// TestExportPeopleHiddenRoles tests that the roster export applies the
// configured hidden roles while leaderboards keep ranking everyone.
func TestExportPeopleHiddenRoles(t *testing.T) {
	s, cfg := newTestEnv(t)
	ctx := context.Background()
	cfg.HiddenRoles = []string{"bot"}

	require.NoError(t, s.UpsertDefinition(ctx, schema.ActivityDefinition{Slug: "pr", Name: "Pull Request"}))
	require.NoError(t, s.UpsertContributor(ctx, schema.Contributor{Username: "ci", Role: strPtr("bot")}))
	require.NoError(t, s.InsertActivity(ctx, schema.Activity{
		Slug: "p1", Username: "ci", DefinitionSlug: "pr",
		OccuredAt: time.Now().UTC().Add(-time.Hour), Points: intPtr(5),
	}))

	require.NoError(t, NewExporter(s, cfg).ExportAll(ctx))

	assert.JSONEq(t, "[]", string(readFile(t, cfg, PeopleFile)))

	var snapshot schema.LeaderboardSnapshot
	require.NoError(t, json.Unmarshal(readFile(t, cfg, LeaderboardFile(schema.WeekPeriod)), &snapshot))
	require.Len(t, snapshot.Entries, 1)
	assert.Equal(t, "ci", snapshot.Entries[0].Username)

	// Hidden contributors still get a profile file.
	assert.FileExists(t, filepath.Join(cfg.DataDir, StaticDir, ProfilesDir, "ci.json"))
}

// TestBuildSnapshotRanking tests the rank order inside a snapshot.
func TestBuildSnapshotRanking(t *testing.T) {
	s, _ := newTestEnv(t)
	seedFixture(t, s)

	snapshot, err := BuildSnapshot(context.Background(), s, schema.WeekPeriod, time.Now().UTC())
	require.NoError(t, err)
	require.Len(t, snapshot.Entries, 3)
	for i := 1; i < len(snapshot.Entries); i++ {
		assert.LessOrEqual(t, snapshot.Entries[i].TotalPoints, snapshot.Entries[i-1].TotalPoints)
	}
}

// TestExportProfileStaysInProfilesDir tests that a username carrying path
// separators can never place a file outside the profiles directory.
func TestExportProfileStaysInProfilesDir(t *testing.T) {
	s, cfg := newTestEnv(t)
	root := filepath.Join(cfg.DataDir, StaticDir)
	require.NoError(t, os.MkdirAll(filepath.Join(root, ProfilesDir), 0o755))

	e := NewExporter(s, cfg)
	for _, username := range []string{"../escape", "a/b", `a\b`} {
		err := e.exportProfile(context.Background(), root, username)
		assert.Error(t, err, "username %q must be rejected", username)
	}

	_, err := os.Stat(filepath.Join(root, "escape.json"))
	assert.True(t, os.IsNotExist(err), "no file may appear outside the profiles directory")
}
