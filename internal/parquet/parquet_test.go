package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/contriboard/contriboard/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int64) *int64   { return &i }

func TestActivityRecordStructTags(t *testing.T) {
	// Verify struct tags are properly defined for parquet schema inference
	sch := parquet.SchemaOf(new(ActivityRecord))
	require.NotNil(t, sch)

	expectedColumns := []string{
		"slug",
		"username",
		"definition_slug",
		"title",
		"occured_at",
		"link",
		"points",
	}

	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestContributorRecordStructTags(t *testing.T) {
	sch := parquet.SchemaOf(new(ContributorRecord))
	require.NotNil(t, sch)

	expectedColumns := []string{"username", "name", "avatar_url", "role", "total_points"}
	for _, colName := range expectedColumns {
		col, ok := sch.Lookup(colName)
		require.True(t, ok, "Column %s should exist in schema", colName)
		require.NotNil(t, col, "Column %s should not be nil", colName)
	}
}

func TestWriteActivitiesParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "activities.parquet")

	now := time.Now().UTC().Truncate(time.Second)
	data := []ActivityRecord{
		{
			Slug:           "pr-1",
			Username:       "alice",
			DefinitionSlug: "pr",
			Title:          strPtr("Add retries"),
			OccuredAt:      now,
			Link:           strPtr("https://example.com/pr/1"),
			Points:         intPtr(10),
		},
		{
			Slug:           "chat-1",
			Username:       "bob",
			DefinitionSlug: "chat-update",
			OccuredAt:      now.Add(-time.Hour),
			// Title, Link and Points stay nil to exercise nullable fields
		},
	}

	require.NoError(t, WriteActivitiesParquet(data, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[ActivityRecord](file)
	defer reader.Close()

	readData := make([]ActivityRecord, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)

	assert.Equal(t, "pr-1", readData[0].Slug)
	assert.Equal(t, "alice", readData[0].Username)
	require.NotNil(t, readData[0].Points)
	assert.EqualValues(t, 10, *readData[0].Points)
	assert.WithinDuration(t, now, readData[0].OccuredAt, time.Nanosecond)

	assert.Nil(t, readData[1].Title)
	assert.Nil(t, readData[1].Link)
	assert.Nil(t, readData[1].Points)
}

func TestWriteContributorsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "contributors.parquet")

	data := []ContributorRecord{
		{Username: "alice", Name: strPtr("Alice A"), Role: strPtr("maintainer"), TotalPoints: 42},
		{Username: "bob"},
	}

	require.NoError(t, WriteContributorsParquet(data, outputPath))

	file, err := os.Open(outputPath)
	require.NoError(t, err)
	defer file.Close()

	reader := parquet.NewGenericReader[ContributorRecord](file)
	defer reader.Close()

	readData := make([]ContributorRecord, reader.NumRows())
	n, err := reader.Read(readData)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	require.Equal(t, len(data), n)

	assert.Equal(t, "alice", readData[0].Username)
	require.NotNil(t, readData[0].Name)
	assert.Equal(t, "Alice A", *readData[0].Name)
	assert.EqualValues(t, 42, readData[0].TotalPoints)
	assert.Nil(t, readData[1].Name)
}

func TestWriteActivitiesParquetEmptyData(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "empty.parquet")

	require.NoError(t, WriteActivitiesParquet([]ActivityRecord{}, outputPath))

	info, err := os.Stat(outputPath)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0), "Output file should contain schema even if empty")
}

func TestWriteActivitiesParquetInvalidPath(t *testing.T) {
	err := WriteActivitiesParquet([]ActivityRecord{}, "/nonexistent/directory/output.parquet")
	require.Error(t, err)
}

func TestConvertActivities(t *testing.T) {
	groups := []schema.ActivityGroup{
		{
			Definition: schema.ActivityDefinition{Slug: "pr", Name: "Pull Request"},
			Activities: []schema.GroupedActivity{
				{Activity: schema.Activity{Slug: "pr-1", Username: "alice", OccuredAt: time.Now()}},
				{Activity: schema.Activity{Slug: "pr-2", Username: "bob", OccuredAt: time.Now()}},
			},
		},
		{
			Definition: schema.ActivityDefinition{Slug: "review", Name: "Code Review"},
			Activities: []schema.GroupedActivity{
				{Activity: schema.Activity{Slug: "rev-1", Username: "carol", OccuredAt: time.Now()}},
			},
		},
	}

	records := ConvertActivities(groups)
	require.Len(t, records, 3)
	assert.Equal(t, "pr", records[0].DefinitionSlug)
	assert.Equal(t, "review", records[2].DefinitionSlug)
	assert.Equal(t, "carol", records[2].Username)
}

func TestConvertContributors(t *testing.T) {
	people := []schema.ContributorWithAvatar{
		{Username: "alice", Name: strPtr("Alice A"), TotalPoints: 42},
	}

	records := ConvertContributors(people)
	require.Len(t, records, 1)
	assert.Equal(t, "alice", records[0].Username)
	require.NotNil(t, records[0].Name)
	assert.Equal(t, "Alice A", *records[0].Name)
	assert.EqualValues(t, 42, records[0].TotalPoints)
}
