// Package parquet exports contributor and activity data to Parquet files
// using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/contriboard/contriboard/schema"
	"github.com/parquet-go/parquet-go"
)

// ActivityRecord is the columnar shape of one activity row.
type ActivityRecord struct {
	// Slug is the unique identifier, doubling as the idempotency key
	Slug string `parquet:"slug,snappy"`

	// Username attributes the activity to a contributor
	Username string `parquet:"username,snappy"`

	// DefinitionSlug references the activity type in the catalog
	DefinitionSlug string `parquet:"definition_slug,snappy"`

	// Title is the optional display title (nullable)
	Title *string `parquet:"title,optional,snappy"`

	// OccuredAt is when the activity happened (stored as TIMESTAMP)
	OccuredAt time.Time `parquet:"occured_at,snappy"`

	// Link is the optional reference URL (nullable)
	Link *string `parquet:"link,optional,snappy"`

	// Points is the score awarded for this activity (nullable)
	Points *int64 `parquet:"points,optional,snappy"`
}

// ContributorRecord is the columnar shape of one contributor row.
type ContributorRecord struct {
	// Username is the unique identifier
	Username string `parquet:"username,snappy"`

	// Name is the optional display name (nullable)
	Name *string `parquet:"name,optional,snappy"`

	// AvatarURL points to the profile image (nullable)
	AvatarURL *string `parquet:"avatar_url,optional,snappy"`

	// Role is the optional community role (nullable)
	Role *string `parquet:"role,optional,snappy"`

	// TotalPoints is the all-time points figure for this contributor
	TotalPoints int64 `parquet:"total_points,snappy"`
}

// WriteActivitiesParquet writes a slice of ActivityRecord structs to a Parquet file.
func WriteActivitiesParquet(data []ActivityRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the ActivityRecord struct tags
	writer := parquet.NewGenericWriter[ActivityRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// WriteContributorsParquet writes a slice of ContributorRecord structs to a Parquet file.
func WriteContributorsParquet(data []ContributorRecord, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	// The schema is automatically derived from the ContributorRecord struct tags
	writer := parquet.NewGenericWriter[ContributorRecord](file)
	defer func() { _ = writer.Close() }()

	if _, err := writer.Write(data); err != nil {
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}

	return nil
}

// ConvertActivities converts grouped feed activities to ActivityRecord rows
// for Parquet export.
func ConvertActivities(groups []schema.ActivityGroup) []ActivityRecord {
	var result []ActivityRecord
	for _, group := range groups {
		for _, a := range group.Activities {
			result = append(result, ActivityRecord{
				Slug:           a.Slug,
				Username:       a.Username,
				DefinitionSlug: group.Definition.Slug,
				Title:          a.Title,
				OccuredAt:      a.OccuredAt,
				Link:           a.Link,
				Points:         a.Points,
			})
		}
	}
	return result
}

// ConvertContributors converts roster rows to ContributorRecord rows for
// Parquet export.
func ConvertContributors(people []schema.ContributorWithAvatar) []ContributorRecord {
	result := make([]ContributorRecord, len(people))
	for i, p := range people {
		result[i] = ContributorRecord{
			Username:    p.Username,
			Name:        p.Name,
			AvatarURL:   p.AvatarURL,
			Role:        p.Role,
			TotalPoints: p.TotalPoints,
		}
	}
	return result
}
