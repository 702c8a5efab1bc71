// Package seed populates the store with generated demo data.
package seed

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/schema"
)

// Defaults for demo data generation.
const (
	DefaultContributors = 10
	DefaultDays         = 30
)

// Generator produces fake contributors and activities. Seeding the faker
// makes repeated runs reproducible.
type Generator struct {
	faker *gofakeit.Faker
}

// NewGenerator creates a generator with an optional seed.
func NewGenerator(seed ...int64) *Generator {
	var s int64
	if len(seed) > 0 {
		s = seed[0]
	} else {
		s = time.Now().UnixNano()
	}
	return &Generator{faker: gofakeit.New(uint64(s))}
}

// Definitions returns the fixed demo activity catalog.
func Definitions() []schema.ActivityDefinition {
	prPoints := int64(10)
	reviewPoints := int64(5)
	chatPoints := int64(2)
	prDesc := "A merged pull request"
	reviewDesc := "A completed code review"
	chatDesc := "A community chat update"
	return []schema.ActivityDefinition{
		{Slug: "pr", Name: "Pull Request", Description: &prDesc, Points: &prPoints},
		{Slug: "review", Name: "Code Review", Description: &reviewDesc, Points: &reviewPoints},
		{Slug: "chat-update", Name: "Chat Update", Description: &chatDesc, Points: &chatPoints},
	}
}

// GenerateContributors creates count fake contributors with unique usernames.
func (g *Generator) GenerateContributors(count int) []schema.Contributor {
	roles := []string{"maintainer", "member", "contributor"}
	contributors := make([]schema.Contributor, count)
	for i := range count {
		username := fmt.Sprintf("%s%d", strings.ToLower(g.faker.Username()), i)
		name := g.faker.Name()
		avatar := fmt.Sprintf("https://avatars.example.com/%s.png", username)
		role := roles[g.faker.Number(0, len(roles)-1)]
		bio := g.faker.JobTitle()
		contributors[i] = schema.Contributor{
			Username:  username,
			Name:      &name,
			AvatarURL: &avatar,
			Role:      &role,
			Bio:       &bio,
		}
	}
	return contributors
}

// GenerateActivities creates a spread of activities for the given
// contributors across the trailing days window.
func (g *Generator) GenerateActivities(contributors []schema.Contributor, defs []schema.ActivityDefinition, days int) []schema.Activity {
	var activities []schema.Activity
	now := time.Now().UTC()

	for _, c := range contributors {
		// Each contributor gets an uneven amount of activity so the
		// leaderboard has something to rank.
		count := g.faker.Number(1, days)
		for i := range count {
			def := defs[g.faker.Number(0, len(defs)-1)]
			occurredAt := now.Add(-time.Duration(g.faker.Number(0, days*24)) * time.Hour).Truncate(time.Second)
			title := g.faker.HackerPhrase()
			points := *def.Points
			activities = append(activities, schema.Activity{
				Slug:           fmt.Sprintf("%s-%s-%d", def.Slug, c.Username, i),
				Username:       c.Username,
				DefinitionSlug: def.Slug,
				Title:          &title,
				OccuredAt:      occurredAt,
				Points:         &points,
			})
		}
	}
	return activities
}

// Populate fills the store with demo data and reports what was written.
func Populate(ctx context.Context, store contract.Store, contributorCount, days int) (int, int, error) {
	if contributorCount <= 0 {
		contributorCount = DefaultContributors
	}
	if days <= 0 {
		days = DefaultDays
	}

	g := NewGenerator()
	defs := Definitions()
	for _, d := range defs {
		if err := store.UpsertDefinition(ctx, d); err != nil {
			return 0, 0, fmt.Errorf("failed to seed definition '%s': %w", d.Slug, err)
		}
	}

	contributors := g.GenerateContributors(contributorCount)
	for _, c := range contributors {
		if err := store.UpsertContributor(ctx, c); err != nil {
			return 0, 0, fmt.Errorf("failed to seed contributor '%s': %w", c.Username, err)
		}
	}

	activities := g.GenerateActivities(contributors, defs, days)
	for _, a := range activities {
		if err := store.InsertActivity(ctx, a); err != nil {
			return 0, 0, fmt.Errorf("failed to seed activity '%s': %w", a.Slug, err)
		}
	}

	return len(contributors), len(activities), nil
}
