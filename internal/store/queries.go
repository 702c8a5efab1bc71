package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/contriboard/contriboard/internal/contract"
	"github.com/contriboard/contriboard/schema"
)

// Leaderboard computes one aggregate entry per contributor with at least one
// positive-point activity inside the inclusive date range. Contributors with
// zero qualifying activity are excluded entirely, not returned as zero rows.
// Entries come back in no guaranteed order; ranking belongs to the caller.
func (s *Store) Leaderboard(ctx context.Context, start, end time.Time) ([]schema.LeaderboardEntry, error) {
	lo, hi := contract.RangeBounds(start, end)

	query := s.rebind(`
		SELECT a.username, c.name, c.avatar_url, c.role, d.name, a.points, a.occured_at
		FROM activities a
		JOIN activity_definitions d ON d.slug = a.definition_slug
		LEFT JOIN contributors c ON c.username = a.username
		WHERE a.points IS NOT NULL AND a.points > 0 AND a.occured_at >= ? AND a.occured_at < ?`)

	rows, err := s.db.QueryContext(ctx, query, lo, hi)
	if err != nil {
		return nil, fmt.Errorf("leaderboard query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	type dayStat struct {
		count  int
		points int64
	}
	entries := make(map[string]*schema.LeaderboardEntry)
	daily := make(map[string]map[string]dayStat)

	for rows.Next() {
		var username, defName string
		var name, avatar, role sql.NullString
		var points int64
		var occuredAt int64
		if err := rows.Scan(&username, &name, &avatar, &role, &defName, &points, &occuredAt); err != nil {
			return nil, fmt.Errorf("leaderboard scan failed: %w", err)
		}

		entry, ok := entries[username]
		if !ok {
			entry = &schema.LeaderboardEntry{
				Username:          username,
				Name:              nullString(name),
				AvatarURL:         nullString(avatar),
				Role:              nullString(role),
				ActivityBreakdown: make(map[string]schema.ActivityStat),
			}
			entries[username] = entry
			daily[username] = make(map[string]dayStat)
		}

		entry.TotalPoints += points
		stat := entry.ActivityBreakdown[defName]
		stat.Count++
		stat.Points += points
		entry.ActivityBreakdown[defName] = stat

		day := schema.DayKey(time.Unix(occuredAt, 0))
		ds := daily[username][day]
		ds.count++
		ds.points += points
		daily[username][day] = ds
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("leaderboard rows failed: %w", err)
	}

	// Zero-fill the daily series over the whole range so sparklines render
	// without gaps.
	days := contract.DaySequence(start, end)
	result := make([]schema.LeaderboardEntry, 0, len(entries))
	for username, entry := range entries {
		series := make([]schema.DailyCount, 0, len(days))
		for _, day := range days {
			ds := daily[username][day]
			series = append(series, schema.DailyCount{Date: day, Count: ds.count, Points: ds.points})
		}
		entry.DailyActivity = series
		result = append(result, *entry)
	}
	return result, nil
}

// TopContributorsByActivity ranks contributors by points per selected
// activity type within the range. Types not selected are omitted, as are
// selected types with zero qualifying contributors; consumers filter by
// key presence.
func (s *Store) TopContributorsByActivity(ctx context.Context, start, end time.Time, slugs []string) (schema.TopContributorsByActivity, error) {
	result := make(schema.TopContributorsByActivity)
	if len(slugs) == 0 {
		return result, nil
	}

	lo, hi := contract.RangeBounds(start, end)

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(slugs)), ", ")
	query := s.rebind(fmt.Sprintf(`
		SELECT d.name, a.username, c.name, c.avatar_url, SUM(a.points), COUNT(*)
		FROM activities a
		JOIN activity_definitions d ON d.slug = a.definition_slug
		LEFT JOIN contributors c ON c.username = a.username
		WHERE a.points IS NOT NULL AND a.points > 0 AND a.occured_at >= ? AND a.occured_at < ? AND d.slug IN (%s)
		GROUP BY d.name, a.username, c.name, c.avatar_url`, placeholders))

	args := make([]any, 0, len(slugs)+2)
	args = append(args, lo, hi)
	for _, slug := range slugs {
		args = append(args, slug)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("top contributors query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var defName, username string
		var name, avatar sql.NullString
		var points int64
		var count int
		if err := rows.Scan(&defName, &username, &name, &avatar, &points, &count); err != nil {
			return nil, fmt.Errorf("top contributors scan failed: %w", err)
		}
		result[defName] = append(result[defName], schema.TopContributorEntry{
			Username:  username,
			Name:      nullString(name),
			AvatarURL: nullString(avatar),
			Points:    points,
			Count:     count,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("top contributors rows failed: %w", err)
	}

	// Rank each type: points desc, then event count desc, then username asc.
	for _, list := range result {
		sort.Slice(list, func(i, j int) bool {
			if list[i].Points != list[j].Points {
				return list[i].Points > list[j].Points
			}
			if list[i].Count != list[j].Count {
				return list[i].Count > list[j].Count
			}
			return list[i].Username < list[j].Username
		})
	}
	return result, nil
}

// ContributorProfile returns the full profile for a username. An unknown
// username yields an empty profile with a nil contributor; callers branch
// on that field, never on an error.
func (s *Store) ContributorProfile(ctx context.Context, username string) (schema.ContributorProfile, error) {
	profile := schema.ContributorProfile{
		Activities:     []schema.ProfileActivity{},
		ActivityByDate: map[string]int{},
	}

	contributor, err := s.getContributor(ctx, username)
	if err != nil {
		return profile, err
	}
	if contributor == nil {
		return profile, nil
	}
	profile.Contributor = contributor

	query := s.rebind(`
		SELECT a.slug, a.username, a.definition_slug, a.title, a.occured_at, a.link, a.body, a.points, a.meta,
		       d.name, d.description, d.points, d.icon
		FROM activities a
		JOIN activity_definitions d ON d.slug = a.definition_slug
		WHERE a.username = ?
		ORDER BY a.occured_at DESC, a.slug ASC`)

	rows, err := s.db.QueryContext(ctx, query, username)
	if err != nil {
		return profile, fmt.Errorf("profile activities query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		activity, defName, defDesc, defPoints, defIcon, err := scanProfileActivity(rows)
		if err != nil {
			return profile, err
		}

		profile.Activities = append(profile.Activities, schema.ProfileActivity{
			Activity:              activity,
			DefinitionName:        defName,
			DefinitionDescription: defDesc,
			DefinitionPoints:      defPoints,
			DefinitionIcon:        defIcon,
		})
		if activity.Points != nil && *activity.Points > 0 {
			profile.TotalPoints += *activity.Points
		}
		profile.ActivityByDate[schema.DayKey(activity.OccuredAt)]++
	}
	if err := rows.Err(); err != nil {
		return profile, fmt.Errorf("profile activities rows failed: %w", err)
	}
	return profile, nil
}

// scanProfileActivity scans one joined activity/definition row.
func scanProfileActivity(rows *sql.Rows) (schema.Activity, string, *string, *int64, *string, error) {
	var a schema.Activity
	var title, link, body, meta sql.NullString
	var points sql.NullInt64
	var occuredAt int64
	var defName string
	var defDesc, defIcon sql.NullString
	var defPoints sql.NullInt64

	if err := rows.Scan(&a.Slug, &a.Username, &a.DefinitionSlug, &title, &occuredAt, &link, &body, &points, &meta,
		&defName, &defDesc, &defPoints, &defIcon); err != nil {
		return a, "", nil, nil, nil, fmt.Errorf("profile activity scan failed: %w", err)
	}

	a.Title = nullString(title)
	a.OccuredAt = time.Unix(occuredAt, 0).UTC()
	a.Link = nullString(link)
	a.Body = nullString(body)
	a.Points = nullInt64(points)
	metaMap, err := unmarshalJSONMap(meta)
	if err != nil {
		return a, "", nil, nil, nil, fmt.Errorf("failed to decode meta for %s: %w", a.Slug, err)
	}
	a.Meta = metaMap

	return a, defName, nullString(defDesc), nullInt64(defPoints), nullString(defIcon), nil
}

// getContributor fetches one contributor row, or nil if absent.
func (s *Store) getContributor(ctx context.Context, username string) (*schema.Contributor, error) {
	query := s.rebind(`
		SELECT username, name, avatar_url, role, bio, social_links, meta
		FROM contributors WHERE username = ?`)

	var c schema.Contributor
	var name, avatar, role, bio, social, meta sql.NullString
	err := s.db.QueryRowContext(ctx, query, username).Scan(&c.Username, &name, &avatar, &role, &bio, &social, &meta)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("contributor query failed: %w", err)
	}

	c.Name = nullString(name)
	c.AvatarURL = nullString(avatar)
	c.Role = nullString(role)
	c.Bio = nullString(bio)
	if c.SocialLinks, err = unmarshalJSONMap(social); err != nil {
		return nil, fmt.Errorf("failed to decode social links for %s: %w", username, err)
	}
	if c.Meta, err = unmarshalJSONMap(meta); err != nil {
		return nil, fmt.Errorf("failed to decode meta for %s: %w", username, err)
	}
	return &c, nil
}

// RecentActivitiesGroupedByType returns one group per activity type with
// activity inside the lookback window, enriched with contributor display
// data at query time. Groups are ordered by definition slug ascending;
// activities within a group descend by occurrence time.
func (s *Store) RecentActivitiesGroupedByType(ctx context.Context, days int) ([]schema.ActivityGroup, error) {
	cutoff := time.Now().UTC().Add(-time.Duration(days) * 24 * time.Hour).Unix()

	query := s.rebind(`
		SELECT d.slug, d.name, d.description, d.points, d.icon,
		       a.slug, a.username, a.definition_slug, a.title, a.occured_at, a.link, a.body, a.points,
		       c.name, c.avatar_url, c.role
		FROM activities a
		JOIN activity_definitions d ON d.slug = a.definition_slug
		LEFT JOIN contributors c ON c.username = a.username
		WHERE a.occured_at >= ?
		ORDER BY d.slug ASC, a.occured_at DESC, a.slug ASC`)

	rows, err := s.db.QueryContext(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("recent activities query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var groups []schema.ActivityGroup
	for rows.Next() {
		var def schema.ActivityDefinition
		var defDesc, defIcon sql.NullString
		var defPoints sql.NullInt64
		var a schema.Activity
		var title, link, body sql.NullString
		var points sql.NullInt64
		var occuredAt int64
		var cName, cAvatar, cRole sql.NullString

		if err := rows.Scan(&def.Slug, &def.Name, &defDesc, &defPoints, &defIcon,
			&a.Slug, &a.Username, &a.DefinitionSlug, &title, &occuredAt, &link, &body, &points,
			&cName, &cAvatar, &cRole); err != nil {
			return nil, fmt.Errorf("recent activities scan failed: %w", err)
		}

		def.Description = nullString(defDesc)
		def.Points = nullInt64(defPoints)
		def.Icon = nullString(defIcon)
		a.Title = nullString(title)
		a.OccuredAt = time.Unix(occuredAt, 0).UTC()
		a.Link = nullString(link)
		a.Body = nullString(body)
		a.Points = nullInt64(points)

		// Rows arrive ordered by definition slug, so groups form sequentially.
		if len(groups) == 0 || groups[len(groups)-1].Definition.Slug != def.Slug {
			groups = append(groups, schema.ActivityGroup{Definition: def})
		}
		group := &groups[len(groups)-1]
		group.Activities = append(group.Activities, schema.GroupedActivity{
			Activity:          a,
			ContributorName:   nullString(cName),
			ContributorAvatar: nullString(cAvatar),
			ContributorRole:   nullString(cRole),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("recent activities rows failed: %w", err)
	}
	return groups, nil
}

// ContributorsWithAvatars returns every contributor whose role is not
// hidden, with an all-time positive-points total, ordered by username for
// deterministic output. Contributors with no role are always included.
func (s *Store) ContributorsWithAvatars(ctx context.Context, hiddenRoles []string) ([]schema.ContributorWithAvatar, error) {
	query := `
		SELECT c.username, c.name, c.avatar_url, c.role,
		       COALESCE((SELECT SUM(a.points) FROM activities a WHERE a.username = c.username AND a.points > 0), 0)
		FROM contributors c
		ORDER BY c.username ASC`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("contributors query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	hidden := make(map[string]struct{}, len(hiddenRoles))
	for _, role := range hiddenRoles {
		hidden[role] = struct{}{}
	}

	var result []schema.ContributorWithAvatar
	for rows.Next() {
		var c schema.ContributorWithAvatar
		var name, avatar, role sql.NullString
		if err := rows.Scan(&c.Username, &name, &avatar, &role, &c.TotalPoints); err != nil {
			return nil, fmt.Errorf("contributors scan failed: %w", err)
		}
		if role.Valid {
			if _, ok := hidden[role.String]; ok {
				continue
			}
		}
		c.Name = nullString(name)
		c.AvatarURL = nullString(avatar)
		c.Role = nullString(role)
		result = append(result, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("contributors rows failed: %w", err)
	}
	return result, nil
}

// Usernames returns all contributor usernames, sorted.
func (s *Store) Usernames(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT username FROM contributors ORDER BY username ASC`)
	if err != nil {
		return nil, fmt.Errorf("usernames query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var usernames []string
	for rows.Next() {
		var u string
		if err := rows.Scan(&u); err != nil {
			return nil, fmt.Errorf("usernames scan failed: %w", err)
		}
		usernames = append(usernames, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("usernames rows failed: %w", err)
	}
	return usernames, nil
}

// ActivityDefinitions returns the full catalog, ordered by slug.
func (s *Store) ActivityDefinitions(ctx context.Context) ([]schema.ActivityDefinition, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT slug, name, description, points, icon FROM activity_definitions ORDER BY slug ASC`)
	if err != nil {
		return nil, fmt.Errorf("activity definitions query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var defs []schema.ActivityDefinition
	for rows.Next() {
		var d schema.ActivityDefinition
		var desc, icon sql.NullString
		var points sql.NullInt64
		if err := rows.Scan(&d.Slug, &d.Name, &desc, &points, &icon); err != nil {
			return nil, fmt.Errorf("activity definitions scan failed: %w", err)
		}
		d.Description = nullString(desc)
		d.Points = nullInt64(points)
		d.Icon = nullString(icon)
		defs = append(defs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("activity definitions rows failed: %w", err)
	}
	return defs, nil
}
