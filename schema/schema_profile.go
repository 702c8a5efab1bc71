package schema

// ProfileActivity is an activity annotated with its definition's display
// metadata for timeline rendering.
type ProfileActivity struct {
	Activity
	DefinitionName        string  `json:"definition_name"`
	DefinitionDescription *string `json:"definition_description,omitempty"`
	DefinitionPoints      *int64  `json:"definition_points,omitempty"`
	DefinitionIcon        *string `json:"definition_icon,omitempty"`
}

// ContributorProfile is a contributor joined with their full timeline.
// A missing contributor is represented by a nil Contributor field with
// empty collections, never by an error.
type ContributorProfile struct {
	Contributor    *Contributor      `json:"contributor"`
	Activities     []ProfileActivity `json:"activities"`
	TotalPoints    int64             `json:"totalPoints"`
	ActivityByDate map[string]int    `json:"activityByDate"` // YYYY-MM-DD -> event count
}

// ContributorWithAvatar is one roster row with an all-time points figure.
type ContributorWithAvatar struct {
	Username    string  `json:"username"`
	Name        *string `json:"name,omitempty"`
	AvatarURL   *string `json:"avatar_url,omitempty"`
	Role        *string `json:"role,omitempty"`
	TotalPoints int64   `json:"total_points"`
}

// GroupedActivity is an activity enriched with contributor display data,
// resolved at query time so renderers never look contributors up lazily.
type GroupedActivity struct {
	Activity
	ContributorName   *string `json:"contributor_name,omitempty"`
	ContributorAvatar *string `json:"contributor_avatar,omitempty"`
	ContributorRole   *string `json:"contributor_role,omitempty"`
}

// ActivityGroup is one activity type's slice of a recent-activity feed.
type ActivityGroup struct {
	Definition ActivityDefinition `json:"definition"`
	Activities []GroupedActivity  `json:"activities"`
}
