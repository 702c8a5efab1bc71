// Package schema defines the shared data model for contriboard.
package schema

import "time"

// Contributor is a person tracked by username.
// Optional columns map to pointer fields so that "absent" stays distinct
// from "empty" across the serialization boundary.
type Contributor struct {
	Username    string            `json:"username"`
	Name        *string           `json:"name,omitempty"`
	AvatarURL   *string           `json:"avatar_url,omitempty"`
	Role        *string           `json:"role,omitempty"`
	Bio         *string           `json:"bio,omitempty"`
	SocialLinks map[string]string `json:"social_links,omitempty"`
	Meta        map[string]string `json:"meta,omitempty"`
}

// DisplayName returns the display name, falling back to the username.
func (c *Contributor) DisplayName() string {
	if c.Name != nil && *c.Name != "" {
		return *c.Name
	}
	return c.Username
}

// Activity is a single attributed event. The slug doubles as the
// idempotency key for ingestion; rows are immutable once created.
type Activity struct {
	Slug           string            `json:"slug"`
	Username       string            `json:"username"`
	DefinitionSlug string            `json:"definition_slug"`
	Title          *string           `json:"title,omitempty"`
	OccuredAt      time.Time         `json:"occured_at"`
	Link           *string           `json:"link,omitempty"`
	Body           *string           `json:"body,omitempty"`
	Points         *int64            `json:"points,omitempty"`
	Meta           map[string]string `json:"meta,omitempty"`
}

// ActivityDefinition is the catalog entry for an activity type.
type ActivityDefinition struct {
	Slug        string  `json:"slug"`
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
	Points      *int64  `json:"points,omitempty"`
	Icon        *string `json:"icon,omitempty"`
}
