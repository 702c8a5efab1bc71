package schema

// ActivityStat is the per-type slice of a contributor's activity in a range.
type ActivityStat struct {
	Count  int   `json:"count"`
	Points int64 `json:"points"`
}

// DailyCount is one day of a contributor's activity series.
type DailyCount struct {
	Date   string `json:"date"` // YYYY-MM-DD
	Count  int    `json:"count"`
	Points int64  `json:"points"`
}

// LeaderboardEntry is the per-contributor aggregate for a date range.
// Entries carry no rank; ranking is applied by the caller.
//
// Invariants: TotalPoints equals the sum of ActivityBreakdown points, and
// DailyActivity is an unbroken ascending day sequence covering the full
// range, zero-filled for days without activity.
type LeaderboardEntry struct {
	Username          string                  `json:"username"`
	Name              *string                 `json:"name,omitempty"`
	AvatarURL         *string                 `json:"avatar_url,omitempty"`
	Role              *string                 `json:"role,omitempty"`
	TotalPoints       int64                   `json:"total_points"`
	ActivityBreakdown map[string]ActivityStat `json:"activity_breakdown"`
	DailyActivity     []DailyCount            `json:"daily_activity"`
}

// TopContributorEntry ranks one contributor within a single activity type.
type TopContributorEntry struct {
	Username  string  `json:"username"`
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Points    int64   `json:"points"`
	Count     int     `json:"count"`
}

// TopContributorsByActivity maps activity-definition display names to their
// ranked contributors. A key is present only if it has at least one entry.
type TopContributorsByActivity map[string][]TopContributorEntry

// LeaderboardSnapshot is the exported shape of one period's leaderboard.
type LeaderboardSnapshot struct {
	Entries       []LeaderboardEntry        `json:"entries"`
	TopByActivity TopContributorsByActivity `json:"topByActivity"`
	StartDate     string                    `json:"startDate"` // YYYY-MM-DD
	EndDate       string                    `json:"endDate"`   // YYYY-MM-DD
}
