package core

import (
	"sort"

	"github.com/contriboard/contriboard/schema"
)

// RankLeaderboard sorts entries by total points in descending order. Ties
// break by username ascending so pagination and display stay deterministic.
// The store returns entries unordered; this is the single ranking point.
func RankLeaderboard(entries []schema.LeaderboardEntry) []schema.LeaderboardEntry {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].TotalPoints != entries[j].TotalPoints {
			return entries[i].TotalPoints > entries[j].TotalPoints
		}
		return entries[i].Username < entries[j].Username
	})
	return entries
}
