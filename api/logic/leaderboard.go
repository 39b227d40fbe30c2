/* leaderboard.go
 * Contains the logic for ranking weekly and season confidence scores
 * Authors: Zachary Bower
 */

package logic

import (
	"pool-bot/api/shared"
	"pool-bot/api/store"
	"sort"
)

// BuildLeaderboard ranks one week's scores across the pool.
// Preconditions: Receives the pool member map (userid -> Member) and that week's scores keyed by userid
// Postconditions: Returns entries ranked highest points first; members with no score appear with 0 points,
// scores for users absent from the member map are skipped
func BuildLeaderboard(members map[string]shared.Member, scores map[string]shared.WeeklyScore) []store.LeaderboardEntry {
	entries := make([]store.LeaderboardEntry, 0, len(members))
	for id, member := range members {
		if !member.Confidence {
			continue
		}
		entry := store.LeaderboardEntry{UserID: id, Username: member.DisplayName}
		// A member with no score for the week contributes 0, never excluded
		if score, ok := scores[id]; ok {
			entry.Points = score.TotalPoints
			entry.Correct = score.CorrectPicks
			entry.Total = score.TotalPicks
		}
		entries = append(entries, entry)
	}

	rank(entries)
	return entries
}

// BuildSeasonLeaderboard ranks season-cumulative totals across the pool.
// Preconditions: Receives the pool member map and every week's scores (week -> userid -> score)
// Postconditions: Returns entries ranked by summed points; a user absent from a given week
// contributes exactly 0 for that week
func BuildSeasonLeaderboard(members map[string]shared.Member, weeks map[int]map[string]shared.WeeklyScore) []store.LeaderboardEntry {
	totals := make(map[string]store.LeaderboardEntry, len(members))
	for id, member := range members {
		if !member.Confidence {
			continue
		}
		totals[id] = store.LeaderboardEntry{UserID: id, Username: member.DisplayName}
	}

	for _, scores := range weeks {
		for id, score := range scores {
			entry, ok := totals[id]
			if !ok {
				// Score references a user no longer in the member list;
				// skipped here, the document itself is left for audit
				continue
			}
			entry.Points += score.TotalPoints
			entry.Correct += score.CorrectPicks
			entry.Total += score.TotalPicks
			totals[id] = entry
		}
	}

	entries := make([]store.LeaderboardEntry, 0, len(totals))
	for _, entry := range totals {
		entries = append(entries, entry)
	}

	rank(entries)
	return entries
}

// rank sorts entries highest points first and assigns competition ranks:
// equal totals share a rank and the next distinct total gets rank equal to
// its position (120, 120, 95 ranks as 1, 1, 3). Equal totals order by
// ascending user id so repeated runs produce identical output.
func rank(entries []store.LeaderboardEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID < entries[j].UserID
	})

	for i := range entries {
		if i > 0 && entries[i].Points == entries[i-1].Points {
			entries[i].Rank = entries[i-1].Rank
		} else {
			entries[i].Rank = i + 1
		}
	}
}
