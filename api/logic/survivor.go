/* survivor.go
 * Contains the logic for evaluating a user's survivor pool status week by week
 * Authors: Zachary Bower
 */

package logic

import (
	"pool-bot/api/shared"
	"sort"
)

// EvaluateSurvivor walks a user's survivor pick history in week order and
// determines whether they are still alive.
// Preconditions: Receives the pick history, a map of week number -> that week's game map, and the current week
// Postconditions: Returns a SurvivorRecord; elimination is decided at the first triggering week and later weeks are ignored
func EvaluateSurvivor(history []shared.SurvivorPick, weekGames map[int]map[string]shared.Game, currentWeek int) shared.SurvivorRecord {
	record := shared.SurvivorRecord{Alive: true}

	// Index picks by week; the stored history is already week ordered but
	// sorting here keeps the evaluation independent of storage order
	byWeek := make(map[int]shared.SurvivorPick, len(history))
	for _, pick := range history {
		byWeek[pick.Week] = pick
		record.PickHistory = append(record.PickHistory, pick)
	}
	sort.Slice(record.PickHistory, func(i, j int) bool {
		return record.PickHistory[i].Week < record.PickHistory[j].Week
	})

	used := make(map[string]bool)

	for week := 1; week <= currentWeek; week++ {
		pick, ok := byWeek[week]
		if !ok || pick.Team == "" {
			// A missed pick only eliminates once the week has started
			if weekStarted(weekGames[week]) {
				return eliminate(record, week, shared.ReasonNoPick)
			}
			continue
		}

		// Team reuse eliminates regardless of the game's outcome
		if used[pick.Team] {
			return eliminate(record, week, shared.ReasonTeamReuse)
		}
		used[pick.Team] = true

		// Each week's won/lost determination uses only that week's own
		// game map. Results from any other week must never reach back
		// into this decision.
		game, ok := FindGameForTeam(weekGames[week], pick.Team)
		if !ok {
			continue
		}

		outcome := game.Outcome()
		if !outcome.Final || outcome.Tie {
			continue
		}
		if outcome.Winner != pick.Team {
			return eliminate(record, week, shared.ReasonLost)
		}
	}

	return record
}

// eliminate marks the record as terminated at the given week. The
// transition is one-way; callers stop scanning once it fires.
func eliminate(record shared.SurvivorRecord, week int, reason string) shared.SurvivorRecord {
	record.Alive = false
	record.EliminatedWeek = week
	record.Reason = reason
	return record
}

// weekStarted reports whether any game in the week's map has kicked off or
// finished. An empty or missing game map means the week has not started.
func weekStarted(games map[string]shared.Game) bool {
	for _, game := range games {
		if game.Status == shared.StatusInProgress || game.Status == shared.StatusFinal {
			return true
		}
	}
	return false
}
