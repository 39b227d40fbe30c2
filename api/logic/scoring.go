/* scoring.go
 * Contains the logic for scoring a user's confidence picks against a week's game results
 * Authors: Zachary Bower
 */

package logic

import (
	"fmt"
	"math"
	"pool-bot/api/shared"
	"sort"
	"strings"
)

// Discrepancy flags a game whose stored winner string disagrees with its
// score fields. The scores win; the flag exists so the corrupt document
// can be audited later.
type Discrepancy struct {
	GameID string
	Winner string
	Away   int
	Home   int
}

func (d Discrepancy) String() string {
	return fmt.Sprintf("game %s: winner %q disagrees with score %d-%d", d.GameID, d.Winner, d.Away, d.Home)
}

// ScoreWeek calculates one user's weekly confidence score.
// Preconditions: Receives the week's game map (gameid -> Game) and the user's pick map (gameid -> Pick)
// Postconditions: Returns the WeeklyScore, any winner/score discrepancies found, and a per-pick report string
func ScoreWeek(week int, games map[string]shared.Game, picks map[string]shared.Pick) (shared.WeeklyScore, []Discrepancy, string) {
	score := shared.WeeklyScore{Week: week}
	var flags []Discrepancy
	var report strings.Builder

	// Report lines in a stable order so repeated runs produce identical output
	ids := make([]string, 0, len(picks))
	for id := range picks {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		pick := picks[id]
		// Malformed picks are excluded from both correct and total counts
		if !pick.Valid() {
			report.WriteString(fmt.Sprintf("%s: %s [Malformed]\n", id, pick.Team))
			continue
		}
		score.TotalPicks++

		game, ok := games[id]
		if !ok {
			// Game absent from the results map: treated as not yet decided
			report.WriteString(fmt.Sprintf("%s: %s (%d) [Pending]\n", id, pick.Team, *pick.Confidence))
			continue
		}

		outcome := game.Outcome()
		if outcome.Discrepancy {
			flags = append(flags, Discrepancy{
				GameID: game.GameID,
				Winner: game.Winner,
				Away:   game.AwayScore,
				Home:   game.HomeScore,
			})
		}
		if !outcome.Final {
			report.WriteString(fmt.Sprintf("%s: %s (%d) [Pending]\n", id, pick.Team, *pick.Confidence))
			continue
		}

		// Ties credit every picker: neither team lost
		if outcome.Tie || pick.Team == outcome.Winner {
			score.CorrectPicks++
			score.TotalPoints += *pick.Confidence
			report.WriteString(fmt.Sprintf("%s: %s (%d) [Correct]\n", id, pick.Team, *pick.Confidence))
		} else {
			report.WriteString(fmt.Sprintf("%s: %s (%d) [Incorrect]\n", id, pick.Team, *pick.Confidence))
		}
	}

	score.Accuracy = accuracy(score.CorrectPicks, score.TotalPicks)
	return score, flags, report.String()
}

// accuracy returns correct/total as a percentage rounded to two decimal
// places, or 0 when there were no pick attempts.
func accuracy(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(correct)/float64(total)*10000) / 100
}
