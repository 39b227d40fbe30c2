/* models.go
 * This file contains the wire shapes returned by the results provider and their
 * normalization into the shapes the rest of the system consumes
 * Authors: Zachary Bower
 */

package external

import (
	"fmt"
	"pool-bot/api/shared"
	"sort"
	"strings"
)

// Top level shape of the provider's weekly schedule response
type ScheduleResponse struct {
	Season int     `json:"season"`
	Week   int     `json:"week"`
	Events []Event `json:"events"`
}

// One game as the provider reports it. Scores are present (possibly 0) even
// for games that have not started, so Status is the only source of truth for
// whether a game has finished
type Event struct {
	ID        string `json:"id"`
	AwayTeam  string `json:"away_team"`
	HomeTeam  string `json:"home_team"`
	Kickoff   int64  `json:"kickoff"`
	Status    string `json:"status"`
	AwayScore int    `json:"away_score"`
	HomeScore int    `json:"home_score"`
	Winner    string `json:"winner"`
}

// NormalizeEvents converts provider events into the internal game shape
// Preconditions: Receives the slice of events decoded from a schedule response
// Postconditions: Returns games sorted by kickoff time, or an error if an event is missing its id or a team name
func NormalizeEvents(events []Event) ([]shared.Game, error) {
	games := make([]shared.Game, 0, len(events))
	for _, event := range events {
		if event.ID == "" {
			return nil, fmt.Errorf("provider event has no id")
		}
		if event.AwayTeam == "" || event.HomeTeam == "" {
			return nil, fmt.Errorf("provider event %s is missing a team name", event.ID)
		}

		games = append(games, shared.Game{
			GameID:    event.ID,
			AwayTeam:  strings.TrimSpace(event.AwayTeam),
			HomeTeam:  strings.TrimSpace(event.HomeTeam),
			Kickoff:   event.Kickoff,
			Status:    normalizeStatus(event.Status),
			AwayScore: event.AwayScore,
			HomeScore: event.HomeScore,
			Winner:    strings.TrimSpace(event.Winner),
		})
	}

	// Sort slice by epoch time
	sort.Slice(games, func(i, j int) bool {
		return games[i].Kickoff < games[j].Kickoff
	})

	return games, nil
}

// normalizeStatus maps the provider's status vocabulary onto the three states
// the scorer understands. Anything unrecognised is treated as scheduled so a
// provider quirk can never mark a game final early
func normalizeStatus(status string) string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case "final", "complete", "closed":
		return shared.StatusFinal
	case "in_progress", "inprogress", "live", "halftime":
		return shared.StatusInProgress
	default:
		return shared.StatusScheduled
	}
}
