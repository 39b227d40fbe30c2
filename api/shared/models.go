/* models.go
 * This file contains the structs and helper functions that are shared between sub packages
 * Authors: Zachary Bower
 */

package shared

import "time"

// TieSentinel is the winner value stored for a game that finished level.
const TieSentinel = "TIE"

// Game status values as stored in the games collection.
const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in-progress"
	StatusFinal      = "final"
)

type User struct {
	UserID   string
	Username string
}

// Member is a pool member identity record. Confidence and Survivor flag
// which pools the member is enrolled in.
type Member struct {
	UserID      string `bson:"userid,omitempty"`
	DisplayName string `bson:"display_name,omitempty"`
	Email       string `bson:"email,omitempty"`
	Confidence  bool   `bson:"confidence"`
	Survivor    bool   `bson:"survivor"`
}

// Game is one scheduled contest for a given week. Winner is a team name,
// TieSentinel, or empty while the game is not final.
type Game struct {
	GameID    string `bson:"gameid,omitempty"`
	AwayTeam  string `bson:"away_team,omitempty"`
	HomeTeam  string `bson:"home_team,omitempty"`
	Kickoff   int64  `bson:"kickoff,omitempty"`
	Status    string `bson:"status,omitempty"`
	AwayScore int    `bson:"away_score"`
	HomeScore int    `bson:"home_score"`
	Winner    string `bson:"winner,omitempty"`
}

// Outcome is the resolved result of a game. Discrepancy is set when the
// denormalized winner string disagrees with the score fields; the scores
// are authoritative in that case.
type Outcome struct {
	Final       bool
	Tie         bool
	Winner      string
	Discrepancy bool
}

// Outcome resolves a game's result from its score fields. The stored
// winner string is only trusted when it agrees with the scores, or when
// the scores are both zero and carry no information of their own.
func (g Game) Outcome() Outcome {
	if g.Status != StatusFinal {
		return Outcome{}
	}

	// A scoreless final means the score feed never populated; the winner
	// string is the only evidence, so trust it rather than comparing zeros.
	// With no winner recorded either, the result stays undecided
	if g.AwayScore == 0 && g.HomeScore == 0 {
		if g.Winner == "" {
			return Outcome{}
		}
		if g.Winner == TieSentinel {
			return Outcome{Final: true, Tie: true}
		}
		return Outcome{Final: true, Winner: g.Winner}
	}

	if g.AwayScore == g.HomeScore {
		return Outcome{
			Final:       true,
			Tie:         true,
			Discrepancy: g.Winner != TieSentinel,
		}
	}

	var winner string
	if g.AwayScore > g.HomeScore {
		winner = g.AwayTeam
	} else {
		winner = g.HomeTeam
	}

	return Outcome{
		Final:       true,
		Winner:      winner,
		Discrepancy: g.Winner != "" && g.Winner != winner,
	}
}

// HasKickedOff reports whether the game is locked for pick changes.
func (g Game) HasKickedOff(now time.Time) bool {
	return g.Kickoff > 0 && g.Kickoff <= now.Unix()
}

// Pick is one user's choice for one game in one week. Confidence is nil
// when the pick was stored without a confidence value; zero is a real
// (if corrupt) value and still counts as a pick attempt.
type Pick struct {
	GameID     string `bson:"gameid,omitempty"`
	Team       string `bson:"team,omitempty"`
	Confidence *int   `bson:"confidence,omitempty"`
}

// Valid reports whether the pick counts as a pick attempt: it names a team
// and carries a confidence value.
func (p Pick) Valid() bool {
	return p.Team != "" && p.Confidence != nil
}

// SurvivorPick is one week's survivor choice. There is no confidence
// value; the pick history is ordered by week.
type SurvivorPick struct {
	Week int    `bson:"week"`
	Team string `bson:"team,omitempty"`
}

// WeeklyScore is the derived confidence result for one user and week.
// Safe to overwrite: recomputing from the same inputs yields the same
// values.
type WeeklyScore struct {
	UserID       string    `bson:"userid,omitempty"`
	Week         int       `bson:"week"`
	TotalPoints  int       `bson:"total_points"`
	CorrectPicks int       `bson:"correct_picks"`
	TotalPicks   int       `bson:"total_picks"`
	Accuracy     float64   `bson:"accuracy"`
	CalculatedAt time.Time `bson:"calculated_at,omitempty"`
}

// Elimination reasons recorded on a survivor record.
const (
	ReasonNoPick    = "no_pick"
	ReasonTeamReuse = "team_reuse"
	ReasonLost      = "lost"
)

// SurvivorRecord is the derived longitudinal survivor state for one user.
// EliminatedWeek is 0 while the user is alive.
type SurvivorRecord struct {
	UserID         string         `bson:"userid,omitempty"`
	Alive          bool           `bson:"alive"`
	EliminatedWeek int            `bson:"eliminated_week,omitempty"`
	Reason         string         `bson:"reason,omitempty"`
	PickHistory    []SurvivorPick `bson:"pick_history,omitempty"`
}

// Confidence is a convenience for building *int confidence values in
// literals and tests.
func Confidence(v int) *int {
	return &v
}
