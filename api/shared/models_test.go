/* models_test.go
 * Contains unit tests for the shared game outcome and pick helpers
 * AI-Generated
 */

package shared

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// region Outcome tests
func TestOutcome_NotFinal(t *testing.T) {
	game := Game{GameID: "g1", AwayTeam: "Green Bay Packers", HomeTeam: "Chicago Bears", Status: StatusScheduled}
	assert.Equal(t, Outcome{}, game.Outcome())

	game.Status = StatusInProgress
	game.AwayScore = 14
	game.HomeScore = 7
	assert.Equal(t, Outcome{}, game.Outcome())
}

func TestOutcome_AwayWin(t *testing.T) {
	game := Game{
		AwayTeam:  "Green Bay Packers",
		HomeTeam:  "Chicago Bears",
		Status:    StatusFinal,
		AwayScore: 24,
		HomeScore: 17,
		Winner:    "Green Bay Packers",
	}

	outcome := game.Outcome()
	assert.True(t, outcome.Final)
	assert.False(t, outcome.Tie)
	assert.Equal(t, "Green Bay Packers", outcome.Winner)
	assert.False(t, outcome.Discrepancy)
}

func TestOutcome_HomeWin(t *testing.T) {
	game := Game{
		AwayTeam:  "Dallas Cowboys",
		HomeTeam:  "New York Giants",
		Status:    StatusFinal,
		AwayScore: 10,
		HomeScore: 20,
	}

	outcome := game.Outcome()
	assert.True(t, outcome.Final)
	assert.Equal(t, "New York Giants", outcome.Winner)
	assert.False(t, outcome.Discrepancy)
}

func TestOutcome_WinnerFieldDisagreesWithScores(t *testing.T) {
	game := Game{
		AwayTeam:  "Green Bay Packers",
		HomeTeam:  "Chicago Bears",
		Status:    StatusFinal,
		AwayScore: 24,
		HomeScore: 17,
		Winner:    "Chicago Bears",
	}

	// The score fields win the argument, but the disagreement is reported
	outcome := game.Outcome()
	assert.Equal(t, "Green Bay Packers", outcome.Winner)
	assert.True(t, outcome.Discrepancy)
}

func TestOutcome_Tie(t *testing.T) {
	game := Game{
		AwayTeam:  "Green Bay Packers",
		HomeTeam:  "Chicago Bears",
		Status:    StatusFinal,
		AwayScore: 20,
		HomeScore: 20,
		Winner:    TieSentinel,
	}

	outcome := game.Outcome()
	assert.True(t, outcome.Tie)
	assert.Equal(t, "", outcome.Winner)
	assert.False(t, outcome.Discrepancy)
}

func TestOutcome_TieWithoutSentinel(t *testing.T) {
	game := Game{
		AwayTeam:  "Green Bay Packers",
		HomeTeam:  "Chicago Bears",
		Status:    StatusFinal,
		AwayScore: 20,
		HomeScore: 20,
		Winner:    "Green Bay Packers",
	}

	outcome := game.Outcome()
	assert.True(t, outcome.Tie)
	assert.True(t, outcome.Discrepancy)
}

func TestOutcome_ScorelessFinalTrustsWinnerField(t *testing.T) {
	// 0-0 means the score feed never populated; the winner field is the
	// only evidence and must not be overridden by comparing zeros
	game := Game{
		AwayTeam: "Green Bay Packers",
		HomeTeam: "Chicago Bears",
		Status:   StatusFinal,
		Winner:   "Green Bay Packers",
	}

	outcome := game.Outcome()
	assert.True(t, outcome.Final)
	assert.False(t, outcome.Tie)
	assert.Equal(t, "Green Bay Packers", outcome.Winner)
	assert.False(t, outcome.Discrepancy)
}

func TestOutcome_ScorelessFinalWithTieSentinel(t *testing.T) {
	game := Game{
		AwayTeam: "Green Bay Packers",
		HomeTeam: "Chicago Bears",
		Status:   StatusFinal,
		Winner:   TieSentinel,
	}

	outcome := game.Outcome()
	assert.True(t, outcome.Final)
	assert.True(t, outcome.Tie)
	assert.False(t, outcome.Discrepancy)
}

func TestOutcome_ScorelessFinalWithoutWinnerIsUndecided(t *testing.T) {
	game := Game{
		AwayTeam: "Green Bay Packers",
		HomeTeam: "Chicago Bears",
		Status:   StatusFinal,
	}

	assert.Equal(t, Outcome{}, game.Outcome())
}

// endregion

// region HasKickedOff tests
func TestHasKickedOff(t *testing.T) {
	now := time.Now()

	past := Game{Kickoff: now.Add(-time.Hour).Unix()}
	assert.True(t, past.HasKickedOff(now))

	future := Game{Kickoff: now.Add(time.Hour).Unix()}
	assert.False(t, future.HasKickedOff(now))

	exact := Game{Kickoff: now.Unix()}
	assert.True(t, exact.HasKickedOff(now))

	unscheduled := Game{}
	assert.False(t, unscheduled.HasKickedOff(now))
}

// endregion

// region Pick tests
func TestPickValid(t *testing.T) {
	valid := Pick{GameID: "g1", Team: "Green Bay Packers", Confidence: Confidence(5)}
	assert.True(t, valid.Valid())

	zeroConfidence := Pick{GameID: "g1", Team: "Green Bay Packers", Confidence: Confidence(0)}
	assert.True(t, zeroConfidence.Valid())

	noConfidence := Pick{GameID: "g1", Team: "Green Bay Packers"}
	assert.False(t, noConfidence.Valid())

	noTeam := Pick{GameID: "g1", Confidence: Confidence(5)}
	assert.False(t, noTeam.Valid())
}

// endregion
