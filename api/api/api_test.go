/* api_test.go
 * Contains unit tests for api.go using the mock store and provider
 * AI-Generated
 */

package api

import (
	"context"
	"fmt"
	"testing"
	"time"

	"pool-bot/api/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestAPI creates an API wired to fresh mocks
func newTestAPI() (*API, *MockStore, *MockProvider) {
	mockStore := NewMockStore()
	mockProvider := &MockProvider{Games: make(map[int][]shared.Game)}
	return &API{Store: mockStore, Provider: mockProvider}, mockStore, mockProvider
}

// futureGames returns a two game slate that has not kicked off yet
func futureGames() []shared.Game {
	kickoff := time.Now().Add(24 * time.Hour).Unix()
	return []shared.Game{
		{GameID: "g1", AwayTeam: "Green Bay Packers", HomeTeam: "Chicago Bears", Kickoff: kickoff, Status: shared.StatusScheduled},
		{GameID: "g2", AwayTeam: "Dallas Cowboys", HomeTeam: "New York Giants", Kickoff: kickoff, Status: shared.StatusScheduled},
	}
}

// finishedGames returns the same slate fully played
func finishedGames() []shared.Game {
	kickoff := time.Now().Add(-24 * time.Hour).Unix()
	return []shared.Game{
		{GameID: "g1", AwayTeam: "Green Bay Packers", HomeTeam: "Chicago Bears", Kickoff: kickoff, Status: shared.StatusFinal, AwayScore: 24, HomeScore: 17, Winner: "Green Bay Packers"},
		{GameID: "g2", AwayTeam: "Dallas Cowboys", HomeTeam: "New York Giants", Kickoff: kickoff, Status: shared.StatusFinal, AwayScore: 10, HomeScore: 20, Winner: "New York Giants"},
	}
}

// region SyncWeek tests

func TestSyncWeek_Success(t *testing.T) {
	api, mockStore, mockProvider := newTestAPI()
	mockProvider.Games[3] = futureGames()

	err := api.SyncWeek(context.Background(), 3)
	require.NoError(t, err)

	games, err := mockStore.GetWeekGames(3)
	require.NoError(t, err)
	assert.Len(t, games, 2)
	assert.Equal(t, "Chicago Bears", games["g1"].HomeTeam)
}

func TestSyncWeek_ProviderError(t *testing.T) {
	api, _, mockProvider := newTestAPI()
	mockProvider.Err = fmt.Errorf("provider unavailable")

	err := api.SyncWeek(context.Background(), 3)
	assert.Error(t, err)
}

func TestSyncWeek_StoreError(t *testing.T) {
	api, mockStore, mockProvider := newTestAPI()
	mockProvider.Games[3] = futureGames()
	mockStore.StoreWeekGamesError = fmt.Errorf("db down")

	err := api.SyncWeek(context.Background(), 3)
	assert.Error(t, err)
}

// endregion

// region SetUserPicks tests

func TestSetUserPicks_Success(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(3, futureGames())

	user := shared.User{UserID: "user1", Username: "tester"}
	err := api.SetUserPicks(user, 3, []string{"Green Bay Packers", "Dallas Cowboys"})
	require.NoError(t, err)

	picks, err := mockStore.GetUserPicks("user1", 3)
	require.NoError(t, err)
	require.Len(t, picks, 2)
	// First listed team carries the highest confidence
	assert.Equal(t, 2, *picks["g1"].Confidence)
	assert.Equal(t, 1, *picks["g2"].Confidence)
}

func TestSetUserPicks_FuzzyNames(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(3, futureGames())

	user := shared.User{UserID: "user1", Username: "tester"}
	err := api.SetUserPicks(user, 3, []string{"green bay packers", "\"Dallas Cowboys\""})
	require.NoError(t, err)

	picks, err := mockStore.GetUserPicks("user1", 3)
	require.NoError(t, err)
	assert.Equal(t, "Green Bay Packers", picks["g1"].Team)
}

func TestSetUserPicks_WrongCount(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(3, futureGames())

	err := api.SetUserPicks(shared.User{UserID: "user1"}, 3, []string{"Green Bay Packers"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "expected 2 but got 1")
}

func TestSetUserPicks_InvalidTeam(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(3, futureGames())

	err := api.SetUserPicks(shared.User{UserID: "user1"}, 3, []string{"Springfield Isotopes", "Dallas Cowboys"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid")
}

func TestSetUserPicks_DuplicateTeam(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(3, futureGames())

	err := api.SetUserPicks(shared.User{UserID: "user1"}, 3, []string{"Green Bay Packers", "Green Bay Packers"})
	assert.Error(t, err)
}

func TestSetUserPicks_KickoffLock(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	games := futureGames()
	games[0].Kickoff = time.Now().Add(-time.Hour).Unix()
	mockStore.StoreWeekGames(3, games)

	err := api.SetUserPicks(shared.User{UserID: "user1"}, 3, []string{"Green Bay Packers", "Dallas Cowboys"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already kicked off")
}

func TestSetUserPicks_NoGamesStored(t *testing.T) {
	api, _, _ := newTestAPI()

	err := api.SetUserPicks(shared.User{UserID: "user1"}, 3, []string{"Green Bay Packers"})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sync the week first")
}

// endregion

func TestSetUserPicks_EnrollsMember(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(3, futureGames())

	user := shared.User{UserID: "user1", Username: "tester"}
	require.NoError(t, api.SetUserPicks(user, 3, []string{"Green Bay Packers", "Dallas Cowboys"}))

	member := mockStore.Members["user1"]
	assert.True(t, member.Confidence)
	assert.False(t, member.Survivor)
	assert.Equal(t, "tester", member.DisplayName)
}

func TestSetUserPicks_EnrollmentKeepsSurvivorFlag(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(3, futureGames())
	mockStore.Members["user1"] = shared.Member{UserID: "user1", DisplayName: "tester", Survivor: true}

	user := shared.User{UserID: "user1", Username: "tester"}
	require.NoError(t, api.SetUserPicks(user, 3, []string{"Green Bay Packers", "Dallas Cowboys"}))

	member := mockStore.Members["user1"]
	assert.True(t, member.Confidence)
	assert.True(t, member.Survivor)
}

// region SetSurvivorPick tests

func TestSetSurvivorPick_Success(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(3, futureGames())

	user := shared.User{UserID: "user1", Username: "tester"}
	err := api.SetSurvivorPick(user, 3, "Green Bay Packers")
	require.NoError(t, err)

	history, err := mockStore.GetSurvivorHistory("user1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, shared.SurvivorPick{Week: 3, Team: "Green Bay Packers"}, history[0])
}

func TestSetSurvivorPick_SameWeekReplace(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(3, futureGames())

	user := shared.User{UserID: "user1", Username: "tester"}
	require.NoError(t, api.SetSurvivorPick(user, 3, "Green Bay Packers"))
	require.NoError(t, api.SetSurvivorPick(user, 3, "Dallas Cowboys"))

	history, err := mockStore.GetSurvivorHistory("user1")
	require.NoError(t, err)
	require.Len(t, history, 1)
	assert.Equal(t, "Dallas Cowboys", history[0].Team)
}

func TestSetSurvivorPick_ReuseRejected(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(3, futureGames())
	mockStore.SurvivorPicks["user1"] = []shared.SurvivorPick{{Week: 1, Team: "Green Bay Packers"}}

	err := api.SetSurvivorPick(shared.User{UserID: "user1"}, 3, "Green Bay Packers")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already used in week 1")
}

func TestSetSurvivorPick_KickoffLock(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	games := futureGames()
	games[0].Kickoff = time.Now().Add(-time.Hour).Unix()
	mockStore.StoreWeekGames(3, games)

	err := api.SetSurvivorPick(shared.User{UserID: "user1"}, 3, "Green Bay Packers")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "already kicked off")
}

func TestSetSurvivorPick_InvalidTeam(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(3, futureGames())

	err := api.SetSurvivorPick(shared.User{UserID: "user1"}, 3, "Springfield Isotopes")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not a valid team name")
}

// endregion

// region ScoreWeek tests

func TestScoreWeek_Success(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(3, finishedGames())
	mockStore.Members["user1"] = shared.Member{UserID: "user1", DisplayName: "First User", Confidence: true}
	mockStore.Members["user2"] = shared.Member{UserID: "user2", DisplayName: "Second User", Confidence: true}
	mockStore.Picks["user1"] = map[int]map[string]shared.Pick{3: {
		"g1": {GameID: "g1", Team: "Green Bay Packers", Confidence: shared.Confidence(2)},
		"g2": {GameID: "g2", Team: "Dallas Cowboys", Confidence: shared.Confidence(1)},
	}}

	summary, err := api.ScoreWeek(3)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Scored)
	assert.Empty(t, summary.Flags)

	score := mockStore.Scores[3]["user1"]
	assert.Equal(t, 2, score.TotalPoints)
	assert.Equal(t, 1, score.CorrectPicks)
	assert.Equal(t, 2, score.TotalPicks)
	assert.Equal(t, 50.0, score.Accuracy)

	// Member with no submitted picks still gets a zero score row
	zero := mockStore.Scores[3]["user2"]
	assert.Equal(t, 0, zero.TotalPoints)
	assert.Equal(t, 0, zero.TotalPicks)
}

func TestScoreWeek_DiscrepancyFlagged(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	games := finishedGames()
	// Winner string contradicts the score; scores are authoritative
	games[0].Winner = "Chicago Bears"
	mockStore.StoreWeekGames(3, games)
	mockStore.Members["user1"] = shared.Member{UserID: "user1", Confidence: true}
	mockStore.Picks["user1"] = map[int]map[string]shared.Pick{3: {
		"g1": {GameID: "g1", Team: "Green Bay Packers", Confidence: shared.Confidence(1)},
	}}

	summary, err := api.ScoreWeek(3)
	require.NoError(t, err)
	require.Len(t, summary.Flags, 1)
	assert.Contains(t, summary.Flags[0], "g1")

	// The pick is still credited because the scores say the Packers won
	assert.Equal(t, 1, mockStore.Scores[3]["user1"].CorrectPicks)
}

func TestScoreWeek_NonConfidenceMemberSkipped(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(3, finishedGames())
	mockStore.Members["user1"] = shared.Member{UserID: "user1", Survivor: true}

	summary, err := api.ScoreWeek(3)
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Scored)
	assert.Empty(t, mockStore.Scores[3])
}

func TestScoreWeek_NoGamesStored(t *testing.T) {
	api, _, _ := newTestAPI()

	_, err := api.ScoreWeek(3)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sync the week first")
}

// endregion

// region EvaluateSurvivors tests

func TestEvaluateSurvivors_AliveAndEliminated(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(1, finishedGames())
	mockStore.Members["winner"] = shared.Member{UserID: "winner", Survivor: true}
	mockStore.Members["loser"] = shared.Member{UserID: "loser", Survivor: true}
	mockStore.SurvivorPicks["winner"] = []shared.SurvivorPick{{Week: 1, Team: "Green Bay Packers"}}
	mockStore.SurvivorPicks["loser"] = []shared.SurvivorPick{{Week: 1, Team: "Dallas Cowboys"}}

	err := api.EvaluateSurvivors(1)
	require.NoError(t, err)

	assert.True(t, mockStore.SurvivorRecords["winner"].Alive)
	record := mockStore.SurvivorRecords["loser"]
	assert.False(t, record.Alive)
	assert.Equal(t, 1, record.EliminatedWeek)
	assert.Equal(t, shared.ReasonLost, record.Reason)
}

func TestEvaluateSurvivors_NoPickEliminates(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(1, finishedGames())
	mockStore.Members["ghost"] = shared.Member{UserID: "ghost", Survivor: true}

	err := api.EvaluateSurvivors(1)
	require.NoError(t, err)

	record := mockStore.SurvivorRecords["ghost"]
	assert.False(t, record.Alive)
	assert.Equal(t, shared.ReasonNoPick, record.Reason)
}

func TestEvaluateSurvivors_NonSurvivorMemberSkipped(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(1, finishedGames())
	mockStore.Members["user1"] = shared.Member{UserID: "user1", Confidence: true}

	err := api.EvaluateSurvivors(1)
	require.NoError(t, err)
	assert.Empty(t, mockStore.SurvivorRecords)
}

// endregion

// region RunWeekPipeline tests

func TestRunWeekPipeline_FullRun(t *testing.T) {
	api, mockStore, mockProvider := newTestAPI()
	mockProvider.Games[1] = finishedGames()
	mockStore.Members["user1"] = shared.Member{UserID: "user1", DisplayName: "First User", Confidence: true, Survivor: true}
	mockStore.Picks["user1"] = map[int]map[string]shared.Pick{1: {
		"g1": {GameID: "g1", Team: "Green Bay Packers", Confidence: shared.Confidence(2)},
		"g2": {GameID: "g2", Team: "New York Giants", Confidence: shared.Confidence(1)},
	}}
	mockStore.SurvivorPicks["user1"] = []shared.SurvivorPick{{Week: 1, Team: "Green Bay Packers"}}

	summary, err := api.RunWeekPipeline(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, summary.Scored)

	// Every downstream artifact exists after one pipeline run
	assert.Equal(t, 3, mockStore.Scores[1]["user1"].TotalPoints)
	assert.True(t, mockStore.SurvivorRecords["user1"].Alive)
	assert.Len(t, mockStore.Leaderboards[1].Entries, 1)
	assert.Len(t, mockStore.Leaderboards[0].Entries, 1)
}

func TestRunWeekPipeline_ProviderErrorStopsEarly(t *testing.T) {
	api, mockStore, mockProvider := newTestAPI()
	mockProvider.Err = fmt.Errorf("provider unavailable")

	_, err := api.RunWeekPipeline(context.Background(), 1)
	assert.Error(t, err)
	assert.Empty(t, mockStore.Scores)
}

// endregion

// region Leaderboard tests

func TestGenerateLeaderboard_Success(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.Members["user1"] = shared.Member{UserID: "user1", DisplayName: "First User", Confidence: true}
	mockStore.Members["user2"] = shared.Member{UserID: "user2", DisplayName: "Second User", Confidence: true}
	mockStore.Scores[3] = map[string]shared.WeeklyScore{
		"user1": {UserID: "user1", Week: 3, TotalPoints: 120, CorrectPicks: 12, TotalPicks: 14},
		"user2": {UserID: "user2", Week: 3, TotalPoints: 95, CorrectPicks: 10, TotalPicks: 14},
	}

	err := api.GenerateLeaderboard(3)
	require.NoError(t, err)

	leaderboard := mockStore.Leaderboards[3]
	require.Len(t, leaderboard.Entries, 2)
	assert.Equal(t, "user1", leaderboard.Entries[0].UserID)
	assert.Equal(t, 1, leaderboard.Entries[0].Rank)
	assert.Equal(t, 2, leaderboard.Entries[1].Rank)
	assert.Equal(t, "test_pool", leaderboard.PoolID)
}

func TestGenerateLeaderboard_NoMembers(t *testing.T) {
	api, _, _ := newTestAPI()

	err := api.GenerateLeaderboard(3)
	assert.Error(t, err)
}

func TestGenerateSeasonLeaderboard_StoredAsWeekZero(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.Members["user1"] = shared.Member{UserID: "user1", DisplayName: "First User", Confidence: true}
	mockStore.Scores[1] = map[string]shared.WeeklyScore{"user1": {UserID: "user1", Week: 1, TotalPoints: 20}}
	mockStore.Scores[2] = map[string]shared.WeeklyScore{"user1": {UserID: "user1", Week: 2, TotalPoints: 30}}

	err := api.GenerateSeasonLeaderboard()
	require.NoError(t, err)

	leaderboard := mockStore.Leaderboards[0]
	require.Len(t, leaderboard.Entries, 1)
	assert.Equal(t, 50, leaderboard.Entries[0].Points)
	assert.Equal(t, 0, leaderboard.Week)
}

func TestGetLeaderboard_Report(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.Members["user1"] = shared.Member{UserID: "user1", DisplayName: "First User", Confidence: true}
	mockStore.Scores[3] = map[string]shared.WeeklyScore{
		"user1": {UserID: "user1", Week: 3, TotalPoints: 120, CorrectPicks: 12, TotalPicks: 14},
	}
	require.NoError(t, api.GenerateLeaderboard(3))

	report, err := api.GetLeaderboard(3)
	require.NoError(t, err)
	assert.Contains(t, report, "Week 3 standings:")
	assert.Contains(t, report, "1. First User, 120 points (12/14 correct)")
}

func TestGetLeaderboard_NotGenerated(t *testing.T) {
	api, _, _ := newTestAPI()

	_, err := api.GetLeaderboard(3)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no leaderboard has been generated")
}

// endregion

// region Check report tests

func TestCheckPicks_Report(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(3, finishedGames())
	mockStore.Picks["user1"] = map[int]map[string]shared.Pick{3: {
		"g1": {GameID: "g1", Team: "Green Bay Packers", Confidence: shared.Confidence(2)},
		"g2": {GameID: "g2", Team: "Dallas Cowboys", Confidence: shared.Confidence(1)},
	}}

	report, err := api.CheckPicks(shared.User{UserID: "user1"}, 3)
	require.NoError(t, err)
	assert.Contains(t, report, "g1: Green Bay Packers (2) [Correct]")
	assert.Contains(t, report, "g2: Dallas Cowboys (1) [Incorrect]")
	assert.Contains(t, report, "Total: 2 points, 1/2 correct (50.00%)")
}

func TestCheckPicks_NoPicks(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.StoreWeekGames(3, finishedGames())

	_, err := api.CheckPicks(shared.User{UserID: "user1"}, 3)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no picks found")
}

func TestCheckSurvivor_Alive(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.SurvivorRecords["user1"] = shared.SurvivorRecord{
		UserID:      "user1",
		Alive:       true,
		PickHistory: []shared.SurvivorPick{{Week: 1, Team: "Green Bay Packers"}},
	}

	report, err := api.CheckSurvivor(shared.User{UserID: "user1"})
	require.NoError(t, err)
	assert.Contains(t, report, "still alive")
	assert.Contains(t, report, "Week 1: Green Bay Packers")
}

func TestCheckSurvivor_Eliminated(t *testing.T) {
	api, mockStore, _ := newTestAPI()
	mockStore.SurvivorRecords["user1"] = shared.SurvivorRecord{
		UserID:         "user1",
		Alive:          false,
		EliminatedWeek: 4,
		Reason:         shared.ReasonTeamReuse,
	}

	report, err := api.CheckSurvivor(shared.User{UserID: "user1"})
	require.NoError(t, err)
	assert.Contains(t, report, "eliminated in week 4")
	assert.Contains(t, report, "team used twice")
}

func TestCheckSurvivor_NoRecord(t *testing.T) {
	api, _, _ := newTestAPI()

	_, err := api.CheckSurvivor(shared.User{UserID: "user1"})
	assert.Error(t, err)
}

// endregion
