/* api.go
 * This file contains the public methods for interacting with this package. For consistent results, functions should
 * only be called from this file, not the sub packages for store and logic
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	"pool-bot/api/external"
	"pool-bot/api/logic"
	"pool-bot/api/shared"
	"pool-bot/api/store"
	"pool-bot/pkg/metrics"

	"go.mongodb.org/mongo-driver/mongo"
)

// API provides methods for interacting with the pool bot data layer
type API struct {
	Store    store.Interface
	Provider Provider
}

// NewAPI creates a new API instance with the provided configuration
func NewAPI(dbName string, mongoURI string, poolID string, season int, providerURL string, providerKey string) (*API, error) {
	if dbName == "" || poolID == "" {
		return nil, fmt.Errorf("dbName and poolID are required")
	}

	s, err := store.NewStore(dbName, mongoURI, poolID, season)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize store: %w", err)
	}

	provider, err := external.NewClient(providerURL, providerKey)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize provider client: %w", err)
	}

	return &API{
		Store:    s,
		Provider: provider,
	}, nil
}

// SyncWeek fetches one week's schedule and results from the provider and stores it
// Preconditions: Receives a context and the week number
// Postconditions: The week's game map in the db reflects the provider's latest data, or returns an error if it occurs
func (a *API) SyncWeek(ctx context.Context, week int) error {
	games, err := a.Provider.FetchWeekGames(ctx, week)
	if err != nil {
		return err
	}

	err = a.Store.StoreWeekGames(week, games)
	if err != nil {
		return err
	}
	return nil
}

// SetUserPicks contains the logic to set a user's confidence picks in the DB.
// It receives a user struct that contains userID and userName, the week number, and the list of teams the user
// wishes to pick ordered from most to least confident. The first team gets confidence N (number of games), the
// last gets 1.
// It updates the user's picks in the database, or returns an error if it occurs.
func (a *API) SetUserPicks(user shared.User, week int, inputTeams []string) error {
	games, err := a.Store.GetWeekGames(week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("no games stored for week %d, sync the week first", week)
		}
		return err
	}

	// Check num required teams is correct: one pick per game
	if len(inputTeams) != len(games) {
		return fmt.Errorf("incorrect number of teams arguments, expected %d but got %d", len(games), len(inputTeams))
	}

	// Fix formatting on input teams
	for i := range inputTeams {
		inputTeams[i] = strings.ReplaceAll(inputTeams[i], "\"", "")
		inputTeams[i] = strings.ReplaceAll(inputTeams[i], "“", "")
		inputTeams[i] = strings.ReplaceAll(inputTeams[i], "”", "")
	}

	// Validate input teams
	teams, invalidTeams := logic.CheckTeamNames(inputTeams, logic.WeekTeams(games))
	if len(invalidTeams) > 0 {
		var str strings.Builder
		str.WriteString("the following team names are invalid:")
		for i := range invalidTeams {
			str.WriteString(fmt.Sprintf(" '%s'", invalidTeams[i]))
		}
		return errors.New(str.String())
	}

	// Assign confidence values and catch duplicate or conflicting teams
	picks, err := logic.BuildPicks(teams, games)
	if err != nil {
		return err
	}

	// Picks lock per game at kickoff
	now := time.Now()
	for _, pick := range picks {
		if games[pick.GameID].HasKickedOff(now) {
			return fmt.Errorf("'%s' has already kicked off, stored picks were not updated", pick.Team)
		}
	}

	err = a.Store.StoreUserPicks(user, week, picks)
	if err != nil {
		return err
	}

	return a.ensureEnrolled(user, true, false)
}

// SetSurvivorPick contains the logic to set a user's survivor pick for one week.
// It receives a user struct, the week number and the team name.
// It updates the user's survivor pick history in the database, or returns an error if it occurs.
func (a *API) SetSurvivorPick(user shared.User, week int, inputTeam string) error {
	games, err := a.Store.GetWeekGames(week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return fmt.Errorf("no games stored for week %d, sync the week first", week)
		}
		return err
	}

	inputTeam = strings.ReplaceAll(inputTeam, "\"", "")
	inputTeam = strings.ReplaceAll(inputTeam, "“", "")
	inputTeam = strings.ReplaceAll(inputTeam, "”", "")

	teams, invalidTeams := logic.CheckTeamNames([]string{inputTeam}, logic.WeekTeams(games))
	if len(invalidTeams) > 0 {
		return fmt.Errorf("'%s' is not a valid team name for week %d", inputTeam, week)
	}
	team := teams[0]

	game, ok := logic.FindGameForTeam(games, team)
	if !ok {
		return fmt.Errorf("'%s' is not playing in week %d", team, week)
	}
	if game.HasKickedOff(time.Now()) {
		return fmt.Errorf("'%s' has already kicked off, stored pick was not updated", team)
	}

	// A team can only be used once per season. Replacing the same week's pick is fine
	history, err := a.Store.GetSurvivorHistory(user.UserID)
	if err != nil && !errors.Is(err, mongo.ErrNoDocuments) {
		return err
	}
	for _, prior := range history {
		if prior.Week != week && prior.Team == team {
			return fmt.Errorf("'%s' was already used in week %d, stored pick was not updated", team, prior.Week)
		}
	}

	err = a.Store.StoreSurvivorPick(user, week, team)
	if err != nil {
		return err
	}

	return a.ensureEnrolled(user, false, true)
}

// ensureEnrolled makes sure a user who has submitted a pick appears in the
// member roster with the matching pool flag set. Existing flags are never
// cleared, so a confidence pick after a survivor pick leaves both set
func (a *API) ensureEnrolled(user shared.User, confidence bool, survivor bool) error {
	member, err := a.Store.GetMember(user.UserID)
	if err != nil {
		if !errors.Is(err, mongo.ErrNoDocuments) {
			return err
		}
		member = shared.Member{UserID: user.UserID, DisplayName: user.Username}
	}
	if member.DisplayName == "" {
		member.DisplayName = user.Username
	}
	if (member.Confidence || !confidence) && (member.Survivor || !survivor) {
		return nil
	}
	member.Confidence = member.Confidence || confidence
	member.Survivor = member.Survivor || survivor

	return a.Store.StoreMember(member)
}

// ScoreWeek runs the confidence scorer for every enrolled member and upserts their weekly scores
// Preconditions: Receives the week number
// Postconditions: Returns a summary of users scored and any winner/score discrepancy flags, or an error if it occurs
func (a *API) ScoreWeek(week int) (ScoreSummary, error) {
	summary := ScoreSummary{Week: week}

	games, err := a.Store.GetWeekGames(week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return summary, fmt.Errorf("no games stored for week %d, sync the week first", week)
		}
		return summary, err
	}

	members, err := a.Store.GetMembers()
	if err != nil {
		return summary, err
	}

	pickSets, err := a.Store.GetWeekPicks(week)
	if err != nil {
		return summary, err
	}
	picksByUser := make(map[string]map[string]shared.Pick, len(pickSets))
	for _, set := range pickSets {
		picksByUser[set.UserID] = set.PickMap()
	}

	seen := make(map[string]bool)
	for _, member := range members {
		if !member.Confidence {
			continue
		}

		// Members with no submitted picks still get a zero score row
		score, flags, _ := logic.ScoreWeek(week, games, picksByUser[member.UserID])
		score.UserID = member.UserID
		score.CalculatedAt = time.Now()

		for _, flag := range flags {
			if seen[flag.GameID] {
				continue
			}
			seen[flag.GameID] = true
			log.Printf("score discrepancy in week %d: %s", week, flag)
			summary.Flags = append(summary.Flags, flag.String())
		}

		err = a.Store.StoreWeeklyScore(score)
		if err != nil {
			return summary, err
		}
		summary.Scored++
	}

	return summary, nil
}

// EvaluateSurvivors re-derives every enrolled member's survivor standing from their pick history
// Preconditions: Receives the current week number
// Postconditions: Upserts a survivor record per enrolled member and returns nil, or an error if it occurs
func (a *API) EvaluateSurvivors(currentWeek int) error {
	weekGames, err := a.Store.GetWeekGamesThrough(currentWeek)
	if err != nil {
		return err
	}

	members, err := a.Store.GetMembers()
	if err != nil {
		return err
	}

	histories, err := a.Store.GetAllSurvivorHistories()
	if err != nil {
		return err
	}
	historyByUser := make(map[string][]shared.SurvivorPick, len(histories))
	for _, doc := range histories {
		historyByUser[doc.UserID] = doc.Picks
	}

	for _, member := range members {
		if !member.Survivor {
			continue
		}

		record := logic.EvaluateSurvivor(historyByUser[member.UserID], weekGames, currentWeek)
		record.UserID = member.UserID

		err = a.Store.StoreSurvivorRecord(record)
		if err != nil {
			return err
		}
	}

	return nil
}

// RunWeekPipeline runs the full weekly pipeline: provider sync, confidence
// scoring, survivor evaluation, then regeneration of the week and season
// leaderboards. Used by the $score command and the results webhook.
// Preconditions: Receives a context and the week number
// Postconditions: Returns the scoring summary, or the first error encountered
func (a *API) RunWeekPipeline(ctx context.Context, week int) (ScoreSummary, error) {
	start := time.Now()

	err := a.SyncWeek(ctx, week)
	if err != nil {
		metrics.RecordPipelineError()
		return ScoreSummary{Week: week}, err
	}
	metrics.RecordWeekSynced()

	summary, err := a.ScoreWeek(week)
	if err != nil {
		metrics.RecordPipelineError()
		return summary, err
	}
	metrics.RecordMembersScored(summary.Scored)
	metrics.RecordScoreDiscrepancies(len(summary.Flags))

	err = a.EvaluateSurvivors(week)
	if err != nil {
		metrics.RecordPipelineError()
		return summary, err
	}

	err = a.GenerateLeaderboard(week)
	if err != nil {
		metrics.RecordPipelineError()
		return summary, err
	}

	err = a.GenerateSeasonLeaderboard()
	if err != nil {
		metrics.RecordPipelineError()
		return summary, err
	}
	metrics.RecordLeaderboardUpdate()

	metrics.RecordPipelineLatency(float64(time.Since(start).Milliseconds()))
	return summary, nil
}

// GenerateLeaderboard contains the logic required to generate one week's leaderboard.
// Preconditions: Receives the week number
// Postconditions: Generates the leaderboard, updates it in the DB and returns nil, or returns an error if it occurs
func (a *API) GenerateLeaderboard(week int) error {
	members, err := a.Store.GetMembers()
	if err != nil {
		return err
	}

	scores, err := a.Store.GetWeekScores(week)
	if err != nil {
		return err
	}

	entries := logic.BuildLeaderboard(members, scores)
	if len(entries) == 0 {
		return fmt.Errorf("no enrolled members to rank for week %d", week)
	}

	leaderboard := store.Leaderboard{
		PoolID:    a.Store.GetPoolID(),
		Season:    a.Store.GetSeason(),
		Week:      week,
		UpdatedAt: time.Now(),
		Entries:   entries,
	}

	err = a.Store.StoreLeaderboard(leaderboard)
	if err != nil {
		return err
	}
	return nil
}

// GenerateSeasonLeaderboard aggregates every stored week into the season-cumulative leaderboard, stored as week 0.
// Preconditions: None
// Postconditions: Generates the season leaderboard, updates it in the DB and returns nil, or returns an error if it occurs
func (a *API) GenerateSeasonLeaderboard() error {
	members, err := a.Store.GetMembers()
	if err != nil {
		return err
	}

	weeks, err := a.Store.GetAllScores()
	if err != nil {
		return err
	}

	entries := logic.BuildSeasonLeaderboard(members, weeks)
	if len(entries) == 0 {
		return fmt.Errorf("no enrolled members to rank")
	}

	leaderboard := store.Leaderboard{
		PoolID:    a.Store.GetPoolID(),
		Season:    a.Store.GetSeason(),
		Week:      0,
		UpdatedAt: time.Now(),
		Entries:   entries,
	}

	err = a.Store.StoreLeaderboard(leaderboard)
	if err != nil {
		return err
	}
	return nil
}

// GetLeaderboard fetches a stored leaderboard from the db and generates a response string
// Preconditions: Receives the week number, where week 0 is the season-cumulative view
// Postconditions: Returns a string with the summary of the leaderboard, or an error if it occurs
func (a *API) GetLeaderboard(week int) (string, error) {
	entries, err := a.Store.FetchLeaderboardFromDB(week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", fmt.Errorf("no leaderboard has been generated yet")
		}
		return "", err
	}

	// Stored entries are already ranked, but sort defensively in case the
	// document was hand-edited
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Points != entries[j].Points {
			return entries[i].Points > entries[j].Points
		}
		return entries[i].UserID < entries[j].UserID
	})

	// Generate Response string
	var response strings.Builder
	if week == 0 {
		response.WriteString("Season standings:\n")
	} else {
		response.WriteString(fmt.Sprintf("Week %d standings:\n", week))
	}
	for _, entry := range entries {
		response.WriteString(fmt.Sprintf("%d. %s, %d points (%d/%d correct)\n", entry.Rank, entry.Username, entry.Points, entry.Correct, entry.Total))
	}

	return response.String(), nil
}

// CheckPicks contains the logic required to check a user's confidence picks for one week.
// It receives a user struct and the week number.
// It returns a string containing the per-pick results, or an error if it occurs.
func (a *API) CheckPicks(user shared.User, week int) (string, error) {
	picks, err := a.Store.GetUserPicks(user.UserID, week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", fmt.Errorf("no picks found for week %d", week)
		}
		return "", err
	}

	games, err := a.Store.GetWeekGames(week)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", fmt.Errorf("no games stored for week %d, sync the week first", week)
		}
		return "", err
	}

	score, _, report := logic.ScoreWeek(week, games, picks)

	var response strings.Builder
	response.WriteString(report)
	response.WriteString(fmt.Sprintf("Total: %d points, %d/%d correct (%.2f%%)\n", score.TotalPoints, score.CorrectPicks, score.TotalPicks, score.Accuracy))
	return response.String(), nil
}

// CheckSurvivor reports a user's survivor standing.
// It receives a user struct.
// It returns a string containing the user's status and pick history, or an error if it occurs.
func (a *API) CheckSurvivor(user shared.User) (string, error) {
	record, err := a.Store.GetSurvivorRecord(user.UserID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return "", fmt.Errorf("no survivor record found, records are generated after each week is evaluated")
		}
		return "", err
	}

	var response strings.Builder
	if record.Alive {
		response.WriteString("You are still alive!\n")
	} else {
		response.WriteString(fmt.Sprintf("You were eliminated in week %d (%s)\n", record.EliminatedWeek, describeReason(record.Reason)))
	}
	for _, pick := range record.PickHistory {
		response.WriteString(fmt.Sprintf("- Week %d: %s\n", pick.Week, pick.Team))
	}

	return response.String(), nil
}

// describeReason is a helper function to turn a stored elimination reason into readable text
func describeReason(reason string) string {
	switch reason {
	case shared.ReasonNoPick:
		return "no pick submitted"
	case shared.ReasonTeamReuse:
		return "team used twice"
	case shared.ReasonLost:
		return "picked team lost"
	default:
		return reason
	}
}
