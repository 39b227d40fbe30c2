/* test_mocks.go
 * Contains mock structures and interfaces for testing the API package
 * Authors: Zachary Bower
 */

package api

import (
	"context"
	"sort"

	"pool-bot/api/shared"
	"pool-bot/api/store"

	"go.mongodb.org/mongo-driver/mongo"
)

// MockStore implements the Store interface for testing
type MockStore struct {
	// Storage for mock data
	Members         map[string]shared.Member
	WeekGames       map[int]map[string]shared.Game
	Picks           map[string]map[int]map[string]shared.Pick
	SurvivorPicks   map[string][]shared.SurvivorPick
	Scores          map[int]map[string]shared.WeeklyScore
	SurvivorRecords map[string]shared.SurvivorRecord
	Leaderboards    map[int]store.Leaderboard

	// Error injection for testing error paths
	StoreMemberError         error
	GetMembersError          error
	StoreWeekGamesError      error
	GetWeekGamesError        error
	StoreUserPicksError      error
	GetUserPicksError        error
	GetWeekPicksError        error
	StoreSurvivorPickError   error
	GetSurvivorHistoryError  error
	StoreWeeklyScoreError    error
	GetWeekScoresError       error
	GetAllScoresError        error
	StoreSurvivorRecordError error
	GetSurvivorRecordError   error
	FetchLeaderboardError    error
	StoreLeaderboardError    error

	// Store fields needed for compatibility
	PoolID   string
	Season   int
	Database interface{ Name() string }
}

// mockDatabase implements the minimal Database interface needed for tests
type mockDatabase struct {
	name string
}

func (m *mockDatabase) Name() string {
	return m.name
}

// mockClient implements the minimal Client interface needed for tests
type mockClient struct{}

func (m *mockClient) Disconnect(ctx context.Context) error {
	return nil
}

// NewMockStore creates a new MockStore with default values
func NewMockStore() *MockStore {
	return &MockStore{
		Members:         make(map[string]shared.Member),
		WeekGames:       make(map[int]map[string]shared.Game),
		Picks:           make(map[string]map[int]map[string]shared.Pick),
		SurvivorPicks:   make(map[string][]shared.SurvivorPick),
		Scores:          make(map[int]map[string]shared.WeeklyScore),
		SurvivorRecords: make(map[string]shared.SurvivorRecord),
		Leaderboards:    make(map[int]store.Leaderboard),
		PoolID:          "test_pool",
		Season:          2025,
		Database:        &mockDatabase{name: "test_db"},
	}
}

// StoreMember mock implementation
func (m *MockStore) StoreMember(member shared.Member) error {
	if m.StoreMemberError != nil {
		return m.StoreMemberError
	}
	m.Members[member.UserID] = member
	return nil
}

// GetMember mock implementation
func (m *MockStore) GetMember(userID string) (shared.Member, error) {
	member, ok := m.Members[userID]
	if !ok {
		return shared.Member{}, mongo.ErrNoDocuments
	}
	return member, nil
}

// GetMembers mock implementation
func (m *MockStore) GetMembers() (map[string]shared.Member, error) {
	if m.GetMembersError != nil {
		return nil, m.GetMembersError
	}
	return m.Members, nil
}

// StoreWeekGames mock implementation
func (m *MockStore) StoreWeekGames(week int, games []shared.Game) error {
	if m.StoreWeekGamesError != nil {
		return m.StoreWeekGamesError
	}
	gameMap := make(map[string]shared.Game, len(games))
	for _, game := range games {
		gameMap[game.GameID] = game
	}
	m.WeekGames[week] = gameMap
	return nil
}

// GetWeekGames mock implementation
func (m *MockStore) GetWeekGames(week int) (map[string]shared.Game, error) {
	if m.GetWeekGamesError != nil {
		return nil, m.GetWeekGamesError
	}
	games, ok := m.WeekGames[week]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return games, nil
}

// GetWeekGamesThrough mock implementation
func (m *MockStore) GetWeekGamesThrough(week int) (map[int]map[string]shared.Game, error) {
	if m.GetWeekGamesError != nil {
		return nil, m.GetWeekGamesError
	}
	weeks := make(map[int]map[string]shared.Game)
	for w, games := range m.WeekGames {
		if w <= week {
			weeks[w] = games
		}
	}
	return weeks, nil
}

// StoreUserPicks mock implementation
func (m *MockStore) StoreUserPicks(user shared.User, week int, picks map[string]shared.Pick) error {
	if m.StoreUserPicksError != nil {
		return m.StoreUserPicksError
	}
	if m.Picks[user.UserID] == nil {
		m.Picks[user.UserID] = make(map[int]map[string]shared.Pick)
	}
	m.Picks[user.UserID][week] = picks
	return nil
}

// GetUserPicks mock implementation
func (m *MockStore) GetUserPicks(userID string, week int) (map[string]shared.Pick, error) {
	if m.GetUserPicksError != nil {
		return nil, m.GetUserPicksError
	}
	picks, ok := m.Picks[userID][week]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return picks, nil
}

// GetWeekPicks mock implementation
func (m *MockStore) GetWeekPicks(week int) ([]store.PickSetDoc, error) {
	if m.GetWeekPicksError != nil {
		return nil, m.GetWeekPicksError
	}
	var sets []store.PickSetDoc
	for userID, weeks := range m.Picks {
		picks, ok := weeks[week]
		if !ok {
			continue
		}
		doc := store.PickSetDoc{PoolID: m.PoolID, Season: m.Season, Week: week, UserID: userID}
		for _, pick := range picks {
			doc.Picks = append(doc.Picks, pick)
		}
		sets = append(sets, doc)
	}
	sort.Slice(sets, func(i, j int) bool { return sets[i].UserID < sets[j].UserID })
	return sets, nil
}

// StoreSurvivorPick mock implementation
func (m *MockStore) StoreSurvivorPick(user shared.User, week int, team string) error {
	if m.StoreSurvivorPickError != nil {
		return m.StoreSurvivorPickError
	}
	history := m.SurvivorPicks[user.UserID]
	for i, pick := range history {
		if pick.Week == week {
			history[i].Team = team
			return nil
		}
	}
	m.SurvivorPicks[user.UserID] = append(history, shared.SurvivorPick{Week: week, Team: team})
	return nil
}

// GetSurvivorHistory mock implementation
func (m *MockStore) GetSurvivorHistory(userID string) ([]shared.SurvivorPick, error) {
	if m.GetSurvivorHistoryError != nil {
		return nil, m.GetSurvivorHistoryError
	}
	history, ok := m.SurvivorPicks[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return history, nil
}

// GetAllSurvivorHistories mock implementation
func (m *MockStore) GetAllSurvivorHistories() ([]store.SurvivorPicksDoc, error) {
	if m.GetSurvivorHistoryError != nil {
		return nil, m.GetSurvivorHistoryError
	}
	var docs []store.SurvivorPicksDoc
	for userID, picks := range m.SurvivorPicks {
		docs = append(docs, store.SurvivorPicksDoc{PoolID: m.PoolID, Season: m.Season, UserID: userID, Picks: picks})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].UserID < docs[j].UserID })
	return docs, nil
}

// StoreWeeklyScore mock implementation
func (m *MockStore) StoreWeeklyScore(score shared.WeeklyScore) error {
	if m.StoreWeeklyScoreError != nil {
		return m.StoreWeeklyScoreError
	}
	if m.Scores[score.Week] == nil {
		m.Scores[score.Week] = make(map[string]shared.WeeklyScore)
	}
	m.Scores[score.Week][score.UserID] = score
	return nil
}

// GetWeekScores mock implementation
func (m *MockStore) GetWeekScores(week int) (map[string]shared.WeeklyScore, error) {
	if m.GetWeekScoresError != nil {
		return nil, m.GetWeekScoresError
	}
	scores, ok := m.Scores[week]
	if !ok {
		return map[string]shared.WeeklyScore{}, nil
	}
	return scores, nil
}

// GetAllScores mock implementation
func (m *MockStore) GetAllScores() (map[int]map[string]shared.WeeklyScore, error) {
	if m.GetAllScoresError != nil {
		return nil, m.GetAllScoresError
	}
	return m.Scores, nil
}

// StoreSurvivorRecord mock implementation
func (m *MockStore) StoreSurvivorRecord(record shared.SurvivorRecord) error {
	if m.StoreSurvivorRecordError != nil {
		return m.StoreSurvivorRecordError
	}
	m.SurvivorRecords[record.UserID] = record
	return nil
}

// GetSurvivorRecord mock implementation
func (m *MockStore) GetSurvivorRecord(userID string) (shared.SurvivorRecord, error) {
	if m.GetSurvivorRecordError != nil {
		return shared.SurvivorRecord{}, m.GetSurvivorRecordError
	}
	record, ok := m.SurvivorRecords[userID]
	if !ok {
		return shared.SurvivorRecord{}, mongo.ErrNoDocuments
	}
	return record, nil
}

// GetSurvivorRecords mock implementation
func (m *MockStore) GetSurvivorRecords() (map[string]shared.SurvivorRecord, error) {
	if m.GetSurvivorRecordError != nil {
		return nil, m.GetSurvivorRecordError
	}
	return m.SurvivorRecords, nil
}

// FetchLeaderboardFromDB mock implementation
func (m *MockStore) FetchLeaderboardFromDB(week int) ([]store.LeaderboardEntry, error) {
	if m.FetchLeaderboardError != nil {
		return nil, m.FetchLeaderboardError
	}
	leaderboard, ok := m.Leaderboards[week]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	return leaderboard.Entries, nil
}

// StoreLeaderboard mock implementation
func (m *MockStore) StoreLeaderboard(leaderboard store.Leaderboard) error {
	if m.StoreLeaderboardError != nil {
		return m.StoreLeaderboardError
	}
	m.Leaderboards[leaderboard.Week] = leaderboard
	return nil
}

// GetDatabase mock implementation
func (m *MockStore) GetDatabase() interface{ Name() string } {
	return m.Database
}

// GetPoolID mock implementation
func (m *MockStore) GetPoolID() string {
	return m.PoolID
}

// GetSeason mock implementation
func (m *MockStore) GetSeason() int {
	return m.Season
}

// GetClient mock implementation
func (m *MockStore) GetClient() interface{ Disconnect(context.Context) error } {
	return &mockClient{}
}

// MockProvider implements the Provider interface for testing
type MockProvider struct {
	Games map[int][]shared.Game
	Err   error
}

// FetchWeekGames mock implementation
func (m *MockProvider) FetchWeekGames(ctx context.Context, week int) ([]shared.Game, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	return m.Games[week], nil
}
