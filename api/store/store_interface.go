/* store_interface.go
 * Contains the Store interface for dependency injection and testing
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"pool-bot/api/shared"
)

// Interface defines the methods that Store implements.
// This allows for mocking in tests.
type Interface interface {
	StoreMember(member shared.Member) error
	GetMember(userID string) (shared.Member, error)
	GetMembers() (map[string]shared.Member, error)

	StoreWeekGames(week int, games []shared.Game) error
	GetWeekGames(week int) (map[string]shared.Game, error)
	GetWeekGamesThrough(week int) (map[int]map[string]shared.Game, error)

	StoreUserPicks(user shared.User, week int, picks map[string]shared.Pick) error
	GetUserPicks(userID string, week int) (map[string]shared.Pick, error)
	GetWeekPicks(week int) ([]PickSetDoc, error)
	StoreSurvivorPick(user shared.User, week int, team string) error
	GetSurvivorHistory(userID string) ([]shared.SurvivorPick, error)
	GetAllSurvivorHistories() ([]SurvivorPicksDoc, error)

	StoreWeeklyScore(score shared.WeeklyScore) error
	GetWeekScores(week int) (map[string]shared.WeeklyScore, error)
	GetAllScores() (map[int]map[string]shared.WeeklyScore, error)

	StoreSurvivorRecord(record shared.SurvivorRecord) error
	GetSurvivorRecord(userID string) (shared.SurvivorRecord, error)
	GetSurvivorRecords() (map[string]shared.SurvivorRecord, error)

	FetchLeaderboardFromDB(week int) ([]LeaderboardEntry, error)
	StoreLeaderboard(leaderboard Leaderboard) error

	// Getter methods for accessing fields
	GetDatabase() interface{ Name() string }
	GetPoolID() string
	GetSeason() int
	GetClient() interface{ Disconnect(context.Context) error }
}

// Ensure Store implements Interface
var _ Interface = (*Store)(nil)

// GetDatabase returns the database instance
func (s *Store) GetDatabase() interface{ Name() string } {
	return s.Database
}

// GetPoolID returns the pool identifier
func (s *Store) GetPoolID() string {
	return s.PoolID
}

// GetSeason returns the season year
func (s *Store) GetSeason() int {
	return s.Season
}

// GetClient returns the MongoDB client
func (s *Store) GetClient() interface{ Disconnect(context.Context) error } {
	return s.Client
}
