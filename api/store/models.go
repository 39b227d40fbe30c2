/* models.go
 * This file contains the structs and helper functions that relate to DB objects
 * Authors: Zachary Bower
 */

package store

import (
	"pool-bot/api/shared"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemberDoc is a pool member as stored in the pool_members collection.
type MemberDoc struct {
	Id     primitive.ObjectID `bson:"_id,omitempty"`
	PoolID string             `bson:"poolid,omitempty"`
	shared.Member            `bson:",inline"`
}

// WeekGamesDoc holds one week's authoritative game schedule/results map.
// One document per pool, season and week.
type WeekGamesDoc struct {
	Id     primitive.ObjectID `bson:"_id,omitempty"`
	PoolID string             `bson:"poolid,omitempty"`
	Season int                `bson:"season"`
	Week   int                `bson:"week"`
	Games  []shared.Game      `bson:"games,omitempty"`
}

// GameMap re-keys the stored game list by game id, the shape the scoring
// core consumes.
func (d WeekGamesDoc) GameMap() map[string]shared.Game {
	games := make(map[string]shared.Game, len(d.Games))
	for _, game := range d.Games {
		games[game.GameID] = game
	}
	return games
}

// PickSetDoc holds one user's confidence picks for one week.
type PickSetDoc struct {
	Id       primitive.ObjectID `bson:"_id,omitempty"`
	PoolID   string             `bson:"poolid,omitempty"`
	Season   int                `bson:"season"`
	Week     int                `bson:"week"`
	UserID   string             `bson:"userid,omitempty"`
	Username string             `bson:"username,omitempty"`
	Picks    []shared.Pick      `bson:"picks,omitempty"`
}

// PickMap re-keys the stored pick list by game id.
func (d PickSetDoc) PickMap() map[string]shared.Pick {
	picks := make(map[string]shared.Pick, len(d.Picks))
	for _, pick := range d.Picks {
		picks[pick.GameID] = pick
	}
	return picks
}

// SurvivorPicksDoc holds one user's full survivor pick history, ordered by
// week.
type SurvivorPicksDoc struct {
	Id       primitive.ObjectID    `bson:"_id,omitempty"`
	PoolID   string                `bson:"poolid,omitempty"`
	Season   int                   `bson:"season"`
	UserID   string                `bson:"userid,omitempty"`
	Username string                `bson:"username,omitempty"`
	Picks    []shared.SurvivorPick `bson:"picks,omitempty"`
}

// WeeklyScoreDoc is a derived weekly confidence score write-back. Safe to
// overwrite; the same inputs always produce the same document.
type WeeklyScoreDoc struct {
	Id     primitive.ObjectID `bson:"_id,omitempty"`
	PoolID string             `bson:"poolid,omitempty"`
	Season int                `bson:"season"`
	shared.WeeklyScore       `bson:",inline"`
}

// SurvivorRecordDoc is a derived survivor record write-back.
type SurvivorRecordDoc struct {
	Id     primitive.ObjectID `bson:"_id,omitempty"`
	PoolID string             `bson:"poolid,omitempty"`
	Season int                `bson:"season"`
	shared.SurvivorRecord    `bson:",inline"`
}

// LeaderboardEntry is one ranked row of a stored leaderboard.
type LeaderboardEntry struct {
	UserID   string `bson:"userid,omitempty"`
	Username string `bson:"username,omitempty"`
	Points   int    `bson:"points"`
	Correct  int    `bson:"correct"`
	Total    int    `bson:"total"`
	Rank     int    `bson:"rank"`
}

// Leaderboard is a ranked standings document. Week 0 is the
// season-cumulative view.
type Leaderboard struct {
	PoolID    string             `bson:"poolid,omitempty"`
	Season    int                `bson:"season"`
	Week      int                `bson:"week"`
	UpdatedAt time.Time          `bson:"updated_at,omitempty"`
	Entries   []LeaderboardEntry `bson:"entries,omitempty"`
}
