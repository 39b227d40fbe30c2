/* store.go
 * Contains the store struct and NewStore function. The methods for this package are split across
 * members, games, picks, scores, survivor and leaderboard files. Each of these files contains the
 * methods for interacting with that part of the database
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	Client      *mongo.Client
	Database    *mongo.Database
	PoolID      string
	Season      int
	Collections struct {
		Members         *mongo.Collection
		Games           *mongo.Collection
		Picks           *mongo.Collection
		SurvivorPicks   *mongo.Collection
		Scores          *mongo.Collection
		SurvivorRecords *mongo.Collection
		Leaderboards    *mongo.Collection
	}
}

// Function for initialising Store. Sets pool scoping values and initialises db connection
// Preconditions: Receives strings containing dbName, mongoURI and poolID, and the season year
// Postconditions: Sets collection values and returns pointer to the Store object, or error if it occurs
func NewStore(dbName string, mongoURI string, poolID string, season int) (*Store, error) {
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	db := client.Database(dbName)

	if poolID == "" || season == 0 {
		return nil, fmt.Errorf("poolID or season cannot be empty")
	}

	s := &Store{
		Client:   client,
		Database: db,
		PoolID:   poolID,
		Season:   season,
	}
	s.Collections.Members = db.Collection("pool_members")
	s.Collections.Games = db.Collection("weekly_games")
	s.Collections.Picks = db.Collection("weekly_picks")
	s.Collections.SurvivorPicks = db.Collection("survivor_picks")
	s.Collections.Scores = db.Collection("weekly_scores")
	s.Collections.SurvivorRecords = db.Collection("survivor_records")
	s.Collections.Leaderboards = db.Collection("leaderboards")

	return s, nil
}
