/* test_helpers.go
 * Contains test helper functions for store package tests
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"pool-bot/api/shared"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// NewTestStore creates a Store instance for testing purposes.
// This can be used with a real test database or in-memory MongoDB.
func NewTestStore(dbName string, mongoURI string) (*Store, error) {
	return NewStore(dbName, mongoURI, "test_pool", 2025)
}

// CreateTestStore creates a Store connected to a test database.
// Returns the store and a cleanup function.
func CreateTestStore(mongoURI string) (*Store, func(), error) {
	store, err := NewTestStore("test_pool_db", mongoURI)
	if err != nil {
		return nil, nil, err
	}

	cleanup := func() {
		if store.Client != nil {
			// Drop test database
			store.Database.Drop(context.TODO())
			// Disconnect client
			store.Client.Disconnect(context.TODO())
		}
	}

	return store, cleanup, nil
}

// CreateTestClient creates a test MongoDB client.
func CreateTestClient(mongoURI string) (*mongo.Client, error) {
	client, err := mongo.Connect(context.TODO(), options.Client().ApplyURI(mongoURI))
	if err != nil {
		return nil, err
	}
	return client, nil
}

// CreateSampleGames creates sample Game data for testing.
func CreateSampleGames() []shared.Game {
	return []shared.Game{
		{
			GameID:    "g1",
			AwayTeam:  "Green Bay Packers",
			HomeTeam:  "Chicago Bears",
			Kickoff:   1757900000,
			Status:    shared.StatusFinal,
			AwayScore: 24,
			HomeScore: 17,
			Winner:    "Green Bay Packers",
		},
		{
			GameID:   "g2",
			AwayTeam: "Dallas Cowboys",
			HomeTeam: "New York Giants",
			Kickoff:  1757990000,
			Status:   shared.StatusScheduled,
		},
	}
}
