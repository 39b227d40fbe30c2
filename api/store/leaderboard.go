/* leaderboard.go
 * Contains the methods for interacting with the leaderboards collection
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"log"
	"reflect"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// FetchLeaderboardFromDB returns a stored leaderboard from the db
// Preconditions: Receives the week number, where week 0 is the season-cumulative view
// Postconditions: Returns a slice of LeaderboardEntry with user data, or an error if it occurs
func (s *Store) FetchLeaderboardFromDB(week int) ([]LeaderboardEntry, error) {
	opts := options.FindOne()

	var res Leaderboard
	filter := bson.D{
		{Key: "poolid", Value: s.PoolID},
		{Key: "season", Value: s.Season},
		{Key: "week", Value: week},
	}
	err := s.Collections.Leaderboards.FindOne(context.TODO(), filter, opts).Decode(&res)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to fetch leaderboard from database: %w", err)
	}

	return res.Entries, nil
}

// StoreLeaderboard updates a leaderboard stored in the DB
// Preconditions: Receives the Leaderboard value to be stored
// Postconditions: Updates the leaderboards collection and returns nil, or an error if it occurs
func (s *Store) StoreLeaderboard(leaderboard Leaderboard) error {
	if reflect.DeepEqual(leaderboard, Leaderboard{}) {
		return fmt.Errorf("leaderboard is empty")
	}

	filter := bson.M{"poolid": s.PoolID, "season": s.Season, "week": leaderboard.Week}

	// Attempt to find an existing document
	var res Leaderboard
	err := s.Collections.Leaderboards.FindOne(context.TODO(), filter).Decode(&res)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing record failed: %w", err)
	}

	// Perform insert or update
	log.Println("updating leaderboard in db")
	if notFound {
		_, err := s.Collections.Leaderboards.InsertOne(context.TODO(), leaderboard)
		if err != nil {
			return fmt.Errorf("leaderboard insert failed: %w", err)
		}
		return nil
	}

	update := bson.D{{Key: "$set", Value: leaderboard}}
	_, err = s.Collections.Leaderboards.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return fmt.Errorf("leaderboard update failed: %w", err)
	}
	return nil
}
