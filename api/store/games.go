/* games.go
 * Contains the methods for interacting with the weekly_games collection ("bible data")
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"pool-bot/api/shared"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// StoreWeekGames stores or replaces one week's game schedule/results map
// Preconditions: Receives the week number and the slice of games for that week
// Postconditions: Inserts or updates the weekly games document, or returns an error if it occurs
func (s *Store) StoreWeekGames(week int, games []shared.Game) error {
	if week <= 0 {
		return fmt.Errorf("week must be positive")
	}

	var existing WeekGamesDoc
	filter := bson.M{"poolid": s.PoolID, "season": s.Season, "week": week}
	err := s.Collections.Games.FindOne(context.TODO(), filter).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing week games failed: %w", err)
	}

	doc := WeekGamesDoc{PoolID: s.PoolID, Season: s.Season, Week: week, Games: games}
	if notFound {
		_, err := s.Collections.Games.InsertOne(context.TODO(), doc)
		if err != nil {
			return fmt.Errorf("failed to insert week games: %w", err)
		}
		return nil
	}

	_, err = s.Collections.Games.UpdateOne(context.TODO(), filter, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("failed to update week games: %w", err)
	}
	return nil
}

// GetWeekGames does a DB lookup and gets the game map for one week
// Preconditions: Receives the week number
// Postconditions: Returns the week's game map keyed by game id, or an error if it occurs
func (s *Store) GetWeekGames(week int) (map[string]shared.Game, error) {
	var result WeekGamesDoc
	filter := bson.M{"poolid": s.PoolID, "season": s.Season, "week": week}
	err := s.Collections.Games.FindOne(context.TODO(), filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching week games from db: %w", err)
	}

	return result.GameMap(), nil
}

// GetWeekGamesThrough gets every stored week's game map up to and including
// the given week. Used by the survivor evaluator, which must see each
// week's results separately.
// Preconditions: Receives the latest week to include
// Postconditions: Returns a map of week number to that week's game map; weeks with no stored document are simply absent
func (s *Store) GetWeekGamesThrough(week int) (map[int]map[string]shared.Game, error) {
	filter := bson.M{"poolid": s.PoolID, "season": s.Season, "week": bson.M{"$lte": week}}
	cursor, err := s.Collections.Games.Find(context.TODO(), filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching week games from db: %w", err)
	}

	var docs []WeekGamesDoc
	if err = cursor.All(context.TODO(), &docs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of week games: %w", err)
	}

	weeks := make(map[int]map[string]shared.Game, len(docs))
	for _, doc := range docs {
		weeks[doc.Week] = doc.GameMap()
	}
	return weeks, nil
}
