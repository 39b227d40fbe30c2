/* scores.go
 * Contains the methods for interacting with the weekly_scores collection
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

// StoreWeeklyScore stores one user's derived weekly score. Recomputed
// scores overwrite prior ones; the write is a merge-style upsert so
// re-running the scorer is always safe.
// Preconditions: Receives the WeeklyScore to be stored
// Postconditions: Inserts or updates the score document, or returns an error if it occurs
func (s *Store) StoreWeeklyScore(score shared.WeeklyScore) error {
	if score.UserID == "" || score.Week <= 0 {
		return fmt.Errorf("score userid and week are required")
	}

	filter := bson.M{"poolid": s.PoolID, "season": s.Season, "week": score.Week, "userid": score.UserID}

	var existing WeeklyScoreDoc
	err := s.Collections.Scores.FindOne(context.TODO(), filter).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing score failed: %w", err)
	}

	doc := WeeklyScoreDoc{PoolID: s.PoolID, Season: s.Season, WeeklyScore: score}
	if notFound {
		_, err := s.Collections.Scores.InsertOne(context.TODO(), doc)
		if err != nil {
			return fmt.Errorf("failed to insert weekly score: %w", err)
		}
		return nil
	}

	_, err = s.Collections.Scores.UpdateOne(context.TODO(), filter, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("failed to update weekly score: %w", err)
	}
	return nil
}

// GetWeekScores does a DB lookup and gets every user's score for one week
// Preconditions: Receives the week number
// Postconditions: Returns a map of userid to WeeklyScore, or an error if it occurs
func (s *Store) GetWeekScores(week int) (map[string]shared.WeeklyScore, error) {
	filter := bson.D{
		{Key: "poolid", Value: s.PoolID},
		{Key: "season", Value: s.Season},
		{Key: "week", Value: week},
	}

	cursor, err := s.Collections.Scores.Find(context.TODO(), filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching scores from db: %w", err)
	}

	var docs []WeeklyScoreDoc
	if err = cursor.All(context.TODO(), &docs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of scores: %w", err)
	}

	scores := make(map[string]shared.WeeklyScore, len(docs))
	for _, doc := range docs {
		scores[doc.UserID] = doc.WeeklyScore
	}
	return scores, nil
}

// GetAllScores gets every stored score for the season grouped by week.
// Used in season leaderboard calculations.
// Preconditions: None beyond an initialised store
// Postconditions: Returns a map of week number to that week's score map, or an error if it occurs
func (s *Store) GetAllScores() (map[int]map[string]shared.WeeklyScore, error) {
	filter := bson.D{
		{Key: "poolid", Value: s.PoolID},
		{Key: "season", Value: s.Season},
	}

	cursor, err := s.Collections.Scores.Find(context.TODO(), filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching scores from db: %w", err)
	}

	var docs []WeeklyScoreDoc
	if err = cursor.All(context.TODO(), &docs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of scores: %w", err)
	}

	weeks := make(map[int]map[string]shared.WeeklyScore)
	for _, doc := range docs {
		if weeks[doc.Week] == nil {
			weeks[doc.Week] = make(map[string]shared.WeeklyScore)
		}
		weeks[doc.Week][doc.UserID] = doc.WeeklyScore
	}
	return weeks, nil
}
