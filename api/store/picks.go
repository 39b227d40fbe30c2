/* picks.go
 * Contains the methods for interacting with the weekly_picks and survivor_picks collections
 * Authors: Zachary Bower
 */

package store

import (
	"context"
	"errors"
	"fmt"
	"pool-bot/api/shared"
	"sort"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// StoreUserPicks stores a user's confidence picks for one week
// Preconditions: Receives the user, the week number and the normalized pick map
// Postconditions: Stores or updates the user's pick set in the db, or returns an error if the operation was unsuccessful
func (s *Store) StoreUserPicks(user shared.User, week int, picks map[string]shared.Pick) error {
	// Persist picks as a list, ordered by game id for stable documents
	list := make([]shared.Pick, 0, len(picks))
	for _, pick := range picks {
		list = append(list, pick)
	}
	sort.Slice(list, func(i, j int) bool { return list[i].GameID < list[j].GameID })

	filter := bson.M{"poolid": s.PoolID, "season": s.Season, "week": week, "userid": user.UserID}

	var existing PickSetDoc
	err := s.Collections.Picks.FindOne(context.TODO(), filter).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing picks failed: %w", err)
	}

	doc := PickSetDoc{
		PoolID:   s.PoolID,
		Season:   s.Season,
		Week:     week,
		UserID:   user.UserID,
		Username: user.Username,
		Picks:    list,
	}

	// The user currently does not have picks stored so we create a new document
	if notFound {
		_, err := s.Collections.Picks.InsertOne(context.TODO(), doc)
		if err != nil {
			return fmt.Errorf("failed to insert new picks: %w", err)
		}
		return nil
	}

	// Else update the user's existing picks
	_, err = s.Collections.Picks.UpdateOne(context.TODO(), filter, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("failed to update existing picks: %w", err)
	}
	return nil
}

// GetUserPicks does a DB lookup and gets one user's confidence picks for a week
// Preconditions: Receives strings containing the userid and the week number
// Postconditions: Returns the user's pick map if it exists, or an error if it occurs
func (s *Store) GetUserPicks(userID string, week int) (map[string]shared.Pick, error) {
	var result PickSetDoc
	filter := bson.M{"poolid": s.PoolID, "season": s.Season, "week": week, "userid": userID}
	err := s.Collections.Picks.FindOne(context.TODO(), filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching picks from db: %w", err)
	}

	return result.PickMap(), nil
}

// GetWeekPicks does a DB lookup and gets every user's picks for a week. Used in scoring runs.
// Preconditions: Receives the week number
// Postconditions: Returns a slice of pick set documents, or an error if it occurs
func (s *Store) GetWeekPicks(week int) ([]PickSetDoc, error) {
	filter := bson.D{
		{Key: "poolid", Value: s.PoolID},
		{Key: "season", Value: s.Season},
		{Key: "week", Value: week},
	}

	cursor, err := s.Collections.Picks.Find(context.TODO(), filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching picks from db: %w", err)
	}

	var results []PickSetDoc
	if err = cursor.All(context.TODO(), &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of pick sets: %w", err)
	}

	return results, nil
}

// StoreSurvivorPick stores or replaces a user's survivor pick for one week.
// The full week-ordered history lives in a single document per user.
// Preconditions: Receives the user, the week number and the canonical team name
// Postconditions: Appends to or updates the user's survivor history, or returns an error if it occurs
func (s *Store) StoreSurvivorPick(user shared.User, week int, team string) error {
	filter := bson.M{"poolid": s.PoolID, "season": s.Season, "userid": user.UserID}

	var existing SurvivorPicksDoc
	err := s.Collections.SurvivorPicks.FindOne(context.TODO(), filter).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing survivor picks failed: %w", err)
	}

	if notFound {
		doc := SurvivorPicksDoc{
			PoolID:   s.PoolID,
			Season:   s.Season,
			UserID:   user.UserID,
			Username: user.Username,
			Picks:    []shared.SurvivorPick{{Week: week, Team: team}},
		}
		_, err := s.Collections.SurvivorPicks.InsertOne(context.TODO(), doc)
		if err != nil {
			return fmt.Errorf("failed to insert new survivor picks: %w", err)
		}
		return nil
	}

	// Replace the week's entry if present, otherwise append, keeping the
	// history in week order
	replaced := false
	for i := range existing.Picks {
		if existing.Picks[i].Week == week {
			existing.Picks[i].Team = team
			replaced = true
			break
		}
	}
	if !replaced {
		existing.Picks = append(existing.Picks, shared.SurvivorPick{Week: week, Team: team})
		sort.Slice(existing.Picks, func(i, j int) bool { return existing.Picks[i].Week < existing.Picks[j].Week })
	}
	existing.Username = user.Username

	_, err = s.Collections.SurvivorPicks.UpdateOne(context.TODO(), filter, bson.M{"$set": existing})
	if err != nil {
		return fmt.Errorf("failed to update existing survivor picks: %w", err)
	}
	return nil
}

// GetSurvivorHistory does a DB lookup and gets one user's ordered survivor pick history
// Preconditions: Receives a string containing the userid
// Postconditions: Returns the week-ordered pick history, or an error if it occurs
func (s *Store) GetSurvivorHistory(userID string) ([]shared.SurvivorPick, error) {
	var result SurvivorPicksDoc
	filter := bson.M{"poolid": s.PoolID, "season": s.Season, "userid": userID}
	err := s.Collections.SurvivorPicks.FindOne(context.TODO(), filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, err
		}
		return nil, fmt.Errorf("error fetching survivor picks from db: %w", err)
	}

	return result.Picks, nil
}

// GetAllSurvivorHistories gets every user's survivor pick history. Used in survivor evaluation runs.
// Preconditions: None beyond an initialised store
// Postconditions: Returns a slice of survivor pick documents, or an error if it occurs
func (s *Store) GetAllSurvivorHistories() ([]SurvivorPicksDoc, error) {
	filter := bson.D{
		{Key: "poolid", Value: s.PoolID},
		{Key: "season", Value: s.Season},
	}

	cursor, err := s.Collections.SurvivorPicks.Find(context.TODO(), filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching survivor picks from db: %w", err)
	}

	var results []SurvivorPicksDoc
	if err = cursor.All(context.TODO(), &results); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of survivor picks: %w", err)
	}

	return results, nil
}
