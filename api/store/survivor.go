/* survivor.go
 * Contains the methods for interacting with the survivor_records collection
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

// StoreSurvivorRecord stores one user's derived survivor record.
// Re-evaluation overwrites the prior record; the evaluator is monotonic so
// an eliminated record never flips back to alive.
// Preconditions: Receives the SurvivorRecord to be stored
// Postconditions: Inserts or updates the record document, or returns an error if it occurs
func (s *Store) StoreSurvivorRecord(record shared.SurvivorRecord) error {
	if record.UserID == "" {
		return fmt.Errorf("record userid is required")
	}

	filter := bson.M{"poolid": s.PoolID, "season": s.Season, "userid": record.UserID}

	var existing SurvivorRecordDoc
	err := s.Collections.SurvivorRecords.FindOne(context.TODO(), filter).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing survivor record failed: %w", err)
	}

	doc := SurvivorRecordDoc{PoolID: s.PoolID, Season: s.Season, SurvivorRecord: record}
	if notFound {
		_, err := s.Collections.SurvivorRecords.InsertOne(context.TODO(), doc)
		if err != nil {
			return fmt.Errorf("failed to insert survivor record: %w", err)
		}
		return nil
	}

	_, err = s.Collections.SurvivorRecords.UpdateOne(context.TODO(), filter, bson.M{"$set": doc})
	if err != nil {
		return fmt.Errorf("failed to update survivor record: %w", err)
	}
	return nil
}

// GetSurvivorRecord does a DB lookup and gets one user's survivor record
// Preconditions: Receives a string containing the userid
// Postconditions: Returns the SurvivorRecord if it exists, or an error if it occurs
func (s *Store) GetSurvivorRecord(userID string) (shared.SurvivorRecord, error) {
	var result SurvivorRecordDoc
	filter := bson.M{"poolid": s.PoolID, "season": s.Season, "userid": userID}
	err := s.Collections.SurvivorRecords.FindOne(context.TODO(), filter).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shared.SurvivorRecord{}, err
		}
		return shared.SurvivorRecord{}, fmt.Errorf("error fetching survivor record from db: %w", err)
	}

	return result.SurvivorRecord, nil
}

// GetSurvivorRecords gets every user's survivor record for the season
// Preconditions: None beyond an initialised store
// Postconditions: Returns a map of userid to SurvivorRecord, or an error if it occurs
func (s *Store) GetSurvivorRecords() (map[string]shared.SurvivorRecord, error) {
	filter := bson.D{
		{Key: "poolid", Value: s.PoolID},
		{Key: "season", Value: s.Season},
	}

	cursor, err := s.Collections.SurvivorRecords.Find(context.TODO(), filter)
	if err != nil {
		return nil, fmt.Errorf("error fetching survivor records from db: %w", err)
	}

	var docs []SurvivorRecordDoc
	if err = cursor.All(context.TODO(), &docs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of survivor records: %w", err)
	}

	records := make(map[string]shared.SurvivorRecord, len(docs))
	for _, doc := range docs {
		records[doc.UserID] = doc.SurvivorRecord
	}
	return records, nil
}
