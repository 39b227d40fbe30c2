/* members.go
 * Contains the methods for interacting with the pool_members collection
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

// StoreMember stores or updates a pool member record
// Preconditions: Receives the Member to be stored
// Postconditions: Inserts or updates the member document keyed on pool and userid, or returns an error if it occurs
func (s *Store) StoreMember(member shared.Member) error {
	if member.UserID == "" {
		return fmt.Errorf("member userid cannot be empty")
	}

	// Attempt to find an existing document
	var existing MemberDoc
	err := s.Collections.Members.FindOne(context.TODO(), bson.M{"poolid": s.PoolID, "userid": member.UserID}).Decode(&existing)
	notFound := errors.Is(err, mongo.ErrNoDocuments)

	if err != nil && !notFound {
		return fmt.Errorf("lookup for existing member failed: %w", err)
	}

	doc := MemberDoc{PoolID: s.PoolID, Member: member}
	if notFound {
		_, err := s.Collections.Members.InsertOne(context.TODO(), doc)
		if err != nil {
			return fmt.Errorf("failed to insert new member: %w", err)
		}
		return nil
	}

	filter := bson.M{"poolid": s.PoolID, "userid": member.UserID}
	update := bson.M{"$set": doc}
	_, err = s.Collections.Members.UpdateOne(context.TODO(), filter, update)
	if err != nil {
		return fmt.Errorf("failed to update existing member: %w", err)
	}
	return nil
}

// GetMember does a DB lookup for a single pool member
// Preconditions: Receives a string containing the userid
// Postconditions: Returns the Member if it exists, or an error if it occurs
func (s *Store) GetMember(userID string) (shared.Member, error) {
	var result MemberDoc
	err := s.Collections.Members.FindOne(context.TODO(), bson.M{"poolid": s.PoolID, "userid": userID}).Decode(&result)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return shared.Member{}, err
		}
		return shared.Member{}, fmt.Errorf("error fetching member from db: %w", err)
	}

	return result.Member, nil
}

// GetMembers gets every member of the pool. Used in scoring and leaderboard calculations.
// Preconditions: None beyond an initialised store
// Postconditions: Returns a map of userid to Member, or an error if it occurs
func (s *Store) GetMembers() (map[string]shared.Member, error) {
	cursor, err := s.Collections.Members.Find(context.TODO(), bson.D{{Key: "poolid", Value: s.PoolID}})
	if err != nil {
		return nil, fmt.Errorf("error fetching members from db: %w", err)
	}

	var docs []MemberDoc
	if err = cursor.All(context.TODO(), &docs); err != nil {
		return nil, fmt.Errorf("error unpacking cursor into slice of members: %w", err)
	}

	members := make(map[string]shared.Member, len(docs))
	for _, doc := range docs {
		members[doc.UserID] = doc.Member
	}
	return members, nil
}
