/* members_test.go
 * Contains unit tests for members.go
 * AI-Generated
 */

package store

import (
	"errors"
	"pool-bot/api/shared"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestStoreMember_InsertNew(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("successfully inserts new member", func(mt *mtest.T) {
		store := newMockedStore(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.pool_members", mtest.FirstBatch))
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		member := shared.Member{
			UserID:      "user123",
			DisplayName: "Test User",
			Confidence:  true,
			Survivor:    true,
		}

		err := store.StoreMember(member)
		assert.NoError(t, err)
	})
}

func TestStoreMember_UpdateExisting(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("successfully updates enrollment flags", func(mt *mtest.T) {
		store := newMockedStore(mt)

		first := mtest.CreateCursorResponse(1, "test.pool_members", mtest.FirstBatch, bson.D{
			{Key: "userid", Value: "user123"},
			{Key: "display_name", Value: "Test User"},
		})
		getMore := mtest.CreateCursorResponse(0, "test.pool_members", mtest.NextBatch)
		updateSuccess := bson.D{
			{Key: "ok", Value: 1},
			{Key: "nModified", Value: 1},
		}
		mt.AddMockResponses(first, getMore, updateSuccess)

		err := store.StoreMember(shared.Member{UserID: "user123", DisplayName: "Test User", Survivor: true})
		assert.NoError(t, err)
	})
}

func TestGetMember_Success(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("successfully fetches a member", func(mt *mtest.T) {
		store := newMockedStore(mt)

		doc := mtest.CreateCursorResponse(1, "test.pool_members", mtest.FirstBatch, bson.D{
			{Key: "userid", Value: "user123"},
			{Key: "display_name", Value: "Test User"},
			{Key: "confidence", Value: true},
		})
		mt.AddMockResponses(doc)

		member, err := store.GetMember("user123")
		require.NoError(t, err)
		assert.Equal(t, "Test User", member.DisplayName)
		assert.True(t, member.Confidence)
		assert.False(t, member.Survivor)
	})
}

func TestGetMember_NotFound(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("passes through ErrNoDocuments for unknown member", func(mt *mtest.T) {
		store := newMockedStore(mt)

		mt.AddMockResponses(mtest.CreateCursorResponse(0, "test.pool_members", mtest.FirstBatch))

		_, err := store.GetMember("nobody")
		assert.True(t, errors.Is(err, mongo.ErrNoDocuments))
	})
}

func TestGetMembers_Success(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("successfully fetches all members keyed by user id", func(mt *mtest.T) {
		store := newMockedStore(mt)

		first := mtest.CreateCursorResponse(1, "test.pool_members", mtest.FirstBatch, bson.D{
			{Key: "userid", Value: "user1"},
			{Key: "display_name", Value: "First User"},
			{Key: "confidence", Value: true},
		})
		second := mtest.CreateCursorResponse(1, "test.pool_members", mtest.NextBatch, bson.D{
			{Key: "userid", Value: "user2"},
			{Key: "display_name", Value: "Second User"},
			{Key: "survivor", Value: true},
		})
		killCursors := mtest.CreateCursorResponse(0, "test.pool_members", mtest.NextBatch)
		mt.AddMockResponses(first, second, killCursors)

		members, err := store.GetMembers()
		require.NoError(t, err)
		require.Len(t, members, 2)
		assert.True(t, members["user1"].Confidence)
		assert.True(t, members["user2"].Survivor)
	})
}
