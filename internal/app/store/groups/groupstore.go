// internal/app/store/groups/groupstore.go

// Package groupstore persists group root documents. Users and
// structures are embedded arrays on the group, so every mutation here
// is a single atomic document update; absence is signalled with
// nil/false returns, never errors.
package groupstore

import (
	"context"
	"errors"

	"github.com/avelichko/groupmap/internal/domain/models"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// ErrDuplicate is returned by Insert when the generated id or invite
// code collides with an existing group. The store does not retry;
// identifier generation is the caller's responsibility.
var ErrDuplicate = errors.New("group id or invite code already exists")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

// Insert adds a new group document.
func (s *Store) Insert(ctx context.Context, g models.Group) error {
	if _, err := s.c.InsertOne(ctx, g); err != nil {
		if wafflemongo.IsDup(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByID returns the group, or nil if no such group exists.
func (s *Store) GetByID(ctx context.Context, id string) (*models.Group, error) {
	return s.getOne(ctx, bson.M{"id": id})
}

// GetByInviteCode returns the group with the given invite code, or nil.
func (s *Store) GetByInviteCode(ctx context.Context, code string) (*models.Group, error) {
	return s.getOne(ctx, bson.M{"inviteCode": code})
}

func (s *Store) getOne(ctx context.Context, filter bson.M) (*models.Group, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, filter).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &g, nil
}

// Delete removes a group document, cascading the embedded users and
// structures with it. The bool result is the caller's only signal to
// distinguish "deleted" from "was already absent".
func (s *Store) Delete(ctx context.Context, id string) (bool, error) {
	res, err := s.c.DeleteOne(ctx, bson.M{"id": id})
	if err != nil {
		return false, err
	}
	return res.DeletedCount > 0, nil
}

// PushUser appends a user to the group's users array. Appending to a
// missing group is a silent no-op; callers that care must check
// existence first.
func (s *Store) PushUser(ctx context.Context, groupID string, u models.User) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"id": groupID},
		bson.M{"$push": bson.M{"users": u}},
	)
	return err
}

// FindUser isolates a single embedded user: match the group, filter its
// users array down to the matching id, unwind, and promote the element
// to the root document. Returns nil when the group or the user is
// absent — the two cases are indistinguishable on purpose, since both
// mean the user does not currently exist in that group.
func (s *Store) FindUser(ctx context.Context, groupID, userID string) (*models.User, error) {
	cur, err := s.c.Aggregate(ctx, elementPipeline(groupID, "users", userID, "$users"))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		return nil, cur.Err()
	}
	var u models.User
	if err := cur.Decode(&u); err != nil {
		return nil, err
	}
	return &u, nil
}

// PullUser removes the matching embedded user. Returns whether an
// element was actually removed.
func (s *Store) PullUser(ctx context.Context, groupID, userID string) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"id": groupID},
		bson.M{"$pull": bson.M{"users": bson.M{"id": userID}}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// elementPipeline builds the shared match → filter → unwind →
// replace-root pipeline used to project one array element (or a
// sub-path of it, via replaceWith) out of a group document.
func elementPipeline(groupID, array, elementID, replaceWith string) mongo.Pipeline {
	field := "$" + array
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"id": groupID}}},
		{{Key: "$addFields", Value: bson.M{array: bson.M{"$filter": bson.M{
			"input": field,
			"cond":  bson.M{"$eq": bson.A{"$$this.id", elementID}},
		}}}}},
		{{Key: "$unwind", Value: field}},
		{{Key: "$replaceWith", Value: replaceWith}},
	}
}
