// internal/app/store/locations/locationstore.go

// Package locationstore reads and writes the per-user location
// sub-document embedded in group documents. The hidden flag is honored
// here, at the lowest read layer, so a hidden position can never leak
// into a response no matter what a handler does.
package locationstore

import (
	"context"
	"errors"

	"github.com/avelichko/groupmap/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

// All returns the visible positions of the group's members, in join
// order. Hidden and absent locations are skipped. excludeUser, when
// non-empty, drops that member from the result (callers pass their own
// id to leave themselves out). Returns nil with no error if the group
// does not exist.
func (s *Store) All(ctx context.Context, groupID, excludeUser string) ([]models.UserGeolocation, error) {
	var g models.Group
	if err := s.c.FindOne(ctx, bson.M{"id": groupID}).Decode(&g); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	result := []models.UserGeolocation{}
	for _, u := range g.Users {
		if u.ID == excludeUser {
			continue
		}
		if u.Location == nil || u.Location.IsHidden {
			continue
		}
		result = append(result, models.UserGeolocation{
			User:     u.ID,
			Position: u.Location.Position,
		})
	}
	return result, nil
}

// Get returns one member's position, or nil when the user is absent,
// has no location, or keeps it hidden — the three cases are not
// distinguished so a prober cannot tell a hidden member from a missing
// one.
func (s *Store) Get(ctx context.Context, groupID, userID string) (*models.GeoPosition, error) {
	pipe := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"id": groupID}}},
		{{Key: "$addFields", Value: bson.M{"users": bson.M{"$filter": bson.M{
			"input": "$users",
			"cond":  bson.M{"$eq": bson.A{"$$this.id", userID}},
		}}}}},
		{{Key: "$unwind", Value: "$users"}},
		{{Key: "$replaceWith", Value: bson.M{"$ifNull": bson.A{
			"$users.location",
			bson.M{"isHidden": true, "position": bson.M{"lat": 0, "lon": 0}},
		}}}},
	}
	cur, err := s.c.Aggregate(ctx, pipe)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		return nil, cur.Err()
	}
	var loc models.Geolocation
	if err := cur.Decode(&loc); err != nil {
		return nil, err
	}
	if loc.IsHidden {
		return nil, nil
	}
	return &loc.Position, nil
}

// Set stores a visible position for the member. Returns false when the
// matching user element was absent or the stored value was already
// identical; callers that reached this through the guard can treat
// either as success.
func (s *Store) Set(ctx context.Context, groupID, userID string, pos models.GeoPosition) (bool, error) {
	return s.setLocation(ctx, groupID, userID, models.Geolocation{
		IsHidden: false,
		Position: pos,
	})
}

// Erase hides the member's location and zeroes the stored position.
// Idempotent: erasing an already hidden location reports false with no
// error.
func (s *Store) Erase(ctx context.Context, groupID, userID string) (bool, error) {
	return s.setLocation(ctx, groupID, userID, models.Geolocation{
		IsHidden: true,
		Position: models.GeoPosition{},
	})
}

func (s *Store) setLocation(ctx context.Context, groupID, userID string, loc models.Geolocation) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"id": groupID},
		bson.M{"$set": bson.M{"users.$[element].location": loc}},
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []any{bson.M{"element.id": userID}},
		}),
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}
