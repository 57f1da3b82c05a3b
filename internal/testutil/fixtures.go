package testutil

import (
	"context"
	"net/http"
	"testing"

	"github.com/avelichko/groupmap/internal/app/system/random"
	"github.com/avelichko/groupmap/internal/domain/models"
	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// WithChiURLParam adds a chi URL parameter to the request context.
// Use this in handler tests that need to access chi.URLParam values.
func WithChiURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateGroup inserts a group with no members and returns it.
// Passcode is stored as-is; pass a bcrypt hash if the test needs one.
func (f *Fixtures) CreateGroup(ctx context.Context, name string) models.Group {
	f.t.Helper()

	g := models.Group{
		ID:         random.NewID(),
		Name:       name,
		InviteCode: random.NewInviteCode(),
		Users:      []models.User{},
		Structures: []models.Structure{},
	}
	if _, err := f.db.Collection("groups").InsertOne(ctx, g); err != nil {
		f.t.Fatalf("insert group: %v", err)
	}
	return g
}

// AddUser embeds a user into the group's users array and returns it.
// The location starts hidden with a zeroed position, matching what the
// join flow stores.
func (f *Fixtures) AddUser(ctx context.Context, groupID, name string, isAdmin bool) models.User {
	f.t.Helper()

	u := models.User{
		ID:      random.NewID(),
		Name:    name,
		IsAdmin: isAdmin,
		Location: &models.Geolocation{
			IsHidden: true,
		},
	}
	res, err := f.db.Collection("groups").UpdateOne(ctx,
		bson.M{"id": groupID},
		bson.M{"$push": bson.M{"users": u}})
	if err != nil {
		f.t.Fatalf("add user: %v", err)
	}
	if res.ModifiedCount == 0 {
		f.t.Fatalf("add user: group %s not found", groupID)
	}
	return u
}

// AddStructure embeds a structure owned by userID and returns it.
func (f *Fixtures) AddStructure(ctx context.Context, groupID, userID string, payload any) models.Structure {
	f.t.Helper()

	st := models.Structure{
		ID:     random.NewID(),
		User:   userID,
		Struct: payload,
		Fields: map[string]any{},
	}
	res, err := f.db.Collection("groups").UpdateOne(ctx,
		bson.M{"id": groupID},
		bson.M{"$push": bson.M{"structures": st}})
	if err != nil {
		f.t.Fatalf("add structure: %v", err)
	}
	if res.ModifiedCount == 0 {
		f.t.Fatalf("add structure: group %s not found", groupID)
	}
	return st
}
