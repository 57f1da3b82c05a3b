// internal/app/store/structures/structurestore.go

// Package structurestore operates on the structures array embedded in
// group documents. Array elements are addressed by id through
// positional arrayFilters, never by index: element positions shift as
// siblings are pulled.
//
// The ByAuthor variants fold the ownership check into the update
// predicate itself, so "may this caller touch this structure" and the
// mutation are one atomic store operation with no check-then-act gap.
package structurestore

import (
	"context"
	"errors"
	"strings"

	"github.com/avelichko/groupmap/internal/domain/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrInvalidFieldKey is returned when a field key would escape its
// element's fields sub-document once spliced into an update path.
var ErrInvalidFieldKey = errors.New("invalid field key")

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("groups")}
}

// Push appends a structure to the group's structures array. A missing
// group is a silent no-op, mirroring the users array semantics.
func (s *Store) Push(ctx context.Context, groupID string, st models.Structure) error {
	_, err := s.c.UpdateOne(ctx,
		bson.M{"id": groupID},
		bson.M{"$push": bson.M{"structures": st}},
	)
	return err
}

// Find isolates a single embedded structure, or nil if the group or
// the structure is absent.
func (s *Store) Find(ctx context.Context, groupID, structID string) (*models.Structure, error) {
	cur, err := s.c.Aggregate(ctx, elementPipeline(groupID, structID, "$structures"))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		return nil, cur.Err()
	}
	var st models.Structure
	if err := cur.Decode(&st); err != nil {
		return nil, err
	}
	return &st, nil
}

// ReplacePayload swaps the matched element's struct payload, leaving
// id, user, and fields untouched. Returns false if no element matched.
func (s *Store) ReplacePayload(ctx context.Context, groupID, structID string, payload any) (bool, error) {
	return s.updateElement(ctx, groupID,
		bson.M{"element.id": structID},
		bson.M{"$set": bson.M{"structures.$[element].struct": payload}},
	)
}

// ReplacePayloadByAuthor is ReplacePayload constrained to elements
// authored by authorID. A false return can mean "absent" or "not
// yours"; callers disambiguate with Find.
func (s *Store) ReplacePayloadByAuthor(ctx context.Context, groupID, structID, authorID string, payload any) (bool, error) {
	return s.updateElement(ctx, groupID,
		bson.M{"element.id": structID, "element.user": authorID},
		bson.M{"$set": bson.M{"structures.$[element].struct": payload}},
	)
}

// Pull removes the matching structure. Returns whether an element was
// actually removed.
func (s *Store) Pull(ctx context.Context, groupID, structID string) (bool, error) {
	return s.pull(ctx, groupID, bson.M{"id": structID})
}

// PullByAuthor removes the structure only if authored by authorID.
func (s *Store) PullByAuthor(ctx context.Context, groupID, structID, authorID string) (bool, error) {
	return s.pull(ctx, groupID, bson.M{"id": structID, "user": authorID})
}

func (s *Store) pull(ctx context.Context, groupID string, match bson.M) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"id": groupID},
		bson.M{"$pull": bson.M{"structures": match}},
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// GetFields projects just the fields sub-document of the matched
// structure. A structure without fields yields an empty map; an absent
// structure yields nil.
func (s *Store) GetFields(ctx context.Context, groupID, structID string) (map[string]any, error) {
	replaceWith := bson.M{"$ifNull": bson.A{"$structures.fields", bson.M{}}}
	cur, err := s.c.Aggregate(ctx, elementPipeline(groupID, structID, replaceWith))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	if !cur.Next(ctx) {
		return nil, cur.Err()
	}
	fields := map[string]any{}
	if err := cur.Decode(&fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// PatchFields sets each entry individually under the matched element's
// fields sub-document, so sibling keys are preserved. At least one
// entry is required.
func (s *Store) PatchFields(ctx context.Context, groupID, structID string, entries map[string]any) (bool, error) {
	return s.patchFields(ctx, groupID, bson.M{"element.id": structID}, entries)
}

// PatchFieldsByAuthor is PatchFields constrained to the author.
func (s *Store) PatchFieldsByAuthor(ctx context.Context, groupID, structID, authorID string, entries map[string]any) (bool, error) {
	return s.patchFields(ctx, groupID, bson.M{"element.id": structID, "element.user": authorID}, entries)
}

func (s *Store) patchFields(ctx context.Context, groupID string, elementFilter bson.M, entries map[string]any) (bool, error) {
	if len(entries) == 0 {
		return false, nil
	}
	set := bson.M{}
	for key, value := range entries {
		path, err := fieldPath(key)
		if err != nil {
			return false, err
		}
		set[path] = value
	}
	return s.updateElement(ctx, groupID, elementFilter, bson.M{"$set": set})
}

// UnsetFields removes each named key from the matched element's fields
// sub-document without touching the others. Keys are trimmed of
// surrounding whitespace before matching.
func (s *Store) UnsetFields(ctx context.Context, groupID, structID string, keys []string) (bool, error) {
	return s.unsetFields(ctx, groupID, bson.M{"element.id": structID}, keys)
}

// UnsetFieldsByAuthor is UnsetFields constrained to the author.
func (s *Store) UnsetFieldsByAuthor(ctx context.Context, groupID, structID, authorID string, keys []string) (bool, error) {
	return s.unsetFields(ctx, groupID, bson.M{"element.id": structID, "element.user": authorID}, keys)
}

func (s *Store) unsetFields(ctx context.Context, groupID string, elementFilter bson.M, keys []string) (bool, error) {
	if len(keys) == 0 {
		return false, nil
	}
	unset := bson.M{}
	for _, key := range keys {
		path, err := fieldPath(strings.TrimSpace(key))
		if err != nil {
			return false, err
		}
		unset[path] = ""
	}
	return s.updateElement(ctx, groupID, elementFilter, bson.M{"$unset": unset})
}

func (s *Store) updateElement(ctx context.Context, groupID string, elementFilter, update bson.M) (bool, error) {
	res, err := s.c.UpdateOne(ctx,
		bson.M{"id": groupID},
		update,
		options.Update().SetArrayFilters(options.ArrayFilters{
			Filters: []any{elementFilter},
		}),
	)
	if err != nil {
		return false, err
	}
	return res.ModifiedCount > 0, nil
}

// fieldPath turns a user-supplied field key into a targeted update
// path. Keys that would traverse into a different path (dot, dollar
// prefix, NUL) are rejected rather than escaped.
func fieldPath(key string) (string, error) {
	if key == "" ||
		strings.ContainsAny(key, ".\x00") ||
		strings.HasPrefix(key, "$") {
		return "", ErrInvalidFieldKey
	}
	return "structures.$[element].fields." + key, nil
}

func elementPipeline(groupID, structID string, replaceWith any) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"id": groupID}}},
		{{Key: "$addFields", Value: bson.M{"structures": bson.M{"$filter": bson.M{
			"input": "$structures",
			"cond":  bson.M{"$eq": bson.A{"$$this.id", structID}},
		}}}}},
		{{Key: "$unwind", Value: "$structures"}},
		{{Key: "$replaceWith", Value: replaceWith}},
	}
}
