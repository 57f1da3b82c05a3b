// internal/app/system/indexes/indexes.go

// Package indexes ensures the indexes the stores rely on. Group ids and
// invite codes are generated by the app, so uniqueness is enforced here
// and Insert surfaces a duplicate-key error instead of retrying.
package indexes

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// EnsureAll is called at startup; index creation is idempotent.
func EnsureAll(ctx context.Context, db *mongo.Database, logger *zap.Logger) error {
	if err := ensureGroups(ctx, db); err != nil {
		return fmt.Errorf("groups: %w", err)
	}
	logger.Info("indexes ensured", zap.String("collection", "groups"))
	return nil
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("groups")
	_, err := c.Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "id", Value: 1}},
			Options: options.Index().SetName("uniq_id").SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "inviteCode", Value: 1}},
			Options: options.Index().SetName("uniq_invite_code").SetUnique(true),
		},
	})
	return err
}
