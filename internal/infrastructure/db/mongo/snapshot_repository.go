package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/aiqb/preorder-system/internal/core/domain"
)

const collectionSnapshots = "form_snapshots"

// SnapshotRepository stores one form snapshot document per client id.
type SnapshotRepository struct {
	col *mongo.Collection
}

func NewSnapshotRepository(db *mongo.Database) *SnapshotRepository {
	return &SnapshotRepository{col: db.Collection(collectionSnapshots)}
}

// Get retrieves the snapshot for a client. A document whose fields fail to
// decode maps to domain.ErrSnapshotCorrupt so the service can discard it the
// way the page discards unparseable stored data. Transport and context
// errors propagate as-is: a Mongo hiccup must not read as a corrupt draft.
func (r *SnapshotRepository) Get(ctx context.Context, clientID string) (*domain.FormSnapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res := r.col.FindOne(ctx, bson.M{"_id": clientID})
	if err := res.Err(); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("find form snapshot: %w", err)
	}

	var snap domain.FormSnapshot
	if err := res.Decode(&snap); err != nil {
		// The query succeeded, so a failed decode means the stored document
		// no longer matches the snapshot shape.
		return nil, domain.ErrSnapshotCorrupt
	}
	return &snap, nil
}

// Put fully replaces any prior snapshot for the client (upsert).
func (r *SnapshotRepository) Put(ctx context.Context, snapshot *domain.FormSnapshot) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Replace().SetUpsert(true)
	_, err := r.col.ReplaceOne(ctx, bson.M{"_id": snapshot.ClientID}, snapshot, opts)
	return err
}

// Delete removes the snapshot. Missing documents are not an error.
func (r *SnapshotRepository) Delete(ctx context.Context, clientID string) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := r.col.DeleteOne(ctx, bson.M{"_id": clientID})
	return err
}
