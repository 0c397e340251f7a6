package ports

import "context"

// SnapshotService implements form persistence: whole-form overwriting writes,
// tolerant restores, and an exactly-once clear after successful submission.
type SnapshotService interface {
	// Persist overwrites the client's snapshot with the full current field
	// set. Called on every field-level change.
	Persist(ctx context.Context, clientID string, fields map[string]string) error
	// Restore returns the stored field set. A missing or malformed snapshot
	// yields an empty map and no error: corruption is never surfaced.
	Restore(ctx context.Context, clientID string) (map[string]string, error)
	// Clear removes the snapshot. Idempotent.
	Clear(ctx context.Context, clientID string) error
}
