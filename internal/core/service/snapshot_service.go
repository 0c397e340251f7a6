package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/aiqb/preorder-system/internal/core/domain"
	"github.com/aiqb/preorder-system/internal/core/ports"
)

// SnapshotService persists in-progress preorder form data so a reload does
// not lose typed input.
type SnapshotService struct {
	repo   ports.SnapshotRepository
	logger zerolog.Logger
}

func NewSnapshotService(repo ports.SnapshotRepository, logger zerolog.Logger) *SnapshotService {
	return &SnapshotService{repo: repo, logger: logger}
}

// Persist captures the full current field set, replacing any prior snapshot.
// Partial writes never happen: the snapshot is one atomic unit.
func (s *SnapshotService) Persist(ctx context.Context, clientID string, fields map[string]string) error {
	if fields == nil {
		fields = map[string]string{}
	}
	return s.repo.Put(ctx, &domain.FormSnapshot{
		ClientID:  clientID,
		Fields:    fields,
		UpdatedAt: time.Now().UTC(),
	})
}

// Restore returns the stored field set. Missing and malformed snapshots both
// come back as an empty map with no error; corruption is dropped silently
// and the bad record is removed best-effort.
func (s *SnapshotService) Restore(ctx context.Context, clientID string) (map[string]string, error) {
	snap, err := s.repo.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, domain.ErrSnapshotNotFound) {
			return map[string]string{}, nil
		}
		if errors.Is(err, domain.ErrSnapshotCorrupt) {
			s.logger.Warn().Str("client_id", clientID).Msg("discarding corrupt form snapshot")
			if delErr := s.repo.Delete(ctx, clientID); delErr != nil {
				s.logger.Debug().Err(delErr).Msg("failed to delete corrupt snapshot")
			}
			return map[string]string{}, nil
		}
		return nil, err
	}
	if snap.Fields == nil {
		return map[string]string{}, nil
	}
	return snap.Fields, nil
}

// Clear removes the snapshot. Called exactly once per successful submission;
// clearing an already-empty snapshot is a no-op.
func (s *SnapshotService) Clear(ctx context.Context, clientID string) error {
	return s.repo.Delete(ctx, clientID)
}
