package forms

import (
	"context"
	"errors"

	"github.com/NKTHUAN-2K5/portfolio/internal/client"
	"github.com/NKTHUAN-2K5/portfolio/internal/logger"
	"github.com/NKTHUAN-2K5/portfolio/internal/models"
)

// ErrNotConfirmed is returned when a delete is attempted without explicit
// confirmation. No request is issued in that case.
var ErrNotConfirmed = errors.New("delete not confirmed")

// Outcome reports what a successful submit did, so callers can log and
// reload the owning collection from the source of truth. The displayed
// list is never patched optimistically.
type Outcome struct {
	Collection client.Collection
	Created    bool
	RecordID   int64
}

// Mutator persists form-derived records through the resource client.
type Mutator struct {
	client *client.Client
	log    logger.Logger
}

func NewMutator(c *client.Client, log logger.Logger) *Mutator {
	return &Mutator{client: c, log: log}
}

// Submit persists the record. A non-zero id selects a full-replace update
// of that exact record; a zero id selects a create, leaving id assignment
// to the backend. On failure the caller keeps the form state for
// correction; no retry is performed.
func (m *Mutator) Submit(ctx context.Context, col client.Collection, id int64, record any) (Outcome, error) {
	if id > 0 {
		if err := m.client.Update(ctx, col, id, record); err != nil {
			m.log.Error("Update failed",
				logger.String("collection", string(col)),
				logger.Int64("record_id", id),
				logger.Error(err),
			)
			return Outcome{}, err
		}
		m.log.Info("Record updated",
			logger.String("collection", string(col)),
			logger.Int64("record_id", id),
		)
		return Outcome{Collection: col, RecordID: id}, nil
	}

	if err := m.client.Create(ctx, col, record); err != nil {
		m.log.Error("Create failed",
			logger.String("collection", string(col)),
			logger.Error(err),
		)
		return Outcome{}, err
	}
	m.log.Info("Record created",
		logger.String("collection", string(col)),
	)
	return Outcome{Collection: col, Created: true}, nil
}

// SubmitProfile replaces the singleton profile.
func (m *Mutator) SubmitProfile(ctx context.Context, p *models.Profile) error {
	if err := m.client.UpdateProfile(ctx, p); err != nil {
		m.log.Error("Profile update failed", logger.Error(err))
		return err
	}
	m.log.Info("Profile updated")
	return nil
}

// Delete removes a record after explicit confirmation. Declining is a
// no-op: ErrNotConfirmed is returned and no request leaves the process.
func (m *Mutator) Delete(ctx context.Context, col client.Collection, id int64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	if err := m.client.Delete(ctx, col, id); err != nil {
		m.log.Error("Delete failed",
			logger.String("collection", string(col)),
			logger.Int64("record_id", id),
			logger.Error(err),
		)
		return err
	}
	m.log.Info("Record deleted",
		logger.String("collection", string(col)),
		logger.Int64("record_id", id),
	)
	return nil
}
