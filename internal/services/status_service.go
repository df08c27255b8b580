package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/A1ekseiPanov/task-management-system/internal/auth"
	"github.com/A1ekseiPanov/task-management-system/internal/models"
	"github.com/A1ekseiPanov/task-management-system/internal/repository"
)

type StatusService struct {
	logger   zerolog.Logger
	statuses repository.Statuses
}

func NewStatusService(
	logger zerolog.Logger,
	statuses repository.Statuses,
) *StatusService {
	return &StatusService{
		logger:   logger,
		statuses: statuses,
	}
}

// Create adds a lifecycle label to the catalog. Only admins may mutate
// the catalog; other callers get ErrAdminRequired.
//
// It returns ErrStatusAlreadyExists on an exact name match.
func (s *StatusService) Create(ctx context.Context, caller auth.Identity, name string) (*models.Status, error) {
	if !caller.HasRole(models.RoleAdmin) {
		s.logger.Error().
			Int64("user_id", caller.UserID).
			Msg("status catalog mutation requires admin role")
		return nil, ErrAdminRequired
	}

	err := s.checkUnique(ctx, name)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	status := &models.Status{
		Audit: models.Audit{
			Created: now,
			Updated: now,
		},
		Name: name,
	}

	err = s.statuses.Create(ctx, status)
	if err != nil {
		// Lost the uniqueness race to a concurrent insert.
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.Error().
				Str("status", name).
				Msg("status already exists")
			return nil, ErrStatusAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert status")
		return nil, err
	}

	s.logger.Info().
		Int64("status_id", status.ID).
		Str("status", status.Name).
		Msg("created status")
	return status, nil
}

// Get returns ErrStatusNotFound if the status doesn't exist.
func (s *StatusService) Get(ctx context.Context, statusID int64) (*models.Status, error) {
	status, err := s.statuses.ByID(ctx, statusID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().
				Int64("status_id", statusID).
				Msg("status not found")
			return nil, ErrStatusNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("status_id", statusID).
			Msg("failed to select status by id")
		return nil, err
	}
	return status, nil
}

// Update renames a status, re-checking name uniqueness. Admin-only.
func (s *StatusService) Update(ctx context.Context, caller auth.Identity, statusID int64, name string) error {
	if !caller.HasRole(models.RoleAdmin) {
		s.logger.Error().
			Int64("user_id", caller.UserID).
			Msg("status catalog mutation requires admin role")
		return ErrAdminRequired
	}

	status, err := s.Get(ctx, statusID)
	if err != nil {
		return err
	}

	err = s.checkUnique(ctx, name)
	if err != nil {
		return err
	}

	status.Name = name
	status.Updated = time.Now()

	err = s.statuses.Update(ctx, status)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("status_id", statusID).
			Msg("failed to update status")
		return err
	}

	s.logger.Info().
		Int64("status_id", statusID).
		Str("status", name).
		Msg("updated status")
	return nil
}

// Delete removes a status. Admin-only. It returns ErrStatusInUse while
// any task still references the status.
func (s *StatusService) Delete(ctx context.Context, caller auth.Identity, statusID int64) error {
	if !caller.HasRole(models.RoleAdmin) {
		s.logger.Error().
			Int64("user_id", caller.UserID).
			Msg("status catalog mutation requires admin role")
		return ErrAdminRequired
	}

	err := s.statuses.Delete(ctx, statusID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			s.logger.Error().
				Int64("status_id", statusID).
				Msg("status not found")
			return ErrStatusNotFound
		case errors.Is(err, repository.ErrReferenced):
			s.logger.Error().
				Int64("status_id", statusID).
				Msg("status is still referenced by tasks")
			return ErrStatusInUse
		}

		s.logger.Error().
			Err(err).
			Int64("status_id", statusID).
			Msg("failed to delete status")
		return err
	}

	s.logger.Info().
		Int64("status_id", statusID).
		Msg("deleted status")
	return nil
}

// List returns the whole catalog in insertion order. The catalog is
// assumed small, so there is no pagination.
func (s *StatusService) List(ctx context.Context) ([]models.Status, error) {
	statuses, err := s.statuses.List(ctx)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select statuses")
		return nil, err
	}
	return statuses, nil
}

// checkUnique rejects a name already present in the catalog. The match is
// exact and case-sensitive, so "Pending" and "pending" may coexist.
func (s *StatusService) checkUnique(ctx context.Context, name string) error {
	_, err := s.statuses.ByName(ctx, name)
	if err == nil {
		s.logger.Error().
			Str("status", name).
			Msg("status already exists")
		return ErrStatusAlreadyExists
	}
	if !errors.Is(err, repository.ErrNotFound) {
		s.logger.Error().
			Err(err).
			Str("status", name).
			Msg("failed to select status by name")
		return err
	}
	return nil
}
