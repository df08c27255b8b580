package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/A1ekseiPanov/task-management-system/internal/models"
	"github.com/A1ekseiPanov/task-management-system/internal/repository"
)

type TaskService struct {
	logger   zerolog.Logger
	tasks    repository.Tasks
	users    repository.Users
	statuses repository.Statuses
}

func NewTaskService(
	logger zerolog.Logger,
	tasks repository.Tasks,
	users repository.Users,
	statuses repository.Statuses,
) *TaskService {
	return &TaskService{
		logger:   logger,
		tasks:    tasks,
		users:    users,
		statuses: statuses,
	}
}

// Create persists a task owned by params.OwnerID.
//
// It returns ErrTaskAlreadyExists on a duplicate header, ErrStatusNotFound
// on an unknown status and models.ErrInvalidPriority on a priority index
// outside 1..3.
func (s *TaskService) Create(ctx context.Context, params CreateTaskParams) (*models.Task, error) {
	priority, err := models.PriorityFromIndex(params.Priority)
	if err != nil {
		s.logger.Error().
			Int("priority", params.Priority).
			Msg("invalid priority index")
		return nil, err
	}

	_, err = s.userByID(ctx, params.OwnerID)
	if err != nil {
		return nil, err
	}

	_, err = s.statusByID(ctx, params.StatusID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	task := &models.Task{
		Audit: models.Audit{
			Created: now,
			Updated: now,
		},
		Header:      params.Header,
		Description: params.Description,
		StatusID:    params.StatusID,
		Priority:    priority,
		UserID:      params.OwnerID,
	}

	err = s.tasks.Create(ctx, task)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.Error().
				Str("header", params.Header).
				Msg("task with this header already exists")
			return nil, ErrTaskAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Msg("failed to insert task")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", task.ID).
		Int64("user_id", task.UserID).
		Msg("created task")
	return task, nil
}

// Update replaces the task's header, description, status and priority.
// Only the owner may update a task: an ownership mismatch surfaces as
// ErrTaskNotFound, deliberately hiding the task's existence from
// non-owners.
func (s *TaskService) Update(ctx context.Context, taskID int64, params UpdateTaskParams, callerID int64) error {
	priority, err := models.PriorityFromIndex(params.Priority)
	if err != nil {
		s.logger.Error().
			Int("priority", params.Priority).
			Msg("invalid priority index")
		return err
	}

	task, err := s.taskOwnedBy(ctx, taskID, callerID)
	if err != nil {
		return err
	}

	_, err = s.statusByID(ctx, params.StatusID)
	if err != nil {
		return err
	}

	task.Header = params.Header
	task.Description = params.Description
	task.StatusID = params.StatusID
	task.Priority = priority
	task.Updated = time.Now()

	err = s.tasks.Update(ctx, task)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.Error().
				Str("header", params.Header).
				Msg("task with this header already exists")
			return ErrTaskAlreadyExists
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to update task")
		return err
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Int64("user_id", callerID).
		Msg("updated task")
	return nil
}

// UpdateStatus transitions the task to another catalog status. Only a
// current performer may do that; everyone else, the owner included, gets
// ErrNotPerformer.
func (s *TaskService) UpdateStatus(ctx context.Context, taskID, callerID, statusID int64) error {
	task, err := s.taskByID(ctx, taskID)
	if err != nil {
		return err
	}

	isPerformer, err := s.tasks.IsPerformer(ctx, taskID, callerID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to check performer")
		return err
	}
	if !isPerformer {
		s.logger.Error().
			Int64("task_id", taskID).
			Int64("user_id", callerID).
			Msg("status transition attempted by a non-performer")
		return ErrNotPerformer
	}

	_, err = s.statusByID(ctx, statusID)
	if err != nil {
		return err
	}

	task.StatusID = statusID
	task.Updated = time.Now()

	err = s.tasks.Update(ctx, task)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to update task status")
		return err
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Int64("status_id", statusID).
		Int64("user_id", callerID).
		Msg("updated task status")
	return nil
}

// AddPerformer assigns a user to execute the task. Owner-only, with the
// same not-found masking as Update. It returns ErrPerformerAlreadyAdded
// if the user is already assigned.
func (s *TaskService) AddPerformer(ctx context.Context, taskID, callerID, performerID int64) (*models.Task, error) {
	task, err := s.taskOwnedBy(ctx, taskID, callerID)
	if err != nil {
		return nil, err
	}

	_, err = s.userByID(ctx, performerID)
	if err != nil {
		return nil, err
	}

	err = s.tasks.AddPerformer(ctx, taskID, performerID)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			s.logger.Error().
				Int64("task_id", taskID).
				Int64("performer_id", performerID).
				Msg("performer already added")
			return nil, ErrPerformerAlreadyAdded
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to add performer")
		return nil, err
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Int64("performer_id", performerID).
		Msg("added performer")
	return task, nil
}

// RemovePerformer unassigns a user from the task. Owner-only.
func (s *TaskService) RemovePerformer(ctx context.Context, taskID, callerID, performerID int64) error {
	_, err := s.taskOwnedBy(ctx, taskID, callerID)
	if err != nil {
		return err
	}

	err = s.tasks.RemovePerformer(ctx, taskID, performerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().
				Int64("task_id", taskID).
				Int64("performer_id", performerID).
				Msg("performer is not assigned")
			return ErrPerformerNotAssigned
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to remove performer")
		return err
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Int64("performer_id", performerID).
		Msg("removed performer")
	return nil
}

// Performers lists the users assigned to the task.
func (s *TaskService) Performers(ctx context.Context, taskID int64) ([]models.User, error) {
	_, err := s.taskByID(ctx, taskID)
	if err != nil {
		return nil, err
	}

	performers, err := s.tasks.Performers(ctx, taskID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to select performers")
		return nil, err
	}
	return performers, nil
}

// List returns tasks ordered by creation time descending, optionally
// narrowed by case-insensitive substring filters on header and
// description (combined with AND).
func (s *TaskService) List(ctx context.Context, params ListTasksParams) ([]models.Task, error) {
	tasks, err := s.tasks.List(ctx, repository.TaskFilter{
		Header:      params.Header,
		Description: params.Description,
		Limit:       params.Limit,
		Offset:      params.Offset,
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select tasks")
		return nil, err
	}
	return tasks, nil
}

// Delete removes the task. Owner-only, with not-found masking.
func (s *TaskService) Delete(ctx context.Context, taskID, callerID int64) error {
	task, err := s.taskOwnedBy(ctx, taskID, callerID)
	if err != nil {
		return err
	}

	err = s.tasks.Delete(ctx, task.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to delete task")
		return err
	}

	s.logger.Info().
		Int64("task_id", taskID).
		Int64("user_id", callerID).
		Msg("deleted task")
	return nil
}

// taskOwnedBy resolves a task through the owner-scoped lookup: a task
// owned by somebody else is indistinguishable from a missing one.
func (s *TaskService) taskOwnedBy(ctx context.Context, taskID, ownerID int64) (*models.Task, error) {
	task, err := s.tasks.ByIDAndOwner(ctx, taskID, ownerID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().
				Int64("task_id", taskID).
				Int64("user_id", ownerID).
				Msg("task not found for this owner")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to select task by id and owner")
		return nil, err
	}
	return task, nil
}

func (s *TaskService) taskByID(ctx context.Context, taskID int64) (*models.Task, error) {
	task, err := s.tasks.ByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().
				Int64("task_id", taskID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to select task by id")
		return nil, err
	}
	return task, nil
}

func (s *TaskService) userByID(ctx context.Context, userID int64) (*models.User, error) {
	user, err := s.users.ByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().
				Int64("user_id", userID).
				Msg("user not found")
			return nil, ErrUserNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("user_id", userID).
			Msg("failed to select user by id")
		return nil, err
	}
	return user, nil
}

func (s *TaskService) statusByID(ctx context.Context, statusID int64) (*models.Status, error) {
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
