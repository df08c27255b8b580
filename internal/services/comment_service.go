package services

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/A1ekseiPanov/task-management-system/internal/models"
	"github.com/A1ekseiPanov/task-management-system/internal/repository"
)

type CommentService struct {
	logger   zerolog.Logger
	comments repository.Comments
	tasks    repository.Tasks
}

func NewCommentService(
	logger zerolog.Logger,
	comments repository.Comments,
	tasks repository.Tasks,
) *CommentService {
	return &CommentService{
		logger:   logger,
		comments: comments,
		tasks:    tasks,
	}
}

// Add attaches a comment to a task. The author must be the task's owner
// or one of its performers, otherwise ErrNotTaskMember.
func (s *CommentService) Add(ctx context.Context, params AddCommentParams) (*models.Comment, error) {
	task, err := s.tasks.ByID(ctx, params.TaskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().
				Int64("task_id", params.TaskID).
				Msg("task not found")
			return nil, ErrTaskNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("task_id", params.TaskID).
			Msg("failed to select task by id")
		return nil, err
	}

	if task.UserID != params.AuthorID {
		isPerformer, err := s.tasks.IsPerformer(ctx, params.TaskID, params.AuthorID)
		if err != nil {
			s.logger.Error().
				Err(err).
				Int64("task_id", params.TaskID).
				Msg("failed to check performer")
			return nil, err
		}
		if !isPerformer {
			s.logger.Error().
				Int64("task_id", params.TaskID).
				Int64("user_id", params.AuthorID).
				Msg("comment attempted by a user unrelated to the task")
			return nil, ErrNotTaskMember
		}
	}

	now := time.Now()
	comment := &models.Comment{
		Audit: models.Audit{
			Created: now,
			Updated: now,
		},
		Text:     params.Text,
		TaskID:   params.TaskID,
		AuthorID: params.AuthorID,
	}

	err = s.comments.Create(ctx, comment)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", params.TaskID).
			Msg("failed to insert comment")
		return nil, err
	}

	s.logger.Info().
		Int64("comment_id", comment.ID).
		Int64("task_id", params.TaskID).
		Int64("user_id", params.AuthorID).
		Msg("added comment")
	return comment, nil
}

// Update edits a comment's text. It returns ErrCommentNotFound if the
// comment doesn't exist and ErrCommentConflict unless the caller
// authored the comment AND the supplied task id matches the comment's
// actual task.
func (s *CommentService) Update(ctx context.Context, params ModifyCommentParams) error {
	comment, err := s.guardedComment(ctx, params.CommentID, params.TaskID, params.CallerID)
	if err != nil {
		return err
	}

	comment.Text = params.Text
	comment.Updated = time.Now()

	err = s.comments.Update(ctx, comment)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("comment_id", comment.ID).
			Msg("failed to update comment")
		return err
	}

	s.logger.Info().
		Int64("comment_id", comment.ID).
		Int64("user_id", params.CallerID).
		Msg("updated comment")
	return nil
}

// Delete removes a comment under the same guard as Update.
func (s *CommentService) Delete(ctx context.Context, commentID, taskID, callerID int64) error {
	comment, err := s.guardedComment(ctx, commentID, taskID, callerID)
	if err != nil {
		return err
	}

	err = s.comments.Delete(ctx, comment.ID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("comment_id", commentID).
			Msg("failed to delete comment")
		return err
	}

	s.logger.Info().
		Int64("comment_id", commentID).
		Int64("user_id", callerID).
		Msg("deleted comment")
	return nil
}

// ListByTask returns the task's comments ordered by creation time.
func (s *CommentService) ListByTask(ctx context.Context, taskID int64, limit, offset int) ([]models.Comment, error) {
	comments, err := s.comments.ListByTask(ctx, taskID, limit, offset)
	if err != nil {
		s.logger.Error().
			Err(err).
			Int64("task_id", taskID).
			Msg("failed to select comments by task")
		return nil, err
	}
	return comments, nil
}

// guardedComment loads a comment and enforces the edit/delete rule: the
// caller must be the author AND the supplied task id must match the
// comment's actual task. A single mismatch is reported as a conflict
// without revealing which half failed.
func (s *CommentService) guardedComment(ctx context.Context, commentID, taskID, callerID int64) (*models.Comment, error) {
	comment, err := s.comments.ByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Error().
				Int64("comment_id", commentID).
				Msg("comment not found")
			return nil, ErrCommentNotFound
		}

		s.logger.Error().
			Err(err).
			Int64("comment_id", commentID).
			Msg("failed to select comment by id")
		return nil, err
	}

	if comment.TaskID != taskID || comment.AuthorID != callerID {
		s.logger.Error().
			Int64("comment_id", commentID).
			Int64("task_id", taskID).
			Int64("user_id", callerID).
			Msg("wrong task or author for the comment")
		return nil, ErrCommentConflict
	}
	return comment, nil
}
