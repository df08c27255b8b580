package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/A1ekseiPanov/task-management-system/internal/models"
	"github.com/A1ekseiPanov/task-management-system/internal/repository"
)

type CommentRepository struct {
	pgPool *pgxpool.Pool
}

func NewCommentRepository(pgPool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pgPool: pgPool}
}

var _ repository.Comments = (*CommentRepository)(nil)

func (r *CommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	const insertCommentQuery = `
INSERT INTO comments (comment, task_id, author_id, created, updated)
VALUES ($1, $2, $3, $4, $5)
RETURNING id
`
	err := r.pgPool.QueryRow(
		ctx,
		insertCommentQuery,
		comment.Text,
		comment.TaskID,
		comment.AuthorID,
		comment.Created,
		comment.Updated,
	).Scan(&comment.ID)
	if err != nil {
		return wrapError(err)
	}
	return nil
}

func (r *CommentRepository) ByID(ctx context.Context, id int64) (*models.Comment, error) {
	const selectCommentByIDQuery = `
SELECT id, comment, task_id, author_id, created, updated
FROM comments
WHERE id = $1
`
	var comment models.Comment
	err := r.pgPool.QueryRow(ctx, selectCommentByIDQuery, id).Scan(
		&comment.ID,
		&comment.Text,
		&comment.TaskID,
		&comment.AuthorID,
		&comment.Created,
		&comment.Updated,
	)
	if err != nil {
		return nil, wrapError(err)
	}
	return &comment, nil
}

func (r *CommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	const updateCommentQuery = `
UPDATE comments
SET comment = $1,
    updated = $2
WHERE id = $3
`
	tag, err := r.pgPool.Exec(
		ctx,
		updateCommentQuery,
		comment.Text,
		comment.Updated,
		comment.ID,
	)
	if err != nil {
		return wrapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) Delete(ctx context.Context, id int64) error {
	const deleteCommentQuery = `
DELETE FROM comments
WHERE id = $1
`
	tag, err := r.pgPool.Exec(ctx, deleteCommentQuery, id)
	if err != nil {
		return wrapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) ListByTask(ctx context.Context, taskID int64, limit, offset int) ([]models.Comment, error) {
	const selectCommentsByTaskQuery = `
SELECT id, comment, task_id, author_id, created, updated
FROM comments
WHERE task_id = $1
ORDER BY created
LIMIT $2 OFFSET $3
`
	rows, err := r.pgPool.Query(ctx, selectCommentsByTaskQuery, taskID, limit, offset)
	if err != nil {
		return nil, wrapError(err)
	}
	defer rows.Close()

	comments := make([]models.Comment, 0, limit)
	for rows.Next() {
		var comment models.Comment
		err = rows.Scan(
			&comment.ID,
			&comment.Text,
			&comment.TaskID,
			&comment.AuthorID,
			&comment.Created,
			&comment.Updated,
		)
		if err != nil {
			return nil, wrapError(err)
		}
		comments = append(comments, comment)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapError(err)
	}
	return comments, nil
}
