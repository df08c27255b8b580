package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/A1ekseiPanov/task-management-system/internal/models"
	"github.com/A1ekseiPanov/task-management-system/internal/repository"
)

type TaskRepository struct {
	pgPool *pgxpool.Pool
}

func NewTaskRepository(pgPool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pgPool: pgPool}
}

var _ repository.Tasks = (*TaskRepository)(nil)

func (r *TaskRepository) Create(ctx context.Context, task *models.Task) error {
	const insertTaskQuery = `
INSERT INTO tasks (header,
                   description,
                   status_id,
                   priority,
                   user_id,
                   created,
                   updated)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`
	err := r.pgPool.QueryRow(
		ctx,
		insertTaskQuery,
		task.Header,
		task.Description,
		task.StatusID,
		task.Priority,
		task.UserID,
		task.Created,
		task.Updated,
	).Scan(&task.ID)
	if err != nil {
		return wrapError(err)
	}
	return nil
}

func (r *TaskRepository) ByID(ctx context.Context, id int64) (*models.Task, error) {
	const selectTaskByIDQuery = `
SELECT id, header, description, status_id, priority, user_id, created, updated
FROM tasks
WHERE id = $1
`
	return r.scanTask(r.pgPool.QueryRow(ctx, selectTaskByIDQuery, id))
}

func (r *TaskRepository) ByIDAndOwner(ctx context.Context, id, ownerID int64) (*models.Task, error) {
	const selectTaskByIDAndOwnerQuery = `
SELECT id, header, description, status_id, priority, user_id, created, updated
FROM tasks
WHERE id = $1 AND user_id = $2
`
	return r.scanTask(r.pgPool.QueryRow(ctx, selectTaskByIDAndOwnerQuery, id, ownerID))
}

func (r *TaskRepository) Update(ctx context.Context, task *models.Task) error {
	const updateTaskQuery = `
UPDATE tasks
SET header = $1,
    description = $2,
    status_id = $3,
    priority = $4,
    updated = $5
WHERE id = $6
`
	tag, err := r.pgPool.Exec(
		ctx,
		updateTaskQuery,
		task.Header,
		task.Description,
		task.StatusID,
		task.Priority,
		task.Updated,
		task.ID,
	)
	if err != nil {
		return wrapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	const deleteTaskQuery = `
DELETE FROM tasks
WHERE id = $1
`
	tag, err := r.pgPool.Exec(ctx, deleteTaskQuery, id)
	if err != nil {
		return wrapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) List(ctx context.Context, filter repository.TaskFilter) ([]models.Task, error) {
	const selectTasksQuery = `
SELECT id, header, description, status_id, priority, user_id, created, updated
FROM tasks
WHERE ($1 = '' OR LOWER(header) LIKE '%' || LOWER($1) || '%')
  AND ($2 = '' OR LOWER(description) LIKE '%' || LOWER($2) || '%')
ORDER BY created DESC
LIMIT $3 OFFSET $4
`
	rows, err := r.pgPool.Query(
		ctx,
		selectTasksQuery,
		filter.Header,
		filter.Description,
		filter.Limit,
		filter.Offset,
	)
	if err != nil {
		return nil, wrapError(err)
	}
	defer rows.Close()

	tasks := make([]models.Task, 0, filter.Limit)
	for rows.Next() {
		var task models.Task
		err = rows.Scan(
			&task.ID,
			&task.Header,
			&task.Description,
			&task.StatusID,
			&task.Priority,
			&task.UserID,
			&task.Created,
			&task.Updated,
		)
		if err != nil {
			return nil, wrapError(err)
		}
		tasks = append(tasks, task)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapError(err)
	}
	return tasks, nil
}

func (r *TaskRepository) Performers(ctx context.Context, taskID int64) ([]models.User, error) {
	const selectPerformersQuery = `
SELECT u.id, u.first_name, u.last_name, u.email, u.password, u.roles, u.created, u.updated
FROM users u
         JOIN tasks_performers tp ON tp.performer_id = u.id
WHERE tp.task_id = $1
ORDER BY u.id
`
	rows, err := r.pgPool.Query(ctx, selectPerformersQuery, taskID)
	if err != nil {
		return nil, wrapError(err)
	}
	defer rows.Close()

	var performers []models.User
	for rows.Next() {
		var (
			user  models.User
			roles []string
		)
		err = rows.Scan(
			&user.ID,
			&user.FirstName,
			&user.LastName,
			&user.Email,
			&user.PasswordHash,
			&roles,
			&user.Created,
			&user.Updated,
		)
		if err != nil {
			return nil, wrapError(err)
		}
		user.Roles = rolesFromStrings(roles)
		performers = append(performers, user)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapError(err)
	}
	return performers, nil
}

func (r *TaskRepository) AddPerformer(ctx context.Context, taskID, performerID int64) error {
	const insertPerformerQuery = `
INSERT INTO tasks_performers (task_id, performer_id)
VALUES ($1, $2)
`
	_, err := r.pgPool.Exec(ctx, insertPerformerQuery, taskID, performerID)
	if err != nil {
		return wrapError(err)
	}
	return nil
}

func (r *TaskRepository) RemovePerformer(ctx context.Context, taskID, performerID int64) error {
	const deletePerformerQuery = `
DELETE FROM tasks_performers
WHERE task_id = $1 AND performer_id = $2
`
	tag, err := r.pgPool.Exec(ctx, deletePerformerQuery, taskID, performerID)
	if err != nil {
		return wrapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *TaskRepository) IsPerformer(ctx context.Context, taskID, userID int64) (bool, error) {
	const selectIsPerformerQuery = `
SELECT EXISTS (SELECT 1
               FROM tasks_performers
               WHERE task_id = $1 AND performer_id = $2)
`
	var exists bool
	err := r.pgPool.QueryRow(ctx, selectIsPerformerQuery, taskID, userID).Scan(&exists)
	if err != nil {
		return false, wrapError(err)
	}
	return exists, nil
}

func (r *TaskRepository) scanTask(row rowScanner) (*models.Task, error) {
	var task models.Task
	err := row.Scan(
		&task.ID,
		&task.Header,
		&task.Description,
		&task.StatusID,
		&task.Priority,
		&task.UserID,
		&task.Created,
		&task.Updated,
	)
	if err != nil {
		return nil, wrapError(err)
	}
	return &task, nil
}
