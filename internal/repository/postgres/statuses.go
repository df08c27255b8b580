package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/A1ekseiPanov/task-management-system/internal/models"
	"github.com/A1ekseiPanov/task-management-system/internal/repository"
)

type StatusRepository struct {
	pgPool *pgxpool.Pool
}

func NewStatusRepository(pgPool *pgxpool.Pool) *StatusRepository {
	return &StatusRepository{pgPool: pgPool}
}

var _ repository.Statuses = (*StatusRepository)(nil)

func (r *StatusRepository) Create(ctx context.Context, status *models.Status) error {
	const insertStatusQuery = `
INSERT INTO statuses (status, created, updated)
VALUES ($1, $2, $3)
RETURNING id
`
	err := r.pgPool.QueryRow(
		ctx,
		insertStatusQuery,
		status.Name,
		status.Created,
		status.Updated,
	).Scan(&status.ID)
	if err != nil {
		return wrapError(err)
	}
	return nil
}

func (r *StatusRepository) ByID(ctx context.Context, id int64) (*models.Status, error) {
	const selectStatusByIDQuery = `
SELECT id, status, created, updated
FROM statuses
WHERE id = $1
`
	return r.scanStatus(r.pgPool.QueryRow(ctx, selectStatusByIDQuery, id))
}

func (r *StatusRepository) ByName(ctx context.Context, name string) (*models.Status, error) {
	const selectStatusByNameQuery = `
SELECT id, status, created, updated
FROM statuses
WHERE status = $1
`
	return r.scanStatus(r.pgPool.QueryRow(ctx, selectStatusByNameQuery, name))
}

func (r *StatusRepository) Update(ctx context.Context, status *models.Status) error {
	const updateStatusQuery = `
UPDATE statuses
SET status = $1,
    updated = $2
WHERE id = $3
`
	tag, err := r.pgPool.Exec(
		ctx,
		updateStatusQuery,
		status.Name,
		status.Updated,
		status.ID,
	)
	if err != nil {
		return wrapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *StatusRepository) Delete(ctx context.Context, id int64) error {
	const deleteStatusQuery = `
DELETE FROM statuses
WHERE id = $1
`
	tag, err := r.pgPool.Exec(ctx, deleteStatusQuery, id)
	if err != nil {
		return wrapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func (r *StatusRepository) List(ctx context.Context) ([]models.Status, error) {
	const selectStatusesQuery = `
SELECT id, status, created, updated
FROM statuses
ORDER BY id
`
	rows, err := r.pgPool.Query(ctx, selectStatusesQuery)
	if err != nil {
		return nil, wrapError(err)
	}
	defer rows.Close()

	var statuses []models.Status
	for rows.Next() {
		var status models.Status
		err = rows.Scan(
			&status.ID,
			&status.Name,
			&status.Created,
			&status.Updated,
		)
		if err != nil {
			return nil, wrapError(err)
		}
		statuses = append(statuses, status)
	}
	if err = rows.Err(); err != nil {
		return nil, wrapError(err)
	}
	return statuses, nil
}

func (r *StatusRepository) scanStatus(row rowScanner) (*models.Status, error) {
	var status models.Status
	err := row.Scan(
		&status.ID,
		&status.Name,
		&status.Created,
		&status.Updated,
	)
	if err != nil {
		return nil, wrapError(err)
	}
	return &status, nil
}
