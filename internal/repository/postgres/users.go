package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/A1ekseiPanov/task-management-system/internal/models"
	"github.com/A1ekseiPanov/task-management-system/internal/repository"
)

type UserRepository struct {
	pgPool *pgxpool.Pool
}

func NewUserRepository(pgPool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pgPool: pgPool}
}

var _ repository.Users = (*UserRepository)(nil)

func rolesToStrings(roles []models.Role) []string {
	out := make([]string, len(roles))
	for i, r := range roles {
		out[i] = string(r)
	}
	return out
}

func rolesFromStrings(raw []string) []models.Role {
	out := make([]models.Role, len(raw))
	for i, r := range raw {
		out[i] = models.Role(r)
	}
	return out
}

func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	const insertUserQuery = `
INSERT INTO users (first_name,
                   last_name,
                   email,
                   password,
                   roles,
                   created,
                   updated)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id
`
	err := r.pgPool.QueryRow(
		ctx,
		insertUserQuery,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		rolesToStrings(user.Roles),
		user.Created,
		user.Updated,
	).Scan(&user.ID)
	if err != nil {
		return wrapError(err)
	}
	return nil
}

func (r *UserRepository) ByID(ctx context.Context, id int64) (*models.User, error) {
	const selectUserByIDQuery = `
SELECT id,
       first_name,
       last_name,
       email,
       password,
       roles,
       created,
       updated
FROM users
WHERE id = $1
`
	return r.scanUser(r.pgPool.QueryRow(ctx, selectUserByIDQuery, id))
}

func (r *UserRepository) ByEmail(ctx context.Context, email string) (*models.User, error) {
	const selectUserByEmailQuery = `
SELECT id,
       first_name,
       last_name,
       email,
       password,
       roles,
       created,
       updated
FROM users
WHERE email = $1
`
	return r.scanUser(r.pgPool.QueryRow(ctx, selectUserByEmailQuery, email))
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *UserRepository) scanUser(row rowScanner) (*models.User, error) {
	var (
		user  models.User
		roles []string
	)
	err := row.Scan(
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
	return &user, nil
}
