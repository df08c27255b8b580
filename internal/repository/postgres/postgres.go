package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/A1ekseiPanov/task-management-system/internal/repository"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
    id         BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    first_name TEXT        NOT NULL,
    last_name  TEXT        NOT NULL,
    email      VARCHAR(45) NOT NULL UNIQUE,
    password   TEXT        NOT NULL,
    roles      TEXT[]      NOT NULL,
    created    TIMESTAMPTZ NOT NULL,
    updated    TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS statuses (
    id      BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    status  TEXT        NOT NULL UNIQUE,
    created TIMESTAMPTZ NOT NULL,
    updated TIMESTAMPTZ NOT NULL
);

CREATE TABLE IF NOT EXISTS tasks (
    id          BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    header      TEXT        NOT NULL UNIQUE,
    description TEXT        NOT NULL,
    status_id   BIGINT      NOT NULL REFERENCES statuses (id),
    priority    TEXT        NOT NULL,
    user_id     BIGINT      NOT NULL REFERENCES users (id),
    created     TIMESTAMPTZ NOT NULL,
    updated     TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_tasks_user_id ON tasks (user_id);

CREATE TABLE IF NOT EXISTS tasks_performers (
    task_id      BIGINT NOT NULL REFERENCES tasks (id) ON DELETE CASCADE,
    performer_id BIGINT NOT NULL REFERENCES users (id),
    PRIMARY KEY (task_id, performer_id)
);

CREATE TABLE IF NOT EXISTS comments (
    id        BIGINT GENERATED ALWAYS AS IDENTITY PRIMARY KEY,
    comment   TEXT        NOT NULL,
    task_id   BIGINT      NOT NULL REFERENCES tasks (id) ON DELETE CASCADE,
    author_id BIGINT      NOT NULL REFERENCES users (id),
    created   TIMESTAMPTZ NOT NULL,
    updated   TIMESTAMPTZ NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_comments_task_id ON comments (task_id);
`

// Migrate creates the schema on startup. The DDL is idempotent, so a
// restart against an existing database is a no-op.
func Migrate(ctx context.Context, pgPool *pgxpool.Pool) error {
	_, err := pgPool.Exec(ctx, schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// wrapError translates driver failures into the storage sentinels
// declared by the repository package.
func wrapError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgerrcode.UniqueViolation:
			return repository.ErrDuplicate
		case pgerrcode.ForeignKeyViolation:
			return repository.ErrReferenced
		}
	}
	return err
}
