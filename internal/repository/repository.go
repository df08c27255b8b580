package repository

import (
	"context"
	"errors"

	"github.com/A1ekseiPanov/task-management-system/internal/models"
)

// Storage-level failures. Services translate these into their own
// domain sentinels, so transport code never sees them directly.
var (
	ErrNotFound   = errors.New("record not found")
	ErrDuplicate  = errors.New("record already exists")
	ErrReferenced = errors.New("record is referenced by another record")
)

type Users interface {
	// Create persists the user and fills in its id.
	// It returns ErrDuplicate if the email is already taken.
	Create(ctx context.Context, user *models.User) error
	ByID(ctx context.Context, id int64) (*models.User, error)
	ByEmail(ctx context.Context, email string) (*models.User, error)
}

type Statuses interface {
	// Create persists the status and fills in its id.
	// It returns ErrDuplicate if the name is already taken.
	Create(ctx context.Context, status *models.Status) error
	ByID(ctx context.Context, id int64) (*models.Status, error)
	ByName(ctx context.Context, name string) (*models.Status, error)
	Update(ctx context.Context, status *models.Status) error
	// Delete returns ErrReferenced while any task still uses the status.
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context) ([]models.Status, error)
}

// TaskFilter narrows and pages the task listing. Empty Header and
// Description match everything; both filters combine with AND and
// match case-insensitive substrings.
type TaskFilter struct {
	Header      string
	Description string
	Limit       int
	Offset      int
}

type Tasks interface {
	// Create persists the task and fills in its id.
	// It returns ErrDuplicate if the header is already taken.
	Create(ctx context.Context, task *models.Task) error
	ByID(ctx context.Context, id int64) (*models.Task, error)
	// ByIDAndOwner reports ErrNotFound both for a missing task and for a
	// task owned by somebody else, hiding other users' tasks.
	ByIDAndOwner(ctx context.Context, id, ownerID int64) (*models.Task, error)
	Update(ctx context.Context, task *models.Task) error
	Delete(ctx context.Context, id int64) error
	// List returns tasks ordered by creation time descending.
	List(ctx context.Context, filter TaskFilter) ([]models.Task, error)
	Performers(ctx context.Context, taskID int64) ([]models.User, error)
	// AddPerformer returns ErrDuplicate if the user is already assigned.
	AddPerformer(ctx context.Context, taskID, performerID int64) error
	RemovePerformer(ctx context.Context, taskID, performerID int64) error
	IsPerformer(ctx context.Context, taskID, userID int64) (bool, error)
}

type Comments interface {
	Create(ctx context.Context, comment *models.Comment) error
	ByID(ctx context.Context, id int64) (*models.Comment, error)
	Update(ctx context.Context, comment *models.Comment) error
	Delete(ctx context.Context, id int64) error
	// ListByTask returns comments ordered by creation time ascending.
	ListByTask(ctx context.Context, taskID int64, limit, offset int) ([]models.Comment, error)
}
