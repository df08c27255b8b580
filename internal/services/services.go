// Package services holds the domain rules: ownership, role gates and
// membership checks. Every operation receives the caller explicitly and
// fails fast with one of the sentinel errors below; transport maps them
// to wire statuses.
package services

import (
	"errors"
	"time"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrBadCredentials    = errors.New("wrong email or password")

	ErrAdminRequired       = errors.New("admin role required")
	ErrStatusNotFound      = errors.New("status not found")
	ErrStatusAlreadyExists = errors.New("status already exists")
	ErrStatusInUse         = errors.New("status is used by existing tasks")

	ErrTaskNotFound          = errors.New("task not found")
	ErrTaskAlreadyExists     = errors.New("task with this header already exists")
	ErrPerformerAlreadyAdded = errors.New("performer already added to the task")
	ErrPerformerNotAssigned  = errors.New("performer is not assigned to the task")
	ErrNotPerformer          = errors.New("caller is not a performer of the task")
	ErrNotTaskMember         = errors.New("caller is neither the owner nor a performer of the task")

	ErrCommentNotFound = errors.New("comment not found")
	ErrCommentConflict = errors.New("wrong task or author for the comment")
)

type RegisterParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

type LoginParams struct {
	Email    string
	Password string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
}

type CreateTaskParams struct {
	Header      string
	Description string
	StatusID    int64
	// Priority is the 1-based index: 1-low, 2-medium, 3-high.
	Priority int
	OwnerID  int64
}

type UpdateTaskParams struct {
	Header      string
	Description string
	StatusID    int64
	Priority    int
}

type ListTasksParams struct {
	Header      string
	Description string
	Limit       int
	Offset      int
}

type AddCommentParams struct {
	Text     string
	TaskID   int64
	AuthorID int64
}

type ModifyCommentParams struct {
	CommentID int64
	TaskID    int64
	CallerID  int64
	Text      string
}
