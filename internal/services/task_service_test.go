package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/A1ekseiPanov/task-management-system/internal/models"
	"github.com/A1ekseiPanov/task-management-system/internal/repository"
)

type taskServiceFixture struct {
	service  *TaskService
	users    *fakeUsers
	statuses *fakeStatuses
	tasks    *fakeTasks

	owner    int64
	other    int64
	statusID int64
}

func newTaskServiceFixture(t *testing.T) *taskServiceFixture {
	t.Helper()

	users := newFakeUsers()
	statuses := newFakeStatuses()
	tasks := newFakeTasks()
	ctx := context.Background()

	owner := &models.User{Email: "owner@example.com", Roles: []models.Role{models.RoleUser}}
	if err := users.Create(ctx, owner); err != nil {
		t.Fatalf("failed to seed owner: %v", err)
	}
	other := &models.User{Email: "other@example.com", Roles: []models.Role{models.RoleUser}}
	if err := users.Create(ctx, other); err != nil {
		t.Fatalf("failed to seed other user: %v", err)
	}

	status := &models.Status{Name: "Pending"}
	if err := statuses.Create(ctx, status); err != nil {
		t.Fatalf("failed to seed status: %v", err)
	}

	return &taskServiceFixture{
		service:  NewTaskService(zerolog.Nop(), tasks, users, statuses),
		users:    users,
		statuses: statuses,
		tasks:    tasks,
		owner:    owner.ID,
		other:    other.ID,
		statusID: status.ID,
	}
}

func (f *taskServiceFixture) createTask(t *testing.T, header string) *models.Task {
	t.Helper()

	task, err := f.service.Create(context.Background(), CreateTaskParams{
		Header:      header,
		Description: "description of " + header,
		StatusID:    f.statusID,
		Priority:    2,
		OwnerID:     f.owner,
	})
	if err != nil {
		t.Fatalf("failed to create task: %v", err)
	}
	return task
}

func TestTaskServiceCreate(t *testing.T) {
	f := newTaskServiceFixture(t)
	ctx := context.Background()

	task, err := f.service.Create(ctx, CreateTaskParams{
		Header:      "Ship release",
		Description: "Cut and publish the release",
		StatusID:    f.statusID,
		Priority:    3,
		OwnerID:     f.owner,
	})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if task.ID == 0 {
		t.Error("expected a non-zero task id")
	}
	if task.Priority != models.PriorityHigh {
		t.Errorf("expected priority HIGH, got %s", task.Priority)
	}
	if task.UserID != f.owner {
		t.Errorf("expected owner %d, got %d", f.owner, task.UserID)
	}
}

func TestTaskServiceCreateFailures(t *testing.T) {
	f := newTaskServiceFixture(t)
	ctx := context.Background()
	f.createTask(t, "Ship release")

	cases := []struct {
		name    string
		params  CreateTaskParams
		wantErr error
	}{
		{
			name: "invalid priority",
			params: CreateTaskParams{
				Header:      "Another task",
				Description: "description",
				StatusID:    f.statusID,
				Priority:    4,
				OwnerID:     f.owner,
			},
			wantErr: models.ErrInvalidPriority,
		},
		{
			name: "unknown status",
			params: CreateTaskParams{
				Header:      "Another task",
				Description: "description",
				StatusID:    f.statusID + 100,
				Priority:    1,
				OwnerID:     f.owner,
			},
			wantErr: ErrStatusNotFound,
		},
		{
			name: "unknown owner",
			params: CreateTaskParams{
				Header:      "Another task",
				Description: "description",
				StatusID:    f.statusID,
				Priority:    1,
				OwnerID:     f.other + 100,
			},
			wantErr: ErrUserNotFound,
		},
		{
			name: "duplicate header",
			params: CreateTaskParams{
				Header:      "Ship release",
				Description: "description",
				StatusID:    f.statusID,
				Priority:    1,
				OwnerID:     f.owner,
			},
			wantErr: ErrTaskAlreadyExists,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := f.service.Create(ctx, c.params)
			if !errors.Is(err, c.wantErr) {
				t.Fatalf("expected %v, got %v", c.wantErr, err)
			}
		})
	}
}

func TestTaskServiceUpdate(t *testing.T) {
	f := newTaskServiceFixture(t)
	ctx := context.Background()
	task := f.createTask(t, "Ship release")

	err := f.service.Update(ctx, task.ID, UpdateTaskParams{
		Header:      "Ship release v2",
		Description: "Cut and publish the release",
		StatusID:    f.statusID,
		Priority:    1,
	}, f.owner)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	stored := f.tasks.tasks[task.ID]
	if stored.Header != "Ship release v2" {
		t.Errorf("expected updated header, got %s", stored.Header)
	}
	if stored.Priority != models.PriorityLow {
		t.Errorf("expected priority LOW, got %s", stored.Priority)
	}
}

func TestTaskServiceUpdateByNonOwner(t *testing.T) {
	f := newTaskServiceFixture(t)
	ctx := context.Background()
	task := f.createTask(t, "Ship release")
	before := f.tasks.tasks[task.ID]

	// Somebody else's task looks exactly like a missing one.
	err := f.service.Update(ctx, task.ID, UpdateTaskParams{
		Header:      "Hijacked",
		Description: "should never land",
		StatusID:    f.statusID,
		Priority:    1,
	}, f.other)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound, got %v", err)
	}

	after := f.tasks.tasks[task.ID]
	if after != before {
		t.Errorf("expected the task to stay unchanged, got %+v", after)
	}
}

func TestTaskServiceUpdateStatus(t *testing.T) {
	f := newTaskServiceFixture(t)
	ctx := context.Background()
	task := f.createTask(t, "Ship release")

	done := &models.Status{Name: "Done"}
	if err := f.statuses.Create(ctx, done); err != nil {
		t.Fatalf("failed to seed status: %v", err)
	}

	// The owner isn't a performer, so even the owner can't transition.
	err := f.service.UpdateStatus(ctx, task.ID, f.owner, done.ID)
	if !errors.Is(err, ErrNotPerformer) {
		t.Fatalf("expected ErrNotPerformer for the owner, got %v", err)
	}

	err = f.service.UpdateStatus(ctx, task.ID, f.other, done.ID)
	if !errors.Is(err, ErrNotPerformer) {
		t.Fatalf("expected ErrNotPerformer for an outsider, got %v", err)
	}
	if f.tasks.tasks[task.ID].StatusID != f.statusID {
		t.Fatal("expected the status to stay unchanged")
	}

	_, err = f.service.AddPerformer(ctx, task.ID, f.owner, f.other)
	if err != nil {
		t.Fatalf("failed to add performer: %v", err)
	}

	err = f.service.UpdateStatus(ctx, task.ID, f.other, done.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if f.tasks.tasks[task.ID].StatusID != done.ID {
		t.Errorf("expected status %d, got %d", done.ID, f.tasks.tasks[task.ID].StatusID)
	}
}

func TestTaskServiceUpdateStatusUnknownStatus(t *testing.T) {
	f := newTaskServiceFixture(t)
	ctx := context.Background()
	task := f.createTask(t, "Ship release")

	_, err := f.service.AddPerformer(ctx, task.ID, f.owner, f.other)
	if err != nil {
		t.Fatalf("failed to add performer: %v", err)
	}

	err = f.service.UpdateStatus(ctx, task.ID, f.other, f.statusID+100)
	if !errors.Is(err, ErrStatusNotFound) {
		t.Fatalf("expected ErrStatusNotFound, got %v", err)
	}
}

func TestTaskServiceAddPerformer(t *testing.T) {
	f := newTaskServiceFixture(t)
	ctx := context.Background()
	task := f.createTask(t, "Ship release")

	_, err := f.service.AddPerformer(ctx, task.ID, f.other, f.other)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for a non-owner, got %v", err)
	}

	_, err = f.service.AddPerformer(ctx, task.ID, f.owner, f.other+100)
	if !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	_, err = f.service.AddPerformer(ctx, task.ID, f.owner, f.other)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	_, err = f.service.AddPerformer(ctx, task.ID, f.owner, f.other)
	if !errors.Is(err, ErrPerformerAlreadyAdded) {
		t.Fatalf("expected ErrPerformerAlreadyAdded, got %v", err)
	}

	performers, err := f.service.Performers(ctx, task.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(performers) != 1 || performers[0].ID != f.other {
		t.Errorf("expected performers [%d], got %v", f.other, performers)
	}
}

func TestTaskServiceRemovePerformer(t *testing.T) {
	f := newTaskServiceFixture(t)
	ctx := context.Background()
	task := f.createTask(t, "Ship release")

	err := f.service.RemovePerformer(ctx, task.ID, f.owner, f.other)
	if !errors.Is(err, ErrPerformerNotAssigned) {
		t.Fatalf("expected ErrPerformerNotAssigned, got %v", err)
	}

	_, err = f.service.AddPerformer(ctx, task.ID, f.owner, f.other)
	if err != nil {
		t.Fatalf("failed to add performer: %v", err)
	}

	err = f.service.RemovePerformer(ctx, task.ID, f.other, f.other)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for a non-owner, got %v", err)
	}

	err = f.service.RemovePerformer(ctx, task.ID, f.owner, f.other)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}

	performers, err := f.service.Performers(ctx, task.ID)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(performers) != 0 {
		t.Errorf("expected no performers, got %v", performers)
	}
}

func TestTaskServiceList(t *testing.T) {
	f := newTaskServiceFixture(t)
	ctx := context.Background()

	// Spread creation times so the descending order is deterministic.
	base := time.Now()
	for i, header := range []string{"Ship release", "Write docs", "Review docs"} {
		task, err := f.service.Create(ctx, CreateTaskParams{
			Header:      header,
			Description: "description of " + header,
			StatusID:    f.statusID,
			Priority:    1,
			OwnerID:     f.owner,
		})
		if err != nil {
			t.Fatalf("failed to create task: %v", err)
		}
		stored := f.tasks.tasks[task.ID]
		stored.Created = base.Add(time.Duration(i) * time.Second)
		f.tasks.tasks[task.ID] = stored
	}

	listed, err := f.service.List(ctx, ListTasksParams{Limit: 20})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(listed) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(listed))
	}
	if listed[0].Header != "Review docs" {
		t.Errorf("expected newest first, got %s", listed[0].Header)
	}

	listed, err = f.service.List(ctx, ListTasksParams{Header: "DOCS", Limit: 20})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(listed) != 2 {
		t.Fatalf("expected 2 tasks matching the header filter, got %d", len(listed))
	}

	listed, err = f.service.List(ctx, ListTasksParams{Header: "docs", Description: "review", Limit: 20})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(listed) != 1 || listed[0].Header != "Review docs" {
		t.Fatalf("expected only Review docs, got %v", listed)
	}

	listed, err = f.service.List(ctx, ListTasksParams{Limit: 2, Offset: 2})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(listed) != 1 || listed[0].Header != "Ship release" {
		t.Fatalf("expected the oldest task on the last page, got %v", listed)
	}
}

func TestTaskServiceDelete(t *testing.T) {
	f := newTaskServiceFixture(t)
	ctx := context.Background()
	task := f.createTask(t, "Ship release")

	err := f.service.Delete(ctx, task.ID, f.other)
	if !errors.Is(err, ErrTaskNotFound) {
		t.Fatalf("expected ErrTaskNotFound for a non-owner, got %v", err)
	}
	if _, ok := f.tasks.tasks[task.ID]; !ok {
		t.Fatal("expected the task to survive a non-owner delete")
	}

	err = f.service.Delete(ctx, task.ID, f.owner)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if _, err := f.tasks.ByID(ctx, task.ID); !errors.Is(err, repository.ErrNotFound) {
		t.Fatal("expected the task to be gone")
	}
}
