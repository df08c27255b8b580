package services

import (
	"context"
	"sort"
	"strings"

	"github.com/A1ekseiPanov/task-management-system/internal/models"
	"github.com/A1ekseiPanov/task-management-system/internal/repository"
)

// In-memory repository fakes. They hand out copies, so a service that
// mutates a returned record changes nothing until it calls Update.

type fakeUsers struct {
	nextID int64
	users  map[int64]models.User
}

func newFakeUsers() *fakeUsers {
	return &fakeUsers{users: make(map[int64]models.User)}
}

func (f *fakeUsers) Create(_ context.Context, user *models.User) error {
	for _, u := range f.users {
		if u.Email == user.Email {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	user.ID = f.nextID
	f.users[user.ID] = *user
	return nil
}

func (f *fakeUsers) ByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &user, nil
}

func (f *fakeUsers) ByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			user := u
			return &user, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeStatuses struct {
	nextID   int64
	statuses map[int64]models.Status
	// referenced marks status ids still used by tasks, making Delete
	// fail the way a foreign key would.
	referenced map[int64]bool
}

func newFakeStatuses() *fakeStatuses {
	return &fakeStatuses{
		statuses:   make(map[int64]models.Status),
		referenced: make(map[int64]bool),
	}
}

func (f *fakeStatuses) Create(_ context.Context, status *models.Status) error {
	for _, s := range f.statuses {
		if s.Name == status.Name {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	status.ID = f.nextID
	f.statuses[status.ID] = *status
	return nil
}

func (f *fakeStatuses) ByID(_ context.Context, id int64) (*models.Status, error) {
	status, ok := f.statuses[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &status, nil
}

func (f *fakeStatuses) ByName(_ context.Context, name string) (*models.Status, error) {
	for _, s := range f.statuses {
		if s.Name == name {
			status := s
			return &status, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (f *fakeStatuses) Update(_ context.Context, status *models.Status) error {
	if _, ok := f.statuses[status.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, s := range f.statuses {
		if s.Name == status.Name && s.ID != status.ID {
			return repository.ErrDuplicate
		}
	}
	f.statuses[status.ID] = *status
	return nil
}

func (f *fakeStatuses) Delete(_ context.Context, id int64) error {
	if _, ok := f.statuses[id]; !ok {
		return repository.ErrNotFound
	}
	if f.referenced[id] {
		return repository.ErrReferenced
	}
	delete(f.statuses, id)
	return nil
}

func (f *fakeStatuses) List(_ context.Context) ([]models.Status, error) {
	statuses := make([]models.Status, 0, len(f.statuses))
	for _, s := range f.statuses {
		statuses = append(statuses, s)
	}
	sort.Slice(statuses, func(i, j int) bool {
		return statuses[i].ID < statuses[j].ID
	})
	return statuses, nil
}

type fakeTasks struct {
	nextID int64
	tasks  map[int64]models.Task
	// performers maps task id to the set of assigned user ids.
	performers map[int64]map[int64]bool
}

func newFakeTasks() *fakeTasks {
	return &fakeTasks{
		tasks:      make(map[int64]models.Task),
		performers: make(map[int64]map[int64]bool),
	}
}

func (f *fakeTasks) Create(_ context.Context, task *models.Task) error {
	for _, t := range f.tasks {
		if t.Header == task.Header {
			return repository.ErrDuplicate
		}
	}
	f.nextID++
	task.ID = f.nextID
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTasks) ByID(_ context.Context, id int64) (*models.Task, error) {
	task, ok := f.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &task, nil
}

func (f *fakeTasks) ByIDAndOwner(_ context.Context, id, ownerID int64) (*models.Task, error) {
	task, ok := f.tasks[id]
	if !ok || task.UserID != ownerID {
		return nil, repository.ErrNotFound
	}
	return &task, nil
}

func (f *fakeTasks) Update(_ context.Context, task *models.Task) error {
	if _, ok := f.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	for _, t := range f.tasks {
		if t.Header == task.Header && t.ID != task.ID {
			return repository.ErrDuplicate
		}
	}
	f.tasks[task.ID] = *task
	return nil
}

func (f *fakeTasks) Delete(_ context.Context, id int64) error {
	if _, ok := f.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.tasks, id)
	delete(f.performers, id)
	return nil
}

func (f *fakeTasks) List(_ context.Context, filter repository.TaskFilter) ([]models.Task, error) {
	matches := make([]models.Task, 0, len(f.tasks))
	for _, t := range f.tasks {
		if filter.Header != "" &&
			!strings.Contains(strings.ToLower(t.Header), strings.ToLower(filter.Header)) {
			continue
		}
		if filter.Description != "" &&
			!strings.Contains(strings.ToLower(t.Description), strings.ToLower(filter.Description)) {
			continue
		}
		matches = append(matches, t)
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Created.Equal(matches[j].Created) {
			return matches[i].ID > matches[j].ID
		}
		return matches[i].Created.After(matches[j].Created)
	})

	if filter.Offset >= len(matches) {
		return nil, nil
	}
	matches = matches[filter.Offset:]
	if filter.Limit > 0 && filter.Limit < len(matches) {
		matches = matches[:filter.Limit]
	}
	return matches, nil
}

func (f *fakeTasks) Performers(_ context.Context, taskID int64) ([]models.User, error) {
	performers := make([]models.User, 0, len(f.performers[taskID]))
	for userID := range f.performers[taskID] {
		performers = append(performers, models.User{
			Audit: models.Audit{ID: userID},
		})
	}
	sort.Slice(performers, func(i, j int) bool {
		return performers[i].ID < performers[j].ID
	})
	return performers, nil
}

func (f *fakeTasks) AddPerformer(_ context.Context, taskID, performerID int64) error {
	if f.performers[taskID][performerID] {
		return repository.ErrDuplicate
	}
	if f.performers[taskID] == nil {
		f.performers[taskID] = make(map[int64]bool)
	}
	f.performers[taskID][performerID] = true
	return nil
}

func (f *fakeTasks) RemovePerformer(_ context.Context, taskID, performerID int64) error {
	if !f.performers[taskID][performerID] {
		return repository.ErrNotFound
	}
	delete(f.performers[taskID], performerID)
	return nil
}

func (f *fakeTasks) IsPerformer(_ context.Context, taskID, userID int64) (bool, error) {
	return f.performers[taskID][userID], nil
}

type fakeComments struct {
	nextID   int64
	comments map[int64]models.Comment
}

func newFakeComments() *fakeComments {
	return &fakeComments{comments: make(map[int64]models.Comment)}
}

func (f *fakeComments) Create(_ context.Context, comment *models.Comment) error {
	f.nextID++
	comment.ID = f.nextID
	f.comments[comment.ID] = *comment
	return nil
}

func (f *fakeComments) ByID(_ context.Context, id int64) (*models.Comment, error) {
	comment, ok := f.comments[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &comment, nil
}

func (f *fakeComments) Update(_ context.Context, comment *models.Comment) error {
	if _, ok := f.comments[comment.ID]; !ok {
		return repository.ErrNotFound
	}
	f.comments[comment.ID] = *comment
	return nil
}

func (f *fakeComments) Delete(_ context.Context, id int64) error {
	if _, ok := f.comments[id]; !ok {
		return repository.ErrNotFound
	}
	delete(f.comments, id)
	return nil
}

func (f *fakeComments) ListByTask(_ context.Context, taskID int64, limit, offset int) ([]models.Comment, error) {
	matches := make([]models.Comment, 0, len(f.comments))
	for _, c := range f.comments {
		if c.TaskID == taskID {
			matches = append(matches, c)
		}
	}
	sort.Slice(matches, func(i, j int) bool {
		if matches[i].Created.Equal(matches[j].Created) {
			return matches[i].ID < matches[j].ID
		}
		return matches[i].Created.Before(matches[j].Created)
	})

	if offset >= len(matches) {
		return nil, nil
	}
	matches = matches[offset:]
	if limit > 0 && limit < len(matches) {
		matches = matches[:limit]
	}
	return matches, nil
}
