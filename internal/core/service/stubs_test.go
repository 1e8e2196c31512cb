package service

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/taskhub/task-management-api/internal/core/domain"
	"github.com/taskhub/task-management-api/internal/core/ports"
)

// In-memory stand-ins for the repositories and the blob archive, shared by
// the service tests in this package.

type stubUserRepo struct {
	seq   int
	users map[string]*domain.User // keyed by id
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	created := cloneUser(user)
	created.ID = fmt.Sprintf("user-%d", r.seq)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	ids := make([]string, 0, len(r.users))
	for id := range r.users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]*domain.User, 0, len(ids))
	for _, id := range ids {
		out = append(out, cloneUser(r.users[id]))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	delete(r.users, id)
	return nil
}

type stubTaskRepo struct {
	seq        int
	tasks      []*domain.Task
	createErr  error
	batchCalls int
}

func newStubTaskRepo() *stubTaskRepo {
	return &stubTaskRepo{}
}

func cloneTask(t *domain.Task) *domain.Task {
	if t == nil {
		return nil
	}
	clone := *t
	return &clone
}

func (r *stubTaskRepo) Create(_ context.Context, t *domain.Task) (*domain.Task, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.seq++
	created := cloneTask(t)
	created.ID = fmt.Sprintf("task-%d", r.seq)
	r.tasks = append(r.tasks, cloneTask(created))
	return created, nil
}

func (r *stubTaskRepo) CreateMany(ctx context.Context, tasks []*domain.Task) ([]*domain.Task, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.batchCalls++
	out := make([]*domain.Task, 0, len(tasks))
	for _, t := range tasks {
		created, err := r.Create(ctx, t)
		if err != nil {
			return nil, err
		}
		out = append(out, created)
	}
	return out, nil
}

func (r *stubTaskRepo) FindByID(_ context.Context, id string) (*domain.Task, error) {
	for _, t := range r.tasks {
		if t.ID == id {
			return cloneTask(t), nil
		}
	}
	return nil, domain.ErrTaskNotFound
}

func (r *stubTaskRepo) List(_ context.Context, filter ports.TaskFilter) ([]*domain.Task, int64, error) {
	matched := make([]*domain.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		if filter.OwnerID != "" && t.OwnerID != filter.OwnerID {
			continue
		}
		if filter.Status != "" && string(t.Status) != filter.Status {
			continue
		}
		if filter.Priority != "" && string(t.Priority) != filter.Priority {
			continue
		}
		matched = append(matched, cloneTask(t))
	}
	total := int64(len(matched))

	start := (filter.Page - 1) * filter.Limit
	if start >= len(matched) {
		return nil, total, nil
	}
	end := start + filter.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (r *stubTaskRepo) Update(_ context.Context, task *domain.Task) error {
	for i, t := range r.tasks {
		if t.ID == task.ID {
			r.tasks[i] = cloneTask(task)
			return nil
		}
	}
	return domain.ErrTaskNotFound
}

func (r *stubTaskRepo) Delete(_ context.Context, id string) error {
	for i, t := range r.tasks {
		if t.ID == id {
			r.tasks = append(r.tasks[:i], r.tasks[i+1:]...)
			return nil
		}
	}
	return nil
}

type stubObjectStore struct {
	keys      []string
	types     []string
	data      [][]byte
	uploadErr error
}

func (s *stubObjectStore) Upload(_ context.Context, key, contentType string, r io.Reader) error {
	if s.uploadErr != nil {
		return s.uploadErr
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}
	s.keys = append(s.keys, key)
	s.types = append(s.types, contentType)
	s.data = append(s.data, b)
	return nil
}
