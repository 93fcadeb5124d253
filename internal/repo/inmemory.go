package repo

import (
	"context"
	"sort"
	"sync"

	"github.com/avoronkov/todo-task-api/internal/model"
	"github.com/avoronkov/todo-task-api/internal/query"
)

// InMemoryRepo - хранилище в памяти для тестов и локального запуска.
// Композиция критериев идет через query.Apply, то же самое поведение,
// что и у SQL-варианта.
type InMemoryRepo struct {
	mu     sync.RWMutex
	tasks  map[int64]model.Task
	nextID int64
}

func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		tasks:  make(map[int64]model.Task),
		nextID: 1,
	}
}

func (r *InMemoryRepo) GetAll(ctx context.Context) ([]model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshot(), nil
}

func (r *InMemoryRepo) GetByID(ctx context.Context, id int64) (model.Task, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, ok := r.tasks[id]
	if !ok {
		return model.Task{}, ErrNotFound
	}
	return t, nil
}

func (r *InMemoryRepo) GetByCriteria(ctx context.Context, c model.Criteria) (model.PagedResult, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return query.Apply(r.snapshot(), c), nil
}

func (r *InMemoryRepo) Create(ctx context.Context, t model.Task) (model.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	t.ID = r.nextID
	r.nextID++
	r.tasks[t.ID] = t
	return t, nil
}

func (r *InMemoryRepo) Update(ctx context.Context, t model.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[t.ID]; !ok {
		return ErrNotFound
	}
	r.tasks[t.ID] = t
	return nil
}

func (r *InMemoryRepo) MarkComplete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	t, ok := r.tasks[id]
	if !ok {
		return ErrNotFound
	}
	t.Completed = true
	r.tasks[id] = t
	return nil
}

func (r *InMemoryRepo) Delete(ctx context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(r.tasks, id)
	return nil
}

// snapshot возвращает задачи в порядке вставки (по id)
func (r *InMemoryRepo) snapshot() []model.Task {
	out := make([]model.Task, 0, len(r.tasks))
	for _, t := range r.tasks {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
