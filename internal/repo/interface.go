package repo

import (
	"context"

	"github.com/avoronkov/todo-task-api/internal/model"
)

// TaskRepository определяет интерфейс шлюза хранилища задач
type TaskRepository interface {
	GetAll(ctx context.Context) ([]model.Task, error)
	GetByID(ctx context.Context, id int64) (model.Task, error)
	GetByCriteria(ctx context.Context, c model.Criteria) (model.PagedResult, error)
	Create(ctx context.Context, t model.Task) (model.Task, error)
	Update(ctx context.Context, t model.Task) error
	MarkComplete(ctx context.Context, id int64) error
	Delete(ctx context.Context, id int64) error
}
