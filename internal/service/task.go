package service

import (
	"context"
	"time"

	"github.com/avoronkov/todo-task-api/internal/model"
	"github.com/avoronkov/todo-task-api/internal/query"
	"github.com/avoronkov/todo-task-api/internal/repo"
)

type TaskService struct {
	repo repo.TaskRepository
	now  func() time.Time
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *TaskService) GetAll(ctx context.Context) ([]model.Task, error) {
	return s.repo.GetAll(ctx)
}

func (s *TaskService) GetByID(ctx context.Context, id int64) (model.Task, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *TaskService) GetByCriteria(ctx context.Context, c model.Criteria) (model.PagedResult, error) {
	return s.repo.GetByCriteria(ctx, query.Normalize(c))
}

func (s *TaskService) Create(ctx context.Context, t model.Task) (model.Task, error) {
	if err := ValidateTask(t, s.now()); err != nil {
		return t, err
	}

	// id назначает хранилище, присланное значение сбрасывается
	t.ID = 0
	return s.repo.Create(ctx, t)
}

func (s *TaskService) Update(ctx context.Context, t model.Task) error {
	if err := ValidateTask(t, s.now()); err != nil {
		return err
	}

	// Проверка существования отдельно от записи, без транзакции.
	// Гонка с параллельным delete закончится ErrNotFound из Update.
	if _, err := s.repo.GetByID(ctx, t.ID); err != nil {
		return err
	}
	return s.repo.Update(ctx, t)
}

func (s *TaskService) MarkComplete(ctx context.Context, id int64) error {
	return s.repo.MarkComplete(ctx, id)
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
