package services

import (
	"context"

	"github.com/taskdeck/apiserver/types"
)

// TaskRepository defines persistence operations for to-do items.
type TaskRepository interface {
	Create(ctx context.Context, task types.Task) (types.Task, error)
	ListByUser(ctx context.Context, userID int) ([]types.Task, error)
	DeleteByUser(ctx context.Context, userID int) (int64, error)
}

// TaskService encapsulates task use-cases. Tasks have no HTTP routes; the
// service exists for the store contract and internal callers.
type TaskService struct {
	repo TaskRepository
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{repo: repo}
}

func (s *TaskService) Create(ctx context.Context, task types.Task) (types.Task, error) {
	return s.repo.Create(ctx, task)
}

func (s *TaskService) ListByUser(ctx context.Context, userID int) ([]types.Task, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *TaskService) DeleteByUser(ctx context.Context, userID int) (int64, error) {
	return s.repo.DeleteByUser(ctx, userID)
}
