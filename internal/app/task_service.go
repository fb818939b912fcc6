package app

import (
	"context"
	"errors"

	"emberguard/internal/domain"
)

// ErrTaskNotFound indicates that the task list has no task with the given ID.
var ErrTaskNotFound = errors.New("task not found")

// TaskStatus filters a task listing.
type TaskStatus string

const (
	TaskStatusAll       TaskStatus = ""
	TaskStatusCompleted TaskStatus = "completed"
	TaskStatusPending   TaskStatus = "pending"
)

// TaskDetail is a task together with the products recommended for it.
type TaskDetail struct {
	Task     domain.HardeningTask `json:"task"`
	Products []domain.Product     `json:"products"`
}

// TaskService reads and updates a session's hardening task list.
type TaskService struct {
	catalog    *domain.Catalog
	workspaces domain.WorkspaceRepository
}

// NewTaskService creates a new task service.
func NewTaskService(catalog *domain.Catalog, workspaces domain.WorkspaceRepository) *TaskService {
	return &TaskService{catalog: catalog, workspaces: workspaces}
}

// List returns the session's tasks in catalog order, filtered by status.
func (s *TaskService) List(ctx context.Context, sid string, status TaskStatus) ([]domain.HardeningTask, error) {
	var out []domain.HardeningTask
	err := s.workspaces.Update(ctx, sid, func(ws *domain.Workspace) error {
		switch status {
		case TaskStatusCompleted:
			out = ws.Tasks.Completed()
		case TaskStatusPending:
			out = ws.Tasks.Pending()
		default:
			out = ws.Tasks.All()
		}
		return nil
	})
	if out == nil {
		out = []domain.HardeningTask{}
	}
	return out, err
}

// Get returns one task and its related products.
func (s *TaskService) Get(ctx context.Context, sid, taskID string) (TaskDetail, error) {
	var detail TaskDetail
	err := s.workspaces.Update(ctx, sid, func(ws *domain.Workspace) error {
		t, ok := ws.Tasks.ByID(taskID)
		if !ok {
			return ErrTaskNotFound
		}
		detail = TaskDetail{Task: t, Products: s.catalog.ProductsForTask(taskID)}
		return nil
	})
	return detail, err
}

// SetCompletion marks a task completed or pending.
func (s *TaskService) SetCompletion(ctx context.Context, sid, taskID string, completed bool) (domain.HardeningTask, error) {
	var task domain.HardeningTask
	err := s.workspaces.Update(ctx, sid, func(ws *domain.Workspace) error {
		if !ws.Tasks.SetCompleted(taskID, completed) {
			return ErrTaskNotFound
		}
		task, _ = ws.Tasks.ByID(taskID)
		return nil
	})
	return task, err
}

// Progress returns the dashboard aggregate for the session.
func (s *TaskService) Progress(ctx context.Context, sid string) (domain.Progress, error) {
	var p domain.Progress
	err := s.workspaces.Update(ctx, sid, func(ws *domain.Workspace) error {
		p = ws.Tasks.Progress()
		return nil
	})
	return p, err
}
