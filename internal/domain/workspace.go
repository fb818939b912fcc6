package domain

import (
	"context"
	"time"
)

// Workspace is the state owned by one browser session: its cart, its copy of
// the task list and the orders it has placed.
type Workspace struct {
	Cart     Cart
	Tasks    *TaskList
	Orders   []Order
	LastSeen time.Time
}

// NewWorkspace seeds a workspace with its own copy of tasks.
func NewWorkspace(tasks []HardeningTask, now time.Time) *Workspace {
	return &Workspace{Tasks: NewTaskList(tasks), LastSeen: now}
}

// WorkspaceRepository is the port for session-scoped workspace storage.
type WorkspaceRepository interface {
	// Update runs fn with exclusive access to the workspace for sessionID,
	// creating it first if needed. Changes made by fn are kept even if fn
	// returns an error; fn should return before mutating when it fails.
	Update(ctx context.Context, sessionID string, fn func(*Workspace) error) error
	Delete(ctx context.Context, sessionID string) error
	DeleteIdle(ctx context.Context, before time.Time) (int, error)
}
