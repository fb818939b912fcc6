package domain

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// TaskCategory is the closed set of hardening task categories.
type TaskCategory string

const (
	CategoryStructural      TaskCategory = "Structural"
	CategoryLandscaping     TaskCategory = "Landscaping"
	CategoryFireSuppression TaskCategory = "Fire Suppression"
	CategoryRoofing         TaskCategory = "Roofing"
	CategoryGutters         TaskCategory = "Gutters"
	CategorySealants        TaskCategory = "Sealants"
	CategoryCoatings        TaskCategory = "Coatings"
)

// ParseTaskCategory validates s against the known categories.
func ParseTaskCategory(s string) (TaskCategory, error) {
	switch c := TaskCategory(s); c {
	case CategoryStructural, CategoryLandscaping, CategoryFireSuppression, CategoryRoofing,
		CategoryGutters, CategorySealants, CategoryCoatings:
		return c, nil
	}
	return "", fmt.Errorf("unknown task category %q", s)
}

// Priority ranks how urgently a task should be done.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority validates s against the known priorities.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(s); p {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	}
	return "", fmt.Errorf("unknown priority %q", s)
}

// HardeningTask is a home-improvement action the shopper can mark done.
type HardeningTask struct {
	ID             string          `json:"id"`
	Title          string          `json:"title"`
	Description    string          `json:"description"`
	Category       TaskCategory    `json:"category"`
	Priority       Priority        `json:"priority"`
	ResiliencyGain int             `json:"resiliencyGain"`
	EstimatedCost  decimal.Decimal `json:"estimatedCost"`
	TimeRequired   string          `json:"timeRequired"`
	Completed      bool            `json:"completed"`
}

// TaskList holds a session's copy of the hardening tasks in catalog order.
// Tasks are never added or removed after construction; only the completion
// flag changes.
type TaskList struct {
	tasks []HardeningTask
}

// NewTaskList copies seed into a new list.
func NewTaskList(seed []HardeningTask) *TaskList {
	tasks := make([]HardeningTask, len(seed))
	copy(tasks, seed)
	return &TaskList{tasks: tasks}
}

// All returns a copy of every task.
func (l *TaskList) All() []HardeningTask {
	return l.filter(func(HardeningTask) bool { return true })
}

// Len returns the number of tasks.
func (l *TaskList) Len() int {
	return len(l.tasks)
}

// SetCompleted sets the completion flag of taskID and reports whether the
// task exists.
func (l *TaskList) SetCompleted(taskID string, completed bool) bool {
	for i := range l.tasks {
		if l.tasks[i].ID == taskID {
			l.tasks[i].Completed = completed
			return true
		}
	}
	return false
}

// ByID looks up a task.
func (l *TaskList) ByID(id string) (HardeningTask, bool) {
	for _, t := range l.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return HardeningTask{}, false
}

// Completed returns the completed tasks in list order.
func (l *TaskList) Completed() []HardeningTask {
	return l.filter(func(t HardeningTask) bool { return t.Completed })
}

// Pending returns the tasks not yet completed, in list order.
func (l *TaskList) Pending() []HardeningTask {
	return l.filter(func(t HardeningTask) bool { return !t.Completed })
}

// HighPriorityPending returns pending tasks with high priority.
func (l *TaskList) HighPriorityPending() []HardeningTask {
	return l.filter(func(t HardeningTask) bool { return !t.Completed && t.Priority == PriorityHigh })
}

// ProgressPercentage returns round(100 × completed / total), or 0 for an
// empty list.
func (l *TaskList) ProgressPercentage() int {
	if len(l.tasks) == 0 {
		return 0
	}
	done := 0
	for _, t := range l.tasks {
		if t.Completed {
			done++
		}
	}
	return int(math.Round(float64(done) / float64(len(l.tasks)) * 100))
}

// TotalResiliencyGain sums ResiliencyGain over completed tasks.
func (l *TaskList) TotalResiliencyGain() int {
	sum := 0
	for _, t := range l.tasks {
		if t.Completed {
			sum += t.ResiliencyGain
		}
	}
	return sum
}

// Progress is the dashboard view of a task list.
type Progress struct {
	TotalTasks          int             `json:"totalTasks"`
	CompletedTasks      int             `json:"completedTasks"`
	Percentage          int             `json:"percentage"`
	ResiliencyGain      int             `json:"resiliencyGain"`
	HighPriorityPending []HardeningTask `json:"highPriorityPending"`
}

// Progress computes the dashboard aggregates from scratch.
func (l *TaskList) Progress() Progress {
	return Progress{
		TotalTasks:          len(l.tasks),
		CompletedTasks:      len(l.Completed()),
		Percentage:          l.ProgressPercentage(),
		ResiliencyGain:      l.TotalResiliencyGain(),
		HighPriorityPending: l.HighPriorityPending(),
	}
}

func (l *TaskList) filter(keep func(HardeningTask) bool) []HardeningTask {
	out := make([]HardeningTask, 0, len(l.tasks))
	for _, t := range l.tasks {
		if keep(t) {
			out = append(out, t)
		}
	}
	return out
}
