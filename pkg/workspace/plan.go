package workspace

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Priority is the normalized priority of a plan task. Any value outside the
// three known levels is coerced to Medium on ingest.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// NormalizePriority coerces arbitrary input to a valid Priority. Normalizing
// an already-valid priority is a no-op; anything else yields Medium.
func NormalizePriority(s string) Priority {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s)
	default:
		return PriorityMedium
	}
}

// PlanTask is one declarative task inside a plan phase, edited directly by
// the user or produced by the generator. EstimatedDuration and Role are
// free-text and never coerced.
type PlanTask struct {
	Description       string   `json:"description"`
	EstimatedDuration string   `json:"estimated_duration"`
	Priority          Priority `json:"priority"`
	Role              string   `json:"role"`
}

// PlanPhase is a named, ordered group of plan tasks.
type PlanPhase struct {
	Name  string     `json:"name"`
	Tasks []PlanTask `json:"tasks"`
}

// NormalizePlan returns a copy of the plan with every task priority coerced
// to a valid value. Applied whenever a plan is ingested from the generator.
func NormalizePlan(plan []PlanPhase) []PlanPhase {
	out := make([]PlanPhase, len(plan))
	for i, phase := range plan {
		tasks := make([]PlanTask, len(phase.Tasks))
		for j, task := range phase.Tasks {
			task.Priority = NormalizePriority(string(task.Priority))
			tasks[j] = task
		}
		out[i] = PlanPhase{Name: phase.Name, Tasks: tasks}
	}
	return out
}

// TaskStatus is the execution state of a board task.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "Todo"
	StatusInProgress TaskStatus = "InProgress"
	StatusDone       TaskStatus = "Done"
)

// Validate checks if the TaskStatus is a valid enum value.
func (s TaskStatus) Validate() error {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return nil
	default:
		return fmt.Errorf("unknown task status: %q", s)
	}
}

// ParseTaskStatus resolves user input to a TaskStatus. Accepts the canonical
// values plus the lower-case spellings used on the command line ("todo",
// "in_progress", "done").
func ParseTaskStatus(s string) (TaskStatus, error) {
	switch strings.ToLower(strings.ReplaceAll(s, "_", "")) {
	case "todo":
		return StatusTodo, nil
	case "inprogress":
		return StatusInProgress, nil
	case "done":
		return StatusDone, nil
	default:
		return "", fmt.Errorf("unknown task status: %q (use todo, in_progress, or done)", s)
	}
}

// ChecklistItem is a sub-record of a task, toggled independently of the
// task's own status.
type ChecklistItem struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Task is the executable counterpart of a PlanTask, tracked independently on
// the board once derived. Identity is stable: the id never changes after
// creation and carries no back-reference to the plan.
type Task struct {
	ID                string          `json:"id"`
	Phase             string          `json:"phase"`
	Description       string          `json:"description"`
	Status            TaskStatus      `json:"status"`
	Priority          Priority        `json:"priority"`
	EstimatedDuration string          `json:"estimated_duration"`
	Role              string          `json:"role"`
	Guide             string          `json:"guide,omitempty"`
	Checklist         []ChecklistItem `json:"checklist,omitempty"`
	CodeSnippet       string          `json:"code_snippet,omitempty"`
}

// manualIDPrefix distinguishes manually created task ids from derived ones,
// which use the "{phaseIndex}-{taskIndex}" scheme.
const manualIDPrefix = "manual-"

// DeriveTasks flattens a plan into board tasks in (phase order, task order).
// That ordering is the only ordering information retained, so it must be
// preserved exactly. Each task gets the id "{phaseIndex}-{taskIndex}"
// (unique across the list), the owning phase name, status Todo, and a
// normalized priority.
//
// The result is always non-nil, even for a plan with no tasks: a derived
// board exists from the moment the plan is finalized, and slot presence is
// what marks it.
//
// Derivation runs once, when the user finalizes the plan into an executable
// board. Callers must never re-run it implicitly against a plan that already
// produced tasks: a second derivation yields a disjoint list that orphans
// the first list's progress.
func DeriveTasks(plan []PlanPhase) []Task {
	tasks := make([]Task, 0)
	for phaseIndex, phase := range plan {
		for taskIndex, pt := range phase.Tasks {
			tasks = append(tasks, Task{
				ID:                fmt.Sprintf("%d-%d", phaseIndex, taskIndex),
				Phase:             phase.Name,
				Description:       pt.Description,
				Status:            StatusTodo,
				Priority:          NormalizePriority(string(pt.Priority)),
				EstimatedDuration: pt.EstimatedDuration,
				Role:              pt.Role,
			})
		}
	}
	return tasks
}

// NewManualTask creates a board task outside any derivation, with an id
// disjoint from the derived scheme.
func NewManualTask(phase, description string, priority Priority) Task {
	return Task{
		ID:          manualIDPrefix + uuid.New().String(),
		Phase:       phase,
		Description: description,
		Status:      StatusTodo,
		Priority:    NormalizePriority(string(priority)),
	}
}

// MoveTask replaces the status of exactly one task, identified by id. All
// other tasks and fields are untouched. An unknown id returns the input
// list unchanged - not an error, since board ids go stale by ordinary
// editing. The input slice is never modified.
func MoveTask(tasks []Task, taskID string, newStatus TaskStatus) []Task {
	if newStatus.Validate() != nil {
		return tasks
	}

	for i, t := range tasks {
		if t.ID != taskID || t.Status == newStatus {
			continue
		}
		out := make([]Task, len(tasks))
		copy(out, tasks)
		out[i].Status = newStatus
		return out
	}
	return tasks
}

// ToggleChecklistItem flips the completed flag of one checklist item
// belonging to one task. All siblings are untouched. Unknown task or item
// ids return the input unchanged.
func ToggleChecklistItem(tasks []Task, taskID, itemID string) []Task {
	for i, t := range tasks {
		if t.ID != taskID {
			continue
		}
		for j, item := range t.Checklist {
			if item.ID != itemID {
				continue
			}
			out := make([]Task, len(tasks))
			copy(out, tasks)

			checklist := make([]ChecklistItem, len(t.Checklist))
			copy(checklist, t.Checklist)
			checklist[j].Completed = !checklist[j].Completed

			out[i].Checklist = checklist
			return out
		}
		return tasks
	}
	return tasks
}
