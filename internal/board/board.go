// Package board renders and filters the executable task board derived from
// the project plan.
package board

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/dyluth/drafter/pkg/workspace"
)

// OutputFormat specifies how to format the task list output.
type OutputFormat string

const (
	// OutputFormatDefault uses a table format with truncated descriptions
	OutputFormatDefault OutputFormat = "default"

	// OutputFormatJSONL outputs complete tasks as line-delimited JSON
	OutputFormatJSONL OutputFormat = "jsonl"
)

// FilterCriteria defines filtering options for board listing.
// All filters are ANDed together.
type FilterCriteria struct {
	Status    workspace.TaskStatus // empty = no filter
	PhaseGlob string               // glob pattern for the owning phase name, empty = no filter
	Role      string               // exact match on responsible role, empty = no filter
}

// matchesFilter returns true if the task matches all filter criteria.
func (fc *FilterCriteria) matchesFilter(t *workspace.Task) bool {
	if fc.Status != "" && t.Status != fc.Status {
		return false
	}

	if fc.PhaseGlob != "" {
		matched, err := filepath.Match(fc.PhaseGlob, t.Phase)
		if err != nil || !matched {
			return false
		}
	}

	if fc.Role != "" && t.Role != fc.Role {
		return false
	}

	return true
}

// ListTasks writes the board to the provided writer, applying filter
// criteria if provided. Board order is the derivation order (phase, then
// task) and is preserved - it is the only ordering the board retains.
func ListTasks(w io.Writer, tasks []workspace.Task, format OutputFormat, filters *FilterCriteria) error {
	var filtered []workspace.Task
	for _, t := range tasks {
		if filters != nil && !filters.matchesFilter(&t) {
			continue
		}
		filtered = append(filtered, t)
	}

	switch format {
	case OutputFormatDefault:
		FormatTable(w, filtered)
	case OutputFormatJSONL:
		if err := FormatJSONL(w, filtered); err != nil {
			return fmt.Errorf("failed to format JSONL output: %w", err)
		}
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}

	return nil
}

// Progress counts board tasks by status.
func Progress(tasks []workspace.Task) (todo, inProgress, done int) {
	for _, t := range tasks {
		switch t.Status {
		case workspace.StatusTodo:
			todo++
		case workspace.StatusInProgress:
			inProgress++
		case workspace.StatusDone:
			done++
		}
	}
	return todo, inProgress, done
}
