package board

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/dyluth/drafter/pkg/workspace"
)

// FormatTable writes tasks as a formatted table to the provided writer.
// Columns: ID, PHASE, STATUS, PRI, EST, and DESCRIPTION (truncated).
// Returns the number of tasks formatted.
func FormatTable(w io.Writer, tasks []workspace.Task) int {
	if len(tasks) == 0 {
		fmt.Fprintf(w, "No tasks on the board\n")
		return 0
	}

	fmt.Fprintf(w, "%-14s %-16s %-12s %-7s %-8s %s\n",
		"ID", "PHASE", "STATUS", "PRI", "EST", "DESCRIPTION")
	fmt.Fprintf(w, "%-14s %-16s %-12s %-7s %-8s %s\n",
		"--------------", "----------------", "------------", "-------", "--------", "----------------------------------------")

	for _, t := range tasks {
		fmt.Fprintf(w, "%-14s %-16s %-12s %-7s %-8s %s\n",
			truncateCell(t.ID, 14),
			truncateCell(t.Phase, 16),
			string(t.Status),
			string(t.Priority),
			truncateCell(t.EstimatedDuration, 8),
			truncateCell(t.Description, 40),
		)
	}

	countMsg := "task"
	if len(tasks) != 1 {
		countMsg = "tasks"
	}
	fmt.Fprintf(w, "\n%d %s\n", len(tasks), countMsg)

	return len(tasks)
}

// FormatJSONL writes tasks as line-delimited JSON (JSONL) to the provided
// writer. Each task is a single compact JSON object on its own line, ideal
// for processing with tools like jq.
func FormatJSONL(w io.Writer, tasks []workspace.Task) error {
	for _, t := range tasks {
		data, err := json.Marshal(t)
		if err != nil {
			return fmt.Errorf("failed to marshal task %s: %w", t.ID, err)
		}
		if _, err := fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("failed to write task %s: %w", t.ID, err)
		}
	}
	return nil
}

// truncateCell shortens a value to fit a table column.
func truncateCell(s string, max int) string {
	if len(s) <= max {
		return s
	}
	if max <= 3 {
		return s[:max]
	}
	return s[:max-3] + "..."
}
