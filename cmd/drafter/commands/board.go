package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/dyluth/drafter/internal/board"
	"github.com/dyluth/drafter/internal/printer"
	"github.com/dyluth/drafter/internal/resolver"
	"github.com/dyluth/drafter/pkg/workspace"
)

var (
	boardListStatus string
	boardListPhase  string
	boardListRole   string
	boardListOutput string
	boardAddPhase   string
	boardAddPri     string
)

var boardCmd = &cobra.Command{
	Use:   "board",
	Short: "Work with the task board",
}

var boardListCmd = &cobra.Command{
	Use:   "list",
	Short: "List board tasks, optionally filtered",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		project := sess.ctrl.Project()
		if project.Tasks == nil {
			printer.Info("No board yet - run 'drafter plan finalize' first\n")
			return nil
		}

		format := board.OutputFormatDefault
		if boardListOutput == "jsonl" {
			format = board.OutputFormatJSONL
		} else if boardListOutput != "" && boardListOutput != "default" {
			return printer.Error("Invalid output format", "Use 'default' or 'jsonl'.", nil)
		}

		var filterStatus workspace.TaskStatus
		if boardListStatus != "" {
			filterStatus, err = workspace.ParseTaskStatus(boardListStatus)
			if err != nil {
				return printer.Error("Invalid status", err.Error(), nil)
			}
		}

		filters := &board.FilterCriteria{
			Status:    filterStatus,
			PhaseGlob: boardListPhase,
			Role:      boardListRole,
		}

		if err := board.ListTasks(os.Stdout, project.Tasks, format, filters); err != nil {
			return printer.Error("Cannot list tasks", err.Error(), nil)
		}
		return nil
	},
}

// resolveBoardTask maps a possibly-shortened task id to a full one,
// translating resolver errors into printer output.
func resolveBoardTask(tasks []workspace.Task, shortID string) (string, error) {
	id, err := resolver.ResolveTaskID(tasks, shortID)
	if err != nil {
		var ambig *resolver.AmbiguousError
		if errors.As(err, &ambig) {
			return "", printer.Error("Ambiguous task ID", resolver.FormatAmbiguousError(ambig), nil)
		}
		return "", printer.Error("Task not found", err.Error(), []string{"Run 'drafter board list' to see task IDs"})
	}
	return id, nil
}

var boardMoveCmd = &cobra.Command{
	Use:   "move <task-id> <status>",
	Short: "Move a task to todo, in_progress, or done",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		status, err := workspace.ParseTaskStatus(args[1])
		if err != nil {
			return printer.Error("Invalid status", err.Error(), nil)
		}

		id, err := resolveBoardTask(sess.ctrl.Project().Tasks, args[0])
		if err != nil {
			return err
		}

		if err := sess.ctrl.MoveTask(cmd.Context(), id, status); err != nil {
			return printer.Error("Cannot move task", err.Error(), nil)
		}

		printer.Success("Task %s moved to %s\n", id, status)
		return nil
	},
}

var boardCheckCmd = &cobra.Command{
	Use:   "check <task-id> <item-id>",
	Short: "Toggle a checklist item on a task",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		id, err := resolveBoardTask(sess.ctrl.Project().Tasks, args[0])
		if err != nil {
			return err
		}

		if err := sess.ctrl.ToggleChecklistItem(cmd.Context(), id, args[1]); err != nil {
			return printer.Error("Cannot toggle checklist item", err.Error(), nil)
		}

		printer.Success("Checklist item toggled on task %s\n", id)
		return nil
	},
}

var boardAddCmd = &cobra.Command{
	Use:   "add <description>",
	Short: "Add a manual task to the board",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		pri := workspace.NormalizePriority(boardAddPri)
		if err := sess.ctrl.AddManualTask(cmd.Context(), boardAddPhase, args[0], pri); err != nil {
			return printer.Error("Cannot add task", err.Error(), nil)
		}

		printer.Success("Task added\n")
		return nil
	},
}

func init() {
	boardListCmd.Flags().StringVar(&boardListStatus, "status", "", "Filter by status (todo, in_progress, done)")
	boardListCmd.Flags().StringVar(&boardListPhase, "phase", "", "Filter by plan phase name (glob pattern)")
	boardListCmd.Flags().StringVar(&boardListRole, "role", "", "Filter by suggested role")
	boardListCmd.Flags().StringVarP(&boardListOutput, "output", "o", "default", "Output format: default or jsonl")

	boardAddCmd.Flags().StringVar(&boardAddPhase, "phase", "Unplanned", "Plan phase name to file the task under")
	boardAddCmd.Flags().StringVar(&boardAddPri, "priority", "Medium", "Task priority: High, Medium, or Low")

	boardCmd.AddCommand(boardListCmd)
	boardCmd.AddCommand(boardMoveCmd)
	boardCmd.AddCommand(boardCheckCmd)
	boardCmd.AddCommand(boardAddCmd)
	boardCmd.AddCommand(boardRegenerateCmd)
	rootCmd.AddCommand(boardCmd)
}
