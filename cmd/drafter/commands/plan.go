package commands

import (
	"github.com/spf13/cobra"

	"github.com/dyluth/drafter/internal/estimate"
	"github.com/dyluth/drafter/internal/printer"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Inspect and finalize the development plan",
}

var planShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the plan phases and their tasks",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		project := sess.ctrl.Project()
		if project.PlanPhases == nil {
			printer.Info("No plan yet - generate the Plan phase first\n")
			return nil
		}

		for i, phase := range project.PlanPhases {
			printer.Info("Phase %d: %s\n", i+1, phase.Name)
			for _, task := range phase.Tasks {
				printer.Info("  [%s] %s (%s, %s)\n", task.Priority, task.Description, task.EstimatedDuration, task.Role)
			}
		}

		if total, counted := estimate.PlanTotal(project.PlanPhases); counted > 0 {
			printer.Info("\nEstimated total: %s across %d tasks\n", total, counted)
		}
		return nil
	},
}

var planFinalizeCmd = &cobra.Command{
	Use:   "finalize",
	Short: "Lock in the plan and derive the task board from it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		if err := sess.ctrl.FinalizePlan(cmd.Context()); err != nil {
			return printer.Error("Cannot finalize plan", err.Error(), []string{
				"Use 'drafter board regenerate' to rebuild an existing board from the plan",
			})
		}

		project := sess.ctrl.Project()
		printer.Success("Plan finalized: %d tasks on the board\n", len(project.Tasks))
		return nil
	},
}

var boardRegenerateCmd = &cobra.Command{
	Use:   "regenerate",
	Short: "Rebuild the task board from the current plan, discarding board state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		if err := sess.ctrl.RegenerateBoard(cmd.Context()); err != nil {
			return printer.Error("Cannot regenerate board", err.Error(), nil)
		}

		project := sess.ctrl.Project()
		printer.Success("Board regenerated: %d tasks\n", len(project.Tasks))
		return nil
	},
}

func init() {
	planCmd.AddCommand(planShowCmd)
	planCmd.AddCommand(planFinalizeCmd)
	rootCmd.AddCommand(planCmd)
}
