package commands

import (
	"github.com/spf13/cobra"

	"github.com/dyluth/drafter/internal/board"
	"github.com/dyluth/drafter/internal/estimate"
	"github.com/dyluth/drafter/internal/printer"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current phase, unlocked phases, and board progress",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		snap := sess.ctrl.Snapshot()
		unlocked := sess.ctrl.Unlocked()

		name := snap.ProjectData.Name
		if name == "" {
			name = sess.cfg.Instance
		}
		printer.Info("Project: %s\n", name)
		if snap.ProjectData.InitialIdea != "" {
			printer.Info("Idea:    %s\n", snap.ProjectData.InitialIdea)
		}
		printer.Info("\nPhases:\n")

		for _, phase := range sess.ctrl.Graph().Phases() {
			marker := "  "
			if phase == snap.CurrentPhase {
				marker = "→ "
			}
			state := "locked"
			if unlocked[phase] {
				state = "unlocked"
			}
			printer.Info("%s%-18s %s\n", marker, phase.Label(), state)
		}

		if snap.ProjectData.Tasks != nil {
			todo, inProgress, done := board.Progress(snap.ProjectData.Tasks)
			printer.Info("\nBoard: %d todo, %d in progress, %d done\n", todo, inProgress, done)
		}

		if snap.ProjectData.PlanPhases != nil {
			if total, counted := estimate.PlanTotal(snap.ProjectData.PlanPhases); counted > 0 {
				printer.Info("Plan estimate: %s across %d tasks\n", total, counted)
			}
		}

		if msg := sess.ctrl.LastError(); msg != "" {
			printer.Warning("%s\n", msg)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
