package commands

import (
	"github.com/spf13/cobra"

	"github.com/dyluth/drafter/internal/printer"
	"github.com/dyluth/drafter/pkg/workspace"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate the artifact for the next phase and advance to it",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		if generating, _ := sess.ctrl.Busy(); generating {
			return printer.Error("A generation is already running", "Wait for it to finish before starting another.", nil)
		}

		current := sess.ctrl.CurrentPhase()
		target := sess.ctrl.Graph().Advance(current)
		if target == current {
			printer.Info("Already on the final phase (%s)\n", current.Label())
			return nil
		}

		printer.Step("Generating %s...\n", target.Label())
		if err := sess.ctrl.AdvancePhase(cmd.Context()); err != nil {
			return printer.Error("Generation failed", err.Error(), []string{"Re-run 'drafter generate' to try again"})
		}

		printer.Success("Now on the %s phase\n", sess.ctrl.CurrentPhase().Label())
		return nil
	},
}

var gotoCmd = &cobra.Command{
	Use:   "goto <phase>",
	Short: "Navigate to an already-unlocked phase",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		target, err := workspace.ParsePhase(args[0])
		if err != nil {
			return printer.Error("Unknown phase", err.Error(), []string{"Run 'drafter status' to list phases"})
		}

		if err := sess.ctrl.NavigateTo(cmd.Context(), target); err != nil {
			return printer.Error("Cannot navigate", err.Error(), []string{"Generate the upstream artifact first with 'drafter generate'"})
		}

		printer.Success("Now on the %s phase\n", target.Label())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(gotoCmd)
}
