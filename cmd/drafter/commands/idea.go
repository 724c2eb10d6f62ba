package commands

import (
	"github.com/spf13/cobra"

	"github.com/dyluth/drafter/internal/printer"
)

var (
	ideaProjectType string
	ideaConstraints string
)

var ideaCmd = &cobra.Command{
	Use:   "idea <description>",
	Short: "Submit the initial project idea and run the brainstorm generator",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		printer.Step("Brainstorming...\n")
		if err := sess.ctrl.SubmitIdea(cmd.Context(), args[0], ideaProjectType, ideaConstraints); err != nil {
			return printer.Error("Brainstorming failed", err.Error(), []string{"Re-run 'drafter idea' to try again"})
		}

		printer.Success("Idea submitted, now on the %s phase\n", sess.ctrl.CurrentPhase().Label())
		return nil
	},
}

func init() {
	ideaCmd.Flags().StringVar(&ideaProjectType, "type", "", "Project type (e.g. web-app, cli, service)")
	ideaCmd.Flags().StringVar(&ideaConstraints, "constraints", "", "Free-text constraints for the project")
	rootCmd.AddCommand(ideaCmd)
}
