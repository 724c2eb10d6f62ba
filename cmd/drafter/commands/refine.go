package commands

import (
	"github.com/spf13/cobra"

	"github.com/dyluth/drafter/internal/printer"
)

var refineFeedback string

var refineCmd = &cobra.Command{
	Use:   "refine <section>",
	Short: "Rework one artifact section from feedback",
	Long: `Refine sends the named section's current content plus your feedback to
the generator and replaces that one artifact with the result. Other
artifacts are untouched; on failure the prior content survives.

Section names are the display labels, e.g. "Research", "Architecture",
"Data Model".`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		if _, refining := sess.ctrl.Busy(); refining {
			return printer.Error("A refinement is already running", "Wait for it to finish before starting another.", nil)
		}

		printer.Step("Refining %s...\n", args[0])
		if err := sess.ctrl.Refine(cmd.Context(), args[0], refineFeedback); err != nil {
			return printer.Error("Refinement failed", err.Error(), nil)
		}

		printer.Success("%s refined\n", args[0])
		return nil
	},
}

func init() {
	refineCmd.Flags().StringVarP(&refineFeedback, "feedback", "f", "", "Feedback describing the desired change (required)")
	refineCmd.MarkFlagRequired("feedback")
	rootCmd.AddCommand(refineCmd)
}
