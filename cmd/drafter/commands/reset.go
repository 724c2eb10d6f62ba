package commands

import (
	"bufio"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dyluth/drafter/internal/printer"
)

var resetForce bool

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Discard all project state and return to the Idea phase",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		if !resetForce {
			printer.Warning("This deletes every artifact for instance %q.\n", sess.cfg.Instance)
			printer.Printf("Type the instance name to confirm: ")
			reader := bufio.NewReader(os.Stdin)
			line, _ := reader.ReadString('\n')
			if strings.TrimSpace(line) != sess.cfg.Instance {
				printer.Info("Aborted\n")
				return nil
			}
		}

		if err := sess.ctrl.ResetProject(cmd.Context()); err != nil {
			return printer.Error("Cannot reset project", err.Error(), nil)
		}

		printer.Success("Project reset to the Idea phase\n")
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolVar(&resetForce, "force", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}
