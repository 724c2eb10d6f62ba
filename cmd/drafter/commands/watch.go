package commands

import (
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/dyluth/drafter/internal/printer"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Stream snapshot changes as they are saved",
	Long: `Watch subscribes to the instance's snapshot channel and prints a line
for every save, so a second terminal (or another collaborator) can follow
along while artifacts are generated and refined. Press Ctrl+C to stop.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sess, err := newSession(cmd.Context())
		if err != nil {
			return err
		}
		defer sess.close()

		sub, err := sess.client.SubscribeSnapshotEvents(cmd.Context())
		if err != nil {
			return printer.Error("Cannot subscribe", err.Error(), nil)
		}
		defer sub.Close()

		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		defer signal.Stop(sigCh)

		printer.Info("Watching instance %q (Ctrl+C to stop)\n", sess.cfg.Instance)

		for {
			select {
			case snap, ok := <-sub.Events():
				if !ok {
					return nil
				}
				printer.Info("[%s] phase=%s name=%q\n",
					time.Now().Format(time.RFC3339),
					snap.CurrentPhase,
					snap.ProjectData.Name,
				)
			case err, ok := <-sub.Errors():
				if !ok {
					return nil
				}
				printer.Warning("subscription error: %v\n", err)
			case <-sigCh:
				printer.Info("Stopped\n")
				return nil
			case <-cmd.Context().Done():
				return nil
			}
		}
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
