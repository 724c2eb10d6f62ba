package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dyluth/drafter/internal/printer"
)

var initForce bool

const configTemplate = `version: "1.0"

# Unique name for this project instance. Multiple projects can share one
# Redis server; all keys are namespaced by this name.
instance: %s

# editor (full command surface) or viewer (read-only)
role: editor

redis:
  addr: localhost:6379

# Optional phases
phases:
  knowledge_base: false

# External generation command. Receives a request JSON on stdin and must
# write an artifact update JSON to stdout.
generator:
  command: ["drafter-generate"]
  timeout_seconds: 300
`

var initCmd = &cobra.Command{
	Use:   "init [instance-name]",
	Short: "Create a drafter.yml in the current directory",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		instance := "my-project"
		if len(args) == 1 {
			instance = args[0]
		}

		if _, err := os.Stat(configPath); err == nil && !initForce {
			return printer.Error(
				"Configuration already exists",
				fmt.Sprintf("%s already exists in this directory.", configPath),
				[]string{"Use --force to overwrite it"},
			)
		}

		content := fmt.Sprintf(configTemplate, instance)
		if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
			return printer.Error("Cannot write configuration", err.Error(), nil)
		}

		printer.Success("Created %s for instance '%s'\n", configPath, instance)
		printer.Info("Next: set your generator command, then run 'drafter idea \"<your idea>\"'\n")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing configuration")
	rootCmd.AddCommand(initCmd)
}
