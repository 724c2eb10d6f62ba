package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	version string
	commit  string
	date    string

	// configPath is the shared --config flag
	configPath string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "drafter",
	Short: "Drafter - AI-guided project planning workflow",
	Long: `Drafter walks a project idea through a fixed sequence of planning
phases - brainstorming, research, architecture, data model, file layout,
design, API, security, rules, plan - each producing a structured artifact
that later phases consume, ending in an executable task board and kickoff
assets.

State lives in Redis as one snapshot per project instance; artifact content
is produced by a configurable external generator command.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersionInfo sets the version information for the CLI
func SetVersionInfo(v, c, d string) {
	version = v
	commit = c
	date = d
	rootCmd.Version = fmt.Sprintf("%s (commit: %s, built: %s)", v, c, d)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "drafter.yml", "Path to the drafter configuration file")
}
