// Command workspace-engine materializes a launchable workspace directory
// from a YAML configuration describing one or more content manifests.
package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/warchest-gg/workspace-engine/pkg/logging"
)

var rootConfiguration struct {
	logLevel string
}

var rootCommand = &cobra.Command{
	Use:   "workspace-engine",
	Short: "workspace-engine materializes game workspaces from content manifests",
	PersistentPreRun: func(command *cobra.Command, arguments []string) {
		if level, ok := logging.NameToLevel(rootConfiguration.logLevel); ok {
			logging.SetLevel(level)
		}
	},
}

func init() {
	cobra.EnableCommandSorting = false

	flags := rootCommand.PersistentFlags()
	flags.StringVar(&rootConfiguration.logLevel, "log-level", "info", "Set the logging level (disabled, error, warn, info, debug)")

	rootCommand.AddCommand(
		prepareCommand,
		estimateCommand,
		supportsCommand,
	)
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		os.Exit(1)
	}
}
