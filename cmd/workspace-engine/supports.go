package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	ourcmd "github.com/warchest-gg/workspace-engine/cmd"
	"github.com/warchest-gg/workspace-engine/pkg/compose"
	"github.com/warchest-gg/workspace-engine/pkg/config"
)

var supportsConfiguration struct {
	casRoot string
}

var supportsCommand = &cobra.Command{
	Use:   "supports <configuration.yaml>",
	Short: "Check whether the requested strategy can be honored on this host, with no filesystem side effects",
	Args:  cobra.ExactArgs(1),
	Run:   supportsMain,
}

func init() {
	flags := supportsCommand.Flags()
	flags.StringVar(&supportsConfiguration.casRoot, "cas-root", "", "Root directory of the content-addressable store")
}

func supportsMain(command *cobra.Command, arguments []string) {
	workspaceConfig, err := config.Load(arguments[0])
	if err != nil {
		ourcmd.Fatal(err)
	}

	engine := newEngine(supportsConfiguration.casRoot)

	status := engine.Supports(workspaceConfig)
	fmt.Println(status)
	if status != compose.SupportOk {
		os.Exit(1)
	}
}
