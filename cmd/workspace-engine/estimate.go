package main

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	ourcmd "github.com/warchest-gg/workspace-engine/cmd"
	"github.com/warchest-gg/workspace-engine/pkg/config"
)

var estimateConfiguration struct {
	casRoot string
}

var estimateCommand = &cobra.Command{
	Use:   "estimate <configuration.yaml>",
	Short: "Estimate the additional disk usage a preparation run would consume",
	Args:  cobra.ExactArgs(1),
	Run:   estimateMain,
}

func init() {
	flags := estimateCommand.Flags()
	flags.StringVar(&estimateConfiguration.casRoot, "cas-root", "", "Root directory of the content-addressable store")
}

func estimateMain(command *cobra.Command, arguments []string) {
	workspaceConfig, err := config.Load(arguments[0])
	if err != nil {
		ourcmd.Fatal(err)
	}

	engine := newEngine(estimateConfiguration.casRoot)

	bytes, err := engine.Estimate(workspaceConfig)
	if err != nil {
		ourcmd.Fatal(err)
	}

	fmt.Printf("Estimated additional disk usage: %s (%d bytes)\n", humanize.Bytes(uint64(bytes)), bytes)
}
