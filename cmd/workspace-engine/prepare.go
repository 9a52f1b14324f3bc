package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	ourcmd "github.com/warchest-gg/workspace-engine/cmd"
	"github.com/warchest-gg/workspace-engine/pkg/config"
	"github.com/warchest-gg/workspace-engine/pkg/workspace"
	"github.com/warchest-gg/workspace-engine/pkg/workspace/strategy"
)

var prepareConfiguration struct {
	casRoot string
}

var prepareCommand = &cobra.Command{
	Use:   "prepare <configuration.yaml>",
	Short: "Materialize a workspace from a manifest configuration",
	Args:  cobra.ExactArgs(1),
	Run:   prepareMain,
}

func init() {
	flags := prepareCommand.Flags()
	flags.StringVar(&prepareConfiguration.casRoot, "cas-root", "", "Root directory of the content-addressable store")
}

func prepareMain(command *cobra.Command, arguments []string) {
	workspaceConfig, err := config.Load(arguments[0])
	if err != nil {
		ourcmd.Fatal(err)
	}

	engine := newEngine(prepareConfiguration.casRoot)

	progress := func(p strategy.Progress) {
		fmt.Printf("\r%s: %d/%d files", p.CurrentOperation, p.FilesProcessed, p.TotalFiles)
	}

	info, err := engine.Prepare(context.Background(), workspaceConfig, progress)
	fmt.Println()
	if err != nil {
		ourcmd.Fatal(err)
	}

	fmt.Printf("Workspace %s prepared at %s\n", info.Id, info.WorkspacePath)
	fmt.Printf("  Strategy:   %s\n", info.Strategy)
	fmt.Printf("  Files:      %d\n", info.FileCount)
	fmt.Printf("  Size:       %s\n", humanize.Bytes(uint64(info.TotalSizeBytes)))
	if info.ExecutablePath != "" {
		fmt.Printf("  Executable: %s\n", info.ExecutablePath)
	}
	for _, issue := range info.ValidationIssues {
		if issue.Severity >= workspace.SeverityWarning {
			ourcmd.Warning(issue.Message)
		}
	}
	if !info.IsValid {
		ourcmd.Fatal(fmt.Errorf("workspace preparation completed with validation errors"))
	}
}
