package strategy

import (
	"context"

	"github.com/warchest-gg/workspace-engine/pkg/workspace"
)

// HardLink materializes every file as a hard link, falling back to a full
// copy when source and destination are not on the same volume. Unlike
// Symlink, this fallback is silent: cross-volume placement is a routine
// occurrence (a mod on a different drive than the base install), not a
// capability failure worth surfacing.
type HardLink struct{}

// NewHardLink constructs the HardLink materializer.
func NewHardLink() *HardLink { return &HardLink{} }

// Strategy identifies this materializer.
func (h *HardLink) Strategy() workspace.Strategy { return workspace.StrategyHardLink }

// Requirements reports that HardLink prefers, but does not strictly
// require, a shared volume: EstimateDiskUsage and MaterializeGroup both
// degrade gracefully when it is absent.
func (h *HardLink) Requirements() Requirements { return Requirements{} }

// EstimateDiskUsage charges full size for records whose source is not on
// the same volume as the workspace root (since those fall back to a copy),
// and workspace.LinkOverheadBytes for records that can be hard linked.
func (h *HardLink) EstimateDiskUsage(groups []*workspace.FileGroup, effectiveSize func(workspace.Record) int64, env *Environment) int64 {
	var total int64
	for _, group := range groups {
		record := group.HighestPriority()
		if record.File.SourceType == workspace.SourceTypeContentAddressable {
			total = workspace.SaturatingAdd(total, workspace.LinkOverheadBytes)
			continue
		}
		src := env.Resolver(record)
		if env.Prober != nil && env.Prober.SameVolume(src, env.WorkspacePath) {
			total = workspace.SaturatingAdd(total, workspace.LinkOverheadBytes)
			continue
		}
		total = workspace.SaturatingAdd(total, effectiveSize(record))
	}
	return total
}

// MaterializeGroup hard links the group's winning record into the
// workspace, falling back to a copy when linking fails.
func (h *HardLink) MaterializeGroup(ctx context.Context, env *Environment, group *workspace.FileGroup) (GroupOutcome, error) {
	record := group.HighestPriority()
	dst := destinationFor(env.WorkspacePath, group.RelativePath)

	if record.File.SourceType == workspace.SourceTypeContentAddressable {
		if err := DispatchCAS(ctx, env, record.File.Hash, dst, func() (bool, error) {
			return env.Ops.LinkFromCAS(ctx, record.File.Hash, dst, true)
		}); err != nil {
			return GroupOutcome{}, err
		}
		return GroupOutcome{MaterializedSize: workspace.LinkOverheadBytes}, nil
	}

	src := env.Resolver(record)
	if !sourceExists(src) {
		return GroupOutcome{Issues: notFoundIssue(group.RelativePath)}, nil
	}

	materializedSize := workspace.LinkOverheadBytes
	if err := env.Ops.CreateHardLink(ctx, dst, src); err != nil {
		if err := env.Ops.CopyFile(ctx, src, dst); err != nil {
			return GroupOutcome{}, err
		}
		materializedSize = record.File.Size
	}

	issues, err := verifyHash(ctx, env, dst, record.File.Hash, false)
	if err != nil {
		return GroupOutcome{}, err
	}
	return GroupOutcome{MaterializedSize: materializedSize, Issues: issues}, nil
}
