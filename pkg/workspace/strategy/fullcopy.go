package strategy

import (
	"context"

	"github.com/warchest-gg/workspace-engine/pkg/workspace"
)

// FullCopy materializes every file as a byte-for-byte copy. It has no
// elevation or same-volume requirement, at the cost of using the most disk
// space of the four strategies.
type FullCopy struct{}

// NewFullCopy constructs the FullCopy materializer.
func NewFullCopy() *FullCopy { return &FullCopy{} }

// Strategy identifies this materializer.
func (f *FullCopy) Strategy() workspace.Strategy { return workspace.StrategyFullCopy }

// Requirements reports that FullCopy has no capability preconditions.
func (f *FullCopy) Requirements() Requirements { return Requirements{} }

// EstimateDiskUsage sums the effective size of each group's winning record,
// since lower-priority records are never materialized.
func (f *FullCopy) EstimateDiskUsage(groups []*workspace.FileGroup, effectiveSize func(workspace.Record) int64, env *Environment) int64 {
	var total int64
	for _, group := range groups {
		total = workspace.SaturatingAdd(total, effectiveSize(group.HighestPriority()))
	}
	return total
}

// MaterializeGroup copies the group's winning record into the workspace,
// verifying its hash (if any) as a non-fatal check: a mismatch is recorded
// as a warning rather than aborting the run.
func (f *FullCopy) MaterializeGroup(ctx context.Context, env *Environment, group *workspace.FileGroup) (GroupOutcome, error) {
	record := group.HighestPriority()
	dst := destinationFor(env.WorkspacePath, group.RelativePath)

	if record.File.SourceType == workspace.SourceTypeContentAddressable {
		if err := DispatchCAS(ctx, env, record.File.Hash, dst, func() (bool, error) {
			return env.Ops.CopyFromCAS(ctx, record.File.Hash, dst)
		}); err != nil {
			return GroupOutcome{}, err
		}
		return GroupOutcome{MaterializedSize: record.File.Size}, nil
	}

	src := env.Resolver(record)
	if !sourceExists(src) {
		return GroupOutcome{Issues: notFoundIssue(group.RelativePath)}, nil
	}

	if err := env.Ops.CopyFile(ctx, src, dst); err != nil {
		return GroupOutcome{}, err
	}

	issues, err := verifyHash(ctx, env, dst, record.File.Hash, false)
	if err != nil {
		return GroupOutcome{}, err
	}
	return GroupOutcome{MaterializedSize: record.File.Size, Issues: issues}, nil
}
