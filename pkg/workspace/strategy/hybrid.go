package strategy

import (
	"context"

	"github.com/pkg/errors"

	"github.com/warchest-gg/workspace-engine/pkg/workspace"
	"github.com/warchest-gg/workspace-engine/pkg/workspace/classify"
)

// Hybrid copies essential files (per classify.IsEssential) and symlinks the
// rest, balancing disk usage against the robustness a real copy gives
// configuration and executable files. Essential files escalate a hash
// mismatch to a fatal error; non-essential ones only warn, matching the
// asymmetry in how much each class of file matters to a working launch.
type Hybrid struct{}

// NewHybrid constructs the HybridCopySymlink materializer.
func NewHybrid() *Hybrid { return &Hybrid{} }

// Strategy identifies this materializer.
func (h *Hybrid) Strategy() workspace.Strategy { return workspace.StrategyHybridCopySymlink }

// Requirements reports that Hybrid may need elevated privilege for the
// symlinked, non-essential portion of the file set.
func (h *Hybrid) Requirements() Requirements { return Requirements{RequiresElevation: true} }

// EstimateDiskUsage charges full size for essential records and
// workspace.LinkOverheadBytes for linked, non-essential ones.
func (h *Hybrid) EstimateDiskUsage(groups []*workspace.FileGroup, effectiveSize func(workspace.Record) int64, env *Environment) int64 {
	var total int64
	for _, group := range groups {
		record := group.HighestPriority()
		size := effectiveSize(record)
		if classify.IsEssential(group.RelativePath, size) {
			total = workspace.SaturatingAdd(total, size)
		} else {
			total = workspace.SaturatingAdd(total, workspace.LinkOverheadBytes)
		}
	}
	return total
}

// MaterializeGroup copies the group's winning record if classify.IsEssential
// deems it essential, otherwise symlinks it strictly: a symlink that cannot
// be created is a fatal ErrCapabilityUnsupported, with no copy fallback.
func (h *Hybrid) MaterializeGroup(ctx context.Context, env *Environment, group *workspace.FileGroup) (GroupOutcome, error) {
	record := group.HighestPriority()
	dst := destinationFor(env.WorkspacePath, group.RelativePath)
	essential := classify.IsEssential(group.RelativePath, record.File.Size)

	if record.File.SourceType == workspace.SourceTypeContentAddressable {
		primary := func() (bool, error) { return env.Ops.LinkFromCAS(ctx, record.File.Hash, dst, false) }
		if essential {
			primary = func() (bool, error) { return env.Ops.CopyFromCAS(ctx, record.File.Hash, dst) }
		}
		if err := DispatchCAS(ctx, env, record.File.Hash, dst, primary); err != nil {
			return GroupOutcome{}, err
		}
		materializedSize := record.File.Size
		if !essential {
			materializedSize = workspace.LinkOverheadBytes
		}
		return GroupOutcome{MaterializedSize: materializedSize}, nil
	}

	src := env.Resolver(record)
	if !sourceExists(src) {
		return GroupOutcome{Issues: notFoundIssue(group.RelativePath)}, nil
	}

	if essential {
		if err := env.Ops.CopyFile(ctx, src, dst); err != nil {
			return GroupOutcome{}, err
		}
		issues, err := verifyHash(ctx, env, dst, record.File.Hash, true)
		if err != nil {
			return GroupOutcome{}, err
		}
		return GroupOutcome{MaterializedSize: record.File.Size, Issues: issues}, nil
	}

	if err := env.Ops.CreateSymlink(ctx, dst, src, false); err != nil {
		return GroupOutcome{}, errors.Wrapf(workspace.ErrCapabilityUnsupported, "symlink %s: %v", group.RelativePath, err)
	}
	issues, err := verifyHash(ctx, env, dst, record.File.Hash, false)
	if err != nil {
		return GroupOutcome{}, err
	}
	return GroupOutcome{MaterializedSize: workspace.LinkOverheadBytes, Issues: issues}, nil
}
