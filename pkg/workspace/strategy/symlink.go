package strategy

import (
	"context"

	"github.com/pkg/errors"

	"github.com/warchest-gg/workspace-engine/pkg/workspace"
)

// Symlink materializes every file as a symbolic link, the cheapest strategy
// on disk but the one most dependent on host privilege. It is strict for
// direct (non-CAS) sources: a link that cannot be created is a fatal
// ErrCapabilityUnsupported rather than a silent copy fallback, since a
// silent fallback here would defeat the estimate the engine reported before
// starting. ContentAddressable records go through DispatchCAS, whose chain
// ends in a copy from the store.
type Symlink struct{}

// NewSymlink constructs the SymlinkOnly materializer.
func NewSymlink() *Symlink { return &Symlink{} }

// Strategy identifies this materializer.
func (s *Symlink) Strategy() workspace.Strategy { return workspace.StrategySymlinkOnly }

// Requirements reports that SymlinkOnly may need elevated privilege on
// hosts that restrict symbolic link creation.
func (s *Symlink) Requirements() Requirements { return Requirements{RequiresElevation: true} }

// EstimateDiskUsage charges workspace.LinkOverheadBytes per file group: a
// symbolic link is a directory entry, not a copy of the underlying content.
func (s *Symlink) EstimateDiskUsage(groups []*workspace.FileGroup, effectiveSize func(workspace.Record) int64, env *Environment) int64 {
	var total int64
	for range groups {
		total = workspace.SaturatingAdd(total, workspace.LinkOverheadBytes)
	}
	return total
}

// MaterializeGroup links the group's winning record into the workspace.
func (s *Symlink) MaterializeGroup(ctx context.Context, env *Environment, group *workspace.FileGroup) (GroupOutcome, error) {
	record := group.HighestPriority()
	dst := destinationFor(env.WorkspacePath, group.RelativePath)

	if record.File.SourceType == workspace.SourceTypeContentAddressable {
		if err := DispatchCAS(ctx, env, record.File.Hash, dst, func() (bool, error) {
			return env.Ops.LinkFromCAS(ctx, record.File.Hash, dst, false)
		}); err != nil {
			return GroupOutcome{}, err
		}
		return GroupOutcome{MaterializedSize: workspace.LinkOverheadBytes}, nil
	}

	src := env.Resolver(record)
	if !sourceExists(src) {
		return GroupOutcome{Issues: notFoundIssue(group.RelativePath)}, nil
	}

	if err := env.Ops.CreateSymlink(ctx, dst, src, false); err != nil {
		return GroupOutcome{}, errors.Wrapf(workspace.ErrCapabilityUnsupported, "symlink %s: %v", group.RelativePath, err)
	}

	return GroupOutcome{MaterializedSize: workspace.LinkOverheadBytes}, nil
}
