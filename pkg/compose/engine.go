// Package compose is the composition engine's entrypoint: it selects a
// Materializer for a requested workspace.Strategy, builds the shared
// Environment each materializer needs, and drives preparation, estimation,
// and capability checking end to end.
//
// This is the top-level package in the import graph: it depends on both
// pkg/workspace (domain types) and pkg/workspace/strategy (materializer
// implementations), which cannot depend on each other without a cycle.
package compose

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/warchest-gg/workspace-engine/pkg/capability"
	"github.com/warchest-gg/workspace-engine/pkg/clock"
	"github.com/warchest-gg/workspace-engine/pkg/logging"
	"github.com/warchest-gg/workspace-engine/pkg/volume"
	"github.com/warchest-gg/workspace-engine/pkg/workspace"
	"github.com/warchest-gg/workspace-engine/pkg/workspace/fileops"
	"github.com/warchest-gg/workspace-engine/pkg/workspace/resolve"
	"github.com/warchest-gg/workspace-engine/pkg/workspace/strategy"
)

var logger = logging.RootLogger.Sublogger("compose")

// Engine is the composition engine. It is safe for concurrent use across
// independent WorkspaceConfiguration values; a single Prepare/Estimate call
// is not safe to invoke concurrently with another on the same workspace
// path.
type Engine struct {
	Ops    fileops.FileOperations
	Prober volume.Prober
	Probe  capability.Probe
	Logger *logging.Logger
	Clock  clock.Clock

	materializers map[workspace.Strategy]strategy.Materializer
}

// New constructs an Engine wired with the four built-in materializers.
func New(ops fileops.FileOperations, prober volume.Prober, probe capability.Probe, clk clock.Clock) *Engine {
	return &Engine{
		Ops:    ops,
		Prober: prober,
		Probe:  probe,
		Logger: logger,
		Clock:  clk,
		materializers: map[workspace.Strategy]strategy.Materializer{
			workspace.StrategyFullCopy:          strategy.NewFullCopy(),
			workspace.StrategySymlinkOnly:       strategy.NewSymlink(),
			workspace.StrategyHardLink:          strategy.NewHardLink(),
			workspace.StrategyHybridCopySymlink: strategy.NewHybrid(),
		},
	}
}

// materializerFor returns the materializer for a configuration's requested strategy.
func (e *Engine) materializerFor(config workspace.WorkspaceConfiguration) (strategy.Materializer, error) {
	materializer, ok := e.materializers[config.Strategy]
	if !ok {
		return nil, errors.Errorf("unsupported strategy value %d", config.Strategy)
	}
	return materializer, nil
}

// workspacePath computes the absolute materialization root for a
// configuration.
func workspacePath(config workspace.WorkspaceConfiguration) string {
	return filepath.Join(config.WorkspaceRootPath, config.Id)
}

// manifestIndex builds a lookup from manifest id to its ContentType, used by
// the resolver closure to decide whether a record's manifest is a
// GameInstallation manifest.
func manifestIndex(manifests []workspace.Manifest) map[string]workspace.ContentType {
	index := make(map[string]workspace.ContentType, len(manifests))
	for _, manifest := range manifests {
		index[manifest.Id] = manifest.ContentType
	}
	return index
}

// newResolver builds the closure strategy.Environment.Resolver needs,
// translating a workspace.Record to an absolute source path via the
// pkg/workspace/resolve policy.
func newResolver(config workspace.WorkspaceConfiguration) func(workspace.Record) string {
	contentTypes := manifestIndex(config.Manifests)
	resolveConfig := resolve.Configuration{
		BaseInstallationPath: config.BaseInstallationPath,
		ManifestSourcePaths:  config.ManifestSourcePaths,
	}
	return func(record workspace.Record) string {
		file := resolve.File{
			RelativePath:               record.File.RelativePath,
			SourcePath:                 record.File.SourcePath,
			IsGameInstallationManifest: contentTypes[record.Manifest.Id] == workspace.ContentTypeGameInstallation,
		}
		manifest := resolve.Manifest{Id: record.Manifest.Id}
		return resolve.Resolve(file, manifest, resolveConfig)
	}
}

// newEffectiveSize builds the closure EstimateDiskUsage needs to resolve a
// record's logical size, backfilling from disk via the resolver when the
// manifest's Size field is zero.
func newEffectiveSize(resolver func(workspace.Record) string) func(workspace.Record) int64 {
	return func(record workspace.Record) int64 {
		return workspace.EffectiveSize(record.File, resolver(record))
	}
}

// buildEnvironment assembles the shared strategy.Environment for a
// preparation or estimation run.
func (e *Engine) buildEnvironment(config workspace.WorkspaceConfiguration) *strategy.Environment {
	return &strategy.Environment{
		Ops:           e.Ops,
		Prober:        e.Prober,
		Probe:         e.Probe,
		Logger:        e.Logger,
		Resolver:      newResolver(config),
		WorkspacePath: workspacePath(config),
	}
}

// Supports reports whether config's requested strategy can be honored on
// this host without performing any filesystem side effects.
func (e *Engine) Supports(config workspace.WorkspaceConfiguration) SupportStatus {
	if !config.Strategy.Supported() {
		return SupportUnknownStrategy
	}
	materializer, err := e.materializerFor(config)
	if err != nil {
		return SupportUnknownStrategy
	}
	requirements := materializer.Requirements()
	if requirements.RequiresElevation && e.Probe != nil && !e.Probe.SymlinkPrivilege() {
		return SupportRequiresAdmin
	}
	if requirements.RequiresSameVolume {
		return SupportRequiresSameVolume
	}
	return SupportOk
}

// Estimate computes the projected additional disk usage of preparing config,
// without touching the filesystem.
func (e *Engine) Estimate(config workspace.WorkspaceConfiguration) (int64, error) {
	materializer, err := e.materializerFor(config)
	if err != nil {
		return 0, err
	}
	groups := workspace.BuildFileGroups(config.Manifests)
	env := e.buildEnvironment(config)
	effectiveSize := newEffectiveSize(env.Resolver)
	return materializer.EstimateDiskUsage(groups, effectiveSize, env), nil
}

// Prepare materializes a workspace for config, returning a WorkspaceInfo
// describing the result. A non-nil error indicates preparation did not
// complete; any directory created before the failure is removed. When the
// host fails the Supports check for the requested strategy, Prepare makes no
// filesystem changes and returns a WorkspaceInfo with IsPrepared false and an
// Error-severity issue, together with an ErrCapabilityUnsupported error.
func (e *Engine) Prepare(ctx context.Context, config workspace.WorkspaceConfiguration, progress strategy.ProgressFunc) (workspace.WorkspaceInfo, error) {
	materializer, err := e.materializerFor(config)
	if err != nil {
		return workspace.WorkspaceInfo{}, err
	}

	path := workspacePath(config)

	if status := e.Supports(config); status != SupportOk {
		info := workspace.WorkspaceInfo{
			Id:            config.Id,
			WorkspacePath: path,
			GameClientId:  config.GameClient.Id,
			Strategy:      config.Strategy,
		}
		info.AddIssue(workspace.SeverityError, "strategy "+config.Strategy.String()+" cannot be used on this host: "+status.String())
		return info, errors.Wrapf(workspace.ErrCapabilityUnsupported, "strategy %v: %v", config.Strategy, status)
	}

	if config.ForceRecreate {
		if err := e.recreateDirectory(path); err != nil {
			return workspace.WorkspaceInfo{}, errors.Wrap(err, "unable to clear existing workspace")
		}
	}

	if err := e.Ops.EnsureDirectoryExists(path); err != nil {
		return workspace.WorkspaceInfo{}, errors.Wrap(err, "unable to create workspace directory")
	}

	groups := workspace.BuildFileGroups(config.Manifests)
	env := e.buildEnvironment(config)
	degree := strategy.ParallelismDegree(e.Prober.VolumeType(path))

	totalBytes, issues, err := strategy.RunGroups(ctx, groups, degree, progress, func(ctx context.Context, group *workspace.FileGroup) (strategy.GroupOutcome, error) {
		return materializer.MaterializeGroup(ctx, env, group)
	})
	if err != nil {
		e.Ops.DeleteDirectoryIfExists(path)
		return workspace.WorkspaceInfo{}, errors.Wrap(err, "workspace preparation failed")
	}

	now := timestamppb.New(e.Clock.Now())
	info := workspace.WorkspaceInfo{
		Id:               config.Id,
		WorkspacePath:    path,
		GameClientId:     config.GameClient.Id,
		Strategy:         config.Strategy,
		CreatedAt:        now,
		LastAccessedAt:   now,
		FileCount:        len(groups),
		TotalSizeBytes:   totalBytes,
		ExecutablePath:   strategy.ResolveExecutablePath(path, config, groups),
		WorkingDirectory: path,
		IsPrepared:       true,
		IsValid:          !issues.HasErrors(),
		ValidationIssues: issues,
	}
	if info.ExecutablePath == "" {
		info.AddIssue(workspace.SeverityInfo, "no launcher executable could be resolved for this workspace")
	}
	return info, nil
}

// recreateDirectory implements force-recreate semantics: the existing
// workspace directory is renamed aside under a uuid-suffixed
// name before being removed, so a concurrent reader never observes a
// partially-deleted tree at the canonical path.
func (e *Engine) recreateDirectory(path string) error {
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "unable to stat existing workspace")
	}
	stale := path + ".stale-" + uuid.NewString()
	if err := os.Rename(path, stale); err != nil {
		return errors.Wrap(err, "unable to relocate existing workspace")
	}
	return e.Ops.DeleteDirectoryIfExists(stale)
}
