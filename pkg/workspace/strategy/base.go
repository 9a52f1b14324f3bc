// Package strategy implements the four materialization strategies
// (FullCopy, SymlinkOnly, HardLink, HybridCopySymlink) and the scaffolding
// they share: progress reporting, parallel scheduling over file groups, and
// the CAS dispatch fallback chain. Removing a failed workspace directory is
// left to the caller (pkg/compose).
//
// One constructor per strategy; the scheduler holds a capability pointer,
// not an inheritance chain. Materializer is that capability pointer; the
// helpers in this file are composed by every implementation rather than
// inherited.
package strategy

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"

	"github.com/warchest-gg/workspace-engine/pkg/capability"
	"github.com/warchest-gg/workspace-engine/pkg/logging"
	"github.com/warchest-gg/workspace-engine/pkg/volume"
	"github.com/warchest-gg/workspace-engine/pkg/workspace"
	"github.com/warchest-gg/workspace-engine/pkg/workspace/fileops"
)

// Progress describes the state of an in-flight preparation, reported at
// least every 50 files and at completion.
type Progress struct {
	FilesProcessed   int
	TotalFiles       int
	CurrentOperation string
	CurrentFile      string
}

// ProgressFunc receives Progress updates. It must not block for long, since
// it is invoked from worker goroutines; callers that need to marshal
// updates onto another goroutine should do their own buffering.
type ProgressFunc func(Progress)

// progressEveryNFiles is the reporting cadence floor.
const progressEveryNFiles = 50

// Requirements describes the capability preconditions a strategy needs the
// host to satisfy before MaterializeGroup is attempted.
type Requirements struct {
	// RequiresElevation indicates the strategy may need elevated privilege
	// on Windows hosts to create symbolic links.
	RequiresElevation bool
	// RequiresSameVolume indicates the strategy requires its source and
	// destination to reside on the same physical volume.
	RequiresSameVolume bool
}

// Environment bundles the capabilities every strategy needs, constructed
// once per preparation run by the engine entrypoint.
type Environment struct {
	Ops      fileops.FileOperations
	Prober   volume.Prober
	Probe    capability.Probe
	Logger   *logging.Logger
	Resolver func(workspace.Record) string
	// WorkspacePath is the root directory under which every group's
	// RelativePath is materialized.
	WorkspacePath string
}

// GroupOutcome is the result of materializing a single file group.
type GroupOutcome struct {
	// MaterializedSize is the logical byte count to attribute to
	// TotalSizeBytes for this group.
	MaterializedSize int64
	// Issues accrues any non-fatal problems encountered while
	// materializing this group.
	Issues workspace.ValidationIssues
}

// Materializer is the per-strategy contract. Each of the four strategies
// provides one.
type Materializer interface {
	// Strategy identifies which workspace.Strategy value this materializer
	// handles.
	Strategy() workspace.Strategy

	// Requirements reports the capability preconditions for this strategy.
	Requirements() Requirements

	// EstimateDiskUsage computes the strategy's disk usage estimate for
	// the given file groups, using effectiveSize to resolve each record's
	// logical size and prober to determine volume relationships.
	EstimateDiskUsage(groups []*workspace.FileGroup, effectiveSize func(workspace.Record) int64, env *Environment) int64

	// MaterializeGroup materializes a single file group. A non-nil fatal
	// error aborts the entire preparation; anything recorded in
	// GroupOutcome.Issues is non-fatal.
	MaterializeGroup(ctx context.Context, env *Environment, group *workspace.FileGroup) (GroupOutcome, error)
}

// ParallelismDegree selects the scheduler's concurrency bound from the
// target volume's physical type: spinning/unknown disks get a conservative
// cap, non-rotational disks get a multiplier of CPU count.
func ParallelismDegree(volumeType volume.Type) int {
	cpus := runtime.NumCPU()
	if cpus < 1 {
		cpus = 1
	}
	switch volumeType {
	case volume.TypeNonRotational:
		return cpus * 2
	case volume.TypeRotational:
		if cpus < 4 {
			return cpus
		}
		return 4
	default:
		// Detection failed or reported unknown: default to the
		// non-rotational formula rather than assume a conservative cap.
		return cpus * 2
	}
}

// RunGroups schedules work across file groups with a bounded degree of
// concurrency, reporting progress at least every 50 processed groups and at
// completion, and returns the first fatal error encountered (if any),
// cancelling remaining work. Concurrency is sized per file group rather
// than per fixed worker lane, since file groups are independent,
// variable-cost units.
func RunGroups(
	ctx context.Context,
	groups []*workspace.FileGroup,
	degree int,
	progress ProgressFunc,
	work func(ctx context.Context, group *workspace.FileGroup) (GroupOutcome, error),
) (int64, workspace.ValidationIssues, error) {
	if degree < 1 {
		degree = 1
	}

	var (
		totalBytes     int64 // accessed only via sync/atomic
		processedFiles int64 // accessed only via sync/atomic
		issuesLock     sync.Mutex
		allIssues      workspace.ValidationIssues
	)

	group, groupCtx := errgroup.WithContext(ctx)
	sem := semaphore.NewWeighted(int64(degree))

	total := len(groups)
	if progress != nil {
		progress(Progress{FilesProcessed: 0, TotalFiles: total, CurrentOperation: "starting"})
	}

	var acquireErr error
	for _, fileGroup := range groups {
		fileGroup := fileGroup
		if err := sem.Acquire(groupCtx, 1); err != nil {
			acquireErr = err
			break
		}
		group.Go(func() error {
			defer sem.Release(1)

			outcome, err := work(groupCtx, fileGroup)
			if err != nil {
				return err
			}

			atomic.AddInt64(&totalBytes, outcome.MaterializedSize)
			if len(outcome.Issues) > 0 {
				issuesLock.Lock()
				allIssues = append(allIssues, outcome.Issues...)
				issuesLock.Unlock()
			}

			processed := atomic.AddInt64(&processedFiles, 1)
			if progress != nil && (processed%progressEveryNFiles == 0 || int(processed) == total) {
				progress(Progress{
					FilesProcessed:   int(processed),
					TotalFiles:       total,
					CurrentOperation: "materializing",
					CurrentFile:      fileGroup.RelativePath,
				})
			}
			return nil
		})
	}

	err := group.Wait()
	if err == nil {
		err = acquireErr
	}
	finalBytes := atomic.LoadInt64(&totalBytes)
	if progress != nil && err == nil {
		progress(Progress{FilesProcessed: total, TotalFiles: total, CurrentOperation: "complete"})
	}
	if err != nil {
		return finalBytes, allIssues, errors.Wrap(err, "materialization failed")
	}
	return finalBytes, allIssues, nil
}

// DispatchCAS implements the CAS fallback chain: strategy-specific
// primitive, then direct hard link, then direct copy, then CasStorageError
// with the underlying cause chained.
func DispatchCAS(ctx context.Context, env *Environment, hash, dst string, primary func() (bool, error)) error {
	ok, cause := primary()
	if cause == nil && ok {
		return nil
	}

	if ok, err := env.Ops.LinkFromCAS(ctx, hash, dst, true); err == nil && ok {
		return nil
	} else if err != nil {
		cause = err
	}

	if ok, err := env.Ops.CopyFromCAS(ctx, hash, dst); err == nil && ok {
		return nil
	} else if err != nil {
		cause = err
	}

	if cause == nil {
		cause = workspace.ErrNotFound
	}
	return &workspace.CasStorageError{Hash: hash, Cause: cause}
}

// destinationFor joins a group's RelativePath onto the workspace root,
// normalizing to the OS separator.
func destinationFor(workspacePath string, relativePath string) string {
	return filepath.Join(workspacePath, filepath.FromSlash(strings.ReplaceAll(relativePath, "\\", "/")))
}

// sourceExists reports whether a direct (non-CAS) source path is present on
// disk, used to classify a missing source as ErrNotFound before attempting
// any FileOperations primitive against it.
func sourceExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// verifyHash runs FileOperations.VerifyFileHash against a materialized
// file and reports an outcome: a nil error with a Warning issue appended
// when escalateToFatal is false and the hash mismatches, or a non-nil
// ErrIntegrityMismatch-wrapped error when escalateToFatal is true.
func verifyHash(ctx context.Context, env *Environment, path, expectedHex string, escalateToFatal bool) (workspace.ValidationIssues, error) {
	if expectedHex == "" {
		return nil, nil
	}
	matched, err := env.Ops.VerifyFileHash(ctx, path, expectedHex)
	if err != nil {
		return nil, errors.Wrap(err, "unable to verify file hash")
	}
	if matched {
		return nil, nil
	}
	if escalateToFatal {
		return nil, errors.Wrapf(workspace.ErrIntegrityMismatch, "path %s", path)
	}
	return workspace.ValidationIssues{{
		Severity: workspace.SeverityWarning,
		Message:  fmt.Sprintf("hash mismatch for %s; keeping materialized content", path),
	}}, nil
}

// notFoundIssue builds the single warning recorded when a file group's
// highest-priority source is missing. Lower-priority sources in the same
// group are never consulted as a fallback.
func notFoundIssue(relativePath string) workspace.ValidationIssues {
	return workspace.ValidationIssues{{
		Severity: workspace.SeverityWarning,
		Message:  fmt.Sprintf("source not found for %s; skipped", relativePath),
	}}
}
