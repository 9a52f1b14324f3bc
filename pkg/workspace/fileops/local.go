package fileops

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/warchest-gg/workspace-engine/pkg/logging"
	"github.com/warchest-gg/workspace-engine/pkg/volume"
	"github.com/warchest-gg/workspace-engine/pkg/workspace/cas"
)

// hashChunkSize bounds how much of a file is read between cancellation
// checks, keeping detection latency low on large files without adding
// per-byte overhead.
const hashChunkSize = 1 << 20 // 1 MiB

// Local is the OS-backed implementation of FileOperations. It consults a CAS
// store for the two CAS-prefixed primitives.
type Local struct {
	// cas is the read-only content pool consulted for CopyFromCAS and
	// LinkFromCAS.
	cas *cas.Store
	// prober reports volume relationships, used to decide whether a hard
	// link is even attemptable before paying for the syscall.
	prober volume.Prober
	// logger receives diagnostic output; nil-safe.
	logger *logging.Logger
}

// NewLocal creates a Local file operations implementation backed by the
// given CAS store and volume prober.
func NewLocal(store *cas.Store, prober volume.Prober, logger *logging.Logger) *Local {
	return &Local{cas: store, prober: prober, logger: logger}
}

// CopyFile implements FileOperations.CopyFile.
func (l *Local) CopyFile(ctx context.Context, src, dst string) error {
	if err := l.EnsureDirectoryExists(filepath.Dir(dst)); err != nil {
		return errors.Wrap(err, "unable to create destination directory")
	}

	source, err := os.Open(src)
	if err != nil {
		return errors.Wrap(err, "unable to open source file")
	}
	defer source.Close()

	info, err := source.Stat()
	if err != nil {
		return errors.Wrap(err, "unable to stat source file")
	}

	temporary, err := os.CreateTemp(filepath.Dir(dst), ".workspace-copy-*")
	if err != nil {
		return errors.Wrap(err, "unable to create temporary file")
	}
	temporaryName := temporary.Name()

	if _, err := copyWithCancellation(ctx, temporary, source); err != nil {
		temporary.Close()
		os.Remove(temporaryName)
		return errors.Wrap(err, "unable to copy file contents")
	}
	if err := temporary.Close(); err != nil {
		os.Remove(temporaryName)
		return errors.Wrap(err, "unable to close temporary file")
	}
	if err := os.Chmod(temporaryName, info.Mode()); err != nil {
		os.Remove(temporaryName)
		return errors.Wrap(err, "unable to set file permissions")
	}

	// Rename is the atomic-visibility point: readers never observe a
	// partially-written dst.
	if err := os.Rename(temporaryName, dst); err != nil {
		os.Remove(temporaryName)
		return errors.Wrap(err, "unable to relocate copied file")
	}
	return nil
}

// copyWithCancellation copies from src to dst, checking ctx between chunks
// so that cancellation is observed at bounded latency even for very large
// files.
func copyWithCancellation(ctx context.Context, dst io.Writer, src io.Reader) (int64, error) {
	var total int64
	buffer := make([]byte, hashChunkSize)
	for {
		select {
		case <-ctx.Done():
			return total, ctx.Err()
		default:
		}
		n, readErr := src.Read(buffer)
		if n > 0 {
			written, writeErr := dst.Write(buffer[:n])
			total += int64(written)
			if writeErr != nil {
				return total, writeErr
			}
		}
		if readErr == io.EOF {
			return total, nil
		}
		if readErr != nil {
			return total, readErr
		}
	}
}

// CreateHardLink implements FileOperations.CreateHardLink.
func (l *Local) CreateHardLink(ctx context.Context, dst, src string) error {
	if err := l.EnsureDirectoryExists(filepath.Dir(dst)); err != nil {
		return errors.Wrap(err, "unable to create destination directory")
	}
	os.Remove(dst)
	if err := os.Link(src, dst); err != nil {
		return errors.Wrap(err, "unable to create hard link")
	}
	return nil
}

// CreateSymlink implements FileOperations.CreateSymlink.
func (l *Local) CreateSymlink(ctx context.Context, dst, src string, allowFallback bool) error {
	if err := l.EnsureDirectoryExists(filepath.Dir(dst)); err != nil {
		return errors.Wrap(err, "unable to create destination directory")
	}
	os.Remove(dst)
	if err := os.Symlink(src, dst); err != nil {
		if allowFallback {
			return l.CopyFile(ctx, src, dst)
		}
		return errors.Wrap(err, "unable to create symbolic link")
	}
	return nil
}

// VerifyFileHash implements FileOperations.VerifyFileHash.
func (l *Local) VerifyFileHash(ctx context.Context, path, expectedHex string) (bool, error) {
	file, err := os.Open(path)
	if err != nil {
		return false, errors.Wrap(err, "unable to open file for verification")
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := copyWithCancellation(ctx, hasher, file); err != nil {
		return false, errors.Wrap(err, "unable to hash file")
	}
	return hex.EncodeToString(hasher.Sum(nil)) == expectedHex, nil
}

// CopyFromCAS implements FileOperations.CopyFromCAS.
func (l *Local) CopyFromCAS(ctx context.Context, hash, dst string) (bool, error) {
	source, err := l.cas.Locate(hash)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	if err := l.CopyFile(ctx, source, dst); err != nil {
		return false, err
	}
	return true, nil
}

// LinkFromCAS implements FileOperations.LinkFromCAS.
func (l *Local) LinkFromCAS(ctx context.Context, hash, dst string, useHardLink bool) (bool, error) {
	source, err := l.cas.Locate(hash)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}

	if useHardLink && l.prober.SameVolume(source, filepath.Dir(dst)) {
		if err := l.CreateHardLink(ctx, dst, source); err == nil {
			return true, nil
		}
	}
	if err := l.CreateSymlink(ctx, dst, source, false); err == nil {
		return true, nil
	}
	if err := l.CopyFile(ctx, source, dst); err != nil {
		return false, err
	}
	return true, nil
}

// EnsureDirectoryExists implements FileOperations.EnsureDirectoryExists.
func (l *Local) EnsureDirectoryExists(path string) error {
	return os.MkdirAll(path, 0o755)
}

// DeleteDirectoryIfExists implements FileOperations.DeleteDirectoryIfExists.
func (l *Local) DeleteDirectoryIfExists(path string) error {
	if _, err := os.Lstat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return errors.Wrap(err, "unable to stat directory for removal")
	}
	return os.RemoveAll(path)
}
