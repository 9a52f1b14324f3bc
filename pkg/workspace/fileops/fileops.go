// Package fileops defines the single-file primitives the composition engine
// dispatches to: copy, hardlink, symlink, hash verification, and
// CAS-backed materialization. All operations are safe to invoke from
// multiple concurrent goroutines provided their destinations differ;
// concurrent operations on the same destination are the caller's
// responsibility to serialize.
package fileops

import "context"

// FileOperations is the capability interface the composition engine
// consumes for all filesystem mutation.
type FileOperations interface {
	// CopyFile performs an atomically-visible copy from src to dst,
	// creating intermediate directories and overwriting any existing file
	// at dst.
	CopyFile(ctx context.Context, src, dst string) error

	// CreateHardLink creates dst as a hard link to src. It fails if src and
	// dst are on different volumes or the operation is otherwise
	// unsupported.
	CreateHardLink(ctx context.Context, dst, src string) error

	// CreateSymlink makes dst a symbolic link to src. If allowFallback is
	// true and the OS refuses to create the link (insufficient privilege,
	// unsupported filesystem), the implementation falls back to a copy
	// instead of failing.
	CreateSymlink(ctx context.Context, dst, src string, allowFallback bool) error

	// VerifyFileHash streams the file at path to a hasher and reports
	// whether its digest matches expectedHex (a lowercase hex-encoded
	// digest). It never loads the whole file into memory.
	VerifyFileHash(ctx context.Context, path, expectedHex string) (bool, error)

	// CopyFromCAS materializes the CAS object identified by hash at dst via
	// a full byte copy. It returns false (not an error) if the object is
	// absent from the store or the operation is unsupported.
	CopyFromCAS(ctx context.Context, hash, dst string) (bool, error)

	// LinkFromCAS materializes the CAS object identified by hash at dst as
	// a hard link (if useHardLink is true and source/destination share a
	// volume) or a symbolic link, falling back to a copy if linking proves
	// impossible. It returns false (not an error) if the object is absent
	// from the store or the operation is unsupported.
	LinkFromCAS(ctx context.Context, hash, dst string, useHardLink bool) (bool, error)

	// EnsureDirectoryExists creates path and any missing intermediate
	// directories, succeeding if the directory already exists.
	EnsureDirectoryExists(path string) error

	// DeleteDirectoryIfExists removes path and its contents if it exists,
	// succeeding (as a no-op) if it does not.
	DeleteDirectoryIfExists(path string) error
}
