package workspace

import (
	"math"
	"os"
)

// LinkOverheadBytes is the minimal-overhead cost attributed to a single
// hard or symbolic link in place of a full copy: the size of a directory
// entry, not the size of the linked content.
const LinkOverheadBytes int64 = 1024

// EffectiveSize returns file.Size if non-zero, otherwise the size backfilled
// from resolvedPath on disk (or 0 if that stat also fails). It never mutates
// the caller's ManifestFile: doing so would make repeated Estimate/Prepare
// calls on the same configuration value observably different, so this
// engine computes the effective size locally on every use instead.
func EffectiveSize(file ManifestFile, resolvedPath string) int64 {
	if file.Size > 0 {
		return file.Size
	}
	info, err := os.Stat(resolvedPath)
	if err != nil {
		return 0
	}
	return info.Size()
}

// SaturatingAdd adds b to a, clamping to math.MaxInt64 on overflow rather
// than wrapping.
func SaturatingAdd(a, b int64) int64 {
	if a > math.MaxInt64-b {
		return math.MaxInt64
	}
	return a + b
}
