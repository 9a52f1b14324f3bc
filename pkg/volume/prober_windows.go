//go:build windows

package volume

import "path/filepath"

// Posix is named for parity with the Unix implementation but is also the
// Windows Prober; volume identity is approximated by comparing drive
// letters/UNC roots, and rotational/non-rotational classification has no
// cheap syscall equivalent wired here, so it is always reported as unknown.
// The scheduler falls back to the CPU_count*2 parallelism formula in that
// case.
type Posix struct{}

// SameVolume implements Prober.SameVolume.
func (Posix) SameVolume(a, b string) bool {
	return filepath.VolumeName(filepath.Clean(a)) == filepath.VolumeName(filepath.Clean(b))
}

// VolumeType implements Prober.VolumeType.
func (Posix) VolumeType(path string) Type {
	return TypeUnknown
}
