//go:build !windows

package volume

import (
	"os"
	"syscall"
)

// Posix is a Prober backed by device-ID comparison via stat(2) and
// rotational detection via /sys/block.
type Posix struct{}

// deviceID returns the device identifier for the volume containing path.
func deviceID(path string) (uint64, bool) {
	info, err := os.Stat(path)
	if err != nil {
		// The destination directory may not exist yet (it is about to be
		// created); fall back to its parent.
		info, err = os.Stat(parentOf(path))
		if err != nil {
			return 0, false
		}
	}
	stat, ok := info.Sys().(*syscall.Stat_t)
	if !ok {
		return 0, false
	}
	return uint64(stat.Dev), true
}

func parentOf(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			if i == 0 {
				return "/"
			}
			return path[:i]
		}
	}
	return "."
}

// SameVolume implements Prober.SameVolume.
func (Posix) SameVolume(a, b string) bool {
	devA, okA := deviceID(a)
	devB, okB := deviceID(b)
	return okA && okB && devA == devB
}

// VolumeType implements Prober.VolumeType by resolving the device ID
// backing path to a rotational/non-rotational classification. The
// resolution itself is platform-specific (see prober_rotational_linux.go
// and prober_rotational_other.go); any failure is reported as TypeUnknown
// rather than guessed.
func (Posix) VolumeType(path string) Type {
	dev, ok := deviceID(path)
	if !ok {
		return TypeUnknown
	}
	return rotationalHintForDevice(dev)
}
