//go:build linux

package volume

import (
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// rotationalHintForDevice reports the rotational/non-rotational
// classification of the block device identified by dev (as returned by
// stat(2)'s st_dev), by resolving its major number to a /sys/block entry
// and reading its rotational flag. Any failure along the way reports
// TypeUnknown rather than guessing; the caller, not this package, owns the
// default-on-failure behavior.
func rotationalHintForDevice(dev uint64) Type {
	major := unix.Major(dev)

	entries, err := os.ReadDir("/sys/block")
	if err != nil {
		return TypeUnknown
	}
	for _, entry := range entries {
		raw, err := os.ReadFile("/sys/block/" + entry.Name() + "/dev")
		if err != nil {
			continue
		}
		parts := strings.SplitN(strings.TrimSpace(string(raw)), ":", 2)
		if len(parts) != 2 {
			continue
		}
		entryMajor, err := strconv.ParseUint(parts[0], 10, 32)
		if err != nil || uint32(entryMajor) != major {
			continue
		}
		rotational, err := os.ReadFile("/sys/block/" + entry.Name() + "/queue/rotational")
		if err != nil {
			return TypeUnknown
		}
		switch strings.TrimSpace(string(rotational)) {
		case "0":
			return TypeNonRotational
		case "1":
			return TypeRotational
		default:
			return TypeUnknown
		}
	}
	return TypeUnknown
}
