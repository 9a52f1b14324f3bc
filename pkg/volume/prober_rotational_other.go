//go:build !linux && !windows

package volume

// rotationalHintForDevice has no portable implementation outside Linux's
// /sys/block; other Unix variants report TypeUnknown, and StrategyBase's
// scheduler falls back to the "detection failed" parallelism degree (spec
// §4.5).
func rotationalHintForDevice(dev uint64) Type {
	return TypeUnknown
}
