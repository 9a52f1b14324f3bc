//go:build !windows

package capability

// NewDefault returns the Probe appropriate for the current platform.
func NewDefault() Probe {
	return AlwaysAvailable{}
}
