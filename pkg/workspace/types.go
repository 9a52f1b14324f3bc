// Package workspace implements the workspace composition engine: it
// materializes a self-contained, launchable directory from a set of
// manifests using one of several pluggable materialization strategies.
package workspace

import (
	"strings"

	"github.com/pkg/errors"
)

// ContentType classifies the kind of content a manifest carries. It
// determines priority in conflict resolution: higher ordinal values win on
// path collisions.
type ContentType int

const (
	// ContentTypeGameInstallation is the base game installation, the lowest
	// priority content type.
	ContentTypeGameInstallation ContentType = iota
	// ContentTypeGameClient is the launcher/client build.
	ContentTypeGameClient
	// ContentTypeMod is user-supplied modification content, the highest
	// priority content type.
	ContentTypeMod
)

// String returns a human-readable name for the content type.
func (c ContentType) String() string {
	switch c {
	case ContentTypeGameInstallation:
		return "GameInstallation"
	case ContentTypeGameClient:
		return "GameClient"
	case ContentTypeMod:
		return "Mod"
	default:
		return "Unknown"
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so ContentType can be
// loaded directly from YAML configuration.
func (c *ContentType) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "gameinstallation", "game-installation", "game_installation":
		*c = ContentTypeGameInstallation
	case "gameclient", "game-client", "game_client":
		*c = ContentTypeGameClient
	case "mod":
		*c = ContentTypeMod
	default:
		return errors.Errorf("unknown content type: %q", text)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (c ContentType) MarshalText() ([]byte, error) {
	return []byte(c.String()), nil
}

// SourceType selects how a ManifestFile's bytes should be retrieved.
type SourceType int

const (
	// SourceTypeLocalFile indicates the file should be read from an
	// arbitrary location on the local filesystem.
	SourceTypeLocalFile SourceType = iota
	// SourceTypeGameInstallation indicates the file originates from a base
	// game installation tree.
	SourceTypeGameInstallation
	// SourceTypeContentAddressable indicates the file should be retrieved
	// from the content-addressable store by hash.
	SourceTypeContentAddressable
)

// String returns a human-readable name for the source type.
func (s SourceType) String() string {
	switch s {
	case SourceTypeLocalFile:
		return "LocalFile"
	case SourceTypeGameInstallation:
		return "GameInstallation"
	case SourceTypeContentAddressable:
		return "ContentAddressable"
	default:
		return "Unknown"
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so SourceType can be
// loaded directly from YAML configuration.
func (s *SourceType) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "localfile", "local-file", "local_file", "local":
		*s = SourceTypeLocalFile
	case "gameinstallation", "game-installation", "game_installation":
		*s = SourceTypeGameInstallation
	case "contentaddressable", "content-addressable", "content_addressable", "cas":
		*s = SourceTypeContentAddressable
	default:
		return errors.Errorf("unknown source type: %q", text)
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s SourceType) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Strategy is a closed enum of the four materialization policies supported by
// the engine. It is the caller's responsibility to serialize it; Strategy
// implements encoding.TextMarshaler/TextUnmarshaler for that purpose.
type Strategy uint8

const (
	// StrategyFullCopy materializes every file as a byte-for-byte copy.
	StrategyFullCopy Strategy = iota
	// StrategySymlinkOnly materializes every file as a symbolic link.
	StrategySymlinkOnly
	// StrategyHardLink materializes every file as a hard link, falling back
	// to copy when source and destination are on different volumes.
	StrategyHardLink
	// StrategyHybridCopySymlink copies essential files and symlinks the
	// rest, per classify.IsEssential.
	StrategyHybridCopySymlink
)

// Supported indicates whether a particular Strategy is one of the four
// recognized, non-zero-value-ambiguous strategies. All declared constants
// are supported; this exists to validate values decoded from external input.
func (s Strategy) Supported() bool {
	switch s {
	case StrategyFullCopy, StrategySymlinkOnly, StrategyHardLink, StrategyHybridCopySymlink:
		return true
	default:
		return false
	}
}

// String returns a human-readable name for the strategy.
func (s Strategy) String() string {
	switch s {
	case StrategyFullCopy:
		return "FullCopy"
	case StrategySymlinkOnly:
		return "SymlinkOnly"
	case StrategyHardLink:
		return "HardLink"
	case StrategyHybridCopySymlink:
		return "HybridCopySymlink"
	default:
		return "Unknown"
	}
}

// UnmarshalText implements encoding.TextUnmarshaler so that Strategy values
// can be loaded directly from YAML/JSON configuration.
func (s *Strategy) UnmarshalText(text []byte) error {
	switch strings.ToLower(string(text)) {
	case "fullcopy", "full-copy", "full_copy":
		*s = StrategyFullCopy
	case "symlinkonly", "symlink-only", "symlink_only", "symlink":
		*s = StrategySymlinkOnly
	case "hardlink", "hard-link", "hard_link":
		*s = StrategyHardLink
	case "hybridcopysymlink", "hybrid-copy-symlink", "hybrid", "hybrid_copy_symlink":
		*s = StrategyHybridCopySymlink
	default:
		return &unknownStrategyError{text: string(text)}
	}
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

type unknownStrategyError struct{ text string }

func (e *unknownStrategyError) Error() string {
	return "unknown strategy specification: " + e.text
}

// ManifestFile is a single file record within a Manifest.
type ManifestFile struct {
	// RelativePath is the path within the workspace, forward- or
	// backslash-separated; normalized to the OS separator only at the
	// moment it is joined against a source root, never at ingest.
	RelativePath string
	// SourceType selects the retrieval path for this file.
	SourceType SourceType
	// SourcePath is an optional source location: absolute, or relative to
	// the manifest's source root.
	SourcePath string
	// Hash is the optional lowercase hex-encoded content hash. Mandatory
	// for SourceTypeContentAddressable; if present for other source types,
	// integrity is verified after materialization.
	Hash string
	// Size is the non-negative byte count, used for progress estimates and
	// essentiality classification. It may be backfilled from disk by the
	// engine when zero; the engine never mutates the caller's value to do
	// so (see EffectiveSize in size.go).
	Size int64
	// IsExecutable marks this file as the launcher's entry point. At most
	// one file per GameClient manifest should set this.
	IsExecutable bool
}

// Manifest is a named, prioritized set of file records.
type Manifest struct {
	// Id is the stable identifier of the content bundle.
	Id string
	// ContentType determines this manifest's priority in conflict
	// resolution.
	ContentType ContentType
	// Files is the ordered sequence of file records contributed by this
	// manifest.
	Files []ManifestFile
}

// GameClientReference identifies the launcher executable a workspace is
// being prepared for.
type GameClientReference struct {
	// Id is the manifest id of the GameClient manifest, if known.
	Id string
	// ExecutablePath is a hint used as a last-resort executable-resolution
	// fallback: a filename to match against any manifest's files.
	ExecutablePath string
}

// WorkspaceConfiguration describes the inputs to a single preparation run.
// Configuration values are immutable once preparation begins.
type WorkspaceConfiguration struct {
	// Id is the opaque workspace identifier; the workspace is materialized
	// at <WorkspaceRootPath>/<Id>.
	Id string
	// WorkspaceRootPath is the directory under which the workspace
	// directory is created.
	WorkspaceRootPath string
	// Strategy selects the materialization policy.
	Strategy Strategy
	// Manifests is the unordered set of manifests to compose, processed as
	// a multiset of file records.
	Manifests []Manifest
	// BaseInstallationPath is the default source root for
	// SourceTypeGameInstallation files lacking an explicit mapping.
	BaseInstallationPath string
	// ManifestSourcePaths optionally maps a manifest id to a source root.
	ManifestSourcePaths map[string]string
	// GameClient references the launcher.
	GameClient GameClientReference
	// ForceRecreate, if set, causes an existing workspace directory at the
	// target to be deleted before preparation begins.
	ForceRecreate bool
}
