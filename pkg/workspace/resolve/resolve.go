// Package resolve maps a (file, manifest, configuration) triple to an
// absolute source path using the engine's multi-source priority policy.
package resolve

import (
	"path/filepath"
	"strings"
)

// File is the subset of workspace.ManifestFile that path resolution needs.
// It is declared independently here (rather than importing the workspace
// package), so this package has no dependency on workspace.
// IsGameInstallationManifest records whether the owning manifest's content
// type is GameInstallation.
type File struct {
	RelativePath string
	SourcePath   string
	IsGameInstallationManifest bool
}

// Manifest carries the manifest id that resolution needs; the content-type
// flag travels on File.
type Manifest struct {
	Id string
}

// Configuration carries the subset of workspace.WorkspaceConfiguration that
// resolution needs.
type Configuration struct {
	BaseInstallationPath string
	ManifestSourcePaths  map[string]string
}

// normalize converts a forward-slash relative path to the host separator.
// This conversion happens only here, at join time, per the engine's design
// note that RelativePath must never be mutated at ingest (it is used
// verbatim for logging and as a dedup key).
func normalize(relativePath string) string {
	converted := strings.ReplaceAll(relativePath, "/", string(filepath.Separator))
	converted = strings.ReplaceAll(converted, "\\", string(filepath.Separator))
	return converted
}

// Resolve implements the five-rule ordered path resolution policy.
func Resolve(file File, manifest Manifest, config Configuration) string {
	// Rule 1: an absolute SourcePath is used verbatim.
	if file.SourcePath != "" && filepath.IsAbs(file.SourcePath) {
		return file.SourcePath
	}

	// Rule 2: an explicit per-manifest source root takes precedence over
	// every other source of a root, regardless of content type.
	if root, ok := config.ManifestSourcePaths[manifest.Id]; ok {
		suffix := file.SourcePath
		if suffix == "" {
			suffix = file.RelativePath
		}
		return filepath.Join(root, normalize(suffix))
	}

	// Rule 3: GameInstallation manifests fall back to the base installation
	// path.
	if file.IsGameInstallationManifest {
		suffix := file.SourcePath
		if suffix == "" {
			suffix = file.RelativePath
		}
		return filepath.Join(config.BaseInstallationPath, normalize(suffix))
	}

	// Rule 4: a relative, explicit SourcePath is combined with the base
	// installation path.
	if file.SourcePath != "" {
		return filepath.Join(config.BaseInstallationPath, normalize(file.SourcePath))
	}

	// Rule 5: default to the base installation path joined with the
	// relative path.
	return filepath.Join(config.BaseInstallationPath, normalize(file.RelativePath))
}
