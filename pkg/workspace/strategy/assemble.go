package strategy

import (
	"path/filepath"
	"strings"

	"github.com/warchest-gg/workspace-engine/pkg/workspace"
)

// ResolveExecutablePath prefers a file flagged IsExecutable in the
// GameClient manifest, else the first ".exe" in that manifest, else a
// filename match against config.GameClient.ExecutablePath in any manifest
// (first match wins, in manifest-list order).
func ResolveExecutablePath(workspacePath string, config workspace.WorkspaceConfiguration, groups []*workspace.FileGroup) string {
	var gameClientManifest *workspace.Manifest
	for i := range config.Manifests {
		if config.Manifests[i].Id == config.GameClient.Id {
			gameClientManifest = &config.Manifests[i]
			break
		}
	}

	if gameClientManifest != nil {
		for _, file := range gameClientManifest.Files {
			if file.IsExecutable {
				return filepath.Join(workspacePath, filepath.FromSlash(file.RelativePath))
			}
		}
		for _, file := range gameClientManifest.Files {
			if strings.EqualFold(filepath.Ext(file.RelativePath), ".exe") {
				return filepath.Join(workspacePath, filepath.FromSlash(file.RelativePath))
			}
		}
	}

	if config.GameClient.ExecutablePath != "" {
		target := strings.ToLower(filepath.Base(config.GameClient.ExecutablePath))
		for _, manifest := range config.Manifests {
			for _, file := range manifest.Files {
				if strings.ToLower(filepath.Base(file.RelativePath)) == target {
					return filepath.Join(workspacePath, filepath.FromSlash(file.RelativePath))
				}
			}
		}
	}

	return ""
}
