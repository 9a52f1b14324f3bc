// Package config loads a workspace.WorkspaceConfiguration from a YAML file,
// the on-disk shape this engine's CLI and callers author by hand.
package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/warchest-gg/workspace-engine/pkg/workspace"
)

// fileManifestFile mirrors workspace.ManifestFile's YAML shape.
type fileManifestFile struct {
	RelativePath string              `yaml:"relative_path"`
	SourceType   workspace.SourceType `yaml:"source_type"`
	SourcePath   string              `yaml:"source_path"`
	Hash         string              `yaml:"hash"`
	Size         int64               `yaml:"size"`
	IsExecutable bool                `yaml:"is_executable"`
}

// fileManifest mirrors workspace.Manifest's YAML shape.
type fileManifest struct {
	Id          string               `yaml:"id"`
	ContentType workspace.ContentType `yaml:"content_type"`
	Files       []fileManifestFile   `yaml:"files"`
}

// fileGameClient mirrors workspace.GameClientReference's YAML shape.
type fileGameClient struct {
	Id             string `yaml:"id"`
	ExecutablePath string `yaml:"executable_path"`
}

// fileConfiguration is the on-disk YAML shape a workspace.WorkspaceConfiguration
// is loaded from.
type fileConfiguration struct {
	Id                   string            `yaml:"id"`
	WorkspaceRootPath    string            `yaml:"workspace_root_path"`
	Strategy             workspace.Strategy `yaml:"strategy"`
	BaseInstallationPath string            `yaml:"base_installation_path"`
	ManifestSourcePaths  map[string]string `yaml:"manifest_source_paths"`
	GameClient           fileGameClient    `yaml:"game_client"`
	ForceRecreate        bool              `yaml:"force_recreate"`
	Manifests            []fileManifest    `yaml:"manifests"`
}

// Load reads and parses a WorkspaceConfiguration from the YAML file at path.
func Load(path string) (workspace.WorkspaceConfiguration, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return workspace.WorkspaceConfiguration{}, errors.Wrap(err, "unable to read configuration file")
	}

	var parsed fileConfiguration
	if err := yaml.Unmarshal(data, &parsed); err != nil {
		return workspace.WorkspaceConfiguration{}, errors.Wrap(err, "unable to parse configuration file")
	}

	manifests := make([]workspace.Manifest, 0, len(parsed.Manifests))
	for _, manifest := range parsed.Manifests {
		files := make([]workspace.ManifestFile, 0, len(manifest.Files))
		for _, file := range manifest.Files {
			files = append(files, workspace.ManifestFile{
				RelativePath: file.RelativePath,
				SourceType:   file.SourceType,
				SourcePath:   file.SourcePath,
				Hash:         file.Hash,
				Size:         file.Size,
				IsExecutable: file.IsExecutable,
			})
		}
		manifests = append(manifests, workspace.Manifest{
			Id:          manifest.Id,
			ContentType: manifest.ContentType,
			Files:       files,
		})
	}

	config := workspace.WorkspaceConfiguration{
		Id:                   parsed.Id,
		WorkspaceRootPath:    parsed.WorkspaceRootPath,
		Strategy:             parsed.Strategy,
		Manifests:            manifests,
		BaseInstallationPath: parsed.BaseInstallationPath,
		ManifestSourcePaths:  parsed.ManifestSourcePaths,
		GameClient: workspace.GameClientReference{
			Id:             parsed.GameClient.Id,
			ExecutablePath: parsed.GameClient.ExecutablePath,
		},
		ForceRecreate: parsed.ForceRecreate,
	}

	if config.Id == "" {
		return workspace.WorkspaceConfiguration{}, errors.New("configuration is missing an id")
	}
	if config.WorkspaceRootPath == "" {
		return workspace.WorkspaceConfiguration{}, errors.New("configuration is missing workspace_root_path")
	}
	if !config.Strategy.Supported() {
		return workspace.WorkspaceConfiguration{}, errors.Errorf("configuration names an unsupported strategy: %v", config.Strategy)
	}

	return config, nil
}
