package workspace

import (
	"sort"
	"strings"
)

// Record pairs a ManifestFile with the manifest that contributed it, so
// that priority and id information survive the grouping step.
type Record struct {
	Manifest Manifest
	File     ManifestFile
}

// FileGroup is the scheduler's unit of work: every record destined for the
// same (case-insensitive) RelativePath, ordered from lowest to highest
// manifest priority. Two file groups never target the same destination, so
// groups may be processed concurrently without cross-group locking (spec
// §5, "No locking across I/O").
type FileGroup struct {
	// RelativePath is the path as it appeared on the highest-priority
	// record, used for the materialized destination and for logging.
	RelativePath string
	// Records is ordered ascending by manifest ContentType priority; ties
	// preserve manifest-list encounter order (a stable sort).
	Records []Record
}

// HighestPriority returns the winning record: the last element of Records,
// since Records is sorted ascending by priority.
func (g *FileGroup) HighestPriority() Record {
	return g.Records[len(g.Records)-1]
}

// groupKey produces the case-insensitive dedup key for a relative path.
func groupKey(relativePath string) string {
	return strings.ToLower(strings.ReplaceAll(relativePath, "\\", "/"))
}

// BuildFileGroups deduplicates every manifest's files by case-insensitive
// RelativePath and orders each resulting group by ascending manifest
// priority.
func BuildFileGroups(manifests []Manifest) []*FileGroup {
	groups := make(map[string]*FileGroup)
	var order []string

	for _, manifest := range manifests {
		for _, file := range manifest.Files {
			key := groupKey(file.RelativePath)
			group, exists := groups[key]
			if !exists {
				group = &FileGroup{RelativePath: file.RelativePath}
				groups[key] = group
				order = append(order, key)
			}
			group.Records = append(group.Records, Record{Manifest: manifest, File: file})
		}
	}

	result := make([]*FileGroup, 0, len(order))
	for _, key := range order {
		group := groups[key]
		sort.SliceStable(group.Records, func(i, j int) bool {
			return group.Records[i].Manifest.ContentType < group.Records[j].Manifest.ContentType
		})
		// The winning record's RelativePath (not necessarily the first
		// encountered) is used as the canonical destination, so that a
		// Mod manifest's casing/separator choice wins over a base
		// installation's for the same logical path.
		group.RelativePath = group.HighestPriority().File.RelativePath
		result = append(result, group)
	}
	return result
}
