// Package classify implements the hybrid strategy's essential/link
// classification: deciding, per file, whether hybrid materialization must
// use a byte-for-byte copy rather than a symbolic link.
package classify

import (
	"path"
	"strings"
)

// smallFileThreshold is the size below which a file is always treated as
// essential, regardless of extension.
const smallFileThreshold = 1 << 20 // 1 MiB

// alwaysEssentialExtensions are extensions that are always copied rather
// than linked: configuration, executable, and save-adjacent formats whose
// correctness the launcher depends on directly.
var alwaysEssentialExtensions = map[string]bool{
	".exe": true, ".dll": true, ".ini": true, ".cfg": true,
	".dat": true, ".xml": true, ".json": true, ".txt": true, ".log": true,
}

// domainEssentialExtensions are the title-specific archive/asset formats
// that must also always be copied.
var domainEssentialExtensions = map[string]bool{
	".big": true, ".str": true, ".csf": true, ".w3d": true,
}

// essentialDirectoryComponents are path components that, if present anywhere
// in a file's relative directory, force essential classification.
var essentialDirectoryComponents = map[string]bool{
	"mods": true, "patch": true, "config": true,
	"data": true, "maps": true, "scripts": true,
}

// essentialFilenameSubstrings are substrings that, if present in the
// filename (case-insensitively), force essential classification.
var essentialFilenameSubstrings = []string{
	"mod", "patch", "config", "generals", "zerohour", "settings",
}

// nonEssentialExtensions are media formats that are safe to symlink when no
// earlier rule already forced essential classification.
var nonEssentialExtensions = map[string]bool{
	".tga": true, ".dds": true, ".bmp": true, ".jpg": true, ".jpeg": true,
	".png": true, ".gif": true, ".wav": true, ".mp3": true, ".ogg": true,
	".flac": true, ".avi": true, ".mp4": true, ".wmv": true, ".bik": true,
}

// IsEssential applies the classifier's seven ordered rules to decide whether
// a file must be a real copy (true) or may be a link (false). All
// comparisons are case-insensitive.
func IsEssential(relativePath string, size int64) bool {
	// Rule 1: small files are always essential.
	if size < smallFileThreshold {
		return true
	}

	lowerPath := strings.ToLower(filepathToSlash(relativePath))
	ext := strings.ToLower(path.Ext(lowerPath))
	filename := strings.ToLower(path.Base(lowerPath))

	// Rule 2: universally essential extensions.
	if alwaysEssentialExtensions[ext] {
		return true
	}

	// Rule 3: domain-specific essential extensions.
	if domainEssentialExtensions[ext] {
		return true
	}

	// Rule 4: any directory component marks the file essential.
	for _, component := range strings.Split(lowerPath, "/") {
		if essentialDirectoryComponents[component] {
			return true
		}
	}

	// Rule 5: filename substrings mark the file essential.
	for _, substring := range essentialFilenameSubstrings {
		if strings.Contains(filename, substring) {
			return true
		}
	}

	// Rule 6: known non-essential media extensions may be linked.
	if nonEssentialExtensions[ext] {
		return false
	}

	// Rule 7: default to essential.
	return true
}

// filepathToSlash normalizes backslashes to forward slashes so that the
// directory-component and filename checks behave identically regardless of
// which separator the caller used in RelativePath.
func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}
