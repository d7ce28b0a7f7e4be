package indexer

import (
	"path"
	"strings"
)

// Classification is filename- and location-based only. Plume never parses
// a file to decide what kind of file it is; the quality analyzer does the
// deeper reading later, and only for files the index marked interesting.

func splitPath(p string) []string {
	if p == "" || p == "." {
		return nil
	}
	return strings.Split(p, "/")
}

// classifyType derives a file's role from its name and location.
func classifyType(relPath, name string) FileType {
	segments := splitPath(relPath)

	// Anything under a test root is a test file regardless of its name.
	for _, seg := range segments[:max(len(segments)-1, 0)] {
		if seg == "test" || seg == "integration_test" {
			return FileTypeTest
		}
	}

	stem := strings.TrimSuffix(name, path.Ext(name))
	switch {
	case strings.HasSuffix(stem, "_test"):
		return FileTypeTest
	case name == "main.dart":
		return FileTypeMain
	case strings.HasSuffix(stem, "_screen") || strings.HasSuffix(stem, "_page"):
		return FileTypeScreen
	case strings.HasSuffix(stem, "_service"):
		return FileTypeService
	}

	for _, seg := range segments[:max(len(segments)-1, 0)] {
		if seg == "services" {
			return FileTypeService
		}
	}

	return FileTypeOther
}

// classifyImportance derives the importance tier from type plus location.
// Entry points and feature-level screens/services rank high; deeply nested
// utility files rank low; everything else is medium.
func classifyImportance(relPath string, ftype FileType) Importance {
	segments := splitPath(relPath)

	switch ftype {
	case FileTypeMain:
		return ImportanceHigh
	case FileTypeTest:
		return ImportanceLow
	case FileTypeScreen, FileTypeService:
		if underFeatureDir(segments) {
			return ImportanceHigh
		}
		return ImportanceMedium
	}

	// Deep utility files: four or more directories down.
	if len(segments) > 4 {
		return ImportanceLow
	}
	return ImportanceMedium
}

// underFeatureDir reports whether the path passes through a top-level
// feature directory (lib/features/... or features/...).
func underFeatureDir(segments []string) bool {
	for i, seg := range segments {
		if seg == "features" && i <= 1 {
			return true
		}
	}
	return false
}

// isSourceFile reports whether the file counts as project source.
func isSourceFile(name string) bool {
	return path.Ext(name) == ".dart"
}
