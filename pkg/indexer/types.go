package indexer

import "sort"

// FileType classifies a file's role within the project.
type FileType string

const (
	FileTypeMain    FileType = "main"
	FileTypeScreen  FileType = "screen"
	FileTypeService FileType = "service"
	FileTypeTest    FileType = "test"
	FileTypeOther   FileType = "other"
)

// Importance is the coarse relevance tier of a file for architecture and
// quality analysis.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// FileRecord describes a single indexed file. Records are created once
// during indexing and never mutated afterward.
type FileRecord struct {
	Path       string     `json:"path"` // slash-separated, relative to the index root
	Name       string     `json:"name"`
	Type       FileType   `json:"type"`
	Importance Importance `json:"importance"`
	LineCount  int        `json:"line_count"`
	SizeBytes  int64      `json:"size_bytes"`
}

// DirSummary aggregates a directory's immediate children only. Nested
// files are counted by their own parent directory, never twice.
type DirSummary struct {
	FileCount       int      `json:"file_count"`
	SourceFileCount int      `json:"source_file_count"`
	SubdirNames     []string `json:"subdir_names"`
}

// Totals holds project-wide aggregates.
type Totals struct {
	FileCount   int            `json:"file_count"`
	LineCount   int            `json:"line_count"`
	ByExtension map[string]int `json:"by_extension"`
}

// FileIndex is the single reusable product of one indexing run. It is
// built once and read-only afterward; downstream analyzers share it by
// reference.
type FileIndex struct {
	Root        string                `json:"root"`
	Files       map[string]FileRecord `json:"files"`
	Directories map[string]DirSummary `json:"directories"`
	Totals      Totals                `json:"totals"`
}

// FilesOfType returns records of the given type, sorted by path.
func (idx *FileIndex) FilesOfType(t FileType) []FileRecord {
	var out []FileRecord
	for _, rec := range idx.Files {
		if rec.Type == t {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// FilesByImportance returns records of the given tier, sorted by path.
func (idx *FileIndex) FilesByImportance(tier Importance) []FileRecord {
	var out []FileRecord
	for _, rec := range idx.Files {
		if rec.Importance == tier {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}

// HasDirectory reports whether any indexed directory path contains the
// given segment name.
func (idx *FileIndex) HasDirectory(name string) bool {
	for dir := range idx.Directories {
		if dir == name {
			return true
		}
		for _, seg := range splitPath(dir) {
			if seg == name {
				return true
			}
		}
	}
	return false
}

// SourceFileCount returns the number of indexed Dart source files.
func (idx *FileIndex) SourceFileCount() int {
	return idx.Totals.ByExtension[".dart"]
}
