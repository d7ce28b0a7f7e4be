package assembler

import (
	"encoding/json"
	"time"

	"github.com/plumedev/plume/pkg/analysis"
	"github.com/plumedev/plume/pkg/deps"
	"github.com/plumedev/plume/pkg/indexer"
	"github.com/plumedev/plume/pkg/patterns"
	"github.com/plumedev/plume/pkg/quality"
)

// ProjectInfo is the document's identity header, derived from the
// manifest. A project with no readable manifest still gets a header,
// with name "unknown".
type ProjectInfo struct {
	Name        string `json:"name"`
	Type        string `json:"type"` // "flutter" or "dart"
	Version     string `json:"version"`
	Description string `json:"description,omitempty"`
}

// CodeSection aggregates per-file quality reports. Locations, symbols,
// and blocks are prefixed with the file's root-relative path.
type CodeSection struct {
	FilesAnalyzed    int             `json:"files_analyzed"`
	AverageScore     int             `json:"average_score"`
	Issues           []quality.Issue `json:"issues"`
	DeadCodeSymbols  []string        `json:"dead_code_symbols"`
	DuplicatedBlocks []string        `json:"duplicated_blocks"`
}

// ArchitectureSection carries the merged pattern candidates. An empty
// list is a valid result; the section is present whenever architecture
// analysis ran.
type ArchitectureSection struct {
	Patterns []patterns.Pattern `json:"patterns"`
}

// Document is the final analysis result. Optional sections are nil, and
// therefore absent from the JSON, unless the corresponding option asked
// for them. Two runs over an unchanged project differ only in
// ExportedAt.
type Document struct {
	Project      ProjectInfo          `json:"project"`
	Structure    *indexer.FileIndex   `json:"structure"`
	Dependencies *deps.Report         `json:"dependencies,omitempty"`
	Code         *CodeSection         `json:"code,omitempty"`
	Architecture *ArchitectureSection `json:"architecture,omitempty"`
	Suggestions  []string             `json:"suggestions,omitempty"`
	Warnings     []analysis.Warning   `json:"warnings,omitempty"`
	ExportedAt   time.Time            `json:"exported_at"`
	CLIVersion   string               `json:"cli_version"`
}

// JSON renders the document for stdout or file output.
func (d *Document) JSON() ([]byte, error) {
	return json.MarshalIndent(d, "", "  ")
}
