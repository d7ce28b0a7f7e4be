// Package assembler orchestrates the analysis pipeline and produces the
// context document. Indexing and manifest parsing always run; every
// other stage is gated by an option flag. The assembler is the only
// place where stage warnings surface.
package assembler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	plume "github.com/plumedev/plume"
	"github.com/plumedev/plume/pkg/analysis"
	"github.com/plumedev/plume/pkg/deps"
	"github.com/plumedev/plume/pkg/indexer"
	"github.com/plumedev/plume/pkg/logger"
	"github.com/plumedev/plume/pkg/manifest"
	"github.com/plumedev/plume/pkg/patterns"
	"github.com/plumedev/plume/pkg/quality"
)

const stage = "code"

// Options selects which sections to compute and bounds the per-file
// quality pass.
type Options struct {
	IncludeCode         bool
	IncludeDependencies bool
	IncludeArchitecture bool
	IncludeSuggestions  bool
	MaxFileSize         int64 // bytes; files above this are not analyzed
	MaxFiles            int
}

// DefaultOptions matches the documented defaults: architecture and
// suggestions on, dependency and code analysis opt-in.
func DefaultOptions() Options {
	return Options{
		IncludeCode:         false,
		IncludeDependencies: false,
		IncludeArchitecture: true,
		IncludeSuggestions:  true,
		MaxFileSize:         10000,
		MaxFiles:            50,
	}
}

// Assembler runs the pipeline. Zero value is not usable; construct with
// New.
type Assembler struct {
	log   logger.Logger
	clock func() time.Time
}

func New() *Assembler {
	return &Assembler{
		log:   logger.NewSilent(),
		clock: time.Now,
	}
}

// WithLogger sets the logger passed down to every stage.
func (a *Assembler) WithLogger(log logger.Logger) *Assembler {
	a.log = log
	return a
}

// WithClock overrides the timestamp source.
func (a *Assembler) WithClock(clock func() time.Time) *Assembler {
	a.clock = clock
	return a
}

// Assemble analyzes the project at rootDir. The only hard error is an
// unusable invocation: rootDir does not exist or is not a directory.
// Everything else degrades into default sections and warnings.
func (a *Assembler) Assemble(ctx context.Context, rootDir string, opts Options) (*Document, error) {
	info, err := os.Stat(rootDir)
	if err != nil {
		return nil, fmt.Errorf("stat project root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("project root %s is not a directory", rootDir)
	}

	a.log.Info("assembling context", logger.F("root", rootDir))

	index := indexer.New().WithLogger(a.log).Index(ctx, rootDir)

	record, warnings := manifest.NewParser().
		WithLogger(a.log).
		Parse(ctx, filepath.Join(rootDir, manifest.FileName))

	doc := &Document{
		Project:    projectInfo(record),
		Structure:  index,
		ExportedAt: a.clock().UTC(),
		CLIVersion: plume.Version,
	}

	if opts.IncludeDependencies {
		doc.Dependencies = deps.Classify(record)
	}

	if opts.IncludeArchitecture {
		sampler := patterns.NewIndexSampler(index, opts.MaxFileSize)
		found := patterns.NewDetector().WithLogger(a.log).Detect(index, record, sampler)
		if found == nil {
			found = []patterns.Pattern{}
		}
		doc.Architecture = &ArchitectureSection{Patterns: found}
	}

	if opts.IncludeCode {
		section, codeWarnings := a.analyzeCode(ctx, index, opts)
		doc.Code = section
		warnings = append(warnings, codeWarnings...)
	}

	if opts.IncludeSuggestions {
		doc.Suggestions = suggest(doc)
	}

	if len(warnings) > 0 {
		doc.Warnings = warnings
		for _, w := range warnings {
			a.log.Warn(w.Message, logger.F("stage", w.Stage))
		}
	}

	return doc, nil
}

// projectInfo derives the identity header. A project is "flutter" when
// the manifest declares a flutter dependency or environment constraint,
// "dart" otherwise.
func projectInfo(record *manifest.Record) ProjectInfo {
	projectType := "dart"
	if record.HasDependency("flutter") || record.Environment["flutter"] != "" {
		projectType = "flutter"
	}
	return ProjectInfo{
		Name:        record.Name,
		Type:        projectType,
		Version:     record.Version,
		Description: record.Description,
	}
}

// analyzeCode runs the quality analyzer over the most relevant files,
// bounded by MaxFiles and MaxFileSize. Unreadable files produce a
// warning and are skipped; the section is valid even when nothing was
// analyzable.
func (a *Assembler) analyzeCode(ctx context.Context, index *indexer.FileIndex, opts Options) (*CodeSection, []analysis.Warning) {
	section := &CodeSection{
		AverageScore:     quality.MaxScore,
		Issues:           []quality.Issue{},
		DeadCodeSymbols:  []string{},
		DuplicatedBlocks: []string{},
	}
	var warnings []analysis.Warning

	total := 0
	for _, rec := range analysisCandidates(index, opts) {
		select {
		case <-ctx.Done():
			warnings = append(warnings, analysis.Warningf(stage, "analysis cancelled after %d file(s)", section.FilesAnalyzed))
			finishCode(section, total)
			return section, warnings
		default:
		}

		data, err := os.ReadFile(filepath.Join(index.Root, filepath.FromSlash(rec.Path)))
		if err != nil {
			warnings = append(warnings, analysis.Warningf(stage, "skipping %s: %v", rec.Path, err))
			continue
		}

		report := quality.Analyze(rec.Path, string(data))
		section.FilesAnalyzed++
		total += report.OverallScore
		section.Issues = append(section.Issues, report.Issues...)
		section.DeadCodeSymbols = append(section.DeadCodeSymbols, prefixed(rec.Path, report.DeadCodeSymbols)...)
		section.DuplicatedBlocks = append(section.DuplicatedBlocks, prefixed(rec.Path, report.DuplicatedBlocks)...)
	}

	finishCode(section, total)
	a.log.Debug("code analysis complete",
		logger.F("files", section.FilesAnalyzed),
		logger.F("score", section.AverageScore))
	return section, warnings
}

// analysisCandidates picks Dart files for the quality pass, high
// importance before medium, each tier sorted by path, skipping files
// above the size limit.
func analysisCandidates(index *indexer.FileIndex, opts Options) []indexer.FileRecord {
	var picked []indexer.FileRecord
	for _, tier := range []indexer.Importance{indexer.ImportanceHigh, indexer.ImportanceMedium} {
		for _, rec := range index.FilesByImportance(tier) {
			if len(picked) >= opts.MaxFiles {
				return picked
			}
			if filepath.Ext(rec.Name) != ".dart" || rec.Type == indexer.FileTypeTest {
				continue
			}
			if opts.MaxFileSize > 0 && rec.SizeBytes > opts.MaxFileSize {
				continue
			}
			picked = append(picked, rec)
		}
	}
	return picked
}

func finishCode(section *CodeSection, total int) {
	if section.FilesAnalyzed > 0 {
		section.AverageScore = total / section.FilesAnalyzed
	}
	sort.Slice(section.Issues, func(i, j int) bool {
		a, b := section.Issues[i], section.Issues[j]
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		return a.Type < b.Type
	})
	sort.Strings(section.DeadCodeSymbols)
	sort.Strings(section.DuplicatedBlocks)
}

func prefixed(path string, items []string) []string {
	out := make([]string, len(items))
	for i, item := range items {
		out[i] = path + ": " + item
	}
	return out
}
