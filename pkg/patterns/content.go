package patterns

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/plumedev/plume/pkg/indexer"
)

// SourceSample is one sampled file's text.
type SourceSample struct {
	Path    string
	Content string
}

// SourceSampler yields high-importance file contents for lexical scans.
type SourceSampler interface {
	Sample(maxFiles int) []SourceSample
}

// IndexSampler reads high-importance Dart files straight from the indexed
// tree, skipping files above the byte limit. Unreadable files are dropped
// from the sample silently; sampling is best effort.
type IndexSampler struct {
	index    *indexer.FileIndex
	maxBytes int64
}

// NewIndexSampler creates a sampler over the given index. maxBytes <= 0
// disables the size limit.
func NewIndexSampler(index *indexer.FileIndex, maxBytes int64) *IndexSampler {
	return &IndexSampler{index: index, maxBytes: maxBytes}
}

// Sample implements SourceSampler.
func (s *IndexSampler) Sample(maxFiles int) []SourceSample {
	var samples []SourceSample
	for _, rec := range s.index.FilesByImportance(indexer.ImportanceHigh) {
		if len(samples) >= maxFiles {
			break
		}
		if filepath.Ext(rec.Name) != ".dart" {
			continue
		}
		if s.maxBytes > 0 && rec.SizeBytes > s.maxBytes {
			continue
		}
		data, err := os.ReadFile(filepath.Join(s.index.Root, filepath.FromSlash(rec.Path)))
		if err != nil {
			continue
		}
		samples = append(samples, SourceSample{Path: rec.Path, Content: string(data)})
	}
	return samples
}

// contentRule matches lexical indicators inside sampled source text.
// Substrings are matched case-insensitively; all listed substrings must
// co-occur in one file. An optional expression matches on its own.
type contentRule struct {
	pattern    string
	confidence float64
	substrings []string
	expr       *regexp.Regexp
}

var contentRules = []contentRule{
	{
		pattern:    "mvvm",
		confidence: 0.60,
		substrings: []string{"changenotifier", "notifylisteners"},
	},
	{
		pattern:    "repository-abstraction",
		confidence: 0.70,
		expr:       regexp.MustCompile(`(?i)(abstract\s+)?class\s+\w+Repository\b`),
	},
	{
		pattern:    "riverpod",
		confidence: 0.65,
		substrings: []string{"consumerwidget"},
	},
	{
		pattern:    "riverpod",
		confidence: 0.65,
		substrings: []string{"ref.watch("},
	},
	{
		pattern:    "bloc",
		confidence: 0.65,
		substrings: []string{"blocbuilder"},
	},
	{
		pattern:    "bloc",
		confidence: 0.65,
		substrings: []string{"blocprovider"},
	},
}

// contentSource samples high-importance files and scans their text for
// structural indicators. Each hit becomes one candidate tagged with the
// originating file.
type contentSource struct {
	rules []contentRule
}

func (s *contentSource) Name() string { return "content" }

// contentSampleLimit bounds how many files the lexical scan reads.
const contentSampleLimit = 20

func (s *contentSource) Detect(in Input) []Pattern {
	if in.Sampler == nil {
		return nil
	}

	var out []Pattern
	for _, sample := range in.Sampler.Sample(contentSampleLimit) {
		lowered := strings.ToLower(sample.Content)
		for _, rule := range s.rules {
			if !rule.matches(sample.Content, lowered) {
				continue
			}
			out = append(out, Pattern{
				Name:       rule.pattern,
				Confidence: clip(rule.confidence),
				Indicators: []string{fmt.Sprintf("indicators found in %s", sample.Path)},
			})
		}
	}
	return out
}

func (r *contentRule) matches(content, lowered string) bool {
	for _, sub := range r.substrings {
		if !strings.Contains(lowered, sub) {
			return false
		}
	}
	if len(r.substrings) > 0 {
		return true
	}
	return r.expr != nil && r.expr.MatchString(content)
}
