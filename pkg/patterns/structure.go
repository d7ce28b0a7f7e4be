package patterns

import (
	"strings"

	"github.com/plumedev/plume/pkg/indexer"
)

// structureSource tests the shape of the directory tree: feature-first
// layouts, layer-first layouts, and clean-architecture layering.
//
// Confidence is a weighted sum of independently checked sub-conditions,
// so partial evidence still surfaces with a proportionally lower score.
type structureSource struct{}

func (s *structureSource) Name() string { return "structure" }

// architectural layer names tested for layer-first and clean-architecture
var layerDirs = []string{"presentation", "domain", "data", "infrastructure"}

func (s *structureSource) Detect(in Input) []Pattern {
	if in.Index == nil {
		return nil
	}

	var out []Pattern
	if p, ok := s.featureFirst(in.Index); ok {
		out = append(out, p)
	}
	out = append(out, s.layered(in.Index)...)
	return out
}

// featureFirst scores three sub-conditions: a features directory (0.4),
// at least one screen-type file (0.3), and files physically nested under
// features/ (0.3).
func (s *structureSource) featureFirst(idx *indexer.FileIndex) (Pattern, bool) {
	confidence := 0.0
	var indicators []string

	if idx.HasDirectory("features") {
		confidence += 0.4
		indicators = append(indicators, "features/ directory present")
	}

	if screens := idx.FilesOfType(indexer.FileTypeScreen); len(screens) > 0 {
		confidence += 0.3
		indicators = append(indicators, "screen files present")
	}

	nested := false
	for path := range idx.Files {
		if strings.Contains(path, "features/") {
			nested = true
			break
		}
	}
	if nested {
		confidence += 0.3
		indicators = append(indicators, "files nested under features/")
	}

	if confidence == 0 {
		return Pattern{}, false
	}
	return Pattern{
		Name:       "feature-first",
		Confidence: clip(confidence),
		Indicators: indicators,
	}, true
}

// layered emits a layer-first candidate when two or more of the four
// canonical layers are present, and a clean-architecture candidate when
// three or more are.
func (s *structureSource) layered(idx *indexer.FileIndex) []Pattern {
	var present []string
	for _, layer := range layerDirs {
		if idx.HasDirectory(layer) {
			present = append(present, layer+"/ directory present")
		}
	}

	count := len(present)
	if count < 2 {
		return nil
	}

	out := []Pattern{{
		Name:       "layer-first",
		Confidence: clip(0.25 * float64(count)),
		Indicators: present,
	}}

	if count >= 3 {
		out = append(out, Pattern{
			Name:       "clean-architecture",
			Confidence: clip(0.25 * float64(count)),
			Indicators: append([]string{"three or more canonical layers"}, present...),
		})
	}
	return out
}
