package patterns

import (
	"github.com/plumedev/plume/pkg/indexer"
	"github.com/plumedev/plume/pkg/logger"
	"github.com/plumedev/plume/pkg/manifest"
)

// Detector runs all registered signal sources and merges their candidates.
type Detector struct {
	registry *Registry
	log      logger.Logger
}

// NewDetector creates a Detector with the default signal sources.
func NewDetector() *Detector {
	return &Detector{
		registry: NewRegistry(),
		log:      logger.NewDefault(),
	}
}

// NewDetectorWithRegistry creates a Detector over a custom registry.
func NewDetectorWithRegistry(registry *Registry) *Detector {
	return &Detector{registry: registry, log: logger.NewDefault()}
}

// WithLogger returns a new Detector using the specified logger.
func (d *Detector) WithLogger(log logger.Logger) *Detector {
	return &Detector{registry: d.registry, log: log}
}

// Detect combines all signal sources into merged, confidence-scored
// pattern candidates. An empty result is a valid, common outcome;
// finding no recognizable pattern is not an error.
func (d *Detector) Detect(index *indexer.FileIndex, m *manifest.Record, sampler SourceSampler) []Pattern {
	in := Input{Index: index, Manifest: m, Sampler: sampler}

	var candidates []Pattern
	for _, src := range d.registry.Sources() {
		found := src.Detect(in)
		d.log.Debug("signal source finished",
			logger.F("source", src.Name()),
			logger.F("candidates", len(found)))
		candidates = append(candidates, found...)
	}

	merged := Merge(candidates)
	d.log.Info("pattern detection complete",
		logger.F("candidates", len(candidates)),
		logger.F("patterns", len(merged)))
	return merged
}
