package patterns

import (
	"github.com/plumedev/plume/pkg/indexer"
	"github.com/plumedev/plume/pkg/manifest"
)

// Input carries everything a signal source may inspect. The index and
// manifest are shared read-only; the sampler lazily reads file contents
// for sources that need them.
type Input struct {
	Index    *indexer.FileIndex
	Manifest *manifest.Record
	Sampler  SourceSampler
}

// Source is one independent heuristic producer of pattern candidates.
type Source interface {
	Name() string
	Detect(in Input) []Pattern
}

// Registry holds the signal sources for one detection run. It is
// constructed per invocation and passed explicitly; there is no
// process-wide source registration, so runs never leak state into each
// other.
type Registry struct {
	sources []Source
}

// NewRegistry creates a Registry with the four default signal sources:
// directory structure, manifest content, sampled source text, and
// configuration files.
func NewRegistry() *Registry {
	r := &Registry{}
	r.Register(&structureSource{})
	r.Register(&manifestSource{rules: frameworkRules})
	r.Register(&contentSource{rules: contentRules})
	r.Register(&configFileSource{rules: configFileRules})
	return r
}

// Register adds a signal source to the registry.
func (r *Registry) Register(src Source) {
	r.sources = append(r.sources, src)
}

// Sources returns the registered sources in registration order.
func (r *Registry) Sources() []Source {
	return r.sources
}
