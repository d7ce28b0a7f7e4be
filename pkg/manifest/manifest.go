// Package manifest parses a project's pubspec manifest into a structured
// record. Parsing is resilient by contract: a missing or malformed
// manifest degrades to a default record, never an error, so the rest of
// the pipeline can treat "unknown" as a first-class project identity.
package manifest

import (
	"context"
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/plumedev/plume/pkg/analysis"
	"github.com/plumedev/plume/pkg/logger"
)

const stage = "manifest"

// FileName is the canonical manifest filename.
const FileName = "pubspec.yaml"

// Record is the parsed manifest. Dependencies and DevDependencies map
// package name to a normalized version-spec string.
type Record struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Description     string            `json:"description,omitempty"`
	Environment     map[string]string `json:"environment,omitempty"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"dev_dependencies"`
}

// DefaultRecord is what callers receive when no manifest could be read.
// "unknown" is a value, not a failure signal.
func DefaultRecord() *Record {
	return &Record{
		Name:            "unknown",
		Version:         "0.0.0",
		Environment:     map[string]string{},
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
	}
}

// DependencyNames returns the declared (non-dev) dependency names, sorted.
func (r *Record) DependencyNames() []string {
	names := make([]string, 0, len(r.Dependencies))
	for name := range r.Dependencies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasDependency reports whether name is declared in either block.
func (r *Record) HasDependency(name string) bool {
	if _, ok := r.Dependencies[name]; ok {
		return true
	}
	_, ok := r.DevDependencies[name]
	return ok
}

// Parser reads and parses manifests with bounded retry.
type Parser struct {
	maxAttempts int
	backoff     time.Duration
	log         logger.Logger
}

// NewParser creates a Parser with the default retry policy: three attempts
// with increasing backoff.
func NewParser() *Parser {
	return &Parser{
		maxAttempts: 3,
		backoff:     50 * time.Millisecond,
		log:         logger.NewDefault(),
	}
}

// WithLogger returns a new Parser using the specified logger.
func (p *Parser) WithLogger(log logger.Logger) *Parser {
	return &Parser{maxAttempts: p.maxAttempts, backoff: p.backoff, log: log}
}

// Parse reads the manifest at path. Transient read errors are retried up
// to three times with increasing backoff; a missing file short-circuits to
// the default record. On any exhaustion the default record is returned
// with a warning, never an error.
func (p *Parser) Parse(ctx context.Context, path string) (*Record, []analysis.Warning) {
	data, warn := p.readWithRetry(ctx, path)
	if warn != nil {
		return DefaultRecord(), []analysis.Warning{*warn}
	}

	rec, err := parseStructured(data)
	if err == nil {
		return rec, nil
	}

	p.log.Warn("structured manifest parse failed, using fallback",
		logger.F("path", path),
		logger.F("error", err))

	rec = parseFallback(data)
	if rec.Name == "" && rec.Version == "" && len(rec.Dependencies) == 0 && len(rec.DevDependencies) == 0 {
		return DefaultRecord(), []analysis.Warning{
			analysis.Warningf(stage, "manifest %s is malformed; using default project identity", path),
		}
	}
	if rec.Name == "" {
		rec.Name = "unknown"
	}
	if rec.Version == "" {
		rec.Version = "0.0.0"
	}
	return rec, []analysis.Warning{
		analysis.Warningf(stage, "manifest %s failed structured parsing; fields recovered by line scan", path),
	}
}

// readWithRetry reads the file, retrying transient errors. A missing file
// is MissingInput, not TransientIO, and is not retried.
func (p *Parser) readWithRetry(ctx context.Context, path string) ([]byte, *analysis.Warning) {
	var lastErr error
	for attempt := 1; attempt <= p.maxAttempts; attempt++ {
		data, err := os.ReadFile(path)
		if err == nil {
			return data, nil
		}
		if os.IsNotExist(err) {
			w := analysis.Warningf(stage, "no manifest found at %s", path)
			return nil, &w
		}
		lastErr = err

		if attempt < p.maxAttempts {
			p.log.Debug("manifest read failed, retrying",
				logger.F("attempt", attempt),
				logger.F("error", err))
			select {
			case <-ctx.Done():
				w := analysis.Warningf(stage, "manifest read cancelled: %v", ctx.Err())
				return nil, &w
			case <-time.After(p.backoff * time.Duration(attempt)):
			}
		}
	}
	w := analysis.Warningf(stage, "manifest unreadable after %d attempts: %v", p.maxAttempts, lastErr)
	return nil, &w
}

// pubspec mirrors the manifest's declared schema. Dependency values are
// kept as raw nodes because pubspec allows both scalar version constraints
// and mapping specs (sdk, git, path).
type pubspec struct {
	Name            string               `yaml:"name"`
	Version         string               `yaml:"version"`
	Description     string               `yaml:"description"`
	Environment     map[string]string    `yaml:"environment"`
	Dependencies    map[string]yaml.Node `yaml:"dependencies"`
	DevDependencies map[string]yaml.Node `yaml:"dev_dependencies"`
}

// parseStructured is the primary parse path.
func parseStructured(data []byte) (*Record, error) {
	var ps pubspec
	if err := yaml.Unmarshal(data, &ps); err != nil {
		return nil, fmt.Errorf("unmarshaling pubspec: %w", err)
	}

	rec := &Record{
		Name:            ps.Name,
		Version:         ps.Version,
		Description:     ps.Description,
		Environment:     ps.Environment,
		Dependencies:    normalizeDeps(ps.Dependencies),
		DevDependencies: normalizeDeps(ps.DevDependencies),
	}
	if rec.Environment == nil {
		rec.Environment = map[string]string{}
	}
	if rec.Name == "" {
		rec.Name = "unknown"
	}
	if rec.Version == "" {
		rec.Version = "0.0.0"
	}
	return rec, nil
}

// normalizeDeps flattens dependency specs to strings so downstream
// components are parser-agnostic.
func normalizeDeps(nodes map[string]yaml.Node) map[string]string {
	deps := make(map[string]string, len(nodes))
	for name, node := range nodes {
		deps[name] = normalizeSpec(node)
	}
	return deps
}

func normalizeSpec(node yaml.Node) string {
	switch node.Kind {
	case yaml.ScalarNode:
		if node.Value == "" || node.Value == "null" {
			return "any"
		}
		return node.Value
	case yaml.MappingNode:
		// Mapping specs: {version: x}, {sdk: flutter}, {git: ...}, {path: ...}
		for i := 0; i+1 < len(node.Content); i += 2 {
			key := node.Content[i].Value
			val := node.Content[i+1]
			switch key {
			case "version":
				return val.Value
			case "sdk":
				return "sdk: " + val.Value
			case "git":
				return "git"
			case "path":
				return "path"
			}
		}
		return "any"
	default:
		return "any"
	}
}
