// Package deps buckets a project's declared dependencies into semantic
// categories and flags conflicts and structural warnings. Classification
// is a pure function of the manifest: no I/O, deterministic output.
package deps

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plumedev/plume/pkg/manifest"
)

// Severity grades a dependency warning.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Warning flags a structural problem with the declared dependencies.
type Warning struct {
	Package  string   `json:"package"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
}

// Report is the full classification result. Every declared dependency
// appears in exactly one category; unmatched names land in "other".
type Report struct {
	Categories map[string][]string `json:"categories"`
	Warnings   []Warning           `json:"warnings"`
	Conflicts  []string            `json:"conflicts"`
}

// Classify buckets the manifest's dependencies and runs the conflict and
// warning rule tables.
func Classify(m *manifest.Record) *Report {
	report := &Report{
		Categories: make(map[string][]string),
		Warnings:   []Warning{},
		Conflicts:  []string{},
	}

	declared := make(map[string]bool, len(m.Dependencies)+len(m.DevDependencies))
	for name := range m.Dependencies {
		declared[name] = true
	}
	for name := range m.DevDependencies {
		declared[name] = true
	}

	names := make([]string, 0, len(declared))
	for name := range declared {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		report.Categories[categorize(name)] = append(report.Categories[categorize(name)], name)
	}

	report.Conflicts = detectConflicts(declared)
	report.Warnings = detectWarnings(m, declared)

	return report
}

// categorize tests a name against the priority-ordered category table;
// first match wins.
func categorize(name string) string {
	for _, rule := range categoryRules {
		if rule.members[name] {
			return rule.name
		}
	}
	return CategoryOther
}

// detectConflicts emits one message per exclusive group with two or more
// declared members.
func detectConflicts(declared map[string]bool) []string {
	conflicts := []string{}
	for _, group := range exclusiveGroups {
		var matches []string
		for _, member := range group.members {
			if declared[member] {
				matches = append(matches, member)
			}
		}
		if len(matches) >= 2 {
			conflicts = append(conflicts, fmt.Sprintf(
				"multiple %s packages declared: %s", group.label, strings.Join(matches, ", ")))
		}
	}
	return conflicts
}

// detectWarnings runs structural rules independent of conflicts.
func detectWarnings(m *manifest.Record, declared map[string]bool) []Warning {
	warnings := []Warning{}

	hasTesting := false
	for _, name := range testingDeps {
		if _, ok := m.DevDependencies[name]; ok {
			hasTesting = true
			break
		}
	}
	if !hasTesting {
		warnings = append(warnings, Warning{
			Package:  "flutter_test",
			Message:  "no testing dependency declared in dev_dependencies; add flutter_test",
			Severity: SeverityHigh,
		})
	}

	deprecated := make([]string, 0)
	for name := range declared {
		if _, ok := deprecatedDeps[name]; ok {
			deprecated = append(deprecated, name)
		}
	}
	sort.Strings(deprecated)
	for _, name := range deprecated {
		warnings = append(warnings, Warning{
			Package:  name,
			Message:  fmt.Sprintf("%s is deprecated; migrate to %s", name, deprecatedDeps[name]),
			Severity: SeverityMedium,
		})
	}

	return warnings
}
