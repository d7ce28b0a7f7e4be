package patterns

import "fmt"

// frameworkRule declares how one framework maps to a named pattern.
// A centralized rule table interpreted by a single evaluator replaces
// scattered per-package string checks: extending detection means adding a
// row, not code.
type frameworkRule struct {
	pattern    string
	base       float64
	packages   []string           // any declared member triggers the rule
	companions map[string]float64 // co-dependency name -> confidence bonus
}

// frameworkRules covers state management, navigation, dependency
// injection, and test tooling frameworks. Base confidences sit in
// [0.80, 0.95]; companion bonuses are clipped at 1.0.
var frameworkRules = []frameworkRule{
	{
		pattern:  "riverpod",
		base:     0.90,
		packages: []string{"flutter_riverpod", "hooks_riverpod", "riverpod"},
		companions: map[string]float64{
			"riverpod_generator": 0.05,
			"flutter_hooks":      0.05,
		},
	},
	{
		pattern:  "bloc",
		base:     0.90,
		packages: []string{"flutter_bloc", "bloc"},
		companions: map[string]float64{
			"bloc_test": 0.05,
		},
	},
	{
		pattern:  "provider",
		base:     0.85,
		packages: []string{"provider"},
	},
	{
		pattern:  "getx",
		base:     0.85,
		packages: []string{"get", "getx"},
	},
	{
		pattern:  "mobx",
		base:     0.85,
		packages: []string{"mobx", "flutter_mobx"},
		companions: map[string]float64{
			"mobx_codegen": 0.05,
		},
	},
	{
		pattern:  "declarative-routing",
		base:     0.85,
		packages: []string{"go_router", "auto_route"},
		companions: map[string]float64{
			"auto_route_generator": 0.05,
		},
	},
	{
		pattern:  "service-locator",
		base:     0.85,
		packages: []string{"get_it"},
		companions: map[string]float64{
			"injectable": 0.05,
		},
	},
	{
		pattern:  "mock-based-testing",
		base:     0.80,
		packages: []string{"mockito", "mocktail"},
	},
}

// manifestSource evaluates the framework rule table against declared
// dependency names.
type manifestSource struct {
	rules []frameworkRule
}

func (s *manifestSource) Name() string { return "manifest" }

func (s *manifestSource) Detect(in Input) []Pattern {
	if in.Manifest == nil {
		return nil
	}

	var out []Pattern
	for _, rule := range s.rules {
		var indicators []string
		for _, pkg := range rule.packages {
			if in.Manifest.HasDependency(pkg) {
				indicators = append(indicators, fmt.Sprintf("dependency %s declared", pkg))
			}
		}
		if len(indicators) == 0 {
			continue
		}

		confidence := rule.base
		for companion, bonus := range rule.companions {
			if in.Manifest.HasDependency(companion) {
				confidence += bonus
				indicators = append(indicators, fmt.Sprintf("companion %s declared", companion))
			}
		}

		out = append(out, Pattern{
			Name:       rule.pattern,
			Confidence: clip(confidence),
			Indicators: indicators,
		})
	}
	return out
}
