package patterns

// configFileRule maps the presence of one named configuration file to a
// high-confidence pattern, independent of the other signal sources.
type configFileRule struct {
	file       string
	pattern    string
	confidence float64
}

var configFileRules = []configFileRule{
	{"build.yaml", "code-generation", 0.85},
	{"melos.yaml", "monorepo-workspace", 0.90},
	{"l10n.yaml", "localization", 0.85},
	{"analysis_options.yaml", "configured-lints", 0.80},
}

// configFileSource checks the index for well-known configuration files at
// the project root.
type configFileSource struct {
	rules []configFileRule
}

func (s *configFileSource) Name() string { return "config-file" }

func (s *configFileSource) Detect(in Input) []Pattern {
	if in.Index == nil {
		return nil
	}

	var out []Pattern
	for _, rule := range s.rules {
		if _, ok := in.Index.Files[rule.file]; !ok {
			continue
		}
		out = append(out, Pattern{
			Name:       rule.pattern,
			Confidence: clip(rule.confidence),
			Indicators: []string{rule.file + " present"},
		})
	}
	return out
}
