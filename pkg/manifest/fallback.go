package manifest

import "strings"

// parseFallback is the line-oriented recovery path used when structured
// parsing rejects the manifest. It tracks the current section by
// indentation and extracts key: value pairs inside dependencies,
// dev_dependencies, and environment blocks until the indentation drops
// back out of the section. Both parse paths return the same Record shape.
func parseFallback(data []byte) *Record {
	rec := &Record{
		Environment:     map[string]string{},
		Dependencies:    map[string]string{},
		DevDependencies: map[string]string{},
	}

	section := ""
	sectionIndent := -1
	childIndent := -1

	for _, raw := range strings.Split(string(data), "\n") {
		line := strings.TrimRight(raw, " \t\r")
		trimmed := strings.TrimLeft(line, " \t")
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		indent := len(line) - len(trimmed)

		// Leaving the current section when indentation falls back.
		if section != "" && indent <= sectionIndent {
			section = ""
			sectionIndent = -1
			childIndent = -1
		}

		key, value, ok := splitKeyValue(trimmed)
		if !ok {
			continue
		}

		if section == "" {
			switch key {
			case "dependencies", "dev_dependencies", "environment":
				if value == "" {
					section = key
					sectionIndent = indent
				}
			case "name":
				rec.Name = value
			case "version":
				rec.Version = value
			case "description":
				rec.Description = value
			}
			continue
		}

		// Only direct children of the section; deeper lines belong to a
		// mapping spec (sdk/git/path) of the previous entry. The first
		// entry fixes the child indentation level.
		if childIndent == -1 {
			childIndent = indent
		}
		if indent != childIndent {
			continue
		}

		if value == "" {
			value = "any"
		}
		switch section {
		case "dependencies":
			rec.Dependencies[key] = value
		case "dev_dependencies":
			rec.DevDependencies[key] = value
		case "environment":
			rec.Environment[key] = value
		}
	}

	return rec
}

// splitKeyValue splits "key: value" lines, tolerating missing values.
func splitKeyValue(line string) (key, value string, ok bool) {
	idx := strings.Index(line, ":")
	if idx <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:idx])
	value = strings.TrimSpace(line[idx+1:])
	value = strings.Trim(value, `"'`)
	if strings.ContainsAny(key, " \t") {
		return "", "", false
	}
	return key, value, true
}
