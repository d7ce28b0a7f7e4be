package assembler

import (
	"fmt"

	"github.com/plumedev/plume/pkg/indexer"
)

const lowScoreThreshold = 60

// suggest runs the improvement rule table over the sections that were
// actually computed. A rule whose input section is absent never fires,
// so suggestions stay honest about what was analyzed.
func suggest(doc *Document) []string {
	suggestions := []string{}

	if doc.Dependencies != nil && len(doc.Dependencies.Categories["state_management"]) == 0 {
		suggestions = append(suggestions,
			"No state management package detected; consider riverpod, bloc, or provider for non-trivial apps")
	}

	if len(doc.Structure.FilesOfType(indexer.FileTypeTest)) == 0 {
		suggestions = append(suggestions,
			"No test files found; add unit or widget tests under test/")
	}

	if doc.Code != nil && doc.Code.AverageScore < lowScoreThreshold {
		suggestions = append(suggestions,
			fmt.Sprintf("Code quality score is %d; review the reported issues starting with high severity", doc.Code.AverageScore))
	}

	if doc.Architecture != nil {
		if _, ok := doc.Structure.Files["analysis_options.yaml"]; !ok {
			suggestions = append(suggestions,
				"No analysis_options.yaml found; add one to enable the Dart analyzer's lints")
		}
	}

	return suggestions
}
