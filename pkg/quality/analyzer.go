// Package quality scores Dart source files. Each file is parsed into a
// structural AST and folded into a report of issues, dead private
// symbols, and duplicated blocks, with an overall 0-100 score.
package quality

import (
	"fmt"
	"sort"
	"strings"

	"github.com/plumedev/plume/pkg/dartscan"
)

// Severity ranks an issue's weight in the overall score.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Issue types.
const (
	IssueDeadCode       = "dead_code"
	IssueLongFunction   = "long_function"
	IssueLargeClass     = "large_class"
	IssueEmptyBody      = "empty_body"
	IssueDuplicateBlock = "duplicate_block"
)

// MaxScore is the score of a file with no findings.
const MaxScore = 100

const (
	longFunctionLines = 50
	largeClassLines   = 300
	duplicateMinLines = 5
)

// Issue is one quality finding at a specific location.
type Issue struct {
	Type     string   `json:"type"`
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	Location string   `json:"location"`
}

// Report is the analysis result for one source file. A file that fails
// to parse gets a default report: full score, nothing flagged.
type Report struct {
	Issues           []Issue  `json:"issues"`
	DeadCodeSymbols  []string `json:"dead_code_symbols"`
	DuplicatedBlocks []string `json:"duplicated_blocks"`
	OverallScore     int      `json:"overall_score"`
}

func defaultReport() *Report {
	return &Report{
		Issues:           []Issue{},
		DeadCodeSymbols:  []string{},
		DuplicatedBlocks: []string{},
		OverallScore:     MaxScore,
	}
}

// Analyze parses one Dart file and folds its AST into a Report. Parse
// failures skip the file: the default report is returned and the batch
// continues.
func Analyze(path, src string) *Report {
	file, err := dartscan.Parse(path, src)
	if err != nil {
		return defaultReport()
	}

	report := defaultReport()
	report.Issues = append(report.Issues, sizeAndShapeIssues(path, file)...)
	report.Issues = append(report.Issues, deadCodeIssues(path, file, report)...)
	report.Issues = append(report.Issues, duplicateIssues(path, src, file, report)...)

	sort.Slice(report.Issues, func(i, j int) bool {
		a, b := report.Issues[i], report.Issues[j]
		if a.Location != b.Location {
			return a.Location < b.Location
		}
		return a.Type < b.Type
	})

	report.OverallScore = score(report.Issues)
	return report
}

// sizeAndShapeIssues folds the node tree into size and empty-body
// findings. The traversal carries no state beyond the returned slice.
func sizeAndShapeIssues(path string, file *dartscan.File) []Issue {
	var issues []Issue
	file.Walk(func(n *dartscan.Node) {
		switch n.Kind {
		case dartscan.KindFunction, dartscan.KindMethod:
			if n.Span() > longFunctionLines {
				issues = append(issues, Issue{
					Type:     IssueLongFunction,
					Message:  fmt.Sprintf("%s spans %d lines (limit %d)", n.Name, n.Span(), longFunctionLines),
					Severity: SeverityMedium,
					Location: location(path, n.StartLine),
				})
			}
		case dartscan.KindClass, dartscan.KindMixin:
			if n.Span() > largeClassLines {
				issues = append(issues, Issue{
					Type:     IssueLargeClass,
					Message:  fmt.Sprintf("%s spans %d lines (limit %d)", n.Name, n.Span(), largeClassLines),
					Severity: SeverityHigh,
					Location: location(path, n.StartLine),
				})
			}
		case dartscan.KindIf, dartscan.KindElse, dartscan.KindFor,
			dartscan.KindWhile, dartscan.KindDo, dartscan.KindTry,
			dartscan.KindCatch, dartscan.KindFinally:
			if n.BodyEmpty {
				issues = append(issues, Issue{
					Type:     IssueEmptyBody,
					Message:  fmt.Sprintf("empty %s body", n.Kind),
					Severity: SeverityLow,
					Location: location(path, n.StartLine),
				})
			}
		}
	})
	return issues
}

// deadCodeIssues flags private symbols that are declared but never
// referenced anywhere else in the file.
func deadCodeIssues(path string, file *dartscan.File, report *Report) []Issue {
	var issues []Issue
	seen := map[string]bool{}
	for _, sym := range file.Declared {
		if !sym.IsPrivate() || seen[sym.Name] {
			continue
		}
		seen[sym.Name] = true
		if file.Referenced[sym.Name] > 0 {
			continue
		}
		report.DeadCodeSymbols = append(report.DeadCodeSymbols, sym.Name)
		issues = append(issues, Issue{
			Type:     IssueDeadCode,
			Message:  fmt.Sprintf("private %s %s is never referenced", sym.Kind, sym.Name),
			Severity: SeverityLow,
			Location: location(path, sym.Line),
		})
	}
	sort.Strings(report.DeadCodeSymbols)
	return issues
}

// duplicateIssues groups function and method bodies by their normalized
// text. Two declarations with an identical body of at least
// duplicateMinLines lines count as one duplicated block.
func duplicateIssues(path, src string, file *dartscan.File, report *Report) []Issue {
	lines := strings.Split(src, "\n")

	type site struct {
		name string
		line int
	}
	groups := map[string][]site{}
	file.Walk(func(n *dartscan.Node) {
		if n.Kind != dartscan.KindFunction && n.Kind != dartscan.KindMethod {
			return
		}
		body := normalizedBody(lines, n)
		if body == "" {
			return
		}
		groups[body] = append(groups[body], site{name: n.Name, line: n.StartLine})
	})

	var issues []Issue
	for _, sites := range groups {
		if len(sites) < 2 {
			continue
		}
		sort.Slice(sites, func(i, j int) bool { return sites[i].line < sites[j].line })
		names := make([]string, len(sites))
		for i, s := range sites {
			names[i] = fmt.Sprintf("%s:%d", s.name, s.line)
		}
		desc := strings.Join(names, ", ")
		report.DuplicatedBlocks = append(report.DuplicatedBlocks, desc)
		issues = append(issues, Issue{
			Type:     IssueDuplicateBlock,
			Message:  fmt.Sprintf("identical bodies: %s", desc),
			Severity: SeverityMedium,
			Location: location(path, sites[0].line),
		})
	}
	sort.Strings(report.DuplicatedBlocks)
	return issues
}

// normalizedBody is the node's body text between the header and closing
// brace lines, with indentation and blank lines removed. Bodies shorter
// than duplicateMinLines normalize to "".
func normalizedBody(lines []string, n *dartscan.Node) string {
	first, last := n.StartLine, n.EndLine-1 // skip the closing brace line
	if first < 1 || last < first || last > len(lines) {
		return ""
	}
	var kept []string
	for _, raw := range lines[first:last] { // StartLine is 1-based; skip the header line
		s := strings.TrimSpace(raw)
		if s != "" {
			kept = append(kept, s)
		}
	}
	if len(kept) < duplicateMinLines {
		return ""
	}
	return strings.Join(kept, "\n")
}

func score(issues []Issue) int {
	s := MaxScore
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityHigh:
			s -= 10
		case SeverityMedium:
			s -= 5
		case SeverityLow:
			s--
		}
	}
	if s < 0 {
		s = 0
	}
	return s
}

func location(path string, line int) string {
	if line <= 0 {
		return path
	}
	return fmt.Sprintf("%s:%d", path, line)
}
