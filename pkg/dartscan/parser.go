package dartscan

import (
	"fmt"
	"regexp"
	"strings"
)

var (
	declRe      = regexp.MustCompile(`(?:^|\s)(class|mixin|enum|extension)\s+([A-Za-z_$][\w$]*)`)
	getterRe    = regexp.MustCompile(`(?:^|\s)get\s+([A-Za-z_$][\w$]*)\s*$`)
	trailingRe  = regexp.MustCompile(`([A-Za-z_$][\w$]*)\s*$`)
	arrowFnRe   = regexp.MustCompile(`([A-Za-z_$][\w$]*)\s*\([^()]*\)\s*(?:async\*?\s*)?=>`)
	arrowGetRe  = regexp.MustCompile(`get\s+([A-Za-z_$][\w$]*)\s*=>`)
	catchRe     = regexp.MustCompile(`(?:^|\s)catch\s*\(`)
	identRe     = regexp.MustCompile(`[A-Za-z_$][\w$]*`)
	controlKind = map[string]Kind{
		"if": KindIf, "else": KindElse, "for": KindFor, "while": KindWhile,
		"do": KindDo, "switch": KindSwitch, "try": KindTry,
		"catch": KindCatch, "finally": KindFinally,
	}
)

// dartKeywords are excluded from identifier reference counting.
var dartKeywords = map[string]bool{
	"abstract": true, "as": true, "assert": true, "async": true, "await": true,
	"base": true, "break": true, "case": true, "catch": true, "class": true,
	"const": true, "continue": true, "covariant": true, "default": true,
	"deferred": true, "do": true, "dynamic": true, "else": true, "enum": true,
	"export": true, "extends": true, "extension": true, "external": true,
	"factory": true, "false": true, "final": true, "finally": true,
	"for": true, "get": true, "hide": true, "if": true, "implements": true,
	"import": true, "in": true, "interface": true, "is": true, "late": true,
	"library": true, "mixin": true, "new": true, "null": true, "on": true,
	"operator": true, "part": true, "required": true, "rethrow": true,
	"return": true, "sealed": true, "set": true, "show": true, "static": true,
	"super": true, "switch": true, "sync": true, "this": true, "throw": true,
	"true": true, "try": true, "typedef": true, "var": true, "void": true,
	"when": true, "while": true, "with": true, "yield": true,
}

type stackEntry struct {
	node       *Node
	hasContent bool
}

// Parse recovers the structural AST of one Dart file. It returns an error
// only when the brace structure is unrecoverable (more closers than
// openers, or unclosed blocks at end of file); callers treat that as a
// skip, not a failure.
func Parse(path, src string) (*File, error) {
	blanked := blank(src)

	file := &File{
		Path:       path,
		Referenced: map[string]int{},
	}
	declaredCount := map[string]int{}

	var stack []stackEntry
	var header strings.Builder
	headerLine := 1
	line := 1
	parenDepth := 0

	attach := func(n *Node) {
		if len(stack) > 0 {
			parent := stack[len(stack)-1].node
			parent.Children = append(parent.Children, n)
		} else {
			file.Roots = append(file.Roots, n)
		}
	}

	declare := func(name string, kind Kind, declLine int) {
		if name == "" {
			return
		}
		file.Declared = append(file.Declared, Symbol{Name: name, Kind: kind, Line: declLine})
		declaredCount[name]++
	}

	for i := 0; i < len(blanked); i++ {
		c := blanked[i]
		switch c {
		case '\n':
			line++
			if header.Len() > 0 {
				header.WriteByte(' ')
			}
		case '{':
			insideType := len(stack) > 0 && isTypeKind(stack[len(stack)-1].node.Kind)
			kind, name := classifyHeader(header.String(), insideType)
			node := &Node{Kind: kind, Name: name, StartLine: headerLine}
			if name != "" {
				declare(name, kind, headerLine)
			}
			attach(node)
			if len(stack) > 0 {
				stack[len(stack)-1].hasContent = true
			}
			stack = append(stack, stackEntry{node: node})
			header.Reset()
			headerLine = line
			parenDepth = 0
		case '}':
			if len(stack) == 0 {
				return nil, fmt.Errorf("%s:%d: unmatched closing brace", path, line)
			}
			top := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			top.node.EndLine = line
			top.node.BodyEmpty = !top.hasContent
			header.Reset()
			headerLine = line
			parenDepth = 0
		case ';':
			if len(stack) > 0 {
				stack[len(stack)-1].hasContent = true
			}
			// Semicolons inside a parenthesized header (classic for
			// loops) do not end the statement.
			if parenDepth > 0 {
				header.WriteByte(c)
				break
			}
			header.Reset()
			headerLine = line
		default:
			if c == '(' {
				parenDepth++
			} else if c == ')' && parenDepth > 0 {
				parenDepth--
			}
			if c == ' ' || c == '\t' || c == '\r' {
				if header.Len() > 0 {
					header.WriteByte(' ')
				}
				break
			}
			if header.Len() == 0 {
				headerLine = line
			}
			if len(stack) > 0 {
				stack[len(stack)-1].hasContent = true
			}
			header.WriteByte(c)
		}
	}

	if len(stack) > 0 {
		return nil, fmt.Errorf("%s: %d unclosed block(s) at end of file", path, len(stack))
	}

	// Declarations with expression bodies never reach the brace path.
	for _, m := range arrowFnRe.FindAllStringSubmatch(blanked, -1) {
		if !dartKeywords[m[1]] {
			declare(m[1], KindFunction, 0)
		}
	}
	for _, m := range arrowGetRe.FindAllStringSubmatch(blanked, -1) {
		declare(m[1], KindFunction, 0)
	}

	// Reference counts: every identifier occurrence beyond the symbol's
	// own declarations counts as a use.
	for _, tok := range identRe.FindAllString(blanked, -1) {
		if dartKeywords[tok] {
			continue
		}
		file.Referenced[tok]++
	}
	for name, count := range declaredCount {
		file.Referenced[name] -= count
		if file.Referenced[name] < 0 {
			file.Referenced[name] = 0
		}
	}

	return file, nil
}

func isTypeKind(k Kind) bool {
	switch k {
	case KindClass, KindMixin, KindEnum, KindExtension:
		return true
	}
	return false
}

// classifyHeader decides what the text between the previous statement
// boundary and an opening brace declares.
func classifyHeader(header string, insideType bool) (Kind, string) {
	header = strings.TrimSpace(header)
	if header == "" {
		return KindBlock, ""
	}

	first := identRe.FindString(header)
	if kind, ok := controlKind[first]; ok {
		return kind, ""
	}
	// `on SomeException catch (e)` starts with "on", not "catch".
	if catchRe.MatchString(header) {
		return KindCatch, ""
	}

	if m := declRe.FindStringSubmatch(header); m != nil {
		switch m[1] {
		case "class":
			return KindClass, m[2]
		case "mixin":
			return KindMixin, m[2]
		case "enum":
			return KindEnum, m[2]
		default:
			return KindExtension, m[2]
		}
	}

	if m := getterRe.FindStringSubmatch(header); m != nil {
		return memberKind(insideType), m[1]
	}

	paren := strings.Index(header, "(")
	if paren > 0 {
		before := header[:paren]
		if strings.Contains(before, "=") {
			return KindBlock, ""
		}
		if m := trailingRe.FindStringSubmatch(before); m != nil && !dartKeywords[m[1]] {
			return memberKind(insideType), m[1]
		}
	}

	return KindBlock, ""
}

func memberKind(insideType bool) Kind {
	if insideType {
		return KindMethod
	}
	return KindFunction
}
