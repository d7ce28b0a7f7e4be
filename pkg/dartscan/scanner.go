package dartscan

// blank returns a copy of src with comments and string literals replaced
// by spaces, preserving length and line breaks so the parser's offsets
// and line numbers stay valid. Interpolation expressions inside strings
// are blanked along with the string; their braces are tracked so the
// string's true end is still found.
func blank(src string) string {
	out := []byte(src)

	type strState struct {
		quote  byte
		triple bool
		raw    bool
	}

	const (
		inCode = iota
		inLineComment
		inBlockComment
		inString
		inInterp
	)

	state := inCode
	blockDepth := 0 // Dart block comments nest
	var str strState
	var stringStack []strState // resume state after interpolation
	interpDepth := 0

	i := 0
	n := len(src)
	for i < n {
		c := src[i]

		switch state {
		case inCode:
			switch {
			case c == '/' && i+1 < n && src[i+1] == '/':
				state = inLineComment
				out[i], out[i+1] = ' ', ' '
				i += 2
				continue
			case c == '/' && i+1 < n && src[i+1] == '*':
				state = inBlockComment
				blockDepth = 1
				out[i], out[i+1] = ' ', ' '
				i += 2
				continue
			case c == '\'' || c == '"':
				raw := i > 0 && src[i-1] == 'r'
				triple := i+2 < n && src[i+1] == c && src[i+2] == c
				str = strState{quote: c, triple: triple, raw: raw}
				state = inString
				out[i] = ' '
				if triple {
					out[i+1], out[i+2] = ' ', ' '
					i += 3
					continue
				}
				i++
				continue
			}
			i++

		case inLineComment:
			if c == '\n' {
				state = inCode
			} else {
				out[i] = ' '
			}
			i++

		case inBlockComment:
			switch {
			case c == '/' && i+1 < n && src[i+1] == '*':
				blockDepth++
				out[i], out[i+1] = ' ', ' '
				i += 2
				continue
			case c == '*' && i+1 < n && src[i+1] == '/':
				blockDepth--
				out[i], out[i+1] = ' ', ' '
				i += 2
				if blockDepth == 0 {
					state = inCode
				}
				continue
			}
			if c != '\n' {
				out[i] = ' '
			}
			i++

		case inString:
			switch {
			case !str.raw && c == '\\' && i+1 < n:
				out[i] = ' '
				if src[i+1] != '\n' {
					out[i+1] = ' '
				}
				i += 2
				continue
			case !str.raw && c == '$' && i+1 < n && src[i+1] == '{':
				out[i], out[i+1] = ' ', ' '
				stringStack = append(stringStack, str)
				state = inInterp
				interpDepth = 1
				i += 2
				continue
			case c == str.quote:
				if str.triple {
					if i+2 < n && src[i+1] == str.quote && src[i+2] == str.quote {
						out[i], out[i+1], out[i+2] = ' ', ' ', ' '
						state = inCode
						i += 3
						continue
					}
					out[i] = ' '
					i++
					continue
				}
				out[i] = ' '
				state = inCode
				i++
				continue
			case c == '\n' && !str.triple:
				// Unterminated single-line string; bail back to code.
				state = inCode
				i++
				continue
			}
			if c != '\n' {
				out[i] = ' '
			}
			i++

		case inInterp:
			// Interpolated expressions are blanked wholesale; only brace
			// balance matters to find the end of the expression.
			switch c {
			case '{':
				interpDepth++
			case '}':
				interpDepth--
				if interpDepth == 0 {
					out[i] = ' '
					str = stringStack[len(stringStack)-1]
					stringStack = stringStack[:len(stringStack)-1]
					state = inString
					i++
					continue
				}
			}
			if c != '\n' {
				out[i] = ' '
			}
			i++
		}
	}

	return string(out)
}
