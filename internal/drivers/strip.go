// Package drivers holds the preprocessing helper shared by every
// per-language driver (structural, lexical, markup, stylesheet,
// configfile, each in its own subpackage). spec.md §4.1: drivers share a
// comment/string stripper that preserves line structure; two modes exist,
// differing only in whether a single quote is treated as a string
// delimiter (true for style-sheet/markup, false for typed/whitespace-
// sensitive families).
package drivers

// Strip removes comment and string-literal content from src, replacing
// it with spaces, while preserving every non-comment/non-string
// character's position and every newline (P2: "strip purity" — the
// stripper preserves every non-comment, non-string character in order,
// preserves newlines, and escape handling inside strings consumes the
// next character unconditionally).
//
// singleQuoteIsString selects which family's lexical rules apply: true
// for markup/style-sheet (single quote is a string delimiter alongside
// double quote), false for the typed/whitespace-sensitive families
// (single quote is reserved for char literals or pattern-match ticks,
// not stripped as a string).
func Strip(src string, singleQuoteIsString bool) string {
	out := make([]byte, len(src))
	copy(out, src)

	const (
		stateCode = iota
		stateLineComment
		stateBlockComment
		stateString
		stateBacktickString
	)

	state := stateCode
	var stringDelim byte

	for i := 0; i < len(src); i++ {
		c := src[i]

		switch state {
		case stateLineComment:
			if c == '\n' {
				state = stateCode
			} else {
				out[i] = blank(c)
			}

		case stateBlockComment:
			if c == '*' && i+1 < len(src) && src[i+1] == '/' {
				out[i] = blank(c)
				out[i+1] = blank(src[i+1])
				i++
				state = stateCode
			} else {
				out[i] = blank(c)
			}

		case stateString:
			if c == '\\' && i+1 < len(src) {
				out[i] = blank(c)
				out[i+1] = blank(src[i+1])
				i++
				continue
			}
			if c == stringDelim {
				state = stateCode
			} else {
				out[i] = blank(c)
			}

		case stateBacktickString:
			if c == '\\' && i+1 < len(src) {
				out[i] = blank(c)
				out[i+1] = blank(src[i+1])
				i++
				continue
			}
			if c == '`' {
				state = stateCode
			} else {
				out[i] = blank(c)
			}

		default: // stateCode
			switch {
			case c == '/' && i+1 < len(src) && src[i+1] == '/':
				out[i] = blank(c)
				out[i+1] = blank(src[i+1])
				i++
				state = stateLineComment
			case c == '/' && i+1 < len(src) && src[i+1] == '*':
				out[i] = blank(c)
				out[i+1] = blank(src[i+1])
				i++
				state = stateBlockComment
			case c == '"':
				state = stateString
				stringDelim = '"'
			case c == '\'' && singleQuoteIsString:
				state = stateString
				stringDelim = '\''
			case c == '`':
				state = stateBacktickString
			}
		}
	}

	return string(out)
}

// blank replaces c with a space, except newlines, which are preserved so
// line numbers computed from the stripped text stay correct.
func blank(c byte) byte {
	if c == '\n' {
		return '\n'
	}
	return ' '
}
