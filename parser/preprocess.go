package parser

import "strings"

// Preprocess expands macro invocations in source into the intermediate
// text consumed by both passes. It reads lines already split by the
// caller (one per raw source line, newline stripped) and returns the
// expanded line list.
//
// macros is populated with every "macr"/"endmacr" block found; it is
// retained by the caller past preprocessing so the first pass can check
// symbol/macro name disjointness.
//
// ok is false if any MACRO or SYNTAX error was logged, per the
// "intermediate file not produced" failure semantics: the caller must
// not proceed to the first pass.
func Preprocess(filename string, lines []string, macros *MacroTable, errs *ErrorLog) (expanded []string, ok bool) {
	failed := false
	expanded = make([]string, 0, len(lines))

	i := 0
	for i < len(lines) {
		lineNo := i + 1
		canonical := Canonicalize(lines[i])

		if IsLineTooLong(canonical) {
			errs.Add(Syntax, Position{filename, lineNo}, "line exceeds %d characters", MaxLineLength)
			failed = true
			i++
			continue
		}

		if rest, isOpen := cutPrefix(canonical, "macr"); isOpen {
			name := strings.TrimSpace(rest)
			if !IsValidMacroName(name) {
				errs.Add(MacroError, Position{filename, lineNo}, "invalid macro name %q", name)
				failed = true
				i++
				i = skipToEndmacr(lines, i)
				continue
			}
			body, next := captureMacroBody(lines, i+1)
			if err := macros.Define(name, body); err != nil {
				errs.Add(MacroError, Position{filename, lineNo}, "%s", err)
				failed = true
			}
			i = next
			continue
		}

		if canonical == "endmacr" {
			// A standalone endmacr, with no macr open to close, is
			// skipped rather than rejected.
			i++
			continue
		}

		if m, isInvocation := macros.Lookup(canonical); isInvocation {
			expanded = append(expanded, m.Lines...)
			i++
			continue
		}

		expanded = append(expanded, lines[i])
		i++
	}

	if failed {
		return nil, false
	}
	return expanded, true
}

// cutPrefix reports whether canonical begins with the word "macr"
// followed by whitespace, and if so returns the remainder.
func cutPrefix(canonical, keyword string) (rest string, ok bool) {
	if !strings.HasPrefix(canonical, keyword+" ") {
		return "", false
	}
	return canonical[len(keyword)+1:], true
}

// captureMacroBody reads raw lines, preserving their original formatting,
// until a canonical line equal to "endmacr" is seen. The endmacr line
// itself is consumed but not captured. It returns the captured lines and
// the index of the line following endmacr (or len(lines) if endmacr was
// never found).
func captureMacroBody(lines []string, start int) (body []string, next int) {
	i := start
	for i < len(lines) {
		if Canonicalize(lines[i]) == "endmacr" {
			return body, i + 1
		}
		body = append(body, lines[i])
		i++
	}
	return body, i
}

// skipToEndmacr discards a malformed macro definition's body so parsing
// can resume after it, without capturing anything.
func skipToEndmacr(lines []string, start int) int {
	_, next := captureMacroBody(lines, start)
	return next
}
