package parser

import (
	"strconv"
	"strings"

	"github.com/rzdahan/asm150/opcode"
)

// MaxLineLength is the canonical-form length limit; a longer line is a
// Syntax error.
const MaxLineLength = 80

// MaxLabelLength is the longest a label name may be.
const MaxLabelLength = 31

// Canonicalize applies the line-canonicalization pipeline used by both
// passes: strip any comment, then collapse whitespace runs to single
// spaces and remove whitespace adjacent to commas. It does not enforce
// the length limit; callers check that separately with IsLineTooLong.
func Canonicalize(line string) string {
	return collapseWhitespace(stripComment(line))
}

// stripComment truncates line at the first ';'.
func stripComment(line string) string {
	if i := strings.IndexByte(line, ';'); i >= 0 {
		return line[:i]
	}
	return line
}

// collapseWhitespace collapses runs of whitespace to a single space, trims
// the ends, and removes whitespace immediately adjacent to commas.
func collapseWhitespace(line string) string {
	var b strings.Builder
	inSpace := false
	for _, r := range line {
		if r == ' ' || r == '\t' {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	collapsed := b.String()

	collapsed = strings.ReplaceAll(collapsed, " ,", ",")
	collapsed = strings.ReplaceAll(collapsed, ", ", ",")
	return strings.TrimSpace(collapsed)
}

// IsLineTooLong reports whether a canonical line exceeds MaxLineLength.
func IsLineTooLong(canonical string) bool {
	return len(canonical) > MaxLineLength
}

// IsLabel reports whether s is a valid label name: non-empty, at most
// MaxLabelLength characters, starting with an ASCII letter, the rest
// alphanumeric, and not a register or mnemonic name.
func IsLabel(s string) bool {
	if s == "" || len(s) > MaxLabelLength {
		return false
	}
	if !isAlpha(s[0]) {
		return false
	}
	for i := 1; i < len(s); i++ {
		if !isAlphaNumeric(s[i]) {
			return false
		}
	}
	if IsRegister(s) || opcode.IsMnemonic(s) {
		return false
	}
	return true
}

var directiveNames = map[string]bool{
	".data":   true,
	".string": true,
	".entry":  true,
	".extern": true,
}

// IsDirective reports whether s is one of the four directive keywords.
func IsDirective(s string) bool {
	return directiveNames[s]
}

// IsRegister reports whether s names a register: exactly 2 characters,
// 'r' followed by a digit 0..7.
func IsRegister(s string) bool {
	if len(s) != 2 || s[0] != 'r' {
		return false
	}
	return s[1] >= '0' && s[1] <= '7'
}

// RegisterNumber extracts the register number from a token already
// validated by IsRegister.
func RegisterNumber(s string) int {
	return int(s[1] - '0')
}

// IsNumber reports whether s is an optionally '#'-prefixed, optionally
// signed, non-empty decimal digit sequence.
func IsNumber(s string) bool {
	if s == "" {
		return false
	}
	if s[0] == '#' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	if s[0] == '+' || s[0] == '-' {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// ParseNumber parses a token already validated by IsNumber, stripping a
// leading '#' if present.
func ParseNumber(s string) (int, error) {
	s = strings.TrimPrefix(s, "#")
	return strconv.Atoi(s)
}

// ValidateString reports whether s is a properly quoted string literal:
// length at least 2, starting and ending with '"', with no interior '"'.
func ValidateString(s string) bool {
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return false
	}
	interior := s[1 : len(s)-1]
	return !strings.Contains(interior, `"`)
}

// StringContents returns the characters between the quotes of a literal
// already validated by ValidateString.
func StringContents(s string) string {
	return s[1 : len(s)-1]
}

func isAlpha(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func isAlphaNumeric(b byte) bool {
	return isAlpha(b) || (b >= '0' && b <= '9')
}

// isReservedWord reports whether name collides with a mnemonic, register,
// or directive and so cannot be used as a symbol or macro name.
func isReservedWord(name string) bool {
	return opcode.IsMnemonic(name) || IsRegister(name) || IsDirective(name)
}
