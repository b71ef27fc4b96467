package parser

import (
	"strconv"
	"strings"

	"github.com/rzdahan/asm150/opcode"
)

// FirstAddress is the initial value of the instruction counter.
const FirstAddress = 100

// FirstPassResult carries the frozen counters the second pass needs.
type FirstPassResult struct {
	Symbols   *SymbolTable
	ICFinal   int // 100 + number of instruction words
	DC        int
	Succeeded bool
}

// FirstPass scans canonicalized intermediate lines, allocating code and
// data addresses, populating symbols, which must not already contain any
// name colliding with macros. It returns the frozen symbol table; the
// caller must not run the second pass when Succeeded is false.
func FirstPass(filename string, lines []string, macros *MacroTable, errs *ErrorLog) FirstPassResult {
	symbols := NewSymbolTable()
	ic := FirstAddress
	dc := 0
	ok := true

	for idx, raw := range lines {
		lineNo := idx + 1
		line := Canonicalize(raw)
		if line == "" {
			continue
		}
		if IsLineTooLong(line) {
			errs.Add(Syntax, Position{filename, lineNo}, "line exceeds %d characters", MaxLineLength)
			ok = false
			continue
		}

		label, operation, operands, perr := SplitStatement(line)
		if perr != "" {
			errs.Add(Syntax, Position{filename, lineNo}, "%s", perr)
			ok = false
			continue
		}
		if label != "" && operation != ".entry" && macros.Has(label) {
			errs.Add(SymbolError, Position{filename, lineNo}, "symbol %q collides with a macro name", label)
			ok = false
			continue
		}

		switch {
		case IsDirective(operation):
			switch operation {
			case ".data":
				count, derr := countDataValues(operands)
				if derr != "" {
					errs.Add(Syntax, Position{filename, lineNo}, "%s", derr)
					ok = false
					continue
				}
				if label != "" {
					if !defineSymbol(symbols, label, Data, dc, filename, lineNo, errs) {
						ok = false
					}
				}
				dc += count

			case ".string":
				if !ValidateString(operands) {
					errs.Add(Syntax, Position{filename, lineNo}, "invalid .string literal %q", operands)
					ok = false
					continue
				}
				if label != "" {
					if !defineSymbol(symbols, label, Data, dc, filename, lineNo, errs) {
						ok = false
					}
				}
				dc += len(StringContents(operands)) + 1

			case ".entry":
				// The label, if any, is ignored here; entry designation
				// happens in the second pass.

			case ".extern":
				names := splitExternList(operands)
				if len(names) == 0 {
					errs.Add(Syntax, Position{filename, lineNo}, "missing operand for .extern")
					ok = false
					continue
				}
				for _, name := range names {
					if !defineSymbol(symbols, name, ExternalSymbol, 0, filename, lineNo, errs) {
						ok = false
					}
				}
			}

		case opcode.IsMnemonic(operation):
			entry, _ := opcode.Lookup(operation)
			length, lerr := instructionLengthFromField(entry.Arity, operands)
			if lerr != "" {
				errs.Add(Syntax, Position{filename, lineNo}, "%s", lerr)
				ok = false
				continue
			}
			if label != "" {
				if !defineSymbol(symbols, label, Code, ic, filename, lineNo, errs) {
					ok = false
				}
			}
			ic += length

		default:
			errs.Add(Syntax, Position{filename, lineNo}, "unknown operation %q", operation)
			ok = false
		}
	}

	symbols.BackpatchDataAddresses(ic)

	return FirstPassResult{Symbols: symbols, ICFinal: ic, DC: dc, Succeeded: ok}
}

// defineSymbol wraps SymbolTable.Define, translating a redefinition error
// into a logged SYMBOL error.
func defineSymbol(symbols *SymbolTable, name string, kind SymbolKind, address int, filename string, lineNo int, errs *ErrorLog) bool {
	if err := symbols.Define(name, kind, address); err != nil {
		errs.Add(SymbolError, Position{filename, lineNo}, "%s", err)
		return false
	}
	return true
}

// SplitStatement extracts (label, operation, operands) from a canonical
// line; both passes use it so label-skipping stays identical between
// them. A non-empty perr means the label token was malformed.
func SplitStatement(line string) (label, operation, operands, perr string) {
	fields := strings.SplitN(line, " ", 2)
	first := fields[0]
	rest := ""
	if len(fields) == 2 {
		rest = fields[1]
	}

	if strings.HasSuffix(first, ":") {
		candidate := strings.TrimSuffix(first, ":")
		if !IsLabel(candidate) {
			return "", "", "", "illegal label " + strconv.Quote(candidate)
		}
		label = candidate
		fields = strings.SplitN(rest, " ", 2)
		first = fields[0]
		rest = ""
		if len(fields) == 2 {
			rest = fields[1]
		}
	}

	operation = first
	operands = strings.TrimSpace(rest)
	return
}

// countDataValues counts the comma-separated integers in a .data operand
// list, returning a non-empty perr for an empty or malformed list.
func countDataValues(operands string) (count int, perr string) {
	if operands == "" {
		return 0, "empty .data list"
	}
	values := strings.Split(operands, ",")
	for _, v := range values {
		v = strings.TrimSpace(v)
		if !isPlainInteger(v) {
			return 0, "invalid .data value " + strconv.Quote(v)
		}
	}
	return len(values), ""
}

// isPlainInteger reports whether v is a .data-style integer literal: an
// optional sign followed by a non-empty digit sequence, with no '#'
// prefix (that marker is reserved for instruction-operand immediates).
func isPlainInteger(v string) bool {
	if v == "" {
		return false
	}
	if v[0] == '+' || v[0] == '-' {
		v = v[1:]
	}
	if v == "" {
		return false
	}
	for i := 0; i < len(v); i++ {
		if v[i] < '0' || v[i] > '9' {
			return false
		}
	}
	return true
}

// splitExternList splits a comma-separated .extern operand list,
// trimming each name.
func splitExternList(operands string) []string {
	if operands == "" {
		return nil
	}
	parts := strings.Split(operands, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			names = append(names, p)
		}
	}
	return names
}

// instructionLengthFromField parses an instruction's operand field and
// computes its word length, returning a non-empty error on an arity
// mismatch.
func instructionLengthFromField(arity int, operands string) (int, string) {
	if operands == "" {
		length := InstructionLength(arity, 0, Absent, Absent)
		if length < 0 {
			return 0, "wrong number of operands"
		}
		return length, ""
	}
	source, target, extra := SplitOperands(operands)
	if extra != "" {
		return 0, "too many operands"
	}
	present := 0
	srcMode, tgtMode := Absent, Absent
	if source != "" {
		present++
		srcMode = DetermineMode(source)
	}
	if target != "" {
		present++
		tgtMode = DetermineMode(target)
	}
	length := InstructionLength(arity, present, srcMode, tgtMode)
	if length < 0 {
		return 0, "wrong number of operands"
	}
	return length, ""
}
