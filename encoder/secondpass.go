package encoder

import (
	"strconv"
	"strings"

	"github.com/rzdahan/asm150/opcode"
	"github.com/rzdahan/asm150/parser"
)

// SecondPassResult is the word stream and side tables produced by the
// second pass, ready for the output emitter.
type SecondPassResult struct {
	Words     []Word
	Externals *parser.ExternalTable
	Succeeded bool
}

// SecondPass re-parses the intermediate lines with the same
// canonicalization as the first pass, resolving operands against symbols
// and encoding each instruction and data directive into its word stream.
// maxExternalRefs bounds the number of reference addresses recorded per
// external name, per config.Limits.MaxExternalRefs.
func SecondPass(filename string, lines []string, symbols *parser.SymbolTable, errs *parser.ErrorLog, maxExternalRefs int) SecondPassResult {
	externals := parser.NewExternalTableWithLimit(maxExternalRefs)
	var words []Word
	address := parser.FirstAddress
	ok := true

	for idx, raw := range lines {
		lineNo := idx + 1
		line := parser.Canonicalize(raw)
		if line == "" {
			continue
		}

		label, operation, operands, perr := parser.SplitStatement(line)
		_ = label // already validated and recorded by the first pass
		if perr != "" {
			continue
		}

		switch {
		case operation == ".data":
			values, derr := parseDataValues(operands)
			if derr {
				ok = false
				continue
			}
			ws := EncodeData(values, address)
			words = append(words, ws...)
			address += len(ws)

		case operation == ".string":
			if !parser.ValidateString(operands) {
				ok = false
				continue
			}
			ws := EncodeString(parser.StringContents(operands), address)
			words = append(words, ws...)
			address += len(ws)

		case operation == ".entry":
			name := strings.TrimSpace(operands)
			if name == "" {
				errs.Add(parser.Syntax, parser.Position{Filename: filename, Line: lineNo}, "missing operand for .entry")
				ok = false
				continue
			}
			if err := symbols.SetEntry(name); err != nil {
				errs.Add(parser.SymbolError, parser.Position{Filename: filename, Line: lineNo}, "%s", err)
				ok = false
			}

		case operation == ".extern":
			// already handled in the first pass

		case opcode.IsMnemonic(operation):
			source, target, _ := parser.SplitOperands(operands)
			pos := parser.Position{Filename: filename, Line: lineNo}
			ws, err := EncodeInstruction(operation, source, target, symbols, externals, address, errs, pos)
			if err != nil {
				errs.Add(parser.Syntax, parser.Position{Filename: filename, Line: lineNo}, "%s", err)
				ok = false
				continue
			}
			words = append(words, ws...)
			address += len(ws)
		}
	}

	return SecondPassResult{Words: words, Externals: externals, Succeeded: ok}
}

// parseDataValues parses a .data operand list already validated by the
// first pass; a parse failure here indicates a corrupted intermediate
// file.
func parseDataValues(operands string) ([]int, bool) {
	parts := strings.Split(operands, ",")
	values := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		v, err := strconv.Atoi(p)
		if err != nil {
			return nil, true
		}
		values = append(values, v)
	}
	return values, false
}
