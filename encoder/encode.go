package encoder

import (
	"fmt"

	"github.com/rzdahan/asm150/opcode"
	"github.com/rzdahan/asm150/parser"
)

// EncodeInstruction bit-packs one instruction into its word stream,
// starting at address. sourceTok and targetTok are the already-split
// operand tokens ("" meaning Absent). It records any external reference
// in externals, logging an Overflow error to errs at pos if a name's
// reference bound is exceeded, and returns an error if a Direct-mode
// operand names an unknown symbol, which halts this file's assembly per
// the encoding contract (the first pass's success is supposed to
// guarantee resolvable operands, so this indicates a corrupted
// intermediate file).
func EncodeInstruction(mnemonic string, sourceTok, targetTok string, symbols *parser.SymbolTable, externals *parser.ExternalTable, address int, errs *parser.ErrorLog, pos parser.Position) ([]Word, error) {
	entry, ok := opcode.Lookup(mnemonic)
	if !ok {
		return nil, fmt.Errorf("unknown mnemonic %q", mnemonic)
	}

	sourceMode := parser.Absent
	if sourceTok != "" {
		sourceMode = parser.DetermineMode(sourceTok)
	}
	targetMode := parser.Absent
	if targetTok != "" {
		targetMode = parser.DetermineMode(targetTok)
	}

	first := (entry.Code & 0xF) << 11
	if sourceMode != parser.Absent {
		first |= 1 << (7 + int(sourceMode))
	}
	if targetMode != parser.Absent {
		first |= 1 << (3 + int(targetMode))
	}
	first |= Absolute.bits()

	words := []Word{{Address: address, Value: mask15(first)}}

	if isRegisterMode(sourceMode) && isRegisterMode(targetMode) {
		srcReg, err := registerNumber(sourceTok)
		if err != nil {
			return nil, err
		}
		tgtReg, err := registerNumber(targetTok)
		if err != nil {
			return nil, err
		}
		word := (srcReg&0x7)<<6 | (tgtReg&0x7)<<3 | Absolute.bits()
		words = append(words, Word{Address: address + 1, Value: mask15(word)})
		return words, nil
	}

	offset := 1
	if sourceMode != parser.Absent {
		wordAddress := address + offset
		w, err := encodeOperand(sourceTok, sourceMode, symbols, externals, wordAddress, errs, pos)
		if err != nil {
			return nil, err
		}
		words = append(words, Word{Address: wordAddress, Value: mask15(w)})
		offset++
	}
	if targetMode != parser.Absent {
		wordAddress := address + offset
		w, err := encodeOperand(targetTok, targetMode, symbols, externals, wordAddress, errs, pos)
		if err != nil {
			return nil, err
		}
		words = append(words, Word{Address: wordAddress, Value: mask15(w)})
	}

	return words, nil
}

func isRegisterMode(m parser.AddressingMode) bool {
	return m == parser.DirectRegister || m == parser.IndirectRegister
}

// registerNumber extracts a register number from a DirectRegister or
// IndirectRegister token.
func registerNumber(tok string) (int, error) {
	if len(tok) >= 2 && tok[0] == '*' {
		tok = tok[1:]
	}
	if !parser.IsRegister(tok) {
		return 0, fmt.Errorf("invalid register operand %q", tok)
	}
	return parser.RegisterNumber(tok), nil
}

// encodeOperand builds the word for one operand that does not share a
// paired-register word (immediate, direct, or a lone register operand,
// whose number goes in bits 8..6). wordAddress is the
// address the emitted word will occupy; that is also where an external
// reference, if any, is recorded — the same address whether the operand
// is nominally source or target, since that only shifts with how many
// words precede it.
func encodeOperand(tok string, mode parser.AddressingMode, symbols *parser.SymbolTable, externals *parser.ExternalTable, wordAddress int, errs *parser.ErrorLog, pos parser.Position) (int, error) {
	switch mode {
	case parser.Immediate:
		value, err := parser.ParseNumber(tok)
		if err != nil {
			return 0, fmt.Errorf("invalid immediate operand %q: %w", tok, err)
		}
		return (value&0xFFF)<<3 | Absolute.bits(), nil

	case parser.Direct:
		sym, ok := symbols.Lookup(tok)
		if !ok {
			return 0, fmt.Errorf("unknown symbol %q", tok)
		}
		if sym.Kind == parser.ExternalSymbol {
			if !externals.Record(tok, wordAddress) {
				errs.Add(parser.Overflow, pos, "external symbol %q exceeds the maximum number of references", tok)
			}
			return External.bits(), nil
		}
		return (sym.Address&0xFFF)<<3 | Relocatable.bits(), nil

	case parser.IndirectRegister, parser.DirectRegister:
		reg, err := registerNumber(tok)
		if err != nil {
			return 0, err
		}
		return (reg&0x7)<<6 | Absolute.bits(), nil

	default:
		return 0, fmt.Errorf("unexpected addressing mode for operand %q", tok)
	}
}

// EncodeData packs a .data directive's comma-separated integers into one
// word per value, in order, starting at address.
func EncodeData(values []int, address int) []Word {
	words := make([]Word, len(values))
	for i, v := range values {
		words[i] = Word{Address: address + i, Value: mask15(v)}
	}
	return words
}

// EncodeString packs a .string directive's quoted contents into one word
// per character plus a zero terminator word.
func EncodeString(contents string, address int) []Word {
	words := make([]Word, 0, len(contents)+1)
	for i, r := range []byte(contents) {
		words = append(words, Word{Address: address + i, Value: mask15(int(r))})
	}
	words = append(words, Word{Address: address + len(contents), Value: 0})
	return words
}
