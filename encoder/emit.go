package encoder

import (
	"fmt"
	"io"
	"os"

	"github.com/rzdahan/asm150/parser"
)

// Emit writes the object file and, if applicable, the entry and external
// files for baseName (without extension), given the second pass's word
// stream and side tables.
func Emit(baseName string, icCode, dc int, words []Word, symbols *parser.SymbolTable, externals *parser.ExternalTable) error {
	if err := writeObjectFile(baseName+".ob", icCode, dc, words); err != nil {
		return err
	}

	entries := symbols.Entries()
	if len(entries) > 0 {
		if err := writeNameAddressFile(baseName+".ent", entrySymbolLines(entries)); err != nil {
			return err
		}
	}

	if externals.HasReferences() {
		if err := writeNameAddressFile(baseName+".ext", externalReferenceLines(externals)); err != nil {
			return err
		}
	}

	return nil
}

// writeObjectFile stages the word stream in a temp file first, since the
// header line needs IC_code and DC, and the second pass only learns the
// final word count after encoding every word; the temp file is removed
// on success.
func writeObjectFile(path string, icCode, dc int, words []Word) error {
	tmp, err := os.CreateTemp("", "asm150-*.ob")
	if err != nil {
		return fmt.Errorf("stage object file: %w", err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	for _, w := range words {
		if _, err := fmt.Fprintf(tmp, "%04d %05o\n", w.Address, w.Value); err != nil {
			tmp.Close()
			return fmt.Errorf("write object body: %w", err)
		}
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write object body: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()

	if _, err := fmt.Fprintf(out, "%d %d\n", icCode, dc); err != nil {
		return fmt.Errorf("write %s header: %w", path, err)
	}

	staged, err := os.Open(tmpPath)
	if err != nil {
		return fmt.Errorf("reopen staged object body: %w", err)
	}
	defer staged.Close()

	if _, err := io.Copy(out, staged); err != nil {
		return fmt.Errorf("copy staged object body into %s: %w", path, err)
	}
	return nil
}

type nameAddress struct {
	name    string
	address int
}

func entrySymbolLines(entries []*parser.Symbol) []nameAddress {
	lines := make([]nameAddress, len(entries))
	for i, s := range entries {
		lines[i] = nameAddress{s.Name, s.Address}
	}
	return lines
}

func externalReferenceLines(externals *parser.ExternalTable) []nameAddress {
	var lines []nameAddress
	for _, name := range externals.Names() {
		for _, addr := range externals.Addresses(name) {
			lines = append(lines, nameAddress{name, addr})
		}
	}
	return lines
}

func writeNameAddressFile(path string, lines []nameAddress) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	for _, l := range lines {
		if _, err := fmt.Fprintf(f, "%s %04d\n", l.name, l.address); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
