// Package assembler ties the macro preprocessor, first pass, second
// pass, and output emitter together into a per-file pipeline.
package assembler

import (
	"github.com/rzdahan/asm150/config"
	"github.com/rzdahan/asm150/parser"
)

// Context owns the error log, macro table, symbol table, and external
// table for one file's pipeline run. Re-expressing the original's
// process-wide mutable tables as an explicit, per-file value makes each
// file's run independently testable and keeps one file's failures from
// leaking into the next.
type Context struct {
	Filename  string
	Errors    *parser.ErrorLog
	Macros    *parser.MacroTable
	Symbols   *parser.SymbolTable
	Externals *parser.ExternalTable
}

// NewContext returns a Context for filename with a fresh error log, bounded
// by cfg.Limits.MaxLoggedErrors, and an empty macro table. Symbols and
// Externals are left nil; AssembleFile fills them in from the first and
// second pass. A nil cfg falls back to config.Default().
func NewContext(filename string, cfg *config.Config) *Context {
	if cfg == nil {
		cfg = config.Default()
	}
	return &Context{
		Filename: filename,
		Errors:   parser.NewErrorLogWithLimit(cfg.Limits.MaxLoggedErrors),
		Macros:   parser.NewMacroTable(),
	}
}
