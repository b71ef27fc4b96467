package assembler

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/rzdahan/asm150/config"
	"github.com/rzdahan/asm150/encoder"
	"github.com/rzdahan/asm150/parser"
)

// AssembleFile runs the full pipeline for one file: baseName names the
// source without its ".as" extension. opened reports whether the source
// file could be read at all; it is what main uses to decide the process
// exit code, independent of whether assembly itself succeeded. A nil cfg
// falls back to config.Default().
func AssembleFile(baseName string, cfg *config.Config) (ctx *Context, opened bool) {
	if cfg == nil {
		cfg = config.Default()
	}
	ctx = NewContext(baseName+".as", cfg)

	f, err := os.Open(ctx.Filename)
	if err != nil {
		ctx.Errors.Add(parser.FileInput, parser.Position{Filename: ctx.Filename},
			"cannot open file (make sure it ends with .as): %s", err)
		return ctx, false
	}
	lines, err := readLines(f)
	f.Close()
	if err != nil {
		ctx.Errors.Add(parser.FileInput, parser.Position{Filename: ctx.Filename}, "%s", err)
		return ctx, false
	}

	expanded, ok := parser.Preprocess(ctx.Filename, lines, ctx.Macros, ctx.Errors)
	if !ok {
		return ctx, true
	}

	intermediateName := baseName + ".am"
	if err := writeLines(intermediateName, expanded); err != nil {
		ctx.Errors.Add(parser.FileOutput, parser.Position{Filename: intermediateName}, "%s", err)
		return ctx, true
	}

	first := parser.FirstPass(intermediateName, expanded, ctx.Macros, ctx.Errors)
	ctx.Symbols = first.Symbols
	if !first.Succeeded {
		return ctx, true
	}

	second := encoder.SecondPass(intermediateName, expanded, ctx.Symbols, ctx.Errors, cfg.Limits.MaxExternalRefs)
	ctx.Externals = second.Externals
	if !second.Succeeded {
		return ctx, true
	}

	icCode := first.ICFinal - parser.FirstAddress
	if err := encoder.Emit(baseName, icCode, first.DC, second.Words, ctx.Symbols, ctx.Externals); err != nil {
		ctx.Errors.Add(parser.FileOutput, parser.Position{Filename: baseName}, "%s", err)
	}

	return ctx, true
}

func readLines(f *os.File) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", f.Name(), err)
	}
	return lines, nil
}

func writeLines(path string, lines []string) error {
	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer out.Close()
	if _, err := out.WriteString(strings.Join(lines, "\n")); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	if len(lines) > 0 {
		if _, err := out.WriteString("\n"); err != nil {
			return fmt.Errorf("write %s: %w", path, err)
		}
	}
	return nil
}
