// Command asm150 assembles source files for the pedagogical 15-bit
// word-addressed machine, producing .ob, .ent, and .ext output files
// alongside each input.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/rzdahan/asm150/assembler"
	"github.com/rzdahan/asm150/config"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a TOML config file overriding the default limits")
		maxErrors  = flag.Int("max-errors", 0, "override the error log capacity (0 keeps the config/default value)")
		verbose    = flag.Bool("verbose", false, "print a line for each file as it finishes")
	)
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "usage: %s [flags] file [file ...]\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "each file is given without its .as extension\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "asm150: %s\n", err)
		os.Exit(1)
	}
	if *maxErrors > 0 {
		cfg.Limits.MaxLoggedErrors = *maxErrors
	}

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	anyOpened := false
	for _, baseName := range args {
		ctx, opened := assembler.AssembleFile(baseName, cfg)
		if opened {
			anyOpened = true
		}
		if ctx.Errors.HasErrors() {
			fmt.Fprintf(os.Stderr, "%s: assembly failed\n", baseName)
			ctx.Errors.WriteSummary(os.Stderr)
			continue
		}
		if *verbose {
			fmt.Fprintf(os.Stdout, "%s: assembled ok\n", baseName)
		}
	}

	if !anyOpened {
		os.Exit(1)
	}
}
