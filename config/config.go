package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds the assembler's configurable limits. Absent a config
// file, Default supplies the spec's literal constants. Only
// MaxLoggedErrors and MaxExternalRefs reach the assembler; MaxLineLength,
// MaxLabelLength and FirstInstructionAddr are loaded but have no effect,
// since the parser uses its compiled-in constants for those.
type Config struct {
	Limits struct {
		MaxLineLength        int `toml:"max_line_length"`
		MaxLabelLength       int `toml:"max_label_length"`
		MaxLoggedErrors      int `toml:"max_logged_errors"`
		MaxExternalRefs      int `toml:"max_external_refs_per_name"`
		FirstInstructionAddr int `toml:"first_instruction_address"`
	} `toml:"limits"`
}

// Default returns the configuration baked into the pedagogical machine's
// specification: IC starts at 100, lines are at most 80 characters,
// labels at most 31, the error log holds 100 entries, and each external
// name may be referenced up to 100 times.
func Default() *Config {
	cfg := &Config{}
	cfg.Limits.MaxLineLength = 80
	cfg.Limits.MaxLabelLength = 31
	cfg.Limits.MaxLoggedErrors = 100
	cfg.Limits.MaxExternalRefs = 100
	cfg.Limits.FirstInstructionAddr = 100
	return cfg
}

// Load reads path and overlays it on Default. A missing file is not an
// error: it simply means the defaults apply.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}
