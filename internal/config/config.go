// Package config handles parsing and writing of syncer configuration files (.syncer.toml).
package config

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/invopop/jsonschema"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/bolasblack/syncer/internal/util"
)

// Defaults holds flag values applied when the command line does not set them.
type Defaults struct {
	Progress        bool `toml:"progress,omitempty" json:"progress,omitempty" jsonschema:"description=Pass --progress by default"`
	PartialProgress bool `toml:"partial_progress,omitempty" json:"partial_progress,omitempty" jsonschema:"description=Pass -P (--partial --progress) by default"`
	ChangeSummary   bool `toml:"change_summary,omitempty" json:"change_summary,omitempty" jsonschema:"description=Pass -i (itemized change summary) by default"`
}

// ExitCodes is the set of exit statuses treated as success.
type ExitCodes []int

// JSONSchema implements jsonschema.JSONSchemer: a single code or a list of
// codes, each given as an integer or a numeric string.
func (ExitCodes) JSONSchema() *jsonschema.Schema {
	code := &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			{Type: "integer"},
			{Type: "string", Pattern: `^\s*-?[0-9]+\s*$`},
		},
	}
	return &jsonschema.Schema{
		OneOf: []*jsonschema.Schema{
			code,
			{Type: "array", Items: code},
		},
		Description: "Exit statuses of the sync tool treated as success (default 0)",
	}
}

// Config represents the syncer configuration (after processing).
type Config struct {
	Executable        string    `toml:"executable,omitempty" json:"executable,omitempty" jsonschema:"description=Sync tool to execute (default rsync)"`
	Output            string    `toml:"output,omitempty" json:"output,omitempty" jsonschema:"description=Path of the JSON result file (default output.txt)"`
	ExpectedExitCodes ExitCodes `toml:"expected_exit_codes,omitempty" json:"expected_exit_codes,omitempty"`
	RemoteShell       string    `toml:"remote_shell,omitempty" json:"remote_shell,omitempty" jsonschema:"description=Remote shell command used for -e (default ssh)"`
	Defaults          Defaults  `toml:"defaults,omitempty" json:"defaults,omitempty" jsonschema:"description=Default transfer flags"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Executable:        util.DefaultExecutable,
		Output:            util.DefaultOutputPath,
		ExpectedExitCodes: ExitCodes{0},
	}
}

// rawConfig is an intermediate type for decoding TOML with flexible exit codes.
type rawConfig struct {
	Executable        string   `toml:"executable,omitempty"`
	Output            string   `toml:"output,omitempty"`
	ExpectedExitCodes any      `toml:"expected_exit_codes,omitempty"`
	RemoteShell       string   `toml:"remote_shell,omitempty"`
	Defaults          Defaults `toml:"defaults,omitempty"`
}

// Parse decodes TOML content and applies defaults for missing fields.
func Parse(data []byte) (Config, error) {
	var raw rawConfig
	if err := toml.Unmarshal(data, &raw); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	codes, err := util.ParseExitCodes(raw.ExpectedExitCodes)
	if err != nil {
		return Config{}, fmt.Errorf("expected_exit_codes: %w", err)
	}

	cfg := Config{
		Executable:        raw.Executable,
		Output:            raw.Output,
		ExpectedExitCodes: codes,
		RemoteShell:       raw.RemoteShell,
		Defaults:          raw.Defaults,
	}
	cfg.applyDefaults()
	return cfg, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()
	if c.Executable == "" {
		c.Executable = defaults.Executable
	}
	if c.Output == "" {
		c.Output = defaults.Output
	}
	if len(c.ExpectedExitCodes) == 0 {
		c.ExpectedExitCodes = defaults.ExpectedExitCodes
	}
}

// LoadConfig reads and parses a configuration file from the given path.
// The returned error satisfies errors.Is(err, fs.ErrNotExist) when the file is missing.
func LoadConfig(fsys afero.Fs, path string) (Config, error) {
	data, err := afero.ReadFile(fsys, path)
	if err != nil {
		return Config{}, err
	}
	return Parse(data)
}

// LoadConfigOptional loads path, falling back to DefaultConfig when the file
// does not exist. The bool reports whether a file was read.
func LoadConfigOptional(fsys afero.Fs, path string) (Config, bool, error) {
	cfg, err := LoadConfig(fsys, path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return DefaultConfig(), false, nil
		}
		return Config{}, false, fmt.Errorf("failed to load config %s: %w", path, err)
	}
	return cfg, true, nil
}

// SchemaComment is the TOML comment that references the JSON Schema for editor autocomplete.
const SchemaComment = "#:schema https://raw.githubusercontent.com/bolasblack/syncer/refs/heads/master/syncer-config.schema.json\n\n"

// SaveConfig writes the configuration to the given path with schema comment header.
func SaveConfig(fsys afero.Fs, path string, cfg Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	return afero.WriteFile(fsys, path, append([]byte(SchemaComment), data...), 0o644)
}
