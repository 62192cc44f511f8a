// Package config handles irepgen.toml generator configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"

	"github.com/chazu/irepgen/codegen"
)

// FileName is the name of the configuration file.
const FileName = "irepgen.toml"

// Config represents an irepgen.toml file.
type Config struct {
	Codegen Codegen `toml:"codegen"`
	Log     Log     `toml:"log"`

	// Dir is the directory containing the irepgen.toml file (set at load time).
	Dir string `toml:"-"`
}

// Codegen configures code generation.
type Codegen struct {
	NoOptimize bool `toml:"no-optimize"`
	NoExtOps   bool `toml:"no-ext-ops"`
	MaxDepth   int  `toml:"max-depth"`
}

// Log configures logging.
type Log struct {
	Verbosity int    `toml:"verbosity"`
	File      string `toml:"file"`
}

// Default returns the configuration used when no irepgen.toml exists.
func Default() *Config {
	return &Config{
		Codegen: Codegen{MaxDepth: codegen.DefaultMaxDepth},
	}
}

// Load parses an irepgen.toml file from the given directory.
func Load(dir string) (*Config, error) {
	path := filepath.Join(dir, FileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c := Default()
	if err := toml.Unmarshal(data, c); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}

	c.Dir, err = filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("cannot resolve path %s: %w", dir, err)
	}

	if c.Codegen.MaxDepth <= 0 {
		return nil, fmt.Errorf("%s: max-depth must be positive, got %d", path, c.Codegen.MaxDepth)
	}
	if c.Log.File != "" && !filepath.IsAbs(c.Log.File) {
		c.Log.File = filepath.Join(c.Dir, c.Log.File)
	}
	return c, nil
}

// FindAndLoad walks up from startDir to find an irepgen.toml file,
// then loads and returns it. Returns nil if no file is found.
func FindAndLoad(startDir string) (*Config, error) {
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return nil, err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, FileName)); err == nil {
			return Load(dir)
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return nil, nil
		}
		dir = parent
	}
}

// Options returns the code generator options.
func (c *Config) Options() codegen.Options {
	return codegen.Options{
		NoOptimize: c.Codegen.NoOptimize,
		NoExtOps:   c.Codegen.NoExtOps,
		MaxDepth:   c.Codegen.MaxDepth,
	}
}

// ConfigureLogging applies the [log] table to the process-wide logger.
func (c *Config) ConfigureLogging() {
	var path *string
	if c.Log.File != "" {
		path = &c.Log.File
	}
	commonlog.Configure(c.Log.Verbosity, path)
}
