package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/chazu/irepgen/codegen"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
[codegen]
no-optimize = true
no-ext-ops = true
max-depth = 64

[log]
verbosity = 1
file = "gen.log"
`)

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if !c.Codegen.NoOptimize {
		t.Error("no-optimize = false, want true")
	}
	if !c.Codegen.NoExtOps {
		t.Error("no-ext-ops = false, want true")
	}
	if c.Codegen.MaxDepth != 64 {
		t.Errorf("max-depth = %d, want 64", c.Codegen.MaxDepth)
	}
	if c.Log.Verbosity != 1 {
		t.Errorf("verbosity = %d, want 1", c.Log.Verbosity)
	}
	if want := filepath.Join(c.Dir, "gen.log"); c.Log.File != want {
		t.Errorf("log file = %q, want %q", c.Log.File, want)
	}

	opts := c.Options()
	if !opts.NoOptimize || !opts.NoExtOps || opts.MaxDepth != 64 {
		t.Errorf("Options() = %+v", opts)
	}
}

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "[log]\nverbosity = 0\n")

	c, err := Load(dir)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if c.Codegen.MaxDepth != codegen.DefaultMaxDepth {
		t.Errorf("max-depth = %d, want %d", c.Codegen.MaxDepth, codegen.DefaultMaxDepth)
	}
	if c.Codegen.NoOptimize || c.Codegen.NoExtOps {
		t.Errorf("codegen = %+v, want zero flags", c.Codegen)
	}
	if c.Log.File != "" {
		t.Errorf("log file = %q, want empty", c.Log.File)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "[codegen\n"},
		{"bad type", "[codegen]\nmax-depth = \"deep\"\n"},
		{"negative depth", "[codegen]\nmax-depth = -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeConfig(t, dir, tt.content)
			if _, err := Load(dir); err == nil {
				t.Error("expected error")
			}
		})
	}

	if _, err := Load(t.TempDir()); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestFindAndLoad(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, "[codegen]\nmax-depth = 32\n")
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	c, err := FindAndLoad(nested)
	if err != nil {
		t.Fatalf("FindAndLoad failed: %v", err)
	}
	if c == nil {
		t.Fatal("FindAndLoad returned nil")
	}
	if c.Codegen.MaxDepth != 32 {
		t.Errorf("max-depth = %d, want 32", c.Codegen.MaxDepth)
	}
	absRoot, _ := filepath.Abs(root)
	if c.Dir != absRoot {
		t.Errorf("dir = %q, want %q", c.Dir, absRoot)
	}
}

func TestDefaultConfigureLogging(t *testing.T) {
	c := Default()
	c.Log.Verbosity = -4
	c.ConfigureLogging()
	if opts := c.Options(); opts.MaxDepth != codegen.DefaultMaxDepth {
		t.Errorf("max-depth = %d, want %d", opts.MaxDepth, codegen.DefaultMaxDepth)
	}
}
