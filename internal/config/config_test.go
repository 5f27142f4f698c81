package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultValues(t *testing.T) {
	c := Default()
	if c.Diagnostics.Max != 64 {
		t.Errorf("Diagnostics.Max = %d, want 64", c.Diagnostics.Max)
	}
	if c.REPL.Color != "auto" {
		t.Errorf("REPL.Color = %q, want %q", c.REPL.Color, "auto")
	}
	if c.GC.Stress {
		t.Error("GC.Stress should default to false")
	}
}

func TestLoadOptionalMissingFileReturnsDefault(t *testing.T) {
	c, err := LoadOptional(filepath.Join(t.TempDir(), "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("LoadOptional: %v", err)
	}
	if c != Default() {
		t.Errorf("got %+v, want Default()", c)
	}
}

func TestLoadOverridesOnlySpecifiedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".loxvmrc")
	contents := `
[gc]
stress = true

[diagnostics]
max = 8
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !c.GC.Stress {
		t.Error("GC.Stress should be true from file")
	}
	if c.Diagnostics.Max != 8 {
		t.Errorf("Diagnostics.Max = %d, want 8", c.Diagnostics.Max)
	}
	if c.REPL.Color != "auto" {
		t.Errorf("REPL.Color = %q, want default %q to survive an unset section", c.REPL.Color, "auto")
	}
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".loxvmrc")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected a parse error for malformed TOML")
	}
}
