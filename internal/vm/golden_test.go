package vm

import (
	"bytes"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"loxvm/internal/source"
)

// repoRoot locates the module root from this file's own path, the way the
// teacher lineage's VM golden tests find testdata without depending on the
// test runner's working directory.
func repoRoot(t *testing.T) string {
	t.Helper()
	_, thisFile, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("runtime.Caller failed")
	}
	// internal/vm/golden_test.go -> repo root
	return filepath.Clean(filepath.Join(filepath.Dir(thisFile), "..", ".."))
}

// TestGoldenPrograms runs every testdata/*.lox program end to end and
// compares captured stdout against its .out file, and captured stderr
// against its .err file when one exists.
func TestGoldenPrograms(t *testing.T) {
	dir := filepath.Join(repoRoot(t), "testdata")
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}

	for _, ent := range entries {
		if ent.IsDir() || !strings.HasSuffix(ent.Name(), ".lox") {
			continue
		}
		name := strings.TrimSuffix(ent.Name(), ".lox")
		t.Run(name, func(t *testing.T) {
			src, err := os.ReadFile(filepath.Join(dir, name+".lox"))
			if err != nil {
				t.Fatalf("read %s.lox: %v", name, err)
			}

			v := New()
			var out, errOut bytes.Buffer
			v.Stdout = &out
			v.Stderr = &errOut

			fs := source.NewFileSet()
			id := fs.AddVirtual(name+".lox", src)
			v.Interpret(fs, id)

			if wantOut, err := os.ReadFile(filepath.Join(dir, name+".out")); err == nil {
				if out.String() != string(wantOut) {
					t.Errorf("stdout mismatch:\nwant:\n%s\ngot:\n%s", wantOut, out.String())
				}
			}

			if wantErr, err := os.ReadFile(filepath.Join(dir, name+".err")); err == nil {
				if errOut.String() != string(wantErr) {
					t.Errorf("stderr mismatch:\nwant:\n%s\ngot:\n%s", wantErr, errOut.String())
				}
			}
		})
	}
}
