// Package filetest provides golden-file assertions for loxen program
// fixtures under testdata/: a .lox source file paired with a .out file
// (expected stdout) and an .err file (expected stderr).
package filetest

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/diff"
)

var updateGoldens = flag.Bool("test.update-goldens", false, "write actual output over the golden .out/.err files instead of comparing")

// SourceFiles returns the .lox fixtures in dir.
func SourceFiles(t *testing.T, dir string) []os.DirEntry {
	t.Helper()
	dents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var lox []os.DirEntry
	for _, d := range dents {
		if d.Type().IsRegular() && filepath.Ext(d.Name()) == ".lox" {
			lox = append(lox, d)
		}
	}
	return lox
}

// DiffStdout compares got against name's golden .out file.
func DiffStdout(t *testing.T, dir, name, got string) {
	t.Helper()
	diffOrUpdate(t, "stdout", filepath.Join(dir, name+".out"), got)
}

// DiffStderr compares got against name's golden .err file.
func DiffStderr(t *testing.T, dir, name, got string) {
	t.Helper()
	diffOrUpdate(t, "stderr", filepath.Join(dir, name+".err"), got)
}

func diffOrUpdate(t *testing.T, label, goldFile, got string) {
	t.Helper()

	if *updateGoldens {
		if err := os.WriteFile(goldFile, []byte(got), 0o600); err != nil {
			t.Fatal(err)
		}
		return
	}

	wantb, err := os.ReadFile(goldFile)
	if err != nil && !os.IsNotExist(err) {
		t.Fatal(err)
	}
	want := string(wantb)
	if patch := diff.Diff(want, got); patch != "" {
		t.Errorf("%s mismatch for %s:\n%s", label, goldFile, patch)
	}
}
