package maincmd_test

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mna/mainer"

	"github.com/loxenlang/loxen/internal/filetest"
	"github.com/loxenlang/loxen/internal/maincmd"
)

// TestGoldenScripts runs every .lox fixture under testdata/ through the file
// runner and diffs its stdout/stderr against the matching .out/.err golden
// files. Run with -test.update-goldens to rewrite them after an intentional
// behavior change.
func TestGoldenScripts(t *testing.T) {
	const dir = "testdata"
	for _, d := range filetest.SourceFiles(t, dir) {
		name := strings.TrimSuffix(d.Name(), ".lox")
		t.Run(name, func(t *testing.T) {
			var out, errs bytes.Buffer
			sio := mainer.Stdio{Stdout: &out, Stderr: &errs}
			c := &maincmd.Cmd{}
			c.Main([]string{"loxen", filepath.Join(dir, d.Name())}, sio)

			filetest.DiffStdout(t, dir, name, out.String())
			filetest.DiffStderr(t, dir, name, errs.String())
		})
	}
}
