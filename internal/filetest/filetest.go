// Package filetest provides golden-file comparison for generated LLVM IR
// text against a committed file: run with -test.update-golden once to
// record the expected output, then again normally to catch regressions.
package filetest

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/kylelemons/godebug/diff"
)

var updateGolden = flag.Bool("test.update-golden", false, "If set, writes actual output over the golden file instead of comparing against it.")

// DiffIR compares got against the golden file testdata/<name>.ir.golden,
// failing the test with a unified diff on mismatch. With -test.update-golden
// it (re)writes the golden file from got instead.
func DiffIR(t *testing.T, name, got string) {
	t.Helper()

	goldPath := filepath.Join("testdata", name+".ir.golden")
	if *updateGolden {
		if err := os.WriteFile(goldPath, []byte(got), 0o600); err != nil {
			t.Fatal(err)
		}
		return
	}

	wantb, err := os.ReadFile(goldPath)
	if err != nil {
		t.Fatalf("reading golden file %s: %s", goldPath, err)
	}
	want := string(wantb)
	if patch := diff.Diff(want, got); patch != "" {
		t.Errorf("IR mismatch for %s (run with -test.update-golden to accept):\n%s", name, patch)
	}
}
