package gen_test

import (
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func repoRoot(t *testing.T) string {
	t.Helper()

	root, err := filepath.Abs(filepath.Join("..", ".."))
	if err != nil {
		t.Fatalf("repo root: %v", err)
	}

	return root
}

// runGenerator runs the CLI from the repository root and fails the test with
// its output on error.
func runGenerator(t *testing.T, args ...string) string {
	t.Helper()

	cmd := exec.CommandContext(t.Context(), "go", append([]string{"run", "./cmd/starter-generator"}, args...)...)
	cmd.Dir = repoRoot(t)

	b, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("starter-generator %v failed: %v\n%s", args, err, string(b))
	}

	return string(b)
}

// compilePackage builds pkg and its tests without running them.
func compilePackage(t *testing.T, pkg string, dumpDir string) {
	t.Helper()

	build := exec.CommandContext(t.Context(), "go", "test", pkg, "-run", "^$", "-count=1")
	build.Dir = repoRoot(t)

	b, err := build.CombinedOutput()
	if err == nil {
		return
	}

	// Best-effort: dump generated files for easier debugging.
	if entries, readErr := os.ReadDir(dumpDir); readErr == nil {
		for _, e := range entries {
			if e.IsDir() || filepath.Ext(e.Name()) != ".go" {
				continue
			}

			p := filepath.Join(dumpDir, e.Name())
			if fb, rerr := os.ReadFile(p); rerr == nil {
				t.Logf("generated file %s:\n%s", p, string(fb))
			}
		}
	}

	t.Fatalf("compile failed: %v\n%s", err, string(b))
}
