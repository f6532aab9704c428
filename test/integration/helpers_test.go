//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/capegen-labs/capegen/internal/layout"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// testEnv holds paths to an isolated gateware checkout and toolchain.
type testEnv struct {
	RepoRoot   string // <tmp>/gateware, a real git repository
	CapeDir    string // cape storage inside RepoRoot
	ProjectDir string // parent directory for generated Libero projects
	ToolLog    string // file the fake libero appends its arguments to
}

// setupTestEnv creates a committed gateware checkout with a VERILOG_TEMPLATE
// cape and puts a fake libero on PATH. HOME is isolated so user config does
// not leak into the run.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		RepoRoot:   filepath.Join(t.TempDir(), "gateware"),
		ProjectDir: t.TempDir(),
	}
	env.CapeDir = filepath.Join(env.RepoRoot, filepath.FromSlash(layout.CapeSubdir))

	writeFile(t, filepath.Join(env.RepoRoot, filepath.FromSlash(layout.DesignSubdir), layout.BuildScript), "# design script\n")
	writeFile(t, filepath.Join(env.CapeDir, "VERILOG_TEMPLATE", "ADD_CAPE.tcl"),
		"source script_support/components/CAPE/VERILOG_TEMPLATE/HDL.tcl\nsd_instantiate_component -component_name VERILOG_TEMPLATE\n")
	writeFile(t, filepath.Join(env.CapeDir, "VERILOG_TEMPLATE", "HDL", "VERILOG_TEMPLATE.v"),
		"module VERILOG_TEMPLATE(\n  input clk\n);\nendmodule // VERILOG_TEMPLATE_END\n")
	writeFile(t, filepath.Join(env.CapeDir, "ROBOTICS", "ADD_CAPE.tcl"), "# robotics\n")

	commitAll(t, env.RepoRoot)

	toolDir := t.TempDir()
	env.ToolLog = filepath.Join(toolDir, "libero.log")
	script := "#!/bin/sh\n" +
		"pwd >> " + env.ToolLog + "\n" +
		"for a in \"$@\"; do echo \"$a\" >> " + env.ToolLog + "; done\n"
	writeFile(t, filepath.Join(toolDir, "libero"), script)
	if err := os.Chmod(filepath.Join(toolDir, "libero"), 0755); err != nil {
		t.Fatalf("chmod libero: %v", err)
	}

	riscv := filepath.Join(t.TempDir(), "riscv-unknown-elf-gcc", "bin")
	t.Setenv("PATH", toolDir+string(os.PathListSeparator)+riscv+string(os.PathListSeparator)+os.Getenv("PATH"))
	t.Setenv("FPGENPROG", filepath.Join(toolDir, "fpgenprog"))
	t.Setenv("HOME", t.TempDir())

	return env
}

func commitAll(t *testing.T, dir string) {
	t.Helper()
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("git init %s: %v", dir, err)
	}
	wt, err := repo.Worktree()
	if err != nil {
		t.Fatalf("worktree: %v", err)
	}
	if err := wt.AddWithOptions(&git.AddOptions{All: true}); err != nil {
		t.Fatalf("git add: %v", err)
	}
	_, err = wt.Commit("import gateware", &git.CommitOptions{
		Author: &object.Signature{Name: "ci", Email: "ci@example.com", When: time.Unix(0, 0)},
	})
	if err != nil {
		t.Fatalf("git commit: %v", err)
	}
}

// writeSource writes a source description cloning VERILOG_TEMPLATE into
// capeName and returns its path.
func writeSource(t *testing.T, env *testEnv, capeName, buildOpts string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "my-cape.yaml")
	writeFile(t, path, `HSS:
  type: git
  link: https://git.beagleboard.org/beaglev-fire/hart-software-services.git
gateware:
  type: custom-source
  cape-template: VERILOG_TEMPLATE
  cape-name: `+capeName+`
  new-project-path: `+env.ProjectDir+"\n"+buildOpts)
	return path
}

// writeFile creates a file at the given path with the given content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
