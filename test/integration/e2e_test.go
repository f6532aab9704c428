//go:build integration

package integration_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/capegen-labs/capegen/internal/caperr"
	"github.com/capegen-labs/capegen/internal/pipeline"
)

// TestFullBuild runs the complete flow against a real checkout:
// load -> resolve -> args -> env check -> scaffold -> fake libero.
func TestFullBuild(t *testing.T) {
	env := setupTestEnv(t)
	src := writeSource(t, env, "MY_CAPE", "  build-opts:\n    version: 1.0\n    m2: none\n")

	var out bytes.Buffer
	report, err := pipeline.Run(context.Background(), pipeline.Options{
		SourcePath: src,
		Cwd:        env.RepoRoot,
		Out:        &out,
	})
	if err != nil {
		t.Fatalf("Run: %v\n%s", err, out.String())
	}

	if !strings.HasPrefix(report.Head, "master@") && !strings.HasPrefix(report.Head, "main@") {
		t.Errorf("Head = %q, want branch@sha", report.Head)
	}

	newCape := filepath.Join(env.CapeDir, "MY_CAPE")
	assertFileContains(t, filepath.Join(newCape, "HDL", "VERILOG_TEMPLATE.v"), "module MY_CAPE(")
	assertFileContains(t, filepath.Join(newCape, "HDL", "VERILOG_TEMPLATE.v"), "// VERILOG_TEMPLATE_END")
	assertFileContains(t, filepath.Join(newCape, "ADD_CAPE.tcl"), "CAPE/MY_CAPE/HDL.tcl")
	assertFileContains(t, filepath.Join(newCape, "ADD_CAPE.tcl"), "-component_name MY_CAPE")
	assertFileContains(t, filepath.Join(env.CapeDir, "VERILOG_TEMPLATE", "ADD_CAPE.tcl"), "-component_name VERILOG_TEMPLATE")

	project := filepath.Join(env.ProjectDir, "MY_CAPE")
	wantArgs := "SCRIPT_ARGS: ONLY_CREATE_DESIGN PROJECT_LOCATION:" + project +
		" PROG_EXPORT_PATH:" + project + " DESIGN_VERSION:1.0 M2_OPTION:NONE"
	assertFileContains(t, env.ToolLog, "sources/FPGA-design\n")
	assertFileContains(t, env.ToolLog, "SCRIPT:"+filepath.Join(env.RepoRoot, "sources", "FPGA-design", "BUILD_BVF_GATEWARE.tcl")+"\n")
	assertFileContains(t, env.ToolLog, wantArgs+"\n")

	printed := out.String()
	for _, want := range []string{
		"Script arguments: " + wantArgs,
		"Initialize workspace",
		"Cloning VERILOG_TEMPLATE, into MY_CAPE",
		"Generate Libero project",
		"Libero command: libero SCRIPT:",
		"Finished",
	} {
		if !strings.Contains(printed, want) {
			t.Errorf("output missing %q:\n%s", want, printed)
		}
	}
}

// TestRebuildReusesThenForces covers the second and third runs on the same
// checkout: without force the edited cape survives; with force it is replaced.
func TestRebuildReusesThenForces(t *testing.T) {
	env := setupTestEnv(t)
	src := writeSource(t, env, "MY_CAPE", "")
	run := func(force bool) {
		t.Helper()
		if _, err := pipeline.Run(context.Background(), pipeline.Options{
			SourcePath: src,
			Cwd:        env.RepoRoot,
			Force:      force,
			Out:        &bytes.Buffer{},
		}); err != nil {
			t.Fatalf("Run(force=%v): %v", force, err)
		}
	}

	run(false)
	extra := filepath.Join(env.CapeDir, "MY_CAPE", "NOTES.txt")
	writeFile(t, extra, "local notes\n")

	run(false)
	assertFileExists(t, extra)

	run(true)
	assertFileNotExists(t, extra)
	assertFileContains(t, filepath.Join(env.CapeDir, "MY_CAPE", "HDL", "VERILOG_TEMPLATE.v"), "module MY_CAPE(")
}

func TestBuildRejectsBuiltInName(t *testing.T) {
	env := setupTestEnv(t)
	src := writeSource(t, env, "ROBOTICS", "")

	_, err := pipeline.Run(context.Background(), pipeline.Options{
		SourcePath: src,
		Cwd:        env.RepoRoot,
		Out:        &bytes.Buffer{},
	})
	if !caperr.Is(err, caperr.KindSchema) {
		t.Fatalf("Run error = %v, want schema error", err)
	}
	if _, statErr := os.Stat(env.ToolLog); statErr == nil {
		t.Error("libero ran despite invalid input")
	}
}

func TestBuildOutsideCheckout(t *testing.T) {
	env := setupTestEnv(t)
	src := writeSource(t, env, "MY_CAPE", "")

	_, err := pipeline.Run(context.Background(), pipeline.Options{
		SourcePath: src,
		Cwd:        filepath.Dir(env.RepoRoot),
		Out:        &bytes.Buffer{},
	})
	if !caperr.Is(err, caperr.KindLayout) {
		t.Fatalf("Run error = %v, want layout error", err)
	}
}
