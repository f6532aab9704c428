package toolchain

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/capegen-labs/capegen/internal/caperr"
)

// Environment requirements of the Libero flow.
const (
	FPGenProgEnv = "FPGENPROG"
	RISCVMarker  = "riscv-unknown-elf-gcc"
)

// Env abstracts process environment lookups.
type Env struct {
	LookPath func(file string) (string, error)
	Getenv   func(key string) string
}

// OSEnv reads the real process environment.
func OSEnv() Env {
	return Env{LookPath: exec.LookPath, Getenv: os.Getenv}
}

// Check is the outcome of a single environment check.
type Check struct {
	Name   string
	OK     bool
	Detail string
}

// Checks runs every environment check for tool and returns all results.
func (e Env) Checks(tool string) []Check {
	checks := make([]Check, 0, 3)

	if path, err := e.LookPath(tool); err != nil {
		checks = append(checks, Check{Name: tool, Detail: fmt.Sprintf("%s not found in PATH", tool)})
	} else {
		checks = append(checks, Check{Name: tool, OK: true, Detail: fmt.Sprintf("%s found at %s", tool, path)})
	}

	if v := e.Getenv(FPGenProgEnv); v == "" {
		checks = append(checks, Check{Name: FPGenProgEnv, Detail: fmt.Sprintf(
			"%s environment variable not set; point it to the FPGENPROG executable", FPGenProgEnv)})
	} else {
		checks = append(checks, Check{Name: FPGenProgEnv, OK: true, Detail: fmt.Sprintf("%s=%s", FPGenProgEnv, v)})
	}

	if strings.Contains(e.Getenv("PATH"), RISCVMarker) {
		checks = append(checks, Check{Name: RISCVMarker, OK: true, Detail: "RISC-V toolchain is in PATH"})
	} else {
		checks = append(checks, Check{Name: RISCVMarker, Detail: "the path to the RISC-V toolchain needs to be set in PATH"})
	}

	return checks
}

// Verify returns the first failed check for tool as an environment error.
func (e Env) Verify(tool string) error {
	for _, c := range e.Checks(tool) {
		if !c.OK {
			return caperr.New(caperr.KindEnvironment, "%s", c.Detail)
		}
	}
	return nil
}

// PrintChecks writes one status line per check.
func PrintChecks(w io.Writer, checks []Check) {
	fmt.Fprintln(w, "Toolchain check:")
	for _, c := range checks {
		if c.OK {
			fmt.Fprintf(w, "  [ OK ] %s\n", c.Detail)
		} else {
			fmt.Fprintf(w, "  [MISS] %s\n", c.Detail)
		}
	}
}

// CheckEnvironment verifies the real process environment for tool.
func CheckEnvironment(tool string) error {
	return OSEnv().Verify(tool)
}
