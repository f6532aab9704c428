package toolchain

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/capegen-labs/capegen/internal/caperr"
	"go.uber.org/zap"
)

// Request describes one run of the design script.
type Request struct {
	// Script is the absolute path of BUILD_BVF_GATEWARE.tcl.
	Script string

	// Args is the SCRIPT_ARGS string. It is passed as one argument.
	Args string

	// Dir is the working directory for the tool.
	Dir string
}

// Runner executes a design script request.
type Runner interface {
	Run(ctx context.Context, req Request) error
}

// Invoker runs the Libero executable.
type Invoker struct {
	// Tool is the executable name or path (e.g., "libero").
	Tool string

	// Stdout and Stderr default to os.Stdout/os.Stderr.
	Stdout io.Writer
	Stderr io.Writer

	Log *zap.Logger
}

// CommandLine renders the command the way a shell user would type it.
func (i *Invoker) CommandLine(req Request) string {
	return fmt.Sprintf("%s SCRIPT:%s \"%s\"", i.Tool, req.Script, req.Args)
}

// Run executes `<tool> SCRIPT:<script> <args>` in req.Dir and streams its
// output. A non-zero exit status is returned as a tool error.
func (i *Invoker) Run(ctx context.Context, req Request) error {
	log := i.Log
	if log == nil {
		log = zap.NewNop()
	}
	stdout := i.Stdout
	if stdout == nil {
		stdout = os.Stdout
	}
	stderr := i.Stderr
	if stderr == nil {
		stderr = os.Stderr
	}

	bin, err := exec.LookPath(i.Tool)
	if err != nil {
		return caperr.Wrap(caperr.KindEnvironment, err, "%s not found in PATH", i.Tool)
	}

	fmt.Fprintf(stdout, "Libero command: %s\n", i.CommandLine(req))

	cmd := exec.CommandContext(ctx, bin, "SCRIPT:"+req.Script, req.Args)
	cmd.Dir = req.Dir
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	log.Debug("starting tool", zap.String("bin", bin), zap.String("dir", req.Dir))
	err = cmd.Run()
	if err == nil {
		return nil
	}

	if ctx.Err() != nil {
		return caperr.Wrap(caperr.KindTool, ctx.Err(), "%s interrupted", i.Tool)
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return caperr.New(caperr.KindTool, "%s exited with status %d", i.Tool, exitErr.ExitCode())
	}
	return caperr.Wrap(caperr.KindTool, err, "executing %s", i.Tool)
}
