package pipeline

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/capegen-labs/capegen/internal/buildargs"
	"github.com/capegen-labs/capegen/internal/capes"
	"github.com/capegen-labs/capegen/internal/layout"
	"github.com/capegen-labs/capegen/internal/scaffold"
	"github.com/capegen-labs/capegen/internal/source"
	"github.com/capegen-labs/capegen/internal/toolchain"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const bannerWidth = 80

// Options configures a single run.
type Options struct {
	// SourcePath is the YAML source description.
	SourcePath string

	// Cwd must be the top of the gateware checkout. Defaults to os.Getwd.
	Cwd string

	Force        bool
	DryRun       bool
	SkipEnvCheck bool

	// Tool is the Libero executable (default "libero").
	Tool string

	// RepoName is the expected checkout directory name (default "gateware").
	RepoName string

	// ExtraCapes are accepted as templates in addition to the built-in capes.
	ExtraCapes []string

	// Env overrides the environment used by the toolchain checks.
	Env *toolchain.Env

	// Runner executes the design script. Defaults to a toolchain.Invoker.
	Runner toolchain.Runner

	Out io.Writer
	Log *zap.Logger
}

// Report summarizes a run.
type Report struct {
	RunID    string
	Plan     *layout.Plan
	Args     *buildargs.Args
	Scaffold *scaffold.Result

	// Head describes the gateware checkout, when it could be read.
	Head string
}

// Run executes the pipeline. In dry-run mode it stops after printing the plan
// and never touches the filesystem or the tool.
func Run(ctx context.Context, opts Options) (*Report, error) {
	opts = withDefaults(opts)
	out := opts.Out

	runID := uuid.NewString()
	log := opts.Log.With(zap.String("run_id", runID))
	report := &Report{RunID: runID}

	entry, err := source.Load(opts.SourcePath)
	if err != nil {
		return nil, err
	}
	log.Debug("loaded source description",
		zap.String("path", opts.SourcePath),
		zap.String("entry", entry.Key))

	resolver := &layout.Resolver{
		RepoName: opts.RepoName,
		Capes:    capes.NewRegistry(opts.ExtraCapes...),
	}
	plan, err := resolver.Resolve(opts.Cwd, entry, opts.Force)
	if err != nil {
		return nil, err
	}
	report.Plan = plan

	if head, err := layout.DescribeHead(plan.Layout.RepoRoot); err != nil {
		log.Debug("could not describe gateware HEAD", zap.Error(err))
	} else {
		report.Head = head
		log.Info("gateware checkout", zap.String("head", head))
	}

	builder := &buildargs.Builder{Out: out, Log: log}
	report.Args = builder.Build(plan.ProjectPath, plan.BuildOpts)

	if opts.DryRun {
		fmt.Fprintf(out, "Dry run, nothing changed:\n  %s\n", plan)
		return report, nil
	}

	if !opts.SkipEnvCheck {
		if err := checkEnvironment(opts); err != nil {
			return nil, err
		}
	}

	printBanner(out, "Initialize workspace")
	sc := &scaffold.Scaffolder{
		FS:  osfs.New(plan.Layout.CapeDir),
		Out: out,
		Log: log,
	}
	res, err := sc.Materialize(plan.Template, plan.NewCape, plan.Force)
	if err != nil {
		return nil, err
	}
	report.Scaffold = res

	printBanner(out, "Generate Libero project")
	req := toolchain.Request{
		Script: plan.Layout.Script,
		Args:   report.Args.String(),
		Dir:    plan.Layout.DesignDir,
	}
	runner := opts.Runner
	if runner == nil {
		runner = &toolchain.Invoker{Tool: opts.Tool, Stdout: out, Log: log}
	}
	if err := runner.Run(ctx, req); err != nil {
		return nil, err
	}

	fmt.Fprintln(out, "Finished")
	log.Info("build finished", zap.String("cape", plan.NewCape), zap.String("project", plan.ProjectPath))
	return report, nil
}

func withDefaults(opts Options) Options {
	if opts.Out == nil {
		opts.Out = os.Stdout
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}
	if opts.Cwd == "" {
		if wd, err := os.Getwd(); err == nil {
			opts.Cwd = wd
		}
	}
	if opts.Tool == "" {
		opts.Tool = "libero"
	}
	if opts.RepoName == "" {
		opts.RepoName = "gateware"
	}
	return opts
}

func checkEnvironment(opts Options) error {
	if opts.Env != nil {
		return opts.Env.Verify(opts.Tool)
	}
	return toolchain.CheckEnvironment(opts.Tool)
}

func printBanner(w io.Writer, title string) {
	rule := strings.Repeat("=", bannerWidth)
	pad := max((bannerWidth-len(title))/2, 0)
	fmt.Fprintf(w, "%s\n%s%s\n%s\n\n", rule, strings.Repeat(" ", pad), title, rule)
}
