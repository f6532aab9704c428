package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/capegen-labs/capegen/internal/caperr"
	"github.com/capegen-labs/capegen/internal/capes"
	"github.com/capegen-labs/capegen/internal/config"
	"github.com/capegen-labs/capegen/internal/layout"
	"github.com/capegen-labs/capegen/internal/toolchain"
	"github.com/spf13/cobra"
)

var doctorSkipRepo bool

func init() {
	doctorCmd.Flags().BoolVar(&doctorSkipRepo, "skip-repo", false, "Do not inspect the current directory")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check the Libero toolchain and gateware checkout",
	Long: `Runs every environment check a build needs and reports each one, instead of
stopping at the first failure.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		return runDoctor(out, toolchain.OSEnv(), config.Tool(), !doctorSkipRepo)
	},
}

func runDoctor(out io.Writer, env toolchain.Env, tool string, checkRepo bool) error {
	checks := env.Checks(tool)
	toolchain.PrintChecks(out, checks)

	if checkRepo {
		runRepoCheck(out)
	}

	missing := 0
	for _, c := range checks {
		if !c.OK {
			missing++
		}
	}
	if missing > 0 {
		return caperr.New(caperr.KindEnvironment, "%d toolchain check(s) failed", missing)
	}
	return nil
}

func runRepoCheck(out io.Writer) {
	fmt.Fprintln(out, "Gateware check:")

	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintf(out, "  [WARN] Cannot determine working directory: %v\n", err)
		return
	}

	r := &layout.Resolver{RepoName: config.RepoName(), Capes: capes.NewRegistry(config.ExtraCapes()...)}
	l, err := r.CheckRepo(wd)
	if err != nil {
		fmt.Fprintf(out, "  [WARN] %v\n", err)
		return
	}
	fmt.Fprintf(out, "  [ OK ] checkout at %s\n", l.RepoRoot)

	if head, err := layout.DescribeHead(l.RepoRoot); err == nil {
		fmt.Fprintf(out, "  [INFO] HEAD %s\n", head)
	}

	for _, name := range r.Capes.Names() {
		if st, err := os.Stat(filepath.Join(l.CapeDir, name)); err == nil && st.IsDir() {
			fmt.Fprintf(out, "  [ OK ] template %s\n", name)
		} else {
			fmt.Fprintf(out, "  [MISS] template %s\n", name)
		}
	}
}
