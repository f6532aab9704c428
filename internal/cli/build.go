package cli

import (
	"github.com/capegen-labs/capegen/internal/config"
	"github.com/capegen-labs/capegen/internal/pipeline"
	"github.com/spf13/cobra"
)

var (
	buildForce        bool
	buildSkipEnvCheck bool
	buildDryRun       bool
)

func init() {
	buildCmd.Flags().BoolVarP(&buildForce, "force", "f", false, "Delete and re-clone an existing cape")
	buildCmd.Flags().BoolVar(&buildSkipEnvCheck, "skip-env-check", false, "Do not verify the Libero toolchain before building")
	buildCmd.Flags().BoolVar(&buildDryRun, "dry-run", false, "Print the plan without changing anything")
	rootCmd.AddCommand(buildCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build <source.yaml>",
	Short: "Scaffold a cape and generate its Libero project",
	Long: `Reads the custom-source entry of a source description, clones the template
cape into the new cape, renames it, and runs the Libero design script.

Example:
  capegen build my-cape.yaml
  capegen build --force my-cape.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		_, err := pipeline.Run(cmd.Context(), pipeline.Options{
			SourcePath:   args[0],
			Force:        buildForce,
			DryRun:       buildDryRun,
			SkipEnvCheck: buildSkipEnvCheck,
			Tool:         config.Tool(),
			RepoName:     config.RepoName(),
			ExtraCapes:   config.ExtraCapes(),
			Out:          cmd.OutOrStdout(),
			Log:          logger,
		})
		return err
	},
}
