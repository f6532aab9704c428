package cli

import (
	"fmt"

	"github.com/capegen-labs/capegen/internal/config"
	"github.com/capegen-labs/capegen/internal/pipeline"
	"github.com/capegen-labs/capegen/internal/source"
	"github.com/spf13/cobra"
)

var validateSchemaOnly bool

func init() {
	validateCmd.Flags().BoolVar(&validateSchemaOnly, "schema-only", false, "Only check the document, not the gateware checkout")
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate <source.yaml>",
	Short: "Check a source description without building",
	Long: `Loads the source description, resolves it against the gateware checkout in the
current directory and prints the resulting plan and script arguments. Nothing is
written and Libero is not started.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		if validateSchemaOnly {
			e, err := source.Load(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s is valid (entry %q: %s -> %s)\n", args[0], e.Key, e.CapeTemplate, e.CapeName)
			return nil
		}

		_, err := pipeline.Run(cmd.Context(), pipeline.Options{
			SourcePath: args[0],
			DryRun:     true,
			Tool:       config.Tool(),
			RepoName:   config.RepoName(),
			ExtraCapes: config.ExtraCapes(),
			Out:        out,
			Log:        logger,
		})
		return err
	},
}
