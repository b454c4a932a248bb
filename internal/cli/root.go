package cli

import (
	"github.com/spf13/cobra"

	"github.com/alexanderramin/bachlog/internal/cli/formatter"
)

// NewRootCmd creates the top-level "bachlog" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "bachlog",
		Short:         "Six-semester course planner with curriculum compliance checks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringP("output", "o", string(formatter.OutputText), "Output format: text, json or yaml")

	root.AddCommand(
		newCourseCmd(app),
		newImportCmd(app),
		newExportCmd(app),
		newCheckCmd(app),
		newStructureCmd(app),
		newCatalogCmd(app),
		newModulesCmd(app),
	)

	return root
}
