package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/bachlog/internal/cli/formatter"
	"github.com/alexanderramin/bachlog/internal/contract"
)

func newCheckCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [ID]",
		Short: "Check season and prerequisites of one course or the whole plan",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var results []contract.CourseCheck
			if len(args) == 1 {
				id, err := parseID(args[0])
				if err != nil {
					return err
				}
				r, err := app.Compliance.CheckCourse(ctx, id)
				if err != nil {
					return err
				}
				results = []contract.CourseCheck{*r}
			} else {
				var err error
				results, err = app.Compliance.CheckPlan(ctx)
				if err != nil {
					return err
				}
			}
			if results == nil {
				results = []contract.CourseCheck{}
			}
			return render(cmd, results, func() string {
				if len(results) == 0 {
					return "No courses planned."
				}
				return formatter.FormatCourseChecks(results)
			})
		},
	}

	cmd.AddCommand(newCheckModulesCmd(app))

	return cmd
}

func newCheckModulesCmd(app *App) *cobra.Command {
	var curriculumID string
	var year int

	cmd := &cobra.Command{
		Use:   "modules",
		Short: "Check the plan against a curriculum's requirement structure",
		RunE: func(cmd *cobra.Command, args []string) error {
			report, err := app.Compliance.CheckModules(context.Background(), curriculumID, year)
			if err != nil {
				return err
			}
			return render(cmd, report, func() string {
				return formatter.FormatModuleReport(report)
			})
		},
	}

	cmd.Flags().StringVar(&curriculumID, "curriculum", "", "Curriculum ID (e.g. IFBB)")
	cmd.Flags().IntVar(&year, "year", 0, "Curriculum version year (default: latest confirmed)")
	_ = cmd.MarkFlagRequired("curriculum")

	return cmd
}

func newStructureCmd(app *App) *cobra.Command {
	var curriculumID string
	var year int

	cmd := &cobra.Command{
		Use:   "structure",
		Short: "Show the required, elective and thesis submodules of a curriculum",
		RunE: func(cmd *cobra.Command, args []string) error {
			s, resolved, err := app.Compliance.Structure(context.Background(), curriculumID, year)
			if err != nil {
				return err
			}
			payload := struct {
				Curriculum string `json:"curriculum" yaml:"curriculum"`
				Year       int    `json:"year" yaml:"year"`
				Structure  any    `json:"structure" yaml:"structure"`
			}{curriculumID, resolved, s}
			return render(cmd, payload, func() string {
				return formatter.FormatStructure(curriculumID, resolved, s)
			})
		},
	}

	cmd.Flags().StringVar(&curriculumID, "curriculum", "", "Curriculum ID (e.g. IFBB)")
	cmd.Flags().IntVar(&year, "year", 0, "Curriculum version year (default: latest confirmed)")
	_ = cmd.MarkFlagRequired("curriculum")

	return cmd
}

func newModulesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "modules",
		Short: "List the configured module codes",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(app.Modules) == 0 {
				return fmt.Errorf("no modules configured")
			}
			return render(cmd, app.Modules, func() string {
				return formatter.FormatModuleOptions(app.Modules)
			})
		},
	}
}
