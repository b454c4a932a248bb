package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/bachlog/internal/catalog"
	"github.com/alexanderramin/bachlog/internal/cli/formatter"
	"github.com/alexanderramin/bachlog/internal/domain"
)

func newCatalogCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Query the remote course catalog",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "search CODE",
			Short: "Search courses by code",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				courses, err := app.Catalog.SearchByCode(context.Background(), args[0])
				if err != nil {
					return err
				}
				if courses == nil {
					courses = []catalog.CourseSummary{}
				}
				return render(cmd, courses, func() string {
					if len(courses) == 0 {
						return "No matching courses."
					}
					return formatter.FormatCatalogCourses(courses)
				})
			},
		},
		&cobra.Command{
			Use:   "prereqs CODE",
			Short: "List the confirmed prerequisites of a course",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				code := domain.NormalizeCode(args[0])
				prereqs, err := app.Catalog.GetPrerequisites(context.Background(), code)
				if err != nil {
					return err
				}
				if prereqs == nil {
					prereqs = []string{}
				}
				return render(cmd, prereqs, func() string {
					return formatter.FormatPrerequisites(code, prereqs)
				})
			},
		},
		&cobra.Command{
			Use:   "season CODE",
			Short: "Show when a course is offered",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				code := domain.NormalizeCode(args[0])
				season, err := app.Catalog.GetSeason(context.Background(), code)
				if err != nil {
					return err
				}
				return render(cmd, season, func() string {
					return formatter.FormatSeason(code, season)
				})
			},
		},
		&cobra.Command{
			Use:   "curricula UUID",
			Short: "List the curricula a course belongs to",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cur, err := app.Catalog.GetCurricula(context.Background(), args[0])
				if err != nil {
					return err
				}
				return render(cmd, cur, func() string {
					return formatter.FormatCurricula(cur)
				})
			},
		},
		&cobra.Command{
			Use:   "versions CURRICULUM",
			Short: "List confirmed versions of a curriculum, newest first",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				years, err := app.Catalog.GetCurriculumVersions(context.Background(), args[0])
				if err != nil {
					return err
				}
				if years == nil {
					years = []int{}
				}
				return render(cmd, years, func() string {
					return formatter.FormatVersions(args[0], years)
				})
			},
		},
	)

	return cmd
}
