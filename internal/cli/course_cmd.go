package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/bachlog/internal/cli/formatter"
	"github.com/alexanderramin/bachlog/internal/domain"
	"github.com/alexanderramin/bachlog/internal/service"
)

func newCourseCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "course",
		Aliases: []string{"c"},
		Short:   "Manage planned courses",
	}

	cmd.AddCommand(
		newCourseListCmd(app),
		newCourseAddCmd(app),
		newCourseShowCmd(app),
		newCourseMoveCmd(app),
		newCourseSeasonCmd(app),
		newCourseCurriculumCmd(app),
		newCourseModuleCmd(app),
		newCourseRemoveCmd(app),
		newCourseClearCmd(app),
	)

	return cmd
}

func newCourseListCmd(app *App) *cobra.Command {
	var semester int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List planned courses by semester",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()
			var (
				courses []*domain.CourseRecord
				err     error
			)
			if semester > 0 {
				courses, err = app.Courses.ListBySemester(ctx, semester)
			} else {
				courses, err = app.Courses.List(ctx)
			}
			if err != nil {
				return err
			}
			if courses == nil {
				courses = []*domain.CourseRecord{}
			}
			return render(cmd, courses, func() string {
				if len(courses) == 0 {
					return "No courses planned."
				}
				return formatter.FormatCourseList(courses)
			})
		},
	}

	cmd.Flags().IntVar(&semester, "semester", 0, "Only list courses of this semester (1-6)")

	return cmd
}

func newCourseAddCmd(app *App) *cobra.Command {
	var code, module string
	var semester int

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a course by catalog code",
		Long:  "Add a course by catalog code. Title, credits, season and curriculum are read from the catalog.",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := app.Courses.Add(context.Background(), service.AddCourseRequest{
				Code:     code,
				Semester: semester,
				Module:   module,
			})
			if err != nil {
				return err
			}
			return render(cmd, c, func() string {
				return fmt.Sprintf("Added %s %s to semester %d [%d]", c.Code, c.Title, c.Semester, c.ID)
			})
		},
	}

	cmd.Flags().StringVar(&code, "code", "", "Catalog course code (e.g. LTAT.03.001)")
	cmd.Flags().IntVar(&semester, "semester", 0, "Semester (1-6)")
	cmd.Flags().StringVar(&module, "module", "", "Module code (PM, VM, SM, EM, VA, LM)")
	_ = cmd.MarkFlagRequired("code")
	_ = cmd.MarkFlagRequired("semester")
	_ = cmd.MarkFlagRequired("module")

	return cmd
}

func newCourseShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show course details",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			c, err := app.Courses.GetByID(context.Background(), id)
			if err != nil {
				return err
			}
			return render(cmd, c, func() string {
				return formatter.FormatCourseDetail(c, app.Modules)
			})
		},
	}
}

func newCourseMoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "move ID SEMESTER",
		Short: "Move a course to another semester",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			semester, err := parseSemester(args[1])
			if err != nil {
				return err
			}
			if err := app.Courses.Move(context.Background(), id, semester); err != nil {
				return err
			}
			printf(cmd, "Moved course %d to semester %d\n", id, semester)
			return nil
		},
	}
}

func newCourseSeasonCmd(app *App) *cobra.Command {
	var autumn, spring, refresh bool

	cmd := &cobra.Command{
		Use:   "season ID",
		Short: "Set the offering season of a course",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			ctx := context.Background()
			if refresh {
				c, err := app.Courses.RefreshSeason(ctx, id)
				if err != nil {
					return err
				}
				printf(cmd, "Season of %s is now %s\n", c.Code, c.Season())
				return nil
			}
			if err := app.Courses.SetSeason(ctx, id, autumn, spring); err != nil {
				return err
			}
			printf(cmd, "Season of course %d is now %s\n", id, domain.SeasonOf(autumn, spring))
			return nil
		},
	}

	cmd.Flags().BoolVar(&autumn, "autumn", false, "Offered in autumn")
	cmd.Flags().BoolVar(&spring, "spring", false, "Offered in spring")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "Read the season from the catalog")
	cmd.MarkFlagsMutuallyExclusive("refresh", "autumn")
	cmd.MarkFlagsMutuallyExclusive("refresh", "spring")

	return cmd
}

func newCourseCurriculumCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "curriculum ID TITLE",
		Short: "Set the curriculum a course counts towards",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.Courses.SetCurriculum(context.Background(), id, args[1]); err != nil {
				return err
			}
			printf(cmd, "Curriculum of course %d set to %s\n", id, args[1])
			return nil
		},
	}
}

func newCourseModuleCmd(app *App) *cobra.Command {
	var unset bool

	cmd := &cobra.Command{
		Use:   "module ID [CODE]",
		Short: "File a course under a module",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			code := ""
			if len(args) == 2 {
				code = args[1]
			}
			if code == "" && !unset {
				return fmt.Errorf("module code is required (or pass --unset)")
			}
			if err := app.Courses.SetModule(context.Background(), id, code); err != nil {
				return err
			}
			if code == "" {
				printf(cmd, "Course %d is no longer filed under a module\n", id)
				return nil
			}
			printf(cmd, "Course %d filed under %s\n", id, app.Modules.Title(code))
			return nil
		},
	}

	cmd.Flags().BoolVar(&unset, "unset", false, "Remove the module assignment")

	return cmd
}

func newCourseRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove ID",
		Aliases: []string{"rm"},
		Short:   "Remove a course from the plan",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.Courses.Remove(context.Background(), id); err != nil {
				return err
			}
			printf(cmd, "Removed course %d\n", id)
			return nil
		},
	}
}

func newCourseClearCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove every course from the plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes {
				if !app.interactive() {
					return fmt.Errorf("refusing to clear the plan without --yes")
				}
				ok, err := app.confirm("Remove every planned course?")
				if err != nil {
					return err
				}
				if !ok {
					printf(cmd, "Cancelled.\n")
					return nil
				}
			}
			n, err := app.Courses.Clear(context.Background())
			if err != nil {
				return err
			}
			printf(cmd, "Removed %d courses\n", n)
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}
