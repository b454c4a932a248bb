package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/alexanderramin/bachlog/internal/cli/formatter"
)

func newImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Import courses from a CSV file with kood, semester and moodul columns",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			result, err := app.Import.ImportFile(context.Background(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, result, func() string {
				return formatter.FormatImportResult(result)
			})
		},
	}
}

func newExportCmd(app *App) *cobra.Command {
	var format, file string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export the plan as CSV or XLSX",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(strings.TrimSpace(format))
			if format != "csv" && format != "xlsx" {
				return fmt.Errorf("unknown export format %q (expected csv or xlsx)", format)
			}
			if format == "xlsx" && file == "" {
				return fmt.Errorf("xlsx export needs --file")
			}

			ctx := context.Background()
			write := func(w io.Writer) error {
				if format == "xlsx" {
					return app.Export.ExportXLSX(ctx, w)
				}
				return app.Export.ExportCSV(ctx, w)
			}

			if file == "" {
				return write(cmd.OutOrStdout())
			}
			f, err := os.Create(file)
			if err != nil {
				return fmt.Errorf("creating %s: %w", file, err)
			}
			if err := writeAndClose(f, write); err != nil {
				return fmt.Errorf("writing %s: %w", file, err)
			}
			printf(cmd, "Exported plan to %s\n", file)
			return nil
		},
	}

	cmd.Flags().StringVar(&format, "format", "csv", "Export format: csv or xlsx")
	cmd.Flags().StringVarP(&file, "file", "f", "", "Write to this file instead of stdout")

	return cmd
}

// writeAndClose runs write against wc and always closes it. A close error
// is reported when the write itself succeeded.
func writeAndClose(wc io.WriteCloser, write func(io.Writer) error) error {
	if err := write(wc); err != nil {
		wc.Close()
		return err
	}
	return wc.Close()
}
