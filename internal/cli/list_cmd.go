package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Houeta/staff-console/internal/listview"
	"github.com/Houeta/staff-console/internal/models"
)

func newListCmd(app *App) *cobra.Command {
	var (
		search     string
		query      string
		department string
		asJSON     bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees, optionally filtered",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			view := listview.New(app.Log, app.Records, app.Metrics)
			view.SetSearch(query)
			view.SetDepartment(department)

			if err := view.Load(cmd.Context(), search); err != nil {
				return err
			}

			if asJSON {
				encoder := json.NewEncoder(cmd.OutOrStdout())
				encoder.SetIndent("", "  ")
				return encoder.Encode(view.Rows())
			}

			return writeTable(cmd.OutOrStdout(), view.Rows())
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Server-side search on name or position (case-sensitive)")
	cmd.Flags().StringVarP(&query, "q", "q", "", "Local search on name or position (case-insensitive)")
	cmd.Flags().StringVar(&department, "department", "", "Show only this department")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	return cmd
}

func writeTable(out io.Writer, rows []models.Employee) error {
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tAGE\tDEPARTMENT\tPOSITION")

	if len(rows) == 0 {
		fmt.Fprintln(tw, "No employees found.")
	}
	for _, e := range rows {
		fmt.Fprintf(tw, "%d\t%s\t%d\t%s\t%s\n", e.EmployeeID, e.Name, e.Age, e.Department, e.Position)
	}

	return tw.Flush()
}

func writeEmployee(out io.Writer, e models.Employee) {
	fmt.Fprintf(out, "ID: %d\nName: %s\nAge: %d\nDepartment: %s\nPosition: %s\n",
		e.EmployeeID, e.Name, e.Age, e.Department, e.Position)
}
