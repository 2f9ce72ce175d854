package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Houeta/staff-console/internal/forms"
	"github.com/Houeta/staff-console/internal/listview"
	"github.com/Houeta/staff-console/internal/models"
	"github.com/Houeta/staff-console/internal/validation"
)

func newGetCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Show one employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			employee, err := app.Records.GetRecord(cmd.Context(), id)
			if err != nil {
				return err
			}

			writeEmployee(cmd.OutOrStdout(), employee)

			return nil
		},
	}
}

// fieldFlags binds one string flag per business field.
func fieldFlags(cmd *cobra.Command, values map[string]*string) {
	for _, field := range models.Fields {
		value := new(string)
		values[field] = value
		cmd.Flags().StringVar(value, field, "", "Employee "+field)
	}
}

func newAddCmd(app *App) *cobra.Command {
	values := map[string]*string{}

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an employee",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form := forms.NewCreate(app.Log, app.Records, app.Rules, app.Metrics)
			for _, field := range models.Fields {
				if err := form.Set(field, *values[field]); err != nil {
					return err
				}
			}

			saved, err := form.Submit(cmd.Context())
			if err != nil {
				return explain(cmd.ErrOrStderr(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created employee %d.\n", saved.EmployeeID)

			return nil
		},
	}
	fieldFlags(cmd, values)

	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	values := map[string]*string{}

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Update an employee; fields without a flag keep their current value",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			form, err := forms.LoadEdit(cmd.Context(), app.Log, app.Records, app.Rules, app.Metrics, id)
			if err != nil {
				return err
			}
			for _, field := range models.Fields {
				if !cmd.Flags().Changed(field) {
					continue
				}
				if err = form.Set(field, *values[field]); err != nil {
					return err
				}
			}

			saved, err := form.Submit(cmd.Context())
			if err != nil {
				return explain(cmd.ErrOrStderr(), err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated employee %d.\n", saved.EmployeeID)

			return nil
		},
	}
	fieldFlags(cmd, values)

	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an employee after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			view := listview.New(app.Log, app.Records, app.Metrics)
			if err = view.Load(cmd.Context(), ""); err != nil {
				return err
			}

			employee, err := view.RequestDelete(id)
			if err != nil {
				return err
			}

			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), employee.Name) {
				view.CancelDelete()
				fmt.Fprintln(cmd.OutOrStdout(), "Cancelled.")
				return nil
			}

			if _, err = view.ConfirmDelete(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Deleted employee %s.\n", employee.Name)

			return nil
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

func confirm(in io.Reader, out io.Writer, name string) bool {
	fmt.Fprintf(out, "Are you sure you want to delete %s? [y/N] ", name)

	answer, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && answer == "" {
		return false
	}

	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// explain prints per-field validation messages before returning err.
func explain(out io.Writer, err error) error {
	var invalid validation.Errors
	if !errors.As(err, &invalid) {
		return err
	}

	for _, field := range models.Fields {
		if msg, ok := invalid[field]; ok {
			fmt.Fprintf(out, "  %s: %s\n", field, msg)
		}
	}

	return fmt.Errorf("employee not saved: %d invalid field(s)", len(invalid))
}
