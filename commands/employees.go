package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cafedesk/cafedesk/api"
	"github.com/cafedesk/cafedesk/form"
)

// NewEmployeesCmd builds the `employees` command tree.
func NewEmployeesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "employees",
		Short: "Manage employees",
	}

	cmd.AddCommand(
		newEmployeesListCmd(app),
		newEmployeesAddCmd(app),
		newEmployeesUpdateCmd(app),
		newEmployeesDeleteCmd(app),
	)

	return cmd
}

func newEmployeesListCmd(app *App) *cobra.Command {
	var cafeName string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List employees, optionally filtered by cafe name",
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.Store.Employees(cmd.Context(), cafeName)
			if err != nil {
				return err
			}
			printEmployees(cmd.OutOrStdout(), employees)
			return nil
		},
	}

	cmd.Flags().StringVar(&cafeName, "cafe", "", "Filter by cafe name")
	return cmd
}

func newEmployeesAddCmd(app *App) *cobra.Command {
	var (
		f           form.EmployeeForm
		gender      string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new employee",
		RunE: func(cmd *cobra.Command, args []string) error {
			f.Gender = api.Gender(gender)

			guard, interceptor := newFormGuard(form.Snapshot{}, app)
			defer interceptor.Close()

			if interactive {
				newPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), guard).employee(&f)
			}

			if err := checkCafeChoice(cmd, app, f.AssignedCafeID); err != nil {
				return err
			}

			employee, err := submitEmployee(cmd.Context(), app.Mutations, guard, f, "")
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Employee created successfully: %s\n", employee.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.Name, "name", "", "Employee name (6-10 characters)")
	cmd.Flags().StringVar(&f.EmailAddress, "email", "", "Email address")
	cmd.Flags().StringVar(&f.PhoneNumber, "phone", "", "Phone number (8 digits, starts with 8 or 9)")
	cmd.Flags().StringVar(&gender, "gender", "", "Gender (Male or Female)")
	cmd.Flags().StringVar(&f.AssignedCafeID, "cafe-id", "", "Assigned cafe id (empty = unassigned)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Edit fields interactively")
	return cmd
}

func newEmployeesUpdateCmd(app *App) *cobra.Command {
	var (
		overrides   form.EmployeeForm
		gender      string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an existing employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			employee, err := app.Store.FindEmployee(cmd.Context(), id)
			if api.IsNotFound(err) {
				// Back to the list view with a notice.
				fmt.Fprintln(cmd.ErrOrStderr(), "Employee not found.")
				return newEmployeesListCmd(app).RunE(cmd, nil)
			}
			if err != nil {
				return err
			}

			// The record carries only the denormalized cafe name; resolve
			// the assignment id against the cafe list.
			cafes, err := app.Store.Cafes(cmd.Context(), "")
			if err != nil {
				return err
			}
			f := form.EmployeeFormFrom(*employee, cafes)

			guard, interceptor := newFormGuard(f.Snapshot(), app)
			defer interceptor.Close()

			if cmd.Flags().Changed("name") {
				f.Name = overrides.Name
			}
			if cmd.Flags().Changed("email") {
				f.EmailAddress = overrides.EmailAddress
			}
			if cmd.Flags().Changed("phone") {
				f.PhoneNumber = overrides.PhoneNumber
			}
			if cmd.Flags().Changed("gender") {
				f.Gender = api.Gender(gender)
			}
			if cmd.Flags().Changed("cafe-id") {
				f.AssignedCafeID = overrides.AssignedCafeID
			}
			guard.Observe(f.Snapshot())

			if interactive {
				newPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), guard).employee(&f)
			}

			if err := checkCafeChoice(cmd, app, f.AssignedCafeID); err != nil {
				return err
			}

			updated, err := submitEmployee(cmd.Context(), app.Mutations, guard, f, id)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Employee updated successfully: %s\n", updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&overrides.Name, "name", "", "Employee name (6-10 characters)")
	cmd.Flags().StringVar(&overrides.EmailAddress, "email", "", "Email address")
	cmd.Flags().StringVar(&overrides.PhoneNumber, "phone", "", "Phone number (8 digits, starts with 8 or 9)")
	cmd.Flags().StringVar(&gender, "gender", "", "Gender (Male or Female)")
	cmd.Flags().StringVar(&overrides.AssignedCafeID, "cafe-id", "", "Assigned cafe id (empty = unassigned)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Edit fields interactively")
	return cmd
}

func newEmployeesDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an employee",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
				fmt.Sprintf("Delete employee %s?", id)) {
				return nil
			}

			if err := app.Mutations.DeleteEmployee(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Employee deleted successfully")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// checkCafeChoice verifies that a café assignment references an existing
// café, the selector-offers-only-valid-choices behavior. Referential
// integrity itself stays a server concern.
func checkCafeChoice(cmd *cobra.Command, app *App, cafeID string) error {
	if cafeID == "" {
		return nil
	}

	cafes, err := app.Store.Cafes(cmd.Context(), "")
	if err != nil {
		return err
	}
	for _, c := range cafes {
		if c.ID == cafeID {
			return nil
		}
	}
	return fmt.Errorf("no cafe with id %s; run `cafedesk cafes list` to see valid choices", cafeID)
}

func printEmployees(out io.Writer, employees []api.Employee) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tGENDER\tDAYS WORKED\tCAFE")
	for _, e := range employees {
		cafe := "-"
		days := "-"
		if e.CafeName != "" {
			cafe = e.CafeName
			days = fmt.Sprintf("%d", e.DaysWorked)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n", e.ID, e.Name, e.EmailAddress, e.PhoneNumber, e.Gender, days, cafe)
	}
	_ = w.Flush()
}
