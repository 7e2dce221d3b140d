package commands

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/cafedesk/cafedesk/api"
	"github.com/cafedesk/cafedesk/form"
	"github.com/cafedesk/cafedesk/upload"
)

// NewCafesCmd builds the `cafes` command tree.
func NewCafesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cafes",
		Short: "Manage cafes",
	}

	cmd.AddCommand(
		newCafesListCmd(app),
		newCafesAddCmd(app),
		newCafesUpdateCmd(app),
		newCafesDeleteCmd(app),
	)

	return cmd
}

func newCafesListCmd(app *App) *cobra.Command {
	var location string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List cafes, optionally filtered by location",
		RunE: func(cmd *cobra.Command, args []string) error {
			cafes, err := app.Store.Cafes(cmd.Context(), location)
			if err != nil {
				return err
			}
			printCafes(cmd.OutOrStdout(), cafes)
			return nil
		},
	}

	cmd.Flags().StringVar(&location, "location", "", "Filter by location")
	return cmd
}

func newCafesAddCmd(app *App) *cobra.Command {
	var (
		f           form.CafeForm
		logoPath    string
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a new cafe",
		RunE: func(cmd *cobra.Command, args []string) error {
			guard, interceptor := newFormGuard(form.Snapshot{}, app)
			defer interceptor.Close()

			if interactive {
				newPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), guard).cafe(&f)
			}

			pending, err := openAttachment(logoPath)
			if err != nil {
				return err
			}
			if pending != nil {
				defer pending.Close()
			}

			cafe, err := submitCafe(cmd.Context(), app.Uploads, app.Mutations, guard, f, "", pending, false)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cafe created successfully: %s\n", cafe.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&f.Name, "name", "", "Cafe name (6-10 characters)")
	cmd.Flags().StringVar(&f.Description, "description", "", "Short description")
	cmd.Flags().StringVar(&f.Location, "location", "", "Location")
	cmd.Flags().StringVar(&logoPath, "logo", "", "Path to a logo file (JPG/PNG, max 2MB)")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Edit fields interactively")
	return cmd
}

func newCafesUpdateCmd(app *App) *cobra.Command {
	var (
		overrides   form.CafeForm
		logoPath    string
		clearLogo   bool
		interactive bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an existing cafe",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			cafe, err := app.Store.FindCafe(cmd.Context(), id)
			if api.IsNotFound(err) {
				// Back to the list view with a notice.
				fmt.Fprintln(cmd.ErrOrStderr(), "Cafe not found.")
				return newCafesListCmd(app).RunE(cmd, nil)
			}
			if err != nil {
				return err
			}

			f := form.CafeFormFrom(*cafe)
			guard, interceptor := newFormGuard(f.Snapshot(), app)
			defer interceptor.Close()

			if cmd.Flags().Changed("name") {
				f.Name = overrides.Name
			}
			if cmd.Flags().Changed("description") {
				f.Description = overrides.Description
			}
			if cmd.Flags().Changed("location") {
				f.Location = overrides.Location
			}
			guard.Observe(f.Snapshot())

			if interactive {
				newPrompter(cmd.InOrStdin(), cmd.OutOrStdout(), guard).cafe(&f)
			}

			pending, err := openAttachment(logoPath)
			if err != nil {
				return err
			}
			if pending != nil {
				defer pending.Close()
			}

			updated, err := submitCafe(cmd.Context(), app.Uploads, app.Mutations, guard, f, id, pending, clearLogo)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Cafe updated successfully: %s\n", updated.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&overrides.Name, "name", "", "Cafe name (6-10 characters)")
	cmd.Flags().StringVar(&overrides.Description, "description", "", "Short description")
	cmd.Flags().StringVar(&overrides.Location, "location", "", "Location")
	cmd.Flags().StringVar(&logoPath, "logo", "", "Path to a new logo file (JPG/PNG, max 2MB)")
	cmd.Flags().BoolVar(&clearLogo, "clear-logo", false, "Remove the current logo")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Edit fields interactively")
	return cmd
}

func newCafesDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a cafe and its employees",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := args[0]

			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(),
				fmt.Sprintf("Delete cafe %s and all its employees?", id)) {
				return nil
			}

			if err := app.Mutations.DeleteCafe(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Cafe deleted successfully")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func printCafes(out io.Writer, cafes []api.Cafe) {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tDESCRIPTION\tLOCATION\tEMPLOYEES\tLOGO")
	for _, c := range cafes {
		logo := "-"
		if c.Logo != nil {
			logo = *c.Logo
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n", c.ID, c.Name, c.Description, c.Location, c.Employees, logo)
	}
	_ = w.Flush()
}

// openAttachment prepares a local logo file, or returns nil when no path
// was given.
func openAttachment(path string) (*upload.Attachment, error) {
	if path == "" {
		return nil, nil
	}
	return upload.Open(path)
}
