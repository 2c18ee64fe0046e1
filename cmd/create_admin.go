package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var createAdminOpts struct {
	email    string
	password string
	name     string
}

var createAdminCmd = &cobra.Command{
	Use:   "create-admin",
	Short: "Provision the first administrator",
	RunE: func(cmd *cobra.Command, args []string) error {
		if createAdminOpts.email == "" || createAdminOpts.password == "" {
			return errors.New("--email and --password are required")
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.users.BootstrapAdmin(context.Background(),
			createAdminOpts.email, createAdminOpts.password, createAdminOpts.name)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "admin %s ready (employee id %s)\n", user.ID, deref(user.EmployeeID))
		return nil
	},
}

func deref(s *string) string {
	if s == nil {
		return "-"
	}
	return *s
}

func init() {
	createAdminCmd.Flags().StringVar(&createAdminOpts.email, "email", "", "admin email")
	createAdminCmd.Flags().StringVar(&createAdminOpts.password, "password", "", "admin password")
	createAdminCmd.Flags().StringVar(&createAdminOpts.name, "name", "", "display name")
	rootCmd.AddCommand(createAdminCmd)
}
