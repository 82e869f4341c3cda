package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"gameguide-backend/internal/domains/admin/model"
	adminService "gameguide-backend/internal/domains/admin/service"
)

var (
	initUsername  string
	initPassword  string
	initAdminPath string
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Manage the admin account",
}

// adminInitCmd writes the credentials into admin:config, keeping every other field.
var adminInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Seed or reset the admin credentials",
	Long: `Seed or reset the admin credentials stored in admin:config.

The password is bcrypt-hashed before it is stored. Site settings, API keys
and affiliate identifiers already in the record are left untouched.`,
	RunE: runAdminInit,
}

var hashPasswordCmd = &cobra.Command{
	Use:   "hash-password <password>",
	Short: "Print the bcrypt hash of a password",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := adminService.HashPassword(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), hash)
		return nil
	},
}

func runAdminInit(cmd *cobra.Command, _ []string) error {
	c, err := newContainer()
	if err != nil {
		return err
	}
	defer c.Cleanup()

	_, err = c.AdminService.PutConfig(cmd.Context(), model.ConfigUpdateRequest{
		Username:  &initUsername,
		Password:  &initPassword,
		AdminPath: &initAdminPath,
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "admin %q configured at /%s\n", initUsername, initAdminPath)
	return nil
}
