package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pizzadelivery/pizza-api/internal/core/ports"
)

// pizza-api migrate
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the users and orders schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := boot(ctx)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		a.log.Info().Str("store", a.store.Driver).Msg("running migrations")
		return a.store.Migrate(ctx)
	},
}

var staffFlags struct {
	username string
	email    string
	password string
}

// pizza-api create-staff
var createStaffCmd = &cobra.Command{
	Use:   "create-staff",
	Short: "Create an active staff user",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		a, err := boot(ctx)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		auth, err := a.authService(true)
		if err != nil {
			return err
		}

		staff, active := true, true
		user, err := auth.Register(ctx, ports.RegisterInput{
			Username: staffFlags.username,
			Email:    staffFlags.email,
			Password: staffFlags.password,
			IsStaff:  &staff,
			IsActive: &active,
		})
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "created staff user %q (id %d)\n", user.Username, user.ID)
		return nil
	},
}

func init() {
	f := createStaffCmd.Flags()
	f.StringVar(&staffFlags.username, "username", "", "staff username")
	f.StringVar(&staffFlags.email, "email", "", "staff email")
	f.StringVar(&staffFlags.password, "password", "", "staff password")
	_ = createStaffCmd.MarkFlagRequired("username")
	_ = createStaffCmd.MarkFlagRequired("email")
	_ = createStaffCmd.MarkFlagRequired("password")
}
