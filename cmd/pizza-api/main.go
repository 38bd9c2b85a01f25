package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// @title        Pizza Delivery API
// @version      1.0
// @description  Pizza ordering service with JWT authentication and staff-only order management.
// @BasePath     /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and the JWT.
func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "pizza-api",
	Short:         "Pizza delivery API",
	Long:          "pizza-api serves the pizza ordering HTTP API and manages its database.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Server; also the default when no subcommand is given.
	rootCmd.AddCommand(serveCmd)
	rootCmd.RunE = serveCmd.RunE

	// Database
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(createStaffCmd)
}
