package main

import (
	"os"

	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "carwash",
	Short: "Car wash admin backend",
	Long: `Car wash admin backend: REST API for cars, wash packages,
service records, payments and reports.

Available commands:
  serve      Start the HTTP server
  migrate    Apply or roll back database migrations
  admin      Manage administrator accounts

Use "carwash [command] --help" for more information about a command.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "config.toml", "path to the TOML config file")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
