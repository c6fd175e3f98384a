package main

import (
	"github.com/spf13/cobra"

	"github.com/m04kA/SMC-CarWashService/internal/infra/migrations"
)

var downSteps int

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply or roll back database migrations",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(func(m *migrations.Migrator) error {
			return m.Up()
		})
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back the last applied migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runMigrations(func(m *migrations.Migrator) error {
			return m.Down(downSteps)
		})
	},
}

func init() {
	migrateDownCmd.Flags().IntVar(&downSteps, "steps", 1, "number of migrations to roll back")

	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd)
	rootCmd.AddCommand(migrateCmd)
}

func runMigrations(fn func(m *migrations.Migrator) error) error {
	cfg, log, err := bootstrap()
	if err != nil {
		return err
	}
	defer log.Close()

	db, err := openDB(cfg.Database)
	if err != nil {
		log.Error("%v", err)
		return err
	}
	defer db.Close()

	migrator, err := migrations.New(db, cfg.Database.DBName, log)
	if err != nil {
		log.Error("Failed to initialize migrations: %v", err)
		return err
	}

	if err := fn(migrator); err != nil {
		log.Error("Migration failed: %v", err)
		return err
	}
	return nil
}
