package main

import (
	"github.com/SAP-F-2025/quiz-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/quiz-service/pkg"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the analytics events table",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadEnvironment()
		if err != nil {
			return err
		}

		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return err
		}
		defer pkg.CloseDatabase(db)

		if err := postgres.Migrate(db); err != nil {
			return err
		}
		logger.Info("Migration complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
