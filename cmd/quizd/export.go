package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/SAP-F-2025/quiz-service/internal/repositories"
	"github.com/SAP-F-2025/quiz-service/internal/repositories/postgres"
	"github.com/SAP-F-2025/quiz-service/internal/services"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/SAP-F-2025/quiz-service/internal/validator"
	"github.com/SAP-F-2025/quiz-service/pkg"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export-events",
	Short: "Export stored analytics events to an .xlsx or .csv file",
	RunE: func(cmd *cobra.Command, args []string) error {
		out, _ := cmd.Flags().GetString("out")
		testID, _ := cmd.Flags().GetInt("test-id")
		eventName, _ := cmd.Flags().GetString("event")

		cfg, logger, err := loadEnvironment()
		if err != nil {
			return err
		}

		db, err := pkg.InitDatabase(cfg)
		if err != nil {
			return err
		}
		defer pkg.CloseDatabase(db)

		var filters repositories.EventFilters
		if testID != 0 {
			t := models.ExerciseType(testID)
			filters.TestID = &t
		}
		if eventName != "" {
			name := models.EventName(eventName)
			filters.EventName = &name
		}

		analytics := services.NewAnalyticsService(postgres.NewEventPostgreSQL(db), utils.ToSlogLogger(logger), validator.New())

		var data []byte
		switch strings.ToLower(filepath.Ext(out)) {
		case ".xlsx":
			data, err = analytics.ExportEventsToExcel(cmd.Context(), &filters)
		case ".csv":
			data, err = analytics.ExportEventsToCSV(cmd.Context(), &filters)
		default:
			return fmt.Errorf("output must end in .xlsx or .csv: %s", out)
		}
		if err != nil {
			return err
		}

		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		logger.Info("Events exported", "file", out, "bytes", len(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("out", "analytics-events.xlsx", "output file (.xlsx or .csv)")
	exportCmd.Flags().Int("test-id", 0, "only export events of this exercise")
	exportCmd.Flags().String("event", "", "only export events with this name")
}
