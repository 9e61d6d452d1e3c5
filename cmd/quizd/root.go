package main

import (
	"fmt"

	"github.com/SAP-F-2025/quiz-service/internal/config"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "quizd",
	Short:         "Language exercise quiz service",
	SilenceUsage:  true,
	SilenceErrors: false,
}

// loadEnvironment reads the configuration and builds the process logger.
func loadEnvironment() (*config.Config, utils.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, utils.NewLogger(cfg.Environment, cfg.LogLevel), nil
}
