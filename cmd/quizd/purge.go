package main

import (
	"github.com/SAP-F-2025/quiz-service/internal/cache"
	"github.com/SAP-F-2025/quiz-service/internal/utils"
	"github.com/SAP-F-2025/quiz-service/pkg"
	"github.com/spf13/cobra"
)

var purgeCmd = &cobra.Command{
	Use:   "purge-sessions",
	Short: "Delete every session held in the redis session store",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := loadEnvironment()
		if err != nil {
			return err
		}

		client, err := pkg.NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer client.Close()

		sessions := cache.NewSessionCache(cache.NewRedisCache(client, utils.ToSlogLogger(logger)), cfg.SessionTTL)
		if err := sessions.Purge(cmd.Context()); err != nil {
			return err
		}
		logger.Info("Sessions purged")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(purgeCmd)
}
