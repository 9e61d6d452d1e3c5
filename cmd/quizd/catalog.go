package main

import (
	"encoding/json"

	"github.com/SAP-F-2025/quiz-service/internal/models"
	"github.com/spf13/cobra"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the catalog tiles as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(models.Catalog())
	},
}

func init() {
	rootCmd.AddCommand(catalogCmd)
}
