package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/georgiaharvey/club-reports/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "club-reports",
	Short: "Sales and guest-list reporting from the venue spreadsheet",
	Long:  "Pulls the reporting workbook from Google Sheets, reshapes its ad-hoc rows into typed records, aggregates sales and guest counts into period buckets, and serves the result for the dashboard.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
