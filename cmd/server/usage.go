package main

import (
	"encoding/json"

	"github.com/fadilmartias/ai-assessment/internal/config"
	"github.com/fadilmartias/ai-assessment/internal/repository"
	"github.com/fadilmartias/ai-assessment/internal/usecase"
	"github.com/spf13/cobra"
)

var usageJobID uint

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Inspect the model usage ledger",
}

var usageStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Print aggregated token usage and cost as JSON",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		defer log.Sync()

		db, err := ConnectDB(log)
		if err != nil {
			return err
		}
		ledger := usecase.NewUsageLedger(repository.NewUsageRepository(db), config.LoadUsageConfig().TrackUsage, log)
		stats, err := ledger.Stats(cmd.Context(), usageJobID)
		if err != nil {
			return err
		}

		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(stats)
	},
}

func init() {
	usageStatsCmd.Flags().UintVar(&usageJobID, "job-id", 0, "only count usage for this job")
	usageCmd.AddCommand(usageStatsCmd)
}
