package main

import (
	"log"
	"os"

	"github.com/fadilmartias/ai-assessment/internal/config"
	"github.com/fadilmartias/ai-assessment/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var rootCmd = &cobra.Command{
	Use:           "server",
	Short:         "AI candidate assessment service",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serveCmd.RunE(cmd, args)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd, jobsCmd, usageCmd, migrateCmd)
}

func main() {
	// Load .env file
	if err := godotenv.Load(); err != nil {
		log.Println("Could not load .env file")
	}

	if err := rootCmd.Execute(); err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func newLogger() *zap.Logger {
	appConfig := config.LoadAppConfig()
	l, err := logger.New(appConfig.LogJSON, appConfig.LogDebug)
	if err != nil {
		log.Fatalf("Could not build logger: %v", err)
	}
	return l.With(zap.String("app", appConfig.Name), zap.String("env", appConfig.Env))
}
