package main

import (
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger()
		defer log.Sync()

		db, err := ConnectDB(log)
		if err != nil {
			return err
		}
		if err := Migrate(db); err != nil {
			return err
		}
		log.Info("migration complete")
		return nil
	},
}
