package cmd

import (
	"context"
	"log"
	"time"

	intconfig "casebackend/internal/config"
	intdb "casebackend/internal/db"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create missing tables and seed lookups",
	RunE: func(cmd *cobra.Command, args []string) error {
		env := intconfig.LoadEnv()
		db, err := intconfig.ConnectDB(env)
		if err != nil {
			return err
		}
		defer intconfig.CloseDB()

		ctx, cancel := context.WithTimeout(cmd.Context(), time.Minute)
		defer cancel()
		if err := intdb.Migrate(ctx, db); err != nil {
			return err
		}
		log.Println("migration complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
