package commands

import (
	"github.com/spf13/cobra"
	"github.com/yatube/yatube/cmd/yatube/output"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		if _, err := openDB(cfg); err != nil {
			return err
		}
		output.Success("Schema is up to date (%s %s)", cfg.DBDriver, cfg.DBDSN)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
