package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/yatube/yatube/cmd/yatube/output"
	"github.com/yatube/yatube/pkg/yatube/config"
	"github.com/yatube/yatube/pkg/yatube/database"
	"github.com/yatube/yatube/pkg/yatube/models"
	"gorm.io/gorm"
)

var (
	// Global flags
	dbDriver string
	dbDSN    string
	logSQL   bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "yatube",
	Short: "Yatube - a small blogging platform",
	Long: `Yatube is a blogging platform: authors publish posts, optionally in
groups, readers comment and follow authors they like.

Configuration is read from the environment (and a .env file in the working
directory). Flags override it.`,
	SilenceUsage: true,
	// Execute prints the error once, styled
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		output.Error("%v", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbDriver, "db-driver", "", "Database driver: sqlite, mysql or postgres")
	rootCmd.PersistentFlags().StringVar(&dbDSN, "db", "", "Database DSN (file name for sqlite)")
	rootCmd.PersistentFlags().BoolVar(&logSQL, "log-sql", false, "Log every SQL statement")
}

// loadConfig applies global flags on top of the environment
func loadConfig(cmd *cobra.Command) config.Config {
	cfg := config.Load()
	if dbDriver != "" {
		cfg.DBDriver = dbDriver
	}
	if dbDSN != "" {
		cfg.DBDSN = dbDSN
	}
	if cmd.Flags().Changed("log-sql") {
		cfg.LogSQL = logSQL
	}
	return cfg
}

// openDB connects and brings the schema up to date
func openDB(cfg config.Config) (*gorm.DB, error) {
	if err := database.Connect(cfg); err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	db := database.GetDB()
	if err := models.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return db, nil
}
