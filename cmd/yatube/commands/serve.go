package commands

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/yatube/yatube/cmd/yatube/output"
	"github.com/yatube/yatube/pkg/yatube/server"
)

var (
	bindAddress string
	mediaRoot   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	Long: `Migrate the database and serve the site.

Examples:
  yatube serve                          # listen on BIND_ADDRESS (0.0.0.0:8080)
  yatube serve --bind 127.0.0.1:9000    # custom address
  yatube serve --db-driver postgres --db "postgres://..."`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig(cmd)
		if bindAddress != "" {
			cfg.BindAddress = bindAddress
		}
		if mediaRoot != "" {
			cfg.MediaRoot = mediaRoot
		}
		if !cfg.DebugMode {
			gin.SetMode(gin.ReleaseMode)
		}

		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		output.Success("Database ready (%s)", cfg.DBDriver)

		srv, err := server.New(cfg, db)
		if err != nil {
			return err
		}
		return srv.Run()
	},
}

func init() {
	serveCmd.Flags().StringVar(&bindAddress, "bind", "", "Address to listen on")
	serveCmd.Flags().StringVar(&mediaRoot, "media-root", "", "Directory for uploaded images (disk backend)")
	rootCmd.AddCommand(serveCmd)
}
