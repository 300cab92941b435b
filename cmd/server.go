package cmd

import (
	"net/http"

	"github.com/clearday/clearday/internal/logger"
	"github.com/clearday/clearday/internal/server"
	"github.com/clearday/clearday/internal/storage/bolt"
	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "Start the HTTP server",
	Long:  `The "server" command starts the clearday API server backed by the configured database.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return startServer()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}

func startServer() error {
	store, err := bolt.Open(cfg.DBPath)
	if err != nil {
		logger.Error("failed to open database", "path", cfg.DBPath, "error", err)
		return err
	}
	defer store.Close()

	s := server.New(store, cfg)
	logger.Info("starting server", "addr", cfg.ListenAddr, "db", cfg.DBPath)
	return http.ListenAndServe(cfg.ListenAddr, s.Router())
}
