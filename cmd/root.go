package cmd

import (
	"os"

	"github.com/clearday/clearday/internal/config"
	"github.com/clearday/clearday/internal/logger"
	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	userFlag string
)

var rootCmd = &cobra.Command{
	Use:   "clearday",
	Short: "Track sobriety streaks, one day at a time",
	Long: `
	Clearday tracks how many days you've been sober: the unbroken current
	streak and the overall journey since day one. Day boundaries follow
	your local timezone, so streaks survive daylight-saving changes and
	travel.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		logger.Setup(cfg.LogLevel, cfg.LogFormat)
		return nil
	},
}

func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&userFlag, "user", "", "user id to act on (default from config)")
}

// resolveUser picks the user id for a command: flag, else config default.
func resolveUser() string {
	if userFlag != "" {
		return userFlag
	}
	return cfg.DefaultUser
}
