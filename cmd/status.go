package cmd

import (
	"fmt"

	"github.com/clearday/clearday/internal/apiclient"
	"github.com/clearday/clearday/internal/server"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show your current streak and journey",
	RunE: func(cmd *cobra.Command, args []string) error {
		return status(cmd)
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func status(cmd *cobra.Command) error {
	client := apiclient.New(cfg.APIBaseURL)
	resp, err := client.Streak(cmd.Context(), resolveUser())
	if err != nil {
		return fmt.Errorf("fetching streak: %w", err)
	}

	printStreak(cmd, resp)
	return nil
}

func printStreak(cmd *cobra.Command, resp *server.StreakResponse) {
	if resp.JourneyStartDate.IsZero() {
		cmd.Println("No start date set yet. Run `clearday begin --start YYYY-MM-DD` first.")
		return
	}

	cmd.Printf("Current streak: %d %s (since %s)\n",
		resp.CurrentStreakDays, pluralDays(resp.CurrentStreakDays), resp.CurrentStreakStartDate)
	cmd.Printf("Journey:        %d %s (since %s)\n",
		resp.JourneyDays, pluralDays(resp.JourneyDays), resp.JourneyStartDate)
	if resp.HasResetEvents && resp.MostRecentResetEvent != nil {
		cmd.Printf("Last reset:     %s\n", resp.MostRecentResetEvent.OccurredOn)
	}
	cmd.Printf("Timezone:       %s\n", resp.Timezone)
}

func pluralDays(n int) string {
	if n == 1 {
		return "day"
	}
	return "days"
}
