package cmd

import (
	"fmt"

	"github.com/clearday/clearday/internal/apiclient"
	"github.com/clearday/clearday/internal/server"
	"github.com/clearday/clearday/pkg/sobriety"
	"github.com/spf13/cobra"
)

var (
	resetOccurred string
	resetRestart  string
	resetNote     string
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Log a relapse and restart the current streak",
	Long: `The "reset" command records a relapse. The current streak restarts on
--restart, which defaults to the day after --occurred. The journey count
is unaffected; it always runs from your original start date.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return logReset(cmd)
	},
}

func init() {
	resetCmd.Flags().StringVar(&resetOccurred, "occurred", "", "date the relapse occurred, e.g. 2024-03-01 (required)")
	resetCmd.Flags().StringVar(&resetRestart, "restart", "", "date the streak restarts (default: day after occurred)")
	resetCmd.Flags().StringVar(&resetNote, "note", "", "optional note")
	_ = resetCmd.MarkFlagRequired("occurred")
	rootCmd.AddCommand(resetCmd)
}

func logReset(cmd *cobra.Command) error {
	occurred, err := sobriety.ParseDate(resetOccurred)
	if err != nil {
		return err
	}
	var restart sobriety.Date
	if resetRestart != "" {
		if restart, err = sobriety.ParseDate(resetRestart); err != nil {
			return err
		}
	}

	client := apiclient.New(cfg.APIBaseURL)
	event, err := client.LogReset(cmd.Context(), resolveUser(), server.ResetRequest{
		OccurredOn:  occurred,
		RestartDate: restart,
		Note:        resetNote,
	})
	if err != nil {
		return fmt.Errorf("logging reset: %w", err)
	}

	cmd.Printf("Reset logged for %s; current streak restarts %s\n",
		event.OccurredOn, event.RestartDate)
	return nil
}
