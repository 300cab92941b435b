package cmd

import (
	"fmt"

	"github.com/clearday/clearday/internal/apiclient"
	"github.com/clearday/clearday/internal/server"
	"github.com/clearday/clearday/pkg/sobriety"
	"github.com/spf13/cobra"
)

var (
	beginStartDate string
	beginTimezone  string
)

var beginCmd = &cobra.Command{
	Use:   "begin",
	Short: "Set or update your sobriety start date",
	Long: `The "begin" command creates (or updates) your profile with the date your
journey started and, optionally, the IANA timezone your day boundaries
should follow. Without --timezone, the server host's timezone applies.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return begin(cmd)
	},
}

func init() {
	beginCmd.Flags().StringVar(&beginStartDate, "start", "", "start date, e.g. 2024-01-01 (required)")
	beginCmd.Flags().StringVar(&beginTimezone, "timezone", "", "IANA timezone, e.g. America/New_York")
	_ = beginCmd.MarkFlagRequired("start")
	rootCmd.AddCommand(beginCmd)
}

func begin(cmd *cobra.Command) error {
	start, err := sobriety.ParseDate(beginStartDate)
	if err != nil {
		return err
	}
	tz := beginTimezone
	if tz == "" {
		tz = cfg.DefaultTimezone
	}

	client := apiclient.New(cfg.APIBaseURL)
	profile, err := client.PutProfile(cmd.Context(), resolveUser(), server.ProfileRequest{
		StartDate: start,
		Timezone:  tz,
	})
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}

	cmd.Printf("Journey start set to %s", profile.StartDate)
	if profile.Timezone != "" {
		cmd.Printf(" (%s)", profile.Timezone)
	}
	cmd.Println()
	return nil
}
