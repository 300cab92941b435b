package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/clearday/clearday/internal/apiclient"
	"github.com/clearday/clearday/internal/streak"
	"github.com/clearday/clearday/pkg/sobriety"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow your streak live, refreshing at each local midnight",
	Long: `The "watch" command stays running and reprints your streak every time a
new day begins in your timezone. Day lengths around daylight-saving
transitions are handled; a 23- or 25-hour day still ticks exactly once.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return watch(cmd)
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func watch(cmd *cobra.Command) error {
	client := apiclient.New(cfg.APIBaseURL)

	ctrl := streak.NewController(client, resolveUser())
	ctrl.OnChange = func(state sobriety.StreakState) {
		printState(cmd, state)
	}
	defer ctrl.Close()

	first := ctrl.Start(cmd.Context())
	if first.Err != nil {
		return fmt.Errorf("fetching streak data: %w", first.Err)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
	cmd.Println("\nStopping.")
	return nil
}

func printState(cmd *cobra.Command, state sobriety.StreakState) {
	if state.Err != nil {
		cmd.Printf("[%s] refresh failed: %v\n", state.Timezone, state.Err)
		return
	}
	if state.JourneyStartDate.IsZero() {
		cmd.Println("No start date set yet. Run `clearday begin --start YYYY-MM-DD` first.")
		return
	}
	cmd.Printf("[%s] current streak %d %s, journey %d %s\n",
		state.Timezone,
		state.CurrentStreakDays, pluralDays(state.CurrentStreakDays),
		state.JourneyDays, pluralDays(state.JourneyDays))
}
