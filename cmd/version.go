package cmd

import (
	"github.com/clearday/clearday/internal/apiclient"
	"github.com/clearday/clearday/pkg/versioninfo"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	Long: `The "version" command displays the current version info for both client
and server if available.`,
	Run: func(cmd *cobra.Command, args []string) {
		version(cmd)
	},
}

func version(cmd *cobra.Command) {
	cmd.Printf("Client Version: %s\n", versioninfo.Version)

	client := apiclient.New(cfg.APIBaseURL)
	info, err := client.Version(cmd.Context())
	if err != nil {
		cmd.Println("Error fetching server version:", err)
		return
	}
	cmd.Printf("Server Version: %s\n", info.Version)
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
