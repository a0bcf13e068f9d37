package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/spec-kit/spoc-booking/internal/config"
)

var serverURL string

// rootCmd is the base command for spocctl.
var rootCmd = &cobra.Command{
	Use:   "spocctl",
	Short: "Drive the SPOC booking workflow from the terminal",
	Long: `spocctl talks to the SPOC booking service: browse experts and their
availability, submit client requirements and confirm a meeting booking.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

// Execute runs the CLI.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "", "booking service base URL (defaults to BOOKING_SERVICE_URL)")
}

func remoteConfig() (config.RemoteConfig, error) {
	cfg, err := config.Load()
	if err != nil {
		return config.RemoteConfig{}, err
	}
	remote := cfg.Remote
	if serverURL != "" {
		remote.BaseURL = serverURL
	}
	return remote, nil
}
