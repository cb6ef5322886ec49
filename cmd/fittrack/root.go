package fittrack

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	baseURLFlag     string
	timeoutFlag     int
	credentialsFlag string
)

var rootCmd = &cobra.Command{
	Use:   "fittrack",
	Short: "fittrack tracks workouts, friends, and health files from your terminal",
	Long:  "fittrack is a client for the Fitness-Tracker service: register, log in, and browse your workouts, exercises, sets, friends, and uploaded health files.",
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&baseURLFlag, "base-url", "", "Fitness-Tracker server URL (fallback: FITTRACK_BASE_URL)")
	rootCmd.PersistentFlags().IntVar(&timeoutFlag, "timeout", 0, "Request timeout in seconds (fallback: FITTRACK_TIMEOUT)")
	rootCmd.PersistentFlags().StringVar(&credentialsFlag, "credentials", "", "Path to credentials file")
}
