package fittrack

import (
	"fmt"

	"github.com/RohitValiveti/Fitness-Tracker/internal/api"
	"github.com/spf13/cobra"
)

var sessionCmd = &cobra.Command{
	Use:   "session",
	Short: "Inspect or refresh the current session",
}

var sessionShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored session state",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *api.Client) error {
			s := client.Session.Session()
			if s.Token == "" {
				fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
				return nil
			}
			state := "expired"
			if client.Session.Valid() {
				state = "valid"
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session %s until %s\n", state, formatInstant(s.Expiration))
			return nil
		})
	},
}

var sessionRefreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Exchange the update token for a fresh session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *api.Client) error {
			session, err := client.RefreshSession(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Session refreshed, valid until %s\n", formatInstant(session.Expiration))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(sessionCmd)
	sessionCmd.AddCommand(sessionShowCmd, sessionRefreshCmd)
}
