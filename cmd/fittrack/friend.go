package fittrack

import (
	"fmt"

	"github.com/RohitValiveti/Fitness-Tracker/internal/api"
	"github.com/spf13/cobra"
)

var friendCmd = &cobra.Command{
	Use:   "friend",
	Short: "Manage friend links",
}

var friendAddCmd = &cobra.Command{
	Use:   "add <user-id>",
	Short: "Link another user as a friend",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg("user id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(client *api.Client) error {
			friend, err := client.AddFriend(cmd.Context(), id)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added friend %d (%s)\n", friend.ID, friend.Username)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(friendCmd)
	friendCmd.AddCommand(friendAddCmd)
}
