package fittrack

import (
	"encoding/json"
	"fmt"

	"github.com/RohitValiveti/Fitness-Tracker/internal/api"
	"github.com/spf13/cobra"
)

var (
	userPublic bool
	userJSON   bool
)

var userCmd = &cobra.Command{
	Use:   "user <id>",
	Short: "Show a user profile",
	Long:  "Shows a user profile. With a valid session this is the owner's full view; with --public (or no session) it is the reduced public projection.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := parseIDArg("user id", args[0])
		if err != nil {
			return err
		}
		return withClient(func(client *api.Client) error {
			user, err := client.ResolveUser(cmd.Context(), id, !userPublic)
			if err != nil {
				if notFound(err) {
					fmt.Fprintln(cmd.OutOrStdout(), "User not found")
					return nil
				}
				return err
			}
			if userJSON {
				b, err := json.MarshalIndent(user, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal user json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			printLoginUser(cmd.OutOrStdout(), user)
			return nil
		})
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List all registered users",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *api.Client) error {
			users, err := client.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			if len(users) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No users registered")
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), "ID\tUSER")
			for _, u := range users {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\n", u.ID, u.Username)
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(userCmd, usersCmd)
	userCmd.Flags().BoolVar(&userPublic, "public", false, "Force the public reduced projection")
	userCmd.Flags().BoolVar(&userJSON, "json", false, "Output as JSON")
}
