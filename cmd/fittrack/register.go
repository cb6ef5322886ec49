package fittrack

import (
	"encoding/json"
	"fmt"

	"github.com/RohitValiveti/Fitness-Tracker/internal/api"
	"github.com/spf13/cobra"
)

var (
	registerEmail    string
	registerPassword string
	registerUsername string
	registerJSON     bool
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *api.Client) error {
			session, user, err := client.Register(cmd.Context(), registerEmail, registerPassword, registerUsername)
			if err != nil {
				return err
			}
			if registerJSON {
				b, err := json.MarshalIndent(map[string]any{
					"session_expiration": session.Expiration,
					"user":               user,
				}, "", "  ")
				if err != nil {
					return fmt.Errorf("marshal register json: %w", err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), string(b))
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Registered %s\n", registerEmail)
			fmt.Fprintf(cmd.OutOrStdout(), "Session valid until %s\n", formatInstant(session.Expiration))
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(registerCmd)
	registerCmd.Flags().StringVar(&registerEmail, "email", "", "Email address (login identifier)")
	registerCmd.Flags().StringVar(&registerPassword, "password", "", "Password (min 8 characters)")
	registerCmd.Flags().StringVar(&registerUsername, "username", "", "Display name (min 3 characters)")
	registerCmd.Flags().BoolVar(&registerJSON, "json", false, "Output as JSON")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("username")
}
