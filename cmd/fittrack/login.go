package fittrack

import (
	"fmt"

	"github.com/RohitValiveti/Fitness-Tracker/internal/api"
	"github.com/RohitValiveti/Fitness-Tracker/internal/app"
	"github.com/spf13/cobra"
)

var (
	loginEmail    string
	loginPassword string
)

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Log in with email and password",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withClient(func(client *api.Client) error {
			session, user, err := client.Login(cmd.Context(), loginEmail, loginPassword)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", loginEmail)
			fmt.Fprintf(cmd.OutOrStdout(), "Session valid until %s\n", formatInstant(session.Expiration))
			if user != nil {
				printLoginUser(cmd.OutOrStdout(), *user)
			}
			return nil
		})
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Log out and forget the stored session",
	RunE: func(cmd *cobra.Command, args []string) error {
		credPath, err := resolveCredentialsPath()
		if err != nil {
			return err
		}
		err = withClient(func(client *api.Client) error {
			return client.Logout(cmd.Context())
		})
		// The local credential goes away even when the server call failed.
		if rmErr := app.DeleteCredentials(credPath); rmErr != nil {
			return rmErr
		}
		if err != nil {
			fmt.Fprintf(cmd.OutOrStderr(), "Server logout failed (%v); local session cleared\n", err)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loginCmd, logoutCmd)
	loginCmd.Flags().StringVar(&loginEmail, "email", "", "Email address (login identifier)")
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "Password")
	_ = loginCmd.MarkFlagRequired("email")
	_ = loginCmd.MarkFlagRequired("password")
}
