package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"employee-portal/internal/client"
	"employee-portal/internal/config"
)

func newLoginCmd() *cobra.Command {
	var username, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Exchange credentials for an access token",
		Long:  "Logs in and prints the access token. Export it as API_TOKEN for later commands.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if username == "" {
				username = cfg.APIUsername
			}
			if password == "" {
				password = cfg.APIPassword
			}
			if username == "" {
				return fmt.Errorf("username is required")
			}

			c := client.NewClient(cfg, nil)
			result, err := c.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}

			fmt.Printf("Logged in as %s (%s)\n", result.User.Username, result.User.Role)
			fmt.Printf("export API_TOKEN=%s\n", result.AccessToken)
			return nil
		},
	}

	cmd.Flags().StringVarP(&username, "username", "u", "", "login username")
	cmd.Flags().StringVarP(&password, "password", "p", "", "login password")
	return cmd
}
