package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"employee-portal/internal/client"
	"employee-portal/internal/config"
	"employee-portal/internal/logger"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "portalctl",
		Short: "Administer the employee portal from the command line",
		Long: `portalctl talks to the employee portal REST API. Configure it with
API_BASE_URL plus either API_TOKEN or API_USERNAME/API_PASSWORD.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			_ = godotenv.Load()
			logger.Setup("error")
		},
	}

	cmd.AddCommand(
		newLoginCmd(),
		newTeamsCmd(),
		newEmployeesCmd(),
		newAttendanceCmd(),
	)
	return cmd
}

// credentialsTokenSource logs in on first use and caches the issued token
// for the rest of the process
type credentialsTokenSource struct {
	client   *client.Client
	username string
	password string
	token    string
}

func (s *credentialsTokenSource) Token() (string, error) {
	if s.token != "" {
		return s.token, nil
	}
	result, err := s.client.Login(context.Background(), s.username, s.password)
	if err != nil {
		return "", err
	}
	s.token = result.AccessToken
	return s.token, nil
}

// newPortalClient builds an authenticated API client. An explicit token wins
// over stored credentials.
func newPortalClient() (*client.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	if cfg.APIToken != "" {
		return client.NewClient(cfg, client.StaticToken(cfg.APIToken)), nil
	}
	if cfg.APIUsername != "" {
		c := client.NewClient(cfg, nil)
		c.SetTokenSource(&credentialsTokenSource{
			client:   client.NewClient(cfg, nil),
			username: cfg.APIUsername,
			password: cfg.APIPassword,
		})
		return c, nil
	}
	return nil, fmt.Errorf("no credentials configured: set API_TOKEN or API_USERNAME and API_PASSWORD")
}
