package commands

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/urfave/cli/v2"
	"github.com/zalando/go-keyring"

	"github.com/jrnhq/jrn/internal/api"
	"github.com/jrnhq/jrn/internal/cliconfig"
)

// NewLoginCommand creates the 'login' command.
func NewLoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Authenticate against the JRN server and store the session token",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "server",
				Aliases: []string{"s"},
				Usage:   "Server base URL (saved for future commands)",
			},
		},
		Action: func(c *cli.Context) error {
			if serverURL := c.String("server"); serverURL != "" {
				cfg, err := cliconfig.Load()
				if err != nil {
					return err
				}
				cfg.ServerURL = serverURL
				if err := cliconfig.Save(cfg); err != nil {
					return err
				}
			}

			var password string
			prompt := &survey.Password{Message: "Access password:"}
			if err := survey.AskOne(prompt, &password, survey.WithValidator(survey.Required)); err != nil {
				return err
			}

			client := api.NewClient()
			token, err := client.Login(password)
			if err != nil {
				return fmt.Errorf("login failed: %w", err)
			}

			if err := keyring.Set(api.KeyringService, api.KeyringTokenKey, token); err != nil {
				return fmt.Errorf("failed to store token in keyring: %w", err)
			}

			fmt.Println("✅ Logged in")
			return nil
		},
	}
}

// NewLogoutCommand creates the 'logout' command.
func NewLogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Clear the stored session",
		Action: func(c *cli.Context) error {
			client := api.NewClient()
			// Best effort: the local token is dropped even if the server
			// call fails.
			_ = client.Logout()

			if err := keyring.Delete(api.KeyringService, api.KeyringTokenKey); err != nil && err != keyring.ErrNotFound {
				return err
			}

			fmt.Println("👋 Logged out")
			return nil
		},
	}
}
