package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/devskill-org/lxpclient/cloud"
	"github.com/devskill-org/lxpclient/config"
)

func newLoginCmd() *cobra.Command {
	var account string
	var baseURL string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Authenticate against the cloud monitoring API and save a device config",
		Long: `Login prompts for the cloud account's password (without echoing it),
verifies the credentials with a real login request, then writes a config
file with transport set to "cloud" so subsequent read/write/discover
commands can reuse it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if account == "" {
				fmt.Fprint(os.Stderr, "account: ")
				reader := bufio.NewReader(os.Stdin)
				line, err := reader.ReadString('\n')
				if err != nil {
					return fmt.Errorf("reading account: %w", err)
				}
				account = strings.TrimSpace(line)
			}

			fmt.Fprint(os.Stderr, "password: ")
			passwordBytes, err := term.ReadPassword(int(os.Stdin.Fd()))
			fmt.Fprintln(os.Stderr)
			if err != nil {
				return fmt.Errorf("reading password: %w", err)
			}
			password := string(passwordBytes)

			client := cloud.New(account, password, cloud.WithBaseURL(baseURL))
			ctx := cmd.Context()
			if _, err := client.Login(ctx); err != nil {
				return fmt.Errorf("login failed: %w", err)
			}
			fmt.Println("login succeeded")

			cfg := config.DefaultConfig()
			cfg.Transport = "cloud"
			cfg.CloudAccount = account
			cfg.CloudPassword = password
			cfg.CloudBaseURL = baseURL
			if err := cfg.SaveConfig(configFile); err != nil {
				return fmt.Errorf("saving config: %w", err)
			}
			fmt.Printf("wrote %s\n", configFile)
			return nil
		},
	}

	cmd.Flags().StringVar(&account, "account", "", "cloud account email (prompted if omitted)")
	cmd.Flags().StringVar(&baseURL, "base-url", "https://monitor.eg4electronics.com", "cloud API base URL")
	return cmd
}
