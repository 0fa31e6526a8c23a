package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/goblinsan/things-diff/pkg/github"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Display information about the authenticated GitHub user",
	Long:  `Display information about the authenticated GitHub user using the configured token.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		token := viper.GetString("token")
		if cfg, err := loadConfig(); err == nil && cfg.Token != "" {
			token = cfg.Token
		}
		if token == "" {
			return fmt.Errorf("GitHub token is required. Set it via --token flag, THINGS_DIFF_TOKEN environment variable, or config file")
		}

		client := github.NewClient(token)
		user, err := client.GetAuthenticatedUser(context.Background())
		if err != nil {
			return fmt.Errorf("failed to get authenticated user: %w", err)
		}

		fmt.Fprintf(os.Stdout, "Logged in as: %s\n", user.GetLogin())
		if user.GetName() != "" {
			fmt.Fprintf(os.Stdout, "Name: %s\n", user.GetName())
		}
		if user.GetEmail() != "" {
			fmt.Fprintf(os.Stdout, "Email: %s\n", user.GetEmail())
		}

		return nil
	},
}
