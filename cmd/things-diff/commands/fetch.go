package commands

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goblinsan/things-diff/pkg/engine"
	"github.com/goblinsan/things-diff/pkg/github"
	"github.com/goblinsan/things-diff/pkg/snapshot"
	"github.com/goblinsan/things-diff/pkg/types"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(fetchCmd)
}

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch assigned GitHub issues into the data file",
	Long:  `Fetch the open GitHub issues assigned to the configured user for every project and overwrite the data file with them.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		return runFetch(cmd.Context(), github.NewClient(cfg.Token), cfg, os.Stdout)
	},
}

// runFetch fetches every configured project and saves the snapshot. The data
// file is only written once every project has been fetched.
func runFetch(ctx context.Context, client engine.GitHubClient, cfg *types.Config, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	snap, err := engine.Fetch(ctx, client, cfg, engine.FetchOptions{
		Progress: out,
		Logger:   logger,
	})
	if err != nil {
		return err
	}

	if err := snapshot.Save(snap, cfg.DataFile); err != nil {
		return err
	}
	fmt.Fprintf(out, "Saved: %s\n", cfg.DataFile)
	return nil
}
