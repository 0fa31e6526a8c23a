package commands

import (
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/goblinsan/things-diff/pkg/config"
	"github.com/goblinsan/things-diff/pkg/types"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	logger  = slog.New(slog.NewTextHandler(os.Stderr, nil))
	rootCmd = &cobra.Command{
		Use:   "things-diff",
		Short: "Compare your GitHub issues with your Things tasks",
		Long: `things-diff fetches the GitHub issues assigned to you and compares them
with the tasks in Things that reference them as "Issue #<number>". It reports
issues that have no task and tasks whose issue is gone. Nothing is modified
on either side.`,
		SilenceUsage: true,
		Run: func(cmd *cobra.Command, args []string) {
			// Default action when no subcommand is specified
			cmd.Help()
		},
	}
)

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $HOME/.things-diff/config.yml)")
	rootCmd.PersistentFlags().String("token", "", "GitHub personal access token")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	// Bind flags to viper
	viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
}

// initConfig sets up logging and reads ENV variables if set. The config file
// itself is loaded by the commands that need it.
func initConfig() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	viper.SetEnvPrefix("THINGS_DIFF")
	viper.AutomaticEnv()
}

// loadConfig reads the config file selected by --config.
func loadConfig() (*types.Config, error) {
	cfg, err := config.Load(viper.GetViper(), cfgFile)
	if errors.Is(err, config.ErrNotFound) {
		return nil, fmt.Errorf(`%w

Please create config.yml and edit.
  $ mkdir ~/.things-diff/
  $ things-diff sampleconf > ~/.things-diff/config.yml
  $ vi ~/.things-diff/config.yml`, err)
	}
	if err != nil {
		return nil, err
	}
	logger.Debug("using config file", "path", viper.ConfigFileUsed())
	return cfg, nil
}
