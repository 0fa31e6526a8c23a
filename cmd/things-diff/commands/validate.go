package commands

import (
	"fmt"
	"os"

	"github.com/goblinsan/things-diff/pkg/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the config file",
	Long:  `Validate the config file for correctness. Checks that data_file is set and that every project is a unique owner/repo name with no repeated milestones.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		errs := config.Validate(cfg)
		if len(errs) > 0 {
			fmt.Fprintf(os.Stderr, "Validation failed with %d error(s):\n", len(errs))
			for i, e := range errs {
				fmt.Fprintf(os.Stderr, "  %d. %s\n", i+1, e)
			}
			os.Exit(1)
		}

		fmt.Printf("Config is valid: %d project(s), data file %s\n", len(cfg.Projects), cfg.DataFile)
		return nil
	},
}
