package commands

import (
	"fmt"

	"github.com/goblinsan/things-diff/pkg/config"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(sampleconfCmd)
}

var sampleconfCmd = &cobra.Command{
	Use:   "sampleconf",
	Short: "Print a sample config file",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprint(cmd.OutOrStdout(), config.Sample)
	},
}
