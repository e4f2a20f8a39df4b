package cmd

import (
	"fmt"

	"github.com/meysamhadeli/solid/config"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the solid version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "solid %s\n", config.DefaultConfig.Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
