package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

// Version is set at build time: -ldflags "-X github.com/wonny/finlens/cmd/finlens/commands.Version=v1.0.0"
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "버전 출력",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "finlens %s\n", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
