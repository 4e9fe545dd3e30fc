package cmd

import (
	"fmt"

	"skirmish/version"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use: "version",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(version.UserAgent)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
