package cmd

import (
	"fmt"

	"skirmish/cli"

	"github.com/spf13/cobra"
)

var rmCmd = &cobra.Command{
	Use:   "rm <name>",
	Short: "Deletes a session.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(env *cli.Env, r *cli.Renderer) error {
			if err := env.Manager.Delete(args[0]); err != nil {
				return err
			}
			fmt.Printf("Session %s deleted.\n", args[0])
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(rmCmd)
}
