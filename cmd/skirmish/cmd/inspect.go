package cmd

import (
	"skirmish/cli"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <name>",
	Short: "Dumps the raw record tree of a stored session.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(env *cli.Env, r *cli.Renderer) error {
			v, err := env.Manager.Inspect(args[0])
			if err != nil {
				return err
			}
			return r.Value(v)
		})
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
