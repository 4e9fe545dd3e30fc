package cmd

import (
	"skirmish/cli"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "Lists stored sessions.",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(env *cli.Env, r *cli.Renderer) error {
			infos, err := env.Manager.List()
			if err != nil {
				return err
			}
			return r.SessionInfos(infos)
		})
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
