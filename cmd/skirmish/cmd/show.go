package cmd

import (
	"skirmish/cli"

	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:     "show <name>",
	Aliases: []string{"load"},
	Short:   "Shows a session's party, opponents and history.",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(env *cli.Env, r *cli.Renderer) error {
			s, err := env.Manager.Load(args[0])
			if err != nil {
				return err
			}
			return r.Session(s)
		})
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
