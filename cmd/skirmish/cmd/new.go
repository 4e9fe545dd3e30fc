package cmd

import (
	"skirmish/cli"
	"skirmish/wire"

	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new <name> <health?>",
	Short: "Starts a new session led by the named entity.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(env *cli.Env, r *cli.Renderer) error {
			leader := wire.Entity{
				Name:   args[0],
				Health: uint8(env.Config.Sessions.DefaultHealth),
			}
			if len(args) == 2 {
				h, err := parseHealth(args[1])
				if err != nil {
					return err
				}
				leader.Health = h
			}
			s, err := env.Manager.Create(leader)
			if err != nil {
				return err
			}
			return r.Session(s)
		})
	},
}

func init() {
	rootCmd.AddCommand(newCmd)
}
