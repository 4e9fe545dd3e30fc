package cmd

import (
	"skirmish/cli"
	"skirmish/wire"

	"github.com/spf13/cobra"
)

var opponentCmd = &cobra.Command{
	Use:   "opponent <session> <name> <health?>",
	Short: "Adds an opponent to a session.",
	Args:  cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(env *cli.Env, r *cli.Renderer) error {
			opponent := wire.Entity{
				Name:   args[1],
				Health: uint8(env.Config.Sessions.DefaultHealth),
			}
			if len(args) == 3 {
				h, err := parseHealth(args[2])
				if err != nil {
					return err
				}
				opponent.Health = h
			}
			s, err := env.Manager.AddOpponent(args[0], opponent)
			if err != nil {
				return err
			}
			return r.Session(s)
		})
	},
}

func init() {
	rootCmd.AddCommand(opponentCmd)
}
