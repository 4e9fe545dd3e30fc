package cmd

import (
	"fmt"
	"strings"
	"time"

	"skirmish/cli"
	"skirmish/wire"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var actionCmd = &cobra.Command{
	Use:   "action <session> <kind> <actor> <target?>",
	Short: "Records an action in a session.",
	Long:  fmt.Sprintf("Records an action in a session. Kind is one of %s.", kindList()),
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, err := wire.ParseActionKind(args[1])
		if err != nil {
			return errors.Wrapf(err, "kind must be one of %s", kindList())
		}
		var target string
		if len(args) == 4 {
			target = args[3]
		}
		return withEnv(cmd, func(env *cli.Env, r *cli.Renderer) error {
			s, err := env.Manager.RecordAction(args[0], wire.NewAction(kind, args[2], target, time.Now()))
			if err != nil {
				return err
			}
			return r.Session(s)
		})
	},
}

func kindList() string {
	var names []string
	for _, k := range wire.ActionKinds() {
		names = append(names, k.String())
	}
	return strings.Join(names, ", ")
}

func init() {
	rootCmd.AddCommand(actionCmd)
}
