package unsafe

import (
	"fmt"

	"skirmish/cli"
	"skirmish/store"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var resetIndexCmd = &cobra.Command{
	Use:   "reset-index",
	Short: "Wipes the session index. Sessions are re-indexed the next time they are saved.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		env, err := cli.LoadEnv(cmd)
		if err != nil {
			return err
		}
		if env.DB == nil {
			return errors.New("the session index is disabled")
		}
		if err := store.TruncateSessionStore(env.DB); err != nil {
			env.Close()
			return errors.Wrap(err, "error truncating session index")
		}
		if err := env.Close(); err != nil {
			return err
		}
		fmt.Println("Session index wiped.")
		return nil
	},
}

func init() {
	cmd.AddCommand(resetIndexCmd)
}
