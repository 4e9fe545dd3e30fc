package cmd

import (
	"skirmish/cli"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Decodes every stored session and checks it against the index.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withEnv(cmd, func(env *cli.Env, r *cli.Renderer) error {
			results, err := env.Manager.Verify(cmd.Context())
			if err != nil {
				return err
			}
			if err := r.VerifyResults(results); err != nil {
				return err
			}
			var failed int
			for _, res := range results {
				if !res.OK() {
					failed++
				}
			}
			if failed > 0 {
				return errors.Errorf("%d of %d session(s) failed verification", failed, len(results))
			}
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
}
