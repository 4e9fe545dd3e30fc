package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"

	"skirmish/cli"
	"skirmish/cmd/skirmish/cmd/unsafe"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:           "skirmish",
	Short:         "Records skirmishes between a party and its opponents.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String(cli.FlagHome, "~/.skirmish", "Home directory for config, sessions and the session index.")
	rootCmd.PersistentFlags().String(cli.FlagFormat, "text", "Output format. One of text, json or yaml.")
	unsafe.AddCmd(rootCmd)
}

// withEnv loads the home directory's environment, hands it to cb together
// with a renderer for stdout, and closes it afterwards.
func withEnv(cmd *cobra.Command, cb func(env *cli.Env, r *cli.Renderer) error) (err error) {
	format, err := cli.GetFormat(cmd)
	if err != nil {
		return err
	}
	env, err := cli.LoadEnv(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if cErr := env.Close(); cErr != nil && err == nil {
			err = cErr
		}
	}()
	return cb(env, cli.NewRenderer(os.Stdout, format, env.Config.Display))
}

func parseHealth(s string) (uint8, error) {
	h, err := strconv.ParseUint(s, 10, 8)
	if err != nil {
		return 0, errors.Errorf("invalid health %q: must be between 0 and 255", s)
	}
	return uint8(h), nil
}
