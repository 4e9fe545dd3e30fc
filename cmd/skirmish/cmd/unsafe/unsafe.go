package unsafe

import (
	"github.com/spf13/cobra"
)

var cmd = &cobra.Command{
	Use:   "unsafe",
	Short: "Commands that modify skirmish's data directly on disk.",
}

func AddCmd(parent *cobra.Command) {
	parent.AddCommand(cmd)
}
