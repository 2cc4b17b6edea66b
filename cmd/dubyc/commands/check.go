package commands

import (
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check <tree.yaml...>",
	Short: "Type checks syntax trees without generating code",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if !runFiles(args, options{checkOnly: true}, cmd.OutOrStdout(), cmd.ErrOrStderr()) {
			return errReported
		}
		return nil
	},
}

func init() {
	AddCommand(checkCmd)
}
