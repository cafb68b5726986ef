package cli

import (
	"github.com/spf13/cobra"

	"github.com/faucetdb/ppls/internal/command"
)

func newProfileCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:     "profile",
		Aliases: []string{"whoami"},
		Short:   "Show profile details",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(cmd, a, command.Profile, 0)
		},
	}
}
