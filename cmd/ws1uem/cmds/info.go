package cmds

import (
	"github.com/spf13/cobra"
)

func newInfoCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info",
		Short: "Show the environment's system information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := newResources(cmd, opts)
			if err != nil {
				return err
			}
			r, err := set.Info.GetEnvironmentInfo(cmd.Context())
			if err != nil {
				return err
			}
			return render(cmd, opts, r)
		},
	}
}
