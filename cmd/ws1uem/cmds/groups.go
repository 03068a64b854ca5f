package cmds

import (
	"github.com/spf13/cobra"
)

func newGroupsCommand(opts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "groups",
		Short: "Search organization groups",
	}
	cmd.AddCommand(
		newGroupsSearchCommand(opts),
		&cobra.Command{
			Use:   "get-id <group-id>",
			Short: "Print the numeric id of the organization group with the given Group ID",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				set, err := newResources(cmd, opts)
				if err != nil {
					return err
				}
				id, err := set.Groups.GetIDFromGroupID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return renderValue(cmd, opts, id)
			},
		},
	)
	return cmd
}

func newGroupsSearchCommand(opts *GlobalOptions) *cobra.Command {
	var params []string
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search organization groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseParams(params)
			if err != nil {
				return err
			}
			set, err := newResources(cmd, opts)
			if err != nil {
				return err
			}
			r, err := set.Groups.Search(cmd.Context(), p)
			if err != nil {
				return err
			}
			return render(cmd, opts, r)
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "search parameter key=value, repeatable")
	return cmd
}
