package cmds

import (
	"ws1uem/internal/uem"

	"github.com/spf13/cobra"
)

func newUsersCommand(opts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Search and manage enrollment users",
	}
	cmd.AddCommand(
		newUsersSearchCommand(opts),
		&cobra.Command{
			Use:   "get <uuid>",
			Short: "Show an enrollment user",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				set, err := newResources(cmd, opts)
				if err != nil {
					return err
				}
				r, err := set.Users.GetByUUID(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return render(cmd, opts, r)
			},
		},
		newUsersDeleteCommand(opts),
	)
	return cmd
}

func newUsersSearchCommand(opts *GlobalOptions) *cobra.Command {
	var params []string
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search enrollment users (username, email, organizationgroupid...)",
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
			r, err := set.Users.Search(cmd.Context(), p)
			if err != nil {
				return err
			}
			return render(cmd, opts, r)
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "search parameter key=value, repeatable")
	return cmd
}

func newUsersDeleteCommand(opts *GlobalOptions) *cobra.Command {
	var byID bool
	cmd := &cobra.Command{
		Use:   "delete <uuid>",
		Short: "Delete an enrollment user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := newResources(cmd, opts)
			if err != nil {
				return err
			}
			var r *uem.Result
			if byID {
				r, err = set.Users.DeleteByID(cmd.Context(), args[0])
			} else {
				r, err = set.Users.DeleteByUUID(cmd.Context(), args[0])
			}
			if err != nil {
				return err
			}
			return render(cmd, opts, r)
		},
	}
	cmd.Flags().BoolVar(&byID, "id", false, "the argument is the numeric user id, not the uuid")
	return cmd
}
