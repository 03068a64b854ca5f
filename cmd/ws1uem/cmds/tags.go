package cmds

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTagsCommand(opts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tags",
		Short: "Assign device tags",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "add <tag-id> <device-id>",
			Short: "Tag a device",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				set, err := newResources(cmd, opts)
				if err != nil {
					return err
				}
				r, err := set.Tags.AddDevice(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return render(cmd, opts, r)
			},
		},
		&cobra.Command{
			Use:   "remove <tag-id> <device-id>",
			Short: "Untag a device",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				set, err := newResources(cmd, opts)
				if err != nil {
					return err
				}
				r, err := set.Tags.RemoveDevice(cmd.Context(), args[0], args[1])
				if err != nil {
					return err
				}
				return render(cmd, opts, r)
			},
		},
		newTagsCheckCommand(opts),
	)
	return cmd
}

func newTagsCheckCommand(opts *GlobalOptions) *cobra.Command {
	var deviceID, deviceUUID string
	cmd := &cobra.Command{
		Use:   "check <tag-id>",
		Short: "Print whether a device carries the tag",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if deviceID == "" && deviceUUID == "" {
				return fmt.Errorf("one of --device-id or --device-uuid is required")
			}
			set, err := newResources(cmd, opts)
			if err != nil {
				return err
			}
			ok, err := set.Tags.HasDevice(cmd.Context(), args[0], deviceID, deviceUUID)
			if err != nil {
				return err
			}
			return renderValue(cmd, opts, ok)
		},
	}
	cmd.Flags().StringVar(&deviceID, "device-id", "", "device id")
	cmd.Flags().StringVar(&deviceUUID, "device-uuid", "", "device uuid")
	return cmd
}
