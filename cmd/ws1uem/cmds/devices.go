package cmds

import (
	"fmt"
	"ws1uem/internal/resources"
	"ws1uem/internal/uem"

	"github.com/spf13/cobra"
)

// newDevicesCommand creates the devices command.
//
// Usage:
//
//	ws1uem devices search --param user=jdoe
//	ws1uem devices details 1234
//	ws1uem devices details --serial C02XK0ABJGH5
//	ws1uem devices command Lock 1234
//	ws1uem devices command SyncDevice C02XK0ABJGH5 --search-by Serialnumber
func newDevicesCommand(opts *GlobalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "Search, inspect and manage enrolled devices",
	}
	cmd.AddCommand(
		newDevicesSearchCommand(opts),
		newDevicesDetailsCommand(opts),
		newDevicesDeleteCommand(opts),
		newDevicesCommandCommand(opts),
		newDevicesClearPasscodeCommand(opts),
	)
	return cmd
}

func newDevicesSearchCommand(opts *GlobalOptions) *cobra.Command {
	var params []string
	var version int
	cmd := &cobra.Command{
		Use:   "search",
		Short: "Search devices",
		Long: `Search devices. --version 2 or 3 selects the newer search representations;
without it the legacy /devices search is used.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := parseParams(params)
			if err != nil {
				return err
			}
			set, err := newResources(cmd, opts)
			if err != nil {
				return err
			}
			var r *uem.Result
			switch version {
			case 0:
				r, err = set.Devices.Search(cmd.Context(), p)
			case 2:
				r, err = set.Devices.SearchV2(cmd.Context(), p)
			case 3:
				r, err = set.Devices.SearchV3(cmd.Context(), p)
			default:
				return fmt.Errorf("--version must be 2 or 3, got %d", version)
			}
			if err != nil {
				return err
			}
			return render(cmd, opts, r)
		},
	}
	cmd.Flags().StringArrayVarP(&params, "param", "p", nil, "search parameter key=value, repeatable")
	cmd.Flags().IntVar(&version, "version", 0, "search representation version (2 or 3)")
	return cmd
}

func newDevicesDetailsCommand(opts *GlobalOptions) *cobra.Command {
	var alt resources.AltID
	cmd := &cobra.Command{
		Use:   "details [device-id]",
		Short: "Show a device by id or by an alternate identifier",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := newResources(cmd, opts)
			if err != nil {
				return err
			}
			var r *uem.Result
			if len(args) == 1 {
				r, err = set.Devices.GetDetails(cmd.Context(), args[0])
			} else {
				r, err = set.Devices.GetDetailsByAltID(cmd.Context(), alt)
				if err == nil && r == nil {
					return fmt.Errorf("give a device id or one of --serial, --mac, --udid, --imei, --easid")
				}
			}
			if err != nil {
				return err
			}
			return render(cmd, opts, r)
		},
	}
	cmd.Flags().StringVar(&alt.SerialNumber, "serial", "", "serial number")
	cmd.Flags().StringVar(&alt.MACAddress, "mac", "", "MAC address")
	cmd.Flags().StringVar(&alt.UDID, "udid", "", "UDID")
	cmd.Flags().StringVar(&alt.IMEINumber, "imei", "", "IMEI number")
	cmd.Flags().StringVar(&alt.EASID, "easid", "", "Exchange ActiveSync id")
	return cmd
}

func newDevicesDeleteCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <device-id>",
		Short: "Delete a device from management",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := newResources(cmd, opts)
			if err != nil {
				return err
			}
			r, err := set.Devices.Delete(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, opts, r)
		},
	}
}

func newDevicesCommandCommand(opts *GlobalOptions) *cobra.Command {
	var searchBy string
	cmd := &cobra.Command{
		Use:   "command <command> <id>",
		Short: "Send a device command (Lock, SyncDevice, EnterpriseWipe...)",
		Long: `Send a device command. <id> is the device id, or with --search-by the value
of the given alternate identifier (Serialnumber, Macaddress, Udid, ImeiNumber).`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := newResources(cmd, opts)
			if err != nil {
				return err
			}
			var r *uem.Result
			if searchBy == "" {
				r, err = set.Devices.SendCommand(cmd.Context(), args[0], args[1])
			} else {
				r, err = set.Devices.SendCommandByAltID(cmd.Context(), args[0], searchBy, args[1])
			}
			if err != nil {
				return err
			}
			return render(cmd, opts, r)
		},
	}
	cmd.Flags().StringVar(&searchBy, "search-by", "", "alternate identifier type of <id>")
	return cmd
}

func newDevicesClearPasscodeCommand(opts *GlobalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-passcode <device-id>",
		Short: "Clear the passcode of a device",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			set, err := newResources(cmd, opts)
			if err != nil {
				return err
			}
			r, err := set.Devices.ClearPasscode(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(cmd, opts, r)
		},
	}
}
