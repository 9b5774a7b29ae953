package cmd

import (
	"github.com/spf13/cobra"

	"github.com/irixaligned/swat/internal/console"
	"github.com/irixaligned/swat/internal/fastboot"
)

var devicesFastbootPath string

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List devices visible to fastboot",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		p := console.NewPrinter(cmd.OutOrStdout())

		tool, err := locateFastboot(ctx, devicesFastbootPath)
		if err != nil {
			p.Error(err)
			return reported(err)
		}
		status, err := fastboot.Devices(ctx, tool)
		if err != nil {
			p.Error(err)
			return reported(err)
		}

		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), status)
		}
		if len(status.Devices) == 0 {
			p.Line("No devices found.")
			return nil
		}
		for _, d := range status.Devices {
			p.Line("%s\t%s", d.Serial, d.State)
		}
		if !status.CanFlash {
			p.PermissionHelp()
		}
		if status.Fastbootd {
			p.FastbootdWarning()
		}
		return nil
	},
}

func init() {
	devicesCmd.Flags().StringVar(&devicesFastbootPath, "fastboot-path", "", "Specify an alternate fastboot binary")
	rootCmd.AddCommand(devicesCmd)
}
