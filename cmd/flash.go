package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/irixaligned/swat/internal/console"
	"github.com/irixaligned/swat/internal/engine"
	"github.com/irixaligned/swat/internal/fastboot"
)

var (
	flashFastbootPath string
	flashIgnoreMD5    bool
	flashDisableAVB   bool
	flashYes          bool
	flashReboot       bool
	flashNoReboot     bool
)

var errCannotFlash = errors.New("device not connected or insufficient permissions")

var flashCmd = &cobra.Command{
	Use:   "flash <flashfile.xml|firmware-dir>",
	Short: "Flash a device from a firmware manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		// Progress and prompts stay off stdout when it carries JSON.
		ui := cmd.OutOrStdout()
		if jsonOutput {
			ui = cmd.ErrOrStderr()
		}
		p := console.NewPrinter(ui)
		p.Banner()

		tool, err := locateFastboot(ctx, flashFastbootPath)
		if err != nil {
			p.Error(err)
			return reported(err)
		}
		manifestPath, err := resolveManifest(args[0])
		if err != nil {
			p.Error(err)
			return reported(err)
		}

		status, err := fastboot.Devices(ctx, tool)
		if err != nil {
			p.Error(err)
			return reported(err)
		}
		if !status.CanFlash {
			p.PermissionHelp()
			return reported(errCannotFlash)
		}
		if status.Fastbootd {
			p.FastbootdWarning()
		}

		m, err := loadManifest(manifestPath)
		if err != nil {
			p.Error(err)
			return reported(err)
		}

		p.Summary(console.Summary{
			FastbootPath: tool.Executable(),
			Flashfile:    manifestPath,
			IgnoreMD5:    flashIgnoreMD5,
			DisableAVB:   flashDisableAVB,
			Fastbootd:    status.Fastbootd,
			Steps:        len(m.Steps),
		})

		prompt := console.NewPrompter(cmd.InOrStdin(), ui)
		if !flashYes {
			ok, err := prompt.Confirm("ALL OF YOUR DATA WILL BE ERASED. Do you want to proceed?")
			if err != nil {
				return err
			}
			if !ok {
				p.Line("Exiting.")
				return nil
			}
		}

		policy := engine.Policy{
			SkipIntegrityCheck:  flashIgnoreMD5,
			DisableVerifiedBoot: flashDisableAVB,
		}
		rc := engine.NewRunContext(tool, policy, p.Handle)
		if settings.ArtifactsEnabled() {
			rc.ArtifactDir = settings.ArtifactDir
		}

		result, runErr := engine.Execute(ctx, m, rc, engine.ModeRun)
		if jsonOutput {
			if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
				return err
			}
		}
		if runErr != nil {
			p.Result(result)
			if len(result.Artifacts) > 0 {
				p.Line("Step output kept in %s", result.Artifacts[0])
			}
			return reported(runErr)
		}

		reboot, err := shouldReboot(prompt, p)
		if err != nil {
			return err
		}
		if reboot {
			if err := fastboot.Reboot(ctx, tool); err != nil {
				p.Error(err)
				return reported(err)
			}
		}
		return nil
	},
}

func shouldReboot(prompt *console.Prompter, p *console.Printer) (bool, error) {
	switch {
	case flashNoReboot:
		p.Line("Flashed successfully!")
		return false, nil
	case flashReboot:
		p.Line("Flashed successfully! Rebooting.")
		return true, nil
	case flashYes:
		p.Line("Flashed successfully!")
		return false, nil
	}
	return prompt.Confirm("Flashed successfully! Do you want to reboot?")
}

func init() {
	flashCmd.Flags().StringVar(&flashFastbootPath, "fastboot-path", "", "Specify an alternate fastboot binary")
	flashCmd.Flags().BoolVar(&flashIgnoreMD5, "ignore-md5", false, "Disable verification of images against their hashes")
	flashCmd.Flags().BoolVar(&flashDisableAVB, "disable-avb", false, "Disable Android Verified Boot if your device supports it")
	flashCmd.Flags().BoolVarP(&flashYes, "yes", "y", false, "Do not ask before erasing the device")
	flashCmd.Flags().BoolVar(&flashReboot, "reboot", false, "Reboot after a successful flash without asking")
	flashCmd.Flags().BoolVar(&flashNoReboot, "no-reboot", false, "Do not reboot after flashing")
	flashCmd.MarkFlagsMutuallyExclusive("reboot", "no-reboot")
	rootCmd.AddCommand(flashCmd)
}
