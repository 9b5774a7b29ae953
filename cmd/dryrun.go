package cmd

import (
	"github.com/spf13/cobra"

	"github.com/irixaligned/swat/internal/console"
	"github.com/irixaligned/swat/internal/engine"
)

var (
	dryRunFastbootPath string
	dryRunIgnoreMD5    bool
	dryRunDisableAVB   bool
)

var dryRunCmd = &cobra.Command{
	Use:   "dry-run <flashfile.xml|firmware-dir>",
	Short: "Verify images and show every fastboot command without running it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return preview(cmd, args[0], engine.ModeDryRun, dryRunFastbootPath, engine.Policy{
			SkipIntegrityCheck:  dryRunIgnoreMD5,
			DisableVerifiedBoot: dryRunDisableAVB,
		})
	},
}

// preview runs the manifest without invoking fastboot.
func preview(cmd *cobra.Command, arg string, mode engine.Mode, fastbootPath string, policy engine.Policy) error {
	ctx := cmd.Context()
	p := console.NewPrinter(cmd.OutOrStdout())

	m, err := loadManifest(arg)
	if err != nil {
		if jsonOutput {
			return err
		}
		p.Error(err)
		return reported(err)
	}

	var sink engine.Sink
	if !jsonOutput {
		sink = p.Handle
		p.Line("Manifest: %s (%d steps)\n", m.Path, len(m.Steps))
	}
	rc := engine.NewRunContext(previewTool(fastbootPath), policy, sink)
	result, runErr := engine.Execute(ctx, m, rc, mode)

	if jsonOutput {
		if err := writeJSON(cmd.OutOrStdout(), result); err != nil {
			return err
		}
	} else {
		p.Result(result)
	}
	if runErr != nil {
		return reported(runErr)
	}
	return nil
}

func init() {
	dryRunCmd.Flags().StringVar(&dryRunFastbootPath, "fastboot-path", "", "Specify an alternate fastboot binary")
	dryRunCmd.Flags().BoolVar(&dryRunIgnoreMD5, "ignore-md5", false, "Skip image hash verification")
	dryRunCmd.Flags().BoolVar(&dryRunDisableAVB, "disable-avb", false, "Show vbmeta commands with verified boot disabled")
	rootCmd.AddCommand(dryRunCmd)
}
