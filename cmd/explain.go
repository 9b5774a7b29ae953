package cmd

import (
	"github.com/spf13/cobra"

	"github.com/irixaligned/swat/internal/engine"
)

var (
	explainFastbootPath string
	explainDisableAVB   bool
)

var explainCmd = &cobra.Command{
	Use:   "explain <flashfile.xml|firmware-dir>",
	Short: "Show each step and its command without hashing or running anything",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return preview(cmd, args[0], engine.ModeExplain, explainFastbootPath, engine.Policy{
			DisableVerifiedBoot: explainDisableAVB,
		})
	},
}

func init() {
	explainCmd.Flags().StringVar(&explainFastbootPath, "fastboot-path", "", "Specify an alternate fastboot binary")
	explainCmd.Flags().BoolVar(&explainDisableAVB, "disable-avb", false, "Show vbmeta commands with verified boot disabled")
	rootCmd.AddCommand(explainCmd)
}
