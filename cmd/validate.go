package cmd

import (
	"github.com/spf13/cobra"

	"github.com/irixaligned/swat/internal/console"
)

var validateCmd = &cobra.Command{
	Use:   "validate <flashfile.xml|firmware-dir>",
	Short: "Validate a flashfile manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := console.NewPrinter(cmd.OutOrStdout())

		m, err := loadManifest(args[0])
		if err == nil {
			err = m.Validate()
		}
		if err != nil {
			if jsonOutput {
				if werr := writeJSON(cmd.OutOrStdout(), map[string]any{"valid": false, "error": err.Error()}); werr != nil {
					return werr
				}
			} else {
				p.Line("Validation failed.")
				p.Error(err)
			}
			return reported(err)
		}

		if jsonOutput {
			return writeJSON(cmd.OutOrStdout(), map[string]any{"valid": true, "manifest": m.Path, "steps": len(m.Steps)})
		}
		p.Line("Manifest is valid: %d steps.", len(m.Steps))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
