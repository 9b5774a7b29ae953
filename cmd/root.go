package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/irixaligned/swat/internal/config"
	"github.com/irixaligned/swat/internal/logging"
)

var (
	jsonOutput  bool
	configPath  string
	logLevel    string
	loggingType string

	settings = config.Default()
)

var rootCmd = &cobra.Command{
	Use:   "swat",
	Short: "Savior When Absolutely Trashed: manifest-driven fastboot re-flashing",
	Long: "swat re-flashes Motorola devices over fastboot from the flashfile.xml shipped\n" +
		"with a stock firmware package: verify, build, run, and stop on the first failure.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadDotenv(); err != nil {
			return err
		}
		cfg, err := config.Load(configPath, cmd.Flags().Changed("config"))
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			cfg.LogLevel = logLevel
		}
		if cmd.Flags().Changed("logging-type") {
			cfg.LoggingType = loggingType
		}
		if err := logging.Initialize(cmd.ErrOrStderr(), cfg.LoggingType, cfg.LogLevel); err != nil {
			return err
		}
		settings = cfg
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output raw JSON")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultFile, "Config file")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "Log level: debug, info, warn or error")
	rootCmd.PersistentFlags().StringVar(&loggingType, "logging-type", "tint", "Logging type: json, text or tint")
}

// reportedError marks an error whose details were already printed.
type reportedError struct{ err error }

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

func reported(err error) error { return &reportedError{err: err} }

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		var re *reportedError
		if !errors.As(err, &re) {
			fmt.Fprintln(os.Stderr, "Error:", err)
		}
		os.Exit(1)
	}
}
