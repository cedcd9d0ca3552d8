package cmd

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
	logger zerolog.Logger
)

// rootCmd is the base command; all configuration lives on runCmd's flags,
// bound through viper so either flags or a --config file can supply them.
var rootCmd = &cobra.Command{
	Use: "graphd",
	Short: "Run a sliding-window ingest driver over an ML-CSR graph store",
	Long: `graphd wires a loader.DataSource into an engine.Engine and runs its
driver.Driver: an Ingester goroutine applies edges into a writable delta,
and an Analyst goroutine periodically checkpoints that delta into a new,
readable Level.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		level := zerolog.InfoLevel
		if verbose {
			level = zerolog.DebugLevel
		}
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: "15:04:05"}).
			Level(level).
			With().Timestamp().Logger()

		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
			if err := viper.ReadInConfig(); err != nil {
				return err
			}
			logger.Info().Str("file", cfgFile).Msg("loaded config file")
		}
		return nil
	},
}

// Execute runs the command tree, exiting the process on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml/json/toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.AddCommand(runCmd)
}
