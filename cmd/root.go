package cmd

import (
	"os"

	"github.com/jsphweid/fretdex/config"
	"github.com/jsphweid/fretdex/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	configPath   string
	outputFormat string
	logLevel     string

	cfg  = config.Default()
	zlog = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "fretdex",
	Short: "Chord, scale and fretboard toolkit",
	Long: `fretdex names chords from raw notes, finds guitar voicings,
builds progressions and exports them as MIDI files.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.LogLevel = logLevel
			if err := loaded.Validate(); err != nil {
				return err
			}
		}
		l, err := logger.New(loaded.LogLevel)
		if err != nil {
			return err
		}
		cfg = loaded
		zlog = l
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "yaml", "output format: yaml or json")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
}

// Execute flushes the logger before exiting non-zero on error.
func Execute() {
	err := rootCmd.Execute()
	_ = zlog.Sync()
	if err != nil {
		os.Exit(1)
	}
}
