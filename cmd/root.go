// Package cmd wires the command line interface.
package cmd

import (
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/whoamihappyhacking/vidscribe/internal/vidscribe/conf"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "vidscribe",
	Short: "Video transcript extraction and formatting service",
	Long: `vidscribe extracts metadata, subtitles and audio from video URLs,
optionally runs speech recognition, and turns the timed text into a
punctuated, timestamped transcript.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
}

// Execute runs the CLI.
func Execute() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})
	zerolog.SetGlobalLevel(zerolog.InfoLevel)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig loads configuration honouring the persistent flags.
func loadConfig() (*conf.Config, error) {
	cfg, err := conf.Load(configPath)
	if err != nil {
		return nil, err
	}
	if debug || cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	return cfg, nil
}
