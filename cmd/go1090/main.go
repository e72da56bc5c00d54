package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"squitter1090/internal/applog"
	"squitter1090/internal/config"
)

func main() {
	cfg := config.Default()
	var sourceFlag, configFlag string

	rootCmd := &cobra.Command{
		Use:   "go1090",
		Short: "ADS-B Decoder (dump1090-style)",
		Long: `ADS-B Decoder using RTL-SDR (dump1090-style implementation).

Captures I/Q samples from RTL-SDR at 2.4MHz, demodulates Mode S extended
squitter messages with a correlation-based preamble detector, validates
CRC-24, decodes identification/position/velocity, tracks live aircraft
state, and writes BaseStation (SBS) lines to a rotating log.

Example usage:
  go1090 --frequency 1090000000 --sample-rate 2400000 --gain 40 --device 0
  go1090 --source iq-file --input samples.bin
  go1090 --source capture-file --input flight.cap
  go1090 --config /etc/go1090/config.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cfg.ShowVersion {
				showVersion()
				return nil
			}

			if configFlag != "" {
				fileCfg, err := config.LoadFile(configFlag)
				if err != nil {
					return err
				}
				fileCfg.Verbose = cfg.Verbose
				cfg = fileCfg
			} else {
				source, err := parseSourceFlag(sourceFlag)
				if err != nil {
					return err
				}
				cfg.Source = source
			}

			logger := applog.New(cfg.Verbose)

			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			sigCh := make(chan os.Signal, 1)
			signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
			go func() {
				<-sigCh
				logger.Info("shutdown signal received")
				cancel()
			}()

			app, err := newApplication(cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			return app.Run(ctx)
		},
	}

	rootCmd.Flags().StringVar(&sourceFlag, "source", "rtl-sdr", "Sample source: rtl-sdr, iq-file, or capture-file")
	rootCmd.Flags().StringVar(&cfg.InputPath, "input", "", "Input file path for iq-file/capture-file sources")
	rootCmd.Flags().Uint32VarP(&cfg.Frequency, "frequency", "f", cfg.Frequency, "Frequency to tune to (Hz)")
	rootCmd.Flags().Uint32VarP(&cfg.SampleRate, "sample-rate", "s", cfg.SampleRate, "Sample rate (Hz)")
	rootCmd.Flags().IntVarP(&cfg.Gain, "gain", "g", cfg.Gain, "Gain setting (0 for auto)")
	rootCmd.Flags().IntVarP(&cfg.DeviceIndex, "device", "d", 0, "RTL-SDR device index")
	rootCmd.Flags().IntVar(&cfg.WindowSize, "window-size", cfg.WindowSize, "Demodulator power window size (samples)")
	rootCmd.Flags().IntVar(&cfg.QueueCapacity, "queue-capacity", cfg.QueueCapacity, "Producer/consumer channel capacity")
	rootCmd.Flags().DurationVar(&cfg.PurgeInterval, "purge-interval", cfg.PurgeInterval, "Stale aircraft purge interval")
	rootCmd.Flags().StringVar(&cfg.MetadataArchive, "metadata-archive", "", "Path to the aircraft metadata ZIP archive")
	rootCmd.Flags().StringVarP(&cfg.LogDir, "log-dir", "l", cfg.LogDir, "Log directory")
	rootCmd.Flags().BoolVarP(&cfg.LogRotateUTC, "utc", "u", cfg.LogRotateUTC, "Use UTC for log rotation")
	rootCmd.Flags().BoolVarP(&cfg.Verbose, "verbose", "v", false, "Verbose logging")
	rootCmd.Flags().BoolVar(&cfg.ShowVersion, "version", false, "Show version information")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
