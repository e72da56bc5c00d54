package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"

	"squitter1090/internal/adsbmsg"
	"squitter1090/internal/applog"
	"squitter1090/internal/capture"
	"squitter1090/internal/config"
	"squitter1090/internal/demod"
	"squitter1090/internal/metadata"
	"squitter1090/internal/pipeline"
	"squitter1090/internal/power"
	"squitter1090/internal/rtlsdr"
	"squitter1090/internal/sbs"
	"squitter1090/internal/tracker"
)

// application owns every long-lived resource the command line wires
// together: the sample source, the metadata archive, the log rotator and
// the pipeline driving them.
type application struct {
	cfg     config.Config
	logger  *logrus.Logger
	closers []io.Closer

	rotator *applog.LogRotator
	device  *rtlsdr.RTLSDRDevice

	pipeline *pipeline.Pipeline
	source   pipeline.Source
}

// newApplication resolves cfg.Source into a concrete pipeline.Source,
// opens the metadata archive and log rotator, and wires a Pipeline whose
// OnMessage callback renders every applied message as a BaseStation line.
func newApplication(cfg config.Config, logger *logrus.Logger) (*application, error) {
	app := &application{cfg: cfg, logger: logger}

	var lookup tracker.MetadataLookup
	if cfg.MetadataArchive != "" {
		f, err := os.Open(cfg.MetadataArchive)
		if err != nil {
			return nil, fmt.Errorf("go1090: failed to open metadata archive: %w", err)
		}
		app.closers = append(app.closers, f)

		info, err := f.Stat()
		if err != nil {
			app.Close()
			return nil, fmt.Errorf("go1090: failed to stat metadata archive: %w", err)
		}
		archive, err := metadata.Open(f, info.Size())
		if err != nil {
			app.Close()
			return nil, err
		}
		lookup = archive
	}

	rotator, err := applog.NewLogRotator(cfg.LogDir, cfg.LogRotateUTC, logger)
	if err != nil {
		app.Close()
		return nil, err
	}
	app.rotator = rotator

	src, err := app.buildSource()
	if err != nil {
		app.Close()
		return nil, err
	}
	app.source = src

	mgr := tracker.NewManager(lookup)
	app.pipeline = pipeline.New(mgr, logger, cfg.QueueCapacity, cfg.PurgeInterval)
	app.wireSBSOutput(sbs.NewWriter())

	return app, nil
}

// buildSource opens the configured sample source and returns the
// pipeline.Source that drains it, adapting components A-D (live
// demodulation) or skipping straight to parsed frames (capture replay).
func (app *application) buildSource() (pipeline.Source, error) {
	switch app.cfg.Source {
	case config.SourceCaptureFile:
		f, err := os.Open(app.cfg.InputPath)
		if err != nil {
			return nil, fmt.Errorf("go1090: failed to open capture file: %w", err)
		}
		app.closers = append(app.closers, f)
		return pipeline.NewCaptureSource(capture.NewReader(f)), nil

	case config.SourceIQFile:
		f, err := os.Open(app.cfg.InputPath)
		if err != nil {
			return nil, fmt.Errorf("go1090: failed to open IQ sample file: %w", err)
		}
		app.closers = append(app.closers, f)
		return app.buildDemodSource(f)

	case config.SourceRTLSDR:
		device, err := rtlsdr.NewRTLSDRDevice(app.cfg.DeviceIndex)
		if err != nil {
			return nil, fmt.Errorf("go1090: failed to open RTL-SDR device: %w", err)
		}
		if err := device.Configure(app.cfg.Frequency, app.cfg.SampleRate, app.cfg.Gain); err != nil {
			return nil, fmt.Errorf("go1090: failed to configure RTL-SDR device: %w", err)
		}
		app.device = device

		dataChan := make(chan []byte, app.cfg.QueueCapacity)
		errChan := make(chan error, 1)
		go func() {
			defer close(dataChan)
			if err := device.StartCapture(context.Background(), dataChan); err != nil {
				errChan <- err
			}
			close(errChan)
		}()

		return app.buildDemodSource(rtlsdr.SampleReader(dataChan, errChan))

	default:
		return nil, fmt.Errorf("go1090: unrecognized source kind %v", app.cfg.Source)
	}
}

// buildDemodSource wires components A-D (sample decode, power computation,
// windowing, demodulation) around r.
func (app *application) buildDemodSource(r io.Reader) (pipeline.Source, error) {
	computer, err := power.NewComputer(r, power.BatchCapacity)
	if err != nil {
		return nil, err
	}
	win, err := power.NewWindow(computer, app.cfg.WindowSize)
	if err != nil {
		return nil, err
	}
	return pipeline.NewDemodSource(demod.NewDemodulator(win)), nil
}

// wireSBSOutput sets the pipeline's OnMessage hook to render every applied
// message through writer onto the rotator's current log file.
func (app *application) wireSBSOutput(writer *sbs.Writer) {
	app.pipeline.OnMessage = func(m adsbmsg.Message) {
		w, err := app.rotator.GetWriter()
		if err != nil {
			app.logger.WithError(err).Warn("no log writer available for SBS output")
			return
		}
		if _, err := writer.WriteMessage(w, m); err != nil {
			app.logger.WithError(err).Warn("failed to write SBS line")
		}
	}
}

// Run starts the log rotator's daily scheduler and drives the pipeline
// against the configured source until ctx is canceled or the source is
// exhausted.
func (app *application) Run(ctx context.Context) error {
	go app.rotator.Start(ctx)
	app.logger.WithField("source", app.cfg.Source).Info("starting pipeline")
	return app.pipeline.Run(ctx, app.source)
}

// Close releases every resource opened by newApplication: the RTL-SDR
// device and the log rotator first, then the opened files in reverse order
// of opening. Each close error is logged; none stops the others.
func (app *application) Close() {
	if app.device != nil {
		if err := app.device.Close(); err != nil {
			app.logger.WithError(err).Warn("failed to close RTL-SDR device")
		}
	}
	if app.rotator != nil {
		if err := app.rotator.Close(); err != nil {
			app.logger.WithError(err).Warn("failed to close log rotator")
		}
	}
	for i := len(app.closers) - 1; i >= 0; i-- {
		if err := app.closers[i].Close(); err != nil {
			app.logger.WithError(err).Warn("failed to close resource")
		}
	}
}
