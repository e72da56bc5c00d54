// Package pipeline wires components A through J together per spec §5: a
// single producer goroutine runs the blocking demodulation chain and
// pushes decoded typed messages onto a bounded channel; a consumer
// goroutine, driven by a ticker standing in for the UI's vsync pulse,
// drains the channel into the state manager and purges stale aircraft
// once per tick.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"squitter1090/internal/adsbmsg"
	"squitter1090/internal/capture"
	"squitter1090/internal/demod"
	"squitter1090/internal/rawmsg"
	"squitter1090/internal/tracker"
)

// Source pulls the next decoded typed message from whatever upstream
// components produce it (the live demodulator chain, or a capture file
// replay that skips straight to parsed frames).
type Source interface {
	// Next returns the next typed message, or io.EOF once the source is
	// exhausted. A raw message that fails typed decoding (soft rejection)
	// is skipped internally and never surfaces here.
	Next() (adsbmsg.Message, error)
}

// DemodSource adapts a demodulator into a Source by running the F/G
// stages (raw message re-validation is already done by the demodulator;
// here we only dispatch-and-decode the payload) on every frame it yields.
type DemodSource struct {
	demod *demod.Demodulator
}

// NewDemodSource wraps d as a pipeline Source.
func NewDemodSource(d *demod.Demodulator) *DemodSource {
	return &DemodSource{demod: d}
}

// Next pulls raw messages from the demodulator until one decodes into a
// recognized typed message, or the demodulator reaches end of stream.
func (s *DemodSource) Next() (adsbmsg.Message, error) {
	for {
		raw, err := s.demod.NextMessage()
		if err != nil {
			return adsbmsg.Message{}, err
		}
		if m, ok := adsbmsg.Decode(raw); ok {
			return m, nil
		}
	}
}

// CaptureSource adapts a capture-file reader into a Source, skipping
// components A-D (sample decode through demodulation) entirely: each
// record is already a validated 14-byte frame with its own timestamp.
type CaptureSource struct {
	reader *capture.Reader
}

// NewCaptureSource wraps r as a pipeline Source.
func NewCaptureSource(r *capture.Reader) *CaptureSource {
	return &CaptureSource{reader: r}
}

// Next pulls the next capture record, validates its CRC and dispatches it
// through the typed-message decoder, skipping any record that fails CRC
// or whose type code decoding rejects it.
func (s *CaptureSource) Next() (adsbmsg.Message, error) {
	for {
		rec, err := s.reader.Next()
		if err != nil {
			return adsbmsg.Message{}, err
		}
		raw, ok := rawmsg.Of(rec.TimestampNs, rec.Frame[:])
		if !ok {
			continue
		}
		if m, ok := adsbmsg.Decode(raw); ok {
			return m, nil
		}
	}
}

// Pipeline owns the producer/consumer queue and the state manager it
// feeds.
type Pipeline struct {
	Manager *tracker.Manager
	logger  *logrus.Logger

	queueCapacity int
	purgeInterval time.Duration

	// OnMessage, when set, is invoked by the consumer for every message
	// applied to the state manager (e.g. to drive the SBS writer).
	OnMessage func(adsbmsg.Message)
}

// New constructs a Pipeline around mgr. queueCapacity is the buffer size of
// the producer/consumer channel; 0 makes the channel unbuffered. The queue
// is always bounded.
func New(mgr *tracker.Manager, logger *logrus.Logger, queueCapacity int, purgeInterval time.Duration) *Pipeline {
	return &Pipeline{
		Manager:       mgr,
		logger:        logger,
		queueCapacity: queueCapacity,
		purgeInterval: purgeInterval,
	}
}

// Run drives src until it reaches end of stream or ctx is canceled,
// applying every decoded message to the state manager and purging on
// purgeInterval. It blocks until both the producer and consumer finish.
// A non-EOF error from src is returned; io.EOF is treated as a clean
// shutdown once the consumer has drained the queue.
func (p *Pipeline) Run(ctx context.Context, src Source) error {
	queue := make(chan adsbmsg.Message, p.queueCapacity)
	errCh := make(chan error, 1)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		defer close(queue)
		p.produce(ctx, src, queue, errCh)
	}()

	consumerDone := make(chan struct{})
	go func() {
		defer close(consumerDone)
		p.consume(ctx, queue)
	}()

	wg.Wait()
	<-consumerDone

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}

func (p *Pipeline) produce(ctx context.Context, src Source, queue chan<- adsbmsg.Message, errCh chan<- error) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		m, err := src.Next()
		if err != nil {
			if err != io.EOF {
				errCh <- fmt.Errorf("pipeline: source error: %w", err)
			}
			return
		}

		select {
		case queue <- m:
		case <-ctx.Done():
			return
		}
	}
}

func (p *Pipeline) consume(ctx context.Context, queue <-chan adsbmsg.Message) {
	ticker := time.NewTicker(p.purgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case m, ok := <-queue:
			if !ok {
				return
			}
			p.Manager.UpdateWithMessage(m)
			if p.OnMessage != nil {
				p.OnMessage(m)
			}
			if p.logger != nil {
				p.logger.WithFields(logrus.Fields{
					"icao": m.ICAO,
					"kind": kindName(m.Kind),
				}).Debug("applied message to state manager")
			}
		case <-ticker.C:
			p.Manager.Purge()
		}
	}
}

func kindName(k rawmsg.Kind) string {
	switch k {
	case rawmsg.KindIdentification:
		return "identification"
	case rawmsg.KindAirbornePosition:
		return "airborne_position"
	case rawmsg.KindAirborneVelocity:
		return "airborne_velocity"
	default:
		return "unrecognized"
	}
}
