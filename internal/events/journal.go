//go:generate mockgen -source ./journal.go -destination=./mocks/journal.go -package=mock_events
package events

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/metrics"
)

const (
	sinkWriteTimeout = 10 * time.Second
	minQueue         = 256
)

// Sink ships batches of events somewhere durable.
type Sink interface {
	Name() string
	Write(ctx context.Context, batch []Event) error
	Close() error
}

type JournalConfig struct {
	Workers       int
	BatchSize     int
	FlushInterval time.Duration
}

func (c JournalConfig) withDefaults() JournalConfig {
	if c.Workers <= 0 {
		c.Workers = 2
	}
	if c.BatchSize <= 0 {
		c.BatchSize = 20
	}
	if c.FlushInterval <= 0 {
		c.FlushInterval = 2 * time.Second
	}
	return c
}

// Journal batches events by size or age and hands every batch to all sinks from a
// small worker pool.
type Journal struct {
	cfg   JournalConfig
	sinks []Sink
	log   *zap.Logger

	inputChan  chan Event
	batchChan  chan []Event
	shutdownCh chan struct{}
	once       sync.Once
	wg         sync.WaitGroup
}

func NewJournal(cfg JournalConfig, sinks []Sink, log *zap.Logger) *Journal {
	cfg = cfg.withDefaults()
	return &Journal{
		cfg:        cfg,
		sinks:      sinks,
		log:        log,
		inputChan:  make(chan Event, max(cfg.Workers*cfg.BatchSize*2, minQueue)),
		batchChan:  make(chan []Event, cfg.Workers*2),
		shutdownCh: make(chan struct{}),
	}
}

func (j *Journal) Start(ctx context.Context) {
	j.log.Info("Starting event journal", zap.Int("workers", j.cfg.Workers), zap.Int("sinks", len(j.sinks)))
	j.wg.Add(1)
	go j.runAggregator()

	for i := 0; i < j.cfg.Workers; i++ {
		j.wg.Add(1)
		go j.runWorker(i)
	}

	go func() {
		select {
		case <-ctx.Done():
			j.Shutdown(context.Background())
		case <-j.shutdownCh:
		}
	}()
}

// Record queues an event without blocking. Callers run on the realtime read loop and
// inside session listeners, so when the journal is full or stopped the event goes to
// the log instead.
func (j *Journal) Record(_ context.Context, event Event) {
	select {
	case <-j.shutdownCh:
		j.emergencyLog(event)
		return
	default:
	}

	select {
	case j.inputChan <- event:
	default:
		metrics.EventsOverflowTotal.Inc()
		j.emergencyLog(event)
	}
}

// Shutdown flushes what is queued and closes the sinks.
func (j *Journal) Shutdown(ctx context.Context) {
	j.once.Do(func() {
		j.log.Info("Initiating event journal shutdown")
		close(j.shutdownCh)

		done := make(chan struct{})
		go func() {
			j.wg.Wait()
			close(done)
		}()

		select {
		case <-done:
			j.log.Info("Event journal shutdown completed")
		case <-ctx.Done():
			j.log.Warn("Event journal shutdown interrupted")
		}

		for _, sink := range j.sinks {
			if err := sink.Close(); err != nil {
				j.log.Error("Failed to close event sink", zap.String("sink", sink.Name()), zap.Error(err))
			}
		}
	})
}

func (j *Journal) runAggregator() {
	defer j.wg.Done()

	var (
		batch    []Event
		timer    *time.Timer
		timeoutC <-chan time.Time
	)

	defer func() {
		if timer != nil {
			timer.Stop()
		}
		close(j.batchChan)
	}()

	for {
		select {
		case event := <-j.inputChan:
			batch = append(batch, event)
			if len(batch) >= j.cfg.BatchSize {
				j.dispatchBatch(batch)
				batch = nil
				timeoutC = nil
			} else if len(batch) == 1 {
				timer = time.NewTimer(j.cfg.FlushInterval)
				timeoutC = timer.C
			}

		case <-timeoutC:
			j.dispatchBatch(batch)
			batch = nil
			timeoutC = nil

		case <-j.shutdownCh:
			for {
				select {
				case event := <-j.inputChan:
					batch = append(batch, event)
					if len(batch) >= j.cfg.BatchSize {
						j.dispatchBatch(batch)
						batch = nil
					}
				default:
					if len(batch) > 0 {
						j.dispatchBatch(batch)
					}
					return
				}
			}
		}
	}
}

// dispatchBatch blocks until a worker has room, which back-pressures Record.
func (j *Journal) dispatchBatch(batch []Event) {
	batchCopy := make([]Event, len(batch))
	copy(batchCopy, batch)
	j.batchChan <- batchCopy
}

func (j *Journal) runWorker(id int) {
	defer j.wg.Done()
	log := j.log.With(zap.Int("worker", id))
	log.Debug("Journal worker started")

	for batch := range j.batchChan {
		j.writeBatch(log, batch)
	}
	log.Debug("Journal worker exiting")
}

func (j *Journal) writeBatch(log *zap.Logger, batch []Event) {
	ctx, cancel := context.WithTimeout(context.Background(), sinkWriteTimeout)
	defer cancel()

	var errs []error
	for _, sink := range j.sinks {
		if err := sink.Write(ctx, batch); err != nil {
			metrics.EventSinkErrorsTotal.WithLabelValues(sink.Name()).Inc()
			errs = append(errs, err)
			log.Error("Event sink write failed",
				zap.String("sink", sink.Name()),
				zap.Int("events", len(batch)),
				zap.Error(err))
		}
	}
	if len(errs) == len(j.sinks) && len(errs) > 0 {
		for _, event := range batch {
			j.emergencyLog(event)
		}
		log.Debug("Batch kept in log only", zap.Error(errors.Join(errs...)))
	}
}

func (j *Journal) emergencyLog(event Event) {
	j.log.Warn("Event not journaled",
		zap.String("id", event.ID.String()),
		zap.String("kind", string(event.Kind)),
		zap.Int64("driver_id", event.DriverID),
		zap.Int64("order_id", event.OrderID),
		zap.Any("attributes", event.Attributes))
}
