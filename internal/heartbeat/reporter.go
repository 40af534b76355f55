//go:generate mockgen -source ./reporter.go -destination=./mocks/reporter.go -package=mock_heartbeat
package heartbeat

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/metrics"
	"github.com/foodify/driver-agent/internal/model"
	"github.com/foodify/driver-agent/internal/session"
)

const DefaultInterval = 60 * time.Second

type API interface {
	Heartbeat(ctx context.Context, position *model.Coordinates) error
	UpdateLocation(ctx context.Context, update model.LocationUpdate) error
}

type SessionSource interface {
	Current() session.Session
}

// LocationProvider returns the last known position, or nil when none is known.
type LocationProvider interface {
	Location() *model.Coordinates
}

// Tracker is a LocationProvider fed by whoever learns the driver's position.
type Tracker struct {
	mu       sync.RWMutex
	position *model.Coordinates
}

func NewTracker(initial *model.Coordinates) *Tracker {
	t := &Tracker{}
	if initial != nil {
		t.Set(*initial)
	}
	return t
}

func (t *Tracker) Set(position model.Coordinates) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.position = &position
}

func (t *Tracker) Location() *model.Coordinates {
	t.mu.RLock()
	defer t.mu.RUnlock()
	if t.position == nil {
		return nil
	}
	p := *t.position
	return &p
}

// Reporter keeps the backend informed that the driver is alive and where they are.
type Reporter struct {
	api      API
	sess     SessionSource
	location LocationProvider
	interval time.Duration
	log      *zap.Logger
}

func NewReporter(api API, sess SessionSource, location LocationProvider, interval time.Duration, log *zap.Logger) *Reporter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Reporter{
		api:      api,
		sess:     sess,
		location: location,
		interval: interval,
		log:      log,
	}
}

func (r *Reporter) Run(ctx context.Context) error {
	r.log.Info("Starting heartbeat reporter", zap.Duration("interval", r.interval))

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.Beat(ctx)
	for {
		select {
		case <-ticker.C:
			r.Beat(ctx)
		case <-ctx.Done():
			r.log.Info("Heartbeat reporter context cancelled, stopping")
			return nil
		}
	}
}

// Beat sends one round of reports. Failures are logged and left for the next round.
func (r *Reporter) Beat(ctx context.Context) {
	s := r.sess.Current()
	if s.AccessToken == "" || s.User == nil {
		r.log.Debug("Skipping heartbeat: no session")
		return
	}

	position := r.location.Location()
	if position != nil && s.User.Available {
		update := model.LocationUpdate{
			DriverID:  s.User.ID,
			Latitude:  position.Latitude,
			Longitude: position.Longitude,
		}
		if err := r.api.UpdateLocation(ctx, update); err != nil {
			metrics.HeartbeatFailuresTotal.Inc()
			r.log.Warn("Location update failed", zap.Error(err))
		}
	}

	if err := r.api.Heartbeat(ctx, position); err != nil {
		metrics.HeartbeatFailuresTotal.Inc()
		r.log.Warn("Heartbeat failed", zap.Error(err))
		return
	}
	r.log.Debug("Heartbeat sent", zap.Bool("with_location", position != nil))
}
