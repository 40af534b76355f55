package agent

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/foodify/driver-agent/internal/cache"
	"github.com/foodify/driver-agent/internal/config"
	"github.com/foodify/driver-agent/internal/driverapi"
	"github.com/foodify/driver-agent/internal/events"
	"github.com/foodify/driver-agent/internal/heartbeat"
	"github.com/foodify/driver-agent/internal/httpclient"
	"github.com/foodify/driver-agent/internal/model"
	"github.com/foodify/driver-agent/internal/offer"
	"github.com/foodify/driver-agent/internal/realtime"
	"github.com/foodify/driver-agent/internal/securestore"
	"github.com/foodify/driver-agent/internal/server"
	"github.com/foodify/driver-agent/internal/session"
)

var ErrNoCredentials = errors.New("no stored session and no driver credentials configured")

// Agent owns every long-lived component of the driver client.
type Agent struct {
	cfg *config.Config
	log *zap.Logger

	session  *session.Manager
	refresh  *driverapi.SessionClient
	api      *driverapi.Client
	channel  *realtime.Store
	realtime *realtime.Manager
	offers   *offer.Machine
	orders   *cache.OrderCache
	tracker  *heartbeat.Tracker
	reporter *heartbeat.Reporter
	journal  *events.Journal
	control  *server.Server
}

func New(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Agent, error) {
	store, err := openStore(cfg.Store)
	if err != nil {
		return nil, err
	}

	a := &Agent{cfg: cfg, log: log}
	a.session = session.NewManager(store, log.Named("session"))

	base := http.DefaultTransport.(*http.Transport).Clone()
	a.refresh = driverapi.NewSessionClient(&http.Client{Transport: base, Timeout: cfg.API.Timeout}, cfg.API.BaseURL)
	authClient := httpclient.NewClient(base, a.session, a.refresh, httpclient.Config{Timeout: cfg.API.Timeout}, log.Named("http"))
	a.api = driverapi.New(authClient, cfg.API.BaseURL, a.session, log.Named("api"))

	a.channel = realtime.NewStore(log.Named("realtime"))
	a.realtime = realtime.NewManager(realtime.Config{
		URL:               cfg.Realtime.URL,
		ReconnectDelay:    cfg.Realtime.ReconnectDelay,
		HeartbeatOutgoing: cfg.Realtime.HeartbeatOutgoing,
		HeartbeatIncoming: cfg.Realtime.HeartbeatIncoming,
	}, a.session, a.channel, log.Named("realtime"))

	a.offers = offer.NewMachine(offer.Config{
		Countdown:       cfg.Offer.Countdown,
		DeclineOnExpiry: cfg.Offer.DeclineOnExpiry,
		LateAccept:      cfg.Offer.LateAccept,
		RequestTimeout:  cfg.API.Timeout,
	}, a.api, a.channel, log.Named("offer"))

	a.orders = cache.NewOrderCache(a.api, log.Named("cache"))

	sinks, history, err := openSinks(ctx, cfg.Events, log.Named("events"))
	if err != nil {
		return nil, err
	}
	a.journal = events.NewJournal(events.JournalConfig{
		Workers:       cfg.Events.Workers,
		BatchSize:     cfg.Events.BatchSize,
		FlushInterval: cfg.Events.FlushInterval,
	}, sinks, log.Named("journal"))

	var initial *model.Coordinates
	if cfg.Heartbeat.Latitude != nil && cfg.Heartbeat.Longitude != nil {
		initial = &model.Coordinates{Latitude: *cfg.Heartbeat.Latitude, Longitude: *cfg.Heartbeat.Longitude}
	}
	a.tracker = heartbeat.NewTracker(initial)
	a.reporter = heartbeat.NewReporter(a.api, a.session, a.tracker, cfg.Heartbeat.Interval, log.Named("heartbeat"))

	a.control = server.New(server.Config{
		Addr:           cfg.Control.Addr,
		User:           cfg.Control.User,
		PasswordHash:   cfg.Control.PasswordHash,
		RequestTimeout: cfg.API.Timeout,
	}, server.Deps{
		Offers:    a.offers,
		Channel:   a.channel,
		Orders:    a.orders,
		History:   history,
		API:       a.api,
		Locations: a.tracker,
		Sessions:  a.session,
		Journal:   a.journal,
	}, log.Named("control"))

	a.wire()
	return a, nil
}

// wire connects the components. Listener order matters: the offer machine sees a
// new candidate before anything else does.
func (a *Agent) wire() {
	rec := &recorder{journal: a.journal, session: a.session}

	a.channel.OnOffer(a.offers)
	a.channel.OnOrder(a.orders)
	a.channel.OnOrder(rec)
	a.offers.SetListener(rec)

	a.session.OnChange(func(prev, next session.Session) {
		a.realtime.Sync()
		if prev.Active() && !next.Active() {
			a.orders.Clear()
		}
		rec.SessionChanged(prev, next)
	})
}

// Run authenticates, then runs every loop until ctx is done.
func (a *Agent) Run(ctx context.Context) error {
	a.journal.Start(ctx)
	defer a.journal.Shutdown(context.Background())

	if err := a.authenticate(ctx); err != nil {
		return err
	}
	a.bootstrap(ctx)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return a.realtime.Run(gctx) })
	g.Go(func() error { return a.offers.Run(gctx) })
	g.Go(func() error { return a.reporter.Run(gctx) })
	g.Go(func() error { return a.control.Run(gctx) })

	err := g.Wait()
	a.log.Info("Driver agent stopped")
	return err
}

// authenticate restores the stored session and refreshes it, falling back to a
// password login with the configured credentials.
func (a *Agent) authenticate(ctx context.Context) error {
	restored, err := a.session.Restore(ctx)
	if err != nil {
		a.log.Warn("Stored session unreadable", zap.Error(err))
	}

	if restored {
		resp, err := a.refresh.Refresh(ctx, a.session.RefreshToken())
		switch {
		case err == nil:
			if err := a.session.UpdateTokens(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
				return fmt.Errorf("store refreshed tokens: %w", err)
			}
			a.log.Info("Session restored")
			return nil
		case httpclient.IsAuthError(err):
			a.log.Info("Stored session rejected, logging in again")
			a.session.Clear(ctx, "stored refresh token rejected")
		default:
			return fmt.Errorf("refresh stored session: %w", err)
		}
	}

	if a.cfg.Auth.Email == "" {
		return ErrNoCredentials
	}
	user, err := a.api.Login(ctx, a.cfg.Auth.Email, a.cfg.Auth.Password)
	if err != nil {
		return fmt.Errorf("login: %w", err)
	}
	a.log.Info("Logged in", zap.Int64("driver_id", user.ID), zap.String("name", user.Name))
	return nil
}

// bootstrap loads an order already in progress so the agent resumes where the
// driver left off.
func (a *Agent) bootstrap(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, a.cfg.API.Timeout+5*time.Second)
	defer cancel()

	order, err := a.orders.LoadInitialData(ctx)
	if err != nil {
		a.log.Warn("Failed to load ongoing order", zap.Error(err))
		return
	}
	if order != nil {
		a.channel.SetOngoing(order)
	}
}

func openStore(cfg config.StoreConfig) (securestore.Store, error) {
	if cfg.Path == "" {
		return securestore.NewMemoryStore(), nil
	}
	store, err := securestore.NewFileStore(cfg.Path, cfg.Passphrase)
	if err != nil {
		return nil, fmt.Errorf("open secure store: %w", err)
	}
	return store, nil
}
