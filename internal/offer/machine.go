//go:generate mockgen -source ./machine.go -destination=./mocks/machine.go -package=mock_offer
package offer

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/metrics"
	"github.com/foodify/driver-agent/internal/model"
)

const DefaultCountdown = 89

var (
	ErrNoOffer          = errors.New("no pending offer")
	ErrAcceptInProgress = errors.New("accept already in progress")
)

type Phase int

const (
	Idle Phase = iota
	Pending
	Accepting
)

func (p Phase) String() string {
	switch p {
	case Pending:
		return "pending"
	case Accepting:
		return "accepting"
	default:
		return "idle"
	}
}

func (p Phase) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

type Resolution string

const (
	Accepted  Resolution = "accepted"
	Declined  Resolution = "declined"
	Expired   Resolution = "expired"
	Cancelled Resolution = "cancelled"
)

type OrderAPI interface {
	AcceptOrder(ctx context.Context, orderID int64) (*model.Order, error)
	DeclineOrder(ctx context.Context, orderID int64) error
}

// Channel is the realtime side the machine reports back to.
type Channel interface {
	ClearUpcoming(orderID int64)
	SetOngoing(order *model.Order)
}

type Listener interface {
	OfferResolved(order *model.Order, resolution Resolution)
}

type Config struct {
	Countdown       int
	DeclineOnExpiry bool
	LateAccept      bool
	RequestTimeout  time.Duration
}

// State is a copy of the machine state. Offer and Remaining are only set outside Idle.
type State struct {
	Phase     Phase        `json:"phase"`
	Offer     *model.Order `json:"offer,omitempty"`
	Remaining int          `json:"remaining"`
}

// Machine arbitrates one incoming offer between accept, decline and expiry.
type Machine struct {
	cfg     Config
	api     OrderAPI
	channel Channel
	log     *zap.Logger

	mu          sync.Mutex
	state       State
	generation  uint64
	lastExpired *model.Order
	listener    Listener
}

func NewMachine(cfg Config, api OrderAPI, channel Channel, log *zap.Logger) *Machine {
	if cfg.Countdown <= 0 {
		cfg.Countdown = DefaultCountdown
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 15 * time.Second
	}
	return &Machine{
		cfg:     cfg,
		api:     api,
		channel: channel,
		log:     log,
	}
}

func (m *Machine) SetListener(l Listener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listener = l
}

func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	s := m.state
	s.Offer = s.Offer.Clone()
	return s
}

// OfferChanged follows the channel's offer candidate. A new offer restarts the
// countdown, nil withdraws whatever is pending without touching the network.
func (m *Machine) OfferChanged(offer *model.Order) {
	m.mu.Lock()
	if offer != nil {
		m.generation++
		m.lastExpired = nil
		m.state = State{Phase: Pending, Offer: offer.Clone(), Remaining: m.cfg.Countdown}
		m.mu.Unlock()
		m.log.Info("Incoming offer", zap.Int64("order_id", offer.ID), zap.Int("countdown", m.cfg.Countdown))
		return
	}

	if m.state.Phase == Idle {
		m.mu.Unlock()
		return
	}
	withdrawn := m.state.Offer
	m.generation++
	m.state = State{Phase: Idle}
	listener := m.listener
	m.mu.Unlock()

	m.log.Info("Offer withdrawn", zap.Int64("order_id", withdrawn.ID))
	m.resolved(listener, withdrawn, Cancelled)
}

// Tick advances the countdown by one second. The deadline is hard: it keeps running
// while an accept is in flight, and a late accept has no countdown at all.
func (m *Machine) Tick() {
	m.mu.Lock()
	if m.state.Phase == Idle || m.state.Remaining <= 0 {
		m.mu.Unlock()
		return
	}
	m.state.Remaining--
	if m.state.Remaining > 0 {
		m.mu.Unlock()
		return
	}

	expired := m.state.Offer
	accepting := m.state.Phase == Accepting
	m.generation++
	m.state = State{Phase: Idle}
	if m.cfg.LateAccept {
		m.lastExpired = expired
	}
	listener := m.listener
	m.mu.Unlock()

	m.log.Info("Offer expired", zap.Int64("order_id", expired.ID), zap.Bool("accept_in_flight", accepting))
	m.channel.ClearUpcoming(expired.ID)
	if m.cfg.DeclineOnExpiry && !accepting {
		go m.declineQuietly(expired.ID)
	}
	m.resolved(listener, expired, Expired)
}

// Accept claims the pending offer. On failure the offer stays pending if its
// countdown has not run out meanwhile. An accept the backend confirms after expiry
// still becomes the ongoing order.
func (m *Machine) Accept(ctx context.Context) (*model.Order, error) {
	m.mu.Lock()
	var target *model.Order
	late := false
	switch {
	case m.state.Phase == Accepting:
		m.mu.Unlock()
		return nil, ErrAcceptInProgress
	case m.state.Phase == Pending:
		target = m.state.Offer
		m.state.Phase = Accepting
	case m.lastExpired != nil:
		target = m.lastExpired
		late = true
		m.state = State{Phase: Accepting, Offer: target}
	default:
		m.mu.Unlock()
		return nil, ErrNoOffer
	}
	gen := m.generation
	m.mu.Unlock()

	log := m.log.With(zap.Int64("order_id", target.ID), zap.Bool("late", late))
	order, err := m.api.AcceptOrder(ctx, target.ID)

	m.mu.Lock()
	current := gen == m.generation
	if err != nil {
		if current {
			if late {
				m.state = State{Phase: Idle}
			} else {
				m.state.Phase = Pending
			}
		}
		remaining := m.state.Remaining
		m.mu.Unlock()
		log.Warn("Accept failed", zap.Error(err), zap.Int("remaining", remaining))
		return nil, fmt.Errorf("accept order %d: %w", target.ID, err)
	}
	if current {
		m.state = State{Phase: Idle}
	}
	if m.lastExpired != nil && m.lastExpired.ID == target.ID {
		m.lastExpired = nil
	}
	listener := m.listener
	m.mu.Unlock()

	if order == nil || order.ID == 0 {
		order = target.Clone()
		order.Status = model.StatusAccepted
	}
	order.Upcoming = false

	log.Info("Offer accepted")
	m.channel.ClearUpcoming(target.ID)
	m.channel.SetOngoing(order)
	m.resolved(listener, target, Accepted)
	return order, nil
}

// Decline drops the pending offer at once. The backend is told on a best-effort basis.
func (m *Machine) Decline(ctx context.Context) error {
	m.mu.Lock()
	if m.state.Phase != Pending {
		phase := m.state.Phase
		m.mu.Unlock()
		if phase == Accepting {
			return ErrAcceptInProgress
		}
		return ErrNoOffer
	}
	declined := m.state.Offer
	m.generation++
	m.state = State{Phase: Idle}
	listener := m.listener
	m.mu.Unlock()

	m.log.Info("Offer declined", zap.Int64("order_id", declined.ID))
	m.channel.ClearUpcoming(declined.ID)
	m.resolved(listener, declined, Declined)

	if err := m.api.DeclineOrder(ctx, declined.ID); err != nil {
		m.log.Warn("Decline not delivered", zap.Int64("order_id", declined.ID), zap.Error(err))
	}
	return nil
}

// Run ticks the countdown once per second until ctx is done.
func (m *Machine) Run(ctx context.Context) error {
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Tick()
		}
	}
}

func (m *Machine) declineQuietly(orderID int64) {
	ctx, cancel := context.WithTimeout(context.Background(), m.cfg.RequestTimeout)
	defer cancel()
	if err := m.api.DeclineOrder(ctx, orderID); err != nil {
		m.log.Debug("Expiry decline not delivered", zap.Int64("order_id", orderID), zap.Error(err))
	}
}

func (m *Machine) resolved(l Listener, offer *model.Order, r Resolution) {
	metrics.OffersResolvedTotal.WithLabelValues(string(r)).Inc()
	if l != nil {
		l.OfferResolved(offer.Clone(), r)
	}
}
