package realtime

import (
	"sync"

	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/metrics"
	"github.com/foodify/driver-agent/internal/model"
)

type ConnState int32

const (
	Disconnected ConnState = iota
	Connecting
	Connected
)

func (s ConnState) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Connected:
		return "connected"
	default:
		return "disconnected"
	}
}

func (s ConnState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// OfferListener is told about every change of the incoming offer candidate. A nil
// offer means the candidate was withdrawn.
type OfferListener interface {
	OfferChanged(offer *model.Order)
}

// OrderListener receives every status update for orders that are not offers.
type OrderListener interface {
	OrderUpdated(order *model.Order)
}

type Snapshot struct {
	State   ConnState             `json:"state"`
	Offer   *model.Order          `json:"offer,omitempty"`
	Ongoing *model.Order          `json:"ongoing,omitempty"`
	Warning *model.DepositWarning `json:"warning,omitempty"`
}

// Store is the observable state fed by the channel. Listeners run outside the state
// lock, one event at a time, in the order events were applied.
type Store struct {
	mu      sync.RWMutex
	state   ConnState
	offer   *model.Order
	ongoing *model.Order
	warning *model.DepositWarning

	notifyMu       sync.Mutex
	offerListeners []OfferListener
	orderListeners []OrderListener

	log *zap.Logger
}

func NewStore(log *zap.Logger) *Store {
	return &Store{log: log}
}

func (s *Store) OnOffer(l OfferListener) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.offerListeners = append(s.offerListeners, l)
}

func (s *Store) OnOrder(l OrderListener) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()
	s.orderListeners = append(s.orderListeners, l)
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap := Snapshot{
		State:   s.state,
		Offer:   s.offer.Clone(),
		Ongoing: s.ongoing.Clone(),
	}
	if s.warning != nil {
		w := *s.warning
		snap.Warning = &w
	}
	return snap
}

// HandleOrder applies one order message. An offer replaces the candidate and hides the
// ongoing order; anything else withdraws the candidate and updates the ongoing order.
func (s *Store) HandleOrder(order *model.Order) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	offerChanged := false
	if order.Upcoming {
		s.offer = order.Clone()
		s.ongoing = nil
		offerChanged = true
	} else {
		if s.offer != nil {
			s.offer = nil
			offerChanged = true
		}
		if order.Status.IsTerminal() {
			s.ongoing = nil
		} else {
			s.ongoing = order.Clone()
		}
	}
	offer := s.offer.Clone()
	s.mu.Unlock()

	if offerChanged {
		for _, l := range s.offerListeners {
			l.OfferChanged(offer)
		}
	}
	if !order.Upcoming {
		for _, l := range s.orderListeners {
			l.OrderUpdated(order.Clone())
		}
	}
}

// ClearUpcoming withdraws the candidate if it is still the given order.
func (s *Store) ClearUpcoming(orderID int64) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if s.offer == nil || s.offer.ID != orderID {
		s.mu.Unlock()
		return
	}
	s.offer = nil
	s.mu.Unlock()

	for _, l := range s.offerListeners {
		l.OfferChanged(nil)
	}
}

// SetOngoing records an order the driver took on outside the push stream, e.g. an
// accepted offer or one loaded at startup.
func (s *Store) SetOngoing(order *model.Order) {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	if order == nil || order.Status.IsTerminal() {
		s.ongoing = nil
	} else {
		s.ongoing = order.Clone()
	}
	s.mu.Unlock()

	if order != nil {
		for _, l := range s.orderListeners {
			l.OrderUpdated(order.Clone())
		}
	}
}

func (s *Store) SetWarning(w *model.DepositWarning) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := *w
	s.warning = &c
}

func (s *Store) ClearWarning() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.warning = nil
}

func (s *Store) setState(state ConnState) {
	s.mu.Lock()
	prev := s.state
	s.state = state
	s.mu.Unlock()

	metrics.RealtimeState.Set(float64(state))
	if prev != state {
		s.log.Debug("Realtime channel state changed", zap.Stringer("from", prev), zap.Stringer("to", state))
	}
}

// reset marks the channel disconnected and drops everything it delivered.
func (s *Store) reset() {
	s.notifyMu.Lock()
	defer s.notifyMu.Unlock()

	s.mu.Lock()
	hadOffer := s.offer != nil
	s.state = Disconnected
	s.offer = nil
	s.ongoing = nil
	s.warning = nil
	s.mu.Unlock()

	metrics.RealtimeState.Set(float64(Disconnected))
	if hadOffer {
		for _, l := range s.offerListeners {
			l.OfferChanged(nil)
		}
	}
}
