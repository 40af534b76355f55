package agent

import (
	"context"
	"strconv"

	"github.com/foodify/driver-agent/internal/events"
	"github.com/foodify/driver-agent/internal/model"
	"github.com/foodify/driver-agent/internal/offer"
	"github.com/foodify/driver-agent/internal/session"
)

type journal interface {
	Record(ctx context.Context, event events.Event)
}

type currentSession interface {
	Current() session.Session
}

// recorder turns component callbacks into journal events.
type recorder struct {
	journal journal
	session currentSession
}

func (r *recorder) driverID() int64 {
	if user := r.session.Current().User; user != nil {
		return user.ID
	}
	return 0
}

func (r *recorder) OfferResolved(order *model.Order, resolution offer.Resolution) {
	event := events.New(events.KindOfferResolved, r.driverID(), order.ID).
		With("resolution", string(resolution)).
		With("title", order.Title())
	if destination := order.Destination(); destination != "" {
		event = event.With("destination", destination)
	}
	if minutes, ok := order.EstimatedPickUpTime.Minutes(); ok {
		event = event.With("pickup_eta_min", strconv.Itoa(minutes))
	}
	r.journal.Record(context.Background(), event)
}

func (r *recorder) OrderUpdated(order *model.Order) {
	r.journal.Record(context.Background(), events.New(events.KindOrderUpdated, r.driverID(), order.ID).
		With("status", string(order.Status)))
}

// SessionChanged journals logins, refreshes and logouts. Availability toggles are
// recorded as well.
func (r *recorder) SessionChanged(prev, next session.Session) {
	var change string
	switch {
	case !prev.Active() && next.Active():
		change = "started"
	case prev.Active() && !next.Active():
		change = "cleared"
	case prev.AccessToken != next.AccessToken:
		change = "refreshed"
	case prev.User != nil && next.User != nil && prev.User.Available != next.User.Available:
		change = "availability"
	default:
		return
	}

	var driverID int64
	var available bool
	for _, s := range []session.Session{next, prev} {
		if s.User != nil {
			driverID = s.User.ID
			available = s.User.Available
			break
		}
	}

	event := events.New(events.KindSession, driverID, 0).With("change", change)
	if change == "availability" {
		if available {
			event = event.With("available", "true")
		} else {
			event = event.With("available", "false")
		}
	}
	r.journal.Record(context.Background(), event)
}
