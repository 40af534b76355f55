package events

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

type Kind string

const (
	KindOfferResolved Kind = "offer.resolved"
	KindOrderUpdated  Kind = "order.updated"
	KindSession       Kind = "session.changed"
	KindControlCall   Kind = "control.call"
)

// Event is one journal record. Attributes carry the kind-specific details.
type Event struct {
	ID         uuid.UUID         `json:"id"`
	Kind       Kind              `json:"kind"`
	OccurredAt time.Time         `json:"occurred_at"`
	DriverID   int64             `json:"driver_id,omitempty"`
	OrderID    int64             `json:"order_id,omitempty"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

func New(kind Kind, driverID, orderID int64) Event {
	return Event{
		ID:         uuid.New(),
		Kind:       kind,
		OccurredAt: time.Now().UTC(),
		DriverID:   driverID,
		OrderID:    orderID,
		Attributes: make(map[string]string),
	}
}

func (e Event) With(key, value string) Event {
	if e.Attributes == nil {
		e.Attributes = make(map[string]string)
	}
	e.Attributes[key] = value
	return e
}

// Key is the partitioning key used by the brokers, so one order's events stay ordered.
func (e Event) Key() string {
	if e.OrderID != 0 {
		return "order-" + strconv.FormatInt(e.OrderID, 10)
	}
	return "driver-" + strconv.FormatInt(e.DriverID, 10)
}
