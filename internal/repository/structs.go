package repository

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrObjectNotFound = errors.New("not found")

// EventRecord is one row of the driver_events journal table. Attributes hold the
// event attributes as a JSON object.
type EventRecord struct {
	ID         uuid.UUID `db:"id"`
	Kind       string    `db:"kind"`
	DriverID   int64     `db:"driver_id"`
	OrderID    *int64    `db:"order_id"`
	Attributes string    `db:"attributes"`
	OccurredAt time.Time `db:"occurred_at"`
}
