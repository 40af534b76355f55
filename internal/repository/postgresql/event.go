package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/foodify/driver-agent/internal/db"
	"github.com/foodify/driver-agent/internal/events"
	"github.com/foodify/driver-agent/internal/repository"
)

const schema = `
    CREATE TABLE IF NOT EXISTS driver_events (
        id          UUID PRIMARY KEY,
        kind        TEXT NOT NULL,
        driver_id   BIGINT NOT NULL,
        order_id    BIGINT,
        attributes  JSONB NOT NULL DEFAULT '{}',
        occurred_at TIMESTAMPTZ NOT NULL
    );
    CREATE INDEX IF NOT EXISTS driver_events_order_idx ON driver_events (order_id, occurred_at)
`

const insertEvent = `
    INSERT INTO driver_events (
        id, kind, driver_id, order_id, attributes, occurred_at
    ) VALUES ($1, $2, $3, $4, $5, $6)
    ON CONFLICT (id) DO NOTHING
`

// EventRepo stores the event journal in PostgreSQL and doubles as a journal sink.
type EventRepo struct {
	db db.DB
}

func NewEventRepo(db db.DB) *EventRepo {
	return &EventRepo{db: db}
}

func (r *EventRepo) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("create driver_events: %w", err)
	}
	return nil
}

func (r *EventRepo) CreateTx(ctx context.Context, tx db.Tx, record *repository.EventRecord) error {
	_, err := tx.Exec(ctx, insertEvent,
		record.ID, record.Kind, record.DriverID, record.OrderID, record.Attributes, record.OccurredAt)
	return err
}

func (r *EventRepo) GetByOrderID(ctx context.Context, orderID int64) ([]*repository.EventRecord, error) {
	var records []*repository.EventRecord
	err := r.db.Select(ctx, &records, `
        SELECT id, kind, driver_id, order_id, attributes::text AS attributes, occurred_at
        FROM driver_events
        WHERE order_id = $1
        ORDER BY occurred_at ASC
    `, orderID)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, repository.ErrObjectNotFound
	}
	return records, nil
}

// OrderHistory returns the journaled events of one order, oldest first.
func (r *EventRepo) OrderHistory(ctx context.Context, orderID int64) ([]events.Event, error) {
	records, err := r.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	history := make([]events.Event, 0, len(records))
	for _, record := range records {
		event, err := FromRecord(record)
		if err != nil {
			return nil, err
		}
		history = append(history, event)
	}
	return history, nil
}

func (r *EventRepo) Name() string { return "postgres" }

// Write stores a journal batch in one transaction.
func (r *EventRepo) Write(ctx context.Context, batch []events.Event) (err error) {
	tx, err := r.db.BeginTx(ctx)
	if err != nil {
		return fmt.Errorf("begin event batch: %w", err)
	}
	defer func() {
		if err != nil {
			if rbErr := tx.Rollback(context.Background()); rbErr != nil {
				err = errors.Join(err, rbErr)
			}
		}
	}()

	for _, event := range batch {
		record, err := ToRecord(event)
		if err != nil {
			return err
		}
		if err := r.CreateTx(ctx, tx, record); err != nil {
			return fmt.Errorf("insert event %s: %w", event.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit event batch: %w", err)
	}
	return nil
}

func (r *EventRepo) Close() error {
	if c, ok := r.db.(interface{ Close() }); ok {
		c.Close()
	}
	return nil
}

func ToRecord(event events.Event) (*repository.EventRecord, error) {
	attributes := event.Attributes
	if attributes == nil {
		attributes = map[string]string{}
	}
	raw, err := json.Marshal(attributes)
	if err != nil {
		return nil, fmt.Errorf("marshal attributes of %s: %w", event.ID, err)
	}

	record := &repository.EventRecord{
		ID:         event.ID,
		Kind:       string(event.Kind),
		DriverID:   event.DriverID,
		Attributes: string(raw),
		OccurredAt: event.OccurredAt,
	}
	if event.OrderID != 0 {
		orderID := event.OrderID
		record.OrderID = &orderID
	}
	return record, nil
}

func FromRecord(record *repository.EventRecord) (events.Event, error) {
	event := events.Event{
		ID:         record.ID,
		Kind:       events.Kind(record.Kind),
		DriverID:   record.DriverID,
		OccurredAt: record.OccurredAt,
	}
	if record.OrderID != nil {
		event.OrderID = *record.OrderID
	}
	if record.Attributes != "" {
		if err := json.Unmarshal([]byte(record.Attributes), &event.Attributes); err != nil {
			return events.Event{}, fmt.Errorf("decode attributes of %s: %w", record.ID, err)
		}
	}
	return event, nil
}
