package postgresql

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_database "github.com/foodify/driver-agent/internal/db/mocks"
	"github.com/foodify/driver-agent/internal/events"
	"github.com/foodify/driver-agent/internal/repository"
)

func sampleEvent() events.Event {
	e := events.New(events.KindOfferResolved, 7, 12).With("resolution", "accepted")
	e.OccurredAt = time.Date(2025, 1, 1, 10, 0, 0, 0, time.UTC)
	return e
}

func TestEventRepo_CreateTx(t *testing.T) {
	ctx := context.Background()
	record, err := ToRecord(sampleEvent())
	require.NoError(t, err)

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := NewEventRepo(mock_database.NewMockDB(ctrl))

		mockTx.EXPECT().
			Exec(gomock.Any(), gomock.Any(),
				gomock.Eq(record.ID),
				gomock.Eq("offer.resolved"),
				gomock.Eq(int64(7)),
				gomock.Eq(record.OrderID),
				gomock.Eq(`{"resolution":"accepted"}`),
				gomock.Eq(record.OccurredAt)).
			Return(nil, nil)

		assert.NoError(t, repo.CreateTx(ctx, mockTx, record))
	})

	t.Run("DB Error", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := NewEventRepo(mock_database.NewMockDB(ctrl))
		dbErr := errors.New("database error")

		mockTx.EXPECT().
			Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dbErr)

		assert.Equal(t, dbErr, repo.CreateTx(ctx, mockTx, record))
	})
}

func TestEventRepo_Write(t *testing.T) {
	ctx := context.Background()
	batch := []events.Event{sampleEvent(), events.New(events.KindSession, 7, 0)}

	t.Run("Commits one transaction", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := NewEventRepo(mockDB)

		gomock.InOrder(
			mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil),
			mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq(batch[0].ID), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, nil),
			mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Eq(batch[1].ID), gomock.Any(), gomock.Any(), gomock.Nil(), gomock.Any(), gomock.Any()).Return(nil, nil),
			mockTx.EXPECT().Commit(gomock.Any()).Return(nil),
		)

		assert.NoError(t, repo.Write(ctx, batch))
	})

	t.Run("Rolls back on insert failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		mockTx := mock_database.NewMockTx(ctrl)
		repo := NewEventRepo(mockDB)

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(mockTx, nil)
		mockTx.EXPECT().Exec(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("deadlock detected"))
		mockTx.EXPECT().Rollback(gomock.Any()).Return(nil)

		err := repo.Write(ctx, batch)
		assert.ErrorContains(t, err, "deadlock detected")
	})

	t.Run("Begin failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		repo := NewEventRepo(mockDB)

		mockDB.EXPECT().BeginTx(gomock.Any()).Return(nil, errors.New("pool closed"))
		assert.Error(t, repo.Write(ctx, batch))
	})
}

func TestEventRepo_OrderHistory(t *testing.T) {
	ctx := context.Background()
	orderID := int64(12)

	t.Run("Success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		repo := NewEventRepo(mockDB)

		id := uuid.New()
		mockDB.EXPECT().
			Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Eq(orderID)).
			DoAndReturn(func(_ context.Context, dest any, _ string, _ ...any) error {
				*dest.(*[]*repository.EventRecord) = []*repository.EventRecord{{
					ID:         id,
					Kind:       "order.updated",
					DriverID:   7,
					OrderID:    &orderID,
					Attributes: `{"status":"IN_DELIVERY"}`,
				}}
				return nil
			})

		history, err := repo.OrderHistory(ctx, orderID)
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.Equal(t, id, history[0].ID)
		assert.Equal(t, events.KindOrderUpdated, history[0].Kind)
		assert.Equal(t, orderID, history[0].OrderID)
		assert.Equal(t, "IN_DELIVERY", history[0].Attributes["status"])
	})

	t.Run("Not Found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		mockDB := mock_database.NewMockDB(ctrl)
		repo := NewEventRepo(mockDB)

		mockDB.EXPECT().Select(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)

		_, err := repo.OrderHistory(ctx, orderID)
		assert.ErrorIs(t, err, repository.ErrObjectNotFound)
	})
}

func TestRecordRoundTrip(t *testing.T) {
	event := sampleEvent()
	record, err := ToRecord(event)
	require.NoError(t, err)
	require.NotNil(t, record.OrderID)

	back, err := FromRecord(record)
	require.NoError(t, err)
	assert.Equal(t, event, back)
}
