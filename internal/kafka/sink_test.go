package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/events"
	mock_kafka "github.com/foodify/driver-agent/internal/kafka/mocks"
)

func TestSink_Write(t *testing.T) {
	ctrl := gomock.NewController(t)
	producer := mock_kafka.NewMockProducer(ctrl)
	sink := NewSink(producer, "driver-events", zap.NewNop())

	first := events.New(events.KindOfferResolved, 7, 12).With("resolution", "accepted")
	second := events.New(events.KindSession, 7, 0)

	gomock.InOrder(
		producer.EXPECT().SendMessage(gomock.Any(), "driver-events", []byte("order-12"), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ string, _, value []byte) error {
				var got events.Event
				require.NoError(t, json.Unmarshal(value, &got))
				assert.Equal(t, first.ID, got.ID)
				assert.Equal(t, "accepted", got.Attributes["resolution"])
				return nil
			}),
		producer.EXPECT().SendMessage(gomock.Any(), "driver-events", []byte("driver-7"), gomock.Any()).Return(nil),
	)

	require.NoError(t, sink.Write(context.Background(), []events.Event{first, second}))
}

func TestSink_WriteStopsOnFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	producer := mock_kafka.NewMockProducer(ctrl)
	sink := NewSink(producer, "driver-events", zap.NewNop())

	producer.EXPECT().SendMessage(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("leader not available"))

	err := sink.Write(context.Background(), []events.Event{
		events.New(events.KindOrderUpdated, 7, 1),
		events.New(events.KindOrderUpdated, 7, 2),
	})
	require.Error(t, err)

	producer.EXPECT().Close().Return(nil)
	assert.NoError(t, sink.Close())
}

func TestConsoleProducer(t *testing.T) {
	p := NewConsoleProducer(zap.NewNop())
	require.NoError(t, p.SendMessage(context.Background(), "t", []byte("k"), []byte("v")))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.SendMessage(ctx, "t", nil, nil), context.Canceled)
	assert.NoError(t, p.Close())
}

func TestNewWriterProducerNeedsBrokers(t *testing.T) {
	_, err := NewWriterProducer(nil, zap.NewNop())
	assert.Error(t, err)
}
