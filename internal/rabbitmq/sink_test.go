package rabbitmq

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/foodify/driver-agent/internal/events"
	mock_rabbitmq "github.com/foodify/driver-agent/internal/rabbitmq/mocks"
)

func TestSink_RoutesByKind(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mock_rabbitmq.NewMockPublisher(ctrl)
	sink := NewSink(publisher, "driver.events")

	gomock.InOrder(
		publisher.EXPECT().Publish(gomock.Any(), "driver.events", "driver.event.offer.resolved", gomock.Any()).Return(nil),
		publisher.EXPECT().Publish(gomock.Any(), "driver.events", "driver.event.session.changed", gomock.Any()).Return(nil),
	)

	require.NoError(t, sink.Write(context.Background(), []events.Event{
		events.New(events.KindOfferResolved, 7, 1),
		events.New(events.KindSession, 7, 0),
	}))
}

func TestSink_PublishFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	publisher := mock_rabbitmq.NewMockPublisher(ctrl)
	sink := NewSink(publisher, "driver.events")

	publisher.EXPECT().Publish(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("publish NACK from broker"))

	err := sink.Write(context.Background(), []events.Event{events.New(events.KindOrderUpdated, 7, 1)})
	assert.ErrorContains(t, err, "NACK")
}
