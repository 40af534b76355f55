package events_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/foodify/driver-agent/internal/events"
	mock_events "github.com/foodify/driver-agent/internal/events/mocks"
)

type recordingSink struct {
	mu      sync.Mutex
	batches [][]events.Event
	closed  bool
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Write(_ context.Context, batch []events.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.batches = append(s.batches, batch)
	return nil
}

func (s *recordingSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

func (s *recordingSink) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n += len(b)
	}
	return n
}

func (s *recordingSink) largest() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, b := range s.batches {
		n = max(n, len(b))
	}
	return n
}

func TestJournal_FlushesFullBatches(t *testing.T) {
	sink := &recordingSink{}
	j := events.NewJournal(events.JournalConfig{Workers: 2, BatchSize: 3, FlushInterval: time.Hour}, []events.Sink{sink}, zap.NewNop())
	j.Start(context.Background())
	defer j.Shutdown(context.Background())

	for i := 0; i < 6; i++ {
		j.Record(context.Background(), events.New(events.KindOrderUpdated, 7, int64(i+1)))
	}

	require.Eventually(t, func() bool { return sink.count() == 6 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, 3, sink.largest())
}

func TestJournal_FlushesOnTimer(t *testing.T) {
	sink := &recordingSink{}
	j := events.NewJournal(events.JournalConfig{Workers: 1, BatchSize: 100, FlushInterval: 20 * time.Millisecond}, []events.Sink{sink}, zap.NewNop())
	j.Start(context.Background())
	defer j.Shutdown(context.Background())

	j.Record(context.Background(), events.New(events.KindOfferResolved, 7, 1).With("resolution", "expired"))

	require.Eventually(t, func() bool { return sink.count() == 1 }, time.Second, 5*time.Millisecond)
	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(t, "expired", sink.batches[0][0].Attributes["resolution"])
}

func TestJournal_ShutdownFlushesAndCloses(t *testing.T) {
	sink := &recordingSink{}
	j := events.NewJournal(events.JournalConfig{Workers: 1, BatchSize: 100, FlushInterval: time.Hour}, []events.Sink{sink}, zap.NewNop())
	j.Start(context.Background())

	for i := 0; i < 5; i++ {
		j.Record(context.Background(), events.New(events.KindControlCall, 7, int64(i)))
	}
	j.Shutdown(context.Background())

	assert.Equal(t, 5, sink.count())
	assert.True(t, sink.closed)

	// recorded after shutdown: logged, never written
	j.Record(context.Background(), events.New(events.KindControlCall, 7, 99))
	assert.Equal(t, 5, sink.count())
	j.Shutdown(context.Background())
}

func TestJournal_ContextCancellationShutsDown(t *testing.T) {
	sink := &recordingSink{}
	j := events.NewJournal(events.JournalConfig{Workers: 1, BatchSize: 100, FlushInterval: time.Hour}, []events.Sink{sink}, zap.NewNop())
	ctx, cancel := context.WithCancel(context.Background())
	j.Start(ctx)

	j.Record(context.Background(), events.New(events.KindSession, 7, 0))
	cancel()

	require.Eventually(t, func() bool {
		sink.mu.Lock()
		defer sink.mu.Unlock()
		return sink.closed
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, sink.count())
}

func TestJournal_FailingSinkDoesNotStarveOthers(t *testing.T) {
	ctrl := gomock.NewController(t)
	failing := mock_events.NewMockSink(ctrl)
	failing.EXPECT().Name().Return("broken").AnyTimes()
	failing.EXPECT().Write(gomock.Any(), gomock.Len(2)).Return(errors.New("broker down"))
	failing.EXPECT().Close().Return(nil)

	healthy := &recordingSink{}
	j := events.NewJournal(events.JournalConfig{Workers: 1, BatchSize: 2, FlushInterval: time.Hour}, []events.Sink{failing, healthy}, zap.NewNop())
	j.Start(context.Background())

	j.Record(context.Background(), events.New(events.KindOrderUpdated, 7, 1))
	j.Record(context.Background(), events.New(events.KindOrderUpdated, 7, 2))
	j.Shutdown(context.Background())

	assert.Equal(t, 2, healthy.count())
}

type stuckSink struct {
	release chan struct{}
	mu      sync.Mutex
	written int
}

func (s *stuckSink) Name() string { return "stuck" }

func (s *stuckSink) Write(_ context.Context, batch []events.Event) error {
	<-s.release
	s.mu.Lock()
	defer s.mu.Unlock()
	s.written += len(batch)
	return nil
}

func (s *stuckSink) Close() error { return nil }

func TestJournal_RecordNeverBlocksOnStuckSink(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	sink := &stuckSink{release: make(chan struct{})}
	j := events.NewJournal(events.JournalConfig{Workers: 1, BatchSize: 1, FlushInterval: time.Hour}, []events.Sink{sink}, zap.New(core))
	j.Start(context.Background())

	const total = 1000
	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < total; i++ {
			j.Record(context.Background(), events.New(events.KindOrderUpdated, 7, int64(i)))
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Record blocked behind a stuck sink")
	}

	overflow := logs.FilterMessage("Event not journaled").Len()
	assert.Positive(t, overflow)

	close(sink.release)
	j.Shutdown(context.Background())

	sink.mu.Lock()
	defer sink.mu.Unlock()
	assert.Equal(t, total, sink.written+overflow)
}

func TestEvent_Key(t *testing.T) {
	assert.Equal(t, "order-12", events.New(events.KindOrderUpdated, 7, 12).Key())
	assert.Equal(t, "driver-7", events.New(events.KindSession, 7, 0).Key())
}

func TestMemorySink_KeepsNewest(t *testing.T) {
	sink := events.NewMemorySink(3)
	for i := 0; i < 5; i++ {
		require.NoError(t, sink.Write(context.Background(), []events.Event{events.New(events.KindOrderUpdated, 7, int64(i%2+1))}))
	}
	assert.Equal(t, 3, sink.Len())

	history, err := sink.OrderHistory(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
