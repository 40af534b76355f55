package cache

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/model"
)

type ongoingFunc func(ctx context.Context) (*model.Order, error)

func (f ongoingFunc) OngoingOrder(ctx context.Context) (*model.Order, error) { return f(ctx) }

func TestOrderCache_LoadInitialData(t *testing.T) {
	tests := []struct {
		name    string
		source  ongoingFunc
		want    *model.Order
		wantErr bool
		size    int
	}{
		{
			name: "ongoing order",
			source: func(context.Context) (*model.Order, error) {
				return &model.Order{ID: 5, Status: model.StatusInDelivery}, nil
			},
			want: &model.Order{ID: 5, Status: model.StatusInDelivery},
			size: 1,
		},
		{
			name:   "nothing ongoing",
			source: func(context.Context) (*model.Order, error) { return nil, nil },
		},
		{
			name:    "backend failure",
			source:  func(context.Context) (*model.Order, error) { return nil, errors.New("502") },
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewOrderCache(tt.source, zap.NewNop())
			got, err := c.LoadInitialData(context.Background())
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Len(t, c.List(), tt.size)
		})
	}
}

func TestOrderCache_TerminalStatusEvicts(t *testing.T) {
	c := NewOrderCache(nil, zap.NewNop())

	c.OrderUpdated(&model.Order{ID: 2, Status: model.StatusAccepted})
	c.OrderUpdated(&model.Order{ID: 1, Status: model.StatusPreparing})
	require.Len(t, c.List(), 2)
	assert.Equal(t, int64(1), c.List()[0].ID)

	c.OrderUpdated(&model.Order{ID: 2, Status: model.StatusDelivered})
	_, found := c.Get(2)
	assert.False(t, found)

	got, found := c.Get(1)
	require.True(t, found)
	got.Status = model.StatusCanceled
	again, _ := c.Get(1)
	assert.Equal(t, model.StatusPreparing, again.Status)

	c.Clear()
	assert.Empty(t, c.List())
}
