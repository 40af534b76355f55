package cache

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"

	"github.com/foodify/driver-agent/internal/metrics"
	"github.com/foodify/driver-agent/internal/model"
)

type OngoingSource interface {
	OngoingOrder(ctx context.Context) (*model.Order, error)
}

// OrderCache holds the orders the driver is currently working on. Orders in a
// terminal status are evicted.
type OrderCache struct {
	mu     sync.RWMutex
	cache  map[int64]*model.Order
	source OngoingSource
	log    *zap.Logger
}

func NewOrderCache(source OngoingSource, log *zap.Logger) *OrderCache {
	return &OrderCache{
		cache:  make(map[int64]*model.Order),
		source: source,
		log:    log,
	}
}

// LoadInitialData seeds the cache with the backend's ongoing order, if any.
func (c *OrderCache) LoadInitialData(ctx context.Context) (*model.Order, error) {
	c.log.Info("Loading ongoing order into cache")
	order, err := c.source.OngoingOrder(ctx)
	if err != nil {
		return nil, err
	}
	if order == nil {
		c.log.Info("No ongoing order")
		return nil, nil
	}
	c.Set(order)
	return order.Clone(), nil
}

func (c *OrderCache) Get(orderID int64) (*model.Order, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	order, found := c.cache[orderID]
	if !found {
		return nil, false
	}
	return order.Clone(), true
}

// List returns the cached orders ordered by id.
func (c *OrderCache) List() []*model.Order {
	c.mu.RLock()
	defer c.mu.RUnlock()
	orders := make([]*model.Order, 0, len(c.cache))
	for _, order := range c.cache {
		orders = append(orders, order.Clone())
	}
	sort.Slice(orders, func(i, j int) bool { return orders[i].ID < orders[j].ID })
	return orders
}

func (c *OrderCache) Set(order *model.Order) {
	if order == nil || order.ID == 0 {
		return
	}
	if order.Status.IsTerminal() {
		c.Delete(order.ID)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache[order.ID] = order.Clone()
	metrics.OrderCacheItems.Set(float64(len(c.cache)))
	c.log.Debug("Cache: set order", zap.Int64("order_id", order.ID), zap.String("status", string(order.Status)))
}

func (c *OrderCache) Delete(orderID int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, found := c.cache[orderID]; found {
		delete(c.cache, orderID)
		metrics.OrderCacheItems.Set(float64(len(c.cache)))
		c.log.Debug("Cache: deleted order", zap.Int64("order_id", orderID))
	}
}

// Clear drops every order, e.g. on logout.
func (c *OrderCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache = make(map[int64]*model.Order)
	metrics.OrderCacheItems.Set(0)
}

// OrderUpdated keeps the cache in step with the realtime channel.
func (c *OrderCache) OrderUpdated(order *model.Order) {
	c.Set(order)
}
