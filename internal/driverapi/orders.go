package driverapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/foodify/driver-agent/internal/model"
)

type tokenRequest struct {
	OrderID int64  `json:"orderId" validate:"required"`
	Token   string `json:"token" validate:"required"`
}

// OngoingOrder returns the driver's current order, or nil when there is none.
func (c *Client) OngoingOrder(ctx context.Context) (*model.Order, error) {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/driver/ongoing-order", nil, nil)
	if err != nil {
		return nil, err
	}
	data, err := c.doRaw(req)
	if err != nil {
		return nil, err
	}
	return decodeOngoing(data)
}

// decodeOngoing accepts a bare order, {"orderDto": order|null} or null.
func decodeOngoing(data []byte) (*model.Order, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, nil
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("failed to decode ongoing order: %w", err)
	}
	if raw, ok := fields["orderDto"]; ok {
		data = bytes.TrimSpace(raw)
		if len(data) == 0 || bytes.Equal(data, []byte("null")) {
			return nil, nil
		}
	}

	var order model.Order
	if err := json.Unmarshal(data, &order); err != nil {
		return nil, fmt.Errorf("failed to decode ongoing order: %w", err)
	}
	return &order, nil
}

func (c *Client) AcceptOrder(ctx context.Context, orderID int64) (*model.Order, error) {
	var order model.Order
	path := "/api/driver/accept-order/" + strconv.FormatInt(orderID, 10)
	if err := c.doJSON(ctx, http.MethodPost, path, nil, nil, &order); err != nil {
		return nil, err
	}
	if order.ID == 0 {
		return nil, nil
	}
	return &order, nil
}

func (c *Client) DeclineOrder(ctx context.Context, orderID int64) error {
	path := "/api/driver/decline-order/" + strconv.FormatInt(orderID, 10)
	return c.doJSON(ctx, http.MethodPost, path, nil, nil, nil)
}

// Pickup confirms the restaurant handover with the scanned pickup token and returns
// the backend's message.
func (c *Client) Pickup(ctx context.Context, orderID int64, token string) (string, error) {
	in := tokenRequest{OrderID: orderID, Token: token}
	if err := c.check(in); err != nil {
		return "", err
	}

	req, err := c.newRequest(ctx, http.MethodPost, "/api/driver/pickup", nil, in)
	if err != nil {
		return "", err
	}
	data, err := c.doRaw(req)
	if err != nil {
		return "", err
	}

	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var msg string
		if err := json.Unmarshal(data, &msg); err == nil {
			return msg, nil
		}
	}
	return string(data), nil
}

func (c *Client) Deliver(ctx context.Context, orderID int64, token string) (bool, error) {
	in := tokenRequest{OrderID: orderID, Token: token}
	if err := c.check(in); err != nil {
		return false, err
	}

	var delivered bool
	if err := c.doJSON(ctx, http.MethodPost, "/api/driver/deliver-order", nil, in, &delivered); err != nil {
		return false, err
	}
	return delivered, nil
}
