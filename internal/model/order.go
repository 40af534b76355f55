package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

type OrderStatus string

const (
	StatusPending        OrderStatus = "PENDING"
	StatusAccepted       OrderStatus = "ACCEPTED"
	StatusPreparing      OrderStatus = "PREPARING"
	StatusReadyForPickUp OrderStatus = "READY_FOR_PICK_UP"
	StatusInDelivery     OrderStatus = "IN_DELIVERY"
	StatusDelivered      OrderStatus = "DELIVERED"
	StatusRejected       OrderStatus = "REJECTED"
	StatusCanceled       OrderStatus = "CANCELED"
)

// IsTerminal reports whether an order in this status is no longer shown as ongoing.
func (s OrderStatus) IsTerminal() bool {
	switch s {
	case StatusDelivered, StatusCanceled, StatusRejected:
		return true
	}
	return false
}

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type AddressType string

const (
	AddressHome      AddressType = "HOME"
	AddressApartment AddressType = "APARTMENT"
	AddressWork      AddressType = "WORK"
	AddressOther     AddressType = "OTHER"
)

type SavedAddress struct {
	ID                 int64       `json:"id"`
	Type               AddressType `json:"type"`
	Label              string      `json:"label,omitempty"`
	FormattedAddress   string      `json:"formattedAddress,omitempty"`
	PlaceID            string      `json:"placeId,omitempty"`
	EntrancePreference string      `json:"entrancePreference,omitempty"`
	EntranceNotes      string      `json:"entranceNotes,omitempty"`
	Directions         string      `json:"directions,omitempty"`
	Notes              string      `json:"notes,omitempty"`
	Primary            bool        `json:"primary"`
}

type OrderItem struct {
	MenuItemID          int64    `json:"menuItemId"`
	MenuItemName        string   `json:"menuItemName"`
	Quantity            int      `json:"quantity"`
	Extras              []string `json:"extras,omitempty"`
	SpecialInstructions string   `json:"specialInstructions,omitempty"`
}

// Order mirrors the backend order DTO. Timestamps are kept as sent by the backend.
type Order struct {
	ID                    int64         `json:"id"`
	RestaurantName        string        `json:"restaurantName,omitempty"`
	RestaurantID          int64         `json:"restaurantId,omitempty"`
	RestaurantAddress     string        `json:"restaurantAddress,omitempty"`
	RestaurantLocation    *Location     `json:"restaurantLocation,omitempty"`
	RestaurantPhone       string        `json:"restaurantPhone,omitempty"`
	ClientID              int64         `json:"clientId,omitempty"`
	ClientName            string        `json:"clientName,omitempty"`
	ClientPhone           string        `json:"clientPhone,omitempty"`
	ClientAddress         string        `json:"clientAddress,omitempty"`
	ClientLocation        *Location     `json:"clientLocation,omitempty"`
	SavedAddress          *SavedAddress `json:"savedAddress,omitempty"`
	Total                 float64       `json:"total"`
	Status                OrderStatus   `json:"status"`
	CreatedAt             string        `json:"createdAt,omitempty"`
	Items                 []OrderItem   `json:"items,omitempty"`
	DriverID              *int64        `json:"driverId,omitempty"`
	DriverName            string        `json:"driverName,omitempty"`
	DriverPhone           string        `json:"driverPhone,omitempty"`
	EstimatedPickUpTime   FlexString    `json:"estimatedPickUpTime,omitempty"`
	EstimatedDeliveryTime FlexString    `json:"estimatedDeliveryTime,omitempty"`
	DriverAssignedAt      string        `json:"driverAssignedAt,omitempty"`
	PickedUpAt            string        `json:"pickedUpAt,omitempty"`
	DeliveredAt           string        `json:"deliveredAt,omitempty"`
	Upcoming              bool          `json:"upcoming"`
}

// Title is the short label drivers see for an order.
func (o *Order) Title() string {
	if o.RestaurantName != "" {
		return o.RestaurantName
	}
	return fmt.Sprintf("Order #%d", o.ID)
}

func (o *Order) Destination() string {
	switch {
	case o.ClientAddress != "":
		return "Deliver to " + o.ClientAddress
	case o.SavedAddress != nil && o.SavedAddress.FormattedAddress != "":
		return o.SavedAddress.FormattedAddress
	case o.RestaurantName != "":
		return "Pickup from " + o.RestaurantName
	}
	return ""
}

func (o *Order) Clone() *Order {
	if o == nil {
		return nil
	}
	c := *o
	c.Items = append([]OrderItem(nil), o.Items...)
	return &c
}

// FlexString accepts either a JSON number or a JSON string.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("flex string: %w", err)
	}
	*f = FlexString(n.String())
	return nil
}

// Minutes returns the value as a number of minutes when it is numeric.
func (f FlexString) Minutes() (int, bool) {
	n, err := strconv.ParseFloat(string(f), 64)
	if err != nil {
		return 0, false
	}
	return int(n), true
}
