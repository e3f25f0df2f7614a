package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/order"
)

const (
	OrderPlacedEventName    = "OrderPlaced"
	OrderPlacedEventVersion = 1
)

type OrderPlacedItem struct {
	ItemID   string `json:"itemId"`
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity int    `json:"quantity"`
}

type OrderPlacedPayload struct {
	OrderID         string            `json:"orderId"`
	UserID          string            `json:"userId"`
	Items           []OrderPlacedItem `json:"items"`
	TotalPrice      string            `json:"totalPrice"`
	Status          string            `json:"status"`
	DeliveryAddress string            `json:"deliveryAddress"`
	OrderDate       time.Time         `json:"orderDate"`
}

// BuildOrderPlacedEnvelope keys the event by user so one user's orders stay
// in sequence on the broker.
func BuildOrderPlacedEnvelope(o *order.Order, correlationID string, now time.Time) EventEnvelope[OrderPlacedPayload] {
	payload := OrderPlacedPayload{
		OrderID:         o.ID,
		UserID:          o.UserID,
		TotalPrice:      o.TotalPrice.StringFixed(2),
		Status:          string(o.Status),
		DeliveryAddress: o.DeliveryAddress,
		OrderDate:       o.CreatedAt.UTC(),
		Items:           make([]OrderPlacedItem, 0, len(o.Items)),
	}
	for _, it := range o.Items {
		payload.Items = append(payload.Items, OrderPlacedItem{
			ItemID:   it.ItemID,
			Name:     it.Name,
			Price:    it.Price.StringFixed(2),
			Quantity: it.Quantity,
		})
	}

	if correlationID == "" {
		correlationID = o.ID
	}

	return EventEnvelope[OrderPlacedPayload]{
		EventName:     OrderPlacedEventName,
		EventVersion:  OrderPlacedEventVersion,
		EventID:       uuid.NewString(),
		CorrelationID: correlationID,
		Producer:      serviceName,
		PartitionKey:  o.UserID,
		OccurredAt:    now.UTC(),
		Payload:       payload,
	}
}
