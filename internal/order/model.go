package order

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Item is the line snapshot frozen into an order at submission time.
type Item struct {
	ItemID   string          `json:"itemId"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Quantity int             `json:"quantity"`
}

func (it Item) Subtotal() decimal.Decimal {
	return it.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
}

// Order is written once by checkout. ID and CreatedAt are assigned by the
// backend that stores it.
type Order struct {
	ID              string          `json:"orderId"`
	UserID          string          `json:"userId"`
	Items           []Item          `json:"items"`
	TotalPrice      decimal.Decimal `json:"totalPrice"`
	CreatedAt       time.Time       `json:"orderDate"`
	Status          Status          `json:"status"`
	PhoneNumber     string          `json:"phoneNumber"`
	DeliveryAddress string          `json:"deliveryAddress"`
}

// New builds a pending order. The caller's items slice is copied.
func New(userID string, items []Item, total decimal.Decimal, phone, address string) *Order {
	return &Order{
		UserID:          userID,
		Items:           append([]Item(nil), items...),
		TotalPrice:      total,
		Status:          StatusPending,
		PhoneNumber:     phone,
		DeliveryAddress: address,
	}
}

// ShortID is the label used in the history list.
func (o Order) ShortID() string {
	id := o.ID
	if len(id) > 6 {
		id = id[:6]
	}
	return strings.ToUpper(id)
}

func (o Order) DeliveryFee() decimal.Decimal {
	return decimal.Zero
}

func (o Order) GrandTotal() decimal.Decimal {
	return o.TotalPrice.Add(o.DeliveryFee())
}
