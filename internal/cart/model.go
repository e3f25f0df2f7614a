package cart

import (
	"github.com/shopspring/decimal"

	"github.com/andreasstove999/ecommerce-system/food-order-go/internal/menu"
)

// Line is a menu item snapshot taken at first add, plus its quantity.
type Line struct {
	Item     menu.Item `json:"item"`
	Quantity int       `json:"quantity"`
}

func (l Line) Subtotal() decimal.Decimal {
	return l.Item.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Total sums price x quantity over lines.
func Total(lines []Line) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.Subtotal())
	}
	return total
}
