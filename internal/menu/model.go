package menu

import "github.com/shopspring/decimal"

const (
	DefaultRating       = 4.2
	DefaultDeliveryTime = "25-30 min"
)

// CategoryAll disables category filtering.
const CategoryAll = "All"

// Categories is the fixed list shown on the menu screen, in display order.
var Categories = []string{CategoryAll, "Salads", "Burgers", "Pizzas", "Desserts", "Drinks"}

// Item is a read-only copy of a catalog entry.
type Item struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	ImageURL     string          `json:"imageUrl"`
	Price        decimal.Decimal `json:"price"`
	Category     string          `json:"category"`
	Rating       float64         `json:"rating"`
	DeliveryTime string          `json:"deliveryTime"`
}

// WithDefaults fills the display fields the catalog may leave out.
func (it Item) WithDefaults() Item {
	if it.Rating == 0 {
		it.Rating = DefaultRating
	}
	if it.DeliveryTime == "" {
		it.DeliveryTime = DefaultDeliveryTime
	}
	if it.Price.IsNegative() {
		it.Price = decimal.Zero
	}
	return it
}
