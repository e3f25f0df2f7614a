package menu

import "github.com/shopspring/decimal"

// DemoItems is the starter catalog used by the in-memory backend and the seed
// command.
func DemoItems() []Item {
	return []Item{
		{ID: "caesar-salad", Name: "Caesar Salad", Description: "Romaine, parmesan, croutons and house dressing", Price: decimal.NewFromInt(180), Category: "Salads", Rating: 4.4, DeliveryTime: "15-20 min"},
		{ID: "greek-salad", Name: "Greek Salad", Description: "Tomato, cucumber, olives and feta", Price: decimal.NewFromInt(160), Category: "Salads"},
		{ID: "classic-burger", Name: "Classic Burger", Description: "Grilled patty, cheddar, lettuce and tomato", Price: decimal.NewFromInt(220), Category: "Burgers", Rating: 4.6},
		{ID: "veggie-burger", Name: "Veggie Burger", Description: "Spiced potato patty with mint mayo", Price: decimal.NewFromInt(190), Category: "Burgers"},
		{ID: "margherita", Name: "Margherita Pizza", Description: "Tomato, mozzarella and basil", Price: decimal.NewFromInt(300), Category: "Pizzas", Rating: 4.5, DeliveryTime: "30-35 min"},
		{ID: "farmhouse", Name: "Farmhouse Pizza", Description: "Onion, capsicum, mushroom and corn", Price: decimal.NewFromInt(350), Category: "Pizzas"},
		{ID: "brownie", Name: "Chocolate Brownie", Description: "Warm brownie with a fudge centre", Price: decimal.NewFromInt(120), Category: "Desserts"},
		{ID: "cold-coffee", Name: "Cold Coffee", Description: "Blended iced coffee", Price: decimal.RequireFromString("99.50"), Category: "Drinks"},
	}
}
