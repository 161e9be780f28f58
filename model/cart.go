package model

// CartItem has no identity beyond its position in the cart.
type CartItem struct {
	Title string `json:"title"`
	Price int    `json:"price"`
}

// CartTotal sums item prices in insertion order.
func CartTotal(items []CartItem) int {
	total := 0
	for _, item := range items {
		total += item.Price
	}
	return total
}
