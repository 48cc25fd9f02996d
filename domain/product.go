package domain

// Product is a purchasable catalog item. The catalog is fixed at startup.
type Product struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	PriceUSD float64 `json:"priceUSD"`
}
