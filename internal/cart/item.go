package cart

// ProductRef carries the payload supplied when a shopper adds a product.
// Quantity is implied: a ref always adds exactly one unit.
type ProductRef struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
}

// Item is one distinct product in the cart. Name, category, image, and price
// are copied at add-time and never re-validated against the catalog.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	// AddedAt is epoch millis, set at first insertion and left untouched by
	// quantity changes.
	AddedAt int64 `json:"addedAt"`
}
