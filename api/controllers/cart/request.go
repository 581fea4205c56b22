package cart

// AddItemRequest mirrors the add-time product payload. Quantity is implied;
// adding always contributes exactly one unit.
type AddItemRequest struct {
	ID       string  `json:"id" validate:"required"`
	Name     string  `json:"name" validate:"required"`
	Category string  `json:"category"`
	Image    string  `json:"image" validate:"omitempty,url"`
	Price    float64 `json:"price" validate:"gte=0"`
}

// UpdateQuantityRequest sets an absolute quantity. Zero or negative values
// remove the line, so the field is a pointer to keep zero distinguishable
// from absent.
type UpdateQuantityRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}
