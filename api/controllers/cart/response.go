package cart

import (
	cartsvc "github.com/maisonvela/storefront-backend/internal/cart"
)

// ItemView is the wire shape of one cart line.
type ItemView struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Image    string  `json:"image"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	AddedAt  int64   `json:"addedAt"`
}

// View is the wire shape of the whole cart, totals included.
type View struct {
	Items      []ItemView `json:"items"`
	TotalItems int        `json:"totalItems"`
	TotalPrice float64    `json:"totalPrice"`
}

func newView(store *cartsvc.Store) View {
	items := store.Items()
	views := make([]ItemView, 0, len(items))
	for _, item := range items {
		views = append(views, ItemView{
			ID:       item.ID,
			Name:     item.Name,
			Category: item.Category,
			Image:    item.Image,
			Price:    item.Price,
			Quantity: item.Quantity,
			AddedAt:  item.AddedAt,
		})
	}
	return View{
		Items:      views,
		TotalItems: store.TotalItems(),
		TotalPrice: store.TotalPrice(),
	}
}
